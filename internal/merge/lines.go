package merge

import (
	"strings"

	"modelgen/internal/emit"
	"modelgen/internal/model"
)

// Context is what the classifier knows about the regenerated classifier.
type Context struct {
	Class       string
	Attributes  []string
	Methods     []string
	Fragments   []string
	LoopHeaders []string
}

// ContextFor collects the names and call fragments e renders for c.
func ContextFor(e *emit.Emitter, c model.Classifier) *Context {
	ctx := &Context{Class: model.NameOf(c)}
	seenMethod := make(map[string]struct{})
	addMethod := func(name string) {
		if _, ok := seenMethod[name]; ok || name == "" {
			return
		}
		seenMethod[name] = struct{}{}
		ctx.Methods = append(ctx.Methods, name)
	}
	for _, m := range model.MethodsOf(c) {
		if m != nil {
			addMethod(m.Name)
		}
	}
	cls, ok := c.(*model.DesignClass)
	if !ok || cls == nil {
		return ctx
	}
	for _, a := range e.Attributes(cls) {
		ctx.Attributes = append(ctx.Attributes, a.Name)
	}
	seenFrag := make(map[string]struct{})
	for _, mem := range e.Members(cls) {
		addMethod(mem.Method.Name)
		for _, call := range mem.Calls {
			if f := call.Fragment(); f != "" {
				if _, ok := seenFrag[f]; !ok {
					seenFrag[f] = struct{}{}
					ctx.Fragments = append(ctx.Fragments, f)
				}
			}
			if h := call.LoopHeader(); h != "" {
				ctx.LoopHeaders = append(ctx.LoopHeaders, h)
			}
		}
	}
	return ctx
}

// Foreign is a hand-written line and its index in the old file.
type Foreign struct {
	Index int
	Line  string
}

// Classify returns the lines of old that the generator does not produce,
// in ascending index order.
func Classify(old []string, ctx *Context) []Foreign {
	if ctx == nil {
		ctx = &Context{}
	}
	var out []Foreign
	for i, line := range old {
		if !ctx.generated(line) {
			out = append(out, Foreign{Index: i, Line: line})
		}
	}
	return out
}

func (ctx *Context) generated(line string) bool {
	s := strings.TrimSpace(line)
	switch {
	case s == "":
		return true
	case strings.HasPrefix(s, "//"), strings.HasPrefix(s, "/*"), strings.HasPrefix(s, "*"):
		return true
	case strings.Trim(s, "{}") == "":
		return true
	case s == "return;" || strings.HasPrefix(s, "return "):
		return true
	case strings.HasPrefix(s, "import "):
		return true
	case strings.HasPrefix(s, "this.") && strings.Contains(s, "="):
		return true
	case isDeclaration(s):
		return true
	}
	if ctx.Class != "" && strings.Contains(s, ctx.Class) {
		return true
	}
	for _, a := range ctx.Attributes {
		if strings.Contains(s, a+";") {
			return true
		}
	}
	for _, m := range ctx.Methods {
		if strings.Contains(s, m+"(") {
			return true
		}
	}
	for _, f := range ctx.Fragments {
		if strings.Contains(s, f) {
			return true
		}
	}
	for _, h := range ctx.LoopHeaders {
		if s == h {
			return true
		}
	}
	return false
}

func isDeclaration(s string) bool {
	for _, kw := range []string{"class ", "interface "} {
		if strings.HasPrefix(s, kw) || strings.Contains(s, " "+kw) {
			return true
		}
	}
	return false
}

// Splice reinserts foreign lines into fresh. Each line overwrites a blank
// fresh line at its old index, is inserted before the line at that index
// otherwise, and is appended past the end.
func Splice(fresh []string, foreign []Foreign) []string {
	out := make([]string, len(fresh), len(fresh)+len(foreign))
	copy(out, fresh)
	for _, f := range foreign {
		switch {
		case f.Index >= len(out):
			out = append(out, f.Line)
		case strings.TrimSpace(out[f.Index]) == "":
			out[f.Index] = f.Line
		default:
			out = append(out, "")
			copy(out[f.Index+1:], out[f.Index:])
			out[f.Index] = f.Line
		}
	}
	return out
}
