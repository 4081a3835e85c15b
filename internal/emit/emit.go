package emit

import (
	"strings"
	"unicode"

	"modelgen/internal/ir"
	"modelgen/internal/model"
	"modelgen/internal/naming"
)

// Header is the first line of every generated file.
const Header = "// Generated by modelgen. Manual edits outside generated members are kept in update mode."

// placeholders are structural method names the trace synthesizes instead.
var placeholders = map[string]struct{}{
	"create":  {},
	"destroy": {},
}

// Member is a method as it will be emitted: the winning signature plus every
// statement recorded for that name.
type Member struct {
	Method *model.Method
	Calls  []*ir.Call
}

// Emitter renders classifiers against one IR table.
type Emitter struct {
	table *ir.Table
	opt   Options
}

// New returns an emitter reading IR from table.
func New(table *ir.Table, opt Options) *Emitter {
	if table == nil {
		table = ir.NewTable()
	}
	return &Emitter{table: table, opt: opt.withDefaults()}
}

// Options returns the effective options.
func (e *Emitter) Options() Options { return e.opt }

// FileName is <Name><ext>.
func (e *Emitter) FileName(c model.Classifier) string {
	return model.NameOf(c) + e.opt.Ext
}

// Text joins lines with the configured newline and terminates the last one.
func (e *Emitter) Text(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	nl := e.opt.Newline.String()
	return strings.Join(lines, nl) + nl
}

// Render returns the source lines of c.
func (e *Emitter) Render(c model.Classifier) []string {
	switch c := c.(type) {
	case *model.DesignClass:
		if c != nil {
			return e.renderClass(c)
		}
	case *model.Interface:
		if c != nil {
			return e.renderInterface(c)
		}
	}
	return nil
}

// Attributes returns the attributes emitted for c, explicit ones first.
func (e *Emitter) Attributes(c *model.DesignClass) []*model.Attribute {
	return e.table.Attributes(c)
}

// Members returns the methods emitted for c in output order. Explicit methods
// come first; a synthesized method with the same name adds its calls to the
// explicit one instead of being emitted twice.
func (e *Emitter) Members(c *model.DesignClass) []Member {
	if c == nil {
		return nil
	}
	var out []Member
	index := make(map[string]int)
	for _, m := range c.Methods {
		if m == nil {
			continue
		}
		if _, skip := placeholders[m.Name]; skip {
			continue
		}
		if _, dup := index[m.Name]; dup {
			continue
		}
		index[m.Name] = len(out)
		out = append(out, Member{Method: m, Calls: e.calls(m)})
	}
	if rec := e.table.LookupClass(c); rec != nil {
		for _, m := range rec.Methods {
			if i, ok := index[m.Name]; ok {
				out[i].Calls = append(out[i].Calls, e.calls(m)...)
				continue
			}
			index[m.Name] = len(out)
			out = append(out, Member{Method: m, Calls: e.calls(m)})
		}
	}
	return out
}

func (e *Emitter) calls(m *model.Method) []*ir.Call {
	body := e.table.LookupMethod(m)
	if body == nil || len(body.Calls) == 0 {
		return nil
	}
	return append([]*ir.Call(nil), body.Calls...)
}

func (e *Emitter) renderClass(c *model.DesignClass) []string {
	w := newWriter(e.opt)
	attrs := e.Attributes(c)
	e.preamble(w, attrs)

	decl := declaration(c.Stereotype, "class", c.Name)
	if rec := e.table.LookupClass(c); rec != nil {
		if rec.Extends != nil {
			decl += " extends " + rec.Extends.Name
		}
		if len(rec.Implements) > 0 {
			names := make([]string, 0, len(rec.Implements))
			for _, i := range rec.Implements {
				names = append(names, i.Name)
			}
			decl += " implements " + strings.Join(names, ", ")
		}
	}
	w.open(decl)

	for _, a := range attrs {
		w.line(attributeLine(a))
	}
	for _, m := range e.Members(c) {
		w.blank()
		w.open(signature(c.Name, m.Method))
		e.body(w, c, attrs, m)
		w.close()
	}
	e.classRegion(w, c.Name)
	w.close()
	return w.lines
}

func (e *Emitter) renderInterface(c *model.Interface) []string {
	w := newWriter(e.opt)
	e.preamble(w, nil)
	w.open(declaration(c.Stereotype, "interface", c.Name))
	for _, m := range c.Methods {
		if m == nil {
			continue
		}
		w.line(signature(c.Name, m) + ";")
	}
	e.classRegion(w, c.Name)
	w.close()
	return w.lines
}

func (e *Emitter) preamble(w *writer, attrs []*model.Attribute) {
	w.line(Header)
	w.blank()
	for _, a := range attrs {
		if naming.IsCollectionType(a.Type) {
			w.line("import " + naming.CollectionImport + ";")
			w.blank()
			break
		}
	}
}

func (e *Emitter) classRegion(w *writer, class string) {
	if !e.opt.Fenced {
		return
	}
	w.blank()
	w.line(BeginMarker(ClassKey(class)))
	w.line(EndMarker(ClassKey(class)))
}

// body writes, in order: recorded calls, constructor field assignments,
// accessor statements and the default return.
func (e *Emitter) body(w *writer, c *model.DesignClass, attrs []*model.Attribute, mem Member) {
	m := mem.Method
	for _, call := range mem.Calls {
		for _, l := range call.Lines(w.unit) {
			w.line(l)
		}
	}

	ctor := m.IsConstructorOf(c.Name)
	if ctor {
		for _, p := range m.Parameters {
			if hasAttribute(attrs, p.Name) {
				w.line("this." + p.Name + " = " + p.Name + ";")
			}
		}
	}

	var ret string
	if !ctor {
		switch kind, attr := naming.MatchAccessor(m.Name, attrs); kind {
		case naming.AccessorSet:
			arg := attr.Name
			if len(m.Parameters) > 0 && m.Parameters[0].Name != "" {
				arg = m.Parameters[0].Name
			}
			w.line("this." + attr.Name + " = " + arg + ";")
		case naming.AccessorGet:
			if m.ReturnsValue() {
				ret = "return " + attr.Name + ";"
			}
		}
		if ret == "" {
			if v, ok := naming.DefaultValue(m.ReturnType); ok {
				ret = "return " + v + ";"
			}
		}
	}

	if e.opt.Fenced {
		key := MethodKey(c.Name, m.Name)
		w.line(BeginMarker(key))
		w.line(EndMarker(key))
	}
	if ret != "" {
		w.line(ret)
	}
}

func declaration(stereotype, kind, name string) string {
	parts := []string{"public"}
	if s := cleanStereotype(stereotype); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(append(parts, kind, name), " ")
}

// cleanStereotype drops guillemets so «abstract» and <<abstract>> both
// render as a modifier.
func cleanStereotype(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "<<"), "«")
	s = strings.TrimSuffix(strings.TrimSuffix(s, ">>"), "»")
	return strings.TrimSpace(s)
}

func attributeLine(a *model.Attribute) string {
	return modifier(a.Visibility) + typeOrObject(a.Type) + " " + a.Name + ";"
}

func signature(class string, m *model.Method) string {
	var b strings.Builder
	b.WriteString(modifier(m.Visibility))
	if !m.IsConstructorOf(class) {
		rt := strings.TrimSpace(m.ReturnType)
		if rt == "" {
			rt = "void"
		}
		b.WriteString(rt)
		b.WriteByte(' ')
	}
	b.WriteString(m.Name)
	b.WriteByte('(')
	for i, p := range m.Parameters {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(typeOrObject(p.Type))
		b.WriteByte(' ')
		b.WriteString(p.Name)
	}
	b.WriteByte(')')
	return b.String()
}

func modifier(v model.Visibility) string {
	if s := v.String(); s != "" {
		return s + " "
	}
	return ""
}

func typeOrObject(t string) string {
	if t = strings.TrimSpace(t); t != "" {
		return t
	}
	return "Object"
}

func hasAttribute(attrs []*model.Attribute, name string) bool {
	for _, a := range attrs {
		if a.Name == name {
			return true
		}
	}
	return false
}

// IsIdentifier reports whether name can name a generated type.
func IsIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}
