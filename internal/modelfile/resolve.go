package modelfile

import (
	"errors"
	"fmt"
	"strings"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"

	"modelgen/internal/diag"
	"modelgen/internal/model"
)

// ErrInvalidModel is returned when a document has unresolvable content. The
// individual problems are reported as error diagnostics.
var ErrInvalidModel = errors.New("invalid model")

// Resolve links doc into a project. file labels diagnostics and becomes
// Project.Path. Every problem is reported to rep before the error returns.
func Resolve(doc *Document, file string, rep diag.Reporter) (*model.Project, error) {
	if doc == nil {
		return nil, fmt.Errorf("%s: %w: empty document", file, ErrInvalidModel)
	}
	r := &resolver{
		file:       file,
		rep:        rep,
		classes:    make(map[string]*model.DesignClass),
		interfaces: make(map[string]*model.Interface),
	}
	p := &model.Project{Name: ident(doc.Project.Name), Path: file}
	r.declare(doc, p)
	for i := range doc.Classes {
		r.members(&doc.Classes[i], r.classes[ident(doc.Classes[i].Name)])
	}
	for i := range doc.Interfaces {
		iface := r.interfaces[ident(doc.Interfaces[i].Name)]
		if iface == nil {
			continue
		}
		for _, m := range doc.Interfaces[i].Methods {
			if method := r.method(iface.Name, m); method != nil {
				iface.Methods = append(iface.Methods, method)
			}
		}
	}
	for i := range doc.ClassDiagrams {
		p.ClassDiagrams = append(p.ClassDiagrams, r.classDiagram(&doc.ClassDiagrams[i]))
	}
	for i := range doc.SequenceDiagrams {
		p.SequenceDiagrams = append(p.SequenceDiagrams, r.sequenceDiagram(&doc.SequenceDiagrams[i]))
	}
	if r.problems > 0 {
		return p, fmt.Errorf("%s: %w: %d problem(s)", file, ErrInvalidModel, r.problems)
	}
	return p, nil
}

type resolver struct {
	file       string
	rep        diag.Reporter
	classes    map[string]*model.DesignClass
	interfaces map[string]*model.Interface
	problems   int
}

// ident trims and NFC-normalizes an identifier so that visually equal names
// resolve to the same classifier.
func ident(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func (r *resolver) errorf(code diag.Code, where diag.Location, format string, args ...any) {
	r.problems++
	where.File = r.file
	diag.Errorf(r.rep, code, where, format, args...)
}

func (r *resolver) declare(doc *Document, p *model.Project) {
	for _, c := range doc.Classes {
		name := ident(c.Name)
		if r.taken(name) {
			r.errorf(diag.LoadDuplicateName, diag.ForClassifier(name), "classifier %q is declared more than once", name)
			continue
		}
		cls := model.NewClass(name)
		cls.Stereotype = strings.TrimSpace(c.Stereotype)
		r.classes[name] = cls
		p.Classes = append(p.Classes, cls)
	}
	for _, i := range doc.Interfaces {
		name := ident(i.Name)
		if r.taken(name) {
			r.errorf(diag.LoadDuplicateName, diag.ForClassifier(name), "classifier %q is declared more than once", name)
			continue
		}
		iface := model.NewInterface(name)
		iface.Stereotype = strings.TrimSpace(i.Stereotype)
		r.interfaces[name] = iface
		p.Interfaces = append(p.Interfaces, iface)
	}
}

func (r *resolver) taken(name string) bool {
	_, isClass := r.classes[name]
	_, isIface := r.interfaces[name]
	return isClass || isIface
}

func (r *resolver) members(doc *ClassDoc, cls *model.DesignClass) {
	if cls == nil {
		return
	}
	for _, a := range doc.Attributes {
		vis, ok := visibility(a.Visibility, model.VisPrivate)
		if !ok {
			r.errorf(diag.LoadBadVisibility, diag.ForClassifier(cls.Name), "attribute %q: unknown visibility %q", a.Name, a.Visibility)
		}
		cls.Attributes = append(cls.Attributes, &model.Attribute{
			Name:       ident(a.Name),
			Type:       strings.TrimSpace(a.Type),
			Visibility: vis,
		})
	}
	for _, m := range doc.Methods {
		if method := r.method(cls.Name, m); method != nil {
			cls.Methods = append(cls.Methods, method)
		}
	}
}

func (r *resolver) method(owner string, doc MethodDoc) *model.Method {
	vis, ok := visibility(doc.Visibility, model.VisPublic)
	if !ok {
		r.errorf(diag.LoadBadVisibility, diag.ForClassifier(owner), "method %q: unknown visibility %q", doc.Name, doc.Visibility)
	}
	params, err := Parameters(doc.Params)
	if err != nil {
		r.errorf(diag.LoadBadParameter, diag.ForClassifier(owner), "method %q: %v", doc.Name, err)
	}
	return &model.Method{
		Name:       ident(doc.Name),
		Visibility: vis,
		ReturnType: strings.TrimSpace(doc.Return),
		Parameters: params,
	}
}

// visibility parses s; empty input yields def.
func visibility(s string, def model.Visibility) (model.Visibility, bool) {
	if strings.TrimSpace(s) == "" {
		return def, true
	}
	return model.ParseVisibility(s)
}

// Parameters parses "Type name" strings. A single token is a name of
// unspecified type.
func Parameters(decls []string) ([]model.Parameter, error) {
	if len(decls) == 0 {
		return nil, nil
	}
	out := make([]model.Parameter, 0, len(decls))
	for _, decl := range decls {
		s := strings.TrimSpace(decl)
		if s == "" {
			return out, fmt.Errorf("empty parameter")
		}
		i := strings.LastIndexAny(s, " \t")
		if i < 0 {
			out = append(out, model.Parameter{Name: ident(s)})
			continue
		}
		out = append(out, model.Parameter{
			Type: strings.TrimSpace(s[:i]),
			Name: ident(s[i+1:]),
		})
	}
	return out, nil
}

func (r *resolver) class(name string, where diag.Location) *model.DesignClass {
	name = ident(name)
	if cls, ok := r.classes[name]; ok {
		return cls
	}
	r.errorf(diag.LoadUnknownClass, where, "unknown class %q", name)
	return nil
}

func (r *resolver) iface(name string, where diag.Location) *model.Interface {
	name = ident(name)
	if i, ok := r.interfaces[name]; ok {
		return i
	}
	r.errorf(diag.LoadUnknownInterface, where, "unknown interface %q", name)
	return nil
}

func (r *resolver) classDiagram(doc *ClassDiagramDoc) *model.ClassDiagram {
	d := &model.ClassDiagram{Name: ident(doc.Name)}
	where := diag.InDiagram(d.Name)
	for _, el := range doc.Elements {
		var placed model.Element
		switch strings.ToLower(strings.TrimSpace(el.Kind)) {
		case "class":
			placed = &model.ClassPlacement{Class: r.class(el.Class, where)}
		case "interface":
			placed = &model.InterfacePlacement{Interface: r.iface(el.Interface, where)}
		case "realization":
			placed = &model.Realization{Class: r.class(el.Class, where), Interface: r.iface(el.Interface, where)}
		case "generalization":
			placed = &model.Generalization{Sub: r.class(el.Sub, where), Super: r.class(el.Super, where)}
		case "association":
			dir, ok := model.ParseDirection(el.Direction)
			if !ok {
				r.errorf(diag.LoadBadKind, where, "unknown association direction %q", el.Direction)
			}
			placed = &model.Association{
				ClassA:    r.class(el.A, where),
				ClassB:    r.class(el.B, where),
				EndA:      model.AssocEnd{Name: ident(el.RoleA), Multiplicity: strings.TrimSpace(el.MultA)},
				EndB:      model.AssocEnd{Name: ident(el.RoleB), Multiplicity: strings.TrimSpace(el.MultB)},
				Direction: dir,
			}
		default:
			r.errorf(diag.LoadBadKind, where, "unknown element kind %q", el.Kind)
			continue
		}
		d.Elements = append(d.Elements, placed)
	}
	return d
}

func (r *resolver) sequenceDiagram(doc *SequenceDiagramDoc) *model.SequenceDiagram {
	d := &model.SequenceDiagram{Name: ident(doc.Name)}
	where := diag.InDiagram(d.Name)
	roles := make(map[string]model.Role, len(doc.Participants))
	for _, pd := range doc.Participants {
		name := ident(pd.Name)
		key := participantKey(name, pd.Class)
		if _, dup := roles[key]; dup {
			r.errorf(diag.LoadDuplicateName, where, "participant %q is declared more than once", key)
			continue
		}
		var role model.Role
		switch strings.ToLower(strings.TrimSpace(pd.Kind)) {
		case "object", "":
			role = &model.SDObject{Name: name, Class: r.class(pd.Class, where)}
		case "multi":
			role = &model.MultiObject{Name: name, Class: r.class(pd.Class, where)}
		case "actor":
			role = &model.ActorInstance{Name: name}
		case "system":
			role = &model.SystemInstance{Name: name}
		default:
			r.errorf(diag.LoadBadKind, where, "participant %q: unknown kind %q", key, pd.Kind)
			continue
		}
		roles[key] = role
		d.Participants = append(d.Participants, role)
	}

	lookup := func(ref string, where diag.Location) model.Role {
		ref = ident(ref)
		if ref == "" {
			return nil
		}
		if role, ok := roles[ref]; ok {
			return role
		}
		r.errorf(diag.LoadUnknownRole, where, "unknown participant %q", ref)
		return nil
	}

	for _, md := range doc.Messages {
		rank, err := safecast.Conv[int](md.Rank)
		if err != nil {
			r.errorf(diag.LoadRankOverflow, where, "rank %d does not fit: %v", md.Rank, err)
			continue
		}
		at := diag.AtRank(d.Name, rank)
		env := model.Envelope{Source: lookup(md.From, at), Target: lookup(md.To, at), Rank: rank}
		params, err := Parameters(md.Params)
		if err != nil {
			r.errorf(diag.LoadBadParameter, at, "message %q: %v", md.Name, err)
		}
		var msg model.Message
		switch strings.ToLower(strings.TrimSpace(md.Kind)) {
		case "create":
			msg = &model.CreateMessage{Envelope: env, Parameters: params}
		case "call":
			msg = &model.CallMessage{
				Envelope:   env,
				Name:       ident(md.Name),
				Parameters: params,
				ReturnType: strings.TrimSpace(md.Return),
				Iterative:  md.Iterative,
				Reflective: md.Reflective || (env.Source != nil && env.Source == env.Target),
			}
		case "destroy":
			msg = &model.DestroyMessage{Envelope: env}
		case "return":
			msg = &model.ReturnMessage{Envelope: env, Name: ident(md.Name)}
		default:
			r.errorf(diag.LoadBadKind, at, "unknown message kind %q", md.Kind)
			continue
		}
		d.Messages = append(d.Messages, msg)
	}
	return d
}

// participantKey is the name messages use to refer to a participant;
// anonymous instances are referred to as ":Class".
func participantKey(name, class string) string {
	if name != "" {
		return name
	}
	return ":" + ident(class)
}
