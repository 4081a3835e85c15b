// Package flatten walks the diagrams of a project, collects the classifiers
// that must be generated and records the structural facts that are not
// stored on the classifiers themselves: the inherited class, implemented
// interfaces and association-derived attributes.
package flatten

import (
	"fmt"
	"strings"

	"modelgen/internal/calltrace"
	"modelgen/internal/diag"
	"modelgen/internal/ir"
	"modelgen/internal/model"
	"modelgen/internal/naming"
)

// Flattener accumulates classifiers and IR facts across diagrams.
type Flattener struct {
	table *ir.Table
	rep   diag.Reporter
	set   classifierSet
}

// New returns a flattener writing into table. rep may be nil.
func New(table *ir.Table, rep diag.Reporter) *Flattener {
	if rep == nil {
		rep = diag.NopReporter{}
	}
	return &Flattener{table: table, rep: rep, set: newClassifierSet()}
}

// Project flattens every class diagram, then replays every sequence diagram,
// and returns the classifiers to generate (dcToGenerate).
func Project(p *model.Project, table *ir.Table, rep diag.Reporter) []model.Classifier {
	f := New(table, rep)
	if p == nil {
		return nil
	}
	for _, d := range p.ClassDiagrams {
		f.Structure(d)
	}
	for _, d := range p.SequenceDiagrams {
		f.Trace(d)
	}
	return f.Classifiers()
}

// Classifiers returns the collected classifiers in first-seen order.
func (f *Flattener) Classifiers() []model.Classifier {
	return f.set.list()
}

// Structure processes the placed elements of one class diagram in order.
func (f *Flattener) Structure(d *model.ClassDiagram) {
	if d == nil {
		return
	}
	for _, el := range d.Elements {
		switch el := el.(type) {
		case *model.ClassPlacement:
			if el.Class == nil {
				f.dangling(d.Name, "class placement")
				continue
			}
			f.table.Class(el.Class).Reset()
			f.collect(d.Name, el.Class)
		case *model.InterfacePlacement:
			if el.Interface == nil {
				f.dangling(d.Name, "interface placement")
				continue
			}
			f.collect(d.Name, el.Interface)
		case *model.Realization:
			if el.Class == nil || el.Interface == nil {
				f.dangling(d.Name, "realization")
				continue
			}
			f.table.Class(el.Class).AddImplement(el.Interface)
			f.collect(d.Name, el.Class)
			f.collect(d.Name, el.Interface)
		case *model.Generalization:
			f.generalize(d.Name, el)
		case *model.Association:
			f.associate(d.Name, el)
		case nil:
			continue
		default:
			diag.Warnf(f.rep, diag.LoadBadKind, diag.InDiagram(d.Name), "unhandled element %T", el)
		}
	}
}

// Trace collects the classes of every participant of d and replays its
// messages through the call-trace compiler.
func (f *Flattener) Trace(d *model.SequenceDiagram) calltrace.Result {
	if d == nil {
		return calltrace.Result{}
	}
	for _, r := range d.Participants {
		if cls := model.ClassOf(r); cls != nil {
			f.collect(d.Name, cls)
		}
	}
	for _, m := range d.Messages {
		if m == nil {
			continue
		}
		head := m.Head()
		for _, r := range []model.Role{head.Source, head.Target} {
			if cls := model.ClassOf(r); cls != nil {
				f.collect(d.Name, cls)
			}
		}
	}
	return calltrace.Compile(d, f.table, f.rep)
}

func (f *Flattener) collect(diagram string, c model.Classifier) {
	if strings.TrimSpace(model.NameOf(c)) == "" {
		diag.Warnf(f.rep, diag.FlatEmptyClassifier, diag.InDiagram(diagram), "%s without a name", kindOf(c))
	}
	f.set.add(c)
}

func (f *Flattener) dangling(diagram, what string) {
	diag.Warnf(f.rep, diag.FlatDanglingEnd, diag.InDiagram(diagram), "%s refers to a missing classifier", what)
}

func (f *Flattener) generalize(diagram string, g *model.Generalization) {
	if g.Sub == nil || g.Super == nil {
		f.dangling(diagram, "generalization")
		return
	}
	if g.Sub == g.Super {
		diag.Warnf(f.rep, diag.FlatSelfGeneralize, diag.InDiagram(diagram), "%s cannot extend itself", g.Sub.Name)
		return
	}
	f.table.Class(g.Sub).Extends = g.Super
	f.collect(diagram, g.Sub)
	f.collect(diagram, g.Super)
}

func (f *Flattener) associate(diagram string, a *model.Association) {
	if a.ClassA == nil || a.ClassB == nil {
		f.dangling(diagram, "association")
		return
	}
	f.collect(diagram, a.ClassA)
	f.collect(diagram, a.ClassB)
	switch a.Direction {
	case model.DirAB:
		f.derive(a.ClassA, a.ClassB, a.EndB)
	case model.DirBA:
		f.derive(a.ClassB, a.ClassA, a.EndA)
	case model.DirBoth:
		f.derive(a.ClassA, a.ClassB, a.EndB)
		f.derive(a.ClassB, a.ClassA, a.EndA)
	}
}

// derive adds to owner the attribute that navigates to target through end.
func (f *Flattener) derive(owner, target *model.DesignClass, end model.AssocEnd) {
	name := strings.TrimSpace(end.Name)
	if name == "" {
		name = naming.RoleName(target.Name)
	}
	typ := target.Name
	if end.IsMany() {
		typ = naming.CollectionType(target.Name)
	}
	f.table.Class(owner).AddAttribute(&model.Attribute{
		Name:       name,
		Type:       typ,
		Visibility: model.VisPrivate,
	})
}

func kindOf(c model.Classifier) string {
	switch c.(type) {
	case *model.DesignClass:
		return "class"
	case *model.Interface:
		return "interface"
	}
	return fmt.Sprintf("%T", c)
}
