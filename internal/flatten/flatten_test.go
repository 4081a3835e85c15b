package flatten

import (
	"testing"

	"modelgen/internal/diag"
	"modelgen/internal/ir"
	"modelgen/internal/model"
)

func attrNames(rec *ir.ClassIR) map[string]string {
	out := map[string]string{}
	if rec == nil {
		return out
	}
	for _, a := range rec.Attributes {
		out[a.Name] = a.Type
	}
	return out
}

func TestUnidirectionalManyAssociation(t *testing.T) {
	c1, c2 := model.NewClass("Class1"), model.NewClass("Class2")
	p := &model.Project{
		ClassDiagrams: []*model.ClassDiagram{{
			Name: "main",
			Elements: []model.Element{
				&model.ClassPlacement{Class: c1},
				&model.ClassPlacement{Class: c2},
				&model.Association{
					ClassA:    c1,
					ClassB:    c2,
					EndB:      model.AssocEnd{Multiplicity: "*"},
					Direction: model.DirAB,
				},
			},
		}},
	}
	table := ir.NewTable()
	got := Project(p, table, nil)
	if len(got) != 2 || got[0] != model.Classifier(c1) || got[1] != model.Classifier(c2) {
		t.Fatalf("dcToGenerate = %v", got)
	}
	a1 := attrNames(table.LookupClass(c1))
	if len(a1) != 1 || a1["class2"] != "List<Class2>" {
		t.Fatalf("Class1 attributes = %v", a1)
	}
	if a2 := attrNames(table.LookupClass(c2)); len(a2) != 0 {
		t.Fatalf("Class2 gained attributes: %v", a2)
	}
}

func TestAssociationDirections(t *testing.T) {
	cases := []struct {
		name  string
		dir   model.Direction
		wantA map[string]string
		wantB map[string]string
	}{
		{"ab", model.DirAB, map[string]string{"items": "Item"}, map[string]string{}},
		{"ba", model.DirBA, map[string]string{}, map[string]string{"owner": "List<Order>"}},
		{"both", model.DirBoth, map[string]string{"items": "Item"}, map[string]string{"owner": "List<Order>"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order, item := model.NewClass("Order"), model.NewClass("Item")
			d := &model.ClassDiagram{Elements: []model.Element{&model.Association{
				ClassA:    order,
				ClassB:    item,
				EndA:      model.AssocEnd{Name: "owner", Multiplicity: "0..*"},
				EndB:      model.AssocEnd{Name: "items", Multiplicity: "1..5"},
				Direction: tc.dir,
			}}}
			table := ir.NewTable()
			New(table, nil).Structure(d)
			if got := attrNames(table.LookupClass(order)); !equalMaps(got, tc.wantA) {
				t.Fatalf("Order attributes = %v, want %v", got, tc.wantA)
			}
			if got := attrNames(table.LookupClass(item)); !equalMaps(got, tc.wantB) {
				t.Fatalf("Item attributes = %v, want %v", got, tc.wantB)
			}
		})
	}
}

func TestAssociationAttributesDeduplicatedAcrossDiagrams(t *testing.T) {
	a, b := model.NewClass("A"), model.NewClass("B")
	assoc := &model.Association{ClassA: a, ClassB: b, Direction: model.DirAB}
	p := &model.Project{ClassDiagrams: []*model.ClassDiagram{
		{Name: "one", Elements: []model.Element{assoc}},
		{Name: "two", Elements: []model.Element{&model.ClassPlacement{Class: a}, assoc}},
	}}
	table := ir.NewTable()
	got := Project(p, table, nil)
	if len(got) != 2 {
		t.Fatalf("classifiers = %v", got)
	}
	if rec := table.LookupClass(a); len(rec.Attributes) != 1 {
		t.Fatalf("A attributes = %+v", rec.Attributes)
	}
}

func TestPlacementResetsInheritance(t *testing.T) {
	base, sub := model.NewClass("Base"), model.NewClass("Sub")
	iface := model.NewInterface("Shape")
	p := &model.Project{ClassDiagrams: []*model.ClassDiagram{
		{Name: "first", Elements: []model.Element{
			&model.ClassPlacement{Class: sub},
			&model.Generalization{Sub: sub, Super: base},
			&model.Realization{Class: sub, Interface: iface},
			&model.Realization{Class: sub, Interface: iface},
		}},
	}}
	table := ir.NewTable()
	Project(p, table, nil)
	rec := table.LookupClass(sub)
	if rec.Extends != base || len(rec.Implements) != 1 || rec.Implements[0] != iface {
		t.Fatalf("after first diagram: %+v", rec)
	}

	p.ClassDiagrams = append(p.ClassDiagrams, &model.ClassDiagram{
		Name:     "second",
		Elements: []model.Element{&model.ClassPlacement{Class: sub}},
	})
	table = ir.NewTable()
	Project(p, table, nil)
	rec = table.LookupClass(sub)
	if rec.Extends != nil || len(rec.Implements) != 0 {
		t.Fatalf("placement in a later diagram must reset inheritance: %+v", rec)
	}
}

func TestTraceParticipantsAreCollected(t *testing.T) {
	shown := model.NewClass("Shown")
	hidden := model.NewClass("OnlyInTrace")
	obj := &model.SDObject{Name: "o", Class: hidden}
	p := &model.Project{
		ClassDiagrams: []*model.ClassDiagram{{Elements: []model.Element{&model.ClassPlacement{Class: shown}}}},
		SequenceDiagrams: []*model.SequenceDiagram{{
			Name:         "t",
			Participants: []model.Role{&model.ActorInstance{Name: "u"}, obj},
			Messages: []model.Message{&model.CallMessage{
				Envelope: model.Envelope{Source: &model.ActorInstance{Name: "u"}, Target: obj, Rank: 1},
				Name:     "go",
			}},
		}},
	}
	table := ir.NewTable()
	got := Project(p, table, nil)
	if len(got) != 2 || got[1] != model.Classifier(hidden) {
		t.Fatalf("classifiers = %v", got)
	}
	if table.LookupClass(hidden).Method("go") == nil {
		t.Fatalf("trace was not compiled")
	}
}

func TestDanglingElementsAreReported(t *testing.T) {
	a := model.NewClass("A")
	d := &model.ClassDiagram{Name: "broken", Elements: []model.Element{
		&model.Association{ClassA: a},
		&model.Generalization{Sub: a, Super: a},
		&model.Realization{Class: a},
		nil,
	}}
	bag := diag.NewBag(8)
	f := New(ir.NewTable(), diag.BagReporter{Bag: bag})
	f.Structure(d)
	want := []diag.Code{diag.FlatDanglingEnd, diag.FlatSelfGeneralize, diag.FlatDanglingEnd}
	got := bag.Codes()
	if len(got) != len(want) {
		t.Fatalf("codes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("codes = %v, want %v", got, want)
		}
	}
	if len(f.Classifiers()) != 0 {
		t.Fatalf("dangling elements must not collect classifiers: %v", f.Classifiers())
	}
}

func equalMaps(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
