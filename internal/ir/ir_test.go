package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"modelgen/internal/model"
)

func TestCallRendering(t *testing.T) {
	tests := []struct {
		name string
		call Call
		want []string
	}{
		{
			name: "plain",
			call: Call{Receiver: "this", Callee: "mtd", Args: []string{"a", "b"}},
			want: []string{"this.mtd(a, b);"},
		},
		{
			name: "bound and declared",
			call: Call{Receiver: "item", Callee: "price", Result: "x", ResultType: "double", Declare: true},
			want: []string{"double x = item.price();"},
		},
		{
			name: "bound to existing",
			call: Call{Receiver: "item", Callee: "price", Result: "total", ResultType: "double"},
			want: []string{"total = item.price();"},
		},
		{
			name: "creation",
			call: Call{Callee: "Item", New: true, Args: []string{"id"}, Result: "item", ResultType: "Item", Declare: true},
			want: []string{"Item item = new Item(id);"},
		},
		{
			name: "fixed loop",
			call: Call{Receiver: "this", Callee: "tick", Loop: LoopFixed},
			want: []string{"for (int i = 0; i < 10; i++) {", "  this.tick();", "}"},
		},
		{
			name: "element loop",
			call: Call{Receiver: LoopVar, Callee: "ship", Loop: LoopEach, ElemType: "Item", Collection: "items"},
			want: []string{"for (Item obj : items) {", "  obj.ship();", "}"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.call.Lines("  ")); diff != "" {
				t.Fatalf("Lines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCallFragmentAndRebind(t *testing.T) {
	c := &Call{Receiver: "order", Callee: "total", Result: "x", ResultType: "int", Declare: true}
	if c.Fragment() != ".total(" {
		t.Fatalf("Fragment = %q", c.Fragment())
	}
	c.Rebind("sum", false)
	if got := c.Statement(); got != "sum = order.total();" {
		t.Fatalf("Statement after rebind = %q", got)
	}
	c.Rebind("", true)
	if c.Result != "sum" {
		t.Fatalf("empty rebind changed the result")
	}
	unbound := &Call{Receiver: "order", Callee: "close"}
	unbound.Rebind("r", true)
	if unbound.Result != "" {
		t.Fatalf("rebind bound a void call")
	}
	if (&Call{Callee: "Order", New: true}).Fragment() != "new Order(" {
		t.Fatalf("creation fragment mismatch")
	}
}

func TestTableIsKeyedByIdentity(t *testing.T) {
	tbl := NewTable()
	a, b := model.NewClass("Same"), model.NewClass("Same")
	if tbl.Class(a) == tbl.Class(b) {
		t.Fatalf("equal names share a record")
	}
	if tbl.LookupClass(model.NewClass("Other")) != nil {
		t.Fatalf("lookup created a record")
	}
	m := &model.Method{Name: "run"}
	rec := tbl.Method(m)
	if rec.ReturnParam != DefaultReturnParam || tbl.Method(m) != rec || tbl.LookupMethod(m) != rec {
		t.Fatalf("method record mismatch")
	}
	var nilTable *Table
	if nilTable.LookupClass(a) != nil || nilTable.LookupMethod(m) != nil {
		t.Fatalf("nil table lookups")
	}
}

func TestClassIRCollections(t *testing.T) {
	tbl := NewTable()
	c := model.NewClass("Order")
	c.Attributes = []*model.Attribute{{Name: "items", Type: "int"}}
	rec := tbl.Class(c)

	iface := model.NewInterface("Priced")
	if !rec.AddImplement(iface) || rec.AddImplement(iface) || rec.AddImplement(nil) {
		t.Fatalf("AddImplement dedup failed")
	}
	rec.Extends = model.NewClass("Base")
	rec.Reset()
	if rec.Extends != nil || len(rec.Implements) != 0 {
		t.Fatalf("Reset kept inheritance")
	}

	if !rec.AddAttribute(&model.Attribute{Name: "items", Type: "List<Item>"}) {
		t.Fatalf("derived attribute rejected")
	}
	if rec.AddAttribute(&model.Attribute{Name: "items"}) {
		t.Fatalf("duplicate derived attribute accepted")
	}
	rec.AddAttribute(&model.Attribute{Name: "customer", Type: "Customer"})
	attrs := tbl.Attributes(c)
	if len(attrs) != 2 || attrs[0].Type != "int" || attrs[1].Name != "customer" {
		t.Fatalf("Attributes = %+v", attrs)
	}
	if !tbl.HasAttribute(c, "customer") || !tbl.HasAttribute(c, "items") || tbl.HasAttribute(c, "x") {
		t.Fatalf("HasAttribute mismatch")
	}

	if !rec.AddMethod(&model.Method{Name: "checkout"}) || rec.AddMethod(&model.Method{Name: "checkout"}) {
		t.Fatalf("AddMethod dedup failed")
	}
	if rec.Method("checkout") == nil {
		t.Fatalf("method lookup failed")
	}
}

func TestCalledMethods(t *testing.T) {
	m := &MethodIR{}
	if idx := m.AddCall(&Call{Receiver: "a", Callee: "f"}); idx != 0 {
		t.Fatalf("index = %d", idx)
	}
	m.AddCall(&Call{Receiver: LoopVar, Callee: "g", Loop: LoopEach, ElemType: "B", Collection: "bs"})
	want := []string{"a.f();", "for (B obj : bs) { obj.g(); }"}
	if diff := cmp.Diff(want, m.CalledMethods()); diff != "" {
		t.Fatalf("CalledMethods mismatch (-want +got):\n%s", diff)
	}
	var nilRec *MethodIR
	if nilRec.CalledMethods() != nil {
		t.Fatalf("nil record returned calls")
	}
}
