package modelfile

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"modelgen/internal/diag"
	"modelgen/internal/model"
)

func TestLoadSample(t *testing.T) {
	bag := diag.NewBag(16)
	p, err := Load(filepath.Join("testdata", "shop.toml"), diag.BagReporter{Bag: bag})
	if err != nil {
		t.Fatalf("Load: %v (%s)", err, diag.FormatShort(bag.Items()))
	}
	if p.Name != "shop" || len(p.Classes) != 4 || len(p.Interfaces) != 1 {
		t.Fatalf("project = %+v", p)
	}
	mtd1 := p.Class("Class1").Method("mtd1")
	want := &model.Method{
		Name:       "mtd1",
		Visibility: model.VisProtected,
		ReturnType: "int",
		Parameters: []model.Parameter{{Name: "x", Type: "int"}},
	}
	if diff := cmp.Diff(want, mtd1); diff != "" {
		t.Fatalf("mtd1 (-want +got):\n%s", diff)
	}
	if got := p.Class("Order").Attribute("total").Visibility; got != model.VisPrivate {
		t.Fatalf("default attribute visibility = %v", got)
	}

	assoc, ok := p.ClassDiagrams[0].Elements[2].(*model.Association)
	if !ok || assoc.ClassA != p.Class("Class1") || assoc.ClassB != p.Class("Class2") || !assoc.EndB.IsMany() {
		t.Fatalf("association = %#v", p.ClassDiagrams[0].Elements[2])
	}

	sd := p.SequenceDiagrams[0]
	if len(sd.Participants) != 3 || len(sd.Messages) != 4 {
		t.Fatalf("sequence diagram = %+v", sd)
	}
	call := sd.Messages[1].(*model.CallMessage)
	if _, multi := call.Target.(*model.MultiObject); !multi || !call.Iterative || call.Source != sd.Participants[1] {
		t.Fatalf("iterative call = %+v", call)
	}
	if ret := sd.Messages[3].(*model.ReturnMessage); ret.Name != "" || ret.Target != sd.Participants[0] {
		t.Fatalf("final return = %+v", ret)
	}
}

func TestResolveReportsEveryProblem(t *testing.T) {
	doc := &Document{
		Classes: []ClassDoc{
			{Name: "A", Methods: []MethodDoc{{Name: "m", Visibility: "secret", Params: []string{" "}}}},
			{Name: "A"},
		},
		ClassDiagrams: []ClassDiagramDoc{{Name: "d", Elements: []ElementDoc{
			{Kind: "class", Class: "Missing"},
			{Kind: "dependency"},
		}}},
		SequenceDiagrams: []SequenceDiagramDoc{{Name: "s", Messages: []MessageDoc{
			{Kind: "call", Rank: 1, To: "ghost", Name: "x"},
			{Kind: "teleport", Rank: 2},
		}}},
	}
	bag := diag.NewBag(32)
	_, err := Resolve(doc, "bad.toml", diag.BagReporter{Bag: bag})
	if !errors.Is(err, ErrInvalidModel) {
		t.Fatalf("err = %v", err)
	}
	want := []diag.Code{
		diag.LoadDuplicateName,
		diag.LoadBadVisibility,
		diag.LoadBadParameter,
		diag.LoadUnknownClass,
		diag.LoadBadKind,
		diag.LoadUnknownRole,
		diag.LoadBadKind,
	}
	if diff := cmp.Diff(want, bag.Codes()); diff != "" {
		t.Fatalf("codes (-want +got):\n%s", diff)
	}
	if got := bag.Items()[0].Where.File; got != "bad.toml" {
		t.Fatalf("diagnostic file = %q", got)
	}
}

func TestNamesAreNormalized(t *testing.T) {
	decomposed := "Cafe\u0301"
	doc := &Document{
		Classes:       []ClassDoc{{Name: "Caf\u00e9"}},
		ClassDiagrams: []ClassDiagramDoc{{Elements: []ElementDoc{{Kind: "class", Class: " " + decomposed}}}},
	}
	p, err := Resolve(doc, "n.toml", nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if p.ClassDiagrams[0].Elements[0].(*model.ClassPlacement).Class != p.Classes[0] {
		t.Fatalf("decomposed name did not resolve to the declared class")
	}
}

func TestParameters(t *testing.T) {
	got, err := Parameters([]string{"int x", "List<Item>  items", "token"})
	if err != nil {
		t.Fatalf("Parameters: %v", err)
	}
	want := []model.Parameter{{Type: "int", Name: "x"}, {Type: "List<Item>", Name: "items"}, {Name: "token"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Parameters (-want +got):\n%s", diff)
	}
}

func TestUnknownKeysRejected(t *testing.T) {
	_, err := DecodeTOML([]byte("[project]\nname = \"x\"\ncolour = \"red\"\n"), "x.toml")
	if err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	doc, err := ReadDocument(filepath.Join("testdata", "shop.toml"))
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	path := filepath.Join(t.TempDir(), "shop"+SnapshotExt)
	if err := WriteSnapshot(path, doc); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	back, err := ReadDocument(path)
	if err != nil {
		t.Fatalf("ReadDocument(snapshot): %v", err)
	}
	if diff := cmp.Diff(doc, back); diff != "" {
		t.Fatalf("snapshot changed the document (-want +got):\n%s", diff)
	}
	if _, err := DecodeSnapshot([]byte{0xc1}, "junk"); err == nil {
		t.Fatalf("junk decoded")
	}
}
