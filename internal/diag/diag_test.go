package diag

import "testing"

func TestFormatShortDiagnostics(t *testing.T) {
	bag := NewBag(10)
	r := BagReporter{Bag: bag}
	Warnf(r, TrcOrphanReturn, AtRank("checkout", 4), "return %q without\n an open call", "total")
	Errorf(r, GenIOFailure, ForClassifier("Order"), "cannot write")
	r.Report(FlatDanglingEnd, SevInfo, InDiagram("main"), "dangling")

	bag.Sort()
	expected := "error GEN4002 Order cannot write\n" +
		"warning TRC3001 checkout:#4 return \"total\" without an open call\n" +
		"info FLT2001 main dangling"
	if got := FormatShort(bag.Items()); got != expected {
		t.Fatalf("unexpected diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Fatalf("expected errors and warnings")
	}
}

func TestBagLimitAndDedup(t *testing.T) {
	bag := NewBag(2)
	r := BagReporter{Bag: bag}
	r.Report(TrcDuplicateRank, SevWarning, AtRank("d", 1), "dup")
	r.Report(TrcDuplicateRank, SevWarning, AtRank("d", 1), "dup")
	r.Report(TrcDuplicateRank, SevWarning, AtRank("d", 2), "dup")
	if bag.Len() != 2 {
		t.Fatalf("Len = %d, want 2 (limit)", bag.Len())
	}
	bag.Dedup()
	if bag.Len() != 1 {
		t.Fatalf("Len after dedup = %d, want 1", bag.Len())
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	for i := 0; i < 3; i++ {
		r.Report(TrcForeignCaller, SevWarning, AtRank("d", 7), "foreign")
	}
	r.Report(TrcForeignCaller, SevWarning, AtRank("d", 8), "foreign")
	if bag.Len() != 2 {
		t.Fatalf("Len = %d, want 2", bag.Len())
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LoadUnknownClass: "LOD1001",
		FlatDanglingEnd:  "FLT2001",
		TrcOrphanReturn:  "TRC3001",
		GenIOFailure:     "GEN4002",
		UnknownCode:      "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Fatalf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if TrcOrphanReturn.Title() != "Return without an open call" {
		t.Fatalf("unexpected title %q", TrcOrphanReturn.Title())
	}
}
