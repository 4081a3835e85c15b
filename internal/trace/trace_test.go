package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{"off": LevelOff, "PHASE": LevelPhase, "detail": LevelDetail, "debug": LevelDebug} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestLevelFiltersScopes(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelPhase, ScopeStage, true},
		{LevelPhase, ScopeUnit, false},
		{LevelDetail, ScopeUnit, true},
		{LevelDetail, ScopeMessage, false},
		{LevelDebug, ScopeMessage, true},
		{LevelOff, ScopeRun, false},
	}
	for _, tc := range cases {
		if got := tc.level.ShouldEmit(tc.scope); got != tc.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tc.level, tc.scope, got, tc.want)
		}
	}
}

func TestStreamSpanText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)
	run := Begin(tr, ScopeRun, "gen", 0)
	unit := Begin(tr, ScopeUnit, "emit:Order", run.ID())
	unit.WithExtra("lines", "12").End("written")
	Begin(tr, ScopeMessage, "call", unit.ID()).End("")
	run.End("")

	out := buf.String()
	for _, want := range []string{"→ gen", "    → emit:Order", "← emit:Order (written) {lines=12}", "← gen"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "call") {
		t.Fatalf("message scope leaked at detail level:\n%s", out)
	}
}

func TestRingKeepsLastEvents(t *testing.T) {
	r := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(r, ScopeMessage, name, "", 0)
	}
	snap := r.Snapshot()
	if len(snap) != 2 || snap[0].Name != "b" || snap[1].Name != "c" {
		t.Fatalf("snapshot = %+v", snap)
	}
	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatNDJSON); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if n := strings.Count(buf.String(), "\n"); n != 2 {
		t.Fatalf("dumped %d lines", n)
	}
	if r.Dropped() != 1 {
		t.Fatalf("dropped = %d", r.Dropped())
	}
	buf.Reset()
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "... 1 earlier event(s) not kept\n") {
		t.Fatalf("text dump = %q", buf.String())
	}
}

func TestContextKeepsTracerAndSpan(t *testing.T) {
	r := NewRingTracer(4, LevelDebug)
	ctx := WithSpanContext(WithTracer(context.Background(), r), SpanContext{SpanID: 7})
	if FromContext(ctx) != r || CurrentSpan(ctx).SpanID != 7 {
		t.Fatalf("binding lost: %v %v", FromContext(ctx), CurrentSpan(ctx))
	}
	ctx = WithTracer(ctx, nil)
	if FromContext(ctx) != Nop || CurrentSpan(ctx).SpanID != 7 {
		t.Fatalf("rebinding the tracer dropped the span")
	}
	if CurrentSpan(context.Background()).SpanID != 0 {
		t.Fatalf("top level must have no span")
	}
}

func TestNewAndContext(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("off tracer: %v %v", tr, err)
	}
	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if Ring(tr) == nil {
		t.Fatalf("both mode must carry a ring")
	}
	ctx := WithTracer(context.Background(), tr)
	if FromContext(ctx) != tr {
		t.Fatalf("tracer lost in context")
	}
	if FromContext(context.Background()) != Nop {
		t.Fatalf("missing tracer must be Nop")
	}
}
