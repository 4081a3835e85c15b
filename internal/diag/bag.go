package diag

import (
	"fmt"
	"sort"
)

type Bag struct {
	items []*Diagnostic
	max   int
}

func NewBag(max int) *Bag {
	if max <= 0 {
		max = 1
	}
	return &Bag{
		items: make([]*Diagnostic, 0, min(max, 64)),
		max:   max,
	}
}

// Add appends d while the limit allows it.
// Returns false when the bag is full.
func (b *Bag) Add(d *Diagnostic) bool {
	if d == nil || len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() int {
	return b.max
}

// HasErrors reports whether any diagnostic is at least SevError.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any diagnostic is at least SevWarning.
func (b *Bag) HasWarnings() bool {
	for _, d := range b.items {
		if d.Severity >= SevWarning {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns the backing slice. Do not modify it.
func (b *Bag) Items() []*Diagnostic {
	return b.items
}

// Codes lists the codes in bag order.
func (b *Bag) Codes() []Code {
	out := make([]Code, 0, len(b.items))
	for _, d := range b.items {
		out = append(out, d.Code)
	}
	return out
}

// Merge appends the diagnostics of other, growing the limit when needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if total := len(b.items) + len(other.items); total > b.max {
		b.max = total
	}
	b.items = append(b.items, other.items...)
}

// Sort orders by diagram, rank, classifier, severity (desc), code.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i].Where, b.items[j].Where
		if di.File != dj.File {
			return di.File < dj.File
		}
		if di.Diagram != dj.Diagram {
			return di.Diagram < dj.Diagram
		}
		if di.Rank != dj.Rank {
			return di.Rank < dj.Rank
		}
		if di.Classifier != dj.Classifier {
			return di.Classifier < dj.Classifier
		}
		if b.items[i].Severity != b.items[j].Severity {
			return b.items[i].Severity > b.items[j].Severity
		}
		return b.items[i].Code < b.items[j].Code
	})
}

// Dedup drops repeats of the same code at the same location.
func (b *Bag) Dedup() {
	seen := make(map[string]bool)
	kept := make([]*Diagnostic, 0, len(b.items))
	for _, d := range b.items {
		key := fmt.Sprintf("%s:%s", d.Code.ID(), d.Where.String())
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, d)
	}
	b.items = kept
}
