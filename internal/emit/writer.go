package emit

import "strings"

// writer accumulates lines at the current indentation level.
type writer struct {
	unit  string
	level int
	lines []string
}

func newWriter(opt Options) *writer {
	return &writer{unit: opt.Unit()}
}

// line writes s at the current level; empty s writes a blank line.
func (w *writer) line(s string) {
	if s == "" {
		w.lines = append(w.lines, "")
		return
	}
	w.lines = append(w.lines, strings.Repeat(w.unit, w.level)+s)
}

// blank writes an empty line unless the previous one is already empty.
func (w *writer) blank() {
	if n := len(w.lines); n == 0 || w.lines[n-1] == "" {
		return
	}
	w.lines = append(w.lines, "")
}

func (w *writer) indent() { w.level++ }

func (w *writer) dedent() {
	if w.level > 0 {
		w.level--
	}
}

// open writes s followed by " {" and indents.
func (w *writer) open(s string) {
	w.line(s + " {")
	w.indent()
}

// close dedents and writes the closing brace.
func (w *writer) close() {
	w.dedent()
	w.line("}")
}
