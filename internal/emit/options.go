package emit

import (
	"runtime"
	"strings"
)

// Newline selects the line terminator of rendered text.
type Newline uint8

const (
	NewlineLF Newline = iota
	NewlineCRLF
)

// ParseNewline accepts "lf", "crlf" and "auto" (the host convention).
func ParseNewline(s string) (Newline, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return HostNewline(), true
	case "lf":
		return NewlineLF, true
	case "crlf":
		return NewlineCRLF, true
	}
	return NewlineLF, false
}

// HostNewline is CRLF on Windows and LF elsewhere.
func HostNewline() Newline {
	if runtime.GOOS == "windows" {
		return NewlineCRLF
	}
	return NewlineLF
}

func (n Newline) String() string {
	if n == NewlineCRLF {
		return "\r\n"
	}
	return "\n"
}

// DefaultExt is the extension of generated files.
const DefaultExt = ".java"

// Options controls the layout of generated text.
type Options struct {
	IndentWidth int
	UseTabs     bool
	Newline     Newline
	Ext         string
	// Fenced emits BEGIN/END USER regions for the fenced merge strategy.
	Fenced bool
}

func (o Options) withDefaults() Options {
	if o.IndentWidth <= 0 {
		o.IndentWidth = 4
	}
	if o.Ext == "" {
		o.Ext = DefaultExt
	}
	if !strings.HasPrefix(o.Ext, ".") {
		o.Ext = "." + o.Ext
	}
	return o
}

// Unit returns one indentation step.
func (o Options) Unit() string {
	o = o.withDefaults()
	if o.UseTabs {
		return "\t"
	}
	return strings.Repeat(" ", o.IndentWidth)
}
