package merge

import (
	"errors"
	"fmt"
	"strings"

	"modelgen/internal/emit"
)

// ErrUnbalanced reports a region marker without its counterpart.
var ErrUnbalanced = errors.New("unbalanced user region")

// Region is one user region of a file.
type Region struct {
	Key  string
	Body []string
}

// Regions extracts user regions from lines in file order. Nested or
// unterminated regions are an error.
func Regions(lines []string) ([]Region, error) {
	var (
		out  []Region
		open *Region
	)
	for i, line := range lines {
		kind, key := emit.ParseMarker(line)
		switch kind {
		case emit.MarkerBegin:
			if open != nil {
				return nil, fmt.Errorf("%w: line %d opens %q inside %q", ErrUnbalanced, i+1, key, open.Key)
			}
			open = &Region{Key: key}
		case emit.MarkerEnd:
			if open == nil || open.Key != key {
				return nil, fmt.Errorf("%w: line %d closes %q", ErrUnbalanced, i+1, key)
			}
			out = append(out, *open)
			open = nil
		default:
			if open != nil {
				open.Body = append(open.Body, line)
			}
		}
	}
	if open != nil {
		return nil, fmt.Errorf("%w: %q is never closed", ErrUnbalanced, open.Key)
	}
	return out, nil
}

// Fenced copies the content of every old region into the fresh region with
// the same key. Content of keys that no longer exist is collected into an
// orphaned region placed before the last closing brace.
func Fenced(fresh, old []string) ([]string, error) {
	regions, err := Regions(old)
	if err != nil {
		return nil, err
	}
	if _, err := Regions(fresh); err != nil {
		return nil, err
	}
	saved := make(map[string][]string, len(regions))
	for _, r := range regions {
		saved[r.Key] = append(saved[r.Key], r.Body...)
	}

	out := make([]string, 0, len(fresh)+len(old))
	used := make(map[string]struct{})
	classIndent := ""
	skipping := false
	for _, line := range fresh {
		kind, key := emit.ParseMarker(line)
		switch {
		case kind == emit.MarkerBegin:
			out = append(out, line)
			out = append(out, saved[key]...)
			used[key] = struct{}{}
			skipping = true
			if !strings.Contains(key, ".") {
				classIndent = leadingSpace(line)
			}
		case kind == emit.MarkerEnd:
			out = append(out, line)
			skipping = false
		case !skipping:
			out = append(out, line)
		}
	}

	var orphans []string
	for _, r := range regions {
		if _, ok := used[r.Key]; ok {
			continue
		}
		used[r.Key] = struct{}{}
		orphans = append(orphans, saved[r.Key]...)
	}
	if len(orphans) == 0 {
		return out, nil
	}
	block := make([]string, 0, len(orphans)+2)
	block = append(block, classIndent+emit.BeginMarker(emit.OrphanedKey))
	block = append(block, orphans...)
	block = append(block, classIndent+emit.EndMarker(emit.OrphanedKey))

	at := lastClosingBrace(out)
	merged := make([]string, 0, len(out)+len(block))
	merged = append(merged, out[:at]...)
	merged = append(merged, block...)
	return append(merged, out[at:]...), nil
}

func lastClosingBrace(lines []string) int {
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) == "}" {
			return i
		}
	}
	return len(lines)
}

func leadingSpace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}
