package merge

import (
	"fmt"
	"strings"
)

// Strategy selects how old content is carried over.
type Strategy uint8

const (
	StrategyLines Strategy = iota
	StrategyFenced
)

func (s Strategy) String() string {
	if s == StrategyFenced {
		return "fenced"
	}
	return "lines"
}

// ParseStrategy accepts "lines" (the default for empty input) and "fenced".
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lines":
		return StrategyLines, nil
	case "fenced":
		return StrategyFenced, nil
	}
	return StrategyLines, fmt.Errorf("unknown merge strategy %q (want lines or fenced)", s)
}

// SplitLines splits text on LF, dropping a trailing CR from each line and
// the empty element after a final terminator.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Merge combines fresh output with the old file content using strategy.
func Merge(strategy Strategy, fresh, old []string, ctx *Context) ([]string, error) {
	if len(old) == 0 {
		return fresh, nil
	}
	if strategy == StrategyFenced {
		return Fenced(fresh, old)
	}
	return Splice(fresh, Classify(old, ctx)), nil
}
