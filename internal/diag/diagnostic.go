package diag

import (
	"fmt"
	"strings"
)

// Location points at the model element a diagnostic is about. Zero fields
// are omitted from the rendered form.
type Location struct {
	File       string
	Diagram    string
	Rank       int
	HasRank    bool
	Classifier string
}

// AtRank returns a location for a message of a sequence diagram.
func AtRank(diagram string, rank int) Location {
	return Location{Diagram: diagram, Rank: rank, HasRank: true}
}

// InDiagram returns a location for a diagram element.
func InDiagram(diagram string) Location {
	return Location{Diagram: diagram}
}

// ForClassifier returns a location for a classifier.
func ForClassifier(name string) Location {
	return Location{Classifier: name}
}

func (l Location) String() string {
	parts := make([]string, 0, 4)
	if l.File != "" {
		parts = append(parts, l.File)
	}
	if l.Diagram != "" {
		parts = append(parts, l.Diagram)
	}
	if l.HasRank {
		parts = append(parts, fmt.Sprintf("#%d", l.Rank))
	}
	if l.Classifier != "" {
		parts = append(parts, l.Classifier)
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ":")
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Where    Location
}
