package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"modelgen/internal/diag"
)

var (
	errorLabel   = color.New(color.FgRed, color.Bold)
	warningLabel = color.New(color.FgYellow, color.Bold)
	infoLabel    = color.New(color.FgCyan)
	codeLabel    = color.New(color.Faint)
)

// printDiagnostics writes the bag sorted, one diagnostic per line. Quiet
// output keeps errors only.
func printDiagnostics(out io.Writer, bag *diag.Bag, quiet bool) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	bag.Sort()
	for _, d := range bag.Items() {
		if quiet && d.Severity < diag.SevError {
			continue
		}
		fmt.Fprintf(out, "%s %s %s %s\n",
			severityLabel(d.Severity).Sprint(d.Severity.Label()),
			codeLabel.Sprint(d.Code.ID()),
			d.Where.String(),
			d.Message,
		)
	}
}

func severityLabel(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorLabel
	case diag.SevWarning:
		return warningLabel
	default:
		return infoLabel
	}
}

func countSeverities(bag *diag.Bag) (errs, warnings int) {
	if bag == nil {
		return 0, 0
	}
	for _, d := range bag.Items() {
		switch {
		case d.Severity >= diag.SevError:
			errs++
		case d.Severity == diag.SevWarning:
			warnings++
		}
	}
	return errs, warnings
}
