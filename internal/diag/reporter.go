package diag

import "fmt"

// Reporter is the minimal contract producers emit through.
// Implementations: BagReporter, NopReporter, DedupReporter.
type Reporter interface {
	Report(code Code, sev Severity, where Location, msg string)
}

// Warnf reports a formatted warning. A nil reporter drops it.
func Warnf(r Reporter, code Code, where Location, format string, args ...any) {
	if r == nil {
		return
	}
	r.Report(code, SevWarning, where, fmt.Sprintf(format, args...))
}

// Errorf reports a formatted error. A nil reporter drops it.
func Errorf(r Reporter, code Code, where Location, format string, args ...any) {
	if r == nil {
		return
	}
	r.Report(code, SevError, where, fmt.Sprintf(format, args...))
}

// BagReporter writes into a *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, where Location, msg string) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(&Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Where:    where,
	})
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, Location, string) {}
