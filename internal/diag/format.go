package diag

import (
	"fmt"
	"strings"
)

// FormatShort renders one diagnostic per line:
//
//	warning TRC3001 checkout:#4 return without an open call
//
// The bag order is kept; call Sort first for a stable listing.
func FormatShort(diags []*Diagnostic) string {
	var b strings.Builder
	for i, d := range diags {
		fmt.Fprintf(&b, "%s %s %s %s", d.Severity.Label(), d.Code.ID(), d.Where.String(), sanitizeMessage(d.Message))
		if i < len(diags)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func sanitizeMessage(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
