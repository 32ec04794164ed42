package sanitize

import (
	"strings"
)

const bom = "\ufeff"

// MaxHeader caps column names, in runes.
const MaxHeader = 128

// CleanString trims and removes ASCII control characters except tab/newline/carriage
// return up to max runes (if max <= 0, no truncation).
func CleanString(s string, max int) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	// remove controls except \n, \t, \r
	var b strings.Builder
	n := 0
	for _, r := range s {
		if r == '\n' || r == '\t' || r == '\r' || (r >= 0x20 && r != 0x7f) {
			b.WriteRune(r)
			n++
			if max > 0 && n >= max {
				break
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// Cell normalizes one roster cell: surrounding whitespace and stray control
// characters go, everything else is kept as exported.
func Cell(s string) string { return CleanString(s, 0) }

// Header normalizes a column name and caps it at MaxHeader runes.
// Spreadsheet exports often prefix the first header with a UTF-8 byte order mark.
func Header(s string) string {
	return CleanString(strings.TrimPrefix(s, bom), MaxHeader)
}
