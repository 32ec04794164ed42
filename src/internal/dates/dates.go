package dates

import (
	"fmt"
	"strings"
	"time"
)

// ISOLayout is the roster snapshot date format.
const ISOLayout = "2006-01-02"

// ParseISO parses a YYYY-MM-DD date.
func ParseISO(date string) (time.Time, error) {
	t, err := time.Parse(ISOLayout, strings.TrimSpace(date))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", date)
	}
	return t, nil
}

// ValidateISO reports whether date is a real calendar date in YYYY-MM-DD form.
func ValidateISO(date string) error {
	_, err := ParseISO(date)
	return err
}

// Latest returns the greatest of the given YYYY-MM-DD dates, skipping invalid ones.
func Latest(ds ...string) string {
	var best time.Time
	out := ""
	for _, d := range ds {
		t, err := ParseISO(d)
		if err != nil {
			continue
		}
		if out == "" || t.After(best) {
			best, out = t, t.Format(ISOLayout)
		}
	}
	return out
}
