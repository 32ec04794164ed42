package names

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Convention selects how a full name string is laid out in a roster export.
type Convention int

const (
	// CommaLastFirst is "Last, First Middle Suffix".
	CommaLastFirst Convention = iota
	// SpaceLastFirst is "Last First Middle..." with no comma.
	SpaceLastFirst
)

func (c Convention) String() string {
	switch c {
	case CommaLastFirst:
		return "comma"
	case SpaceLastFirst:
		return "space"
	default:
		return fmt.Sprintf("Convention(%d)", int(c))
	}
}

// ParseConvention maps a config/flag value to a Convention.
func ParseConvention(s string) (Convention, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "comma", "commalastfirst", "last-first-comma":
		return CommaLastFirst, nil
	case "space", "spacelastfirst", "last-first-space":
		return SpaceLastFirst, nil
	}
	return 0, fmt.Errorf("unknown name convention %q (want comma or space)", s)
}

// Parts is a full name decomposed into its roster columns.
type Parts struct {
	First  string
	Middle string
	Last   string
	Suffix string
}

// ErrMalformedName is returned when a name lacks the tokens a convention needs.
var ErrMalformedName = errors.New("malformed name")

// MalformedNameError carries the offending input.
type MalformedNameError struct {
	Name       string
	Convention Convention
	Reason     string
}

func (e *MalformedNameError) Error() string {
	return fmt.Sprintf("malformed name %q (%s convention): %s", e.Name, e.Convention, e.Reason)
}

func (e *MalformedNameError) Unwrap() error { return ErrMalformedName }

// No word boundary before the suffix: exports contain middles like "K_Jr".
var suffixRe = regexp.MustCompile(`(?i)(?:Jr|II|III|IV)\.?$`)

// Split decomposes fullName according to conv.
func Split(fullName string, conv Convention) (Parts, error) {
	switch conv {
	case CommaLastFirst:
		return splitComma(fullName)
	case SpaceLastFirst:
		return splitSpace(fullName)
	}
	return Parts{}, fmt.Errorf("unsupported name convention %s", conv)
}

func splitComma(fullName string) (Parts, error) {
	name := strings.TrimSpace(fullName)
	i := strings.Index(name, ",")
	if i < 0 {
		return Parts{}, &MalformedNameError{Name: fullName, Convention: CommaLastFirst, Reason: "no comma"}
	}
	p := Parts{Last: strings.TrimSpace(name[:i])}
	rest := strings.TrimSpace(name[i+1:])
	if rest == "" {
		return Parts{}, &MalformedNameError{Name: fullName, Convention: CommaLastFirst, Reason: "no first name after comma"}
	}
	p.First = rest
	if j := strings.IndexFunc(rest, unicode.IsSpace); j >= 0 {
		p.First = rest[:j]
		p.Middle, p.Suffix = splitSuffix(strings.TrimSpace(rest[j:]))
	}
	// a second comma ends the first name
	p.First = strings.TrimRight(p.First, ",")
	if p.First == "" {
		return Parts{}, &MalformedNameError{Name: fullName, Convention: CommaLastFirst, Reason: "no first name after comma"}
	}
	return p, nil
}

// splitSuffix separates a trailing generational suffix from the middle-name text.
func splitSuffix(s string) (middle, suffix string) {
	if loc := suffixRe.FindStringIndex(s); loc != nil {
		suffix = normalizeSuffix(s[loc[0]:loc[1]])
		s = s[:loc[0]]
	}
	return cleanMiddle(s), suffix
}

func normalizeSuffix(s string) string {
	s = strings.ToUpper(strings.Trim(s, "."))
	if s == "JR" {
		return "Jr"
	}
	return s
}

func cleanMiddle(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "_")
	s = strings.Trim(s, ".")
	return strings.TrimSpace(s)
}

func splitSpace(fullName string) (Parts, error) {
	toks := strings.Fields(fullName)
	if len(toks) < 2 {
		return Parts{}, &MalformedNameError{Name: fullName, Convention: SpaceLastFirst, Reason: "need at least two space-separated tokens"}
	}
	p := Parts{
		Last:  strings.TrimRight(toks[0], ", \t"),
		First: strings.TrimSpace(toks[1]),
	}
	if len(toks) > 2 {
		p.Middle = strings.Join(toks[2:], " ")
	}
	return p, nil
}

// Join rebuilds a display name from parts in the layout of conv, skipping empty parts.
func Join(p Parts, conv Convention) string {
	var given []string
	for _, s := range []string{p.First, p.Middle, p.Suffix} {
		if s = strings.TrimSpace(s); s != "" {
			given = append(given, s)
		}
	}
	if conv == SpaceLastFirst {
		return strings.Join(append([]string{p.Last}, given...), " ")
	}
	if len(given) == 0 {
		return p.Last
	}
	return p.Last + ", " + strings.Join(given, " ")
}
