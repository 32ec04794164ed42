// Package prompt supplies values that were not given on the command line.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoInput is returned when the input stream ends before an answer is read.
var ErrNoInput = errors.New("no input available")

// Provider answers a question identified by label.
type Provider interface {
	Ask(label string) (string, error)
}

// Reader asks on out and reads one line per question from in. A single
// buffered reader is kept so consecutive questions do not lose input.
type Reader struct {
	in  *bufio.Reader
	out io.Writer
}

// NewReader returns a line-oriented Provider.
func NewReader(in io.Reader, out io.Writer) *Reader {
	return &Reader{in: bufio.NewReader(in), out: out}
}

// Ask prints "label: " and returns the trimmed line typed in response.
func (r *Reader) Ask(label string) (string, error) {
	if _, err := fmt.Fprintf(r.out, "%s: ", label); err != nil {
		return "", err
	}
	s, err := r.in.ReadString('\n')
	switch {
	case errors.Is(err, io.EOF) && s == "":
		return "", ErrNoInput
	case err != nil && !errors.Is(err, io.EOF):
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// Static answers from a fixed map; unknown labels get ErrNoInput.
type Static map[string]string

func (s Static) Ask(label string) (string, error) {
	v, ok := s[label]
	if !ok {
		return "", fmt.Errorf("%s: %w", label, ErrNoInput)
	}
	return v, nil
}

// Require returns current when it is set, otherwise asks p for label. A blank
// answer is an error.
func Require(p Provider, label, current string) (string, error) {
	if v := strings.TrimSpace(current); v != "" {
		return v, nil
	}
	if p == nil {
		return "", fmt.Errorf("%s is required", label)
	}
	v, err := p.Ask(label)
	if err != nil {
		return "", fmt.Errorf("%s is required: %w", label, err)
	}
	if v = strings.TrimSpace(v); v == "" {
		return "", fmt.Errorf("%s is required", label)
	}
	return v, nil
}

// WithDefault returns current when set; otherwise it asks p, offering def.
// A blank answer, or no input at all, selects def.
func WithDefault(p Provider, label, current, def string) (string, error) {
	if v := strings.TrimSpace(current); v != "" {
		return v, nil
	}
	if p == nil {
		return def, nil
	}
	v, err := p.Ask(fmt.Sprintf("%s [%s]", label, def))
	if err != nil && !errors.Is(err, ErrNoInput) {
		return "", err
	}
	if v = strings.TrimSpace(v); v != "" {
		return v, nil
	}
	return def, nil
}
