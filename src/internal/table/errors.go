package table

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	ErrIO     = errors.New("io error")
	ErrParse  = errors.New("parse error")
	ErrSchema = errors.New("schema error")
)

// Error attaches a kind and the file it concerns to an underlying error.
type Error struct {
	Kind error
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.Path, e.Err)
}

// Unwrap exposes both the kind and the cause, so errors.Is(err, fs.ErrNotExist) still works.
func (e *Error) Unwrap() []error { return []error{e.Kind, e.Err} }

func ioErr(path string, err error) error    { return &Error{Kind: ErrIO, Path: path, Err: err} }
func parseErr(path string, err error) error { return &Error{Kind: ErrParse, Path: path, Err: err} }

func schemaErr(format string, args ...any) error {
	return &Error{Kind: ErrSchema, Err: fmt.Errorf(format, args...)}
}

// withPath fills in the path on a table error produced by a path-less reader.
func withPath(err error, path string) error {
	var te *Error
	if errors.As(err, &te) && te.Path == "" {
		cp := *te
		cp.Path = path
		return &cp
	}
	return err
}
