// Package gleanerr defines the fatal error taxonomy surfaced to the CLI.
// An unparseable date and a vendor with no qualifying gleans are not
// represented here as Go errors: both are recovered locally (a null
// field, an empty detector output) and only ever reach the caller as a
// logged event, never as a returned error.
package gleanerr

import (
	"errors"
	"fmt"
)

// Kind distinguishes the fatal error categories a caller may want to
// branch on (e.g. to pick a process exit code).
type Kind string

const (
	// KindInputParse marks a malformed or unreadable input file.
	KindInputParse Kind = "input_parse"
	// KindSchema marks a required column missing from an input table.
	KindSchema Kind = "schema"
)

// Error is the typed error returned for fatal ingest failures.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewSchemaError reports a required column missing from an input table.
func NewSchemaError(msg string) error {
	return &Error{Kind: KindSchema, Msg: msg}
}

// NewInputParseError reports a malformed or unreadable input file.
func NewInputParseError(msg string, cause error) error {
	return &Error{Kind: KindInputParse, Msg: msg, Err: cause}
}

// IsSchema reports whether err is (or wraps) a KindSchema error.
func IsSchema(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindSchema
}

// IsInputParse reports whether err is (or wraps) a KindInputParse error.
func IsInputParse(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindInputParse
}
