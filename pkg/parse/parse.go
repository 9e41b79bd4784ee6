// Package parse implements the reader, which turns source text into forms.
//
// A form is a *vals.List, a *vals.Atom or a primitive value. Lists and atoms
// produced by the reader remember their source range, and elements of a list
// point back at the list (see vals.List.Adopt).
package parse

import (
	"errors"

	"src.rambutan.dev/pkg/diag"
	"src.rambutan.dev/pkg/eval/vals"
)

// Source describes a piece of source code.
type Source = diag.Source

// Error is a syntax error. Its Partial field is set when the source ended in
// the middle of a form, so that more input may complete it.
type Error = diag.Error

const errorType = "syntax error"

// Errors.
var (
	errUnterminatedString = errors.New("string not terminated")
	errUnclosedParen      = errors.New("unclosed '('")
	errUnexpectedRParen   = errors.New("unexpected ')'")
	errDanglingQuoting    = errors.New("quoting prefix must be followed by a list or a symbol")
)

// Parse reads all the top-level forms in src. On a syntax error, it returns
// the forms completed before the error along with an error of type *Error.
func Parse(src Source) ([]vals.Value, error) {
	r := newReader(&src)
	r.read()
	if r.err != nil {
		return r.forms, r.err
	}
	return r.forms, nil
}

// ParseOne reads src, which must contain exactly one form.
func ParseOne(src Source) (vals.Value, error) {
	forms, err := Parse(src)
	if err != nil {
		return nil, err
	}
	if len(forms) != 1 {
		return nil, &Error{
			Type:    errorType,
			Message: "should contain exactly one form",
			Context: *src.NewContext(diag.Ranging{From: 0, To: len(src.Code)}),
		}
	}
	return forms[0], nil
}

// GetError returns an *Error if err is a syntax error, or nil otherwise.
func GetError(err error) *Error {
	var e *Error
	if errors.As(err, &e) && e.Type == errorType {
		return e
	}
	return nil
}

// IsPartial reports whether err is a syntax error caused by the source ending
// too early.
func IsPartial(err error) bool {
	e := GetError(err)
	return e != nil && e.Partial
}
