package eval

import (
	"errors"
	"fmt"
	"strings"

	"src.rambutan.dev/pkg/diag"
	"src.rambutan.dev/pkg/eval/vals"
)

// Errors.
var (
	// ErrStackOverflow is returned when lists are nested deeper than the
	// MaxDepth of the Interpreter, usually because of runaway recursion.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrNotCallable is the reason of exceptions raised when a function value
	// cannot be called.
	ErrNotCallable = errors.New("value is not callable")
)

// Number of stack entries kept in an Exception. Deeper entries are dropped.
const maxStackTrace = 64

// Exception wraps an error raised during evaluation, along with the source
// contexts of the lists being evaluated when it was raised.
type Exception struct {
	Reason error
	// Innermost first.
	StackTrace []*diag.Context
	// Number of entries dropped from StackTrace.
	Dropped int
}

// Reason returns the Reason field if err is an *Exception. Otherwise it returns
// err itself.
func Reason(err error) error {
	if exc, ok := err.(*Exception); ok {
		return exc.Reason
	}
	return err
}

// Error returns the message of the reason of the exception.
func (exc *Exception) Error() string { return exc.Reason.Error() }

// Unwrap returns the reason of the exception.
func (exc *Exception) Unwrap() error { return exc.Reason }

// Show shows the exception.
func (exc *Exception) Show(indent string) string {
	var sb strings.Builder
	var causeDescription string
	if shower, ok := exc.Reason.(diag.Shower); ok {
		causeDescription = shower.Show(indent)
	} else {
		causeDescription = "\033[31;1m" + exc.Reason.Error() + "\033[m"
	}
	fmt.Fprintf(&sb, "Exception: %s", causeDescription)

	switch len(exc.StackTrace) {
	case 0:
	case 1:
		sb.WriteString("\n" + indent + exc.StackTrace[0].ShowCompact(indent))
	default:
		sb.WriteString("\n" + indent + "Traceback:")
		for _, ctx := range exc.StackTrace {
			sb.WriteString("\n" + indent + "  ")
			sb.WriteString(ctx.Show(indent + "    "))
		}
		if exc.Dropped > 0 {
			fmt.Fprintf(&sb, "\n%s  (%d more)", indent, exc.Dropped)
		}
	}
	return sb.String()
}

// Wraps err in an *Exception if it is not one yet, and adds the source range
// to its stack trace. Ranges without a source are not recorded.
func wrapAt(err error, src *diag.Source, r diag.Ranging) error {
	exc, ok := err.(*Exception)
	if !ok {
		exc = &Exception{Reason: err}
	}
	if src != nil {
		if len(exc.StackTrace) < maxStackTrace {
			exc.StackTrace = append(exc.StackTrace, src.NewContext(r))
		} else {
			exc.Dropped++
		}
	}
	return exc
}

// UnboundSymbol is the reason of exceptions raised by evaluating an unbound
// symbol in strict mode.
type UnboundSymbol struct {
	Name string
}

func (e *UnboundSymbol) Error() string {
	return "unbound symbol: " + e.Name
}

type notCallableError struct {
	what string
	kind string
}

func notCallable(head vals.Value, fn vals.Value) error {
	what := "value"
	if head != nil {
		what = vals.Repr(head)
	}
	return &notCallableError{what, vals.Kind(fn)}
}

func (e *notCallableError) Error() string {
	return fmt.Sprintf("%s is not callable (a %s)", e.what, e.kind)
}

func (e *notCallableError) Unwrap() error { return ErrNotCallable }
