package diag

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Error represents an error with context that can be showed.
type Error struct {
	Type    string
	Message string
	Context Context
	// Whether the error is caused by the source ending too early. Adding more
	// text to the source may fix such an error.
	Partial bool
}

// Error returns a plain text representation of the error.
func (e *Error) Error() string {
	return e.Type + ": " + e.Context.Describe() + ": " + e.Message
}

// Range returns the range of the error.
func (e *Error) Range() Ranging {
	return e.Context.Range()
}

var (
	messageStart = "\033[31;1m"
	messageEnd   = "\033[m"
)

// Show shows the error.
func (e *Error) Show(indent string) string {
	header := fmt.Sprintf("%s: %s%s%s\n", title(e.Type), messageStart, e.Message, messageEnd)
	return header + indent + "  " + e.Context.ShowCompact(indent+"  ")
}

func title(s string) string {
	if s == "" {
		return s
	}
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[n:]
}
