package vals

import (
	"math"
	"strconv"
	"strings"
)

// Repr returns the canonical printed form of a value. For values produced by
// the reader, reading the printed form gives back an equal value.
//
// Nil and false both print as nil, true prints as t, numbers print in plain
// decimal notation and strings print double-quoted. Functions print as
// <fn name>, which does not read back as a function.
func Repr(v Value) string {
	var sb strings.Builder
	writeRepr(&sb, v)
	return sb.String()
}

func writeRepr(sb *strings.Builder, v Value) {
	switch v := v.(type) {
	case nil, NilValue:
		sb.WriteString("nil")
	case Bool:
		if v {
			sb.WriteString("t")
		} else {
			sb.WriteString("nil")
		}
	case Num:
		sb.WriteString(FormatNum(float64(v)))
	case Str:
		sb.WriteString(quoteString(string(v)))
	case *Atom:
		sb.WriteString(v.Quoting.Prefix())
		sb.WriteString(v.Name)
	case *List:
		sb.WriteString(v.Quoting.Prefix())
		sb.WriteByte('(')
		for i, elem := range v.Elems {
			if i > 0 {
				sb.WriteByte(' ')
			}
			writeRepr(sb, elem)
		}
		sb.WriteByte(')')
	case Fn:
		sb.WriteString("<fn")
		if name := v.FnName(); name != "" {
			sb.WriteString(" " + name)
		}
		sb.WriteByte('>')
	default:
		panic("unknown value variant")
	}
}

// FormatNum formats a number in plain decimal notation, without exponents.
// Integral numbers print without a fractional part.
func FormatNum(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Returns s as a double-quoted string literal. Double quotes and
// backslashes are escaped, as are newlines, tabs and carriage returns.
func quoteString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// ToString converts a value to a string for display. Strings are returned
// as is; other values are converted with Repr.
func ToString(v Value) string {
	if s, ok := v.(Str); ok {
		return string(s)
	}
	return Repr(v)
}
