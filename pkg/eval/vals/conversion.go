package vals

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Conversion between Go values and values of the interpreter.
//
// Native functions written in Go declare parameters of ordinary Go types like
// float64 or string; ScanToGo converts arguments into them. Return values go
// the other way through FromGo.

// WrongType is returned when a value cannot be converted to the wanted kind.
type WrongType struct {
	WantKind string
	GotKind  string
}

func (err WrongType) Error() string {
	return fmt.Sprintf("wrong type: need %s, got %s", err.WantKind, err.GotKind)
}

type cannotParseAs struct {
	want string
	repr string
}

func (err cannotParseAs) Error() string {
	return fmt.Sprintf("cannot parse as %s: %s", err.want, err.repr)
}

// ScanNum converts a value to a float64. Numbers convert to themselves and
// strings are parsed as decimal numbers, surrounding whitespace allowed.
func ScanNum(v Value) (float64, error) {
	switch v := v.(type) {
	case Num:
		return float64(v), nil
	case Str:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
		if err != nil {
			return 0, cannotParseAs{"number", Repr(v)}
		}
		return f, nil
	default:
		return 0, WrongType{"number", Kind(v)}
	}
}

// ScanToGo converts a value to a Go value, using the type of the pointer to
// determine the destination type, and puts the converted value in the location
// the pointer points to. Supported destinations are *Value, *float64, *int,
// *string, *bool, **List and **Atom.
func ScanToGo(src Value, ptr any) error {
	switch ptr := ptr.(type) {
	case *Value:
		*ptr = src
	case *float64:
		f, err := ScanNum(src)
		if err != nil {
			return err
		}
		*ptr = f
	case *int:
		f, err := ScanNum(src)
		if err != nil {
			return err
		}
		if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
			return cannotParseAs{"integer", Repr(src)}
		}
		*ptr = int(f)
	case *string:
		s, ok := src.(Str)
		if !ok {
			return WrongType{"string", Kind(src)}
		}
		*ptr = string(s)
	case *bool:
		*ptr = Truthy(src)
	case **List:
		l, ok := src.(*List)
		if !ok {
			return WrongType{"list", Kind(src)}
		}
		*ptr = l
	case **Atom:
		a, ok := src.(*Atom)
		if !ok {
			return WrongType{"symbol", Kind(src)}
		}
		*ptr = a
	default:
		return fmt.Errorf("internal bug: unsupported destination %T", ptr)
	}
	return nil
}

// FromGo converts a Go value to a value of the interpreter. Numeric types
// convert to Num, string to Str, bool to Bool, a nil interface to Nil, and
// slices of strings or values to lists. Values are returned as is.
func FromGo(a any) (Value, error) {
	switch a := a.(type) {
	case nil:
		return Nil, nil
	case Value:
		return a, nil
	case float64:
		return Num(a), nil
	case int:
		return Num(a), nil
	case string:
		return Str(a), nil
	case bool:
		return Bool(a), nil
	case []Value:
		return MakeList(a...), nil
	case []string:
		elems := make([]Value, len(a))
		for i, s := range a {
			elems[i] = Str(s)
		}
		return MakeList(elems...), nil
	default:
		return nil, fmt.Errorf("cannot convert Go value of type %T", a)
	}
}
