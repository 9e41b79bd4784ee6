package vals

import "math"

// Truthy returns the truth value of a value. Nil, false, the number 0, NaN and
// the empty string are false; all other values, including the empty list, are
// true.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case nil, NilValue:
		return false
	case Bool:
		return bool(v)
	case Num:
		return v != 0 && !math.IsNaN(float64(v))
	case Str:
		return v != ""
	default:
		return true
	}
}
