package evaltest

import (
	"math"
	"regexp"

	"src.rambutan.dev/pkg/eval/vals"
)

// ValueMatcher is a value that can be passed to Case.Returns and has its own
// matching semantics.
type ValueMatcher interface{ matchValue(any) bool }

// Anything matches anything. It is useful when the value contains information
// that is useful when the test fails.
var Anything ValueMatcher = anything{}

type anything struct{}

func (anything) matchValue(any) bool { return true }

// AnyFn matches any function value.
var AnyFn ValueMatcher = anyFn{}

type anyFn struct{}

func (anyFn) matchValue(x any) bool {
	_, ok := x.(vals.Fn)
	return ok
}

// ApproximatelyThreshold defines the threshold for matching numbers when using
// Approximately.
const ApproximatelyThreshold = 1e-15

// Approximately matches a number within the threshold defined by
// ApproximatelyThreshold.
func Approximately(f float64) ValueMatcher { return approximately{f} }

type approximately struct{ value float64 }

func (a approximately) matchValue(value any) bool {
	if value, ok := value.(vals.Num); ok {
		return matchFloat64(a.value, float64(value), ApproximatelyThreshold)
	}
	return false
}

func matchFloat64(a, b, threshold float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	if math.IsInf(a, 0) && math.IsInf(b, 0) &&
		math.Signbit(a) == math.Signbit(b) {
		return true
	}
	return math.Abs(a-b) <= threshold
}

// StringMatching matches any string matching a regexp pattern. If the pattern
// is not a valid regexp, the function panics.
func StringMatching(p string) ValueMatcher { return stringMatching{regexp.MustCompile(p)} }

type stringMatching struct{ pattern *regexp.Regexp }

func (s stringMatching) matchValue(value any) bool {
	if value, ok := value.(vals.Str); ok {
		return s.pattern.MatchString(string(value))
	}
	return false
}

// ListOf matches a list whose elements match the arguments, which may
// themselves be ValueMatchers.
func ListOf(elems ...any) ValueMatcher { return listOf{elems} }

type listOf struct{ elems []any }

func (l listOf) matchValue(value any) bool {
	got, ok := value.(*vals.List)
	if !ok || got.Len() != len(l.elems) {
		return false
	}
	for i, want := range l.elems {
		if !match(got.Elems[i], want) {
			return false
		}
	}
	return true
}
