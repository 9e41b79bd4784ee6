// Package evaltest provides a framework for testing Lisp code.
//
// The entry point for the framework is the Test function, which accepts a
// *testing.T and any number of test cases.
//
// Test cases are constructed using the That function, followed by method calls
// that add additional information to it.
//
// Example:
//
//	Test(t,
//	    That("(+ 1 2)").Returns(vals.Num(3)),
//	    That(`(log "x")`).Prints("x\n"))
//
// If some setup is needed, use the TestWithSetup function instead.
package evaltest

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.rambutan.dev/pkg/eval"
	"src.rambutan.dev/pkg/eval/vals"
	"src.rambutan.dev/pkg/parse"
)

// Case is a test case that can be used in Test.
type Case struct {
	codes  []string
	cfg    eval.Config
	setup  func(in *eval.Interpreter)
	verify func(t *testing.T, in *eval.Interpreter)
	want   result
}

type result struct {
	// Nil means the value is not checked.
	Value    any
	BytesOut []byte
	Warnings []byte

	Exception error
}

// That returns a new Case with the specified source code. Multiple arguments
// are joined with newlines. To specify multiple pieces of code that are
// executed separately, use the Then method to append code pieces.
//
// When combined with subsequent method calls, a test case reads like English.
// For example, a test for the fact that "(+ 1 2)" returns 3 reads:
//
//	That("(+ 1 2)").Returns(vals.Num(3))
func That(lines ...string) Case {
	return Case{codes: []string{strings.Join(lines, "\n")}}
}

// Then returns a new Case that executes the given code in addition. Multiple
// arguments are joined with newlines.
func (c Case) Then(lines ...string) Case {
	c.codes = append(c.codes, strings.Join(lines, "\n"))
	return c
}

// WithSetup returns a new Case with the given setup function executed on the
// Interpreter before the code is executed.
func (c Case) WithSetup(f func(*eval.Interpreter)) Case {
	c.setup = f
	return c
}

// InStrictMode returns a new Case that runs the code in strict mode.
func (c Case) InStrictMode() Case {
	c.cfg.Strict = true
	return c
}

// WithMaxDepth returns a new Case that runs the code with the given limit of
// nested evaluation.
func (c Case) WithMaxDepth(n int) Case {
	c.cfg.MaxDepth = n
	return c
}

// Passes returns an altered Case that runs an additional verification
// function after the code has been evaluated.
func (c Case) Passes(f func(t *testing.T, in *eval.Interpreter)) Case {
	c.verify = f
	return c
}

// Returns returns an altered Case that requires the last piece of code to
// evaluate to the given value. The value may be a ValueMatcher.
func (c Case) Returns(v any) Case {
	c.want.Value = v
	return c
}

// Prints returns an altered Case that requires the source code to write the
// specified output to the stdout of the Interpreter.
func (c Case) Prints(s string) Case {
	c.want.BytesOut = []byte(s)
	return c
}

// Warns returns an altered Case that requires the warning output to contain
// the given text.
func (c Case) Warns(s string) Case {
	c.want.Warnings = []byte(s)
	return c
}

// Throws returns an altered Case that requires the source code to throw an
// exception with the given reason. The reason supports special matcher values
// constructed by functions like ErrorWithMessage.
//
// If at least one stacktrace string is given, the exception must also have a
// stacktrace matching the given source fragments, frame by frame (innermost
// frame first). If no stacktrace string is given, the stack trace of the
// exception is not checked.
func (c Case) Throws(reason error, stacks ...string) Case {
	c.want.Exception = exc{reason, stacks}
	return c
}

// DoesNotParse returns an altered Case that requires the source code to fail
// parsing.
func (c Case) DoesNotParse() Case {
	c.want.Exception = AnyParseError
	return c
}

// Test runs test cases. For each test case, a new Interpreter is created with
// eval.NewInterpreter.
func Test(t *testing.T, tests ...Case) {
	t.Helper()
	TestWithSetup(t, func(*eval.Interpreter) {}, tests...)
}

// TestWithSetup runs test cases. For each test case, a new Interpreter is
// created with eval.NewInterpreter and passed to the setup function.
func TestWithSetup(t *testing.T, setup func(*eval.Interpreter), tests ...Case) {
	t.Helper()
	for _, tc := range tests {
		tc := tc
		t.Run(strings.Join(tc.codes, "\n"), func(t *testing.T) {
			t.Helper()
			var stdout, warn bytes.Buffer
			cfg := tc.cfg
			cfg.Stdout = &stdout
			cfg.Warn = &warn
			in := eval.NewInterpreter(cfg)
			setup(in)
			if tc.setup != nil {
				tc.setup(in)
			}

			r := evalAndCollect(in, tc.codes)
			r.BytesOut = stdout.Bytes()
			r.Warnings = warn.Bytes()

			if tc.verify != nil {
				tc.verify(t, in)
			}
			if tc.want.Value != nil && r.Exception == nil && !match(r.Value, tc.want.Value) {
				t.Errorf("got value %s, want %s", reprOf(r.Value), reprOf(tc.want.Value))
				if want, ok := tc.want.Value.(vals.Value); ok {
					t.Logf("(-want +got):\n%s", cmp.Diff(want, r.Value, valueComparer))
				}
			}
			if !bytes.Equal(tc.want.BytesOut, r.BytesOut) && !(tc.want.BytesOut == nil && len(r.BytesOut) == 0) {
				t.Errorf("got bytes out %q, want %q", r.BytesOut, tc.want.BytesOut)
			}
			if !bytes.Contains(r.Warnings, tc.want.Warnings) ||
				(tc.want.Warnings == nil && len(r.Warnings) > 0) {
				t.Errorf("got warnings %q, want %q", r.Warnings, tc.want.Warnings)
			}
			if !matchErr(tc.want.Exception, r.Exception) {
				t.Errorf("unexpected exception")
				if exc, ok := r.Exception.(*eval.Exception); ok {
					// For an *eval.Exception report the type of the underlying error.
					t.Logf("got: %T: %v", exc.Reason, exc)
					t.Logf("stack trace: %#v", getStackTexts(exc))
				} else {
					t.Logf("got: %T: %v", r.Exception, r.Exception)
				}
				t.Errorf("want: %v", tc.want.Exception)
			}
		})
	}
}

var valueComparer = cmp.Comparer(vals.Equal)

func evalAndCollect(in *eval.Interpreter, texts []string) result {
	var r result
	for _, text := range texts {
		v, err := in.EvalSource(parse.Source{Name: "[test]", Code: text})
		// Only the result of the last piece is checked.
		r.Value, r.Exception = v, err
	}
	return r
}

func reprOf(v any) string {
	if v, ok := v.(vals.Value); ok {
		return vals.Repr(v)
	}
	return fmt.Sprint(v)
}

func match(got any, want any) bool {
	if matcher, ok := want.(ValueMatcher); ok {
		return matcher.matchValue(got)
	}
	g, ok1 := got.(vals.Value)
	w, ok2 := want.(vals.Value)
	if !ok1 || !ok2 {
		return false
	}
	if g, ok := g.(vals.Num); ok {
		// Special-case numbers to correctly handle NaN.
		if w, ok := w.(vals.Num); ok {
			return matchFloat64(float64(g), float64(w), 0)
		}
	}
	return vals.Equal(g, w)
}

func matchErr(want, got error) bool {
	if want == nil {
		return got == nil
	}
	if matcher, ok := want.(errorMatcher); ok {
		return matcher.matchError(got)
	}
	return reflect.DeepEqual(want, got)
}
