package core

import (
	"strings"

	"src.rambutan.dev/pkg/eval"
	"src.rambutan.dev/pkg/eval/vals"
)

// (progn x...) returns the last argument, or nil.
func progn(args ...vals.Value) vals.Value {
	if len(args) == 0 {
		return vals.Nil
	}
	return args[len(args)-1]
}

func list(args ...vals.Value) *vals.List {
	return vals.MakeList(args...)
}

// (eval form...) evaluates each argument again, and returns the value of the
// last one.
func evalFn(fr *eval.Frame, forms ...vals.Value) (vals.Value, error) {
	return fr.EvalBody(forms)
}

// The logical functions are eager: all operands are evaluated before they
// are called. They return t or false.

func and(args ...vals.Value) vals.Bool {
	for _, arg := range args {
		if !vals.Truthy(arg) {
			return false
		}
	}
	return true
}

func or(args ...vals.Value) vals.Bool {
	for _, arg := range args {
		if vals.Truthy(arg) {
			return true
		}
	}
	return false
}

func not(v vals.Value) vals.Bool {
	return vals.Bool(!vals.Truthy(v))
}

// (. x...) concatenates the arguments, converted to strings.
func concat(args ...vals.Value) vals.Str {
	var sb strings.Builder
	for _, arg := range args {
		sb.WriteString(vals.ToString(arg))
	}
	return vals.Str(sb.String())
}
