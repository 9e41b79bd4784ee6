package eval

import (
	"src.rambutan.dev/pkg/eval/vals"
)

// Callable wraps the Call method.
type Callable interface {
	vals.Fn
	// Call calls the function in the given Frame. Functions registered as
	// delayed get unevaluated operands; other functions get evaluated
	// arguments.
	Call(fr *Frame, args []vals.Value) (vals.Value, error)
}

// NativeFn is a function implemented in Go.
type NativeFn struct {
	vals.FnBase
	name string
	impl func(*Frame, []vals.Value) (vals.Value, error)
}

var _ Callable = &NativeFn{}

// NewNativeFn creates a NativeFn from a Go function that takes the calling
// Frame and the arguments. Arity and types of the arguments are not checked.
func NewNativeFn(name string, impl func(*Frame, []vals.Value) (vals.Value, error)) *NativeFn {
	return &NativeFn{name: name, impl: impl}
}

// FnName returns the name of the function.
func (fn *NativeFn) FnName() string { return fn.name }

// Call calls the Go implementation.
func (fn *NativeFn) Call(fr *Frame, args []vals.Value) (vals.Value, error) {
	return fn.impl(fr, args)
}
