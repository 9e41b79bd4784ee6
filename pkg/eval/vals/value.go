// Package vals contains the value model of the interpreter.
//
// Every runtime value is a Value, a closed sum type with the following
// variants:
//
//   - NilValue, whose only value is Nil
//   - Bool
//   - Num, a double-precision number
//   - Str
//   - *Atom, a symbol
//   - *List, an ordered sequence of values
//   - Fn, a callable value; its variants are defined in package eval and embed
//     FnBase to become part of the sum
//
// Atom and List double as the syntax tree produced by the reader. Parsed trees
// are never mutated by evaluation, so they can be evaluated repeatedly.
package vals

// Value is a runtime value. The set of implementations is closed: the marker
// method is unexported, so only types in this package, and types embedding
// FnBase, implement it.
type Value interface {
	// Kind returns the kind of the value, like "number" or "list".
	Kind() string
	value()
}

// NilValue is the type of Nil.
type NilValue struct{}

// Nil is the empty value. It is also the value of unbound symbols and of the
// empty list form.
var Nil = NilValue{}

// Bool is a boolean value. The reader produces Bool(true) for the token t;
// Bool(false) is only produced by functions like not.
type Bool bool

// Num is a number.
type Num float64

// Str is a string.
type Str string

// Fn is a callable value.
type Fn interface {
	Value
	// FnName returns the name the function was defined with, or an empty
	// string for anonymous functions.
	FnName() string
}

// FnBase is embedded by implementations of Fn.
type FnBase struct{}

func (NilValue) Kind() string { return "nil" }
func (Bool) Kind() string     { return "bool" }
func (Num) Kind() string      { return "number" }
func (Str) Kind() string      { return "string" }
func (*Atom) Kind() string    { return "symbol" }
func (*List) Kind() string    { return "list" }
func (FnBase) Kind() string   { return "fn" }

func (NilValue) value() {}
func (Bool) value()     {}
func (Num) value()      {}
func (Str) value()      {}
func (*Atom) value()    {}
func (*List) value()    {}
func (FnBase) value()   {}

// Kind returns the kind of the value. It is the same as calling v.Kind(),
// except that a nil Value has kind "nil".
func Kind(v Value) string {
	if v == nil {
		return "nil"
	}
	return v.Kind()
}
