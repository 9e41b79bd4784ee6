package eval

import (
	"src.rambutan.dev/pkg/eval/vals"
)

// Frame is the runtime context of evaluating a list. It holds the local
// namespace of that list, and links to the Frame of the enclosing list.
//
// The top-level Frame of an Interpreter has no parent, and bindings made in
// it go to the global namespace.
type Frame struct {
	interp *Interpreter
	parent *Frame
	form   *vals.List
	top    bool
	ns     map[string]vals.Value
}

// Interp returns the Interpreter the Frame belongs to.
func (fr *Frame) Interp() *Interpreter { return fr.interp }

// Up returns the Frame of the enclosing list, or nil for the top-level Frame
// and for the outermost Frame of a function call.
func (fr *Frame) Up() *Frame { return fr.parent }

func (fr *Frame) child(form *vals.List) *Frame {
	return &Frame{interp: fr.interp, parent: fr, form: form}
}

// Lookup resolves a name, starting from the namespace of fr, then the
// namespaces of enclosing Frames, and finally the global namespace.
func (fr *Frame) Lookup(name string) (vals.Value, bool) {
	for f := fr; f != nil; f = f.parent {
		if v, ok := f.ns[name]; ok {
			return v, true
		}
	}
	return fr.interp.Lookup(name)
}

// Bind binds a name in the namespace of fr. The binding disappears with the
// Frame. For the top-level Frame, this binds a global name.
func (fr *Frame) Bind(name string, v vals.Value) {
	if fr.top {
		fr.interp.SetGlobal(name, v)
		return
	}
	if fr.ns == nil {
		fr.ns = make(map[string]vals.Value)
	}
	fr.ns[name] = v
}

// Assign rebinds the nearest existing binding of name. If name is not bound
// in any enclosing Frame, it binds a global name.
func (fr *Frame) Assign(name string, v vals.Value) {
	for f := fr; f != nil; f = f.parent {
		if _, ok := f.ns[name]; ok {
			f.ns[name] = v
			return
		}
	}
	fr.interp.SetGlobal(name, v)
}

// SetGlobal binds a global name.
func (fr *Frame) SetGlobal(name string, v vals.Value) {
	fr.interp.SetGlobal(name, v)
}

// EvalAll evaluates forms from left to right, and returns their values.
func (fr *Frame) EvalAll(forms []vals.Value) ([]vals.Value, error) {
	values := make([]vals.Value, len(forms))
	for i, form := range forms {
		v, err := fr.Eval(form)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// EvalBody evaluates forms in order, and returns the value of the last one, or
// Nil if there are no forms.
func (fr *Frame) EvalBody(forms []vals.Value) (vals.Value, error) {
	var v vals.Value = vals.Nil
	for _, form := range forms {
		var err error
		v, err = fr.Eval(form)
		if err != nil {
			return vals.Nil, err
		}
	}
	return v, nil
}
