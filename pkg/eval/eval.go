package eval

import (
	"src.rambutan.dev/pkg/eval/vals"
)

// Eval evaluates a form in fr.
//
// Primitives and functions evaluate to themselves. A quoted atom or list
// evaluates to itself without the quoting flag, and a quasi-quoted list is
// expanded as a template. An atom in the head position of a list denotes a
// callee and evaluates to itself; other atoms are resolved with Lookup.
func (fr *Frame) Eval(form vals.Value) (vals.Value, error) {
	switch form := form.(type) {
	case nil:
		return vals.Nil, nil
	case *vals.Atom:
		return fr.evalAtom(form)
	case *vals.List:
		return fr.evalList(form)
	default:
		return form, nil
	}
}

func (fr *Frame) evalAtom(a *vals.Atom) (vals.Value, error) {
	if a.Quoting.Suppresses() {
		return a.Unquoted(), nil
	}
	if a.IsHead() {
		return a, nil
	}
	return fr.resolve(a)
}

func (fr *Frame) resolve(a *vals.Atom) (vals.Value, error) {
	if v, ok := fr.Lookup(a.Name); ok {
		return v, nil
	}
	if fr.interp.cfg.Strict {
		return vals.Nil, wrapAt(&UnboundSymbol{Name: a.Name}, a.Src, a.Ranging)
	}
	return vals.Nil, nil
}

func (fr *Frame) evalList(l *vals.List) (vals.Value, error) {
	switch {
	case l.Quoting.Has(vals.Quote):
		return l.Unquoted(), nil
	case l.Quoting.Has(vals.QuasiQuote):
		v, err := fr.expandQuasi(l)
		if err != nil {
			return vals.Nil, err
		}
		return v.Unquoted(), nil
	case len(l.Elems) == 0:
		return vals.Nil, nil
	}

	in := fr.interp
	if in.depth >= in.cfg.MaxDepth {
		return vals.Nil, wrapAt(ErrStackOverflow, l.Src, l.Ranging)
	}
	in.depth++
	defer func() { in.depth-- }()

	v, err := fr.child(l).dispatch()
	if err != nil {
		return vals.Nil, wrapAt(err, l.Src, l.Ranging)
	}
	return v, nil
}

// Evaluates the list of fr, which must be a new child Frame.
func (fr *Frame) dispatch() (vals.Value, error) {
	l := fr.form
	operands := l.Elems[1:]
	switch head := l.Elems[0].(type) {
	case *vals.Atom:
		if head.Quoting.Suppresses() {
			return fr.evalAsData(l)
		}
		if fr.interp.delayed[head.Name] {
			// Lisp functions always get evaluated arguments.
			if callee, ok := fr.Lookup(head.Name); ok && !isLambda(callee) {
				if fn, ok := callee.(vals.Fn); ok {
					return fr.call(head, fn, operands)
				}
			}
		}
		args, err := fr.EvalAll(operands)
		if err != nil {
			return vals.Nil, err
		}
		callee, err := fr.resolve(head)
		if err != nil {
			return vals.Nil, err
		}
		if fn, ok := callee.(vals.Fn); ok {
			return fr.call(head, fn, args)
		}
		return callee, nil
	case *vals.List:
		callee, err := fr.Eval(head)
		if err != nil {
			return vals.Nil, err
		}
		args, err := fr.EvalAll(operands)
		if err != nil {
			return vals.Nil, err
		}
		if fn, ok := callee.(vals.Fn); ok {
			return fr.call(head, fn, args)
		}
		if len(args) == 0 {
			return callee, nil
		}
		return vals.MakeList(append([]vals.Value{callee}, args...)...), nil
	case vals.Fn:
		args, err := fr.EvalAll(operands)
		if err != nil {
			return vals.Nil, err
		}
		return fr.call(head, head, args)
	default:
		if len(operands) == 0 {
			return head, nil
		}
		return fr.evalAsData(l)
	}
}

func isLambda(v vals.Value) bool {
	_, ok := v.(*Lambda)
	return ok
}

func (fr *Frame) evalAsData(l *vals.List) (vals.Value, error) {
	values, err := fr.EvalAll(l.Elems)
	if err != nil {
		return vals.Nil, err
	}
	return vals.MakeList(values...), nil
}

// Calls fn in fr. The head argument is only used for error messages and may
// be nil.
func (fr *Frame) call(head vals.Value, fn vals.Value, args []vals.Value) (vals.Value, error) {
	c, ok := fn.(Callable)
	if !ok {
		return vals.Nil, notCallable(head, fn)
	}
	v, err := c.Call(fr, args)
	if v == nil {
		v = vals.Nil
	}
	return v, err
}

// Expands a quasi-quoted template. Elements with the Unquote flag are
// evaluated; other elements are kept as they are, except that lists are
// expanded recursively.
func (fr *Frame) expandQuasi(l *vals.List) (*vals.List, error) {
	elems := make([]vals.Value, len(l.Elems))
	for i, elem := range l.Elems {
		var err error
		switch e := elem.(type) {
		case *vals.Atom:
			if e.Quoting.Has(vals.Unquote) {
				elems[i], err = fr.resolve(e)
			} else {
				elems[i] = e
			}
		case *vals.List:
			if e.Quoting.Has(vals.Unquote) {
				elems[i], err = fr.Eval(e.Unquoted())
			} else {
				elems[i], err = fr.expandQuasi(e)
			}
		default:
			elems[i] = e
		}
		if err != nil {
			return nil, err
		}
	}
	m := *l
	m.Elems = elems
	return &m, nil
}
