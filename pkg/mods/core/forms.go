package core

import (
	"src.rambutan.dev/pkg/eval"
	"src.rambutan.dev/pkg/eval/errs"
	"src.rambutan.dev/pkg/eval/vals"
)

// (defun name (params...) body...) defines a global function and returns it.
func defun(fr *eval.Frame, args []vals.Value) (vals.Value, error) {
	if err := checkArity(args, 2, -1); err != nil {
		return nil, err
	}
	name, err := symbolName("function name", args[0])
	if err != nil {
		return nil, err
	}
	fn, err := makeLambda(fr, name, args[1], args[2:])
	if err != nil {
		return nil, err
	}
	fr.SetGlobal(name, fn)
	return fn, nil
}

// (lambda (params...) body...) returns an anonymous function.
func lambda(fr *eval.Frame, args []vals.Value) (vals.Value, error) {
	if err := checkArity(args, 1, -1); err != nil {
		return nil, err
	}
	return makeLambda(fr, "", args[0], args[1:])
}

func makeLambda(fr *eval.Frame, name string, params vals.Value, body []vals.Value) (*eval.Lambda, error) {
	var paramList *vals.List
	switch params := params.(type) {
	case *vals.List:
		paramList = params
	case vals.NilValue:
		paramList = vals.MakeList()
	default:
		return nil, errs.BadValue{What: "parameter list", Valid: "list", Actual: vals.Repr(params)}
	}
	return eval.NewLambda(name, paramList, body, fr)
}

// (set name value...) rebinds the nearest binding of each name, or binds a
// global name if there is none. It returns the last value.
func set(fr *eval.Frame, args []vals.Value) (vals.Value, error) {
	return setPairs(fr, args, fr.Assign)
}

// (setq name value...) binds global names. It returns the last value.
func setq(fr *eval.Frame, args []vals.Value) (vals.Value, error) {
	return setPairs(fr, args, fr.SetGlobal)
}

func setPairs(fr *eval.Frame, args []vals.Value, bind func(string, vals.Value)) (vals.Value, error) {
	if len(args) == 0 || len(args)%2 != 0 {
		return nil, errs.ArityMismatch{What: "arguments", ValidLow: 2, ValidHigh: -1, Actual: len(args)}
	}
	var v vals.Value = vals.Nil
	for i := 0; i < len(args); i += 2 {
		name, err := symbolName("variable name", args[i])
		if err != nil {
			return nil, err
		}
		v, err = fr.Eval(args[i+1])
		if err != nil {
			return nil, err
		}
		bind(name, v)
	}
	return v, nil
}

// (let ((name value)...) body...) binds names in a new scope and evaluates the
// body in it. Initializers are evaluated in order, and each sees the names
// bound before it. A bare name in the binding list is bound to nil.
//
// (let name value) binds name in the scope of the enclosing form, or a global
// name at top level, and returns the value.
func let(fr *eval.Frame, args []vals.Value) (vals.Value, error) {
	if len(args) == 0 {
		return nil, errs.ArityMismatch{What: "arguments", ValidLow: 1, ValidHigh: -1, Actual: 0}
	}
	switch bindings := args[0].(type) {
	case *vals.Atom:
		if err := checkArity(args, 2, 2); err != nil {
			return nil, err
		}
		v, err := fr.Eval(args[1])
		if err != nil {
			return nil, err
		}
		if up := fr.Up(); up != nil {
			up.Bind(bindings.Name, v)
		} else {
			fr.SetGlobal(bindings.Name, v)
		}
		return v, nil
	case *vals.List:
		for _, b := range bindings.Elems {
			if err := bindOne(fr, b); err != nil {
				return nil, err
			}
		}
		return fr.EvalBody(args[1:])
	case vals.NilValue:
		return fr.EvalBody(args[1:])
	default:
		return nil, errs.BadValue{What: "binding list", Valid: "list or symbol", Actual: vals.Repr(args[0])}
	}
}

func bindOne(fr *eval.Frame, b vals.Value) error {
	switch b := b.(type) {
	case *vals.Atom:
		fr.Bind(b.Name, vals.Nil)
		return nil
	case *vals.List:
		if b.Len() == 0 || b.Len() > 2 {
			break
		}
		name, err := symbolName("variable name", b.Elems[0])
		if err != nil {
			return err
		}
		var v vals.Value = vals.Nil
		if b.Len() == 2 {
			v, err = fr.Eval(b.Elems[1])
			if err != nil {
				return err
			}
		}
		fr.Bind(name, v)
		return nil
	}
	return errs.BadValue{What: "binding", Valid: "symbol or (symbol value)", Actual: vals.Repr(b)}
}

// (if cond then else...) evaluates then if cond is truthy. Otherwise it
// evaluates the else forms in order and returns the value of the last one, or
// nil if there is none.
func ifForm(fr *eval.Frame, args []vals.Value) (vals.Value, error) {
	if err := checkArity(args, 1, -1); err != nil {
		return nil, err
	}
	cond, err := fr.Eval(args[0])
	if err != nil {
		return nil, err
	}
	if vals.Truthy(cond) {
		if len(args) < 2 {
			return vals.Nil, nil
		}
		return fr.Eval(args[1])
	}
	if len(args) < 3 {
		return vals.Nil, nil
	}
	return fr.EvalBody(args[2:])
}

// (quote form) returns form unevaluated.
func quote(fr *eval.Frame, args []vals.Value) (vals.Value, error) {
	if err := checkArity(args, 1, 1); err != nil {
		return nil, err
	}
	switch form := args[0].(type) {
	case *vals.Atom:
		return form.Unquoted(), nil
	case *vals.List:
		return form.Unquoted(), nil
	default:
		return form, nil
	}
}

func checkArity(args []vals.Value, low, high int) error {
	if len(args) < low || (high != -1 && len(args) > high) {
		return errs.ArityMismatch{What: "arguments", ValidLow: low, ValidHigh: high, Actual: len(args)}
	}
	return nil
}

func symbolName(what string, v vals.Value) (string, error) {
	if a, ok := v.(*vals.Atom); ok {
		return a.Name, nil
	}
	return "", errs.BadValue{What: what, Valid: "symbol", Actual: vals.Repr(v)}
}
