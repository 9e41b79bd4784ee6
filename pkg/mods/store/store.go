// Package store exposes the persistent store to Lisp code.
//
// Shared variables are stored in their printed form and read back with the
// reader, so any value except functions survives a round trip.
package store

import (
	"errors"
	"math"

	"src.rambutan.dev/pkg/eval"
	"src.rambutan.dev/pkg/eval/errs"
	"src.rambutan.dev/pkg/eval/vals"
	"src.rambutan.dev/pkg/parse"
	"src.rambutan.dev/pkg/store/storedefs"
)

// Install registers the store functions in the Interpreter.
func Install(in *eval.Interpreter, s storedefs.Store) {
	m := &mod{s}
	for name, impl := range map[string]any{
		"store-get":   m.get,
		"store-set":   m.set,
		"store-del":   m.del,
		"store-names": m.names,
		"history":     m.history,
	} {
		in.Register(name, impl, false)
	}
}

type mod struct{ s storedefs.Store }

// (store-get name) returns the value of a shared variable, or nil.
func (m *mod) get(name vals.Value) (vals.Value, error) {
	n, err := varName(name)
	if err != nil {
		return nil, err
	}
	text, err := m.s.Var(n)
	if errors.Is(err, storedefs.ErrNoVar) {
		return vals.Nil, nil
	} else if err != nil {
		return nil, err
	}
	return parse.ParseOne(parse.Source{Name: "[store " + n + "]", Code: text})
}

// (store-set name value) sets a shared variable and returns the value.
func (m *mod) set(name, v vals.Value) (vals.Value, error) {
	n, err := varName(name)
	if err != nil {
		return nil, err
	}
	if !storable(v) {
		return nil, errs.BadValue{What: "value", Valid: "storable value", Actual: vals.Repr(v)}
	}
	return v, m.s.SetVar(n, vals.Repr(v))
}

// (store-del name) deletes a shared variable.
func (m *mod) del(name vals.Value) error {
	n, err := varName(name)
	if err != nil {
		return err
	}
	return m.s.DelVar(n)
}

// (store-names) returns the names of all shared variables.
func (m *mod) names() ([]string, error) {
	return m.s.VarNames()
}

// (history n...) returns the latest n inputs, or all of them, as strings.
func (m *mod) history(n ...int) ([]string, error) {
	limit := -1
	switch len(n) {
	case 0:
	case 1:
		limit = n[0]
	default:
		return nil, errs.ArityMismatch{What: "arguments", ValidLow: 0, ValidHigh: 1, Actual: len(n)}
	}
	cmds, err := m.s.RecentCmds(limit)
	if err != nil {
		return nil, err
	}
	texts := make([]string, len(cmds))
	for i, cmd := range cmds {
		texts[i] = cmd.Text
	}
	return texts, nil
}

func varName(v vals.Value) (string, error) {
	switch v := v.(type) {
	case vals.Str:
		return string(v), nil
	case *vals.Atom:
		return v.Name, nil
	}
	return "", errs.BadValue{What: "variable name", Valid: "string or symbol", Actual: vals.Repr(v)}
}

// Reports whether reading the printed form of v gives back v.
func storable(v vals.Value) bool {
	switch v := v.(type) {
	case vals.Fn:
		return false
	case vals.Bool:
		// false prints as nil.
		return bool(v)
	case vals.Num:
		return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
	case *vals.List:
		for _, elem := range v.Elems {
			if !storable(elem) {
				return false
			}
		}
	}
	return true
}
