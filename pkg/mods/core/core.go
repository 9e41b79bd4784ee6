// Package core implements the standard forms of the language.
//
// The forms are ordinary functions registered with eval.Interpreter.Register;
// the evaluator knows nothing about them. Binding and control forms are
// registered as delayed, so they get their operands unevaluated.
package core

import (
	"src.rambutan.dev/pkg/eval"
	"src.rambutan.dev/pkg/eval/vals"
	"src.rambutan.dev/pkg/mods/console"
)

type delayedFn = func(*eval.Frame, []vals.Value) (vals.Value, error)

// Forms registered as delayed.
var delayedFns = map[string]delayedFn{
	"defun":  defun,
	"lambda": lambda,
	"set":    set,
	"setq":   setq,
	"let":    let,
	"if":     ifForm,
	"quote":  quote,
}

// Functions registered as eager. They are adapted with eval.NewGoFn.
var eagerFns = map[string]any{
	"progn": progn,
	"list":  list,
	"eval":  evalFn,

	"and": and,
	"or":  or,
	"not": not,

	"=":  eq,
	"!=": notEq,
	"<":  lt,
	"<=": le,
	">":  gt,
	">=": ge,

	"+": add,
	"-": sub,
	"*": mul,
	"/": div,

	".": concat,
}

// Install registers the standard forms in the Interpreter.
func Install(in *eval.Interpreter) {
	for name, impl := range delayedFns {
		in.Register(name, impl, true)
	}
	for name, impl := range eagerFns {
		in.Register(name, impl, false)
	}
}

// NewInterpreter creates an Interpreter with the standard forms and the
// console functions installed.
func NewInterpreter(cfg eval.Config) *eval.Interpreter {
	in := eval.NewInterpreter(cfg)
	Install(in)
	console.Install(in)
	return in
}
