// Package eval evaluates parsed Lisp forms and provides the embedding API.
//
// An Interpreter owns a global namespace and a registry of delayed names.
// Forms are evaluated in a Frame; each evaluation of a list creates a new
// Frame whose parent is the Frame of the enclosing list, so parsed forms are
// never modified and can be evaluated any number of times.
package eval

import (
	"io"
	"os"
	"sort"

	"src.rambutan.dev/pkg/eval/vals"
	"src.rambutan.dev/pkg/logutil"
	"src.rambutan.dev/pkg/parse"
)

var logger = logutil.GetLogger("[eval] ")

const (
	// DefaultMaxDepth is the default limit of nested list evaluations.
	DefaultMaxDepth = 10000
	// MaxDepthLimit is the highest allowed value of Config.MaxDepth. Deeper
	// evaluation would exhaust the Go stack before ErrStackOverflow is
	// returned.
	MaxDepthLimit = 100000
)

// Config keeps configuration of an Interpreter.
type Config struct {
	// If true, evaluating an unbound symbol is an error instead of nil.
	Strict bool
	// Maximum depth of nested list evaluations. Zero means DefaultMaxDepth,
	// and values above MaxDepthLimit are lowered to it.
	MaxDepth int
	// Where output of functions like log goes. Defaults to os.Stdout.
	Stdout io.Writer
	// Where warnings go. Defaults to os.Stderr.
	Warn io.Writer
}

// Interpreter holds the state of the interpreter. It is not safe for
// concurrent use; independent Interpreters share no state.
type Interpreter struct {
	cfg     Config
	global  map[string]vals.Value
	delayed map[string]bool
	// Registration policy of names registered with Register.
	registered map[string]bool
	depth      int
	top        *Frame
}

// NewInterpreter creates a new Interpreter with an empty global namespace.
func NewInterpreter(cfg Config) *Interpreter {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	} else if cfg.MaxDepth > MaxDepthLimit {
		cfg.MaxDepth = MaxDepthLimit
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Warn == nil {
		cfg.Warn = os.Stderr
	}
	in := &Interpreter{
		cfg:        cfg,
		global:     make(map[string]vals.Value),
		delayed:    make(map[string]bool),
		registered: make(map[string]bool),
	}
	in.top = &Frame{interp: in, top: true}
	return in
}

// Config returns the configuration of the Interpreter, with defaults filled
// in.
func (in *Interpreter) Config() Config { return in.cfg }

// Stdout returns the writer for output of functions.
func (in *Interpreter) Stdout() io.Writer { return in.cfg.Stdout }

// Lookup looks up a name in the global namespace.
func (in *Interpreter) Lookup(name string) (vals.Value, bool) {
	v, ok := in.global[name]
	return v, ok
}

// SetGlobal binds a name in the global namespace.
func (in *Interpreter) SetGlobal(name string, v vals.Value) {
	in.global[name] = v
}

// Names returns the names bound in the global namespace, sorted.
func (in *Interpreter) Names() []string {
	names := make([]string, 0, len(in.global))
	for name := range in.global {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Eval parses and evaluates code, and returns the value of the last form. It
// stops at the first error. If code has a syntax error, the forms before the
// malformed one are evaluated, and the syntax error is returned.
func (in *Interpreter) Eval(code string) (vals.Value, error) {
	return in.EvalSource(parse.Source{Name: "[eval]", Code: code})
}

// EvalSource is like Eval, but takes a parse.Source.
func (in *Interpreter) EvalSource(src parse.Source) (vals.Value, error) {
	forms, parseErr := parse.Parse(src)
	var v vals.Value = vals.Nil
	for _, form := range forms {
		var err error
		v, err = in.top.Eval(form)
		if err != nil {
			return vals.Nil, err
		}
	}
	if parseErr != nil {
		return vals.Nil, parseErr
	}
	return v, nil
}

// FormResult is the result of evaluating one top-level form.
type FormResult struct {
	Form  vals.Value
	Value vals.Value
	Err   error
}

// EvalForms parses src and evaluates each top-level form independently,
// passing each result to f; an error in one form does not stop later forms.
// It stops early if f returns false.
//
// If src has a syntax error, the forms before the error are still evaluated,
// and the syntax error is returned.
func (in *Interpreter) EvalForms(src parse.Source, f func(FormResult) bool) error {
	forms, parseErr := parse.Parse(src)
	for _, form := range forms {
		v, err := in.top.Eval(form)
		if err != nil {
			logger.Printf("form %s: %v", vals.Repr(form), err)
		}
		if !f(FormResult{form, v, err}) {
			break
		}
	}
	return parseErr
}

// Call calls a function with the given arguments from the top-level frame.
func (in *Interpreter) Call(fn vals.Value, args ...vals.Value) (vals.Value, error) {
	return in.top.call(nil, fn, args)
}
