package eval

import (
	"fmt"
	"reflect"

	"src.rambutan.dev/pkg/eval/vals"
	"src.rambutan.dev/pkg/parse"
)

// Register binds a function to a global name. The impl argument may be a
// Callable, a func(*Frame, []vals.Value) (vals.Value, error), or any other Go
// function supported by NewGoFn.
//
// If delayed is true, lists whose head is the name are evaluated by passing
// the unevaluated operands to the function. The policy is a property of the
// name: it applies to whatever Go function the name is bound to later, in any
// scope. Lisp functions bound to the name still get evaluated arguments.
// Registering a name again with the opposite policy changes the policy and
// writes a warning.
//
// It panics if impl is not a function.
func (in *Interpreter) Register(name string, impl any, delayed bool) {
	fn := toCallable(name, impl)
	if old, ok := in.registered[name]; ok && old != delayed {
		logger.Printf("%s re-registered as %s, was %s", name, policy(delayed), policy(old))
		fmt.Fprintf(in.cfg.Warn, "warning: %s re-registered as %s, was %s\n",
			name, policy(delayed), policy(old))
	}
	in.registered[name] = delayed
	if delayed {
		in.delayed[name] = true
	} else {
		delete(in.delayed, name)
	}
	in.global[name] = fn
}

// IsDelayed returns whether the name is registered as delayed.
func (in *Interpreter) IsDelayed(name string) bool {
	return in.delayed[name]
}

// Defun defines a Lisp function in the global namespace. The body is parsed
// from source code. Like all Lisp functions, it is called with evaluated
// arguments, even if the name is registered as delayed.
func (in *Interpreter) Defun(name string, params []string, body string) error {
	forms, err := parse.Parse(parse.Source{Name: "[defun " + name + "]", Code: body})
	if err != nil {
		return err
	}
	fn, err := newLambda(name, params, forms, nil)
	if err != nil {
		return err
	}
	in.global[name] = fn
	return nil
}

func policy(delayed bool) string {
	if delayed {
		return "delayed"
	}
	return "eager"
}

func toCallable(name string, impl any) Callable {
	switch impl := impl.(type) {
	case Callable:
		return impl
	case func(*Frame, []vals.Value) (vals.Value, error):
		return NewNativeFn(name, impl)
	}
	if impl == nil || reflect.TypeOf(impl).Kind() != reflect.Func {
		panic(fmt.Sprintf("Register: %s: cannot use %T as a function", name, impl))
	}
	return NewGoFn(name, impl)
}
