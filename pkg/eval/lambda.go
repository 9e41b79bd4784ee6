package eval

import (
	"strings"

	"src.rambutan.dev/pkg/eval/vals"
)

// RestMarker in a parameter list introduces the parameter that collects the
// remaining arguments into a list.
const RestMarker = "&rest"

// Lambda is a function defined in Lisp. It closes over the Frame it was
// created in.
type Lambda struct {
	vals.FnBase
	Name   string
	Params []string
	// Name of the rest parameter, or an empty string.
	Rest string
	Body []vals.Value
	// Frame the function was created in; nil for functions defined at top
	// level from Go.
	Captured *Frame
}

var _ Callable = &Lambda{}

// NewLambda creates a Lambda from a parameter list. The parameter list must
// consist of unquoted symbols; "&rest" followed by a symbol declares a rest
// parameter.
func NewLambda(name string, params *vals.List, body []vals.Value, captured *Frame) (*Lambda, error) {
	names := make([]string, 0, params.Len())
	for _, p := range params.Elems {
		a, ok := p.(*vals.Atom)
		if !ok {
			return nil, badParamList(params)
		}
		names = append(names, a.Name)
	}
	return newLambda(name, names, body, captured)
}

func newLambda(name string, params []string, body []vals.Value, captured *Frame) (*Lambda, error) {
	l := &Lambda{Name: name, Body: body, Captured: captured}
	for i, p := range params {
		if p == RestMarker {
			if i != len(params)-2 {
				return nil, badParamSpec(params)
			}
			l.Rest = params[i+1]
			break
		}
		l.Params = append(l.Params, p)
	}
	return l, nil
}

// FnName returns the name of the function.
func (l *Lambda) FnName() string { return l.Name }

// Call binds parameters in a new Frame whose parent is the Frame the function
// was created in, and evaluates the body. Missing arguments are bound to Nil,
// and extra arguments are ignored unless there is a rest parameter.
func (l *Lambda) Call(fr *Frame, args []vals.Value) (vals.Value, error) {
	callFrame := &Frame{interp: fr.interp, parent: l.Captured, form: fr.form}
	for i, p := range l.Params {
		if i < len(args) {
			callFrame.Bind(p, args[i])
		} else {
			callFrame.Bind(p, vals.Nil)
		}
	}
	if l.Rest != "" {
		var rest []vals.Value
		if len(args) > len(l.Params) {
			rest = append(rest, args[len(l.Params):]...)
		}
		callFrame.Bind(l.Rest, vals.MakeList(rest...))
	}
	return callFrame.EvalBody(l.Body)
}

func badParamList(params *vals.List) error {
	return &BadParams{vals.Repr(params)}
}

func badParamSpec(params []string) error {
	return &BadParams{"(" + strings.Join(params, " ") + ")"}
}

// BadParams is returned when defining a function with a malformed parameter
// list.
type BadParams struct {
	Params string
}

func (e *BadParams) Error() string {
	return "bad parameter list: " + e.Params
}
