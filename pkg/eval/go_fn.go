package eval

import (
	"fmt"
	"reflect"

	"src.rambutan.dev/pkg/eval/errs"
	"src.rambutan.dev/pkg/eval/vals"
)

type goFn struct {
	name string
	impl reflect.Value

	// If true, pass the frame as a *Frame argument.
	frame bool
	// Type of "normal" (non-frame, non-variadic) arguments.
	normalArgs []reflect.Type
	// If not nil, type of variadic arguments.
	variadicArg reflect.Type
}

var (
	frameType = reflect.TypeOf((*Frame)(nil))
	// error(nil) is treated as nil by reflect.TypeOf, so we first get the type
	// of *error and use Elem to obtain type of error.
	errorType = reflect.TypeOf((*error)(nil)).Elem()
)

// NewGoFn wraps a Go function into a NativeFn using reflection.
//
// If the first parameter of impl has type *Frame, it gets the calling Frame.
// Other parameters are converted with vals.ScanToGo, so they may have type
// vals.Value, float64, int, string, bool, *vals.List or *vals.Atom. The last
// parameter may be variadic.
//
// The function may return nothing, one value, an error, or one value and an
// error. The returned value is converted with vals.FromGo; returning nothing
// or a nil error alone results in Nil.
//
// It panics if impl is not a function or has more return values.
func NewGoFn(name string, impl any) *NativeFn {
	implValue := reflect.ValueOf(impl)
	implType := implValue.Type()
	if implType.Kind() != reflect.Func {
		panic(fmt.Sprintf("NewGoFn: %s: impl must be a function, got %T", name, impl))
	}
	switch implType.NumOut() {
	case 0, 1:
	case 2:
		if implType.Out(1) != errorType {
			panic(fmt.Sprintf("NewGoFn: %s: second return value must be error", name))
		}
	default:
		panic(fmt.Sprintf("NewGoFn: %s: too many return values", name))
	}

	b := &goFn{name: name, impl: implValue}
	i := 0
	if i < implType.NumIn() && implType.In(i) == frameType {
		b.frame = true
		i++
	}
	for ; i < implType.NumIn(); i++ {
		paramType := implType.In(i)
		if i == implType.NumIn()-1 && implType.IsVariadic() {
			b.variadicArg = paramType.Elem()
			break
		}
		b.normalArgs = append(b.normalArgs, paramType)
	}
	for _, typ := range append(b.normalArgs, b.variadicArg) {
		if typ != nil && !supportedParams[typ] {
			panic(fmt.Sprintf("NewGoFn: %s: unsupported parameter type %s", name, typ))
		}
	}
	return NewNativeFn(name, b.call)
}

var supportedParams = map[reflect.Type]bool{
	reflect.TypeOf((*vals.Value)(nil)).Elem(): true,
	reflect.TypeOf(0.0):                       true,
	reflect.TypeOf(0):                         true,
	reflect.TypeOf(""):                        true,
	reflect.TypeOf(false):                     true,
	reflect.TypeOf((*vals.List)(nil)):         true,
	reflect.TypeOf((*vals.Atom)(nil)):         true,
}

func (b *goFn) call(fr *Frame, args []vals.Value) (vals.Value, error) {
	if b.variadicArg != nil {
		if len(args) < len(b.normalArgs) {
			return nil, errs.ArityMismatch{What: "arguments",
				ValidLow: len(b.normalArgs), ValidHigh: -1, Actual: len(args)}
		}
	} else if len(args) != len(b.normalArgs) {
		return nil, errs.ArityMismatch{What: "arguments",
			ValidLow: len(b.normalArgs), ValidHigh: len(b.normalArgs), Actual: len(args)}
	}

	var in []reflect.Value
	if b.frame {
		in = append(in, reflect.ValueOf(fr))
	}
	for i, arg := range args {
		typ := b.variadicArg
		if i < len(b.normalArgs) {
			typ = b.normalArgs[i]
		}
		ptr := reflect.New(typ)
		if err := vals.ScanToGo(arg, ptr.Interface()); err != nil {
			return nil, errs.BadValue{
				What:   fmt.Sprintf("argument %d of %s", i+1, b.name),
				Valid:  validKind(typ),
				Actual: vals.Repr(arg)}
		}
		in = append(in, ptr.Elem())
	}

	outs := b.impl.Call(in)

	if len(outs) > 0 && outs[len(outs)-1].Type() == errorType {
		if err := outs[len(outs)-1].Interface(); err != nil {
			return nil, err.(error)
		}
		outs = outs[:len(outs)-1]
	}
	if len(outs) == 0 {
		return vals.Nil, nil
	}
	return vals.FromGo(outs[0].Interface())
}

func validKind(typ reflect.Type) string {
	switch typ {
	case reflect.TypeOf(0.0):
		return "number"
	case reflect.TypeOf(0):
		return "integer"
	case reflect.TypeOf(""):
		return "string"
	case reflect.TypeOf((*vals.List)(nil)):
		return "list"
	case reflect.TypeOf((*vals.Atom)(nil)):
		return "symbol"
	default:
		return typ.String()
	}
}
