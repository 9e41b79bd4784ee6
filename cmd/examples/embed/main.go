// Command embed shows how to embed Rambutan in a Go program: it registers
// host functions, evaluates Lisp code and calls a Lisp function from Go.
package main

import (
	"fmt"
	"os"
	"strings"

	"src.rambutan.dev/pkg/diag"
	"src.rambutan.dev/pkg/eval"
	"src.rambutan.dev/pkg/eval/vals"
	"src.rambutan.dev/pkg/mods"
)

const code = `
(defun shout (s) (. (upcase s) "!"))
(unless (= (len "abc") 3) (log "never printed"))
(log (shout "hello"))
`

func main() {
	in := eval.NewInterpreter(eval.Config{})
	mods.AddTo(in, nil)

	// Eager functions get their arguments evaluated and converted.
	in.Register("upcase", strings.ToUpper, false)
	in.Register("len", func(s string) int { return len(s) }, false)
	// Delayed functions get the raw operands.
	in.Register("unless", func(fr *eval.Frame, args []vals.Value) (vals.Value, error) {
		if len(args) == 0 {
			return vals.Nil, nil
		}
		cond, err := fr.Eval(args[0])
		if err != nil || vals.Truthy(cond) {
			return vals.Nil, err
		}
		return fr.EvalBody(args[1:])
	}, true)

	if _, err := in.Eval(code); err != nil {
		diag.ShowError(os.Stderr, err)
		os.Exit(1)
	}

	shout, _ := in.Lookup("shout")
	v, err := in.Call(shout, vals.Str("from go"))
	if err != nil {
		diag.ShowError(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(vals.ToString(v))
}
