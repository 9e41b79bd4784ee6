// Package console implements functions that write to the output of the
// interpreter.
package console

import (
	"fmt"

	"src.rambutan.dev/pkg/eval"
	"src.rambutan.dev/pkg/eval/vals"
)

// Install registers the console functions in the Interpreter.
func Install(in *eval.Interpreter) {
	in.Register("log", log, false)
}

// (log x...) writes each argument on its own line. Strings are written as
// they are; other values are written in their printed form.
func log(fr *eval.Frame, args ...vals.Value) error {
	w := fr.Interp().Stdout()
	for _, arg := range args {
		if _, err := fmt.Fprintln(w, vals.ToString(arg)); err != nil {
			return err
		}
	}
	return nil
}
