// Package mods collects the standard modules.
package mods

import (
	"src.rambutan.dev/pkg/eval"
	"src.rambutan.dev/pkg/mods/console"
	"src.rambutan.dev/pkg/mods/core"
	"src.rambutan.dev/pkg/mods/store"
	"src.rambutan.dev/pkg/store/storedefs"
)

// AddTo installs all standard modules into the Interpreter. The store module
// is only installed if st is not nil.
func AddTo(in *eval.Interpreter, st storedefs.Store) {
	core.Install(in)
	console.Install(in)
	if st != nil {
		store.Install(in, st)
	}
}
