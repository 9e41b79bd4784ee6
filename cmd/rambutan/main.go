// Rambutan is a small, embeddable Lisp. This command runs Rambutan scripts,
// provides an interactive session, and serves as a language server for
// editors.
package main

import (
	"os"

	"src.rambutan.dev/pkg/buildinfo"
	"src.rambutan.dev/pkg/lsp"
	"src.rambutan.dev/pkg/prog"
	"src.rambutan.dev/pkg/shell"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(&buildinfo.Program{}, &lsp.Program{}, &shell.Program{})))
}
