package shell

import (
	"io"
	"os"
)

func signalName(sig os.Signal) string { return sig.String() }

// Interrupts are handled by the line editor.
func handleSignal(os.Signal, io.Writer) {}
