// Package sys provide system utilities with the same API across OSes.
package sys

import (
	"os"

	"github.com/mattn/go-isatty"
)

const sigsChanBufferSize = 32

// NotifySignals returns a channel on which the signals the interpreter cares
// about get delivered, and a function to stop the delivery.
func NotifySignals() (chan os.Signal, func()) { return notifySignals() }

// IsATTY determines whether the given file is a terminal.
func IsATTY(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
