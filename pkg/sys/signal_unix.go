//go:build !windows && !plan9 && !js

package sys

import (
	"os"
	"os/signal"
	"syscall"
)

func notifySignals() (chan os.Signal, func()) {
	sigCh := make(chan os.Signal, sigsChanBufferSize)
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGWINCH)
	return sigCh, func() { signal.Stop(sigCh) }
}
