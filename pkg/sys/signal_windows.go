package sys

import (
	"os"
	"os/signal"
)

func notifySignals() (chan os.Signal, func()) {
	sigCh := make(chan os.Signal, sigsChanBufferSize)
	signal.Notify(sigCh, os.Interrupt)
	return sigCh, func() { signal.Stop(sigCh) }
}
