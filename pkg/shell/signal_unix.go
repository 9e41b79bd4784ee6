//go:build !windows && !plan9 && !js

package shell

import (
	"io"
	"os"
	"runtime"
	"syscall"

	"golang.org/x/sys/unix"
)

func signalName(sig os.Signal) string {
	return unix.SignalName(sig.(syscall.Signal))
}

func handleSignal(sig os.Signal, stderr io.Writer) {
	switch sig {
	case syscall.SIGHUP, syscall.SIGTERM:
		os.Exit(0)
	case syscall.SIGQUIT:
		buf := make([]byte, 1<<20)
		stderr.Write(buf[:runtime.Stack(buf, true)])
	}
}
