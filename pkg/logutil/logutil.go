// Package logutil provides logging utilities.
//
// All loggers created by GetLogger write to a single shared output, which
// discards everything until SetOutput or SetOutputFile is called.
package logutil

import (
	"io"
	"log"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	out     io.Writer = io.Discard
	loggers []*log.Logger
)

// GetLogger gets a logger with the given prefix.
func GetLogger(prefix string) *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	logger := log.New(out, prefix, log.LstdFlags)
	loggers = append(loggers, logger)
	return logger
}

// SetOutput redirects the output of all loggers obtained with GetLogger to
// the given io.Writer. If newOut is nil, the output is discarded.
func SetOutput(newOut io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if newOut == nil {
		newOut = io.Discard
	}
	out = newOut
	for _, logger := range loggers {
		logger.SetOutput(out)
	}
}

// SetOutputFile redirects the output of all loggers obtained with GetLogger
// to the named file. If the file exists, it is truncated. If fname is empty,
// the output is discarded.
func SetOutputFile(fname string) error {
	if fname == "" {
		SetOutput(nil)
		return nil
	}
	file, err := os.OpenFile(fname, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	SetOutput(file)
	return nil
}
