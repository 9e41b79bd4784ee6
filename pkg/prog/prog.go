// Package prog supports building the rambutan binary out of subprograms.
//
// A subprogram declares the flags it understands with RegisterFlags, and
// decides in Run whether it applies to the parsed flags. The first applicable
// subprogram of a Composite wins.
package prog

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"src.rambutan.dev/pkg/logutil"
)

// Program represents a subprogram.
type Program interface {
	// RegisterFlags registers the flags this subprogram understands.
	RegisterFlags(fs *FlagSet)
	// Run runs the subprogram. It returns ErrNextProgram if the subprogram
	// does not apply to the parsed flags.
	Run(fds [3]*os.File, args []string) error
}

// FlagSet wraps a flag.FlagSet. Flags shared by several subprograms are
// registered lazily through its methods, so that each one is only defined
// once.
type FlagSet struct {
	*flag.FlagSet
	json  *bool
	paths *Paths
}

// Paths keeps the paths to files that subprograms may share.
type Paths struct {
	// Config is the path to the rc.yaml file.
	Config string
	// DB is the path to the store database.
	DB string
}

// JSON returns a pointer to the value of the -json flag.
func (fs *FlagSet) JSON() *bool {
	if fs.json == nil {
		var json bool
		fs.BoolVar(&json, "json", false,
			"Show the output from -buildinfo, -check or -version in JSON")
		fs.json = &json
	}
	return fs.json
}

// Paths returns a pointer to the values of the -config and -db flags.
func (fs *FlagSet) Paths() *Paths {
	if fs.paths == nil {
		var p Paths
		fs.StringVar(&p.Config, "config", "",
			"Path to rc.yaml; defaults to rc.yaml in the user config directory")
		fs.StringVar(&p.DB, "db", "",
			"Path to the database; defaults to db.bolt in the user data directory")
		fs.paths = &p
	}
	return fs.paths
}

// Run parses command-line flags and runs the first applicable subprogram. It
// returns the exit status of the program.
func Run(fds [3]*os.File, args []string, p Program) int {
	fs := flag.NewFlagSet("rambutan", flag.ContinueOnError)
	// Error and usage will be printed explicitly.
	fs.SetOutput(io.Discard)

	var log string
	var help bool
	fs.StringVar(&log, "log", "", "Path to a file to write debug logs to")
	fs.BoolVar(&help, "help", false, "Show usage help and quit")

	p.RegisterFlags(&FlagSet{FlagSet: fs})

	err := fs.Parse(args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			// -h is not defined, but the flag package treats it as a request
			// for help. Report it like any other undefined flag.
			fmt.Fprintln(fds[2], "flag provided but not defined: -h")
		} else {
			fmt.Fprintln(fds[2], err)
		}
		usage(fds[2], fs)
		return 2
	}

	if log != "" {
		err = logutil.SetOutputFile(log)
		if err != nil {
			fmt.Fprintln(fds[2], err)
		}
	}

	if help {
		usage(fds[1], fs)
		return 0
	}

	err = p.Run(fds, fs.Args())
	if err == nil {
		return 0
	}
	if err == ErrNextProgram {
		err = errNoSuitableSubprogram
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(fds[2], msg)
	}
	switch err := err.(type) {
	case badUsageError:
		usage(fds[2], fs)
	case exitError:
		return err.exit
	}
	return 2
}

func usage(out io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(out, "Usage: rambutan [flags] [script [args...]]")
	fmt.Fprintln(out, "Supported flags:")
	fs.SetOutput(out)
	fs.PrintDefaults()
}

// Composite returns a Program made up of the given programs. Its Run tries
// each program in turn, stopping at the first one that doesn't return
// ErrNextProgram.
func Composite(programs ...Program) Program {
	return composite(programs)
}

type composite []Program

func (cp composite) RegisterFlags(fs *FlagSet) {
	for _, p := range cp {
		p.RegisterFlags(fs)
	}
}

func (cp composite) Run(fds [3]*os.File, args []string) error {
	for _, p := range cp {
		err := p.Run(fds, args)
		if err != ErrNextProgram {
			return err
		}
	}
	return ErrNextProgram
}

// ErrNextProgram is a special error that may be returned by Program.Run to
// signify that the next program in a Composite should be tried.
var ErrNextProgram = errors.New("next program")

var errNoSuitableSubprogram = errors.New("internal error: no suitable subprogram")

// BadUsage returns a special error that may be returned by Program.Run. It
// causes the main function to print out a message, the usage information and
// exit with 2.
func BadUsage(msg string) error { return badUsageError{msg} }

type badUsageError struct{ msg string }

func (e badUsageError) Error() string { return e.msg }

// Exit returns a special error that may be returned by Program.Run. It causes
// the main function to exit with the given code without printing any error
// messages. Exit(0) returns nil.
func Exit(exit int) error {
	if exit == 0 {
		return nil
	}
	return exitError{exit}
}

type exitError struct{ exit int }

func (e exitError) Error() string { return "" }
