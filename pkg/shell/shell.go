// Package shell is the entry point for running Rambutan code from the command
// line, either as a script or in an interactive session.
package shell

import (
	"fmt"
	"io"
	"os"

	"src.rambutan.dev/pkg/diag"
	"src.rambutan.dev/pkg/eval"
	"src.rambutan.dev/pkg/logutil"
	"src.rambutan.dev/pkg/mods"
	"src.rambutan.dev/pkg/prog"
	"src.rambutan.dev/pkg/store"
	"src.rambutan.dev/pkg/sys"
)

var logger = logutil.GetLogger("[shell] ")

// Program is the shell subprogram. It always runs, so it should come last in
// a composite program.
type Program struct {
	codeInArg, checkOnly, noRC, strict bool

	json  *bool
	paths *prog.Paths
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.BoolVar(&p.codeInArg, "c", false, "Take the first argument as code to execute")
	fs.BoolVar(&p.checkOnly, "check", false, "Parse the script without evaluating it")
	fs.BoolVar(&p.noRC, "norc", false, "Don't read rc.yaml")
	fs.BoolVar(&p.strict, "strict", false, "Make evaluating an unbound symbol an error")
	p.json = fs.JSON()
	p.paths = fs.Paths()
}

func (p *Program) Run(fds [3]*os.File, args []string) error {
	if *p.json && !p.checkOnly {
		return prog.BadUsage("-json can only be used with -check, -version or -buildinfo")
	}

	cfg := p.loadConfig(fds[2])
	in := eval.NewInterpreter(cfg.EvalConfig(p.strict, fds[1], fds[2]))

	if p.checkOnly {
		mods.AddTo(in, nil)
		return prog.Exit(script(in, fds, args, &scriptCfg{
			Cmd: p.codeInArg, CheckOnly: true, JSON: *p.json}))
	}

	st, closeStore := p.openStore(cfg, fds[2])
	defer closeStore()
	mods.AddTo(in, st)
	cleanup := initSignal(fds[2])
	defer cleanup()

	if err := preload(in, cfg.Preload); err != nil {
		diag.ShowError(fds[2], err)
	}

	if len(args) > 0 || p.codeInArg || !sys.IsATTY(fds[0].Fd()) {
		return prog.Exit(script(in, fds, args, &scriptCfg{Cmd: p.codeInArg}))
	}
	Interact(fds, in, &InteractConfig{
		Prompt: cfg.Prompt, HistorySize: cfg.HistorySize, Store: st})
	return nil
}

// Loads rc.yaml. Problems are reported as warnings, and result in the default
// configuration.
func (p *Program) loadConfig(stderr io.Writer) *Config {
	if p.noRC {
		return DefaultConfig()
	}
	path := p.paths.Config
	if path == "" {
		var err error
		path, err = ConfigPath()
		if err != nil {
			fmt.Fprintln(stderr, "Warning:", err)
			return DefaultConfig()
		}
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		fmt.Fprintln(stderr, "Warning:", err)
		return DefaultConfig()
	}
	logger.Println("loaded config from", path)
	return cfg
}

// Opens the store. If that fails, a warning is written and the session
// continues without a store.
func (p *Program) openStore(cfg *Config, stderr io.Writer) (store.DBStore, func()) {
	path := p.paths.DB
	if path == "" {
		path = cfg.DB
	}
	if path == "" {
		var err error
		path, err = DBPath()
		if err != nil {
			fmt.Fprintln(stderr, "Warning:", err)
			return nil, func() {}
		}
	}
	st, err := store.NewStore(path)
	if err != nil {
		fmt.Fprintln(stderr, "Warning: cannot open database:", err)
		fmt.Fprintln(stderr, "History and shared variables are not available.")
		return nil, func() {}
	}
	return st, func() {
		if err := st.Close(); err != nil {
			logger.Println("failed to close database:", err)
		}
	}
}

func initSignal(stderr io.Writer) func() {
	sigCh, stop := sys.NotifySignals()
	go func() {
		for sig := range sigCh {
			logger.Println("signal", signalName(sig))
			handleSignal(sig, stderr)
		}
	}()
	return func() {
		stop()
		close(sigCh)
	}
}
