package shell

import (
	"fmt"
	"io"
	"os"
	"strings"

	"src.rambutan.dev/pkg/diag"
	"src.rambutan.dev/pkg/eval"
	"src.rambutan.dev/pkg/eval/vals"
	"src.rambutan.dev/pkg/parse"
	"src.rambutan.dev/pkg/store/storedefs"
	"src.rambutan.dev/pkg/sys"
)

const (
	valuePrefix        = "▶ "
	continuationPrompt = "... "
)

// InteractConfig keeps configuration for the interactive mode.
type InteractConfig struct {
	Prompt      string
	HistorySize int
	// Store keeps the input history. It may be nil.
	Store storedefs.Store
}

// Interact runs an interactive session, until the end of input.
func Interact(fds [3]*os.File, in *eval.Interpreter, cfg *InteractConfig) {
	var ed editor
	if sys.IsATTY(fds[0].Fd()) {
		ed = newLinerEditor(in)
	} else {
		ed = newMinEditor(fds[0], fds[2])
	}
	defer ed.Close()
	interact(ed, in, fds[1], fds[2], cfg)
}

func interact(ed editor, in *eval.Interpreter, out, errOut io.Writer, cfg *InteractConfig) {
	loadHistory(ed, cfg)

	cmdNum := 0
	// Input accumulated while waiting for the rest of an incomplete form.
	var pending strings.Builder
	for {
		prompt := cfg.Prompt
		if pending.Len() > 0 {
			prompt = continuationPrompt
		}
		line, err := ed.ReadLine(prompt)
		if err == errAborted {
			pending.Reset()
			continue
		} else if err == io.EOF {
			if pending.Len() > 0 {
				// Evaluate what is left, so that the syntax error is reported.
				cmdNum++
				evalInput(in, out, errOut, cmdNum, pending.String())
			}
			break
		} else if err != nil {
			fmt.Fprintln(errOut, "Editor error:", err)
			if _, isMinEditor := ed.(*minEditor); isMinEditor {
				break
			}
			fmt.Fprintln(errOut, "Falling back to basic line editor")
			ed.Close()
			ed = newMinEditor(os.Stdin, errOut)
			pending.Reset()
			continue
		}

		pending.WriteString(line)
		pending.WriteByte('\n')
		code := pending.String()
		if strings.TrimSpace(code) == "" {
			pending.Reset()
			continue
		}
		if _, err := parse.Parse(parse.Source{Code: code}); parse.IsPartial(err) {
			continue
		}
		pending.Reset()

		cmdNum++
		evalInput(in, out, errOut, cmdNum, code)
		addHistory(ed, cfg.Store, strings.TrimSpace(code))
	}
}

// Evaluates one complete input, writing the value of each form to out and
// errors to errOut.
func evalInput(in *eval.Interpreter, out, errOut io.Writer, cmdNum int, code string) {
	src := parse.Source{Name: fmt.Sprintf("[tty %v]", cmdNum), Code: code}
	err := in.EvalForms(src, func(r eval.FormResult) bool {
		if r.Err != nil {
			diag.ShowError(errOut, r.Err)
		} else {
			fmt.Fprintln(out, valuePrefix+vals.Repr(r.Value))
		}
		return true
	})
	if err != nil {
		diag.ShowError(errOut, err)
	}
}

func loadHistory(ed editor, cfg *InteractConfig) {
	if cfg.Store == nil || cfg.HistorySize == 0 {
		return
	}
	cmds, err := cfg.Store.RecentCmds(cfg.HistorySize)
	if err != nil {
		logger.Println("failed to load history:", err)
		return
	}
	for _, cmd := range cmds {
		ed.AddHistory(cmd.Text)
	}
}

func addHistory(ed editor, st storedefs.Store, code string) {
	ed.AddHistory(strings.ReplaceAll(code, "\n", " "))
	if st == nil {
		return
	}
	if _, err := st.AddCmd(code); err != nil {
		logger.Println("failed to add command to history:", err)
	}
}
