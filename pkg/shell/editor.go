package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
	"src.rambutan.dev/pkg/eval"
)

// The interface the REPL needs from a line editor.
type editor interface {
	// ReadLine shows the prompt and reads one line. It returns errAborted if
	// the user discarded the line, and io.EOF at the end of input.
	ReadLine(prompt string) (string, error)
	AddHistory(line string)
	Close() error
}

var errAborted = errors.New("aborted")

// A line editor backed by liner, used when stdin is a terminal.
type linerEditor struct {
	state *liner.State
}

func newLinerEditor(in *eval.Interpreter) *linerEditor {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetTabCompletionStyle(liner.TabPrints)
	state.SetWordCompleter(func(line string, pos int) (string, []string, string) {
		return completeName(in, line, pos)
	})
	return &linerEditor{state}
}

func (ed *linerEditor) ReadLine(prompt string) (string, error) {
	line, err := ed.state.Prompt(prompt)
	if err == liner.ErrPromptAborted {
		return "", errAborted
	}
	return line, err
}

func (ed *linerEditor) AddHistory(line string) { ed.state.AppendHistory(line) }

func (ed *linerEditor) Close() error { return ed.state.Close() }

// Completes the symbol under the cursor with the names bound in the global
// namespace.
func completeName(in *eval.Interpreter, line string, pos int) (head string, completions []string, tail string) {
	start := strings.LastIndexFunc(line[:pos], isDelimiter) + 1
	head, prefix, tail := line[:start], line[start:pos], line[pos:]
	if prefix == "" {
		return head, nil, tail
	}
	for _, name := range in.Names() {
		if strings.HasPrefix(name, prefix) {
			completions = append(completions, name)
		}
	}
	return head, completions, tail
}

func isDelimiter(r rune) bool {
	return r == '(' || r == ')' || r == '\'' || r == '`' || r == ',' ||
		r == '"' || r == ' ' || r == '\t'
}

// A minimal line editor, used when stdin is not a terminal.
type minEditor struct {
	in  *bufio.Reader
	out io.Writer
}

func newMinEditor(in io.Reader, out io.Writer) *minEditor {
	return &minEditor{bufio.NewReader(in), out}
}

func (ed *minEditor) ReadLine(prompt string) (string, error) {
	fmt.Fprint(ed.out, prompt)
	line, err := ed.in.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	return strings.TrimRight(line, "\r\n"), err
}

// AddHistory is a no-op, since the minimal editor has no history navigation.
func (ed *minEditor) AddHistory(string) {}

func (ed *minEditor) Close() error { return nil }
