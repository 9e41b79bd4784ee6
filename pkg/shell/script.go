package shell

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"src.rambutan.dev/pkg/diag"
	"src.rambutan.dev/pkg/eval"
	"src.rambutan.dev/pkg/eval/vals"
	"src.rambutan.dev/pkg/parse"
)

// Name of the global variable holding the arguments after the script.
const argsVarName = "args"

// Configuration for the script mode.
type scriptCfg struct {
	Cmd       bool
	CheckOnly bool
	JSON      bool
}

// Executes a script. If args is empty, the script is read from stdin.
func script(in *eval.Interpreter, fds [3]*os.File, args []string, cfg *scriptCfg) int {
	src, err := scriptSource(fds[0], args, cfg.Cmd)
	if err != nil {
		fmt.Fprintln(fds[2], err)
		return 2
	}
	if len(args) > 1 {
		scriptArgs := make([]vals.Value, len(args)-1)
		for i, arg := range args[1:] {
			scriptArgs[i] = vals.Str(arg)
		}
		in.SetGlobal(argsVarName, vals.MakeList(scriptArgs...))
	}

	if cfg.CheckOnly {
		_, err := parse.Parse(src)
		if cfg.JSON {
			fmt.Fprintf(fds[1], "%s\n", errorsToJSON(err))
		} else if err != nil {
			diag.ShowError(fds[2], err)
		}
		if err != nil {
			return 2
		}
		return 0
	}

	// Each top-level form is evaluated on its own; an error in one form does
	// not stop later ones.
	failed := false
	err = in.EvalForms(src, func(r eval.FormResult) bool {
		if r.Err != nil {
			diag.ShowError(fds[2], r.Err)
			failed = true
		}
		return true
	})
	if err != nil {
		diag.ShowError(fds[2], err)
		failed = true
	}
	if failed {
		return 2
	}
	return 0
}

func scriptSource(stdin io.Reader, args []string, cmd bool) (parse.Source, error) {
	switch {
	case cmd:
		if len(args) == 0 {
			return parse.Source{}, errors.New("-c requires an argument")
		}
		return parse.Source{Name: "code from -c", Code: args[0]}, nil
	case len(args) == 0:
		code, err := readUTF8(stdin)
		if err != nil {
			return parse.Source{}, fmt.Errorf("cannot read stdin: %w", err)
		}
		return parse.Source{Name: "[stdin]", Code: code}, nil
	default:
		name, err := filepath.Abs(args[0])
		if err != nil {
			return parse.Source{}, fmt.Errorf(
				"cannot get full path of script %q: %w", args[0], err)
		}
		code, err := readFileUTF8(name)
		if err != nil {
			return parse.Source{}, fmt.Errorf("cannot read script %q: %w", name, err)
		}
		return parse.Source{Name: name, Code: code, IsFile: true}, nil
	}
}

// Evaluates each of the named files, stopping at the first error.
func preload(in *eval.Interpreter, paths []string) error {
	for _, path := range paths {
		code, err := readFileUTF8(path)
		if err != nil {
			return fmt.Errorf("cannot read preload script %q: %w", path, err)
		}
		_, err = in.EvalSource(parse.Source{Name: path, Code: code, IsFile: true})
		if err != nil {
			return err
		}
	}
	return nil
}

var errSourceNotUTF8 = errors.New("source is not UTF-8")

func readFileUTF8(fname string) (string, error) {
	f, err := os.Open(fname)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return readUTF8(f)
}

func readUTF8(r io.Reader) (string, error) {
	bytes, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(bytes) {
		return "", errSourceNotUTF8
	}
	return string(bytes), nil
}

// An auxiliary struct for converting errors with diagnostics information to JSON.
type errorInJSON struct {
	FileName string `json:"fileName"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Message  string `json:"message"`
	Partial  bool   `json:"partial,omitempty"`
}

// Converts a syntax error into JSON. A nil error is converted to an empty
// array.
func errorsToJSON(parseErr error) []byte {
	converted := []errorInJSON{}
	if e := parse.GetError(parseErr); e != nil {
		converted = append(converted, errorInJSON{
			e.Context.Name, e.Context.From, e.Context.To, e.Message, e.Partial})
	}
	jsonError, errMarshal := json.Marshal(converted)
	if errMarshal != nil {
		return []byte(`[{"message":"Unable to convert the errors to JSON"}]`)
	}
	return jsonError
}
