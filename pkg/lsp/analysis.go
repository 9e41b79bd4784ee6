package lsp

import (
	"sort"
	"strings"
	"unicode/utf8"

	lsp "github.com/sourcegraph/go-lsp"
	"src.rambutan.dev/pkg/eval/vals"
)

// A name defined by a top-level form of a document.
type definition struct {
	name      string
	kind      lsp.CompletionItemKind
	signature string
}

// Collects names defined with defun and setq in the top-level forms.
func definitions(forms []vals.Value) map[string]definition {
	defs := make(map[string]definition)
	for _, form := range forms {
		l, ok := form.(*vals.List)
		if !ok || l.Quoting != 0 || l.Len() < 2 {
			continue
		}
		head, ok := l.Head().(*vals.Atom)
		if !ok {
			continue
		}
		switch head.Name {
		case "defun":
			name, ok := l.Elems[1].(*vals.Atom)
			if !ok || l.Len() < 3 {
				continue
			}
			defs[name.Name] = definition{
				name.Name, lsp.CIKFunction, signature(name.Name, l.Elems[2])}
		case "setq":
			for i := 1; i < l.Len(); i += 2 {
				if name, ok := l.Elems[i].(*vals.Atom); ok {
					defs[name.Name] = definition{
						name.Name, lsp.CIKVariable, "variable " + name.Name}
				}
			}
		}
	}
	return defs
}

func signature(name string, params vals.Value) string {
	var sb strings.Builder
	sb.WriteString("(" + name)
	if l, ok := params.(*vals.List); ok {
		for _, param := range l.Elems {
			sb.WriteString(" " + vals.Repr(param))
		}
	}
	sb.WriteString(")")
	return sb.String()
}

func sortedDefinitions(defs map[string]definition) []definition {
	sorted := make([]definition, 0, len(defs))
	for _, def := range defs {
		sorted = append(sorted, def)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].name < sorted[j].name })
	return sorted
}

// Finds the atom whose source range contains idx. The end of an atom counts
// as inside it, so that the atom just before the cursor is found.
func atomAt(forms []vals.Value, idx int) *vals.Atom {
	for _, form := range forms {
		switch form := form.(type) {
		case *vals.Atom:
			if form.Src != nil && form.Covers(idx) {
				return form
			}
		case *vals.List:
			if form.Src != nil && !form.Covers(idx) {
				continue
			}
			if atom := atomAt(form.Elems, idx); atom != nil {
				return atom
			}
		}
	}
	return nil
}

// Returns the index where the symbol ending at dot starts.
func symbolStart(s string, dot int) int {
	start := dot
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(s[:start])
		if isDelimiter(r) {
			break
		}
		start -= size
	}
	return start
}

func isDelimiter(r rune) bool {
	switch r {
	case '(', ')', '\'', '`', ',', '"':
		return true
	}
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
