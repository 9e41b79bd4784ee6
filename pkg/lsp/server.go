package lsp

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"
	"src.rambutan.dev/pkg/diag"
	"src.rambutan.dev/pkg/eval"
	"src.rambutan.dev/pkg/eval/vals"
	"src.rambutan.dev/pkg/mods"
	"src.rambutan.dev/pkg/parse"
)

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
)

type server struct {
	// Only used to know about the builtins; code is never evaluated.
	interp  *eval.Interpreter
	content map[lsp.DocumentURI]string
}

func newServer() *server {
	in := eval.NewInterpreter(eval.Config{Stdout: io.Discard, Warn: io.Discard})
	mods.AddTo(in, nil)
	return &server{in, make(map[lsp.DocumentURI]string)}
}

func handler(s *server) jsonrpc2.Handler {
	return routingHandler(map[string]method{
		"initialize":              s.initialize,
		"textDocument/didOpen":    s.didOpen,
		"textDocument/didChange":  s.didChange,
		"textDocument/didClose":   s.didClose,
		"textDocument/hover":      s.hover,
		"textDocument/completion": s.completion,

		"initialized": noop,
		"shutdown":    noop,
		"exit":        noop,
		// Sent by some clients even when the server doesn't advertise support.
		"workspace/didChangeWatchedFiles": noop,
	})
}

type method func(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error)

func noop(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return nil, nil
}

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		fn, ok := methods[req.Method]
		if !ok {
			logger.Println("unknown method", req.Method)
			return nil, errMethodNotFound
		}
		var params json.RawMessage
		if req.Params != nil {
			params = *req.Params
		}
		return fn(ctx, conn, params)
	})
}

// Handler implementations. These are all called synchronously.

func (s *server) initialize(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return &lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync: &lsp.TextDocumentSyncOptionsOrKind{
				Options: &lsp.TextDocumentSyncOptions{
					OpenClose: true,
					Change:    lsp.TDSKFull,
				},
			},
			CompletionProvider: &lsp.CompletionOptions{},
			HoverProvider:      true,
		},
	}, nil
}

func (s *server) didOpen(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidOpenTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	uri, content := params.TextDocument.URI, params.TextDocument.Text
	s.content[uri] = content
	go publishDiagnostics(ctx, conn, uri, content)
	return nil, nil
}

func (s *server) didChange(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidChangeTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil || len(params.ContentChanges) == 0 {
		return nil, errInvalidParams
	}

	// ContentChanges includes full text since the server is only advertised to
	// support that; see the initialize method.
	uri, content := params.TextDocument.URI, params.ContentChanges[0].Text
	s.content[uri] = content
	go publishDiagnostics(ctx, conn, uri, content)
	return nil, nil
}

func (s *server) didClose(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidCloseTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	delete(s.content, params.TextDocument.URI)
	return nil, nil
}

func (s *server) hover(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.TextDocumentPositionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	content := s.content[params.TextDocument.URI]
	forms, _ := parse.Parse(parse.Source{Name: string(params.TextDocument.URI), Code: content})
	atom := atomAt(forms, lspPositionToIdx(content, params.Position))
	if atom == nil {
		return lsp.Hover{}, nil
	}
	text := s.describe(atom.Name, definitions(forms))
	if text == "" {
		return lsp.Hover{}, nil
	}
	r := lspRangeFromRange(content, atom)
	return lsp.Hover{Contents: []lsp.MarkedString{lsp.RawMarkedString(text)}, Range: &r}, nil
}

// Describes a name, preferring definitions in the document over builtins.
func (s *server) describe(name string, defs map[string]definition) string {
	if def, ok := defs[name]; ok {
		return def.signature
	}
	if usage, ok := builtinUsage[name]; ok {
		return usage
	}
	v, ok := s.interp.Lookup(name)
	if !ok {
		return ""
	}
	if fn, ok := v.(vals.Fn); ok {
		return vals.Repr(fn)
	}
	return vals.Repr(v)
}

func (s *server) completion(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.CompletionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	content := s.content[params.TextDocument.URI]
	dot := lspPositionToIdx(content, params.Position)
	start := symbolStart(content, dot)
	prefix := content[start:dot]
	replace := lspRangeFromRange(content, diag.Ranging{From: start, To: dot})

	forms, _ := parse.Parse(parse.Source{Name: string(params.TextDocument.URI), Code: content})
	defs := definitions(forms)

	items := []lsp.CompletionItem{}
	seen := make(map[string]bool)
	add := func(name string, kind lsp.CompletionItemKind, detail string) {
		if seen[name] || !strings.HasPrefix(name, prefix) {
			return
		}
		seen[name] = true
		items = append(items, lsp.CompletionItem{
			Label:    name,
			Kind:     kind,
			Detail:   detail,
			TextEdit: &lsp.TextEdit{Range: replace, NewText: name},
		})
	}
	for _, def := range sortedDefinitions(defs) {
		add(def.name, def.kind, def.signature)
	}
	for _, name := range s.interp.Names() {
		kind := lsp.CIKVariable
		if v, _ := s.interp.Lookup(name); isFn(v) {
			kind = lsp.CIKFunction
		}
		if s.interp.IsDelayed(name) {
			kind = lsp.CIKKeyword
		}
		add(name, kind, builtinUsage[name])
	}
	return items, nil
}

func isFn(v vals.Value) bool {
	_, ok := v.(vals.Fn)
	return ok
}

func publishDiagnostics(ctx context.Context, conn jsonrpc2.JSONRPC2, uri lsp.DocumentURI, content string) {
	err := conn.Notify(ctx, "textDocument/publishDiagnostics",
		lsp.PublishDiagnosticsParams{URI: uri, Diagnostics: diagnostics(uri, content)})
	if err != nil {
		logger.Println("failed to publish diagnostics:", err)
	}
}

func diagnostics(uri lsp.DocumentURI, content string) []lsp.Diagnostic {
	_, err := parse.Parse(parse.Source{Name: string(uri), Code: content})
	e := parse.GetError(err)
	if e == nil {
		return []lsp.Diagnostic{}
	}
	return []lsp.Diagnostic{{
		Range:    lspRangeFromRange(content, e),
		Severity: lsp.Error,
		Source:   "parse",
		Message:  e.Message,
	}}
}

func lspRangeFromRange(s string, r diag.Ranger) lsp.Range {
	rg := r.Range()
	return lsp.Range{
		Start: lspPositionFromIdx(s, rg.From),
		End:   lspPositionFromIdx(s, rg.To),
	}
}

func lspPositionToIdx(s string, pos lsp.Position) int {
	var idx int
	walkString(s, func(i int, p lsp.Position) bool {
		idx = i
		return p.Line < pos.Line || (p.Line == pos.Line && p.Character < pos.Character)
	})
	return idx
}

func lspPositionFromIdx(s string, idx int) lsp.Position {
	var pos lsp.Position
	walkString(s, func(i int, p lsp.Position) bool {
		pos = p
		return i < idx
	})
	return pos
}

// Generates (index, lspPosition) pairs in s, stopping if f returns false.
func walkString(s string, f func(i int, p lsp.Position) bool) {
	var p lsp.Position
	lastCR := false

	for i, r := range s {
		if !f(i, p) {
			return
		}
		switch {
		case r == '\r':
			p.Line++
			p.Character = 0
		case r == '\n':
			if !lastCR {
				p.Line++
				p.Character = 0
			}
		case r <= 0xFFFF:
			// Encoded in UTF-16 with one unit
			p.Character++
		default:
			// Encoded in UTF-16 with two units
			p.Character += 2
		}
		lastCR = r == '\r'
	}
	f(len(s), p)
}
