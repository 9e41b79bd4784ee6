package lsp

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"
	"src.rambutan.dev/pkg/prog/progtest"
)

const testURI = lsp.DocumentURI("file:///test.lisp")

type testClient struct {
	t     *testing.T
	conn  *jsonrpc2.Conn
	diags chan lsp.PublishDiagnosticsParams
}

func setup(t *testing.T) *testClient {
	t.Helper()
	serverSide, clientSide := net.Pipe()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		Serve(ctx, serverSide, serverSide)
		close(done)
	}()

	diags := make(chan lsp.PublishDiagnosticsParams, 10)
	h := jsonrpc2.HandlerWithError(func(_ context.Context, _ *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		if req.Method == "textDocument/publishDiagnostics" && req.Params != nil {
			var params lsp.PublishDiagnosticsParams
			if err := json.Unmarshal(*req.Params, &params); err == nil {
				diags <- params
			}
		}
		return nil, nil
	})
	conn := jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(clientSide, jsonrpc2.VSCodeObjectCodec{}), h)
	t.Cleanup(func() {
		conn.Close()
		cancel()
		<-done
	})
	return &testClient{t, conn, diags}
}

func (c *testClient) call(method string, params, result any) error {
	c.t.Helper()
	return c.conn.Call(context.Background(), method, params, result)
}

func (c *testClient) open(text string) {
	c.t.Helper()
	err := c.conn.Notify(context.Background(), "textDocument/didOpen",
		lsp.DidOpenTextDocumentParams{
			TextDocument: lsp.TextDocumentItem{URI: testURI, Text: text}})
	if err != nil {
		c.t.Fatal(err)
	}
}

func (c *testClient) change(text string) {
	c.t.Helper()
	err := c.conn.Notify(context.Background(), "textDocument/didChange",
		lsp.DidChangeTextDocumentParams{
			TextDocument: lsp.VersionedTextDocumentIdentifier{
				TextDocumentIdentifier: lsp.TextDocumentIdentifier{URI: testURI}},
			ContentChanges: []lsp.TextDocumentContentChangeEvent{{Text: text}}})
	if err != nil {
		c.t.Fatal(err)
	}
}

func (c *testClient) nextDiagnostics() lsp.PublishDiagnosticsParams {
	c.t.Helper()
	select {
	case params := <-c.diags:
		return params
	case <-time.After(5 * time.Second):
		c.t.Fatal("timed out waiting for diagnostics")
		return lsp.PublishDiagnosticsParams{}
	}
}

func TestInitialize(t *testing.T) {
	c := setup(t)
	var result lsp.InitializeResult
	if err := c.call("initialize", lsp.InitializeParams{}, &result); err != nil {
		t.Fatal(err)
	}
	caps := result.Capabilities
	if !caps.HoverProvider || caps.CompletionProvider == nil ||
		caps.TextDocumentSync == nil || caps.TextDocumentSync.Options.Change != lsp.TDSKFull {
		t.Errorf("got capabilities %+v", caps)
	}
}

func TestDiagnostics(t *testing.T) {
	c := setup(t)

	c.open("(log 1)\n(log 2")
	want := lsp.PublishDiagnosticsParams{
		URI: testURI,
		Diagnostics: []lsp.Diagnostic{{
			Range: lsp.Range{
				Start: lsp.Position{Line: 1, Character: 0},
				End:   lsp.Position{Line: 1, Character: 1}},
			Severity: lsp.Error,
			Source:   "parse",
			Message:  "unclosed '('",
		}},
	}
	if diff := cmp.Diff(want, c.nextDiagnostics()); diff != "" {
		t.Errorf("diagnostics (-want +got):\n%s", diff)
	}

	c.change("(log 1)\n(log 2)")
	want = lsp.PublishDiagnosticsParams{URI: testURI, Diagnostics: []lsp.Diagnostic{}}
	if diff := cmp.Diff(want, c.nextDiagnostics()); diff != "" {
		t.Errorf("diagnostics (-want +got):\n%s", diff)
	}
}

var hoverTests = []struct {
	name string
	text string
	pos  lsp.Position
	want string
}{
	{"builtin", "(log 1)", lsp.Position{Line: 0, Character: 2}, builtinUsage["log"]},
	{"end of symbol", "(log 1)", lsp.Position{Line: 0, Character: 4}, builtinUsage["log"]},
	{"defun in document", "(defun greet (who &rest more) 1)\n(greet 2)",
		lsp.Position{Line: 1, Character: 3}, "(greet who &rest more)"},
	{"defun shadows builtin", "(defun log (x) x)\n(log 1)",
		lsp.Position{Line: 1, Character: 1}, "(log x)"},
	{"setq in document", "(setq answer 42)\nanswer",
		lsp.Position{Line: 1, Character: 2}, "variable answer"},
	{"global value", "t", lsp.Position{Line: 0, Character: 0}, ""},
	{"unknown", "(frobnicate)", lsp.Position{Line: 0, Character: 3}, ""},
	{"not on a symbol", "(log   1)", lsp.Position{Line: 0, Character: 6}, ""},
	{"after syntax error", "(log 1) (lo", lsp.Position{Line: 0, Character: 2}, builtinUsage["log"]},
}

func TestHover(t *testing.T) {
	for _, test := range hoverTests {
		t.Run(test.name, func(t *testing.T) {
			c := setup(t)
			c.open(test.text)
			c.nextDiagnostics()

			var result lsp.Hover
			err := c.call("textDocument/hover", lsp.TextDocumentPositionParams{
				TextDocument: lsp.TextDocumentIdentifier{URI: testURI},
				Position:     test.pos}, &result)
			if err != nil {
				t.Fatal(err)
			}
			got := ""
			if len(result.Contents) > 0 {
				got = result.Contents[0].Value
			}
			if got != test.want {
				t.Errorf("got hover %q, want %q", got, test.want)
			}
		})
	}
}

func TestCompletion(t *testing.T) {
	c := setup(t)
	c.open("(defun sq (x) (* x x))\n(setq sum 0)\n(s")
	c.nextDiagnostics()

	var items []lsp.CompletionItem
	err := c.call("textDocument/completion", lsp.CompletionParams{
		TextDocumentPositionParams: lsp.TextDocumentPositionParams{
			TextDocument: lsp.TextDocumentIdentifier{URI: testURI},
			Position:     lsp.Position{Line: 2, Character: 2}}}, &items)
	if err != nil {
		t.Fatal(err)
	}

	replace := lsp.Range{
		Start: lsp.Position{Line: 2, Character: 1},
		End:   lsp.Position{Line: 2, Character: 2}}
	item := func(label string, kind lsp.CompletionItemKind, detail string) lsp.CompletionItem {
		return lsp.CompletionItem{Label: label, Kind: kind, Detail: detail,
			TextEdit: &lsp.TextEdit{Range: replace, NewText: label}}
	}
	want := []lsp.CompletionItem{
		item("sq", lsp.CIKFunction, "(sq x)"),
		item("sum", lsp.CIKVariable, "variable sum"),
		item("set", lsp.CIKKeyword, builtinUsage["set"]),
		item("setq", lsp.CIKKeyword, builtinUsage["setq"]),
	}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Errorf("completion items (-want +got):\n%s", diff)
	}
}

func TestMethodNotFound(t *testing.T) {
	c := setup(t)
	err := c.call("textDocument/definition", lsp.TextDocumentPositionParams{}, nil)
	var rpcErr *jsonrpc2.Error
	if !errors.As(err, &rpcErr) || rpcErr.Code != jsonrpc2.CodeMethodNotFound {
		t.Errorf("got error %v, want method not found", err)
	}
}

func TestInvalidParams(t *testing.T) {
	c := setup(t)
	err := c.call("textDocument/hover", []int{1}, nil)
	var rpcErr *jsonrpc2.Error
	if !errors.As(err, &rpcErr) || rpcErr.Code != jsonrpc2.CodeInvalidParams {
		t.Errorf("got error %v, want invalid params", err)
	}
}

func TestProgram(t *testing.T) {
	progtest.Test(t, &Program{},
		progtest.ThatRambutan("-lsp").DoesNothing(),
		progtest.ThatRambutan().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}
