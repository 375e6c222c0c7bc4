package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"
	"testing"

	"github.com/CatkinYang/golox/lox"
)

func TestRunCLIStartsLSPAndExitsOnEOF(t *testing.T) {
	origStdin := os.Stdin
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close write pipe: %v", err)
	}
	os.Stdin = r
	defer func() {
		os.Stdin = origStdin
		_ = r.Close()
	}()

	if err := runCLI([]string{"lox", "lsp"}); err != nil {
		t.Fatalf("runCLI lsp failed: %v", err)
	}
}

func TestDiagnosticsForSourceWithoutErrors(t *testing.T) {
	interp := lox.NewInterpreter(lox.Config{})
	source := "fun run() {\n  return 1;\n}\n"
	diags := diagnosticsForSource(interp, source)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %d", len(diags))
	}
}

func TestDiagnosticsForSourceWithParseError(t *testing.T) {
	interp := lox.NewInterpreter(lox.Config{})
	source := "var a = 1;\nprint a +;\n"
	diags := diagnosticsForSource(interp, source)
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(diags))
	}
	first := diags[0]
	if first["severity"] != 1 {
		t.Fatalf("expected severity 1, got %#v", first["severity"])
	}
	if first["message"] != "Error at ';': Expect expression." {
		t.Fatalf("unexpected diagnostic message: %#v", first["message"])
	}
	start := first["range"].(map[string]any)["start"].(map[string]any)
	if start["line"] != 1 || start["character"] != 9 {
		t.Fatalf("unexpected diagnostic start: %#v", start)
	}
}

func TestDiagnosticsForSourceReportsResolverErrors(t *testing.T) {
	interp := lox.NewInterpreter(lox.Config{})
	diags := diagnosticsForSource(interp, "print this;\n")
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(diags))
	}
	message, _ := diags[0]["message"].(string)
	if !strings.Contains(message, "Can't use 'this' outside of a class.") {
		t.Fatalf("unexpected diagnostic message: %q", message)
	}
}

func TestCompletionItemsAreSortedAndCategorized(t *testing.T) {
	items := completionItems("class Shape {}\nfun area(w, h) { return w * h; }\nvar total = 0;\n")
	if len(items) == 0 {
		t.Fatalf("expected completion items")
	}

	labels := make([]string, 0, len(items))
	for _, item := range items {
		label, ok := item["label"].(string)
		if !ok {
			t.Fatalf("unexpected completion label: %#v", item["label"])
		}
		labels = append(labels, label)
	}
	if !slices.IsSorted(labels) {
		t.Fatalf("expected sorted completion labels, got %v", labels)
	}

	keyword := findCompletionItem(t, items, "while")
	if keyword["detail"] != "keyword" || keyword["kind"] != completionKindKeyword {
		t.Fatalf("unexpected keyword item: %#v", keyword)
	}
	fn := findCompletionItem(t, items, "area")
	if fn["detail"] != "fun area(w, h)" || fn["kind"] != completionKindFunction {
		t.Fatalf("unexpected function item: %#v", fn)
	}
	class := findCompletionItem(t, items, "Shape")
	if class["kind"] != completionKindClass {
		t.Fatalf("unexpected class item: %#v", class)
	}
	variable := findCompletionItem(t, items, "total")
	if variable["kind"] != completionKindVariable {
		t.Fatalf("unexpected variable item: %#v", variable)
	}
}

func TestHandleMessageDidOpenPublishesDiagnostics(t *testing.T) {
	server := newLSPServer(strings.NewReader(""), &bytes.Buffer{})
	params := map[string]any{
		"textDocument": map[string]any{
			"uri":  "file:///tmp/test.lox",
			"text": "fun run( {\n}\n",
		},
	}
	payload, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("marshal params: %v", err)
	}

	messages := server.handleMessage(lspInboundMessage{
		JSONRPC: "2.0",
		Method:  "textDocument/didOpen",
		Params:  payload,
	})
	if len(messages) != 1 {
		t.Fatalf("expected one publishDiagnostics notification, got %d", len(messages))
	}
	if messages[0].Method != "textDocument/publishDiagnostics" {
		t.Fatalf("unexpected method: %q", messages[0].Method)
	}
	paramsMap, ok := messages[0].Params.(map[string]any)
	if !ok {
		t.Fatalf("unexpected params payload: %#v", messages[0].Params)
	}
	diags, ok := paramsMap["diagnostics"].([]map[string]any)
	if !ok {
		t.Fatalf("unexpected diagnostics payload: %#v", paramsMap["diagnostics"])
	}
	if len(diags) == 0 {
		t.Fatalf("expected diagnostics for invalid source")
	}
}

func TestHandleMessageHoverDescribesDeclarations(t *testing.T) {
	server := newLSPServer(strings.NewReader(""), &bytes.Buffer{})
	server.docs["file:///tmp/test.lox"] = "class Point < Base {}\nprint Point;\n"

	tests := []struct {
		line, character int
		want            string
	}{
		{1, 7, "`class Point < Base`"},
		{1, 2, "Lox keyword"},
	}
	for _, tt := range tests {
		value := hoverValue(t, server, "file:///tmp/test.lox", tt.line, tt.character)
		if !strings.Contains(value, tt.want) {
			t.Fatalf("hover at %d:%d = %q, want it to contain %q", tt.line, tt.character, value, tt.want)
		}
	}
}

func TestHandleMessageUnknownMethodReturnsError(t *testing.T) {
	server := newLSPServer(strings.NewReader(""), &bytes.Buffer{})
	messages := server.handleMessage(lspInboundMessage{
		JSONRPC: "2.0",
		ID:      rawID("7"),
		Method:  "workspace/symbol",
	})
	if len(messages) != 1 || messages[0].Error == nil || messages[0].Error.Code != -32601 {
		t.Fatalf("expected method not found error, got %#v", messages)
	}
}

func TestServeAnswersInitializeOverStdio(t *testing.T) {
	request := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`
	exit := `{"jsonrpc":"2.0","method":"exit"}`
	input := fmt.Sprintf("Content-Length: %d\r\n\r\n%sContent-Length: %d\r\n\r\n%s",
		len(request), request, len(exit), exit)

	var out bytes.Buffer
	server := newLSPServer(strings.NewReader(input), &out)
	if err := server.serve(); err != nil {
		t.Fatalf("serve failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "Content-Length: ") {
		t.Fatalf("expected framed response, got %q", out.String())
	}
	if !strings.Contains(out.String(), `"hoverProvider":true`) {
		t.Fatalf("expected capabilities in response, got %q", out.String())
	}
}

func TestWordAtPosition(t *testing.T) {
	source := "fun run() {\n  print clock_now();\n}\n"
	word := wordAtPosition(source, 1, 10)
	if word != "clock_now" {
		t.Fatalf("expected clock_now, got %q", word)
	}
}

func TestWordAtPositionUsesUTF16CharacterOffsets(t *testing.T) {
	source := "😀😀x y\n"
	word := wordAtPosition(source, 0, 4)
	if word != "x" {
		t.Fatalf("expected x, got %q", word)
	}
}

func hoverValue(t *testing.T, server *lspServer, uri string, line, character int) string {
	t.Helper()
	params := map[string]any{
		"textDocument": map[string]any{"uri": uri},
		"position":     map[string]any{"line": line, "character": character},
	}
	payload, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("marshal params: %v", err)
	}

	messages := server.handleMessage(lspInboundMessage{
		JSONRPC: "2.0",
		ID:      rawID("1"),
		Method:  "textDocument/hover",
		Params:  payload,
	})
	if len(messages) != 1 {
		t.Fatalf("expected one response, got %d", len(messages))
	}
	result, ok := messages[0].Result.(map[string]any)
	if !ok {
		t.Fatalf("unexpected hover result: %#v", messages[0].Result)
	}
	contents, ok := result["contents"].(map[string]any)
	if !ok {
		t.Fatalf("unexpected hover contents: %#v", result["contents"])
	}
	value, ok := contents["value"].(string)
	if !ok {
		t.Fatalf("unexpected hover value: %#v", contents["value"])
	}
	return value
}

func findCompletionItem(t *testing.T, items []map[string]any, label string) map[string]any {
	t.Helper()
	for _, item := range items {
		if item["label"] == label {
			return item
		}
	}
	t.Fatalf("completion item %q not found", label)
	return nil
}

func rawID(value string) *json.RawMessage {
	raw := json.RawMessage(value)
	return &raw
}
