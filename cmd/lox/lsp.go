package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/CatkinYang/golox/lox"
)

const (
	completionKindFunction = 3
	completionKindVariable = 6
	completionKindClass    = 7
	completionKindKeyword  = 14
)

type lspInboundMessage struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method,omitempty"`
	Params  json.RawMessage  `json:"params,omitempty"`
}

type lspResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type lspOutboundMessage struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      *json.RawMessage  `json:"id,omitempty"`
	Method  string            `json:"method,omitempty"`
	Params  any               `json:"params,omitempty"`
	Result  any               `json:"result,omitempty"`
	Error   *lspResponseError `json:"error,omitempty"`
}

type lspDidOpenParams struct {
	TextDocument struct {
		URI  string `json:"uri"`
		Text string `json:"text"`
	} `json:"textDocument"`
}

type lspDidChangeParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
	ContentChanges []struct {
		Text string `json:"text"`
	} `json:"contentChanges"`
}

type lspTextDocumentPositionParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
	Position struct {
		Line      int `json:"line"`
		Character int `json:"character"`
	} `json:"position"`
}

type lspServer struct {
	reader *bufio.Reader
	writer *bufio.Writer
	interp *lox.Interpreter
	docs   map[string]string
}

func runLSP() error {
	server := newLSPServer(os.Stdin, os.Stdout)
	return server.serve()
}

func newLSPServer(r io.Reader, w io.Writer) *lspServer {
	return &lspServer{
		reader: bufio.NewReader(r),
		writer: bufio.NewWriter(w),
		interp: lox.NewInterpreter(lox.Config{Stdout: io.Discard}),
		docs:   make(map[string]string),
	}
}

func (s *lspServer) serve() error {
	for {
		payload, err := s.readPayload()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		var incoming lspInboundMessage
		if err := json.Unmarshal(payload, &incoming); err != nil {
			continue
		}

		for _, msg := range s.handleMessage(incoming) {
			if err := s.writePayload(msg); err != nil {
				return err
			}
		}

		if incoming.Method == "exit" {
			return nil
		}
	}
}

func (s *lspServer) handleMessage(incoming lspInboundMessage) []lspOutboundMessage {
	switch incoming.Method {
	case "initialize":
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Result: map[string]any{
					"capabilities": map[string]any{
						"textDocumentSync": 1,
						"hoverProvider":    true,
						"completionProvider": map[string]any{
							"resolveProvider": false,
						},
					},
					"serverInfo": map[string]any{"name": "lox-lsp"},
				},
			},
		}
	case "initialized", "exit":
		return nil
	case "shutdown":
		if incoming.ID == nil {
			return nil
		}
		return []lspOutboundMessage{{JSONRPC: "2.0", ID: incoming.ID, Result: nil}}
	case "textDocument/didOpen":
		var params lspDidOpenParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return nil
		}
		s.docs[params.TextDocument.URI] = params.TextDocument.Text
		return []lspOutboundMessage{
			s.publishDiagnostics(params.TextDocument.URI, params.TextDocument.Text),
		}
	case "textDocument/didChange":
		var params lspDidChangeParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return nil
		}
		if len(params.ContentChanges) == 0 {
			return nil
		}
		latest := params.ContentChanges[len(params.ContentChanges)-1].Text
		s.docs[params.TextDocument.URI] = latest
		return []lspOutboundMessage{
			s.publishDiagnostics(params.TextDocument.URI, latest),
		}
	case "textDocument/didClose":
		var params lspTextDocumentPositionParams
		if err := json.Unmarshal(incoming.Params, &params); err == nil {
			delete(s.docs, params.TextDocument.URI)
		}
		return nil
	case "textDocument/completion":
		if incoming.ID == nil {
			return nil
		}
		var params lspTextDocumentPositionParams
		_ = json.Unmarshal(incoming.Params, &params)
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Result: map[string]any{
					"isIncomplete": false,
					"items":        completionItems(s.docs[params.TextDocument.URI]),
				},
			},
		}
	case "textDocument/hover":
		if incoming.ID == nil {
			return nil
		}
		var params lspTextDocumentPositionParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return []lspOutboundMessage{
				{
					JSONRPC: "2.0",
					ID:      incoming.ID,
					Error:   &lspResponseError{Code: -32602, Message: "invalid hover params"},
				},
			}
		}
		source := s.docs[params.TextDocument.URI]
		word := wordAtPosition(source, params.Position.Line, params.Position.Character)
		if word == "" {
			return []lspOutboundMessage{
				{JSONRPC: "2.0", ID: incoming.ID, Result: nil},
			}
		}
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Result: map[string]any{
					"contents": map[string]any{
						"kind":  "markdown",
						"value": fmt.Sprintf("`%s`\n\n%s", word, describeWord(source, word)),
					},
				},
			},
		}
	default:
		if incoming.ID == nil {
			return nil
		}
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Error: &lspResponseError{
					Code:    -32601,
					Message: "method not found",
				},
			},
		}
	}
}

func (s *lspServer) publishDiagnostics(uri, source string) lspOutboundMessage {
	return lspOutboundMessage{
		JSONRPC: "2.0",
		Method:  "textDocument/publishDiagnostics",
		Params: map[string]any{
			"uri":         uri,
			"diagnostics": diagnosticsForSource(s.interp, source),
		},
	}
}

func diagnosticsForSource(interp *lox.Interpreter, source string) []map[string]any {
	_, err := interp.Compile(source)
	if err == nil {
		return []map[string]any{}
	}

	var errs lox.CompileErrors
	if !errors.As(err, &errs) {
		return []map[string]any{newDiagnostic(0, 0, err.Error())}
	}

	out := make([]map[string]any, 0, len(errs))
	for _, ce := range errs {
		message := ce.Message
		if ce.Where != "" {
			message = "Error" + ce.Where + ": " + ce.Message
		}
		out = append(out, newDiagnostic(max(0, ce.Pos.Line-1), max(0, ce.Pos.Column-1), message))
	}
	return out
}

func newDiagnostic(line, character int, message string) map[string]any {
	return map[string]any{
		"range": map[string]any{
			"start": map[string]any{
				"line":      line,
				"character": character,
			},
			"end": map[string]any{
				"line":      line,
				"character": character + 1,
			},
		},
		"severity": 1,
		"source":   "lox-lsp",
		"message":  message,
	}
}

// declaration is a top-level name introduced by a document.
type declaration struct {
	name   string
	kind   int
	detail string
}

// topLevelDeclarations parses source leniently and returns the names its
// top-level statements declare.
func topLevelDeclarations(source string) []declaration {
	if source == "" {
		return nil
	}
	diags := &lox.Diagnostics{}
	statements := lox.Parse(lox.Scan(source, diags), diags)

	var out []declaration
	for _, stmt := range statements {
		switch s := stmt.(type) {
		case *lox.FunctionStmt:
			params := make([]string, len(s.Params))
			for i, p := range s.Params {
				params[i] = p.Lexeme
			}
			out = append(out, declaration{
				name:   s.Name.Lexeme,
				kind:   completionKindFunction,
				detail: "fun " + s.Name.Lexeme + "(" + strings.Join(params, ", ") + ")",
			})
		case *lox.ClassStmt:
			detail := "class " + s.Name.Lexeme
			if s.Superclass != nil {
				detail += " < " + s.Superclass.Name.Lexeme
			}
			out = append(out, declaration{name: s.Name.Lexeme, kind: completionKindClass, detail: detail})
		case *lox.VarStmt:
			out = append(out, declaration{name: s.Name.Lexeme, kind: completionKindVariable, detail: "var " + s.Name.Lexeme})
		}
	}
	return out
}

func completionItems(source string) []map[string]any {
	items := make([]map[string]any, 0)
	seen := make(map[string]struct{})
	for _, keyword := range lox.Keywords() {
		seen[keyword] = struct{}{}
		items = append(items, map[string]any{
			"label":  keyword,
			"kind":   completionKindKeyword,
			"detail": "keyword",
		})
	}
	for _, decl := range topLevelDeclarations(source) {
		if _, ok := seen[decl.name]; ok {
			continue
		}
		seen[decl.name] = struct{}{}
		items = append(items, map[string]any{
			"label":  decl.name,
			"kind":   decl.kind,
			"detail": decl.detail,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i]["label"].(string) < items[j]["label"].(string)
	})
	return items
}

func describeWord(source, word string) string {
	for _, keyword := range lox.Keywords() {
		if keyword == word {
			return "Lox keyword"
		}
	}
	for _, decl := range topLevelDeclarations(source) {
		if decl.name == word {
			return "`" + decl.detail + "`"
		}
	}
	return "Lox symbol"
}

// wordAtPosition returns the identifier under an LSP position, whose
// character offset counts UTF-16 code units.
func wordAtPosition(source string, line, character int) string {
	lines := strings.Split(source, "\n")
	if line < 0 || line >= len(lines) {
		return ""
	}

	runes := []rune(strings.TrimRight(lines[line], "\r"))
	if len(runes) == 0 {
		return ""
	}

	cursor := 0
	for units := 0; cursor < len(runes); cursor++ {
		width := utf16.RuneLen(runes[cursor])
		if width < 0 {
			width = 1
		}
		if units+width > character {
			break
		}
		units += width
	}

	if cursor == len(runes) {
		cursor--
	}
	if !isIdentRune(runes[cursor]) {
		if cursor > 0 && isIdentRune(runes[cursor-1]) {
			cursor--
		} else {
			return ""
		}
	}

	start := cursor
	for start > 0 && isIdentRune(runes[start-1]) {
		start--
	}
	end := cursor
	for end < len(runes) && isIdentRune(runes[end]) {
		end++
	}
	return string(runes[start:end])
}

func (s *lspServer) readPayload() ([]byte, error) {
	contentLength := -1
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(name), "Content-Length") {
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return nil, fmt.Errorf("invalid Content-Length: %w", err)
			}
			contentLength = n
		}
	}

	if contentLength < 0 {
		return nil, errors.New("missing Content-Length header")
	}
	payload := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (s *lspServer) writePayload(msg lspOutboundMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.writer, "Content-Length: %d\r\n\r\n", len(data)); err != nil {
		return err
	}
	if _, err := s.writer.Write(data); err != nil {
		return err
	}
	return s.writer.Flush()
}
