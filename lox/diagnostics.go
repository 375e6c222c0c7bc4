package lox

import (
	"fmt"
	"strings"
)

// CompileError is a lexing, parsing or resolution diagnostic.
type CompileError struct {
	Pos     Position
	Where   string
	Message string
	// AtEnd marks errors raised at the end of input, which the REPL treats
	// as a request for more lines.
	AtEnd bool
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", e.Pos.Line, e.Where, e.Message)
}

// CompileErrors is every diagnostic reported for one unit of source.
type CompileErrors []*CompileError

func (errs CompileErrors) Error() string {
	lines := make([]string, len(errs))
	for i, err := range errs {
		lines[i] = err.Error()
	}
	return strings.Join(lines, "\n")
}

// Diagnostics accumulates compile-time errors across the lexer, parser and
// resolver. The pipeline checks it once before evaluation.
type Diagnostics struct {
	errs CompileErrors
}

// Report records an error without a token location, as the lexer does.
func (d *Diagnostics) Report(pos Position, message string) {
	d.errs = append(d.errs, &CompileError{Pos: pos, Message: message})
}

// ErrorAt records an error located at tok.
func (d *Diagnostics) ErrorAt(tok Token, message string) {
	if tok.Type == tokenEOF {
		d.errs = append(d.errs, &CompileError{Pos: tok.Pos, Where: " at end", Message: message, AtEnd: true})
		return
	}
	d.errs = append(d.errs, &CompileError{Pos: tok.Pos, Where: " at '" + tok.Lexeme + "'", Message: message})
}

func (d *Diagnostics) HasErrors() bool { return len(d.errs) > 0 }

func (d *Diagnostics) Errors() CompileErrors { return d.errs }

// Err returns the accumulated errors, or nil when nothing was reported.
func (d *Diagnostics) Err() error {
	if len(d.errs) == 0 {
		return nil
	}
	out := make(CompileErrors, len(d.errs))
	copy(out, d.errs)
	return out
}

// Reset discards every recorded error.
func (d *Diagnostics) Reset() {
	d.errs = nil
}
