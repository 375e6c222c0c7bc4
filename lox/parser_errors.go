package lox

import "errors"

// errParse unwinds the parser to the enclosing declaration after the error
// has already been reported.
var errParse = errors.New("parse error")

func (p *parser) errorAt(tok Token, message string) error {
	p.diags.ErrorAt(tok, message)
	return errParse
}
