package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/CatkinYang/golox/lox"
)

// tokensCommand prints one token per line as `line:column TYPE lexeme`.
func tokensCommand(args []string) error {
	source, err := dumpSource("tokens", args)
	if err != nil {
		return err
	}

	diags := &lox.Diagnostics{}
	for _, tok := range lox.Scan(source, diags) {
		fmt.Printf("%d:%d %s\n", tok.Pos.Line, tok.Pos.Column, tok.String())
	}
	return diags.Err()
}

// astCommand prints the parsed program in parenthesized prefix form.
func astCommand(args []string) error {
	source, err := dumpSource("ast", args)
	if err != nil {
		return err
	}

	diags := &lox.Diagnostics{}
	statements := lox.Parse(lox.Scan(source, diags), diags)
	if err := diags.Err(); err != nil {
		return err
	}
	fmt.Print(lox.PrintProgram(statements))
	return nil
}

func dumpSource(name string, args []string) (string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return "", usageError(err)
	}
	if fs.NArg() != 1 {
		return "", usageError(errors.New("lox " + name + ": script path required"))
	}
	_, source, err := readScript(fs.Arg(0))
	return source, err
}
