package main

import (
	"errors"
	"flag"
	"fmt"
	"sort"

	"github.com/CatkinYang/golox/lox"
)

type lintWarning struct {
	Function string
	Pos      lox.Position
	Message  string
}

func (a *app) checkCommand(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return usageError(err)
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return usageError(errors.New("lox check: script path required"))
	}

	scriptPath, source, err := readScript(remaining[0])
	if err != nil {
		return err
	}

	interp := lox.NewInterpreter(lox.Config{Logger: a.logger})
	prog, err := interp.Compile(source)
	if err != nil {
		fmt.Println(lox.FormatError(source, err))
		return &exitError{code: lox.ExitCompileError, err: fmt.Errorf("%s: compile failed", scriptPath)}
	}

	warnings := lintProgram(prog)
	if len(warnings) == 0 {
		fmt.Println("No issues found")
		return nil
	}

	for _, warning := range warnings {
		line := max(warning.Pos.Line, 1)
		column := max(warning.Pos.Column, 1)
		fmt.Printf("%s:%d:%d: %s (%s)\n", scriptPath, line, column, warning.Message, warning.Function)
	}
	return fmt.Errorf("analysis found %d issue(s)", len(warnings))
}

// lintProgram reports statements that can never run because an earlier
// statement in the same block always returns.
func lintProgram(prog *lox.Program) []lintWarning {
	warnings := make([]lintWarning, 0)
	lintStatements("<script>", prog.Statements, &warnings)

	sort.SliceStable(warnings, func(i, j int) bool {
		if warnings[i].Pos.Line != warnings[j].Pos.Line {
			return warnings[i].Pos.Line < warnings[j].Pos.Line
		}
		if warnings[i].Pos.Column != warnings[j].Pos.Column {
			return warnings[i].Pos.Column < warnings[j].Pos.Column
		}
		return warnings[i].Function < warnings[j].Function
	})
	return warnings
}

func lintStatements(function string, statements []lox.Statement, warnings *[]lintWarning) bool {
	terminated := false
	for _, stmt := range statements {
		if terminated {
			*warnings = append(*warnings, lintWarning{
				Function: function,
				Pos:      stmt.Pos(),
				Message:  "unreachable statement",
			})
			continue
		}
		if statementTerminates(function, stmt, warnings) {
			terminated = true
		}
	}
	return terminated
}

func statementTerminates(function string, stmt lox.Statement, warnings *[]lintWarning) bool {
	switch typed := stmt.(type) {
	case *lox.ReturnStmt:
		return true
	case *lox.BlockStmt:
		return lintStatements(function, typed.Statements, warnings)
	case *lox.IfStmt:
		consequent := statementTerminates(function, typed.Consequent, warnings)
		if typed.Alternate == nil {
			return false
		}
		alternate := statementTerminates(function, typed.Alternate, warnings)
		return consequent && alternate
	case *lox.WhileStmt:
		statementTerminates(function, typed.Body, warnings)
		return false
	case *lox.FunctionStmt:
		lintStatements(typed.Name.Lexeme, typed.Body, warnings)
		return false
	case *lox.ClassStmt:
		for _, method := range typed.Methods {
			lintStatements(typed.Name.Lexeme+"."+method.Name.Lexeme, method.Body, warnings)
		}
		return false
	default:
		return false
	}
}
