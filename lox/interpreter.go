package lox

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"maps"
	"os"
	"strings"
	"time"
)

const defaultMaxCallDepth = 1024

// Config controls where an Interpreter writes and how deep calls may nest.
type Config struct {
	Stdout       io.Writer
	Logger       *slog.Logger
	MaxCallDepth int
}

// Interpreter compiles and runs programs against one global environment.
// Globals and resolved locals survive across Run calls, which is what the
// REPL relies on. An Interpreter is not safe for concurrent use.
type Interpreter struct {
	config  Config
	globals *Env
	locals  Locals
	out     io.Writer
	logger  *slog.Logger
}

// NewInterpreter constructs an Interpreter, filling in defaults for any
// zero Config fields.
func NewInterpreter(cfg Config) *Interpreter {
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.MaxCallDepth <= 0 {
		cfg.MaxCallDepth = defaultMaxCallDepth
	}
	return &Interpreter{
		config:  cfg,
		globals: newEnv(nil),
		locals:  make(Locals),
		out:     cfg.Stdout,
		logger:  cfg.Logger,
	}
}

// SetOutput redirects print statements to w.
func (in *Interpreter) SetOutput(w io.Writer) {
	in.out = w
}

// Compile scans, parses and resolves source. Any diagnostic vetoes
// evaluation: the returned error is a CompileErrors holding all of them.
func (in *Interpreter) Compile(source string) (*Program, error) {
	diags := &Diagnostics{}
	tokens := Scan(source, diags)
	statements := Parse(tokens, diags)
	// Resolution of a tree with parse errors would only add noise.
	if diags.HasErrors() {
		in.logger.Debug("compile failed", "stage", "parse", "errors", len(diags.Errors()))
		return nil, diags.Err()
	}
	locals := Resolve(statements, diags)
	if diags.HasErrors() {
		in.logger.Debug("compile failed", "stage", "resolve", "errors", len(diags.Errors()))
		return nil, diags.Err()
	}
	in.logger.Debug("compiled program", "tokens", len(tokens), "statements", len(statements), "locals", len(locals))
	return &Program{Statements: statements, Locals: locals, source: source}, nil
}

// Execute runs a compiled program. The first runtime error stops it.
func (in *Interpreter) Execute(ctx context.Context, prog *Program) error {
	if prog == nil {
		return errors.New("lox: nil program")
	}
	maps.Copy(in.locals, prog.Locals)

	exec := in.newExecution(ctx)
	start := time.Now()
	_, _, err := exec.executeStatements(prog.Statements)
	in.logger.Debug("executed program", "statements", len(prog.Statements), "elapsed", time.Since(start), "error", err)
	return err
}

// Run compiles and executes source.
func (in *Interpreter) Run(ctx context.Context, source string) error {
	prog, err := in.Compile(source)
	if err != nil {
		return err
	}
	return in.Execute(ctx, prog)
}

// Eval runs one unit of interactive input. When the input is a single
// expression statement, isExpr is true and val holds its value; otherwise
// the statements simply run. A lone expression may omit its trailing
// semicolon.
func (in *Interpreter) Eval(ctx context.Context, source string) (val Value, isExpr bool, err error) {
	prog, err := in.Compile(source)
	if err != nil {
		trimmed := strings.TrimSpace(source)
		if trimmed == "" || strings.HasSuffix(trimmed, ";") || strings.HasSuffix(trimmed, "}") {
			return NewNil(), false, err
		}
		retry, retryErr := in.Compile(trimmed + ";")
		if retryErr != nil {
			return NewNil(), false, err
		}
		prog = retry
	}

	var stmt *ExprStmt
	if len(prog.Statements) == 1 {
		stmt, _ = prog.Statements[0].(*ExprStmt)
	}
	if stmt == nil {
		return NewNil(), false, in.Execute(ctx, prog)
	}

	maps.Copy(in.locals, prog.Locals)
	exec := in.newExecution(ctx)
	if err := exec.step(); err != nil {
		return NewNil(), true, err
	}
	val, err = exec.evalExpression(stmt.Expr)
	return val, true, err
}

func (in *Interpreter) newExecution(ctx context.Context) *Execution {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Execution{
		interp:       in,
		ctx:          ctx,
		env:          in.globals,
		recursionCap: in.config.MaxCallDepth,
	}
}

// Globals returns a snapshot of the global bindings.
func (in *Interpreter) Globals() map[string]Value {
	out := make(map[string]Value, len(in.globals.values))
	maps.Copy(out, in.globals.values)
	return out
}

// Reset drops every global binding and resolved local.
func (in *Interpreter) Reset() {
	in.globals = newEnv(nil)
	in.locals = make(Locals)
}

// Exit codes follow the sysexits convention used by the command line tool.
const (
	ExitOK           = 0
	ExitUsage        = 64
	ExitCompileError = 65
	ExitNoInput      = 66
	ExitRuntimeError = 70
)

// ExitCode maps an error returned by Compile, Execute or Run to a process
// exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var compileErrs CompileErrors
	var compileErr *CompileError
	if errors.As(err, &compileErrs) || errors.As(err, &compileErr) {
		return ExitCompileError
	}
	var runtimeErr *RuntimeError
	if errors.As(err, &runtimeErr) {
		return ExitRuntimeError
	}
	return 1
}

// IsIncomplete reports whether err only says the input ended too early,
// such as an unclosed block or string. Interactive callers use it to ask
// for another line.
func IsIncomplete(err error) bool {
	var compileErrs CompileErrors
	if !errors.As(err, &compileErrs) || len(compileErrs) == 0 {
		return false
	}
	for _, e := range compileErrs {
		if e.AtEnd {
			return true
		}
	}
	return false
}
