package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/CatkinYang/golox/lox"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(exitCode(err))
	}
}

// app carries the settings shared by every subcommand.
type app struct {
	config fileConfig
	logger *slog.Logger
}

func runCLI(args []string) error {
	fs := flag.NewFlagSet("lox", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	configPath := fs.String("config", "", "path to a YAML config file (default .lox.yaml when present)")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn, error, none")
	logFile := fs.String("log-file", "", "log file path (default stderr)")
	if err := fs.Parse(args[1:]); err != nil {
		return usageError(err)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *logFile != "" {
		cfg.LogFile = *logFile
	}

	logger, closeLog, err := newLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	a := &app{config: cfg, logger: logger}
	rest := fs.Args()
	if len(rest) == 0 {
		return a.promptCommand(nil)
	}

	switch rest[0] {
	case "run":
		return a.runCommand(rest[1:])
	case "prompt":
		return a.promptCommand(rest[1:])
	case "repl":
		return a.replCommand(rest[1:])
	case "check":
		return a.checkCommand(rest[1:])
	case "tokens":
		return tokensCommand(rest[1:])
	case "ast":
		return astCommand(rest[1:])
	case "fmt":
		return fmtCommand(rest[1:])
	case "lsp":
		return runLSP()
	case "help", "-h", "--help":
		printUsage()
		return nil
	}

	if len(rest) > 1 {
		return usageError(fmt.Errorf("unknown command %q", rest[0]))
	}
	return a.runCommand(rest)
}

// exitError pins the process status for an error that is not a compile or
// runtime failure of the program itself.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func usageError(err error) error {
	printUsage()
	return &exitError{code: lox.ExitUsage, err: fmt.Errorf("invalid command: %w", err)}
}

func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return lox.ExitCode(err)
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s [global flags] [command] [args...]\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  <script>              run a script (same as run)")
	fmt.Fprintln(os.Stderr, "  run [flags] <script>  run a script")
	fmt.Fprintln(os.Stderr, "  prompt                line-oriented interactive prompt (default)")
	fmt.Fprintln(os.Stderr, "  repl                  full-screen interactive session")
	fmt.Fprintln(os.Stderr, "  check <script>        report compile errors and lint warnings")
	fmt.Fprintln(os.Stderr, "  tokens <script>       print the token stream")
	fmt.Fprintln(os.Stderr, "  ast <script>          print the syntax tree")
	fmt.Fprintln(os.Stderr, "  fmt [-w|-check] <path...>")
	fmt.Fprintln(os.Stderr, "                        normalise whitespace in .lox files")
	fmt.Fprintln(os.Stderr, "  lsp                   start a language server on stdio")
	fmt.Fprintln(os.Stderr, "Global flags:")
	fmt.Fprintln(os.Stderr, "  -config <path>        YAML config file")
	fmt.Fprintln(os.Stderr, "  -log-level <level>    debug, info, warn, error or none (default none)")
	fmt.Fprintln(os.Stderr, "  -log-file <path>      write logs to a file instead of stderr")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}

// newLogger builds the JSON logger used by every command. The returned
// close function releases the log file, if one was opened.
func newLogger(level, file string) (*slog.Logger, func(), error) {
	noop := func() {}
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" || level == "none" {
		return slog.New(slog.NewJSONHandler(io.Discard, nil)), noop, nil
	}
	slogLevel, err := logLevelFromString(level)
	if err != nil {
		return nil, noop, &exitError{code: lox.ExitUsage, err: err}
	}

	var w io.Writer = os.Stderr
	closeFn := noop
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return nil, noop, fmt.Errorf("create log directory for %s: %w", file, err)
		}
		f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, noop, fmt.Errorf("open log file %s: %w", file, err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slogLevel})), closeFn, nil
}

func logLevelFromString(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelError, fmt.Errorf("unknown log level %q", level)
	}
}

func readScript(path string) (string, string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", "", &exitError{code: lox.ExitNoInput, err: fmt.Errorf("resolve script path: %w", err)}
	}
	input, err := os.ReadFile(absPath)
	if err != nil {
		return "", "", &exitError{code: lox.ExitNoInput, err: fmt.Errorf("read script: %w", err)}
	}
	return absPath, string(input), nil
}
