package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/CatkinYang/golox/lox"
)

func (a *app) runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	trace := fs.Bool("trace", false, "print code frames and the call stack for errors")
	maxDepth := fs.Int("max-depth", a.config.MaxCallDepth, "maximum call depth (0 uses the default)")
	if err := fs.Parse(args); err != nil {
		return usageError(err)
	}
	remaining := fs.Args()
	if len(remaining) != 1 {
		return usageError(errors.New("lox run: exactly one script path required"))
	}

	scriptPath, source, err := readScript(remaining[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	interp := lox.NewInterpreter(lox.Config{
		Stdout:       os.Stdout,
		Logger:       a.logger.With("script", scriptPath),
		MaxCallDepth: *maxDepth,
	})
	a.logger.Info("running script", "path", scriptPath, "bytes", len(source))
	err = interp.Run(ctx, source)
	if err == nil {
		return nil
	}
	a.logger.Debug("script failed", "path", scriptPath, "exit_code", lox.ExitCode(err), "error", err)
	if *trace {
		return &exitError{code: lox.ExitCode(err), err: errors.New(lox.FormatError(source, err))}
	}
	if lox.ExitCode(err) == 1 {
		return fmt.Errorf("execution failed: %w", err)
	}
	return err
}
