package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/CatkinYang/golox/lox"
	"github.com/peterh/liner"
)

const (
	promptMain      = "> "
	promptCont      = ". "
	historyFileName = ".lox_history"
)

func (a *app) promptCommand(args []string) error {
	fs := flag.NewFlagSet("prompt", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	history := fs.String("history", a.config.REPL.HistoryFile, "history file (default ~/.lox_history)")
	if err := fs.Parse(args); err != nil {
		return usageError(err)
	}
	histPath := historyPath(*history)

	interp := lox.NewInterpreter(lox.Config{
		Stdout:       os.Stdout,
		Logger:       a.logger,
		MaxCallDepth: a.config.MaxCallDepth,
	})

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(func(line string) []string {
		return completeLine(line, interp)
	})

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	a.logger.Info("prompt started", "history", histPath)
	for {
		code, ok := readByParseProbe(ln, interp, promptMain, promptCont)
		if !ok {
			fmt.Println()
			return nil
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		if trimmed == ":quit" || trimmed == ":q" {
			return nil
		}

		val, isExpr, err := interp.Eval(context.Background(), code)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if isExpr {
			fmt.Println(val.String())
		}
	}
}

// readByParseProbe keeps reading continuation lines while the collected
// input fails to compile only because it ended too early.
func readByParseProbe(ln *liner.State, interp *lox.Interpreter, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if !needsMoreInput(interp, src) {
			return src, true
		}
	}
}

// needsMoreInput reports whether src is an unfinished block, call or
// string. A lone expression missing only its semicolon counts as finished.
func needsMoreInput(interp *lox.Interpreter, src string) bool {
	if strings.TrimSpace(src) == "" {
		return false
	}
	_, err := interp.Compile(src)
	if !lox.IsIncomplete(err) {
		return false
	}
	_, err = interp.Compile(strings.TrimSpace(src) + ";")
	return err != nil
}

// completeLine offers keywords and global names that extend the last word
// of line.
func completeLine(line string, interp *lox.Interpreter) []string {
	start := strings.LastIndexFunc(line, func(r rune) bool {
		return !isIdentRune(r)
	}) + 1
	prefix, word := line[:start], line[start:]
	if word == "" {
		return nil
	}

	candidates := lox.Keywords()
	for name := range interp.Globals() {
		candidates = append(candidates, name)
	}
	sort.Strings(candidates)

	var out []string
	seen := make(map[string]struct{})
	for _, candidate := range candidates {
		if !strings.HasPrefix(candidate, word) {
			continue
		}
		if _, ok := seen[candidate]; ok {
			continue
		}
		seen[candidate] = struct{}{}
		out = append(out, prefix+candidate)
	}
	return out
}

func isIdentRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func historyPath(configured string) string {
	if configured != "" {
		if strings.HasPrefix(configured, "~/") {
			if home, err := os.UserHomeDir(); err == nil {
				return filepath.Join(home, configured[2:])
			}
		}
		return configured
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return historyFileName
	}
	return filepath.Join(home, historyFileName)
}
