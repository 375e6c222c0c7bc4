package lox

import (
	"fmt"
	"strconv"
	"strings"
)

// CodeFrame renders the source line at pos with a caret under its column.
// It returns "" when pos falls outside source.
func CodeFrame(source string, pos Position) string {
	if source == "" || pos.Line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if pos.Line > len(lines) {
		return ""
	}

	lineText := strings.TrimRight(lines[pos.Line-1], "\r")
	lineRunes := []rune(lineText)

	column := pos.Column
	if column <= 0 {
		column = 1
	}
	if column > len(lineRunes)+1 {
		column = len(lineRunes) + 1
	}

	lineLabel := strconv.Itoa(pos.Line)
	gutterPad := strings.Repeat(" ", len(lineLabel))
	caretPad := strings.Repeat(" ", column-1)

	return fmt.Sprintf(
		"  --> line %d, column %d\n %s | %s\n %s | %s^",
		pos.Line,
		column,
		lineLabel,
		lineText,
		gutterPad,
		caretPad,
	)
}

// FormatError renders err for a terminal: compile errors one per line,
// each followed by its code frame, and runtime errors followed by the call
// stack that was active.
func FormatError(source string, err error) string {
	var b strings.Builder
	switch e := err.(type) {
	case CompileErrors:
		for i, ce := range e {
			if i > 0 {
				b.WriteByte('\n')
			}
			writeWithFrame(&b, ce.Error(), CodeFrame(source, ce.Pos))
		}
	case *CompileError:
		writeWithFrame(&b, e.Error(), CodeFrame(source, e.Pos))
	case *RuntimeError:
		writeWithFrame(&b, e.Error(), CodeFrame(source, e.Token.Pos))
		if trace := e.StackTrace(); trace != "" {
			b.WriteByte('\n')
			b.WriteString(strings.TrimRight(trace, "\n"))
		}
	default:
		b.WriteString(err.Error())
	}
	return b.String()
}

func writeWithFrame(b *strings.Builder, message, frame string) {
	b.WriteString(message)
	if frame != "" {
		b.WriteByte('\n')
		b.WriteString(frame)
	}
}
