package lox

import (
	"fmt"
	"strings"
)

type StackFrame struct {
	Function string
	Pos      Position
}

// RuntimeError aborts execution of a program. Token locates the failure.
type RuntimeError struct {
	Token   Token
	Message string
	Frames  []StackFrame
}

const (
	runtimeErrorFrameHead = 8
	runtimeErrorFrameTail = 8
)

func newRuntimeError(tok Token, message string) *RuntimeError {
	return &RuntimeError{Token: tok, Message: message}
}

func (re *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", re.Message, re.Token.Line())
}

// StackTrace renders the call frames active when the error was raised,
// innermost first. Long traces keep only their head and tail.
func (re *RuntimeError) StackTrace() string {
	var b strings.Builder
	renderFrame := func(frame StackFrame) {
		if frame.Pos.Line > 0 {
			fmt.Fprintf(&b, "  at %s (line %d)\n", frame.Function, frame.Pos.Line)
		} else {
			fmt.Fprintf(&b, "  at %s\n", frame.Function)
		}
	}

	if len(re.Frames) <= runtimeErrorFrameHead+runtimeErrorFrameTail {
		for _, frame := range re.Frames {
			renderFrame(frame)
		}
		return b.String()
	}

	for _, frame := range re.Frames[:runtimeErrorFrameHead] {
		renderFrame(frame)
	}
	omitted := len(re.Frames) - (runtimeErrorFrameHead + runtimeErrorFrameTail)
	fmt.Fprintf(&b, "  ... %d frames omitted ...\n", omitted)
	for _, frame := range re.Frames[len(re.Frames)-runtimeErrorFrameTail:] {
		renderFrame(frame)
	}
	return b.String()
}

func (exec *Execution) errorAt(tok Token, format string, args ...any) error {
	return exec.wrapError(newRuntimeError(tok, fmt.Sprintf(format, args...)))
}

// wrapError attaches the current call stack to a runtime error that does
// not carry one yet.
func (exec *Execution) wrapError(err error) error {
	re, ok := err.(*RuntimeError)
	if !ok || len(re.Frames) > 0 {
		return err
	}
	re.Frames = exec.snapshotFrames(re.Token.Pos)
	return re
}

func (exec *Execution) snapshotFrames(pos Position) []StackFrame {
	frames := make([]StackFrame, 0, len(exec.callStack)+1)
	if len(exec.callStack) == 0 {
		return append(frames, StackFrame{Function: "<script>", Pos: pos})
	}

	// First frame: where the error occurred inside the current function.
	current := exec.callStack[len(exec.callStack)-1]
	frames = append(frames, StackFrame{Function: current.Function, Pos: pos})

	// Remaining frames: where each active function was called from.
	for i := len(exec.callStack) - 1; i >= 0; i-- {
		cf := exec.callStack[i]
		caller := "<script>"
		if i > 0 {
			caller = exec.callStack[i-1].Function
		}
		frames = append(frames, StackFrame{Function: caller, Pos: cf.Pos})
	}
	return frames
}
