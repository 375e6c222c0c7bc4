package lox

import (
	"context"
	"fmt"
)

// Execution is the state of one run of a program: the active environment
// and the stack of user function calls. It is not safe for concurrent use.
type Execution struct {
	interp    *Interpreter
	ctx       context.Context
	env       *Env
	callStack []callFrame
	// callSite is the position of the call expression being dispatched, so
	// the callee can record where it was entered from.
	callSite     Position
	recursionCap int
}

type callFrame struct {
	Function string
	Pos      Position
}

func (exec *Execution) step() error {
	if exec.ctx == nil {
		return nil
	}
	select {
	case <-exec.ctx.Done():
		return exec.ctx.Err()
	default:
		return nil
	}
}

func (exec *Execution) pushFrame(function string, pos Position) error {
	if exec.recursionCap > 0 && len(exec.callStack) >= exec.recursionCap {
		return exec.wrapError(newRuntimeError(
			Token{Lexeme: function, Pos: pos},
			fmt.Sprintf("Stack overflow (call depth limit %d).", exec.recursionCap),
		))
	}
	exec.callStack = append(exec.callStack, callFrame{Function: function, Pos: pos})
	return nil
}

func (exec *Execution) popFrame() {
	if len(exec.callStack) == 0 {
		return
	}
	exec.callStack = exec.callStack[:len(exec.callStack)-1]
}

// Depth reports how many user function calls are active.
func (exec *Execution) Depth() int {
	return len(exec.callStack)
}
