package lox

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func FuzzCompileDoesNotPanic(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("print 1 + 2;"))
	f.Add([]byte("fun broken("))
	f.Add([]byte("class A < A { init() { return 1; } }"))
	f.Add([]byte("\"unterminated"))
	f.Add([]byte("for (;;) { var a = a; }"))

	f.Fuzz(func(t *testing.T, raw []byte) {
		in := NewInterpreter(Config{})
		_, _ = in.Compile(string(raw))
	})
}

func FuzzRunDoesNotPanic(f *testing.F) {
	f.Add("print 1;")
	f.Add("fun f(n) { return f(n); } f(1);")
	f.Add("class A { m() { return this; } } print A().m().m;")
	f.Add("class A {} class B < A { m() { super.m(); } } B().m();")
	f.Add("var a = 1; { var b = a; a = b + \"x\"; }")

	f.Fuzz(func(t *testing.T, source string) {
		if len(source) > 4096 {
			source = source[:4096]
		}
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		in := NewInterpreter(Config{Stdout: &bytes.Buffer{}, MaxCallDepth: 64})
		_ = in.Run(ctx, source)
	})
}
