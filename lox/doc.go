// Package lox implements a tree-walking interpreter for Lox, a small
// dynamically typed language with C-like syntax. Source text goes through
// four stages:
//   - Scan turns source into tokens.
//   - Parse builds statements and expressions by recursive descent.
//   - Resolve records, for every local variable reference, how many scopes
//     separate it from its declaration.
//   - An Interpreter evaluates the statements against a chain of
//     environments.
//
// The language has numbers, strings, booleans and nil, first-class
// functions with lexical closures, and classes with single inheritance,
// initializers, `this` and `super`. Compile diagnostics are collected and
// returned together as CompileErrors; the first runtime failure stops the
// program with a RuntimeError.
package lox
