// Copyright 2023 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package siren

import "fmt"

// PositionError is implemented by errors that carry a source position.
type PositionError interface {
	error
	Position() Position
}

// macroErrorCode names fatal error conditions of the error model, each with
// a fixed message. The macro functions and the parser do not return these
// codes; they report errors as formatted messages through newMacroError.
type macroErrorCode int

const (
	errInvalidLogLevel macroErrorCode = iota
	errInvalidStableID
	errInvalidIdentifier
	errSpecifierMismatch
	errArgumentCount
	errMacroAlreadyDefined
	errUnexpectedCloser
	errUnterminatedBody
	errBlameCallerSyntax
)

func (e macroErrorCode) Error() string {
	switch e {
	case errInvalidLogLevel:
		return "invalid log level"
	case errInvalidStableID:
		return "invalid stable id"
	case errInvalidIdentifier:
		return "invalid identifier"
	case errSpecifierMismatch:
		return "format string argument count mismatch"
	case errArgumentCount:
		return "invalid number of arguments"
	case errMacroAlreadyDefined:
		return "macro already defined"
	case errUnexpectedCloser:
		return "unexpected closing token"
	case errUnterminatedBody:
		return "unterminated macro or brace group"
	case errBlameCallerSyntax:
		return "malformed blame_caller block"
	default:
		return fmt.Sprintf("invalid macro error %d", int(e))
	}
}

// macroError is a structural/macro-level error. It always carries the token
// that triggered it, so the error can report "file:line" (and its Position,
// the column as well). The text of the offending input line is not included.
type macroError struct {
	tok Token
	err error
}

func newMacroError(tok Token, format string, args ...any) *macroError {
	return &macroError{tok: tok, err: fmt.Errorf(format, args...)}
}

func (e *macroError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.tok.File, e.tok.Line, e.err)
}

func (e *macroError) Position() Position {
	return Position{File: e.tok.File, Line: e.tok.Line, Column: e.tok.Column}
}

func (e *macroError) Unwrap() error {
	return e.err
}

// stackError reports a non-empty frame stack at end of file, listing every
// still-open frame (spec.md §4.3 "Termination").
type stackError struct {
	frames []frame
}

func (e *stackError) Error() string {
	msg := fmt.Sprintf("cannot finish preprocessing: %d unterminated macro(s) or brace group(s)", len(e.frames))
	for _, f := range e.frames {
		msg += fmt.Sprintf("\n  %v", f.kind())
	}
	return msg
}
