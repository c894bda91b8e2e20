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

// Package siren implements a source-to-source macro preprocessor for a
// C-like host language. It tokenizes a file, expands a closed set of
// built-in meta-macros plus user-defined macros, and writes a transformed
// file whose synthesized line directives preserve accurate provenance back
// into the original source.
package siren

import (
	"fmt"
	"runtime"
	"slices"
	"strings"
)

// Position identifies a single point in a source file.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Token is an immutable lexical unit carrying its original provenance.
// Provenance is never recomputed after creation; synthetic tokens clone it
// from a reference token (newToken) or from this module's own source
// location (pythonToken).
type Token struct {
	Text   string
	File   string
	Line   int
	Column int
}

// newToken creates a synthetic token that blames the given reference
// token's source location. This is used for generated tokens that should
// appear to originate from user source (e.g. a macro argument echoed back
// into its expansion).
func newToken(text string, ref Token) Token {
	return Token{Text: text, File: ref.File, Line: ref.Line, Column: ref.Column}
}

// newTokenFromList is like newToken, but derives provenance from the first
// non-whitespace token in a list, falling back to the first token if the
// list is entirely whitespace.
func newTokenFromList(text string, refs []Token) Token {
	ref := refs[0]
	for _, t := range refs {
		if strings.TrimSpace(t.Text) != "" {
			ref = t
			break
		}
	}
	return newToken(text, ref)
}

// pythonToken creates a token whose provenance points at the call site
// inside this module's own source, rather than at any user source
// location. Built-in macros use it for boilerplate tokens, so that a
// downstream compiler error in synthetic code blames the macro
// implementation instead of the caller.
func pythonToken(text string) Token {
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		file, line = "siren", 0
	}
	return Token{Text: text, File: file, Line: line, Column: 1}
}

// IsWhitespace reports whether the token is a run of whitespace.
func (t Token) IsWhitespace() bool {
	return t.Text != "" && strings.TrimSpace(t.Text) == ""
}

// Match reports whether the token's text equals any of the given options.
func (t Token) Match(options ...string) bool {
	return slices.Contains(options, t.Text)
}

// endingPosition returns the (line, column) that immediately follows this
// token, accounting for embedded newlines in multi-line tokens such as
// string literals or whitespace runs.
func (t Token) endingPosition() (line, column int) {
	if idx := strings.LastIndexByte(t.Text, '\n'); idx >= 0 {
		return t.Line + strings.Count(t.Text, "\n"), len(t.Text) - idx
	}
	return t.Line, t.Column + len(t.Text)
}

// transition returns the string that must precede t.Text in the output so
// that t ends up at (t.File, t.Line, t.Column), given the token emitted
// immediately before it (nil when there is none).
//
// When t is in the same file as prev and either on prev's ending line at or
// after its ending column, or 1 to 10 lines below it, the gap is bridged
// with literal whitespace; otherwise a fresh line directive is synthesized.
func (t Token) transition(prev *Token) string {
	if prev != nil && t.File == prev.File {
		lastLine, lastColumn := prev.endingPosition()
		if t.Line == lastLine && t.Column >= lastColumn {
			return strings.Repeat(" ", t.Column-lastColumn)
		}
		if lastLine < t.Line && t.Line <= lastLine+10 {
			return strings.Repeat("\n", t.Line-lastLine) + strings.Repeat(" ", t.Column-1)
		}
	}
	newline := ""
	if prev != nil && !strings.HasSuffix(prev.Text, "\n") {
		newline = "\n"
	}
	return fmt.Sprintf("%s# %d \"%s\"\n%s", newline, t.Line, t.File, strings.Repeat(" ", t.Column-1))
}

func (t Token) String() string {
	return fmt.Sprintf("Token(%q, %q, %d, %d)", t.Text, t.File, t.Line, t.Column)
}

// argument joins and trims a token list into the flat text of one macro
// argument, the way a call site wrote it (surrounding whitespace stripped).
func argument(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Text)
	}
	return strings.TrimSpace(b.String())
}
