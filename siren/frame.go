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

//go:generate go run golang.org/x/tools/cmd/stringer@latest -type frameKind

// frameKind identifies which of the four frame variants a frame is. Used
// only for diagnostics (the "unterminated macro" error at end of file).
type frameKind byte

const (
	frameParen frameKind = iota
	frameBrace
	frameMacro
	frameMacroBody
)

// MacroResult is what a macro function or body-acceptor returns: a list of
// output tokens, and whether those tokens must be re-fed through the parser
// (reinterpret=true) or are final (reinterpret=false).
type MacroResult struct {
	Tokens      []Token
	Reinterpret bool
}

// bodyAcceptor is returned by a macro function to request brace
// continuation: the parser collects a `{ ... }` body and hands it to this
// function to produce the final MacroResult.
type bodyAcceptor func(body []Token) (MacroResult, error)

// MacroFunc is the signature of a registered macro. It receives the
// per-argument token lists collected between the call's parentheses, and
// the token that named the macro (used for provenance). It either returns
// a MacroResult directly, or a bodyAcceptor requesting a brace body.
type MacroFunc func(args [][]Token, nameToken Token) (MacroResult, bodyAcceptor, error)

// execResult is what execute() on a frame returns: either a continuation
// frame to push (used only by MacroExpr transitioning to MacroBodyExpr), or
// final-or-reinterpretable output tokens.
type execResult struct {
	next        frame // non-nil: push this frame instead of emitting tokens
	tokens      []Token
	reinterpret bool
}

// frame is the parser's stack element: an unfinished parenthesized group,
// braced group, macro call, or macro-body capture. All four variants share
// this small, uniform protocol.
type frame interface {
	kind() frameKind
	// onTokens hands ordinary (non-structural) tokens to the frame.
	onTokens(tokens []Token) error
	// onComma handles a comma token at this frame's nesting level.
	onComma(tok Token)
	// onOpenBrace offers an opening brace to the frame. It returns true if
	// the frame consumed the brace itself (only MacroBodyExpr ever does,
	// and only the first time); otherwise the caller pushes a BraceExpr.
	onOpenBrace(tok Token) bool
	// execute runs on the frame's matching closer token.
	execute(closer Token) (execResult, error)
	// allowMacro reports whether a macro named `name` may be latched while
	// this frame is anywhere on the stack.
	allowMacro(name string) bool
}

// parenExpr accumulates the flat token sequence of a parenthesized group
// that is not a macro call (e.g. `(a + b)` in an expression context).
type parenExpr struct {
	tokens []Token
}

func newParenExpr(open Token) *parenExpr {
	return &parenExpr{tokens: []Token{open}}
}

func (f *parenExpr) kind() frameKind        { return frameParen }
func (f *parenExpr) allowMacro(string) bool { return true }
func (f *parenExpr) onOpenBrace(Token) bool { return false }
func (f *parenExpr) onComma(tok Token)      { f.tokens = append(f.tokens, tok) }
func (f *parenExpr) onTokens(tokens []Token) error {
	f.tokens = append(f.tokens, tokens...)
	return nil
}

func (f *parenExpr) execute(closer Token) (execResult, error) {
	if !closer.Match(")") {
		return execResult{}, fmt.Errorf("expected ')' but got %v", closer)
	}
	f.tokens = append(f.tokens, closer)
	return execResult{tokens: f.tokens, reinterpret: false}, nil
}

// braceExpr accumulates the flat token sequence of a braced group that is
// not a macro body (e.g. a host-language block `{ ... }`).
type braceExpr struct {
	tokens []Token
}

func newBraceExpr(open Token) *braceExpr {
	return &braceExpr{tokens: []Token{open}}
}

func (f *braceExpr) kind() frameKind        { return frameBrace }
func (f *braceExpr) allowMacro(string) bool { return true }
func (f *braceExpr) onOpenBrace(Token) bool { return false }
func (f *braceExpr) onComma(tok Token)      { f.tokens = append(f.tokens, tok) }
func (f *braceExpr) onTokens(tokens []Token) error {
	f.tokens = append(f.tokens, tokens...)
	return nil
}

func (f *braceExpr) execute(closer Token) (execResult, error) {
	if !closer.Match("}") {
		return execResult{}, fmt.Errorf("expected '}' but got %v", closer)
	}
	f.tokens = append(f.tokens, closer)
	return execResult{tokens: f.tokens, reinterpret: false}, nil
}

// macroExpr collects the comma-separated argument token-lists of an
// in-progress macro call, from just after '(' to the matching ')'.
type macroExpr struct {
	fn        MacroFunc
	nameToken Token
	args      [][]Token
}

func newMacroExpr(fn MacroFunc, nameToken Token) *macroExpr {
	return &macroExpr{fn: fn, nameToken: nameToken}
}

func (f *macroExpr) kind() frameKind        { return frameMacro }
func (f *macroExpr) allowMacro(string) bool { return true }
func (f *macroExpr) onOpenBrace(Token) bool { return false }

func (f *macroExpr) onComma(tok Token) {
	f.args = append(f.args, nil)
}

func (f *macroExpr) onTokens(tokens []Token) error {
	if len(f.args) == 0 {
		f.args = append(f.args, nil)
	}
	last := len(f.args) - 1
	f.args[last] = append(f.args[last], tokens...)
	return nil
}

func (f *macroExpr) execute(closer Token) (execResult, error) {
	if !closer.Match(")") {
		return execResult{}, fmt.Errorf("macro %v expected ')' but got %v", f.nameToken, closer)
	}
	result, accept, err := f.fn(f.args, f.nameToken)
	if err != nil {
		return execResult{}, err
	}
	if accept != nil {
		return execResult{next: newMacroBodyExpr(accept)}, nil
	}
	return execResult{tokens: result.Tokens, reinterpret: result.Reinterpret}, nil
}

// macroBodyExpr collects a brace-delimited body on behalf of a block macro
// (one whose call produced a bodyAcceptor instead of a direct result).
type macroBodyExpr struct {
	accept  bodyAcceptor
	hasOpen bool
	body    []Token
}

func newMacroBodyExpr(accept bodyAcceptor) *macroBodyExpr {
	return &macroBodyExpr{accept: accept}
}

func (f *macroBodyExpr) kind() frameKind { return frameMacroBody }

// allowMacro returns true until the opening brace has arrived and false
// from then on, so macro names inside the captured body are not expanded
// while the body is collected; they are expanded only if the block macro's
// result is reinterpreted.
func (f *macroBodyExpr) allowMacro(string) bool { return !f.hasOpen }

func (f *macroBodyExpr) onOpenBrace(tok Token) bool {
	if f.hasOpen {
		return false
	}
	f.hasOpen = true
	return true
}

func (f *macroBodyExpr) onComma(tok Token) {
	f.body = append(f.body, tok)
}

func (f *macroBodyExpr) onTokens(tokens []Token) error {
	if !f.hasOpen {
		for _, t := range tokens {
			if !t.IsWhitespace() {
				return fmt.Errorf("macro expected '{' but got %v", tokens)
			}
		}
	}
	f.body = append(f.body, tokens...)
	return nil
}

func (f *macroBodyExpr) execute(closer Token) (execResult, error) {
	if !closer.Match("}") {
		return execResult{}, fmt.Errorf("expected '}' but got %v", closer)
	}
	result, err := f.accept(f.body)
	if err != nil {
		return execResult{}, err
	}
	return execResult{tokens: result.Tokens, reinterpret: result.Reinterpret}, nil
}
