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

import (
	"bufio"
	"crypto/sha256"
	"os"
	"strconv"
	"strings"
)

// Parser drives tokenization and macro expansion for a single translation.
// It owns its macro registry, pending-macro latch, frame stack and
// source-position bookkeeping exclusively; it is not safe for concurrent
// use and a given Parser instance is meant for exactly one Translate call.
type Parser struct {
	macros  map[string]MacroFunc
	pending *Token
	stack   []frame

	rawLines bool

	sourceFile string
	sourceLine int
	sourceHash [32]byte

	lastToken *Token

	// anonCounter is the per-parser monotonic counter consumed by the
	// anonymous_symbol built-in.
	anonCounter int
}

// NewParser creates an empty parser and populates it with every built-in
// macro named in spec.md §4.4. rawLines selects --rawlines mode: incoming
// '#' directive lines are treated as irrelevant context (the source line
// counter just advances by one) rather than being adopted as new file/line
// context.
func NewParser(rawLines bool) *Parser {
	p := &Parser{
		macros:   make(map[string]MacroFunc),
		rawLines: rawLines,
	}
	registerBuiltins(p)
	return p
}

// onToken feeds a single token through the parser, appending any tokens it
// causes to be emitted (to output, or reinterpreted and then emitted) to
// out, and returning the updated slice.
func (p *Parser) onToken(tok Token, out []Token) ([]Token, error) {
	if p.pending != nil {
		pending := *p.pending
		p.pending = nil
		if tok.Match("(") {
			p.stack = append(p.stack, newMacroExpr(p.macros[pending.Text], pending))
			return out, nil
		}
		out = append(out, pending)
	}

	if _, ok := p.macros[tok.Text]; ok && p.allMacroAllowed(tok.Text) {
		pending := tok
		p.pending = &pending
		return out, nil
	}

	if len(p.stack) == 0 {
		out = append(out, tok)
		return out, nil
	}

	switch {
	case tok.Match("}", ")"):
		top := p.stack[len(p.stack)-1]
		p.stack = p.stack[:len(p.stack)-1]
		result, err := top.execute(tok)
		if err != nil {
			return out, newMacroError(tok, "%v", err)
		}
		switch {
		case result.next != nil:
			p.stack = append(p.stack, result.next)
		case result.reinterpret:
			for _, gen := range result.tokens {
				var err error
				out, err = p.onToken(gen, out)
				if err != nil {
					return out, err
				}
			}
		case len(p.stack) > 0:
			if err := p.stack[len(p.stack)-1].onTokens(result.tokens); err != nil {
				return out, newMacroError(tok, "%v", err)
			}
		default:
			out = append(out, result.tokens...)
		}

	case tok.Match("("):
		p.stack = append(p.stack, newParenExpr(tok))

	case tok.Match("{"):
		if !p.stack[len(p.stack)-1].onOpenBrace(tok) {
			p.stack = append(p.stack, newBraceExpr(tok))
		}

	case tok.Match(","):
		p.stack[len(p.stack)-1].onComma(tok)

	default:
		if err := p.stack[len(p.stack)-1].onTokens([]Token{tok}); err != nil {
			return out, newMacroError(tok, "%v", err)
		}
	}
	return out, nil
}

// allMacroAllowed reports whether every frame currently on the stack
// permits latching the named macro here.
func (p *Parser) allMacroAllowed(name string) bool {
	for _, f := range p.stack {
		if !f.allowMacro(name) {
			return false
		}
	}
	return true
}

// onTokens feeds a sequence of freshly tokenized tokens through the parser
// in order, returning the tokens they cause to be emitted.
func (p *Parser) onTokens(tokens []Token) ([]Token, error) {
	var out []Token
	for _, tok := range tokens {
		var err error
		out, err = p.onToken(tok, out)
		if err != nil {
			return out, err
		}
	}
	return out, nil
}

// Translate reads inputPath, expands it, and writes the result to
// outputPath. On any error, outputPath is removed if it was created, and
// the output is never left partially written.
func (p *Parser) Translate(inputPath, outputPath string) error {
	input, err := os.Open(inputPath)
	if err != nil {
		return err
	}
	defer input.Close()

	output, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	ok := false
	defer func() {
		output.Close()
		if !ok {
			os.Remove(outputPath)
		}
	}()

	p.sourceFile = inputPath
	p.sourceLine = 0
	p.sourceHash = sha256.Sum256([]byte(inputPath))
	p.lastToken = nil

	w := bufio.NewWriter(output)
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		fragment, err := p.translateLine(scanner.Text() + "\n")
		if err != nil {
			return err
		}
		if _, err := w.WriteString(fragment); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if len(p.stack) > 0 {
		return &stackError{frames: append([]frame(nil), p.stack...)}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	ok = true
	return nil
}

// translateLine processes one physical input line and returns the output
// fragment it produces.
func (p *Parser) translateLine(line string) (string, error) {
	if strings.HasPrefix(line, "#") {
		if p.rawLines {
			p.sourceLine++
			return "", nil
		}
		if file, lineNo, ok := parseLineDirective(line); ok {
			p.sourceFile = file
			p.sourceLine = lineNo - 1
		}
		return "", nil
	}

	p.sourceLine++
	if strings.TrimSpace(line) == "" {
		return "", nil
	}

	var tokens []Token
	it, err := tokenizeLineErr(line, p.sourceFile, p.sourceLine)
	if err != nil {
		return "", err
	}
	for tok := range it {
		tokens = append(tokens, tok)
	}

	out, err := p.onTokens(tokens)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, tok := range out {
		b.WriteString(tok.transition(p.lastToken))
		b.WriteString(tok.Text)
		last := tok
		p.lastToken = &last
	}
	return b.String(), nil
}

// parseLineDirective parses a pre-existing "# <line> \"<file>\"" directive
// line, as described in spec.md §6.
func parseLineDirective(line string) (file string, lineNo int, ok bool) {
	parts := strings.SplitN(strings.TrimRight(line, "\n"), " ", 3)
	if len(parts) < 3 || parts[0] != "#" {
		return "", 0, false
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil || !strings.HasPrefix(parts[2], "\"") {
		return "", 0, false
	}
	decoded, err := decodeString(parts[2])
	if err != nil {
		return "", 0, false
	}
	return decoded, n, true
}
