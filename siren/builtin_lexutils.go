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
	"strconv"
	"strings"
)

// registerBuiltins installs every built-in macro named in spec.md §4.4.
func registerBuiltins(p *Parser) {
	p.AddMacro("static_repeat", staticRepeatMacro)
	p.AddMacro("symbol_join", symbolJoinMacro)
	p.AddMacro("symbol_str", symbolStrMacro)
	p.AddMacro("anonymous_symbol", anonymousSymbolMacro(p))
	p.AddMacro("macro_define", macroDefineMacro(p, false))
	p.AddMacro("macro_block_define", macroDefineMacro(p, true))
	p.AddMacro("debugf_core", debugfCoreMacro)
}

// staticRepeatMacro implements static_repeat(N, var) { body... }: a block
// macro that emits body N times, substituting the literal decimal integer
// for each iteration in place of every token equal to var.
func staticRepeatMacro(args [][]Token, nameToken Token) (MacroResult, bodyAcceptor, error) {
	if len(args) != 2 {
		return MacroResult{}, nil, newMacroError(nameToken, "static_repeat requires exactly two arguments")
	}
	countTokens := args[0]
	countText := argument(countTokens)
	varName := argument(args[1])
	if countText == "" || !isAllDigits(countText) {
		return MacroResult{}, nil, newMacroError(nameToken, "invalid repeat count %q", countText)
	}
	if !isValidVariableName(varName) {
		return MacroResult{}, nil, newMacroError(nameToken, "invalid variable name %q", varName)
	}
	count, err := strconv.Atoi(countText)
	if err != nil {
		return MacroResult{}, nil, newMacroError(nameToken, "invalid repeat count %q", countText)
	}

	accept := func(body []Token) (MacroResult, error) {
		var out []Token
		for i := 0; i < count; i++ {
			countToken := newTokenFromList(strconv.Itoa(i), countTokens)
			for _, tok := range body {
				if tok.Match(varName) {
					out = append(out, countToken)
				} else {
					out = append(out, tok)
				}
			}
		}
		return MacroResult{Tokens: out, Reinterpret: true}, nil
	}
	return MacroResult{}, accept, nil
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// symbolJoinMacro implements symbol_join(a, b, ...): joins the stripped
// text of every argument with '_' into a single identifier token.
func symbolJoinMacro(args [][]Token, nameToken Token) (MacroResult, bodyAcceptor, error) {
	if len(args) < 2 {
		return MacroResult{}, nil, newMacroError(nameToken, "symbol_join requires at least two arguments")
	}
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = argument(arg)
	}
	tok := newToken(strings.Join(parts, "_"), nameToken)
	return MacroResult{Tokens: []Token{tok}, Reinterpret: false}, nil, nil
}

// symbolStrMacro implements symbol_str(a): produces a single string
// literal token containing a's stripped text, with '\' and '"' escaped.
func symbolStrMacro(args [][]Token, nameToken Token) (MacroResult, bodyAcceptor, error) {
	if len(args) != 1 {
		return MacroResult{}, nil, newMacroError(nameToken, "symbol_str takes exactly one argument")
	}
	symbol := argument(args[0])
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(symbol)
	tok := newToken(`"`+escaped+`"`, nameToken)
	return MacroResult{Tokens: []Token{tok}, Reinterpret: false}, nil, nil
}
