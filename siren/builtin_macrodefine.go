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
	"fmt"
	"strings"
)

// macroDefineMacro implements both macro_define and macro_block_define: each
// call defines a new user macro, named by its first argument, whose body is
// the braced block that follows the call. macro_block_define additionally
// reserves its last parameter as the name bound to the invocation's own
// braced body, making the defined macro itself a block macro.
func macroDefineMacro(p *Parser, isBlock bool) MacroFunc {
	return func(args [][]Token, nameToken Token) (MacroResult, bodyAcceptor, error) {
		if isBlock {
			if len(args) < 2 {
				return MacroResult{}, nil, newMacroError(nameToken, "macro_block_define must always have a macro name to define and a body variable")
			}
		} else if len(args) < 1 {
			return MacroResult{}, nil, newMacroError(nameToken, "macro_define must always have a macro name to define")
		}

		paramNames := make([]string, len(args))
		for i, arg := range args {
			paramNames[i] = argument(arg)
		}

		var vararg string
		hasVararg := false
		if !isBlock && len(paramNames) > 0 && strings.HasSuffix(paramNames[len(paramNames)-1], "...") {
			last := paramNames[len(paramNames)-1]
			paramNames = paramNames[:len(paramNames)-1]
			vararg = strings.TrimSuffix(last, "...")
			hasVararg = true
			if !isValidVariableName(vararg) {
				return MacroResult{}, nil, newMacroError(nameToken, "invalid identifier %q", vararg)
			}
		}
		for _, name := range paramNames {
			if !isValidVariableName(name) {
				return MacroResult{}, nil, newMacroError(nameToken, "invalid identifier %q", name)
			}
		}
		if len(paramNames) == 0 {
			return MacroResult{}, nil, newMacroError(nameToken, "macro_define must always have a macro name to define")
		}
		macroName := paramNames[0]
		paramNames = paramNames[1:]

		var bodyName string
		if isBlock {
			bodyName = paramNames[len(paramNames)-1]
			paramNames = paramNames[:len(paramNames)-1]
		}

		accept := func(defBody []Token) (MacroResult, error) {
			substitute := func(lookup map[string][]Token, callSite Token) ([]Token, error) {
				var substitution []Token
				blameCallerDepth := -1
				for _, tok := range defBody {
					switch {
					case blameCallerDepth == -1 && tok.Text == "blame_caller":
						blameCallerDepth = 0
						continue
					case blameCallerDepth == 0:
						switch {
						case tok.Text == "{":
							blameCallerDepth = 1
							continue
						case tok.IsWhitespace():
							continue
						default:
							return nil, fmt.Errorf("unexpected symbol %v when expecting '{' after blame_caller", tok)
						}
					case tok.Text == "}" && blameCallerDepth == 1:
						blameCallerDepth = -1
						continue
					case blameCallerDepth >= 1:
						if tok.Text == "{" {
							blameCallerDepth++
						} else if tok.Text == "}" {
							blameCallerDepth--
						}
						tok = newToken(tok.Text, callSite)
					}

					if hasVararg && tok.Text == vararg && len(lookup[vararg]) == 0 {
						count := 1
						for count < len(substitution) && substitution[len(substitution)-count].IsWhitespace() {
							count++
						}
						if count <= len(substitution) && substitution[len(substitution)-count].Text == "," {
							substitution = substitution[:len(substitution)-count]
						}
					}
					if repl, ok := lookup[tok.Text]; ok {
						substitution = append(substitution, repl...)
					} else {
						substitution = append(substitution, tok)
					}
				}
				return substitution, nil
			}

			definedMacro := func(callArgs [][]Token, callToken Token) (MacroResult, bodyAcceptor, error) {
				if len(callArgs) < len(paramNames) || (!hasVararg && len(callArgs) > len(paramNames)) {
					return MacroResult{}, nil, newMacroError(callToken,
						"user-defined macro %q requires %d arguments but found %d", macroName, len(paramNames), len(callArgs))
				}

				lookup := make(map[string][]Token, len(paramNames)+1)
				for i, param := range paramNames {
					lookup[param] = callArgs[i]
				}

				if hasVararg {
					var varargFlat []Token
					for i, callArg := range callArgs[len(paramNames):] {
						if i > 0 {
							varargFlat = append(varargFlat, pythonToken(","))
						}
						varargFlat = append(varargFlat, callArg...)
					}
					lookup[vararg] = varargFlat
				}

				if isBlock {
					macroAccept := func(callBody []Token) (MacroResult, error) {
						lookup[bodyName] = callBody
						tokens, err := substitute(lookup, callToken)
						if err != nil {
							return MacroResult{}, newMacroError(callToken, "%v", err)
						}
						return MacroResult{Tokens: tokens, Reinterpret: true}, nil
					}
					return MacroResult{}, macroAccept, nil
				}
				tokens, err := substitute(lookup, callToken)
				if err != nil {
					return MacroResult{}, nil, newMacroError(callToken, "%v", err)
				}
				return MacroResult{Tokens: tokens, Reinterpret: true}, nil, nil
			}

			if !p.TryAddMacro(macroName, definedMacro) {
				return MacroResult{}, newMacroError(nameToken, "macro already defined: %q", macroName)
			}
			return MacroResult{Tokens: nil, Reinterpret: false}, nil
		}
		return MacroResult{}, accept, nil
	}
}
