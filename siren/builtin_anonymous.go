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
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// anonymousSymbolMacro implements anonymous_symbol(var) { body... }: a block
// macro that substitutes every occurrence of var in body with a fresh
// identifier, unique per call within this translation but stable only for
// that single expansion. The identifier is derived from the SHA-256 of the
// input file path and a per-parser counter, so two translations of the same
// path produce the same sequence of names (useful for reproducible builds and
// for diffing generated output across runs).
func anonymousSymbolMacro(p *Parser) MacroFunc {
	return func(args [][]Token, nameToken Token) (MacroResult, bodyAcceptor, error) {
		if len(args) != 1 {
			return MacroResult{}, nil, newMacroError(nameToken, "anonymous_symbol takes exactly one argument")
		}
		variableName := argument(args[0])
		if !isValidVariableName(variableName) {
			return MacroResult{}, nil, newMacroError(nameToken, "invalid variable name %q", variableName)
		}

		uniq := append(append([]byte(nil), p.sourceHash[:]...), []byte(strconv.Itoa(p.anonCounter))...)
		p.anonCounter++
		sum := sha256.Sum256(uniq)
		replacement := newTokenFromList("_anon_"+hex.EncodeToString(sum[:])[:8], args[0])

		accept := func(body []Token) (MacroResult, error) {
			out := make([]Token, len(body))
			for i, tok := range body {
				if tok.Match(variableName) {
					out[i] = replacement
				} else {
					out[i] = tok
				}
			}
			return MacroResult{Tokens: out, Reinterpret: true}, nil
		}
		return MacroResult{}, accept, nil
	}
}
