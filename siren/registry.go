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
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// sortedKeys returns the keys of m in sorted order, giving deterministic
// iteration over otherwise unordered map-backed registries.
func sortedKeys[K constraints.Ordered, V any](m map[K]V) []K {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

// AddMacro registers a macro under name, overwriting any existing
// definition. Used internally to install built-ins.
func (p *Parser) AddMacro(name string, fn MacroFunc) {
	p.macros[name] = fn
}

// TryAddMacro registers a macro under name, and reports whether it
// succeeded; it fails (returns false) if a macro of that name already
// exists. User-defined macros (macro_define, macro_block_define) must use
// this, since redefinition is a fatal error (spec.md §4.4).
func (p *Parser) TryAddMacro(name string, fn MacroFunc) bool {
	if _, exists := p.macros[name]; exists {
		return false
	}
	p.macros[name] = fn
	return true
}

// DefinedMacros returns the names of all currently registered macros, in
// sorted order. The CLI's -list-macros mode uses this to print the built-in
// set without translating anything, the same way geas's -i mode lists
// target forks.
func (p *Parser) DefinedMacros() []string {
	return sortedKeys(p.macros)
}
