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
	"unicode"
)

// isValidVariableName reports whether name is a legal host-language
// identifier (as used for macro parameters, static_repeat/anonymous_symbol
// loop variables, and macro names): non-empty, alphanumeric plus
// underscore, and starting with a letter.
func isValidVariableName(name string) bool {
	if name == "" {
		return false
	}
	stripped := strings.ReplaceAll(name, "_", "")
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return unicode.IsLetter(rune(name[0]))
}

// decodeString decodes a double-quoted string argument, stripping the
// quotes and resolving '\\', '\"' and '\n' escapes. Leading/trailing
// whitespace outside the quotes is ignored. This is used both for
// pre-existing line directives and for macro arguments that must be string
// literals (debugf_core's format string and stable id).
func decodeString(raw string) (string, error) {
	var b strings.Builder
	inString := false
	inEscape := false
	for _, c := range raw {
		switch {
		case !inString:
			switch {
			case c == '"':
				inString = true
			case c == ' ' || c == '\t' || c == '\n':
				// skip
			default:
				return "", fmt.Errorf("unexpected symbol %q in string argument %q", c, raw)
			}
		case inEscape:
			switch c {
			case '\\':
				b.WriteByte('\\')
			case '"':
				b.WriteByte('"')
			case 'n':
				b.WriteByte('\n')
			default:
				return "", fmt.Errorf("unknown escape sequence '\\%c'", c)
			}
			inEscape = false
		case c == '"':
			inString = false
		case c == '\\':
			inEscape = true
		default:
			b.WriteRune(c)
		}
	}
	if inString {
		return "", fmt.Errorf("unterminated string in argument %q", raw)
	}
	return b.String(), nil
}
