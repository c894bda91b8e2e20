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
	"iter"
	"strings"
)

// delimiters are the single-character tokens that always stand alone.
const delimiters = "<[{(,.;&*)}]>"

// tokenizeErr reports that a physical line could not be tokenized.
type tokenizeErr struct {
	file string
	line int
	text string
}

func (e *tokenizeErr) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.file, e.line, e.text)
}

func (e *tokenizeErr) Position() Position {
	return Position{File: e.file, Line: e.line, Column: 1}
}

// tokenizeLine lexes one physical line, yielding tokens with accurate
// 1-based columns. Runs of whitespace collapse into a single token; string
// literals (opened and closed by unescaped '"', with '\' beginning a
// one-character escape) are kept as single tokens including both quotes;
// everything else not a delimiter or whitespace accumulates into a word
// token until broken by one of those.
//
// An unterminated string literal at end-of-line is not reported through the
// iterator; the caller observes it via tokenizeLineErr, which wraps
// tokenizeLine.
func tokenizeLine(line, file string, lineNumber int) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		var (
			curWord    strings.Builder
			curSpaces  strings.Builder
			curString  strings.Builder
			inString   bool
			inEscape   bool
			wordStart  int
			spaceStart int
			strStart   int
		)
		flushWord := func(column int) bool {
			if curWord.Len() == 0 {
				return true
			}
			ok := yield(Token{Text: curWord.String(), File: file, Line: lineNumber, Column: wordStart})
			curWord.Reset()
			return ok
		}
		flushSpaces := func(column int) bool {
			if curSpaces.Len() == 0 {
				return true
			}
			ok := yield(Token{Text: curSpaces.String(), File: file, Line: lineNumber, Column: spaceStart})
			curSpaces.Reset()
			return ok
		}

		runes := []rune(line)
		for i, c := range runes {
			column := i + 1
			switch {
			case inString:
				curString.WriteRune(c)
				switch {
				case inEscape:
					inEscape = false
				case c == '\\':
					inEscape = true
				case c == '"':
					if !yield(Token{Text: curString.String(), File: file, Line: lineNumber, Column: strStart}) {
						return
					}
					inString = false
					curString.Reset()
				}

			case c == ' ' || c == '\t' || c == '\n':
				if !flushWord(column) {
					return
				}
				if curSpaces.Len() == 0 {
					spaceStart = column
				}
				curSpaces.WriteRune(c)

			case strings.ContainsRune(delimiters, c):
				if !flushWord(column) {
					return
				}
				if !flushSpaces(column) {
					return
				}
				if !yield(Token{Text: string(c), File: file, Line: lineNumber, Column: column}) {
					return
				}

			case c == '"':
				if !flushWord(column) {
					return
				}
				if !flushSpaces(column) {
					return
				}
				inString = true
				strStart = column
				curString.WriteRune(c)

			default:
				if !flushSpaces(column) {
					return
				}
				if curWord.Len() == 0 {
					wordStart = column
				}
				curWord.WriteRune(c)
			}
		}
		if inString {
			// Unterminated string: reported by tokenizeLineErr, which
			// re-scans before iterating. Nothing more to yield here.
			return
		}
		if !flushWord(0) {
			return
		}
		flushSpaces(0)
	}
}

// tokenizeLineErr validates that line contains no unterminated string
// literal, then returns an iterator over its tokens. This mirrors
// tokenize.py's behaviour of raising before any token is yielded that would
// require the (missing) closing quote.
func tokenizeLineErr(line, file string, lineNumber int) (iter.Seq[Token], error) {
	inString := false
	inEscape := false
	for _, c := range line {
		if inString {
			switch {
			case inEscape:
				inEscape = false
			case c == '\\':
				inEscape = true
			case c == '"':
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
		}
	}
	if inString {
		return nil, &tokenizeErr{file: file, line: lineNumber, text: "string did not finish by end of line"}
	}
	return tokenizeLine(line, file, lineNumber), nil
}
