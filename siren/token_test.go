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

import "testing"

func TestTokenEndingPosition(t *testing.T) {
	tok := Token{Text: "hello", File: "a.c", Line: 3, Column: 5}
	line, col := tok.endingPosition()
	if line != 3 || col != 10 {
		t.Fatalf("got (%d, %d), want (3, 10)", line, col)
	}

	multi := Token{Text: "a\nbc", File: "a.c", Line: 3, Column: 5}
	line, col = multi.endingPosition()
	if line != 4 || col != 3 {
		t.Fatalf("got (%d, %d), want (4, 3)", line, col)
	}
}

func TestTokenTransitionSameLine(t *testing.T) {
	prev := Token{Text: "foo", File: "a.c", Line: 1, Column: 1}
	next := Token{Text: "bar", File: "a.c", Line: 1, Column: 6}
	got := next.transition(&prev)
	if got != "  " {
		t.Fatalf("got %q, want %q", got, "  ")
	}
}

func TestTokenTransitionNearbyLine(t *testing.T) {
	prev := Token{Text: "foo", File: "a.c", Line: 1, Column: 1}
	next := Token{Text: "bar", File: "a.c", Line: 3, Column: 3}
	got := next.transition(&prev)
	if got != "\n\n  " {
		t.Fatalf("got %q, want %q", got, "\n\n  ")
	}
}

func TestTokenTransitionSynthesizesDirective(t *testing.T) {
	prev := Token{Text: "foo\n", File: "a.c", Line: 1, Column: 1}
	next := Token{Text: "bar", File: "b.c", Line: 8, Column: 1}
	got := next.transition(&prev)
	want := "# 8 \"b.c\"\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTokenTransitionNoPrev(t *testing.T) {
	next := Token{Text: "bar", File: "b.c", Line: 1, Column: 1}
	got := next.transition(nil)
	want := "# 1 \"b.c\"\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTokenMatch(t *testing.T) {
	tok := Token{Text: "("}
	if !tok.Match("(", ")") {
		t.Fatal("expected match")
	}
	if tok.Match(")", "{") {
		t.Fatal("expected no match")
	}
}

func TestIsWhitespace(t *testing.T) {
	if !(Token{Text: "  \t"}).IsWhitespace() {
		t.Fatal("expected whitespace token to report true")
	}
	if (Token{Text: "x"}).IsWhitespace() {
		t.Fatal("expected non-whitespace token to report false")
	}
	if (Token{Text: ""}).IsWhitespace() {
		t.Fatal("expected empty token to report false")
	}
}

func TestArgument(t *testing.T) {
	got := argument([]Token{{Text: "  "}, {Text: "foo"}, {Text: " "}, {Text: "bar"}, {Text: "  "}})
	if got != "foo bar" {
		t.Fatalf("got %q", got)
	}
}
