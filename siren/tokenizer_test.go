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

func tokenTexts(t *testing.T, line string) []string {
	it, err := tokenizeLineErr(line, "t.c", 1)
	if err != nil {
		t.Fatalf("tokenizeLineErr: %v", err)
	}
	var texts []string
	for tok := range it {
		texts = append(texts, tok.Text)
	}
	return texts
}

func TestTokenizeWords(t *testing.T) {
	got := tokenTexts(t, "foo(bar, baz)\n")
	want := []string{"foo", "(", "bar", ",", " ", "baz", ")", "\n"}
	assertTexts(t, got, want)
}

func TestTokenizeCollapsesWhitespace(t *testing.T) {
	got := tokenTexts(t, "a    b\n")
	want := []string{"a", "    ", "b", "\n"}
	assertTexts(t, got, want)
}

func TestTokenizeStringLiteral(t *testing.T) {
	got := tokenTexts(t, `x("a\"b")` + "\n")
	want := []string{"x", "(", `"a\"b"`, ")", "\n"}
	assertTexts(t, got, want)
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, err := tokenizeLineErr(`x("abc`+"\n", "t.c", 1)
	if err == nil {
		t.Fatal("expected error for unterminated string")
	}
	perr, ok := err.(interface{ Position() Position })
	if !ok {
		t.Fatal("expected error to implement Position()")
	}
	if perr.Position().Line != 1 {
		t.Fatalf("wrong line: %+v", perr.Position())
	}
}

func TestTokenizeDelimitersStandAlone(t *testing.T) {
	got := tokenTexts(t, "<[{(,.;&*)}]>\n")
	want := []string{"<", "[", "{", "(", ",", ".", ";", "&", "*", ")", "}", "]", ">", "\n"}
	assertTexts(t, got, want)
}

func assertTexts(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %q, want %d %q", len(got), got, len(want), want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %q, want %q (full: %q vs %q)", i, got[i], want[i], got, want)
		}
	}
}
