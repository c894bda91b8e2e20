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

func TestIsValidVariableName(t *testing.T) {
	cases := map[string]bool{
		"foo":     true,
		"foo_bar": true,
		"_foo":    false,
		"foo123":  true,
		"123foo":  false,
		"":        false,
		"___":     false,
		"f":       true,
	}
	for name, want := range cases {
		if got := isValidVariableName(name); got != want {
			t.Errorf("isValidVariableName(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestDecodeString(t *testing.T) {
	cases := []struct {
		raw, want string
	}{
		{`"hello"`, "hello"},
		{` "hello" `, "hello"},
		{`"a\"b"`, `a"b`},
		{`"a\\b"`, `a\b`},
		{`"a\nb"`, "a\nb"},
		{`""`, ""},
	}
	for _, c := range cases {
		got, err := decodeString(c.raw)
		if err != nil {
			t.Errorf("decodeString(%q): unexpected error %v", c.raw, err)
			continue
		}
		if got != c.want {
			t.Errorf("decodeString(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestDecodeStringErrors(t *testing.T) {
	cases := []string{
		`"unterminated`,
		`x"missing leading quote"`,
		`"bad \escape"`,
	}
	for _, raw := range cases {
		if _, err := decodeString(raw); err == nil {
			t.Errorf("decodeString(%q): expected error", raw)
		}
	}
}
