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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type translateTestInput struct {
	Code     string `yaml:"code"`
	RawLines bool   `yaml:"rawlines,omitempty"`
}

type translateTestOutput struct {
	Text     string   `yaml:"text,omitempty"`
	Error    string   `yaml:"error,omitempty"`
	Contains []string `yaml:"contains,omitempty"`
	Excludes []string `yaml:"excludes,omitempty"`
}

type translateTestYAML struct {
	Input  translateTestInput  `yaml:"input"`
	Output translateTestOutput `yaml:"output"`
}

func TestTranslate(t *testing.T) {
	content, err := os.ReadFile(filepath.Join("testdata", "translate-tests.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	var tests = make(map[string]translateTestYAML)
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(&tests); err != nil {
		t.Fatal(err)
	}

	for _, name := range sortedKeys(tests) {
		test := tests[name]
		t.Run(name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			if err := os.WriteFile("input.c", []byte(test.Input.Code), 0644); err != nil {
				t.Fatal(err)
			}
			p := NewParser(test.Input.RawLines)
			err := p.Translate("input.c", "output.c")

			if test.Output.Error != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", test.Output.Error)
				}
				if !strings.Contains(err.Error(), test.Output.Error) {
					t.Fatalf("got error %q, want it to contain %q", err.Error(), test.Output.Error)
				}
				return
			}
			if err != nil {
				t.Fatalf("Translate: %v", err)
			}

			got, err := os.ReadFile("output.c")
			if err != nil {
				t.Fatal(err)
			}
			if test.Output.Text != "" && string(got) != test.Output.Text {
				t.Errorf("got %q\nwant %q", got, test.Output.Text)
			}
			for _, want := range test.Output.Contains {
				if !strings.Contains(string(got), want) {
					t.Errorf("expected output to contain %q, got %q", want, got)
				}
			}
			for _, unwanted := range test.Output.Excludes {
				if strings.Contains(string(got), unwanted) {
					t.Errorf("expected output not to contain %q, got %q", unwanted, got)
				}
			}
		})
	}
}
