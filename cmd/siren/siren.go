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

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fjl/siren/siren"
)

var t2s = strings.NewReplacer("\t", "  ")

func usage() {
	fmt.Fprint(os.Stderr, t2s.Replace(`
Usage: siren [options...] <input> <output>

	 -rawlines          treat '#'-prefixed input lines as opaque context
	                     instead of adopting them as line directives
	 -list-macros       show the names of all built-in macros and exit
	 -h                 show this message

`))
}

func main() {
	fs := newFlagSet()
	rawLines := fs.Bool("rawlines", false, "")
	listMacros := fs.Bool("list-macros", false, "")
	parseFlags(fs, os.Args[1:])

	if *listMacros {
		p := siren.NewParser(*rawLines)
		for _, name := range p.DefinedMacros() {
			fmt.Println(name)
		}
		os.Exit(0)
	}

	if fs.NArg() != 2 {
		usage()
		exit(2, fmt.Errorf("need input and output file names as arguments"))
	}
	input, output := fs.Arg(0), fs.Arg(1)

	p := siren.NewParser(*rawLines)
	err := p.Translate(input, output)
	if perr, ok := err.(siren.PositionError); ok {
		fmt.Fprintf(os.Stderr, "%v: %v\n", perr.Position(), err)
		os.Exit(1)
	}
	exit(1, err)
}

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("siren", flag.ContinueOnError)
	fs.Usage = usage
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) {
	if err := fs.Parse(args); err != nil {
		exit(2, err)
	}
}

func exit(code int, err error) {
	if err == nil || err == flag.ErrHelp {
		os.Exit(0)
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(code)
}
