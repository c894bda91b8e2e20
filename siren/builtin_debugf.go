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

// printf argument classes, named after the C types debugf_core emits for
// each conversion specifier. argString is handled out of line from the
// others: string arguments are measured and packed separately from the
// fixed-size numeric/pointer argument struct.
const (
	argChar     = "unsigned char"
	argShort    = "unsigned short"
	argInt      = "unsigned int"
	argLong     = "unsigned long"
	argLongLong = "unsigned long long"
	argPtrdiffT = "ptrdiff_t"
	argIntmaxT  = "intmax_t"
	argSizeT    = "size_t"
	argVoidPtr  = "const void *"
	argDouble   = "double"
	argString   = "const char *"
)

// debugfCoreMacro implements debugf_core(level, stable_id, format, args...).
// It lowers the call into a self-contained statement expression that packs
// a debugf_metadata record, the caller's argument values, and any string
// arguments into a compact blob, handed to debugf_internal for out-of-line
// logging without formatting cost on the hot path.
func debugfCoreMacro(args [][]Token, nameToken Token) (MacroResult, bodyAcceptor, error) {
	if len(args) < 3 {
		return MacroResult{}, nil, newMacroError(nameToken, "debugf requires at least three arguments")
	}
	levelTokens, stableIDTokens, formatTokens := args[0], args[1], args[2]
	callArgs := args[3:]

	level := argument(levelTokens)
	switch level {
	case "CRITICAL", "WARNING", "INFO", "DEBUG", "TRACE":
	default:
		return MacroResult{}, nil, newMacroError(nameToken, "debugf requires a valid log level, not %q", level)
	}

	stableID, err := decodeString(argument(stableIDTokens))
	if err != nil {
		return MacroResult{}, nil, newMacroError(nameToken, "%v", err)
	}
	hasStableID := stableID != ""
	if hasStableID && !isAlnum(stableID) {
		return MacroResult{}, nil, newMacroError(nameToken, "debugf stable id is invalid: %q", stableID)
	}

	format, err := decodeString(argument(formatTokens))
	if err != nil {
		return MacroResult{}, nil, newMacroError(nameToken, "%v", err)
	}
	argTypes, err := parsePrintfFormat(format)
	if err != nil {
		return MacroResult{}, nil, newMacroError(nameToken, "%v", err)
	}
	if len(argTypes) != len(callArgs) {
		return MacroResult{}, nil, newMacroError(nameToken, "debugf format string indicates %d arguments, but %d passed", len(argTypes), len(callArgs))
	}

	filename := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(nameToken.File)

	var tokens []Token
	emit := func(text string) { tokens = append(tokens, pythonToken(text)) }
	emitf := func(format string, a ...any) { emit(fmt.Sprintf(format, a...)) }

	emit("({")
	emit(`static __attribute__((section ("debugf_messages"))) const char _msg_format[] = (`)
	tokens = append(tokens, formatTokens...)
	emit(");")
	emitf(`static __attribute__((section ("debugf_messages"))) const char _msg_filename[] = "%s";`, filename)
	if hasStableID {
		emit(`static __attribute__((section ("debugf_messages"))) const char _msg_stable[] = `)
		tokens = append(tokens, stableIDTokens...)
		emit(";")
	}
	emit(`static __attribute__((section ("debugf_messages"))) const struct debugf_metadata `)
	emit("_msg_metadata = {")
	emit(".loglevel = (")
	tokens = append(tokens, levelTokens...)
	emit("),")
	if hasStableID {
		emit(".stable_id = _msg_stable,")
	} else {
		emit(".stable_id = (void *) 0,")
	}
	emit(".format = _msg_format,")
	emit(".filename = _msg_filename,")
	emitf(".line_number = %d,", nameToken.Line)
	emit("};")
	emit("struct {")
	emit("const struct debugf_metadata *metadata;")
	emit("uint64_t timestamp;")

	for i, t := range argTypes {
		if t != argString {
			emitf("%s arg%d;", t, i)
		}
	}
	emit("} __attribute__((packed)) _msg_state = {")
	emit(".metadata = &_msg_metadata,")
	emit(".timestamp = clock_timestamp_fast(),")

	for i, t := range argTypes {
		if t != argString {
			emitf(".arg%d = (", i)
			tokens = append(tokens, callArgs[i]...)
			emit("),")
		}
	}
	emit("};")

	for i, t := range argTypes {
		if t == argString {
			emitf("%s _msg_str%d = (", t, i)
			tokens = append(tokens, callArgs[i]...)
			emit(");")
		}
	}

	emit("const void *_msg_seqs[] = {")
	emit("&_msg_state,")
	lastStringArg := -1
	for i, t := range argTypes {
		if t == argString {
			emitf("_msg_str%d,", i)
			lastStringArg = i
		}
	}
	emit("};")
	emit("size_t _msg_sizes[] = { sizeof(_msg_state),")
	numSeqs := 1
	for i, t := range argTypes {
		if t == argString {
			terminator := 1
			if i == lastStringArg {
				terminator = 0
			}
			emitf("strlen(_msg_str%d) + %d,", i, terminator)
			numSeqs++
		}
	}
	emit("};")
	emitf("debugf_internal(_msg_seqs, _msg_sizes, %d);", numSeqs)
	emit("})")

	return MacroResult{Tokens: tokens, Reinterpret: false}, nil, nil
}

func isAlnum(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// printfScanner walks a format string one rune at a time, in the style of
// the embedded-artistry printf format grammar this macro targets.
type printfScanner struct {
	chars []rune
	pos   int
}

// accept consumes the current rune if it's in set, reporting whether it did.
// It is an error to call accept once the string is exhausted, mirroring the
// original grammar's refusal to let a specifier run off the end of the
// format string.
func (s *printfScanner) accept(set string) (bool, error) {
	if s.pos >= len(s.chars) {
		return false, fmt.Errorf("format string ended early during specifier")
	}
	if strings.ContainsRune(set, s.chars[s.pos]) {
		s.pos++
		return true, nil
	}
	return false, nil
}

func (s *printfScanner) acceptRun(set string) error {
	for {
		ok, err := s.accept(set)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

const digits = "0123456789"

// parsePrintfFormat walks a printf-style format string and returns, for each
// conversion specifier, the C argument type debugf_core must reserve room
// for.
func parsePrintfFormat(format string) ([]string, error) {
	s := &printfScanner{chars: []rune(format)}
	var args []string

	for s.pos < len(s.chars) {
		c := s.chars[s.pos]
		s.pos++
		if c != '%' {
			continue
		}
		if ok, err := s.accept("%"); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		if err := s.acceptRun("0-+ #"); err != nil {
			return nil, err
		}
		if ok, err := s.accept("*"); err != nil {
			return nil, err
		} else if ok {
			args = append(args, argInt)
		} else if err := s.acceptRun(digits); err != nil {
			return nil, err
		}
		if ok, err := s.accept("."); err != nil {
			return nil, err
		} else if ok {
			if ok, err := s.accept("*"); err != nil {
				return nil, err
			} else if ok {
				args = append(args, argInt)
			} else if err := s.acceptRun(digits); err != nil {
				return nil, err
			}
		}

		length, err := parseLengthModifier(s)
		if err != nil {
			return nil, err
		}

		switch {
		case mustAccept(s, "diuxXob"):
			args = append(args, length)
		case mustAccept(s, "fFeEgG"):
			args = append(args, argDouble)
		case mustAccept(s, "c"):
			args = append(args, argChar)
		case mustAccept(s, "s"):
			args = append(args, argString)
		case mustAccept(s, "p"):
			args = append(args, argVoidPtr)
		default:
			if s.pos >= len(s.chars) {
				return nil, fmt.Errorf("format string ended early during specifier (string=%q)", format)
			}
			return nil, fmt.Errorf("unexpected specifier %q in string %q", s.chars[s.pos], format)
		}
	}
	return args, nil
}

// mustAccept is like accept but treats end-of-string as simply "no match"
// rather than an error, since the caller handles that case itself to
// produce a more specific message.
func mustAccept(s *printfScanner, set string) bool {
	if s.pos >= len(s.chars) {
		return false
	}
	ok, _ := s.accept(set)
	return ok
}

func parseLengthModifier(s *printfScanner) (string, error) {
	if ok, err := mustAcceptErr(s, "l"); err != nil {
		return "", err
	} else if ok {
		if ok2, err := mustAcceptErr(s, "l"); err != nil {
			return "", err
		} else if ok2 {
			return argLongLong, nil
		}
		return argLong, nil
	}
	if ok, err := mustAcceptErr(s, "h"); err != nil {
		return "", err
	} else if ok {
		if ok2, err := mustAcceptErr(s, "h"); err != nil {
			return "", err
		} else if ok2 {
			return argChar, nil
		}
		return argShort, nil
	}
	if ok, err := mustAcceptErr(s, "t"); err != nil {
		return "", err
	} else if ok {
		return argPtrdiffT, nil
	}
	if ok, err := mustAcceptErr(s, "j"); err != nil {
		return "", err
	} else if ok {
		return argIntmaxT, nil
	}
	if ok, err := mustAcceptErr(s, "z"); err != nil {
		return "", err
	} else if ok {
		return argSizeT, nil
	}
	return argInt, nil
}

// mustAcceptErr is accept but tolerates end-of-string (treated as no match);
// the specifier-parsing state that follows a length modifier is where the
// grammar actually requires a remaining character, so that check happens
// there instead.
func mustAcceptErr(s *printfScanner, set string) (bool, error) {
	if s.pos >= len(s.chars) {
		return false, nil
	}
	return s.accept(set)
}
