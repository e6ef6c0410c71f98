// Copyright 2015 The Serulian Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Based on design first introduced in: http://blog.golang.org/two-go-talks-lexical-scanning-in-go-and
// Portions copied and modified from: https://github.com/golang/go/blob/master/src/text/template/parse/lex.go

package parser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const EOFRUNE = -1

// bytePosition represents the byte position in a piece of code.
type bytePosition int

// lexeme represents a token returned from scanning the contents of a file.
type lexeme struct {
	kind     tokenType    // The type of this lexeme.
	position bytePosition // The starting position of this token in the input string.
	value    string       // The textual value of this token.
}

// stateFn represents the state of the scanner as a function that returns the next state.
type stateFn func(*lexer) stateFn

// lexer holds the state of the scanner.
type lexer struct {
	input   string       // the string being scanned
	state   stateFn      // the next lexing function to enter
	pos     bytePosition // current position in the input
	start   bytePosition // start position of this token
	width   bytePosition // width of last rune read from input
	pending []lexeme     // tokens emitted but not yet returned
	done    bool         // the state machine has terminated
}

// buildlex creates a new scanner for the input string, starting in the given state.
func buildlex(input string, start stateFn) *lexer {
	return &lexer{
		input: input,
		state: start,
	}
}

// nextToken returns the next token from the input.
func (l *lexer) nextToken() lexeme {
	for len(l.pending) == 0 {
		if l.state == nil {
			return lexeme{tokenTypeEOF, l.pos, ""}
		}
		l.state = l.state(l)
	}
	tok := l.pending[0]
	l.pending = l.pending[1:]
	return tok
}

// next returns the next rune in the input.
func (l *lexer) next() rune {
	if int(l.pos) >= len(l.input) {
		l.width = 0
		return EOFRUNE
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.width = bytePosition(w)
	l.pos += l.width
	return r
}

// peek returns but does not consume the next rune in the input.
func (l *lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

// backup steps back one rune. Can only be called once per call of next.
func (l *lexer) backup() {
	l.pos -= l.width
}

// value returns the current value of the token in the lexer.
func (l *lexer) value() string {
	return l.input[l.start:l.pos]
}

// emit passes a token back to the client.
func (l *lexer) emit(t tokenType) {
	l.pending = append(l.pending, lexeme{t, l.start, l.value()})
	l.start = l.pos
}

// accept consumes the next rune if it's from the valid set.
func (l *lexer) accept(valid string) bool {
	if strings.ContainsRune(valid, l.next()) {
		return true
	}
	l.backup()
	return false
}

// acceptRun consumes a run of runes from the valid set.
func (l *lexer) acceptRun(valid string) int {
	n := 0
	for strings.ContainsRune(valid, l.next()) {
		n++
	}
	l.backup()
	return n
}

// acceptString consumes the full given string, if the next tokens in the stream.
func (l *lexer) acceptString(value string) bool {
	if !strings.HasPrefix(l.input[l.pos:], value) {
		return false
	}
	l.pos += bytePosition(len(value))
	return true
}

// errorf returns an error token and terminates the scan by returning nil
// as the next state.
func (l *lexer) errorf(format string, args ...interface{}) stateFn {
	l.pending = append(l.pending, lexeme{tokenTypeError, l.start, fmt.Sprintf(format, args...)})
	return nil
}

// buildLexUntil returns a state function that consumes runes while checker
// returns true and then emits a token of the given kind.
func buildLexUntil(kind tokenType, checker func(r rune) (bool, error)) stateFn {
	return func(l *lexer) stateFn {
		for {
			r := l.peek()
			ok, err := checker(r)
			if err != nil {
				return l.errorf("%v", err)
			}
			if !ok {
				break
			}
			l.next()
		}
		l.emit(kind)
		return performLexSource
	}
}

// isSpace reports whether r is a space character.
func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}

// isNewline reports whether r is a newline character.
func isNewline(r rune) bool {
	return r == '\r' || r == '\n'
}

// isDigit reports whether r is an ASCII digit.
func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isAlphaNumeric reports whether r is an alphabetic, digit, or underscore.
func isAlphaNumeric(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
