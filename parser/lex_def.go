// Copyright 2015 The Serulian Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:generate stringer -type=tokenType -trimprefix=tokenType

package parser

import "strings"

// lex creates a new scanner for the input string.
func lex(input string) *lexer {
	return buildlex(input, performLexSource)
}

// tokenType identifies the type of lexer lexemes.
type tokenType int

const (
	tokenTypeError tokenType = iota // error occurred; value is text of error
	tokenTypeEOF
	tokenTypeWhitespace
	tokenTypeComment

	tokenTypeIdentifier // helloworld, interface
	tokenTypeString     // "hello"
	tokenTypeNumber     // 123

	tokenTypeLeftBrace    // {
	tokenTypeRightBrace   // }
	tokenTypeLeftParen    // (
	tokenTypeRightParen   // )
	tokenTypeLeftBracket  // [
	tokenTypeRightBracket // ]
	tokenTypeLeftTri      // <
	tokenTypeRightTri     // >

	tokenTypeEquals       // =
	tokenTypeSemicolon    // ;
	tokenTypeComma        // ,
	tokenTypeQuestionMark // ?
	tokenTypeColon        // :
	tokenTypeVariadic     // ...
)

// performLexSource scans until EOFRUNE
func performLexSource(l *lexer) stateFn {
Loop:
	for {
		switch r := l.next(); {
		case r == EOFRUNE:
			break Loop

		case r == '{':
			l.emit(tokenTypeLeftBrace)

		case r == '}':
			l.emit(tokenTypeRightBrace)

		case r == '(':
			l.emit(tokenTypeLeftParen)

		case r == ')':
			l.emit(tokenTypeRightParen)

		case r == '[':
			l.emit(tokenTypeLeftBracket)

		case r == ']':
			l.emit(tokenTypeRightBracket)

		case r == '<':
			l.emit(tokenTypeLeftTri)

		case r == '>':
			l.emit(tokenTypeRightTri)

		case r == ';':
			l.emit(tokenTypeSemicolon)

		case r == ',':
			l.emit(tokenTypeComma)

		case r == '.':
			if l.acceptString("..") {
				l.emit(tokenTypeVariadic)
			} else if isDigit(l.peek()) {
				l.backup()
				return lexNumber
			} else {
				return l.errorf("unrecognized character at this location: %#U", r)
			}

		case r == '=':
			l.emit(tokenTypeEquals)

		case r == '?':
			l.emit(tokenTypeQuestionMark)

		case r == ':':
			l.emit(tokenTypeColon)

		case isSpace(r) || isNewline(r):
			l.emit(tokenTypeWhitespace)

		case r == '"':
			l.backup()
			return lexStringLiteral

		case r == '-':
			// -1, -Infinity
			if p := l.peek(); isDigit(p) || p == '.' {
				l.backup()
				return lexNumber
			} else if isAlphaNumeric(p) {
				return lexIdentifierOrKeyword
			}
			return l.errorf("unrecognized character at this location: %#U", r)

		case isDigit(r):
			l.backup()
			return lexNumber

		case isAlphaNumeric(r):
			l.backup()
			return lexIdentifierOrKeyword

		case r == '/':
			l.backup()
			if strings.HasPrefix(l.input[l.pos:], "/*") {
				return lexMultilineComment
			}
			if strings.HasPrefix(l.input[l.pos:], "//") {
				return lexSinglelineComment
			}
			l.next()
			return l.errorf("unrecognized character at this location: %#U", r)

		default:
			return l.errorf("unrecognized character at this location: %#U", r)
		}
	}

	l.emit(tokenTypeEOF)
	return nil
}

// lexSinglelineComment scans until newline or EOFRUNE
func lexSinglelineComment(l *lexer) stateFn {
	checker := func(r rune) (bool, error) {
		result := r == EOFRUNE || isNewline(r)
		return !result, nil
	}

	l.acceptString("//")
	return buildLexUntil(tokenTypeComment, checker)
}

// lexMultilineComment scans until the closing */
func lexMultilineComment(l *lexer) stateFn {
	l.acceptString("/*")
	i := strings.Index(l.input[l.pos:], "*/")
	if i < 0 {
		return l.errorf("unterminated block comment")
	}
	l.pos += bytePosition(i + len("*/"))
	l.emit(tokenTypeComment)
	return performLexSource
}

// lexIdentifierOrKeyword searches for a keyword or literal identifier.
func lexIdentifierOrKeyword(l *lexer) stateFn {
	for {
		if !isAlphaNumeric(l.peek()) {
			break
		}

		l.next()
	}
	l.emit(tokenTypeIdentifier)
	return performLexSource
}

// lexNumber scans decimal, hexadecimal and floating point numbers.
func lexNumber(l *lexer) stateFn {
	l.accept("-")
	if l.acceptString("0x") || l.acceptString("0X") {
		if l.acceptRun("0123456789abcdefABCDEF") == 0 {
			return l.errorf("malformed hexadecimal number: %q", l.value())
		}
		l.emit(tokenTypeNumber)
		return performLexSource
	}
	const digits = "0123456789"
	l.acceptRun(digits)
	if l.accept(".") {
		l.acceptRun(digits)
	}
	if l.accept("eE") {
		l.accept("+-")
		if l.acceptRun(digits) == 0 {
			return l.errorf("malformed number exponent: %q", l.value())
		}
	}
	if isAlphaNumeric(l.peek()) {
		l.next()
		return l.errorf("bad number syntax: %q", l.value())
	}
	l.emit(tokenTypeNumber)
	return performLexSource
}

func lexStringLiteral(l *lexer) stateFn {
	l.accept(`"`)
	esc := false
	for {
		c := l.peek()
		if c == EOFRUNE || isNewline(c) {
			return l.errorf("unterminated string literal")
		}
		if c == '"' && !esc {
			l.next()
			break
		}
		esc = c == '\\' && !esc
		l.next()
	}
	l.emit(tokenTypeString)
	return performLexSource
}
