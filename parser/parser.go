// Copyright 2015 The Serulian Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package parser translates a supported subset of WebIDL
// (https://webidl.spec.whatwg.org/) into the tree of package ast.
package parser

import (
	"fmt"

	"github.com/dennwc/genbind/ast"
)

// sourceParser holds the state of the parser.
type sourceParser struct {
	toks *tokenStream
	// stack holds the nodes under construction, innermost last.
	stack         []ast.Node
	currentToken  commentedLexeme
	previousToken commentedLexeme
	errors        []*ast.ErrorNode
}

func newParser(input string) *sourceParser {
	eof := commentedLexeme{lexeme: lexeme{kind: tokenTypeEOF}}
	return &sourceParser{
		toks:          newTokenStream(lex(input)),
		currentToken:  eof,
		previousToken: eof,
	}
}

// node decorates n with the start of the current token and makes it the
// current node. The returned func finishes it: it records the end of the
// last consumed token and pops n.
func (p *sourceParser) node(n ast.Node) func() {
	b := n.NodeBase()
	b.Start = int(p.currentToken.position)
	b.Comments = append(b.Comments, p.currentToken.comments...)
	p.stack = append(p.stack, n)
	return func() {
		top := len(p.stack) - 1
		if top < 0 || p.stack[top] != n {
			panic(fmt.Sprintf("parser: unbalanced node stack at %q", p.currentToken.value))
		}
		setEnd(n, p.previousToken)
		p.stack = p.stack[:top]
	}
}

// setEnd records the last byte of tok as the end of n.
func setEnd(n ast.Node, tok commentedLexeme) {
	n.NodeBase().End = int(tok.position) + len(tok.value) - 1
}

// currentNode returns the innermost node under construction, or nil.
func (p *sourceParser) currentNode() ast.Node {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

// emitError records a syntax error at the current token and attaches it to
// the current node.
func (p *sourceParser) emitError(format string, args ...interface{}) {
	e := &ast.ErrorNode{Message: fmt.Sprintf(format, args...)}
	e.Start = int(p.currentToken.position)
	setEnd(e, p.previousToken)
	p.errors = append(p.errors, e)
	if n := p.currentNode(); n != nil {
		b := n.NodeBase()
		b.Errors = append(b.Errors, e)
	}
}

// consumeToken advances to the next significant token and returns it.
// Lexer errors are reported as they are reached.
func (p *sourceParser) consumeToken() commentedLexeme {
	p.previousToken = p.currentToken
	p.currentToken = p.toks.next()
	if p.currentToken.kind == tokenTypeError {
		p.emitError("%s", p.currentToken.value)
	}
	return p.currentToken
}

// isToken reports whether the current token is of one of the given types.
func (p *sourceParser) isToken(types ...tokenType) bool {
	return hasKind(p.currentToken.kind, types)
}

// isNextToken reports whether the token after the current one is of one of
// the given types.
func (p *sourceParser) isNextToken(types ...tokenType) bool {
	return hasKind(p.toks.peek(0).kind, types)
}

func hasKind(kind tokenType, types []tokenType) bool {
	for _, t := range types {
		if kind == t {
			return true
		}
	}
	return false
}

// isIdentifier reports whether the current token is the given identifier.
// WebIDL keywords are lexed as identifiers, so this also matches keywords.
func (p *sourceParser) isIdentifier(value string) bool {
	return p.isToken(tokenTypeIdentifier) && p.currentToken.value == value
}

// tryConsumeIdentifier consumes an identifier if one is next.
func (p *sourceParser) tryConsumeIdentifier() (string, bool) {
	if !p.isToken(tokenTypeIdentifier) {
		return "", false
	}
	value := p.currentToken.value
	p.consumeToken()
	return value, true
}

// consumeIdentifier consumes an expected identifier or reports an error.
func (p *sourceParser) consumeIdentifier() string {
	if identifier, ok := p.tryConsumeIdentifier(); ok {
		return identifier
	}
	p.emitError("Expected identifier, found token %v", p.currentToken.kind)
	return ""
}

// tryConsumeKeyword consumes the given keyword if it is next.
func (p *sourceParser) tryConsumeKeyword(keyword string) bool {
	if !p.isIdentifier(keyword) {
		return false
	}
	p.consumeToken()
	return true
}

// consumeKeyword consumes an expected keyword or reports an error.
func (p *sourceParser) consumeKeyword(keyword string) bool {
	if !p.tryConsumeKeyword(keyword) {
		p.emitError("Expected keyword %s, found token %v", keyword, p.currentToken.kind)
		return false
	}
	return true
}

// tryConsume consumes the current token if it is of one of the given types.
func (p *sourceParser) tryConsume(types ...tokenType) (lexeme, bool) {
	if !p.isToken(types...) {
		return lexeme{kind: tokenTypeError, position: -1}, false
	}
	tok := p.currentToken
	p.consumeToken()
	return tok.lexeme, true
}

// consume consumes the current token if it is of one of the given types,
// or reports an error.
func (p *sourceParser) consume(types ...tokenType) (lexeme, bool) {
	tok, ok := p.tryConsume(types...)
	if !ok {
		p.emitError("Expected one of: %v, found: %v", types, p.currentToken.kind)
	}
	return tok, ok
}
