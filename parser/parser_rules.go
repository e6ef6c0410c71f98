// Copyright 2015 The Serulian Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package parser

import (
	"strconv"
	"strings"

	"github.com/dennwc/genbind/ast"
)

// Parse parses the given WebIDL source into a parse tree.
// Syntax errors are attached to the nodes they occurred in; see ParseFile
// for a variant that reports them as an error.
func Parse(input string) *ast.File {
	f, _ := parse(input)
	return f
}

func parse(input string) (*ast.File, []*ast.ErrorNode) {
	parser := newParser(input)
	f := parser.consumeTopLevel()
	return f, parser.errors
}

// consumeTopLevel attempts to consume the top-level constructs of a WebIDL file.
func (p *sourceParser) consumeTopLevel() *ast.File {
	n := &ast.File{}
	defer p.node(n)()

	// Start at the first token.
	p.consumeToken()

Loop:
	for !p.isToken(tokenTypeEOF, tokenTypeError) {
		switch {
		case p.isToken(tokenTypeLeftBracket) || p.isIdentifier("interface") ||
			p.isIdentifier("partial") || p.isIdentifier("callback") ||
			p.isIdentifier("dictionary") || p.isIdentifier("enum") ||
			p.isIdentifier("typedef"):
			n.Declarations = append(n.Declarations, p.consumeDeclaration())
			continue
		case p.isToken(tokenTypeIdentifier):
			name := p.consumeIdentifier()
			if p.tryConsumeKeyword("implements") {
				impl := &ast.Implementation{Name: name}
				impl.Source = p.consumeIdentifier()
				n.Declarations = append(n.Declarations, impl)
				p.consume(tokenTypeSemicolon)
				continue
			} else if p.tryConsumeKeyword("includes") {
				impl := &ast.Includes{Name: name}
				impl.Source = p.consumeIdentifier()
				n.Declarations = append(n.Declarations, impl)
				p.consume(tokenTypeSemicolon)
				continue
			}
		}
		p.emitError("Unexpected token at root level: %v", p.currentToken.kind)
		break Loop
	}

	return n
}

func (p *sourceParser) consumeInterfaceOrMixin(ann ast.Annotations, base *ast.Base, finish func()) ast.Decl {
	partial := p.tryConsumeKeyword("partial")
	if partial && p.isIdentifier("dictionary") {
		d := p.consumeDictionary(ann, base, finish)
		d.Partial = true
		return d
	}
	p.consumeKeyword("interface")
	if p.tryConsumeKeyword("mixin") {
		m := p.consumeMixin(ann, base, finish)
		m.Partial = partial
		return m
	}
	return p.consumeInterface(partial, false, ann, base, finish)
}

// consumeBody consumes the braced member list shared by interfaces and mixins.
func (p *sourceParser) consumeBody(members *[]*ast.Member, customOps *[]*ast.CustomOp, iterable **ast.Iterable) {
	// {
	p.consume(tokenTypeLeftBrace)

loop:
	for {
		if p.isToken(tokenTypeRightBrace, tokenTypeEOF, tokenTypeError) {
			break
		}

		if (p.isIdentifier("serializer") ||
			p.isIdentifier("jsonifier") ||
			p.isIdentifier("stringifier")) && p.isNextToken(tokenTypeSemicolon) {

			op := &ast.CustomOp{}
			finish := p.node(op)
			op.Name = p.consumeIdentifier()
			_, ok := p.consume(tokenTypeSemicolon)
			finish()

			*customOps = append(*customOps, op)

			if !ok {
				break loop
			}

			continue
		} else if p.isIdentifier("iterable") {
			p.consume(tokenTypeIdentifier)
			iter := &ast.Iterable{}
			finish := p.node(iter)
			p.consume(tokenTypeLeftTri)
			iter.Type = p.consumeType()
			if _, ok := p.tryConsume(tokenTypeComma); ok {
				iter.Key, iter.Type = iter.Type, p.consumeType()
			}
			p.consume(tokenTypeRightTri)
			finish()
			*iterable = iter
			_, ok := p.consume(tokenTypeSemicolon)
			if !ok {
				break loop
			}

			continue
		}
		*members = append(*members, p.consumeMember(false))

		if _, ok := p.consume(tokenTypeSemicolon); !ok {
			break
		}
	}

	// };
	p.consume(tokenTypeRightBrace)
	p.consume(tokenTypeSemicolon)
}

func (p *sourceParser) consumeInterface(partial, callback bool, ann ast.Annotations, base *ast.Base, finish func()) *ast.Interface {
	n := &ast.Interface{Annotations: ann, Partial: partial, Callback: callback}
	defer func() {
		finish()
		n.Base = *base
	}()

	n.Name = p.consumeIdentifier()

	if _, ok := p.tryConsume(tokenTypeColon); ok {
		n.Inherits = p.consumeIdentifier()
	}

	p.consumeBody(&n.Members, &n.CustomOps, &n.Iterable)
	return n
}

func (p *sourceParser) consumeMixin(ann ast.Annotations, base *ast.Base, finish func()) *ast.Mixin {
	n := &ast.Mixin{Annotations: ann}
	defer func() {
		finish()
		n.Base = *base
	}()

	n.Name = p.consumeIdentifier()

	if _, ok := p.tryConsume(tokenTypeColon); ok {
		n.Inherits = p.consumeIdentifier()
	}

	p.consumeBody(&n.Members, &n.CustomOps, &n.Iterable)
	return n
}

func (p *sourceParser) consumeDictionary(ann ast.Annotations, base *ast.Base, finish func()) *ast.Dictionary {
	n := &ast.Dictionary{Annotations: ann}
	defer func() {
		finish()
		n.Base = *base
	}()
	p.consumeKeyword("dictionary")

	n.Name = p.consumeIdentifier()
	if _, ok := p.tryConsume(tokenTypeColon); ok {
		n.Inherits = p.consumeIdentifier()
	}

	// {
	p.consume(tokenTypeLeftBrace)
	for !p.isToken(tokenTypeRightBrace, tokenTypeEOF, tokenTypeError) {
		n.Members = append(n.Members, p.consumeMember(true))

		if _, ok := p.consume(tokenTypeSemicolon); !ok {
			break
		}
	}

	// };
	p.consume(tokenTypeRightBrace)
	p.consume(tokenTypeSemicolon)
	return n
}

func (p *sourceParser) consumeEnum(ann ast.Annotations, base *ast.Base, finish func()) *ast.Enum {
	n := &ast.Enum{Annotations: ann}
	defer func() {
		finish()
		n.Base = *base
	}()
	p.consumeKeyword("enum")
	n.Name = p.consumeIdentifier()

	// {
	p.consume(tokenTypeLeftBrace)
	for !p.isToken(tokenTypeRightBrace, tokenTypeEOF, tokenTypeError) {
		if len(n.Values) != 0 {
			if _, ok := p.tryConsume(tokenTypeComma); !ok {
				break
			}
			// trailing comma
			if p.isToken(tokenTypeRightBrace) {
				break
			}
		}
		n.Values = append(n.Values, p.consumeLiteral())
	}
	// };
	p.consume(tokenTypeRightBrace)
	p.consume(tokenTypeSemicolon)
	return n
}

func (p *sourceParser) consumeTypedef(ann ast.Annotations, base *ast.Base, finish func()) *ast.Typedef {
	n := &ast.Typedef{Annotations: ann}
	defer func() {
		finish()
		n.Base = *base
	}()
	p.consumeKeyword("typedef")
	n.Type = p.consumeType()
	n.Name = p.consumeIdentifier()
	p.consume(tokenTypeSemicolon)
	return n
}

// consumeDeclaration attempts to consume a declaration, with optional attributes.
func (p *sourceParser) consumeDeclaration() ast.Decl {
	base := &ast.Base{}
	finish := p.node(base)
	ann := p.tryConsumeAnnotations()
	switch {
	case p.isIdentifier("enum"):
		return p.consumeEnum(ann, base, finish)
	case p.isIdentifier("typedef"):
		return p.consumeTypedef(ann, base, finish)
	case p.isIdentifier("callback"):
		_ = p.consumeIdentifier()
		if p.tryConsumeKeyword("interface") {
			return p.consumeInterface(false, true, ann, base, finish)
		}
		name := p.consumeIdentifier()
		p.consume(tokenTypeEquals)
		ret := p.consumeType()
		par := p.consumeParameters()
		p.consume(tokenTypeSemicolon)
		finish()
		return &ast.Callback{Base: *base, Name: name, Annotations: ann, Return: ret, Parameters: par}
	case p.isIdentifier("interface") || p.isIdentifier("partial"):
		return p.consumeInterfaceOrMixin(ann, base, finish)
	case p.isIdentifier("dictionary"):
		return p.consumeDictionary(ann, base, finish)
	default:
		p.emitError("Expected interface or dictionary, got: %v", p.currentToken.kind)
		// first, consume until '{'
		for !p.isToken(tokenTypeLeftBrace, tokenTypeEOF, tokenTypeError) {
			p.consumeToken()
		}
		// then consume until '}'
		for !p.isToken(tokenTypeRightBrace, tokenTypeEOF, tokenTypeError) {
			p.consumeToken()
		}
		p.consume(tokenTypeRightBrace)
		p.tryConsume(tokenTypeSemicolon)
		finish()
		return &ast.Interface{Base: *base}
	}
}

// consumeMember attempts to consume a member definition in a declaration.
func (p *sourceParser) consumeMember(dict bool) *ast.Member {
	n := &ast.Member{}
	defer p.node(n)()

	n.Annotations = p.tryConsumeAnnotations()
	n.Attribute = dict

	// getter/setter/deleter
	if p.isIdentifier("getter") || p.isIdentifier("setter") || p.isIdentifier("deleter") {
		n.Specialization = p.consumeIdentifier()
	} else if p.tryConsumeKeyword("stringifier") {
		n.Specialization = "stringifier"
	}

	if p.tryConsumeKeyword("const") {
		n.Const = true
	}

	if p.tryConsumeKeyword("static") {
		n.Static = true
	}

	// inherit attribute
	p.tryConsumeKeyword("inherit")

	if p.tryConsumeKeyword("readonly") {
		n.Readonly = true
	}

	if p.tryConsumeKeyword("required") {
		n.Required = true
	}

	if p.tryConsumeKeyword("attribute") {
		n.Attribute = true
	}

	if len(n.Annotations) == 0 {
		n.Annotations = p.tryConsumeAnnotations()
	}

	// Consume the type of the member.
	n.Type = p.consumeType()

	// Consume the member's name.
	n.Name, _ = p.tryConsumeIdentifier()

	// If not an attribute, consume the parameters of the member.
	if !n.Attribute && !n.Const {
		n.Parameters = p.consumeParameters()
	}
	n.Init = p.tryConsumeDefaultValue()
	return n
}

// tryConsumeAnnotations consumes any annotations found on the parent node.
func (p *sourceParser) tryConsumeAnnotations() (out ast.Annotations) {
	for {
		// [
		if _, ok := p.tryConsume(tokenTypeLeftBracket); !ok {
			return
		}

		for {
			// Foo()
			out = append(out, p.consumeAnnotationPart())

			// ,
			if _, ok := p.tryConsume(tokenTypeComma); !ok {
				break
			}
		}

		// ]
		if _, ok := p.consume(tokenTypeRightBracket); !ok {
			return
		}
	}
}

// consumeAnnotationPart consumes an annotation, as found within a set of brackets `[]`.
func (p *sourceParser) consumeAnnotationPart() *ast.Annotation {
	n := &ast.Annotation{}
	defer p.node(n)()

	// Consume the name of the annotation.
	n.Name = p.consumeIdentifier()

	// "="
	if _, ok := p.tryConsume(tokenTypeEquals); ok {
		// Consume (optional) value.

		// "("
		if list, ok := p.tryConsumeIdentifiersList(); ok {
			n.Values = list
		} else if tok, ok := p.tryConsume(tokenTypeString, tokenTypeNumber); ok {
			n.Value = tok.value
		} else {
			n.Value = p.consumeIdentifier()
			// [NamedConstructor=Image(unsigned long width)]
			if p.isToken(tokenTypeLeftParen) {
				n.Parameters = p.consumeParameters()
			}
		}
	} else if p.isToken(tokenTypeLeftParen) {
		// Consume (optional) parameters.
		n.Parameters = p.consumeParameters()
	}

	return n
}

func (p *sourceParser) tryConsumeIdentifiersList() ([]string, bool) {
	// "("
	_, ok := p.tryConsume(tokenTypeLeftParen)
	if !ok {
		return nil, false
	}
	// identifier list
	var list []string
	for {
		list = append(list, p.consumeIdentifier())
		// ","
		if _, ok := p.tryConsume(tokenTypeComma); !ok {
			break
		}
	}
	// ")"
	p.consume(tokenTypeRightParen)
	return list, true
}

// expandedTypeKeywords defines the keywords that form the prefixes for expanded types:
// two-identifier type names.
var expandedTypeKeywords = map[string][]string{
	"unsigned":     {"short", "long"},
	"long":         {"long"},
	"unrestricted": {"float", "double"},
}

func (p *sourceParser) consumeType() ast.Type {
	base := &ast.Base{}
	finish := p.node(base)

	// [EnforceRange] long
	p.tryConsumeAnnotations()

	var tp ast.Type
	if p.tryConsumeKeyword("any") {
		finish()
		tp = &ast.AnyType{Base: *base}
	} else if p.tryConsumeKeyword("sequence") {
		seq := &ast.SequenceType{}
		p.consume(tokenTypeLeftTri)
		seq.Elem = p.consumeType()
		p.consume(tokenTypeRightTri)
		finish()
		seq.Base = *base
		tp = seq
	} else if _, ok := p.tryConsume(tokenTypeLeftParen); ok {
		// "("
		var types []ast.Type
		for {
			types = append(types, p.consumeType())
			if !p.tryConsumeKeyword("or") {
				break
			}
		}
		// ")"
		p.consume(tokenTypeRightParen)
		finish()
		tp = &ast.UnionType{Base: *base, Types: types}
	} else {
		tp = p.consumeNamedType(base, finish)
	}

	if _, ok := p.tryConsume(tokenTypeQuestionMark); ok {
		nb := *tp.NodeBase()
		nb.End++
		return &ast.NullableType{Base: nb, Type: tp}
	}
	return tp
}

func (p *sourceParser) consumeNamedType(base *ast.Base, finish func()) ast.Type {
	identifier := p.consumeIdentifier()
	typeName := identifier

	// If the identifier is the beginning of a possible expanded type name, check for the
	// secondary portion.
	if secondaries, ok := expandedTypeKeywords[identifier]; ok {
		for _, secondary := range secondaries {
			if p.isToken(tokenTypeIdentifier) && p.currentToken.value == secondary {
				typeName += " " + secondary
				p.consume(tokenTypeIdentifier)
				break
			}
		}
		// unsigned long long
		if typeName == "unsigned long" && p.isIdentifier("long") {
			typeName += " long"
			p.consume(tokenTypeIdentifier)
		}
	}

	// Promise<T>, record<K, V>
	if _, ok := p.tryConsume(tokenTypeLeftTri); ok {
		pt := &ast.ParametrizedType{Name: typeName}
		for {
			pt.Elems = append(pt.Elems, p.consumeType())
			if _, ok := p.tryConsume(tokenTypeComma); !ok {
				break
			}
		}
		p.consume(tokenTypeRightTri)
		finish()
		pt.Base = *base
		return pt
	}
	finish()
	return &ast.TypeName{Base: *base, Name: typeName}
}

// consumeParameter attempts to consume a parameter.
func (p *sourceParser) consumeParameter() *ast.Parameter {
	n := &ast.Parameter{}
	defer p.node(n)()
	n.Annotations = p.tryConsumeAnnotations()

	// optional
	if p.tryConsumeKeyword("optional") {
		n.Optional = true
	}

	// Consume the parameter's type.
	n.Type = p.consumeType()
	if _, ok := p.tryConsume(tokenTypeVariadic); ok {
		n.Variadic = true
	}

	// Consume the parameter's name.
	n.Name = p.consumeIdentifier()

	n.Init = p.tryConsumeDefaultValue()

	return n
}

func (p *sourceParser) tryConsumeDefaultValue() ast.Literal {
	if _, ok := p.tryConsume(tokenTypeEquals); ok {
		return p.consumeLiteral()
	}
	return nil
}

// consumeLiteral consumes a constant or default value.
func (p *sourceParser) consumeLiteral() ast.Literal {
	base := &ast.Base{}
	finish := p.node(base)
	lit := p.consumeLiteralValue(base)
	finish()
	*lit.NodeBase() = *base
	return lit
}

func (p *sourceParser) consumeLiteralValue(base *ast.Base) ast.Literal {
	switch {
	case p.isToken(tokenTypeNumber):
		raw := p.currentToken.value
		p.consumeToken()
		if v, err := strconv.ParseInt(raw, 0, 64); err == nil {
			return &ast.IntLiteral{Base: *base, Value: v, Raw: raw}
		}
		if v, err := strconv.ParseUint(raw, 0, 64); err == nil {
			return &ast.IntLiteral{Base: *base, Large: true, Uint: v, Raw: raw}
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			p.emitError("Invalid number literal %q: %v", raw, err)
		}
		return &ast.FloatLiteral{Base: *base, Value: v, Raw: raw}
	case p.isToken(tokenTypeString):
		raw := p.currentToken.value
		p.consumeToken()
		s, err := strconv.Unquote(raw)
		if err != nil {
			s = strings.Trim(raw, `"`)
		}
		return &ast.StringLiteral{Base: *base, Value: s}
	case p.isToken(tokenTypeLeftBracket):
		p.consumeToken()
		p.consume(tokenTypeRightBracket)
		return &ast.SequenceLiteral{Base: *base}
	case p.isToken(tokenTypeLeftBrace):
		p.consumeToken()
		p.consume(tokenTypeRightBrace)
		return &ast.DictionaryLiteral{Base: *base}
	case p.tryConsumeKeyword("true"):
		return &ast.BoolLiteral{Base: *base, Value: true}
	case p.tryConsumeKeyword("false"):
		return &ast.BoolLiteral{Base: *base, Value: false}
	case p.tryConsumeKeyword("null"):
		return &ast.NullLiteral{Base: *base}
	}
	name := p.consumeIdentifier()
	return &ast.IdentLiteral{Base: *base, Name: name}
}

// consumeParameters attempts to consume a set of parameters.
func (p *sourceParser) consumeParameters() (out []*ast.Parameter) {
	if _, ok := p.consume(tokenTypeLeftParen); !ok {
		return
	}
	if _, ok := p.tryConsume(tokenTypeRightParen); ok {
		return
	}

	for {
		out = append(out, p.consumeParameter())
		if _, ok := p.tryConsume(tokenTypeRightParen); ok {
			return
		}

		if _, ok := p.consume(tokenTypeComma); !ok {
			return
		}
	}
}
