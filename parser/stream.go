package parser

// commentedLexeme is a significant token with the comments preceding it.
type commentedLexeme struct {
	lexeme
	comments []string
}

// tokenStream yields the significant tokens of a lexer. Whitespace is
// dropped and comments are attached to the token that follows them.
type tokenStream struct {
	lex *lexer
	// ahead holds tokens read for lookahead but not yet consumed.
	ahead []commentedLexeme
}

func newTokenStream(l *lexer) *tokenStream {
	return &tokenStream{lex: l}
}

// read scans the next significant token from the lexer.
func (s *tokenStream) read() commentedLexeme {
	var comments []string
	for {
		tok := s.lex.nextToken()
		switch tok.kind {
		case tokenTypeWhitespace:
		case tokenTypeComment:
			comments = append(comments, tok.value)
		default:
			return commentedLexeme{lexeme: tok, comments: comments}
		}
	}
}

// next consumes the next significant token.
func (s *tokenStream) next() commentedLexeme {
	if len(s.ahead) == 0 {
		return s.read()
	}
	tok := s.ahead[0]
	s.ahead = s.ahead[1:]
	return tok
}

// peek returns the token n positions after the next one without consuming
// anything. peek(0) is the token next would return.
func (s *tokenStream) peek(n int) commentedLexeme {
	for len(s.ahead) <= n {
		s.ahead = append(s.ahead, s.read())
	}
	return s.ahead[n]
}
