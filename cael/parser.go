package cael

import (
	"fmt"
	"strings"
)

type parser struct {
	tokens *TokenStream
}

// Parse lexes and parses source into a Program. The first grammar violation
// is returned as a SyntaxError; lexical warnings are dropped, use Tokenize and
// ParseTokens to observe them.
func Parse(source string) (*Program, error) {
	stream, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	return ParseTokens(stream)
}

// ParseTokens drains stream into a Program.
func ParseTokens(stream *TokenStream) (*Program, error) {
	p := &parser{tokens: stream}
	return p.parseProgram()
}

func (p *parser) parseProgram() (*Program, error) {
	program := &Program{}
	for !p.atEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		program.Statements = append(program.Statements, stmt)
	}
	return program, nil
}

func (p *parser) current() Token {
	return p.tokens.Peek()
}

func (p *parser) atEnd() bool {
	return p.current().Type == tokenEOF
}

func (p *parser) at(types ...TokenType) bool {
	cur := p.current().Type
	for _, tt := range types {
		if cur == tt {
			return true
		}
	}
	return false
}

func (p *parser) advance() Token {
	return p.tokens.Next()
}

func (p *parser) expect(tt TokenType, what string) (Token, error) {
	if p.current().Type != tt {
		return Token{}, p.errorExpected(what)
	}
	return p.advance(), nil
}

func (p *parser) errorExpected(what string) error {
	return newError(SyntaxError, StageParsing, "expected %s, got %s", what, tokenLabel(p.current()))
}

func (p *parser) errorf(format string, args ...any) error {
	return newError(SyntaxError, StageParsing, format, args...)
}

func tokenLabel(tok Token) string {
	switch tok.Type {
	case tokenEOF:
		return "end of input"
	case tokenIdent:
		return fmt.Sprintf("identifier %q", tok.Literal)
	case tokenNumber:
		return fmt.Sprintf("number %s", tok.Literal)
	case tokenString:
		return fmt.Sprintf("string %q", tok.Literal)
	case tokenLet, tokenConst, tokenPrint, tokenIf, tokenElse, tokenFor:
		return fmt.Sprintf("'%s'", strings.ToLower(string(tok.Type)))
	default:
		return fmt.Sprintf("%q", tok.Literal)
	}
}
