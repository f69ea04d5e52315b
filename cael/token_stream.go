package cael

import "github.com/edwingeng/deque"

// TokenStream is the lexer's output: an ordered queue of tokens the parser
// drains from the front. The final token is always EOF.
type TokenStream struct {
	queue    deque.Deque
	tokens   []Token
	warnings []*Error
}

func newTokenStream(tokens []Token, warnings []*Error) *TokenStream {
	queue := deque.NewDeque()
	for _, tok := range tokens {
		queue.PushBack(tok)
	}
	return &TokenStream{queue: queue, tokens: tokens, warnings: warnings}
}

// Peek returns the next token without consuming it. A drained stream keeps
// reporting EOF.
func (s *TokenStream) Peek() Token {
	if s.queue.Empty() {
		return Token{Type: tokenEOF, Literal: "EOF"}
	}
	return s.queue.Front().(Token)
}

// Next consumes and returns the next token.
func (s *TokenStream) Next() Token {
	if s.queue.Empty() {
		return Token{Type: tokenEOF, Literal: "EOF"}
	}
	return s.queue.PopFront().(Token)
}

// Len is the number of tokens not yet consumed.
func (s *TokenStream) Len() int {
	return s.queue.Len()
}

// Tokens returns every token the lexer produced, consumed or not.
func (s *TokenStream) Tokens() []Token {
	out := make([]Token, len(s.tokens))
	copy(out, s.tokens)
	return out
}

// Warnings returns the recoverable lexical warnings recorded while scanning.
func (s *TokenStream) Warnings() []*Error {
	out := make([]*Error, len(s.warnings))
	copy(out, s.warnings)
	return out
}
