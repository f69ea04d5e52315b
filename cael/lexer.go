package cael

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type lexer struct {
	input string

	offset int
	width  int

	ch rune

	tokens   []Token
	warnings []*Error
}

func newLexer(input string) *lexer {
	l := &lexer{input: input}
	l.readRune()
	return l
}

func (l *lexer) readRune() {
	if l.offset >= len(l.input) {
		l.width = 0
		l.ch = 0
		l.offset = len(l.input) + 1
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.offset:])
	l.width = w
	l.offset += w
	l.ch = r
}

func (l *lexer) atEnd() bool {
	return l.offset > len(l.input)
}

// Tokenize scans source in a single left-to-right pass. Unrecognized
// characters are recorded as LexicalWarning entries on the stream and skipped;
// an unterminated string literal is the only fatal lexing error.
func Tokenize(source string) (*TokenStream, error) {
	l := newLexer(source)
	if err := l.run(); err != nil {
		return nil, err
	}
	return newTokenStream(l.tokens, l.warnings), nil
}

func (l *lexer) run() error {
	for !l.atEnd() {
		switch {
		case l.ch < utf8.RuneSelf && punctuation[byte(l.ch)] != "":
			l.emit(punctuation[byte(l.ch)], string(l.ch))
			l.readRune()
		case l.ch == '"':
			literal, ok := l.readString()
			if !ok {
				return newError(UnterminatedString, StageLexing, "unclosed string literal %q", literal)
			}
			l.emit(tokenString, literal)
		case isLetter(l.ch):
			literal := l.readWhile(isLetter)
			l.emit(lookupIdent(literal), literal)
		case isDigit(l.ch):
			l.emit(tokenNumber, l.readWhile(isDigit))
		case unicode.IsSpace(l.ch):
			l.readRune()
		default:
			l.warnings = append(l.warnings, newError(LexicalWarning, StageLexing, "invalid character %q in source", l.ch))
			l.readRune()
		}
	}
	l.emit(tokenEOF, "EOF")
	return nil
}

func (l *lexer) emit(tt TokenType, literal string) {
	l.tokens = append(l.tokens, Token{Type: tt, Literal: literal})
}

func (l *lexer) readWhile(accept func(rune) bool) string {
	var sb strings.Builder
	for !l.atEnd() && accept(l.ch) {
		sb.WriteRune(l.ch)
		l.readRune()
	}
	return sb.String()
}

// readString consumes a quoted literal verbatim. The returned bool is false
// when input ends before the closing quote.
func (l *lexer) readString() (string, bool) {
	var sb strings.Builder
	l.readRune()
	for !l.atEnd() {
		if l.ch == '"' {
			l.readRune()
			return sb.String(), true
		}
		sb.WriteRune(l.ch)
		l.readRune()
	}
	return sb.String(), false
}

// isLetter accepts ASCII letters only; identifiers contain no digits.
func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
