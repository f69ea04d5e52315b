package cael

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func tokenizeAll(t *testing.T, source string) *TokenStream {
	t.Helper()
	stream, err := Tokenize(source)
	if err != nil {
		t.Fatalf("tokenize %q: %v", source, err)
	}
	return stream
}

func TestTokenizeDeclaration(t *testing.T) {
	stream := tokenizeAll(t, `let x = 5;`)
	want := []Token{
		{Type: tokenLet, Literal: "let"},
		{Type: tokenIdent, Literal: "x"},
		{Type: tokenAssign, Literal: "="},
		{Type: tokenNumber, Literal: "5"},
		{Type: tokenSemicolon, Literal: ";"},
		{Type: tokenEOF, Literal: "EOF"},
	}
	if diff := cmp.Diff(want, stream.Tokens()); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
	if len(stream.Warnings()) != 0 {
		t.Fatalf("unexpected warnings: %v", stream.Warnings())
	}
}

func TestTokenizeKeywordsAndPunctuation(t *testing.T) {
	stream := tokenizeAll(t, "const print if else for {a: b.c}, (1 % 2 * 3 / 4 - 5 + 6 < 7 > 8)")
	var got []TokenType
	for _, tok := range stream.Tokens() {
		got = append(got, tok.Type)
	}
	want := []TokenType{
		tokenConst, tokenPrint, tokenIf, tokenElse, tokenFor,
		tokenLBrace, tokenIdent, tokenColon, tokenIdent, tokenDot, tokenIdent, tokenRBrace, tokenComma,
		tokenLParen, tokenNumber, tokenPercent, tokenNumber, tokenAsterisk, tokenNumber, tokenSlash,
		tokenNumber, tokenMinus, tokenNumber, tokenPlus, tokenNumber, tokenLT, tokenNumber, tokenGT,
		tokenNumber, tokenRParen, tokenEOF,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("token types mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeStringIsVerbatim(t *testing.T) {
	stream := tokenizeAll(t, `print("hello,  world\n");`)
	tokens := stream.Tokens()
	if tokens[2].Type != tokenString {
		t.Fatalf("expected string token, got %v", tokens[2].Type)
	}
	if tokens[2].Literal != `hello,  world\n` {
		t.Fatalf("unexpected string literal %q", tokens[2].Literal)
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, err := Tokenize(`let s = "open;`)
	if err == nil {
		t.Fatalf("expected unterminated string error")
	}
	if !errors.Is(err, ErrUnterminatedString) {
		t.Fatalf("expected UnterminatedString, got %v", err)
	}
	var cerr *Error
	if !errors.As(err, &cerr) || cerr.Stage != StageLexing {
		t.Fatalf("expected lexing stage error, got %#v", err)
	}
}

func TestTokenizeInvalidCharacterWarnsAndAdvances(t *testing.T) {
	stream := tokenizeAll(t, "let @x = 1;#")
	warnings := stream.Warnings()
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d", len(warnings))
	}
	for _, w := range warnings {
		if w.Kind != LexicalWarning {
			t.Fatalf("expected LexicalWarning, got %v", w.Kind)
		}
	}
	tokens := stream.Tokens()
	if tokens[1].Literal != "x" {
		t.Fatalf("scanner did not resume after invalid character: %v", tokens)
	}
	if tokens[len(tokens)-1].Type != tokenEOF {
		t.Fatalf("expected trailing EOF")
	}
}

func TestTokenizeSplitsLettersAndDigits(t *testing.T) {
	stream := tokenizeAll(t, "abc123 5.5")
	want := []Token{
		{Type: tokenIdent, Literal: "abc"},
		{Type: tokenNumber, Literal: "123"},
		{Type: tokenNumber, Literal: "5"},
		{Type: tokenDot, Literal: "."},
		{Type: tokenNumber, Literal: "5"},
		{Type: tokenEOF, Literal: "EOF"},
	}
	if diff := cmp.Diff(want, stream.Tokens()); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeEmptySource(t *testing.T) {
	stream := tokenizeAll(t, "")
	if stream.Len() != 1 || stream.Peek().Type != tokenEOF {
		t.Fatalf("expected lone EOF, got %v", stream.Tokens())
	}
}

func TestTokenStreamDrainsToEOF(t *testing.T) {
	stream := tokenizeAll(t, "x")
	if tok := stream.Next(); tok.Literal != "x" {
		t.Fatalf("expected x, got %v", tok)
	}
	for i := 0; i < 3; i++ {
		if tok := stream.Next(); tok.Type != tokenEOF {
			t.Fatalf("expected EOF after drain, got %v", tok)
		}
	}
	if stream.Len() != 0 {
		t.Fatalf("expected empty stream, got %d", stream.Len())
	}
	if len(stream.Tokens()) != 2 {
		t.Fatalf("snapshot should keep consumed tokens, got %v", stream.Tokens())
	}
}

func TestKeywordsMatchTable(t *testing.T) {
	for _, kw := range Keywords() {
		if lookupIdent(kw) == tokenIdent {
			t.Fatalf("keyword %q not in table", kw)
		}
	}
	if len(Keywords()) != len(keywords) {
		t.Fatalf("keyword list and table differ")
	}
}
