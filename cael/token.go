package cael

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	tokenEOF TokenType = "EOF"

	tokenIdent  TokenType = "IDENT"
	tokenNumber TokenType = "NUMBER"
	tokenString TokenType = "STRING"

	tokenAssign   TokenType = "="
	tokenPlus     TokenType = "+"
	tokenMinus    TokenType = "-"
	tokenAsterisk TokenType = "*"
	tokenSlash    TokenType = "/"
	tokenPercent  TokenType = "%"
	tokenLT       TokenType = "<"
	tokenGT       TokenType = ">"

	tokenLParen    TokenType = "("
	tokenRParen    TokenType = ")"
	tokenLBrace    TokenType = "{"
	tokenRBrace    TokenType = "}"
	tokenSemicolon TokenType = ";"
	tokenComma     TokenType = ","
	tokenDot       TokenType = "."
	tokenColon     TokenType = ":"

	tokenLet   TokenType = "LET"
	tokenConst TokenType = "CONST"
	tokenPrint TokenType = "PRINT"
	tokenIf    TokenType = "IF"
	tokenElse  TokenType = "ELSE"
	tokenFor   TokenType = "FOR"
)

// Token is a single lexeme. Tokens carry no source position.
type Token struct {
	Type    TokenType
	Literal string
}

func (t Token) String() string {
	if t.Type == tokenEOF {
		return "end of input"
	}
	return t.Literal
}

var keywords = map[string]TokenType{
	"let":   tokenLet,
	"const": tokenConst,
	"print": tokenPrint,
	"if":    tokenIf,
	"else":  tokenElse,
	"for":   tokenFor,
}

var punctuation = map[byte]TokenType{
	'=': tokenAssign,
	'+': tokenPlus,
	'-': tokenMinus,
	'*': tokenAsterisk,
	'/': tokenSlash,
	'%': tokenPercent,
	'<': tokenLT,
	'>': tokenGT,
	'(': tokenLParen,
	')': tokenRParen,
	'{': tokenLBrace,
	'}': tokenRBrace,
	';': tokenSemicolon,
	',': tokenComma,
	'.': tokenDot,
	':': tokenColon,
}

func lookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return tokenIdent
}

// Keywords returns the reserved words in a stable order.
func Keywords() []string {
	return []string{"let", "const", "print", "if", "else", "for"}
}
