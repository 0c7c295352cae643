// Package highlight provides syntax highlighting for the renderer.
//
// Source lines are tokenised with chroma lexers and mapped onto a small set
// of token types that a Theme turns into terminal styles.
package highlight

// TokenType classifies a span of source text.
type TokenType uint8

const (
	TokenText TokenType = iota
	TokenKeyword
	TokenDataType
	TokenName
	TokenAttribute
	TokenString
	TokenNumber
	TokenOperator
	TokenPunctuation
	TokenComment
)

var tokenNames = [...]string{
	TokenText:        "text",
	TokenKeyword:     "keyword",
	TokenDataType:    "type",
	TokenName:        "name",
	TokenAttribute:   "attribute",
	TokenString:      "string",
	TokenNumber:      "number",
	TokenOperator:    "operator",
	TokenPunctuation: "punctuation",
	TokenComment:     "comment",
}

// String returns the token type name.
func (t TokenType) String() string {
	if int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return "unknown"
}

// Token is a highlighted span of a line.
// Start and End are rune offsets, End exclusive.
type Token struct {
	Start int
	End   int
	Type  TokenType
}

// Len returns the token length in runes.
func (t Token) Len() int {
	return t.End - t.Start
}

// TypeAt returns the type of the token covering rune offset col.
func TypeAt(tokens []Token, col int) TokenType {
	for _, tok := range tokens {
		if col >= tok.Start && col < tok.End {
			return tok.Type
		}
	}
	return TokenText
}
