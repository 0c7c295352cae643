package highlight

import (
	"errors"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// ErrUnknownLanguage is returned when no lexer exists for a language.
var ErrUnknownLanguage = errors.New("unknown language")

// Highlighter tokenises lines of one language.
type Highlighter struct {
	mu       sync.Mutex
	language string
	lexer    chroma.Lexer
	cache    map[string][]Token
	maxCache int
}

// New returns a highlighter for language, such as "vhdl".
func New(language string) (*Highlighter, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		return nil, ErrUnknownLanguage
	}
	return &Highlighter{
		language: strings.ToLower(language),
		lexer:    chroma.Coalesce(lexer),
		cache:    make(map[string][]Token),
		maxCache: 1024,
	}, nil
}

// ForFile returns a highlighter chosen by file name, or a plain-text one.
func ForFile(filename string) *Highlighter {
	lexer := lexers.Match(filename)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return &Highlighter{
		language: strings.ToLower(lexer.Config().Name),
		lexer:    chroma.Coalesce(lexer),
		cache:    make(map[string][]Token),
		maxCache: 1024,
	}
}

// Language returns the lexer's language name in lower case.
func (h *Highlighter) Language() string {
	return h.language
}

// HighlightLine tokenises a single line.
// VHDL has no multi-line constructs, so lines are independent.
func (h *Highlighter) HighlightLine(line string) []Token {
	h.mu.Lock()
	defer h.mu.Unlock()

	if toks, ok := h.cache[line]; ok {
		return toks
	}

	toks := h.tokenise(line)
	if len(h.cache) >= h.maxCache {
		h.cache = make(map[string][]Token)
	}
	h.cache[line] = toks
	return toks
}

func (h *Highlighter) tokenise(line string) []Token {
	it, err := h.lexer.Tokenise(nil, line)
	if err != nil {
		return []Token{{Start: 0, End: len([]rune(line)), Type: TokenText}}
	}

	limit := len([]rune(line))
	var toks []Token
	pos := 0
	for tok := it(); tok != chroma.EOF; tok = it() {
		n := len([]rune(tok.Value))
		if n == 0 {
			continue
		}
		start, end := pos, pos+n
		pos = end
		if start >= limit {
			break
		}
		if end > limit {
			end = limit
		}

		typ := classify(tok.Type)
		if last := len(toks) - 1; last >= 0 && toks[last].Type == typ && toks[last].End == start {
			toks[last].End = end
			continue
		}
		toks = append(toks, Token{Start: start, End: end, Type: typ})
	}
	return toks
}

// classify maps a chroma token type onto TokenType.
func classify(t chroma.TokenType) TokenType {
	switch {
	case t.InCategory(chroma.Comment):
		return TokenComment
	case t == chroma.KeywordType || t == chroma.NameBuiltin:
		return TokenDataType
	case t.InCategory(chroma.Keyword):
		return TokenKeyword
	case t == chroma.NameAttribute:
		return TokenAttribute
	case t.InCategory(chroma.Name):
		return TokenName
	case t.InSubCategory(chroma.LiteralString):
		return TokenString
	case t.InSubCategory(chroma.LiteralNumber):
		return TokenNumber
	case t.InCategory(chroma.Operator):
		return TokenOperator
	case t == chroma.Punctuation:
		return TokenPunctuation
	default:
		return TokenText
	}
}
