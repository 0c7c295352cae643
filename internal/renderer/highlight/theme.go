package highlight

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
)

// DefaultThemeName is the chroma style used when none is configured.
const DefaultThemeName = "monokai"

// Theme maps token types to terminal styles.
type Theme struct {
	Name    string
	Default tcell.Style
	styles  map[TokenType]tcell.Style
}

// representative chroma token for each TokenType.
var chromaTokens = map[TokenType]chroma.TokenType{
	TokenText:        chroma.Text,
	TokenKeyword:     chroma.Keyword,
	TokenDataType:    chroma.KeywordType,
	TokenName:        chroma.Name,
	TokenAttribute:   chroma.NameAttribute,
	TokenString:      chroma.LiteralString,
	TokenNumber:      chroma.LiteralNumber,
	TokenOperator:    chroma.Operator,
	TokenPunctuation: chroma.Punctuation,
	TokenComment:     chroma.CommentSingle,
}

// NewTheme builds a theme from a chroma style. Unknown names fall back to
// chroma's default style.
func NewTheme(name string) *Theme {
	style := styles.Get(name)
	bg := style.Get(chroma.Background)

	t := &Theme{
		Name:    style.Name,
		Default: entryStyle(tcell.StyleDefault, bg),
		styles:  make(map[TokenType]tcell.Style, len(chromaTokens)),
	}
	for typ, ct := range chromaTokens {
		t.styles[typ] = entryStyle(t.Default, style.Get(ct))
	}
	return t
}

// Plain returns a theme that applies no colours.
func Plain() *Theme {
	return &Theme{
		Name:    "plain",
		Default: tcell.StyleDefault,
		styles:  map[TokenType]tcell.Style{},
	}
}

// Style returns the style for a token type.
func (t *Theme) Style(typ TokenType) tcell.Style {
	if s, ok := t.styles[typ]; ok {
		return s
	}
	return t.Default
}

func entryStyle(base tcell.Style, e chroma.StyleEntry) tcell.Style {
	s := base
	if e.Colour.IsSet() {
		s = s.Foreground(toColor(e.Colour))
	}
	if e.Background.IsSet() {
		s = s.Background(toColor(e.Background))
	}
	if e.Bold == chroma.Yes {
		s = s.Bold(true)
	}
	if e.Italic == chroma.Yes {
		s = s.Italic(true)
	}
	if e.Underline == chroma.Yes {
		s = s.Underline(true)
	}
	return s
}

func toColor(c chroma.Colour) tcell.Color {
	return tcell.NewRGBColor(int32(c.Red()), int32(c.Green()), int32(c.Blue()))
}
