package token

import (
	"slicec/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwModule && t.Kind <= KwUnchecked
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsPrimitive reports whether the token names a primitive type.
func (t Token) IsPrimitive() bool {
	return t.Kind >= KwBool && t.Kind <= KwAnyClass
}

// DocText returns the text of the doc comment lines in Leading, in source
// order, with the "///" sentinel and one following space stripped.
func (t Token) DocText() []string {
	var lines []string
	for _, tr := range t.Leading {
		if tr.Kind != TriviaDocLine {
			continue
		}
		text := tr.Text
		if len(text) >= 3 && text[:3] == "///" {
			text = text[3:]
		}
		if len(text) > 0 && text[0] == ' ' {
			text = text[1:]
		}
		lines = append(lines, text)
	}
	return lines
}

// DocSpan returns the covering span of the doc comment lines in Leading.
// The second return value is false if there are none.
func (t Token) DocSpan() (source.Span, bool) {
	var sp source.Span
	found := false
	for _, tr := range t.Leading {
		if tr.Kind != TriviaDocLine {
			continue
		}
		if !found {
			sp = tr.Span
			found = true
		} else {
			sp = sp.Cover(tr.Span)
		}
	}
	return sp, found
}
