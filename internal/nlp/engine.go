// Package nlp provides the linguistic-analysis capability the analyzer
// depends on: tokenization, part-of-speech tags, stop-word flags and
// named-entity spans. The concrete engine is prose; callers depend only
// on the Engine interface.
package nlp

import (
	"errors"
	"strings"
	"unicode"
)

// ErrModelUnavailable indicates the underlying NLP model failed to load
// or respond. Extraction must fail outright rather than return partial
// signals.
var ErrModelUnavailable = errors.New("nlp model unavailable")

// Token is a single token with its Penn Treebank tag.
type Token struct {
	Text     string
	Tag      string
	Stopword bool
	Punct    bool
}

// Span is a named-entity mention with its type label (PERSON, GPE, ...).
type Span struct {
	Text  string
	Label string
}

// Annotation is the full linguistic annotation of one text.
type Annotation struct {
	Tokens []Token
	Spans  []Span
}

// Engine produces linguistic annotations. Implementations must be safe
// for concurrent use; the analyzer calls Annotate once per text.
type Engine interface {
	Annotate(text string) (*Annotation, error)
}

// IsNounTag reports whether a Penn tag marks a common noun.
// Proper nouns (NNP, NNPS) are excluded; those surface as entities.
func IsNounTag(tag string) bool {
	return tag == "NN" || tag == "NNS"
}

// isPunct reports whether a token consists entirely of punctuation
// and symbol runes.
func isPunct(text string) bool {
	if text == "" {
		return true
	}
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func annotateToken(text, tag string) Token {
	return Token{
		Text:     text,
		Tag:      tag,
		Stopword: IsStopword(strings.ToLower(text)),
		Punct:    isPunct(text),
	}
}
