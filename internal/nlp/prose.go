package nlp

import (
	"fmt"

	"github.com/jdkato/prose/v2"
)

// ProseEngine annotates text with the prose NLP library. The model data
// is embedded in the library and loaded lazily on first use; the engine
// itself carries no mutable state and is safe for concurrent use.
type ProseEngine struct{}

// NewProseEngine returns a prose-backed engine.
func NewProseEngine() *ProseEngine {
	return &ProseEngine{}
}

// Annotate tokenizes, tags and extracts entities from text.
func (e *ProseEngine) Annotate(text string) (*Annotation, error) {
	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	ann := &Annotation{}
	for _, tok := range doc.Tokens() {
		ann.Tokens = append(ann.Tokens, annotateToken(tok.Text, tok.Tag))
	}
	for _, ent := range doc.Entities() {
		ann.Spans = append(ann.Spans, Span{Text: ent.Text, Label: ent.Label})
	}
	return ann, nil
}

// Warmup forces the model to load so startup fails fast when the model
// data is unusable.
func (e *ProseEngine) Warmup() error {
	_, err := e.Annotate("The quick brown fox jumps over the lazy dog.")
	return err
}
