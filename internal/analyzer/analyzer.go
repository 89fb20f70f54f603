// Package analyzer turns raw dream text into a SignalVector: sentiment,
// emotion scores, categorized entities, themes, intensity and stress.
// Analysis is a pure function of the text plus the injected nlp.Engine;
// nothing here holds state across calls.
package analyzer

import (
	"fmt"
	"math"
	"strings"

	"github.com/nmorrow/dream-server/internal/lexicon"
	"github.com/nmorrow/dream-server/internal/models"
	"github.com/nmorrow/dream-server/internal/nlp"
	"github.com/nmorrow/dream-server/internal/sentiment"
)

const (
	maxSymbols        = 10
	minSymbolLen      = 4
	emotionNormFactor = 0.1
)

// labelCategory maps NER type labels to entity categories. Labels not
// listed here fall through to "other".
var labelCategory = map[string]string{
	"PERSON": models.EntityPeople,
	"GPE":    models.EntityPlaces,
	"LOC":    models.EntityPlaces,
	"FAC":    models.EntityPlaces,
	"ORG":    models.EntityOrganizations,
}

func categoryForLabel(label string) string {
	if cat, ok := labelCategory[label]; ok {
		return cat
	}
	return models.EntityOther
}

// Analyzer extracts signal vectors from entry text.
type Analyzer struct {
	engine nlp.Engine
	scorer sentiment.Scorer
}

// New builds an analyzer around a linguistic engine and a sentiment
// scorer (normally the two-model ensemble).
func New(engine nlp.Engine, scorer sentiment.Scorer) *Analyzer {
	return &Analyzer{engine: engine, scorer: scorer}
}

// Analyze computes the full signal vector for one entry's text.
// Empty or whitespace-only text yields the zero vector; an engine
// failure returns an error and no vector.
func (a *Analyzer) Analyze(text string) (*models.SignalVector, error) {
	if strings.TrimSpace(text) == "" {
		return zeroVector(), nil
	}

	ann, err := a.engine.Annotate(text)
	if err != nil {
		return nil, fmt.Errorf("annotating entry text: %w", err)
	}

	lower := strings.ToLower(text)
	sent := a.scorer.Score(text)
	emotions := detectEmotions(lower, ann)

	return &models.SignalVector{
		Sentiment: sent,
		Emotions:  emotions,
		Entities:  extractEntities(ann),
		Themes:    identifyThemes(lower),
		Intensity: calculateIntensity(text, emotions),
		Stress:    detectStress(lower, sent),
	}, nil
}

// detectEmotions scores each lexicon category by keyword matches,
// normalized against the content word count.
func detectEmotions(lower string, ann *nlp.Annotation) map[string]float64 {
	wordCount := 0
	for _, tok := range ann.Tokens {
		if !tok.Stopword && !tok.Punct {
			wordCount++
		}
	}
	if wordCount == 0 {
		wordCount = 1
	}

	scores := make(map[string]float64, len(lexicon.EmotionOrder))
	for _, emotion := range lexicon.EmotionOrder {
		matches := 0
		for _, kw := range lexicon.EmotionKeywords[emotion] {
			if strings.Contains(lower, kw) {
				matches++
			}
		}
		score := math.Min(float64(matches)/(float64(wordCount)*emotionNormFactor), 1.0)
		scores[emotion] = sentiment.Round3(score)
	}
	return scores
}

// extractEntities buckets NER spans by type and pulls common nouns as
// dream symbols. Every category list is deduplicated.
func extractEntities(ann *nlp.Annotation) map[string][]string {
	entities := emptyEntities()

	seen := map[string]map[string]bool{}
	for _, cat := range models.EntityCategories {
		seen[cat] = map[string]bool{}
	}

	for _, span := range ann.Spans {
		name := strings.TrimSpace(span.Text)
		if name == "" {
			continue
		}
		cat := categoryForLabel(span.Label)
		if !seen[cat][name] {
			seen[cat][name] = true
			entities[cat] = append(entities[cat], name)
		}
	}

	for _, tok := range ann.Tokens {
		if !nlp.IsNounTag(tok.Tag) || tok.Stopword || len(tok.Text) < minSymbolLen {
			continue
		}
		noun := strings.ToLower(tok.Text)
		if seen[models.EntitySymbols][noun] {
			continue
		}
		if len(entities[models.EntitySymbols]) >= maxSymbols {
			break
		}
		seen[models.EntitySymbols][noun] = true
		entities[models.EntitySymbols] = append(entities[models.EntitySymbols], noun)
	}

	return entities
}

// identifyThemes returns the fixed dream themes whose keywords appear
// in the text, in declared theme order.
func identifyThemes(lower string) []string {
	var themes []string
	for _, theme := range lexicon.ThemeOrder {
		for _, kw := range lexicon.ThemeKeywords[theme] {
			if strings.Contains(lower, kw) {
				themes = append(themes, theme)
				break
			}
		}
	}
	return themes
}

// calculateIntensity combines length, punctuation emphasis and total
// emotional load into a 0..1 score.
func calculateIntensity(text string, emotions map[string]float64) float64 {
	rawWords := len(strings.Fields(text))
	exclamations := strings.Count(text, "!")
	questions := strings.Count(text, "?")

	var emotionSum float64
	for _, score := range emotions {
		emotionSum += score
	}

	intensity := math.Min(
		float64(rawWords)/500*0.3+
			float64(exclamations)/10*0.2+
			float64(questions)/10*0.1+
			emotionSum*0.4,
		1.0)
	return sentiment.Round3(intensity)
}

// detectStress scores stress from cue phrases plus the negative share
// of the already-computed sentiment.
func detectStress(lower string, sent float64) float64 {
	matches := 0
	for _, cue := range lexicon.StressCues {
		if strings.Contains(lower, cue) {
			matches++
		}
	}

	negative := math.Max(0, -sent)
	stress := math.Min(float64(matches)/5*0.6+negative*0.4, 1.0)
	return sentiment.Round3(stress)
}

// zeroVector is the defined result for empty input: every emotion
// category present at 0, every entity category present and empty.
func zeroVector() *models.SignalVector {
	emotions := make(map[string]float64, len(lexicon.EmotionOrder))
	for _, emotion := range lexicon.EmotionOrder {
		emotions[emotion] = 0
	}
	return &models.SignalVector{
		Sentiment: 0,
		Emotions:  emotions,
		Entities:  emptyEntities(),
		Themes:    []string{},
		Intensity: 0,
		Stress:    0,
	}
}

func emptyEntities() map[string][]string {
	entities := make(map[string][]string, len(models.EntityCategories))
	for _, cat := range models.EntityCategories {
		entities[cat] = []string{}
	}
	return entities
}
