// Package sentiment scores text polarity in [-1, 1]. Two independent
// scorers sit behind the Scorer interface and an Ensemble averages them,
// so either implementation can be swapped without touching the
// averaging or rounding contract.
package sentiment

import "math"

// Scorer produces a polarity estimate in [-1, 1] for a text.
type Scorer interface {
	Score(text string) float64
}

// Ensemble averages a fixed pair of independent scorers.
type Ensemble struct {
	a, b Scorer
}

// NewEnsemble pairs two scorers.
func NewEnsemble(a, b Scorer) *Ensemble {
	return &Ensemble{a: a, b: b}
}

// NewDefaultEnsemble returns the standard VADER + polarity-lexicon pair.
func NewDefaultEnsemble() *Ensemble {
	return NewEnsemble(NewVaderScorer(), NewLexiconScorer())
}

// Score returns the mean of both scorers, rounded to 3 decimals.
func (e *Ensemble) Score(text string) float64 {
	return Round3((e.a.Score(text) + e.b.Score(text)) / 2)
}

// Round3 rounds to 3 decimal places.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
