package sentiment

import (
	"math"
	"testing"
)

type fixedScorer struct{ v float64 }

func (f fixedScorer) Score(string) float64 { return f.v }

func TestEnsembleAveragesScorers(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want float64
	}{
		{"both positive", 0.8, 0.4, 0.6},
		{"opposite signs", 0.5, -0.5, 0},
		{"rounds to 3 decimals", 0.3335, 0.3335, 0.334},
		{"both zero", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEnsemble(fixedScorer{tt.a}, fixedScorer{tt.b})
			got := e.Score("whatever")
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRound3(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.12345, 0.123},
		{0.1235, 0.124},
		{-0.6666, -0.667},
		{1, 1},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Round3(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Round3(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLexiconScorerPolarity(t *testing.T) {
	s := NewLexiconScorer()

	tests := []struct {
		name string
		text string
		sign int // -1, 0, 1
	}{
		{"positive words", "It was a wonderful and beautiful dream", 1},
		{"negative words", "A terrible nightmare, I was terrified", -1},
		{"no subjective words", "I walked through a door", 0},
		{"empty text", "", 0},
		{"negation flips", "I was not happy at all", -1},
		{"intensified positive", "It was so amazing and really wonderful", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Score(tt.text)
			switch {
			case tt.sign > 0 && got <= 0:
				t.Errorf("Score(%q) = %v, want positive", tt.text, got)
			case tt.sign < 0 && got >= 0:
				t.Errorf("Score(%q) = %v, want negative", tt.text, got)
			case tt.sign == 0 && got != 0:
				t.Errorf("Score(%q) = %v, want 0", tt.text, got)
			}
			if got < -1 || got > 1 {
				t.Errorf("Score(%q) = %v, out of [-1, 1]", tt.text, got)
			}
		})
	}
}

func TestLexiconScorerDeterministic(t *testing.T) {
	s := NewLexiconScorer()
	text := "A dark and scary forest, but the ending felt peaceful"
	first := s.Score(text)
	for i := 0; i < 5; i++ {
		if got := s.Score(text); got != first {
			t.Fatalf("run %d: Score() = %v, first run gave %v", i, got, first)
		}
	}
}

func TestVaderScorerRange(t *testing.T) {
	s := NewVaderScorer()
	texts := []string{
		"I love this, it was wonderful and amazing!",
		"Horrible, terrifying, the worst dream ever",
		"The cat sat on the mat",
		"",
	}
	for _, text := range texts {
		got := s.Score(text)
		if got < -1 || got > 1 {
			t.Errorf("Score(%q) = %v, out of [-1, 1]", text, got)
		}
	}
}

func TestVaderScorerSign(t *testing.T) {
	s := NewVaderScorer()
	if got := s.Score("I love this, it was wonderful and amazing!"); got <= 0 {
		t.Errorf("positive text scored %v", got)
	}
	if got := s.Score("Horrible, terrifying, the worst dream ever"); got >= 0 {
		t.Errorf("negative text scored %v", got)
	}
}
