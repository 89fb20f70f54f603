package predictor

import (
	"testing"
	"time"

	"github.com/nmorrow/dream-server/internal/models"
)

func fptr(v float64) *float64 { return &v }

func seriesEntries(n int, sentimentAt func(i int) float64) []models.JournalEntry {
	base := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	entries := make([]models.JournalEntry, n)
	for i := 0; i < n; i++ {
		entries[i] = models.JournalEntry{
			DreamDate: base.AddDate(0, 0, i),
			Sentiment: fptr(sentimentAt(i)),
		}
	}
	return entries
}

func TestPredictMoodTrendTooFewEntries(t *testing.T) {
	entries := seriesEntries(6, func(i int) float64 { return 0.1 })
	if got := PredictMoodTrend(entries, 7); got != nil {
		t.Errorf("expected nil for 6 entries, got %+v", got)
	}
}

func TestPredictMoodTrendTooFewScoredPoints(t *testing.T) {
	// 7 entries but only 2 carry a dated sentiment
	entries := seriesEntries(2, func(i int) float64 { return 0.1 })
	for i := 0; i < 5; i++ {
		entries = append(entries, models.JournalEntry{Content: "unanalyzed"})
	}
	if got := PredictMoodTrend(entries, 7); got != nil {
		t.Errorf("expected nil for 2 usable points, got %+v", got)
	}
}

func TestPredictMoodTrendImproving(t *testing.T) {
	entries := seriesEntries(7, func(i int) float64 { return -0.3 + 0.1*float64(i) })

	f := PredictMoodTrend(entries, 7)
	if f == nil {
		t.Fatal("expected a forecast")
	}
	if f.Trend != TrendImproving {
		t.Errorf("Trend = %q, want %q", f.Trend, TrendImproving)
	}
	if f.Confidence != ConfidenceLow {
		t.Errorf("Confidence = %q, want %q", f.Confidence, ConfidenceLow)
	}
	if len(f.Days) != 7 || len(f.Predictions) != 7 {
		t.Fatalf("forecast lengths %d/%d, want 7/7", len(f.Days), len(f.Predictions))
	}
	// history spans day offsets 0..6, so the forecast starts at day 7
	if f.Days[0] != 7 || f.Days[6] != 13 {
		t.Errorf("Days = %v, want 7..13", f.Days)
	}
	if f.Predictions[6] <= f.Predictions[0] {
		t.Errorf("improving forecast should rise: %v", f.Predictions)
	}
}

func TestPredictMoodTrendDeclining(t *testing.T) {
	entries := seriesEntries(7, func(i int) float64 { return 0.3 - 0.1*float64(i) })

	f := PredictMoodTrend(entries, 3)
	if f == nil {
		t.Fatal("expected a forecast")
	}
	if f.Trend != TrendDeclining {
		t.Errorf("Trend = %q, want %q", f.Trend, TrendDeclining)
	}
	if len(f.Days) != 3 {
		t.Errorf("len(Days) = %d, want 3", len(f.Days))
	}
}

func TestPredictMoodTrendDefaultHorizon(t *testing.T) {
	entries := seriesEntries(7, func(i int) float64 { return 0.1 * float64(i) })
	f := PredictMoodTrend(entries, 0)
	if f == nil {
		t.Fatal("expected a forecast")
	}
	if len(f.Days) != 7 {
		t.Errorf("default horizon gave %d days, want 7", len(f.Days))
	}
}

func TestPredictMoodTrendDegenerateFit(t *testing.T) {
	// all entries on the same day: zero variance in x, the fit is undefined
	base := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	var entries []models.JournalEntry
	for i := 0; i < 7; i++ {
		entries = append(entries, models.JournalEntry{
			DreamDate: base,
			Sentiment: fptr(0.1 * float64(i)),
		})
	}
	if got := PredictMoodTrend(entries, 7); got != nil {
		t.Errorf("expected nil for degenerate fit, got %+v", got)
	}
}

func TestConfidenceTiers(t *testing.T) {
	tests := []struct {
		points int
		want   string
	}{
		{3, ConfidenceLow},
		{13, ConfidenceLow},
		{14, ConfidenceMedium},
		{29, ConfidenceMedium},
		{30, ConfidenceHigh},
		{100, ConfidenceHigh},
	}
	for _, tt := range tests {
		if got := confidenceTier(tt.points); got != tt.want {
			t.Errorf("confidenceTier(%d) = %q, want %q", tt.points, got, tt.want)
		}
	}
}

func TestPredictMoodTrendMediumConfidence(t *testing.T) {
	entries := seriesEntries(14, func(i int) float64 { return 0.02 * float64(i) })
	f := PredictMoodTrend(entries, 7)
	if f == nil {
		t.Fatal("expected a forecast")
	}
	if f.Confidence != ConfidenceMedium {
		t.Errorf("Confidence = %q, want %q", f.Confidence, ConfidenceMedium)
	}
}
