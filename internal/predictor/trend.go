// Package predictor fits trends and detects patterns across the full
// entry history. Absence of a result is a normal outcome here: every
// function returns nil when its data precondition is unmet.
package predictor

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/nmorrow/dream-server/internal/models"
)

const (
	minEntriesForForecast = 7
	minPointsForFit       = 3
	defaultDaysAhead      = 7
)

// Forecast trend labels
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
)

// Confidence tiers by historical point count
const (
	ConfidenceLow    = "low"    // fewer than 14 points
	ConfidenceMedium = "medium" // 14-29 points
	ConfidenceHigh   = "high"   // 30 or more
)

// PredictMoodTrend fits an ordinary least-squares line to the sentiment
// series and forecasts daysAhead days past the last entry. Returns nil
// when there are fewer than 7 entries, fewer than 3 dated and scored
// points, or the fit degenerates.
func PredictMoodTrend(entries []models.JournalEntry, daysAhead int) *models.TrendForecast {
	if daysAhead <= 0 {
		daysAhead = defaultDaysAhead
	}
	if len(entries) < minEntriesForForecast {
		return nil
	}

	var qualifying []models.JournalEntry
	for _, e := range entries {
		if e.Sentiment != nil && !e.DreamDate.IsZero() {
			qualifying = append(qualifying, e)
		}
	}
	if len(qualifying) < minPointsForFit {
		return nil
	}
	sort.SliceStable(qualifying, func(i, j int) bool {
		return qualifying[i].DreamDate.Before(qualifying[j].DreamDate)
	})

	start := qualifying[0].DreamDate
	offsets := make([]float64, len(qualifying))
	sentiments := make([]float64, len(qualifying))
	for i, e := range qualifying {
		offsets[i] = math.Floor(e.DreamDate.Sub(start).Hours() / 24)
		sentiments[i] = *e.Sentiment
	}

	alpha, beta := stat.LinearRegression(offsets, sentiments, nil, false)
	if math.IsNaN(alpha) || math.IsNaN(beta) || math.IsInf(alpha, 0) || math.IsInf(beta, 0) {
		return nil
	}

	lastDay := int(offsets[len(offsets)-1])
	forecast := &models.TrendForecast{
		Days:        make([]int, daysAhead),
		Predictions: make([]float64, daysAhead),
		Confidence:  confidenceTier(len(offsets)),
	}
	for i := 0; i < daysAhead; i++ {
		day := lastDay + i + 1
		forecast.Days[i] = day
		forecast.Predictions[i] = alpha + beta*float64(day)
	}

	if forecast.Predictions[daysAhead-1] > forecast.Predictions[0] {
		forecast.Trend = TrendImproving
	} else {
		forecast.Trend = TrendDeclining
	}
	return forecast
}

func confidenceTier(points int) string {
	switch {
	case points < 14:
		return ConfidenceLow
	case points < 30:
		return ConfidenceMedium
	default:
		return ConfidenceHigh
	}
}
