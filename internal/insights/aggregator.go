// Package insights reduces collections of scored entries into period
// summaries and rule-based insight reports. Every function is a pure
// reducer over the entry slice it is handed; callers own ordering and
// retrieval.
package insights

import (
	"errors"
	"sort"

	"github.com/nmorrow/dream-server/internal/lexicon"
	"github.com/nmorrow/dream-server/internal/models"
	"github.com/nmorrow/dream-server/internal/sentiment"
)

// ErrNoEntries is returned when a summary is requested over no entries.
var ErrNoEntries = errors.New("no entries to summarize")

// Stress trend labels
const (
	TrendIncreasing   = "increasing"
	TrendDecreasing   = "decreasing"
	TrendStable       = "stable"
	TrendInsufficient = "insufficient data"
)

// Summary holds the distributional statistics over a set of entries.
type Summary struct {
	TotalEntries        int                `json:"total_entries"`
	AvgSentiment        float64            `json:"avg_sentiment"`
	DominantEmotion     string             `json:"dominant_emotion"`
	EmotionDistribution map[string]float64 `json:"emotion_distribution"`
	RecurringThemes     []string           `json:"recurring_themes"`
	StressTrend         string             `json:"stress_trend"`
}

// Summarize aggregates sentiment, emotions, themes and stress across
// entries. Fails with ErrNoEntries on an empty slice.
func Summarize(entries []models.JournalEntry) (*Summary, error) {
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	return &Summary{
		TotalEntries:        len(entries),
		AvgSentiment:        avgSentiment(entries),
		DominantEmotion:     dominantEmotion(entries),
		EmotionDistribution: emotionDistribution(entries),
		RecurringThemes:     recurringThemes(entries, 5),
		StressTrend:         stressTrend(entries),
	}, nil
}

// avgSentiment averages over entries that carry a sentiment; entries
// without one are excluded from numerator and denominator.
func avgSentiment(entries []models.JournalEntry) float64 {
	var sum float64
	var n int
	for _, e := range entries {
		if e.Sentiment != nil {
			sum += *e.Sentiment
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sentiment.Round3(sum / float64(n))
}

// sumEmotions totals each emotion's score across all entries.
func sumEmotions(entries []models.JournalEntry) map[string]float64 {
	totals := map[string]float64{}
	for _, e := range entries {
		for emotion, score := range e.Emotions {
			totals[emotion] += score
		}
	}
	return totals
}

// dominantEmotion picks the emotion with the highest summed score.
// Ties resolve to the earlier category in the lexicon's declared order;
// "neutral" when no entry has emotion data.
func dominantEmotion(entries []models.JournalEntry) string {
	totals := sumEmotions(entries)
	if len(totals) == 0 {
		return "neutral"
	}

	dominant := ""
	best := 0.0
	for _, emotion := range lexicon.EmotionOrder {
		total, ok := totals[emotion]
		if !ok {
			continue
		}
		if dominant == "" || total > best {
			dominant = emotion
			best = total
		}
	}
	if dominant == "" {
		return "neutral"
	}
	return dominant
}

// emotionDistribution normalizes summed emotion scores to a unit total,
// rounded to 3 decimals. Empty when the grand total is zero.
func emotionDistribution(entries []models.JournalEntry) map[string]float64 {
	totals := sumEmotions(entries)

	var grand float64
	for _, total := range totals {
		grand += total
	}
	if grand == 0 {
		return map[string]float64{}
	}

	dist := make(map[string]float64, len(totals))
	for emotion, total := range totals {
		dist[emotion] = sentiment.Round3(total / grand)
	}
	return dist
}

// recurringThemes returns the n most frequent themes, ties broken by
// first appearance.
func recurringThemes(entries []models.JournalEntry, n int) []string {
	counts := map[string]int{}
	firstSeen := map[string]int{}
	order := 0
	for _, e := range entries {
		for _, theme := range e.Themes {
			if _, ok := counts[theme]; !ok {
				firstSeen[theme] = order
				order++
			}
			counts[theme]++
		}
	}

	themes := make([]string, 0, len(counts))
	for theme := range counts {
		themes = append(themes, theme)
	}
	sort.Slice(themes, func(i, j int) bool {
		if counts[themes[i]] != counts[themes[j]] {
			return counts[themes[i]] > counts[themes[j]]
		}
		return firstSeen[themes[i]] < firstSeen[themes[j]]
	})

	if len(themes) > n {
		themes = themes[:n]
	}
	return themes
}

// stressTrend compares mean stress between the first and second half of
// the stress-bearing entries, in the order given. The first half takes
// floor(count/2) items; a 10% band either way reads as stable.
func stressTrend(entries []models.JournalEntry) string {
	var levels []float64
	for _, e := range entries {
		if e.Stress != nil {
			levels = append(levels, *e.Stress)
		}
	}
	if len(levels) < 2 {
		return TrendInsufficient
	}

	half := len(levels) / 2
	first := mean(levels[:half])
	second := mean(levels[half:])

	switch {
	case second > first*1.1:
		return TrendIncreasing
	case second < first*0.9:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

func mean(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
