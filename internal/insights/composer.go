package insights

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/nmorrow/dream-server/internal/models"
)

const minEntriesForInsights = 5

// recentWindow is the number of most recent entries the personalized
// rules look at.
const recentWindow = 7

// Stats summarizes the numbers behind an insight report.
type Stats struct {
	TotalDreams   int     `json:"total_dreams"`
	AvgSentiment  float64 `json:"avg_sentiment"`
	DreamsPerWeek float64 `json:"dreams_per_week"`
	RecentStress  float64 `json:"recent_stress"`
}

// Report is the personalized insight output. When there is too little
// history, Message and Tips are set instead of Insights.
type Report struct {
	Insights        []string `json:"insights,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
	Stats           *Stats   `json:"stats,omitempty"`
	Message         string   `json:"message,omitempty"`
	Tips            []string `json:"tips,omitempty"`
}

// Compose evaluates the fixed insight rules over the entry history.
// Deterministic: same entries, same report.
func Compose(entries []models.JournalEntry) *Report {
	if len(entries) < minEntriesForInsights {
		return &Report{
			Message: "Keep recording your dreams! We need more data to generate personalized insights.",
			Tips: []string{
				"Try to record dreams immediately upon waking",
				"Include as many details as possible",
				"Note your sleep quality and mood",
			},
		}
	}

	ordered := make([]models.JournalEntry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].DreamDate.Before(ordered[j].DreamDate)
	})

	recent := ordered
	if len(recent) > recentWindow {
		recent = recent[len(recent)-recentWindow:]
	}

	var insights, recommendations []string

	recentSentiment := meanSentiment(recent)
	if recentSentiment < -0.3 {
		insights = append(insights, "Your recent dreams show negative sentiment patterns")
		recommendations = append(recommendations,
			"Consider stress-reduction techniques before bed",
			"Try journaling worries before sleep")
	} else if recentSentiment > 0.3 {
		insights = append(insights, "Your recent dreams are predominantly positive!")
		recommendations = append(recommendations, "Continue your current sleep routine")
	}

	// Trend and dominant-emotion rules run over the full history.
	summary, _ := Summarize(ordered)
	if summary.StressTrend == TrendIncreasing {
		recommendations = append(recommendations,
			"Stress levels in your dreams are increasing. Try meditation or relaxation exercises.")
	}
	switch summary.DominantEmotion {
	case "fear":
		recommendations = append(recommendations,
			"Fear is prominent in your dreams. Consider journaling before bed to process anxieties.")
	case "sadness":
		recommendations = append(recommendations,
			"Notice sadness themes. Reach out to friends or consider speaking with a counselor.")
	}

	recentStress := meanStress(recent)
	if recentStress > 0.6 {
		insights = append(insights, "High stress indicators detected in your dreams")
		recommendations = append(recommendations,
			"Practice relaxation exercises before bed",
			"Reduce screen time in the evening")
	}

	nightmares := 0
	for _, e := range recent {
		if e.Sentiment != nil && *e.Sentiment < -0.5 {
			nightmares++
		}
	}
	if nightmares >= 3 {
		insights = append(insights,
			fmt.Sprintf("You've had %d nightmares in the past week", nightmares))
		recommendations = append(recommendations,
			"Consider speaking with a healthcare professional if nightmares persist")
	}

	frequency := recordingFrequency(ordered)
	if frequency < 2 {
		insights = append(insights, "You're recording dreams infrequently")
		recommendations = append(recommendations, "Try setting a morning reminder to record dreams")
	} else if frequency > 5 {
		insights = append(insights, "Excellent dream recall! You're recording frequently")
		recommendations = append(recommendations, "Your detailed records will provide rich insights")
	}

	report := &Report{
		Insights:        insights,
		Recommendations: recommendations,
		Stats: &Stats{
			TotalDreams:   len(ordered),
			AvgSentiment:  summary.AvgSentiment,
			DreamsPerWeek: math.Round(frequency*10) / 10,
			RecentStress:  math.Round(recentStress*100) / 100,
		},
	}
	if len(insights) == 0 && len(recommendations) == 0 {
		report.Message = "Your dream patterns look balanced. Continue regular journaling for best insights."
	}
	return report
}

// SummaryText renders the fixed period narrative for a summary.
func SummaryText(periodType string, s *Summary) string {
	return fmt.Sprintf(
		"During this %s period, you recorded %d dreams. Your dominant emotion was %s with an average sentiment of %.2f. Stress levels are %s.",
		periodType, s.TotalEntries, s.DominantEmotion, s.AvgSentiment, s.StressTrend)
}

// Recommendations renders the fixed recommendation sentence set for a
// period summary.
func Recommendations(s *Summary) string {
	var recs []string

	if s.AvgSentiment < -0.3 {
		recs = append(recs, "Your dreams show negative sentiment. Consider stress-reduction practices before bed.")
	} else if s.AvgSentiment > 0.3 {
		recs = append(recs, "Your dreams are predominantly positive. Keep up your good sleep hygiene!")
	}

	if s.StressTrend == TrendIncreasing {
		recs = append(recs, "Stress levels in your dreams are increasing. Try meditation or relaxation exercises.")
	}

	switch s.DominantEmotion {
	case "fear":
		recs = append(recs, "Fear is prominent in your dreams. Consider journaling before bed to process anxieties.")
	case "sadness":
		recs = append(recs, "Notice sadness themes. Reach out to friends or consider speaking with a counselor.")
	}

	if len(recs) == 0 {
		recs = append(recs, "Your dream patterns look balanced. Continue regular journaling for best insights.")
	}
	return strings.Join(recs, " ")
}

func meanSentiment(entries []models.JournalEntry) float64 {
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
	return sum / float64(n)
}

func meanStress(entries []models.JournalEntry) float64 {
	var sum float64
	var n int
	for _, e := range entries {
		if e.Stress != nil {
			sum += *e.Stress
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// recordingFrequency is entries per week over the recorded date span,
// with the span floored at one day.
func recordingFrequency(ordered []models.JournalEntry) float64 {
	span := ordered[len(ordered)-1].DreamDate.Sub(ordered[0].DreamDate).Hours() / 24
	days := math.Max(math.Floor(span), 1)
	return float64(len(ordered)) / days * 7
}
