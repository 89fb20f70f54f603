package predictor

import (
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/nmorrow/dream-server/internal/lexicon"
	"github.com/nmorrow/dream-server/internal/models"
)

var weekdayNames = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// AnalyzePatterns runs the independent pattern analyses over the full
// history. Each sub-report is nil when its data precondition is unmet;
// there are no partial sub-results.
func AnalyzePatterns(entries []models.JournalEntry) *models.PatternReport {
	return &models.PatternReport{
		TimeOfDay:     analyzeTimeOfDay(entries),
		DayOfWeek:     analyzeDayOfWeek(entries),
		EmotionPairs:  analyzeEmotionPairs(entries),
		SleepQuality:  analyzeSleepQuality(entries),
		CyclicalTheme: analyzeCyclicalThemes(entries),
	}
}

// analyzeTimeOfDay splits entries at noon and compares bucket means.
// Requires at least one scored entry in each bucket.
func analyzeTimeOfDay(entries []models.JournalEntry) *models.TimeOfDayPattern {
	var morning, evening []float64
	for _, e := range entries {
		if e.Sentiment == nil {
			continue
		}
		if e.DreamDate.Hour() < 12 {
			morning = append(morning, *e.Sentiment)
		} else {
			evening = append(evening, *e.Sentiment)
		}
	}
	if len(morning) == 0 || len(evening) == 0 {
		return nil
	}

	p := &models.TimeOfDayPattern{
		MorningAvg: stat.Mean(morning, nil),
		EveningAvg: stat.Mean(evening, nil),
	}
	if p.MorningAvg > p.EveningAvg {
		p.Insight = "Morning dreams tend to be more positive"
	} else {
		p.Insight = "Evening dreams tend to be more positive"
	}
	return p
}

// analyzeDayOfWeek ranks weekdays (Monday=0) by mean sentiment.
func analyzeDayOfWeek(entries []models.JournalEntry) *models.DayOfWeekPattern {
	sums := make([]float64, 7)
	counts := make([]int, 7)
	for _, e := range entries {
		if e.Sentiment == nil {
			continue
		}
		day := mondayIndexed(e.DreamDate.Weekday())
		sums[day] += *e.Sentiment
		counts[day]++
	}

	best, worst := -1, -1
	var bestScore, worstScore float64
	for day := 0; day < 7; day++ {
		if counts[day] == 0 {
			continue
		}
		avg := sums[day] / float64(counts[day])
		if best == -1 || avg > bestScore {
			best, bestScore = day, avg
		}
		if worst == -1 || avg < worstScore {
			worst, worstScore = day, avg
		}
	}
	if best == -1 {
		return nil
	}

	return &models.DayOfWeekPattern{
		BestDay:    weekdayNames[best],
		BestScore:  bestScore,
		WorstDay:   weekdayNames[worst],
		WorstScore: worstScore,
		Insight:    fmt.Sprintf("Dreams on %s tend to be most positive", weekdayNames[best]),
	}
}

// mondayIndexed converts Go's Sunday=0 weekday to Monday=0.
func mondayIndexed(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// analyzeEmotionPairs counts co-occurring top-2 emotions per entry.
// A pair counts only when the runner-up score exceeds 0.1; pairs are
// canonicalized by sorting the two names.
func analyzeEmotionPairs(entries []models.JournalEntry) *models.EmotionPairPattern {
	counts := map[[2]string]int{}
	firstSeen := map[[2]string]int{}
	order := 0

	for _, e := range entries {
		if len(e.Emotions) < 2 {
			continue
		}

		// Top two by score; ties resolve to the earlier declared category.
		top, second := "", ""
		for _, emotion := range lexicon.EmotionOrder {
			score, ok := e.Emotions[emotion]
			if !ok {
				continue
			}
			if top == "" || score > e.Emotions[top] {
				second = top
				top = emotion
			} else if second == "" || score > e.Emotions[second] {
				second = emotion
			}
		}
		if second == "" || e.Emotions[second] <= 0.1 {
			continue
		}

		pair := [2]string{top, second}
		if pair[0] > pair[1] {
			pair[0], pair[1] = pair[1], pair[0]
		}
		if _, ok := counts[pair]; !ok {
			firstSeen[pair] = order
			order++
		}
		counts[pair]++
	}
	if len(counts) == 0 {
		return nil
	}

	pairs := make([][2]string, 0, len(counts))
	for pair := range counts {
		pairs = append(pairs, pair)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if counts[pairs[i]] != counts[pairs[j]] {
			return counts[pairs[i]] > counts[pairs[j]]
		}
		return firstSeen[pairs[i]] < firstSeen[pairs[j]]
	})
	if len(pairs) > 3 {
		pairs = pairs[:3]
	}

	p := &models.EmotionPairPattern{
		Insight: fmt.Sprintf("%s and %s often appear together", pairs[0][0], pairs[0][1]),
	}
	for _, pair := range pairs {
		p.CommonPairs = append(p.CommonPairs, models.EmotionPair{
			Emotions:  []string{pair[0], pair[1]},
			Frequency: counts[pair],
		})
	}
	return p
}

// analyzeSleepQuality correlates sleep-quality ratings with the mean
// sentiment of each rating group. Requires 3 distinct ratings.
func analyzeSleepQuality(entries []models.JournalEntry) *models.SleepQualityPattern {
	groups := map[int][]float64{}
	for _, e := range entries {
		if e.SleepQuality == nil || e.Sentiment == nil {
			continue
		}
		groups[*e.SleepQuality] = append(groups[*e.SleepQuality], *e.Sentiment)
	}
	if len(groups) < 3 {
		return nil
	}

	ratings := make([]int, 0, len(groups))
	for q := range groups {
		ratings = append(ratings, q)
	}
	sort.Ints(ratings)

	xs := make([]float64, len(ratings))
	ys := make([]float64, len(ratings))
	for i, q := range ratings {
		xs[i] = float64(q)
		ys[i] = stat.Mean(groups[q], nil)
	}

	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		r = 0
	}

	p := &models.SleepQualityPattern{Correlation: r}
	switch {
	case r > 0.3:
		p.Insight = "Better sleep quality correlates with more positive dreams"
	case math.Abs(r) < 0.3:
		p.Insight = "No clear correlation between sleep quality and dream sentiment"
	default:
		p.Insight = "Paradoxically, lower sleep quality shows more positive dreams"
	}
	return p
}

// analyzeCyclicalThemes finds themes whose occurrence dates repeat at a
// low-variance interval. A theme needs 3 occurrences; it is cyclical
// when the gap variance stays under half the mean gap.
func analyzeCyclicalThemes(entries []models.JournalEntry) *models.CyclicalThemePattern {
	ordered := make([]models.JournalEntry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].DreamDate.Before(ordered[j].DreamDate)
	})

	timeline := map[string][]time.Time{}
	var themeOrder []string
	for _, e := range ordered {
		date := e.DreamDate.Truncate(24 * time.Hour)
		for _, theme := range e.Themes {
			if _, ok := timeline[theme]; !ok {
				themeOrder = append(themeOrder, theme)
			}
			timeline[theme] = append(timeline[theme], date)
		}
	}

	var cyclical []models.CyclicalTheme
	for _, theme := range themeOrder {
		dates := timeline[theme]
		if len(dates) < 3 {
			continue
		}

		intervals := make([]float64, len(dates)-1)
		var sum float64
		for i := 1; i < len(dates); i++ {
			gap := dates[i].Sub(dates[i-1]).Hours() / 24
			intervals[i-1] = gap
			sum += gap
		}
		avg := sum / float64(len(intervals))

		var variance float64
		for _, gap := range intervals {
			variance += (gap - avg) * (gap - avg)
		}
		variance /= float64(len(intervals))

		if variance < avg*0.5 {
			cyclical = append(cyclical, models.CyclicalTheme{
				Theme:           theme,
				AvgIntervalDays: math.Round(avg*10) / 10,
				Occurrences:     len(dates),
			})
		}
	}
	if len(cyclical) == 0 {
		return nil
	}

	return &models.CyclicalThemePattern{
		Themes: cyclical,
		Insight: fmt.Sprintf("Theme '%s' appears every ~%.1f days",
			cyclical[0].Theme, cyclical[0].AvgIntervalDays),
	}
}
