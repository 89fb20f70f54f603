package models

import "time"

// Entity category keys used in SignalVector.Entities
const (
	EntityPeople        = "people"
	EntityPlaces        = "places"
	EntityOrganizations = "organizations"
	EntityOther         = "other"
	EntitySymbols       = "symbols"
)

// EntityCategories lists every category key a SignalVector carries.
var EntityCategories = []string{
	EntityPeople, EntityPlaces, EntityOrganizations, EntityOther, EntitySymbols,
}

// SignalVector is the structured result of analyzing one entry's text.
type SignalVector struct {
	Sentiment float64             `json:"sentiment_score"` // -1 to 1
	Emotions  map[string]float64  `json:"emotions"`        // category -> 0..1
	Entities  map[string][]string `json:"entities"`        // category -> names
	Themes    []string            `json:"themes"`
	Intensity float64             `json:"dream_intensity"` // 0 to 1
	Stress    float64             `json:"stress_level"`    // 0 to 1
}

// JournalEntry is a dream journal entry with its derived signals.
// Signal fields are pointers: nil means the entry was never analyzed.
type JournalEntry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	Content   string    `json:"content"`
	DreamDate time.Time `json:"dream_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Tags         []string `json:"tags"`
	SleepQuality *int     `json:"sleep_quality,omitempty"` // 1-10 scale

	Sentiment *float64            `json:"sentiment_score,omitempty"`
	Emotions  map[string]float64  `json:"emotions,omitempty"`
	Entities  map[string][]string `json:"entities,omitempty"`
	Themes    []string            `json:"themes,omitempty"`
	Intensity *float64            `json:"dream_intensity,omitempty"`
	Stress    *float64            `json:"stress_level,omitempty"`
}

// Period types for summaries
const (
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

// PeriodSummary is a weekly or monthly aggregation over entries.
// Immutable once created.
type PeriodSummary struct {
	ID          string    `json:"id"`
	PeriodType  string    `json:"period_type"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	CreatedAt   time.Time `json:"created_at"`

	TotalEntries        int                `json:"total_entries"`
	AvgSentiment        float64            `json:"avg_sentiment"`
	DominantEmotion     string             `json:"dominant_emotion"`
	EmotionDistribution map[string]float64 `json:"emotion_distribution"`
	RecurringThemes     []string           `json:"recurring_themes"`
	StressTrend         string             `json:"stress_trend"`

	SummaryText     string `json:"summary_text"`
	Recommendations string `json:"recommendations"`
	ArchivePath     string `json:"-"`
}

// TrendForecast is a linear sentiment forecast. Not persisted.
type TrendForecast struct {
	Days        []int     `json:"days"`        // day offsets from the earliest entry
	Predictions []float64 `json:"predictions"` // predicted sentiment per day
	Trend       string    `json:"trend"`       // "improving" or "declining"
	Confidence  string    `json:"confidence"`  // "low", "medium", "high"
}

// TimeOfDayPattern compares morning (<12h) and evening dreams.
type TimeOfDayPattern struct {
	MorningAvg float64 `json:"morning_avg"`
	EveningAvg float64 `json:"evening_avg"`
	Insight    string  `json:"insight"`
}

// DayOfWeekPattern reports the best and worst weekdays by mean sentiment.
type DayOfWeekPattern struct {
	BestDay    string  `json:"best_day"`
	BestScore  float64 `json:"best_score"`
	WorstDay   string  `json:"worst_day"`
	WorstScore float64 `json:"worst_score"`
	Insight    string  `json:"insight"`
}

// EmotionPair is a co-occurring pair of top emotions.
type EmotionPair struct {
	Emotions  []string `json:"emotions"` // two names, lexicographic order
	Frequency int      `json:"frequency"`
}

// EmotionPairPattern reports the most frequent emotion pairs.
type EmotionPairPattern struct {
	CommonPairs []EmotionPair `json:"common_pairs"`
	Insight     string        `json:"insight"`
}

// SleepQualityPattern reports the sleep-quality/sentiment correlation.
type SleepQualityPattern struct {
	Correlation float64 `json:"correlation"`
	Insight     string  `json:"insight"`
}

// CyclicalTheme is a theme recurring at a roughly fixed interval.
type CyclicalTheme struct {
	Theme           string  `json:"theme"`
	AvgIntervalDays float64 `json:"avg_interval_days"`
	Occurrences     int     `json:"occurrences"`
}

// CyclicalThemePattern reports themes that recur on a cycle.
type CyclicalThemePattern struct {
	Themes  []CyclicalTheme `json:"themes"`
	Insight string          `json:"insight"`
}

// PatternReport bundles the independent pattern analyses.
// Each field is nil when its data precondition is unmet.
type PatternReport struct {
	TimeOfDay     *TimeOfDayPattern     `json:"time_of_day"`
	DayOfWeek     *DayOfWeekPattern     `json:"day_of_week"`
	EmotionPairs  *EmotionPairPattern   `json:"emotion_correlations"`
	SleepQuality  *SleepQualityPattern  `json:"sleep_quality_impact"`
	CyclicalTheme *CyclicalThemePattern `json:"cyclical_themes"`
}

// EntryRequest is the create/update payload for an entry.
type EntryRequest struct {
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	DreamDate    string   `json:"dream_date"` // RFC3339; defaults to now
	Tags         []string `json:"tags"`
	SleepQuality *int     `json:"sleep_quality"`
}

// EntriesResponse is a paginated entry listing.
type EntriesResponse struct {
	Entries []JournalEntry `json:"entries"`
	Total   int            `json:"total"`
	Page    int            `json:"page"`
	Pages   int            `json:"pages"`
}

// SummaryRequest asks for a period summary to be generated.
type SummaryRequest struct {
	PeriodType string `json:"period_type"` // "weekly" (default) or "monthly"
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	NLP     string `json:"nlp"`
	Archive string `json:"archive"`
	Version string `json:"version"`
}
