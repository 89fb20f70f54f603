package scheduler

import (
	"time"

	"github.com/google/uuid"

	"github.com/nmorrow/dream-server/internal/archive"
	"github.com/nmorrow/dream-server/internal/db"
	"github.com/nmorrow/dream-server/internal/insights"
	"github.com/nmorrow/dream-server/internal/models"
)

// BuildPeriodSummary aggregates the trailing week or month ending at
// end, archives the summary as markdown and persists it. Shared by the
// scheduled jobs and the on-demand API handler.
func BuildPeriodSummary(database *db.DB, arc *archive.Archive, periodType string, end time.Time) (*models.PeriodSummary, error) {
	span := 7 * 24 * time.Hour
	if periodType == models.PeriodMonthly {
		span = 30 * 24 * time.Hour
	}
	start := end.Add(-span)

	entries, err := database.EntriesBetween(start, end)
	if err != nil {
		return nil, err
	}

	agg, err := insights.Summarize(entries)
	if err != nil {
		return nil, err
	}

	summary := &models.PeriodSummary{
		ID:                  uuid.New().String(),
		PeriodType:          periodType,
		PeriodStart:         start,
		PeriodEnd:           end,
		CreatedAt:           time.Now().UTC(),
		TotalEntries:        agg.TotalEntries,
		AvgSentiment:        agg.AvgSentiment,
		DominantEmotion:     agg.DominantEmotion,
		EmotionDistribution: agg.EmotionDistribution,
		RecurringThemes:     agg.RecurringThemes,
		StressTrend:         agg.StressTrend,
		SummaryText:         insights.SummaryText(periodType, agg),
		Recommendations:     insights.Recommendations(agg),
	}

	path, err := arc.WriteSummary(summary)
	if err != nil {
		return nil, err
	}
	summary.ArchivePath = path

	if err := database.SaveSummary(summary); err != nil {
		return nil, err
	}
	return summary, nil
}
