// Package archive writes generated period summaries as markdown files,
// one per summary, so the journal remains readable outside the server.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nmorrow/dream-server/internal/models"
)

type Archive struct {
	root string
}

func New(root string) *Archive {
	return &Archive{root: root}
}

// WriteSummary renders a summary to markdown under
// {period}_{end-date}.md and returns the file path.
func (a *Archive) WriteSummary(s *models.PeriodSummary) (string, error) {
	dir := filepath.Join(a.root, "summaries")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating archive dir: %w", err)
	}

	name := fmt.Sprintf("%s_%s.md", s.PeriodType, s.PeriodEnd.Format("2006-01-02"))
	path := filepath.Join(dir, name)

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s dream summary: %s to %s\n\n",
		titleCase(s.PeriodType),
		s.PeriodStart.Format("2006-01-02"), s.PeriodEnd.Format("2006-01-02"))
	fmt.Fprintf(&sb, "- Entries: %d\n", s.TotalEntries)
	fmt.Fprintf(&sb, "- Average sentiment: %.3f\n", s.AvgSentiment)
	fmt.Fprintf(&sb, "- Dominant emotion: %s\n", s.DominantEmotion)
	fmt.Fprintf(&sb, "- Stress trend: %s\n", s.StressTrend)
	if len(s.RecurringThemes) > 0 {
		fmt.Fprintf(&sb, "- Recurring themes: %s\n", strings.Join(s.RecurringThemes, ", "))
	}
	sb.WriteString("\n")
	sb.WriteString(s.SummaryText)
	sb.WriteString("\n\n## Recommendations\n\n")
	sb.WriteString(s.Recommendations)
	sb.WriteString("\n")

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return "", fmt.Errorf("writing summary file: %w", err)
	}
	return path, nil
}

// Check verifies the archive root exists and is a directory.
func (a *Archive) Check() error {
	info, err := os.Stat(a.root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", a.root)
	}
	return nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
