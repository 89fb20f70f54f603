// Package db persists journal entries, period summaries and scheduler
// run bookkeeping in sqlite. Signal fields are stored as JSON text
// columns; timestamps as RFC3339 strings.
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/nmorrow/dream-server/internal/models"
)

const schema = `
-- Dream journal entries with derived signals
CREATE TABLE IF NOT EXISTS entries (
    id TEXT PRIMARY KEY,
    title TEXT,
    content TEXT NOT NULL,
    dream_date TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    tags TEXT,
    sleep_quality INTEGER,
    sentiment_score REAL,
    emotions TEXT,
    entities TEXT,
    themes TEXT,
    dream_intensity REAL,
    stress_level REAL
);

-- Generated period summaries (immutable once written)
CREATE TABLE IF NOT EXISTS summaries (
    id TEXT PRIMARY KEY,
    period_type TEXT NOT NULL,
    period_start TEXT NOT NULL,
    period_end TEXT NOT NULL,
    created_at TEXT NOT NULL,
    total_entries INTEGER NOT NULL DEFAULT 0,
    avg_sentiment REAL,
    dominant_emotion TEXT,
    emotion_distribution TEXT,
    recurring_themes TEXT,
    stress_trend TEXT,
    summary_text TEXT,
    recommendations TEXT,
    archive_path TEXT
);

-- Scheduler job tracking
CREATE TABLE IF NOT EXISTS scheduler_runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    job_type TEXT NOT NULL,
    status TEXT NOT NULL,
    started_at TEXT NOT NULL,
    completed_at TEXT,
    error_message TEXT
);

CREATE INDEX IF NOT EXISTS idx_entries_dream_date ON entries(dream_date);
CREATE INDEX IF NOT EXISTS idx_summaries_period ON summaries(period_type, period_start);
CREATE INDEX IF NOT EXISTS idx_scheduler_job ON scheduler_runs(job_type, started_at);
`

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

func (db *DB) migrate() error {
	if _, err := db.conn.Exec(schema); err != nil {
		return fmt.Errorf("executing migration: %w", err)
	}
	return nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

// InsertEntry stores a new entry with its signals.
func (db *DB) InsertEntry(e *models.JournalEntry) error {
	emotions, entities, themes, err := marshalSignals(e)
	if err != nil {
		return err
	}
	_, err = db.conn.Exec(`
		INSERT INTO entries (id, title, content, dream_date, created_at, updated_at,
			tags, sleep_quality, sentiment_score, emotions, entities, themes,
			dream_intensity, stress_level)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, nullStr(e.Title), e.Content,
		e.DreamDate.UTC().Format(time.RFC3339),
		e.CreatedAt.UTC().Format(time.RFC3339),
		e.UpdatedAt.UTC().Format(time.RFC3339),
		nullStr(strings.Join(e.Tags, ",")), nullInt(e.SleepQuality),
		nullFloat(e.Sentiment), emotions, entities, themes,
		nullFloat(e.Intensity), nullFloat(e.Stress))
	return err
}

// UpdateEntry overwrites an entry's content, metadata and signals.
// Returns false when the entry does not exist.
func (db *DB) UpdateEntry(e *models.JournalEntry) (bool, error) {
	emotions, entities, themes, err := marshalSignals(e)
	if err != nil {
		return false, err
	}
	res, err := db.conn.Exec(`
		UPDATE entries SET title = ?, content = ?, dream_date = ?, updated_at = ?,
			tags = ?, sleep_quality = ?, sentiment_score = ?, emotions = ?,
			entities = ?, themes = ?, dream_intensity = ?, stress_level = ?
		WHERE id = ?
	`, nullStr(e.Title), e.Content,
		e.DreamDate.UTC().Format(time.RFC3339),
		e.UpdatedAt.UTC().Format(time.RFC3339),
		nullStr(strings.Join(e.Tags, ",")), nullInt(e.SleepQuality),
		nullFloat(e.Sentiment), emotions, entities, themes,
		nullFloat(e.Intensity), nullFloat(e.Stress), e.ID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

// DeleteEntry removes an entry; false when it did not exist.
func (db *DB) DeleteEntry(id string) (bool, error) {
	res, err := db.conn.Exec(`DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

// GetEntry returns an entry by id, or nil when missing.
func (db *DB) GetEntry(id string) (*models.JournalEntry, error) {
	row := db.conn.QueryRow(entrySelect+` WHERE id = ?`, id)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// EntryFilter narrows and paginates entry listings.
type EntryFilter struct {
	From   *time.Time
	To     *time.Time
	Tag    string
	Limit  int
	Offset int
}

// ListEntries returns entries newest first plus the total match count.
func (db *DB) ListEntries(f EntryFilter) ([]models.JournalEntry, int, error) {
	where, args := filterClause(f)

	var total int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM entries`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := entrySelect + where + ` ORDER BY dream_date DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d OFFSET %d`, f.Limit, f.Offset)
	}

	entries, err := db.queryEntries(query, args...)
	return entries, total, err
}

// EntriesBetween returns entries in [start, end] in chronological order,
// the shape aggregation and prediction expect.
func (db *DB) EntriesBetween(start, end time.Time) ([]models.JournalEntry, error) {
	return db.queryEntries(
		entrySelect+` WHERE dream_date >= ? AND dream_date <= ? ORDER BY dream_date ASC`,
		start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339))
}

// AllEntries returns the full history in chronological order.
func (db *DB) AllEntries() ([]models.JournalEntry, error) {
	return db.queryEntries(entrySelect + ` ORDER BY dream_date ASC`)
}

// AllTags returns the distinct tags across all entries, sorted.
func (db *DB) AllTags() ([]string, error) {
	rows, err := db.conn.Query(`SELECT tags FROM entries WHERE tags IS NOT NULL AND tags != ''`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := map[string]bool{}
	for rows.Next() {
		var joined string
		if err := rows.Scan(&joined); err != nil {
			return nil, err
		}
		for _, tag := range strings.Split(joined, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				set[tag] = true
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tags := make([]string, 0, len(set))
	for tag := range set {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags, nil
}

// SaveSummary stores a generated period summary.
func (db *DB) SaveSummary(s *models.PeriodSummary) error {
	dist, err := json.Marshal(s.EmotionDistribution)
	if err != nil {
		return fmt.Errorf("marshaling distribution: %w", err)
	}
	themes, err := json.Marshal(s.RecurringThemes)
	if err != nil {
		return fmt.Errorf("marshaling themes: %w", err)
	}
	_, err = db.conn.Exec(`
		INSERT INTO summaries (id, period_type, period_start, period_end, created_at,
			total_entries, avg_sentiment, dominant_emotion, emotion_distribution,
			recurring_themes, stress_trend, summary_text, recommendations, archive_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.PeriodType,
		s.PeriodStart.UTC().Format(time.RFC3339),
		s.PeriodEnd.UTC().Format(time.RFC3339),
		s.CreatedAt.UTC().Format(time.RFC3339),
		s.TotalEntries, s.AvgSentiment, s.DominantEmotion,
		string(dist), string(themes), s.StressTrend,
		s.SummaryText, s.Recommendations, nullStr(s.ArchivePath))
	return err
}

// GetSummaries returns summaries newest first.
func (db *DB) GetSummaries(limit int) ([]models.PeriodSummary, error) {
	query := `
		SELECT id, period_type, period_start, period_end, created_at,
			total_entries, avg_sentiment, dominant_emotion, emotion_distribution,
			recurring_themes, stress_trend, summary_text, recommendations, archive_path
		FROM summaries ORDER BY period_start DESC`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, limit)
	}

	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []models.PeriodSummary
	for rows.Next() {
		var s models.PeriodSummary
		var start, end, created string
		var dist, themes, summaryText, recommendations, archivePath sql.NullString
		if err := rows.Scan(&s.ID, &s.PeriodType, &start, &end, &created,
			&s.TotalEntries, &s.AvgSentiment, &s.DominantEmotion, &dist,
			&themes, &s.StressTrend, &summaryText, &recommendations, &archivePath); err != nil {
			return nil, err
		}
		s.PeriodStart, _ = time.Parse(time.RFC3339, start)
		s.PeriodEnd, _ = time.Parse(time.RFC3339, end)
		s.CreatedAt, _ = time.Parse(time.RFC3339, created)
		s.SummaryText = summaryText.String
		s.Recommendations = recommendations.String
		s.ArchivePath = archivePath.String
		if dist.Valid {
			json.Unmarshal([]byte(dist.String), &s.EmotionDistribution)
		}
		if themes.Valid {
			json.Unmarshal([]byte(themes.String), &s.RecurringThemes)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// StartSchedulerRun records the start of a scheduler job.
func (db *DB) StartSchedulerRun(jobType string) (int64, error) {
	res, err := db.conn.Exec(`
		INSERT INTO scheduler_runs (job_type, status, started_at)
		VALUES (?, 'running', ?)
	`, jobType, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// CompleteSchedulerRun marks a scheduler job finished.
func (db *DB) CompleteSchedulerRun(runID int64, errMsg string) error {
	status := "completed"
	if errMsg != "" {
		status = "failed"
	}
	_, err := db.conn.Exec(`
		UPDATE scheduler_runs SET status = ?, completed_at = ?, error_message = ?
		WHERE id = ?
	`, status, time.Now().UTC().Format(time.RFC3339), errMsg, runID)
	return err
}

const entrySelect = `
	SELECT id, title, content, dream_date, created_at, updated_at, tags,
		sleep_quality, sentiment_score, emotions, entities, themes,
		dream_intensity, stress_level
	FROM entries`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*models.JournalEntry, error) {
	var e models.JournalEntry
	var title, tags, emotions, entities, themes sql.NullString
	var dreamDate, createdAt, updatedAt string
	var sleepQuality sql.NullInt64
	var sentimentScore, intensity, stress sql.NullFloat64

	if err := row.Scan(&e.ID, &title, &e.Content, &dreamDate, &createdAt,
		&updatedAt, &tags, &sleepQuality, &sentimentScore, &emotions,
		&entities, &themes, &intensity, &stress); err != nil {
		return nil, err
	}

	e.Title = title.String
	e.DreamDate, _ = time.Parse(time.RFC3339, dreamDate)
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	e.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	e.Tags = []string{}
	if tags.Valid && tags.String != "" {
		for _, tag := range strings.Split(tags.String, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				e.Tags = append(e.Tags, tag)
			}
		}
	}
	if sleepQuality.Valid {
		q := int(sleepQuality.Int64)
		e.SleepQuality = &q
	}
	if sentimentScore.Valid {
		v := sentimentScore.Float64
		e.Sentiment = &v
	}
	if intensity.Valid {
		v := intensity.Float64
		e.Intensity = &v
	}
	if stress.Valid {
		v := stress.Float64
		e.Stress = &v
	}
	if emotions.Valid {
		json.Unmarshal([]byte(emotions.String), &e.Emotions)
	}
	if entities.Valid {
		json.Unmarshal([]byte(entities.String), &e.Entities)
	}
	if themes.Valid {
		json.Unmarshal([]byte(themes.String), &e.Themes)
	}
	return &e, nil
}

func (db *DB) queryEntries(query string, args ...interface{}) ([]models.JournalEntry, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.JournalEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func filterClause(f EntryFilter) (string, []interface{}) {
	where := ` WHERE 1=1`
	var args []interface{}
	if f.From != nil {
		where += ` AND dream_date >= ?`
		args = append(args, f.From.UTC().Format(time.RFC3339))
	}
	if f.To != nil {
		where += ` AND dream_date <= ?`
		args = append(args, f.To.UTC().Format(time.RFC3339))
	}
	if f.Tag != "" {
		where += ` AND (',' || tags || ',') LIKE ?`
		args = append(args, "%,"+f.Tag+",%")
	}
	return where, args
}

func marshalSignals(e *models.JournalEntry) (emotions, entities, themes interface{}, err error) {
	if e.Emotions != nil {
		b, err := json.Marshal(e.Emotions)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("marshaling emotions: %w", err)
		}
		emotions = string(b)
	}
	if e.Entities != nil {
		b, err := json.Marshal(e.Entities)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("marshaling entities: %w", err)
		}
		entities = string(b)
	}
	if e.Themes != nil {
		b, err := json.Marshal(e.Themes)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("marshaling themes: %w", err)
		}
		themes = string(b)
	}
	return emotions, entities, themes, nil
}

func nullStr(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
