package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/nmorrow/dream-server/internal/analyzer"
	"github.com/nmorrow/dream-server/internal/archive"
	"github.com/nmorrow/dream-server/internal/config"
	"github.com/nmorrow/dream-server/internal/db"
	"github.com/nmorrow/dream-server/internal/insights"
	"github.com/nmorrow/dream-server/internal/models"
	"github.com/nmorrow/dream-server/internal/nlp"
	"github.com/nmorrow/dream-server/internal/predictor"
	"github.com/nmorrow/dream-server/internal/scheduler"
)

const version = "1.0.0"

// ErrorResponse is the standard error response format
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, status int, message, code string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message, Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type Handlers struct {
	cfg      *config.Config
	db       *db.DB
	archive  *archive.Archive
	analyzer *analyzer.Analyzer
}

func NewHandlers(cfg *config.Config, database *db.DB, arc *archive.Archive, an *analyzer.Analyzer) *Handlers {
	return &Handlers{cfg: cfg, db: database, archive: arc, analyzer: an}
}

// Health handles GET /health
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthResponse{
		Status:  "ok",
		NLP:     h.checkNLP(),
		Archive: h.checkArchive(),
		Version: version,
	}
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) checkNLP() string {
	if _, err := h.analyzer.Analyze("ok"); err != nil {
		return "error: " + err.Error()
	}
	return "ready"
}

func (h *Handlers) checkArchive() string {
	if err := h.archive.Check(); err != nil {
		return "error: " + err.Error()
	}
	return "writable"
}

// CreateEntry handles POST /entries: analyzes content and stores the
// entry with its signal vector.
func (h *Handlers) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req models.EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "INVALID_BODY")
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required", "MISSING_CONTENT")
		return
	}

	dreamDate := time.Now().UTC()
	if req.DreamDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.DreamDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "dream_date must be RFC3339", "INVALID_DATE")
			return
		}
		dreamDate = parsed
	}

	now := time.Now().UTC()
	entry := &models.JournalEntry{
		ID:           uuid.New().String(),
		Title:        req.Title,
		Content:      req.Content,
		DreamDate:    dreamDate,
		CreatedAt:    now,
		UpdatedAt:    now,
		Tags:         req.Tags,
		SleepQuality: req.SleepQuality,
	}

	if !h.applySignals(w, entry) {
		return
	}

	if err := h.db.InsertEntry(entry); err != nil {
		log.Printf("Inserting entry %s: %v", entry.ID, err)
		writeError(w, http.StatusInternalServerError, "failed to store entry", "DB_ERROR")
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

// applySignals runs extraction and copies the vector onto the entry.
// Writes the error response and returns false on failure: an entry is
// never stored with partial signals.
func (h *Handlers) applySignals(w http.ResponseWriter, entry *models.JournalEntry) bool {
	vector, err := h.analyzer.Analyze(entry.Content)
	if err != nil {
		log.Printf("Analyzing entry %s: %v", entry.ID, err)
		if errors.Is(err, nlp.ErrModelUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "nlp model unavailable", "MODEL_UNAVAILABLE")
		} else {
			writeError(w, http.StatusInternalServerError, "analysis failed", "ANALYSIS_ERROR")
		}
		return false
	}

	entry.Sentiment = &vector.Sentiment
	entry.Emotions = vector.Emotions
	entry.Entities = vector.Entities
	entry.Themes = vector.Themes
	entry.Intensity = &vector.Intensity
	entry.Stress = &vector.Stress
	return true
}

// ListEntries handles GET /entries with pagination and optional
// tag/date-range filters.
func (h *Handlers) ListEntries(w http.ResponseWriter, r *http.Request) {
	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}

	filter := db.EntryFilter{
		Tag:    r.URL.Query().Get("tag"),
		Limit:  h.cfg.PageSize,
		Offset: (page - 1) * h.cfg.PageSize,
	}
	if from := r.URL.Query().Get("start_date"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			writeError(w, http.StatusBadRequest, "start_date must be RFC3339", "INVALID_DATE")
			return
		}
		filter.From = &t
	}
	if to := r.URL.Query().Get("end_date"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			writeError(w, http.StatusBadRequest, "end_date must be RFC3339", "INVALID_DATE")
			return
		}
		filter.To = &t
	}

	entries, total, err := h.db.ListEntries(filter)
	if err != nil {
		log.Printf("Listing entries: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list entries", "DB_ERROR")
		return
	}
	if entries == nil {
		entries = []models.JournalEntry{}
	}

	pages := (total + h.cfg.PageSize - 1) / h.cfg.PageSize
	writeJSON(w, http.StatusOK, models.EntriesResponse{
		Entries: entries,
		Total:   total,
		Page:    page,
		Pages:   pages,
	})
}

// GetEntry handles GET /entries/{id}
func (h *Handlers) GetEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := h.db.GetEntry(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load entry", "DB_ERROR")
		return
	}
	if entry == nil {
		writeError(w, http.StatusNotFound, "entry not found", "NOT_FOUND")
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// UpdateEntry handles PUT /entries/{id}. Changing the content re-runs
// extraction; the update is rejected outright when analysis fails.
func (h *Handlers) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := h.db.GetEntry(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load entry", "DB_ERROR")
		return
	}
	if entry == nil {
		writeError(w, http.StatusNotFound, "entry not found", "NOT_FOUND")
		return
	}

	var req models.EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "INVALID_BODY")
		return
	}

	if req.Title != "" {
		entry.Title = req.Title
	}
	if req.DreamDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.DreamDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "dream_date must be RFC3339", "INVALID_DATE")
			return
		}
		entry.DreamDate = parsed
	}
	if req.Tags != nil {
		entry.Tags = req.Tags
	}
	if req.SleepQuality != nil {
		entry.SleepQuality = req.SleepQuality
	}

	reanalyze := req.Content != "" && req.Content != entry.Content
	if reanalyze {
		entry.Content = req.Content
	}
	entry.UpdatedAt = time.Now().UTC()

	if reanalyze && !h.applySignals(w, entry) {
		return
	}

	found, err := h.db.UpdateEntry(entry)
	if err != nil {
		log.Printf("Updating entry %s: %v", entry.ID, err)
		writeError(w, http.StatusInternalServerError, "failed to update entry", "DB_ERROR")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "entry not found", "NOT_FOUND")
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// DeleteEntry handles DELETE /entries/{id}
func (h *Handlers) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	found, err := h.db.DeleteEntry(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete entry", "DB_ERROR")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "entry not found", "NOT_FOUND")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Overview handles GET /analytics/overview
func (h *Handlers) Overview(w http.ResponseWriter, r *http.Request) {
	entries, err := h.db.AllEntries()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load entries", "DB_ERROR")
		return
	}

	summary, err := insights.Summarize(entries)
	if errors.Is(err, insights.ErrNoEntries) {
		writeJSON(w, http.StatusOK, insights.Summary{
			EmotionDistribution: map[string]float64{},
			RecurringThemes:     []string{},
			StressTrend:         insights.TrendInsufficient,
		})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to summarize", "AGGREGATION_ERROR")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

type timelinePoint struct {
	Date      string   `json:"date"`
	Sentiment *float64 `json:"sentiment_score"`
	Intensity *float64 `json:"dream_intensity"`
	Stress    *float64 `json:"stress_level"`
}

// Timeline handles GET /analytics/timeline
func (h *Handlers) Timeline(w http.ResponseWriter, r *http.Request) {
	entries, err := h.db.AllEntries()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load entries", "DB_ERROR")
		return
	}

	points := make([]timelinePoint, 0, len(entries))
	for _, e := range entries {
		points = append(points, timelinePoint{
			Date:      e.DreamDate.Format(time.RFC3339),
			Sentiment: e.Sentiment,
			Intensity: e.Intensity,
			Stress:    e.Stress,
		})
	}
	writeJSON(w, http.StatusOK, points)
}

type nameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Themes handles GET /analytics/themes
func (h *Handlers) Themes(w http.ResponseWriter, r *http.Request) {
	entries, err := h.db.AllEntries()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load entries", "DB_ERROR")
		return
	}

	counts := map[string]int{}
	for _, e := range entries {
		for _, theme := range e.Themes {
			counts[theme]++
		}
	}
	writeJSON(w, http.StatusOK, topCounts(counts, len(counts)))
}

// Entities handles GET /analytics/entities
func (h *Handlers) Entities(w http.ResponseWriter, r *http.Request) {
	entries, err := h.db.AllEntries()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load entries", "DB_ERROR")
		return
	}

	people := map[string]int{}
	places := map[string]int{}
	symbols := map[string]int{}
	for _, e := range entries {
		for _, name := range e.Entities[models.EntityPeople] {
			people[name]++
		}
		for _, name := range e.Entities[models.EntityPlaces] {
			places[name]++
		}
		for _, name := range e.Entities[models.EntitySymbols] {
			symbols[name]++
		}
	}

	writeJSON(w, http.StatusOK, map[string][]nameCount{
		"people":  topCounts(people, 10),
		"places":  topCounts(places, 10),
		"symbols": topCounts(symbols, 15),
	})
}

func topCounts(counts map[string]int, n int) []nameCount {
	result := make([]nameCount, 0, len(counts))
	for name, count := range counts {
		result = append(result, nameCount{Name: name, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Name < result[j].Name
	})
	if len(result) > n {
		result = result[:n]
	}
	return result
}

// Patterns handles GET /analytics/patterns
func (h *Handlers) Patterns(w http.ResponseWriter, r *http.Request) {
	entries, err := h.db.AllEntries()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load entries", "DB_ERROR")
		return
	}
	writeJSON(w, http.StatusOK, predictor.AnalyzePatterns(entries))
}

// Predictions handles GET /analytics/predictions?days=N
func (h *Handlers) Predictions(w http.ResponseWriter, r *http.Request) {
	days := 7
	if d := r.URL.Query().Get("days"); d != "" {
		parsed, err := strconv.Atoi(d)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "days must be a positive integer", "INVALID_DAYS")
			return
		}
		days = parsed
	}

	entries, err := h.db.AllEntries()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load entries", "DB_ERROR")
		return
	}

	forecast := predictor.PredictMoodTrend(entries, days)
	if forecast == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "insufficient data to forecast"})
		return
	}
	writeJSON(w, http.StatusOK, forecast)
}

// Insights handles GET /analytics/insights
func (h *Handlers) Insights(w http.ResponseWriter, r *http.Request) {
	entries, err := h.db.AllEntries()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load entries", "DB_ERROR")
		return
	}
	writeJSON(w, http.StatusOK, insights.Compose(entries))
}

// GenerateSummary handles POST /summaries/generate
func (h *Handlers) GenerateSummary(w http.ResponseWriter, r *http.Request) {
	var req models.SummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "INVALID_BODY")
		return
	}
	if req.PeriodType == "" {
		req.PeriodType = models.PeriodWeekly
	}
	if req.PeriodType != models.PeriodWeekly && req.PeriodType != models.PeriodMonthly {
		writeError(w, http.StatusBadRequest, "period_type must be weekly or monthly", "INVALID_PERIOD")
		return
	}

	summary, err := scheduler.BuildPeriodSummary(h.db, h.archive, req.PeriodType, time.Now().UTC())
	if errors.Is(err, insights.ErrNoEntries) {
		writeError(w, http.StatusNotFound, "no entries found for this period", "NO_ENTRIES")
		return
	}
	if err != nil {
		log.Printf("Generating %s summary: %v", req.PeriodType, err)
		writeError(w, http.StatusInternalServerError, "failed to generate summary", "SUMMARY_ERROR")
		return
	}
	writeJSON(w, http.StatusCreated, summary)
}

// ListSummaries handles GET /summaries
func (h *Handlers) ListSummaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.db.GetSummaries(50)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list summaries", "DB_ERROR")
		return
	}
	if summaries == nil {
		summaries = []models.PeriodSummary{}
	}
	writeJSON(w, http.StatusOK, summaries)
}

// Tags handles GET /tags
func (h *Handlers) Tags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.db.AllTags()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list tags", "DB_ERROR")
		return
	}
	if tags == nil {
		tags = []string{}
	}
	writeJSON(w, http.StatusOK, tags)
}
