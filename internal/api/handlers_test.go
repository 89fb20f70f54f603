package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nmorrow/dream-server/internal/analyzer"
	"github.com/nmorrow/dream-server/internal/archive"
	"github.com/nmorrow/dream-server/internal/config"
	"github.com/nmorrow/dream-server/internal/db"
	"github.com/nmorrow/dream-server/internal/models"
	"github.com/nmorrow/dream-server/internal/nlp"
)

const testToken = "test-token"

// stubEngine tokenizes on whitespace so handler tests never load the
// real model.
type stubEngine struct{}

func (stubEngine) Annotate(text string) (*nlp.Annotation, error) {
	var ann nlp.Annotation
	for _, f := range strings.Fields(text) {
		word := strings.Trim(f, ".,!?;:\"'")
		if word == "" {
			continue
		}
		ann.Tokens = append(ann.Tokens, nlp.Token{
			Text:     word,
			Tag:      "NN",
			Stopword: nlp.IsStopword(strings.ToLower(word)),
		})
	}
	return &ann, nil
}

type failingEngine struct{}

func (failingEngine) Annotate(string) (*nlp.Annotation, error) {
	return nil, nlp.ErrModelUnavailable
}

type fixedScorer struct{ v float64 }

func (f fixedScorer) Score(string) float64 { return f.v }

func setupTestServer(t *testing.T, engine nlp.Engine) (*httptest.Server, *db.DB) {
	t.Helper()

	tmpDir := t.TempDir()
	cfg := &config.Config{
		Port:         "0",
		DBPath:       filepath.Join(tmpDir, "test.db"),
		ArchivePath:  tmpDir,
		APIToken:     testToken,
		Timezone:     "UTC",
		PageSize:     10,
		ReminderTime: "08:00",
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}

	arc := archive.New(cfg.ArchivePath)
	an := analyzer.New(engine, fixedScorer{0.5})

	router := NewRouter(cfg, database, arc, an)
	server := httptest.NewServer(router)

	t.Cleanup(func() {
		server.Close()
		database.Close()
	})
	return server, database
}

func doRequest(t *testing.T, method, url string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+testToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
}

func TestHealthEndpoint(t *testing.T) {
	server, _ := setupTestServer(t, stubEngine{})

	resp, err := http.Get(server.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var health models.HealthResponse
	decodeBody(t, resp, &health)
	if health.Status != "ok" {
		t.Errorf("Status = %q, want ok", health.Status)
	}
	if health.NLP != "ready" {
		t.Errorf("NLP = %q, want ready", health.NLP)
	}
}

func TestAuthRequired(t *testing.T) {
	server, _ := setupTestServer(t, stubEngine{})

	resp, err := http.Get(server.URL + "/api/v1/entries")
	if err != nil {
		t.Fatalf("GET without auth: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodGet, server.URL+"/api/v1/entries", nil)
	req.Header.Set("Authorization", "Bearer wrong-token")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET with bad token: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestCreateEntry(t *testing.T) {
	server, _ := setupTestServer(t, stubEngine{})

	resp := doRequest(t, http.MethodPost, server.URL+"/api/v1/entries", models.EntryRequest{
		Title:   "flight",
		Content: "I was so happy and joyful flying over the ocean, amazing!",
		Tags:    []string{"lucid"},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var entry models.JournalEntry
	decodeBody(t, resp, &entry)

	if entry.ID == "" {
		t.Error("entry has no id")
	}
	if entry.Sentiment == nil || *entry.Sentiment != 0.5 {
		t.Errorf("Sentiment = %v, want the stub scorer's 0.5", entry.Sentiment)
	}
	if len(entry.Themes) != 2 || entry.Themes[0] != "flying" || entry.Themes[1] != "water" {
		t.Errorf("Themes = %v, want [flying water]", entry.Themes)
	}
	if entry.Emotions["joy"] <= 0 {
		t.Errorf("joy = %v, want > 0", entry.Emotions["joy"])
	}
}

func TestCreateEntryValidation(t *testing.T) {
	server, _ := setupTestServer(t, stubEngine{})

	resp := doRequest(t, http.MethodPost, server.URL+"/api/v1/entries", models.EntryRequest{})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("empty content: status = %d, want 400", resp.StatusCode)
	}

	resp = doRequest(t, http.MethodPost, server.URL+"/api/v1/entries", models.EntryRequest{
		Content:   "something",
		DreamDate: "yesterday",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad date: status = %d, want 400", resp.StatusCode)
	}
}

func TestCreateEntryModelUnavailable(t *testing.T) {
	server, database := setupTestServer(t, failingEngine{})

	resp := doRequest(t, http.MethodPost, server.URL+"/api/v1/entries", models.EntryRequest{
		Content: "a dream",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", resp.StatusCode)
	}

	// nothing may be stored when analysis fails
	entries, err := database.AllEntries()
	if err != nil {
		t.Fatalf("listing entries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no stored entries, got %d", len(entries))
	}
}

func TestEntryLifecycle(t *testing.T) {
	server, _ := setupTestServer(t, stubEngine{})

	resp := doRequest(t, http.MethodPost, server.URL+"/api/v1/entries", models.EntryRequest{
		Content: "I was falling from a tower",
	})
	var created models.JournalEntry
	decodeBody(t, resp, &created)

	// read back
	resp = doRequest(t, http.MethodGet, server.URL+"/api/v1/entries/"+created.ID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get: status = %d", resp.StatusCode)
	}
	var fetched models.JournalEntry
	decodeBody(t, resp, &fetched)
	if fetched.ID != created.ID {
		t.Errorf("fetched id %q, want %q", fetched.ID, created.ID)
	}

	// update content, signals recompute
	resp = doRequest(t, http.MethodPut, server.URL+"/api/v1/entries/"+created.ID, models.EntryRequest{
		Content: "I was flying over the ocean",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: status = %d", resp.StatusCode)
	}
	var updated models.JournalEntry
	decodeBody(t, resp, &updated)
	if len(updated.Themes) == 0 || updated.Themes[0] != "flying" {
		t.Errorf("update did not re-analyze: themes = %v", updated.Themes)
	}

	// delete
	resp = doRequest(t, http.MethodDelete, server.URL+"/api/v1/entries/"+created.ID, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: status = %d", resp.StatusCode)
	}

	resp = doRequest(t, http.MethodGet, server.URL+"/api/v1/entries/"+created.ID, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete: status = %d, want 404", resp.StatusCode)
	}
}

func TestListEntriesPagination(t *testing.T) {
	server, _ := setupTestServer(t, stubEngine{})

	for i := 0; i < 12; i++ {
		resp := doRequest(t, http.MethodPost, server.URL+"/api/v1/entries", models.EntryRequest{
			Content:   "a short dream",
			DreamDate: time.Date(2025, 6, 1+i, 8, 0, 0, 0, time.UTC).Format(time.RFC3339),
		})
		resp.Body.Close()
	}

	resp := doRequest(t, http.MethodGet, server.URL+"/api/v1/entries?page=2", nil)
	var listing models.EntriesResponse
	decodeBody(t, resp, &listing)

	if listing.Total != 12 {
		t.Errorf("Total = %d, want 12", listing.Total)
	}
	if listing.Page != 2 || listing.Pages != 2 {
		t.Errorf("Page/Pages = %d/%d, want 2/2", listing.Page, listing.Pages)
	}
	if len(listing.Entries) != 2 {
		t.Errorf("second page has %d entries, want 2", len(listing.Entries))
	}
}

func TestOverviewEmpty(t *testing.T) {
	server, _ := setupTestServer(t, stubEngine{})

	resp := doRequest(t, http.MethodGet, server.URL+"/api/v1/analytics/overview", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var overview map[string]interface{}
	decodeBody(t, resp, &overview)
	if overview["stress_trend"] != "insufficient data" {
		t.Errorf("stress_trend = %v", overview["stress_trend"])
	}
	if overview["total_entries"].(float64) != 0 {
		t.Errorf("total_entries = %v, want 0", overview["total_entries"])
	}
}

func TestPredictionsInsufficientData(t *testing.T) {
	server, _ := setupTestServer(t, stubEngine{})

	resp := doRequest(t, http.MethodGet, server.URL+"/api/v1/analytics/predictions", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body map[string]string
	decodeBody(t, resp, &body)
	if body["status"] != "insufficient data to forecast" {
		t.Errorf("body = %v", body)
	}
}

func TestPredictionsBadDays(t *testing.T) {
	server, _ := setupTestServer(t, stubEngine{})

	resp := doRequest(t, http.MethodGet, server.URL+"/api/v1/analytics/predictions?days=-1", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestInsightsShortHistory(t *testing.T) {
	server, _ := setupTestServer(t, stubEngine{})

	resp := doRequest(t, http.MethodGet, server.URL+"/api/v1/analytics/insights", nil)
	var report map[string]interface{}
	decodeBody(t, resp, &report)

	msg, _ := report["message"].(string)
	if !strings.HasPrefix(msg, "Keep recording your dreams!") {
		t.Errorf("message = %q", msg)
	}
}

func TestGenerateSummary(t *testing.T) {
	server, database := setupTestServer(t, stubEngine{})

	// no entries in the window yet
	resp := doRequest(t, http.MethodPost, server.URL+"/api/v1/summaries/generate", models.SummaryRequest{})
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("empty period: status = %d, want 404", resp.StatusCode)
	}

	resp = doRequest(t, http.MethodPost, server.URL+"/api/v1/entries", models.EntryRequest{
		Content:   "I was flying happily over the sea",
		DreamDate: time.Now().UTC().Add(-24 * time.Hour).Format(time.RFC3339),
	})
	resp.Body.Close()

	resp = doRequest(t, http.MethodPost, server.URL+"/api/v1/summaries/generate", models.SummaryRequest{})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	var summary models.PeriodSummary
	decodeBody(t, resp, &summary)
	if summary.PeriodType != models.PeriodWeekly {
		t.Errorf("PeriodType = %q, want weekly", summary.PeriodType)
	}
	if summary.TotalEntries != 1 {
		t.Errorf("TotalEntries = %d, want 1", summary.TotalEntries)
	}
	if summary.SummaryText == "" || summary.Recommendations == "" {
		t.Errorf("narrative fields empty: %+v", summary)
	}

	// persisted and listable
	stored, err := database.GetSummaries(10)
	if err != nil {
		t.Fatalf("getting summaries: %v", err)
	}
	if len(stored) != 1 {
		t.Errorf("stored %d summaries, want 1", len(stored))
	}

	resp = doRequest(t, http.MethodGet, server.URL+"/api/v1/summaries", nil)
	var listed []models.PeriodSummary
	decodeBody(t, resp, &listed)
	if len(listed) != 1 {
		t.Errorf("listed %d summaries, want 1", len(listed))
	}
}

func TestGenerateSummaryBadPeriod(t *testing.T) {
	server, _ := setupTestServer(t, stubEngine{})

	resp := doRequest(t, http.MethodPost, server.URL+"/api/v1/summaries/generate",
		models.SummaryRequest{PeriodType: "yearly"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestTagsEndpoint(t *testing.T) {
	server, _ := setupTestServer(t, stubEngine{})

	for _, tags := range [][]string{{"lucid", "water"}, {"lucid"}} {
		resp := doRequest(t, http.MethodPost, server.URL+"/api/v1/entries", models.EntryRequest{
			Content: "a dream",
			Tags:    tags,
		})
		resp.Body.Close()
	}

	resp := doRequest(t, http.MethodGet, server.URL+"/api/v1/tags", nil)
	var tags []string
	decodeBody(t, resp, &tags)
	if len(tags) != 2 || tags[0] != "lucid" || tags[1] != "water" {
		t.Errorf("tags = %v, want [lucid water]", tags)
	}
}
