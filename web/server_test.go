// ABOUTME: Tests for the search backend HTTP handlers
// ABOUTME: Runs against a seeded in-memory database and the local assistant
package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/nexus/assistant"
	"github.com/harperreed/nexus/catalog"
	"github.com/harperreed/nexus/db"
	"github.com/harperreed/nexus/models"
	"github.com/harperreed/nexus/search"
)

func newTestServer(t *testing.T, a assistant.Assistant) *httptest.Server {
	t.Helper()
	database, err := db.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	_, err = db.SeedEntities(database, catalog.Entities())
	require.NoError(t, err)

	srv := httptest.NewServer(NewServer(database, a, Options{
		AllowedOrigins: []string{"http://localhost:5173"},
	}).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postSearch(t *testing.T, url string, body any) (*http.Response, []byte) {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url+"/api/search", "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func TestSearchReturnsEntitiesAndSummary(t *testing.T) {
	srv := newTestServer(t, assistant.NewLocal())

	resp, raw := postSearch(t, srv.URL, models.SearchRequest{Query: "Nubank", SessionID: "s1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out models.SearchResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Len(t, out.Results, 2)
	assert.Equal(t, 2, out.Results[0].ID)
	assert.Contains(t, out.Summary, "Found 2 entities")
}

func TestSearchFallsBackToWords(t *testing.T) {
	srv := newTestServer(t, assistant.NewLocal())

	_, raw := postSearch(t, srv.URL, models.SearchRequest{Query: "Find fintech in São Paulo", SessionID: "s1"})
	var out models.SearchResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	var ids []int
	for _, e := range out.Results {
		ids = append(ids, e.ID)
	}
	assert.ElementsMatch(t, []int{102, 101}, ids)
}

func TestGreetingHasNoResults(t *testing.T) {
	srv := newTestServer(t, assistant.NewLocal())
	resp, raw := postSearch(t, srv.URL, models.SearchRequest{Query: "hello", SessionID: "s1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out models.SearchResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Empty(t, out.Results)
	assert.NotEmpty(t, out.Summary)
}

func TestUnknownIntentFallback(t *testing.T) {
	srv := newTestServer(t, assistant.NewLocal())
	_, raw := postSearch(t, srv.URL, models.SearchRequest{Query: "???", SessionID: "s1"})
	var out models.SearchResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, assistant.FallbackReply, out.Summary)
}

func TestSearchValidation(t *testing.T) {
	srv := newTestServer(t, assistant.NewLocal())

	resp, _ := postSearch(t, srv.URL, models.SearchRequest{Query: "  ", SessionID: "s1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = postSearch(t, srv.URL, models.SearchRequest{Query: "nubank"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	bad, err := http.Post(srv.URL+"/api/search", "application/json", bytes.NewReader([]byte("{")))
	require.NoError(t, err)
	bad.Body.Close()
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)

	get, err := http.Get(srv.URL + "/api/search")
	require.NoError(t, err)
	get.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, get.StatusCode)
}

type failingAssistant struct{ *assistant.Local }

func (failingAssistant) Classify(ctx context.Context, query string) (assistant.Intent, error) {
	return assistant.IntentUnknown, errors.New("quota exceeded")
}

func TestAssistantFailureIs500WithDetail(t *testing.T) {
	srv := newTestServer(t, failingAssistant{assistant.NewLocal()})
	resp, raw := postSearch(t, srv.URL, models.SearchRequest{Query: "nubank", SessionID: "s1"})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, string(raw), "quota exceeded")
}

func TestClientAgainstServer(t *testing.T) {
	srv := newTestServer(t, assistant.NewLocal())
	client := search.NewClient(srv.URL)

	tr := search.NewTranscript()
	tr.Ask(context.Background(), client, "vtex")
	last, ok := tr.Last()
	require.True(t, ok)
	assert.Equal(t, models.RoleAssistant, last.Role)
	require.Len(t, last.Results, 1)
	assert.Equal(t, "Sarah Jones", last.Results[0].Name)

	hist, err := http.Get(srv.URL + "/api/history?session_id=" + client.SessionID())
	require.NoError(t, err)
	defer hist.Body.Close()
	var records []models.ChatRecord
	require.NoError(t, json.NewDecoder(hist.Body).Decode(&records))
	require.Len(t, records, 2)
	assert.Equal(t, "vtex", records[0].Content)
}

func TestStatus(t *testing.T) {
	srv := newTestServer(t, assistant.NewLocal())
	resp, err := http.Get(srv.URL + "/api/status")
	require.NoError(t, err)
	defer resp.Body.Close()

	var out statusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "ok", out.Status)
	assert.Equal(t, "local", out.Assistant)
	assert.Equal(t, 6, out.Entities)
}

func TestCORS(t *testing.T) {
	srv := newTestServer(t, assistant.NewLocal())

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/api/search", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))

	req, _ = http.NewRequest(http.MethodGet, srv.URL+"/api/status", nil)
	req.Header.Set("Origin", "http://evil.test")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestMetricsExposed(t *testing.T) {
	srv := newTestServer(t, assistant.NewLocal())
	postSearch(t, srv.URL, models.SearchRequest{Query: "nubank", SessionID: "s1"})

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), `nexus_http_requests_total{code="200",route="/api/search"} 1`)
	assert.Contains(t, string(raw), `nexus_search_intents_total{intent="search"} 1`)
}

func TestCampaignGraph(t *testing.T) {
	srv := newTestServer(t, assistant.NewLocal())

	resp, err := http.Get(srv.URL + "/api/campaigns/1/graph")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "digraph")

	missing, err := http.Get(srv.URL + "/api/campaigns/99/graph")
	require.NoError(t, err)
	missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}
