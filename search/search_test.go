// ABOUTME: Tests for the search client and transcript
// ABOUTME: Uses httptest servers to stand in for the backend
package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/nexus/models"
)

func TestSearchPostsQueryAndSession(t *testing.T) {
	var got models.SearchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, SearchPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_ = json.NewEncoder(w).Encode(models.SearchResponse{
			Summary: "Found one",
			Results: []models.Entity{{ID: 2, Type: models.EntityPerson, Name: "Marcus Chen"}},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/")
	resp, err := c.Search(context.Background(), "fintech")
	require.NoError(t, err)

	assert.Equal(t, "fintech", got.Query)
	assert.Equal(t, c.SessionID(), got.SessionID)
	_, err = uuid.Parse(got.SessionID)
	assert.NoError(t, err)

	assert.Equal(t, "Found one", resp.Summary)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Marcus Chen", resp.Results[0].Name)
}

func TestSessionIDStableAcrossCalls(t *testing.T) {
	var ids []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.SearchRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		ids = append(ids, req.SessionID)
		_, _ = w.Write([]byte(`{"summary":"ok"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithSessionID("fixed"))
	_, err := c.Search(context.Background(), "a")
	require.NoError(t, err)
	_, err = c.Search(context.Background(), "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"fixed", "fixed"}, ids)
}

func TestNon2xxIsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"assistant unavailable"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Search(context.Background(), "x")
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 500, se.Code)
	assert.Equal(t, "assistant unavailable", se.Detail)
}

func TestMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Search(context.Background(), "x")
	assert.Error(t, err)
}

type fakeSearcher struct {
	resp *models.SearchResponse
	err  error
}

func (f fakeSearcher) Search(ctx context.Context, query string) (*models.SearchResponse, error) {
	return f.resp, f.err
}

func TestTranscriptAskSuccess(t *testing.T) {
	tr := NewTranscript()
	tr.Ask(context.Background(), fakeSearcher{resp: &models.SearchResponse{
		Summary: "Two leads",
		Results: []models.Entity{{ID: 1}, {ID: 2}},
	}}, "vp sales")

	msgs := tr.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, models.RoleUser, msgs[0].Role)
	assert.Equal(t, "vp sales", msgs[0].Content)
	assert.Equal(t, models.RoleAssistant, msgs[1].Role)
	assert.NotEqual(t, msgs[0].ID, msgs[1].ID)
	assert.False(t, tr.Loading())
	assert.Len(t, tr.LatestResults(), 2)
}

func TestTranscriptRecordsFailureAsSystemMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	tr := NewTranscript()
	tr.Ask(context.Background(), NewClient(srv.URL), "anything")

	last, ok := tr.Last()
	require.True(t, ok)
	assert.Equal(t, models.RoleSystem, last.Role)
	assert.Contains(t, last.Content, "502")
	assert.False(t, tr.Loading())
}

func TestTranscriptTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	tr := NewTranscript()
	tr.Ask(context.Background(), NewClient(url), "anything")
	last, _ := tr.Last()
	assert.Equal(t, models.RoleSystem, last.Role)
	assert.Contains(t, last.Content, "Could not reach")
}

func TestTranscriptBeginMarksLoading(t *testing.T) {
	tr := NewTranscript()
	tr.Begin("q")
	assert.True(t, tr.Loading())
	tr.Finish(nil, nil)
	last, _ := tr.Last()
	assert.Equal(t, models.RoleSystem, last.Role)
	assert.Nil(t, tr.LatestResults())
}
