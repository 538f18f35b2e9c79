// ABOUTME: Append-only transcript of an assistant search session
// ABOUTME: Failures become system-role entries instead of errors so the view always has something to show
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/harperreed/nexus/models"
)

// Searcher is what Ask needs from a backend; *Client satisfies it.
type Searcher interface {
	Search(ctx context.Context, query string) (*models.SearchResponse, error)
}

// Transcript is not safe for concurrent use. In the TUI it is only touched
// from Update; the network call itself runs in a tea.Cmd.
type Transcript struct {
	messages []models.TranscriptMessage
	loading  bool
	now      func() time.Time
}

func NewTranscript() *Transcript {
	return &Transcript{now: time.Now}
}

func (t *Transcript) Messages() []models.TranscriptMessage {
	return append([]models.TranscriptMessage(nil), t.messages...)
}

func (t *Transcript) Len() int {
	return len(t.messages)
}

func (t *Transcript) Loading() bool {
	return t.loading
}

// Last returns the newest message, if any.
func (t *Transcript) Last() (models.TranscriptMessage, bool) {
	if len(t.messages) == 0 {
		return models.TranscriptMessage{}, false
	}
	return t.messages[len(t.messages)-1], true
}

// LatestResults returns the entities from the newest assistant answer that carried any.
func (t *Transcript) LatestResults() []models.Entity {
	for i := len(t.messages) - 1; i >= 0; i-- {
		m := t.messages[i]
		if m.Role == models.RoleAssistant && len(m.Results) > 0 {
			return append([]models.Entity(nil), m.Results...)
		}
	}
	return nil
}

func (t *Transcript) append(role, content string, results []models.Entity) {
	t.messages = append(t.messages, models.TranscriptMessage{
		ID:      ulid.Make().String(),
		Role:    role,
		Content: content,
		Results: results,
		Time:    t.now(),
	})
}

// Begin records the user's query and marks the transcript as waiting.
func (t *Transcript) Begin(query string) {
	t.append(models.RoleUser, query, nil)
	t.loading = true
}

// Finish records the outcome of the request started by Begin.
func (t *Transcript) Finish(resp *models.SearchResponse, err error) {
	t.loading = false
	switch {
	case err != nil:
		t.append(models.RoleSystem, ErrorMessage(err), nil)
	case resp == nil:
		t.append(models.RoleSystem, "The search service returned an empty response.", nil)
	default:
		t.append(models.RoleAssistant, resp.Summary, resp.Results)
	}
}

// Ask runs one full exchange synchronously.
func (t *Transcript) Ask(ctx context.Context, s Searcher, query string) {
	t.Begin(query)
	resp, err := s.Search(ctx, query)
	t.Finish(resp, err)
}

// ErrorMessage renders a search failure for display in the transcript.
func ErrorMessage(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		if se.Detail != "" {
			return fmt.Sprintf("Search failed (HTTP %d): %s", se.Code, se.Detail)
		}
		return fmt.Sprintf("Search failed (HTTP %d).", se.Code)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "Search timed out. Please try again."
	}
	return fmt.Sprintf("Could not reach the search service: %v", err)
}
