// ABOUTME: HTTP client for the assistant search endpoint (POST /api/search)
// ABOUTME: One session id per client; non-2xx answers surface as *StatusError
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/nexus/models"
)

// SearchPath is the endpoint the client posts to, relative to the base URL.
const SearchPath = "/api/search"

const defaultTimeout = 30 * time.Second

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("search failed with status %d: %s", e.Code, e.Detail)
	}
	return fmt.Sprintf("search failed with status %d", e.Code)
}

type Client struct {
	baseURL   string
	http      *http.Client
	sessionID string
}

type Option func(*Client)

// WithHTTPClient replaces the default client (30s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithSessionID pins the session id instead of generating one.
func WithSessionID(id string) Option {
	return func(c *Client) {
		c.sessionID = id
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: defaultTimeout},
		sessionID: uuid.New().String(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) SessionID() string {
	return c.sessionID
}

// Search sends one query in this client's session and decodes the answer.
func (c *Client) Search(ctx context.Context, query string) (*models.SearchResponse, error) {
	body, err := json.Marshal(models.SearchRequest{Query: query, SessionID: c.sessionID})
	if err != nil {
		return nil, fmt.Errorf("failed to encode search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+SearchPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Detail: readDetail(resp.Body)}
	}

	var out models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return &out, nil
}

// readDetail pulls {"detail": "..."} out of an error body, falling back to the raw text.
func readDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var body struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Detail != "" {
		return body.Detail
	}
	return strings.TrimSpace(string(raw))
}
