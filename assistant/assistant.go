// ABOUTME: Assistant that classifies search queries and writes the answer summary
// ABOUTME: Local rules work offline; Gemini is used when an API key is configured
package assistant

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/harperreed/nexus/models"
)

type Intent string

const (
	IntentGreeting Intent = "greeting"
	IntentSearch   Intent = "search"
	IntentUnknown  Intent = "unknown"
)

// FallbackReply is returned for queries the assistant cannot classify.
const FallbackReply = "I'm not sure how to handle that request. Can you try rephrasing?"

// NoResultsContext is the summary context used when a search finds nothing.
const NoResultsContext = "No relevant entities were found in the database."

type Assistant interface {
	// Name identifies the backend in /api/status.
	Name() string
	Classify(ctx context.Context, query string) (Intent, error)
	Reply(ctx context.Context, query string) (string, error)
	Summarize(ctx context.Context, query string, results []models.Entity) (string, error)
}

type Options struct {
	GeminiAPIKey string
	GeminiModel  string
	Logger       *zap.Logger
}

// New picks Gemini when a key is present, otherwise the local rules.
func New(ctx context.Context, opts Options) (Assistant, error) {
	if opts.GeminiAPIKey == "" {
		return NewLocal(), nil
	}
	g, err := NewGemini(ctx, opts.GeminiAPIKey, opts.GeminiModel, opts.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini assistant: %w", err)
	}
	return g, nil
}

// parseIntent reads a one-word classifier answer.
func parseIntent(answer string) Intent {
	answer = strings.ToUpper(strings.TrimSpace(answer))
	switch {
	case strings.Contains(answer, "GREETING"):
		return IntentGreeting
	case strings.Contains(answer, "SEARCH"):
		return IntentSearch
	default:
		return IntentUnknown
	}
}

var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "at": true, "by": true, "find": true, "for": true,
	"from": true, "in": true, "me": true, "of": true, "on": true, "show": true, "the": true,
	"to": true, "who": true, "with": true, "around": true, "near": true, "all": true,
	"list": true, "get": true, "any": true, "some": true,
}

// SearchTerms returns the whole query first, then its significant words, for
// callers that fall back to word-level matching when the phrase finds nothing.
func SearchTerms(query string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	terms := []string{query}
	seen := map[string]bool{strings.ToLower(query): true}
	for _, w := range strings.FieldsFunc(query, func(r rune) bool {
		return r == ' ' || r == ',' || r == '?' || r == '!' || r == '.'
	}) {
		lw := strings.ToLower(w)
		if len([]rune(lw)) < 3 || stopwords[lw] || seen[lw] {
			continue
		}
		seen[lw] = true
		terms = append(terms, w)
	}
	return terms
}
