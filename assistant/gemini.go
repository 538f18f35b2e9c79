// ABOUTME: Gemini-backed assistant using google.golang.org/genai
// ABOUTME: Intent detection, small talk and grounded summaries each take one generate call
package assistant

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/harperreed/nexus/logging"
	"github.com/harperreed/nexus/models"
)

const DefaultGeminiModel = "gemini-2.5-flash"

// generator is the single call Gemini needs; split out so tests can fake it.
type generator interface {
	generate(ctx context.Context, prompt string) (string, error)
}

type genaiGenerator struct {
	client *genai.Client
	model  string
}

func (g *genaiGenerator) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

type Gemini struct {
	gen    generator
	logger *zap.Logger
}

func NewGemini(ctx context.Context, apiKey, model string, logger *zap.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Gemini{
		gen:    &genaiGenerator{client: client, model: model},
		logger: logging.OrNop(logger),
	}, nil
}

func (g *Gemini) Name() string {
	return "gemini"
}

func (g *Gemini) Classify(ctx context.Context, query string) (Intent, error) {
	prompt := fmt.Sprintf(`Classify this message sent to a sales CRM assistant.
Answer GREETING if it is small talk or a greeting, SEARCH if it asks to find people or companies in the CRM database.
Message: %q
Respond with only the word GREETING or SEARCH.`, query)

	answer, err := g.gen.generate(ctx, prompt)
	if err != nil {
		return IntentUnknown, fmt.Errorf("intent detection: %w", err)
	}
	intent := parseIntent(answer)
	g.logger.Debug("Classified query", zap.String("query", query), zap.String("intent", string(intent)))
	return intent, nil
}

func (g *Gemini) Reply(ctx context.Context, query string) (string, error) {
	prompt := fmt.Sprintf("The user said: %q. Answer in one or two friendly sentences as a sales assistant.", query)
	answer, err := g.gen.generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("greeting: %w", err)
	}
	return answer, nil
}

func (g *Gemini) Summarize(ctx context.Context, query string, results []models.Entity) (string, error) {
	facts := NoResultsContext
	if len(results) > 0 {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return "", err
		}
		facts = "Found the following entities in the database:\n" + string(data)
	}

	prompt := fmt.Sprintf(`You are the assistant of a sales CRM.
Answer the user's query using only the context below.

CONTEXT:
---
%s
---
USER QUERY: %q

Keep the answer short.`, facts, query)

	answer, err := g.gen.generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("summary: %w", err)
	}
	return answer, nil
}
