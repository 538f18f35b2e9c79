// ABOUTME: Offline assistant built from keyword rules
// ABOUTME: Deterministic, so it backs tests and installs without a Gemini key
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/nexus/models"
)

type Local struct{}

func NewLocal() *Local {
	return &Local{}
}

func (l *Local) Name() string {
	return "local"
}

var greetings = []string{"hi", "hello", "hey", "hola", "olá", "ola", "thanks", "thank you", "good morning", "good afternoon", "good evening", "how are you"}

func (l *Local) Classify(ctx context.Context, query string) (Intent, error) {
	q := strings.ToLower(strings.TrimSpace(strings.Trim(query, " !?.,")))
	if q == "" {
		return IntentUnknown, nil
	}
	for _, g := range greetings {
		if q == g || (strings.HasPrefix(q, g+" ") && len(strings.Fields(q)) <= 4) {
			return IntentGreeting, nil
		}
	}
	if !strings.ContainsFunc(q, func(r rune) bool { return r >= 'a' && r <= 'z' || r > 127 }) {
		return IntentUnknown, nil
	}
	return IntentSearch, nil
}

func (l *Local) Reply(ctx context.Context, query string) (string, error) {
	return "Hi! I can help you find leads. Try something like \"SaaS companies in São Paulo\" or \"Head of Growth\".", nil
}

func (l *Local) Summarize(ctx context.Context, query string, results []models.Entity) (string, error) {
	if len(results) == 0 {
		return NoResultsContext, nil
	}

	var people, businesses []string
	for _, e := range results {
		if e.IsPerson() {
			people = append(people, fmt.Sprintf("%s (%s)", e.Name, e.Subtitle()))
		} else {
			businesses = append(businesses, fmt.Sprintf("%s (%s)", e.Name, e.Subtitle()))
		}
	}

	var b strings.Builder
	noun := "entities"
	if len(results) == 1 {
		noun = "entity"
	}
	fmt.Fprintf(&b, "Found %d %s for %q.", len(results), noun, query)
	if len(people) > 0 {
		fmt.Fprintf(&b, " People: %s.", strings.Join(people, "; "))
	}
	if len(businesses) > 0 {
		fmt.Fprintf(&b, " Companies: %s.", strings.Join(businesses, "; "))
	}
	return b.String(), nil
}
