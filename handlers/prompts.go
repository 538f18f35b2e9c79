// ABOUTME: MCP prompt handlers for campaign workflows
// ABOUTME: Builds outreach briefs from catalog entities, channels and products
package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/nexus/catalog"
)

type PromptHandlers struct{}

func NewPromptHandlers() *PromptHandlers {
	return &PromptHandlers{}
}

// GetPrompt generates the prompt message based on the template
func (h *PromptHandlers) GetPrompt(ctx context.Context, request *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	switch request.Params.Name {
	case "campaign-brief":
		return h.getCampaignBriefPrompt(request.Params.Arguments)
	case "inbox-triage":
		return h.getInboxTriagePrompt()
	default:
		return nil, fmt.Errorf("unknown prompt: %s", request.Params.Name)
	}
}

func (h *PromptHandlers) getCampaignBriefPrompt(args map[string]string) (*mcp.GetPromptResult, error) {
	leadsArg, ok := args["leads"]
	if !ok || strings.TrimSpace(leadsArg) == "" {
		return nil, fmt.Errorf("leads is required")
	}

	var ids []int
	for _, part := range strings.Split(leadsArg, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid lead id %q", part)
		}
		ids = append(ids, id)
	}

	var promptText strings.Builder
	promptText.WriteString("Write an outreach sequence for these leads:\n")
	for _, e := range catalog.EntitiesByIDs(ids) {
		promptText.WriteString(fmt.Sprintf("- %s, %s (%s, source: %s)\n", e.Name, e.Subtitle(), e.Status, e.Source))
	}

	if product := args["product"]; product != "" {
		if p, ok := catalog.ProductByName(product); ok {
			promptText.WriteString(fmt.Sprintf("\nOffer: %s (%s)\n", p.Name, p.Type))
		}
	}
	if channels := args["channels"]; channels != "" {
		var labels []string
		for _, ch := range catalog.ChannelsByIDs(strings.Split(channels, ",")) {
			labels = append(labels, ch.Label)
		}
		if len(labels) > 0 {
			promptText.WriteString(fmt.Sprintf("Channels: %s\n", strings.Join(labels, ", ")))
		}
	}

	promptText.WriteString("\nKeep each message short and personal. Reference the lead's role or company.")

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Campaign brief for %d leads", len(ids)),
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: promptText.String()},
			},
		},
	}, nil
}

func (h *PromptHandlers) getInboxTriagePrompt() (*mcp.GetPromptResult, error) {
	var promptText strings.Builder
	promptText.WriteString("Triage this inbox. For each item say whether it needs a reply today:\n")
	for _, item := range catalog.Inbox() {
		marker := " "
		if item.Unread {
			marker = "*"
		}
		promptText.WriteString(fmt.Sprintf("%s [%s] %s: %s (%s)\n", marker, item.Type, item.Title, item.Preview, item.Time))
	}

	return &mcp.GetPromptResult{
		Description: "Inbox triage",
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: promptText.String()},
			},
		},
	}, nil
}
