// ABOUTME: GraphViz visualization MCP handlers
// ABOUTME: Provides generate_graph tool for campaign and pipeline graphs
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/nexus/catalog"
	"github.com/harperreed/nexus/viz"
)

type VizHandlers struct {
	generator *viz.GraphGenerator
}

func NewVizHandlers() *VizHandlers {
	return &VizHandlers{generator: viz.NewGraphGenerator()}
}

type GenerateGraphInput struct {
	Type       string `json:"type" jsonschema:"Graph type: campaign or pipeline"`
	CampaignID int    `json:"campaign_id,omitempty" jsonschema:"Campaign ID (required for campaign)"`
}

type GenerateGraphOutput struct {
	GraphType string `json:"graph_type"`
	DOTSource string `json:"dot_source"`
	NodeCount int    `json:"node_count"`
	EdgeCount int    `json:"edge_count"`
}

func (h *VizHandlers) GenerateGraph(ctx context.Context, request *mcp.CallToolRequest, input GenerateGraphInput) (*mcp.CallToolResult, GenerateGraphOutput, error) {
	if input.Type == "" {
		return nil, GenerateGraphOutput{}, fmt.Errorf("type is required")
	}

	var dot string
	var err error

	switch input.Type {
	case "campaign":
		if input.CampaignID == 0 {
			return nil, GenerateGraphOutput{}, fmt.Errorf("campaign_id required for campaign graph")
		}
		campaign, ok := catalog.CampaignByID(input.CampaignID)
		if !ok {
			return nil, GenerateGraphOutput{}, fmt.Errorf("campaign %d not found", input.CampaignID)
		}
		dot, err = h.generator.CampaignGraph(ctx, campaign)

	case "pipeline":
		dot, err = h.generator.CompleteGraph(ctx)

	default:
		return nil, GenerateGraphOutput{}, fmt.Errorf("invalid graph type: %s (must be campaign or pipeline)", input.Type)
	}

	if err != nil {
		return nil, GenerateGraphOutput{}, fmt.Errorf("failed to generate graph: %w", err)
	}

	return nil, GenerateGraphOutput{
		GraphType: input.Type,
		DOTSource: dot,
		NodeCount: countNodes(dot),
		EdgeCount: strings.Count(dot, "->"),
	}, nil
}

// countNodes counts node statements, which carry attributes but no edge arrow.
func countNodes(dot string) int {
	count := 0
	for _, line := range strings.Split(dot, "\n") {
		line = strings.TrimSpace(line)
		if strings.Contains(line, "[") && !strings.Contains(line, "->") &&
			!strings.HasPrefix(line, "graph") && !strings.HasPrefix(line, "node") && !strings.HasPrefix(line, "edge") {
			count++
		}
	}
	return count
}
