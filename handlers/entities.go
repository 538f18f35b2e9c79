// ABOUTME: Entity and campaign MCP tool handlers
// ABOUTME: Implements search_entities, get_entity, list_campaigns, list_inbox and draft_campaign tools
package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/nexus/catalog"
	"github.com/harperreed/nexus/db"
	"github.com/harperreed/nexus/models"
	"github.com/harperreed/nexus/viz"
)

type EntityHandlers struct {
	db        *sql.DB
	generator *viz.GraphGenerator
}

func NewEntityHandlers(database *sql.DB) *EntityHandlers {
	return &EntityHandlers{db: database, generator: viz.NewGraphGenerator()}
}

type SearchEntitiesInput struct {
	Query string `json:"query,omitempty" jsonschema:"Substring matched against name, role, company, industry and location"`
	Type  string `json:"type,omitempty" jsonschema:"Filter by entity type: person, business or all (default all)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 10)"`
}

type SearchEntitiesOutput struct {
	Entities []models.Entity `json:"entities"`
}

func (h *EntityHandlers) SearchEntities(_ context.Context, request *mcp.CallToolRequest, input SearchEntitiesInput) (*mcp.CallToolResult, SearchEntitiesOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	switch input.Type {
	case "", catalog.FilterAll, catalog.FilterPerson, catalog.FilterBusiness:
	default:
		return nil, SearchEntitiesOutput{}, fmt.Errorf("invalid type %q (use person, business or all)", input.Type)
	}

	// Over-fetch so type filtering still fills the limit
	found, err := db.SearchEntities(h.db, input.Query, limit*4)
	if err != nil {
		return nil, SearchEntitiesOutput{}, fmt.Errorf("failed to search entities: %w", err)
	}

	result := make([]models.Entity, 0, len(found))
	for _, e := range found {
		if input.Type == catalog.FilterPerson || input.Type == catalog.FilterBusiness {
			if e.Type != input.Type {
				continue
			}
		}
		result = append(result, e)
		if len(result) == limit {
			break
		}
	}

	return nil, SearchEntitiesOutput{Entities: result}, nil
}

type GetEntityInput struct {
	ID int `json:"id" jsonschema:"Entity ID (required)"`
}

func (h *EntityHandlers) GetEntity(_ context.Context, request *mcp.CallToolRequest, input GetEntityInput) (*mcp.CallToolResult, models.Entity, error) {
	if input.ID == 0 {
		return nil, models.Entity{}, fmt.Errorf("id is required")
	}

	entity, err := db.GetEntity(h.db, input.ID)
	if errors.Is(err, db.ErrNotFound) {
		return nil, models.Entity{}, fmt.Errorf("entity %d not found", input.ID)
	}
	if err != nil {
		return nil, models.Entity{}, fmt.Errorf("failed to get entity: %w", err)
	}

	return nil, *entity, nil
}

type ListCampaignsInput struct {
	ActiveOnly bool `json:"active_only,omitempty" jsonschema:"Only return running campaigns"`
}

type CampaignOutput struct {
	models.Campaign
	Progress int `json:"progress"`
}

type ListCampaignsOutput struct {
	Campaigns []CampaignOutput `json:"campaigns"`
}

func (h *EntityHandlers) ListCampaigns(_ context.Context, request *mcp.CallToolRequest, input ListCampaignsInput) (*mcp.CallToolResult, ListCampaignsOutput, error) {
	var out []CampaignOutput
	for _, c := range catalog.Campaigns() {
		if input.ActiveOnly && !c.Status {
			continue
		}
		out = append(out, CampaignOutput{Campaign: c, Progress: c.Progress()})
	}
	if out == nil {
		out = []CampaignOutput{}
	}
	return nil, ListCampaignsOutput{Campaigns: out}, nil
}

type ListInboxInput struct {
	Filter string `json:"filter,omitempty" jsonschema:"all, messages or system (default all)"`
}

type ListInboxOutput struct {
	Items  []models.InboxItem `json:"items"`
	Unread int                `json:"unread"`
}

func (h *EntityHandlers) ListInbox(_ context.Context, request *mcp.CallToolRequest, input ListInboxInput) (*mcp.CallToolResult, ListInboxOutput, error) {
	filter := input.Filter
	if filter == "" {
		filter = catalog.InboxAll
	}
	switch filter {
	case catalog.InboxAll, catalog.InboxMessages, catalog.InboxSystem:
	default:
		return nil, ListInboxOutput{}, fmt.Errorf("invalid filter %q (use all, messages or system)", input.Filter)
	}

	items := catalog.FilterInbox(filter)
	unread := 0
	for _, item := range items {
		if item.Unread {
			unread++
		}
	}
	return nil, ListInboxOutput{Items: items, Unread: unread}, nil
}

type DraftCampaignInput struct {
	Leads    []int    `json:"leads" jsonschema:"Entity IDs to target (required)"`
	Channels []string `json:"channels" jsonschema:"Channel IDs: email, linkedin, whatsapp, facebook, instagram (required)"`
	Product  string   `json:"product" jsonschema:"Product name from the catalog (required)"`
}

type DraftCampaignOutput struct {
	Draft    models.DraftConfig `json:"draft"`
	Entities []models.Entity    `json:"entities"`
	Channels []models.Channel   `json:"channels"`
	Graph    string             `json:"graph"`
}

// DraftCampaign validates a draft against the catalog and renders it. Unknown
// ids are rejected here rather than silently dropped, since the caller chose them.
func (h *EntityHandlers) DraftCampaign(ctx context.Context, request *mcp.CallToolRequest, input DraftCampaignInput) (*mcp.CallToolResult, DraftCampaignOutput, error) {
	if len(input.Leads) == 0 {
		return nil, DraftCampaignOutput{}, fmt.Errorf("leads is required")
	}
	if len(input.Channels) == 0 {
		return nil, DraftCampaignOutput{}, fmt.Errorf("channels is required")
	}
	if _, ok := catalog.ProductByName(input.Product); !ok {
		return nil, DraftCampaignOutput{}, fmt.Errorf("unknown product %q", input.Product)
	}

	entities := catalog.EntitiesByIDs(input.Leads)
	if len(entities) != len(input.Leads) {
		return nil, DraftCampaignOutput{}, fmt.Errorf("unknown entity id in %v", input.Leads)
	}
	channels := catalog.ChannelsByIDs(input.Channels)
	if len(channels) != len(input.Channels) {
		return nil, DraftCampaignOutput{}, fmt.Errorf("unknown channel in %v", input.Channels)
	}

	draft := models.DraftConfig{Leads: input.Leads, Channels: input.Channels, Product: input.Product}
	graph, err := h.generator.DraftGraph(ctx, draft)
	if err != nil {
		return nil, DraftCampaignOutput{}, fmt.Errorf("failed to render draft: %w", err)
	}

	return nil, DraftCampaignOutput{
		Draft:    draft.Clone(),
		Entities: entities,
		Channels: channels,
		Graph:    graph,
	}, nil
}
