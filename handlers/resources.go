// ABOUTME: MCP resource handlers for exposing dashboard data
// ABOUTME: Provides read-only access to entities, campaigns, inbox and insights via nexus:// URIs
package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/nexus/catalog"
	"github.com/harperreed/nexus/db"
	"github.com/harperreed/nexus/viz"
)

// ResourceURIs lists the fixed resources registered with the server.
var ResourceURIs = []string{
	"nexus://entities",
	"nexus://campaigns",
	"nexus://inbox",
	"nexus://insights",
}

type ResourceHandlers struct {
	db *sql.DB
}

func NewResourceHandlers(database *sql.DB) *ResourceHandlers {
	return &ResourceHandlers{db: database}
}

// ReadResource handles resource read requests
func (h *ResourceHandlers) ReadResource(ctx context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, "nexus://") {
		return nil, fmt.Errorf("invalid URI scheme: expected nexus://")
	}

	path := strings.TrimPrefix(uri, "nexus://")
	parts := strings.Split(path, "/")

	switch parts[0] {
	case "entities":
		if len(parts) == 1 {
			return h.readAllEntities(uri)
		}
		return h.readEntity(uri, parts[1])
	case "campaigns":
		return jsonResource(uri, catalog.Campaigns())
	case "inbox":
		return jsonResource(uri, catalog.Inbox())
	case "insights":
		return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: "text/plain",
				Text:     viz.RenderDashboard(viz.GenerateDashboardStats()),
			},
		}}, nil
	default:
		return nil, fmt.Errorf("unknown resource: %s", parts[0])
	}
}

func (h *ResourceHandlers) readAllEntities(uri string) (*mcp.ReadResourceResult, error) {
	entities, err := db.SearchEntities(h.db, "", 1000)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entities: %w", err)
	}
	return jsonResource(uri, entities)
}

func (h *ResourceHandlers) readEntity(uri, idStr string) (*mcp.ReadResourceResult, error) {
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid entity ID: %w", err)
	}

	entity, err := db.GetEntity(h.db, id)
	if errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("entity %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entity: %w", err)
	}
	return jsonResource(uri, entity)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}
