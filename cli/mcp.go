// ABOUTME: MCP server subcommand
// ABOUTME: Exposes the dashboard catalog, campaign drafting and graphs to agent clients over stdio
package cli

import (
	"context"
	"database/sql"
	"log"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/nexus/handlers"
)

// NewMCPServer builds the server with every tool, resource and prompt registered.
func NewMCPServer(db *sql.DB, version string) *mcp.Server {
	entityHandlers := handlers.NewEntityHandlers(db)
	vizHandlers := handlers.NewVizHandlers()
	resourceHandlers := handlers.NewResourceHandlers(db)
	promptHandlers := handlers.NewPromptHandlers()

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "nexus",
		Version: version,
	}, nil)

	// Tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_entities",
		Description: "Search people and companies by name, role, company, industry or location",
	}, entityHandlers.SearchEntities)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_entity",
		Description: "Get a single person or company by id",
	}, entityHandlers.GetEntity)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_campaigns",
		Description: "List outreach campaigns with send progress, optionally only active ones",
	}, entityHandlers.ListCampaigns)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_inbox",
		Description: "List inbox items filtered by all, messages or system",
	}, entityHandlers.ListInbox)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "draft_campaign",
		Description: "Validate leads, channels and a product and return the campaign draft with its graph",
	}, entityHandlers.DraftCampaign)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_graph",
		Description: "Generate a GraphViz DOT graph of one campaign or the whole pipeline",
	}, vizHandlers.GenerateGraph)

	// Resources
	descriptions := map[string]string{
		"nexus://entities":  "Every person and company in the directory",
		"nexus://campaigns": "Outreach campaigns and their progress",
		"nexus://inbox":     "Messages and system notifications",
		"nexus://insights":  "KPI and funnel dashboard as plain text",
	}
	for _, uri := range handlers.ResourceURIs {
		mimeType := "application/json"
		if uri == "nexus://insights" {
			mimeType = "text/plain"
		}
		server.AddResource(&mcp.Resource{
			URI:         uri,
			Name:        strings.TrimPrefix(uri, "nexus://"),
			Description: descriptions[uri],
			MIMEType:    mimeType,
		}, resourceHandlers.ReadResource)
	}

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "nexus://entities/{id}",
		Name:        "entity",
		Description: "A single person or company",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadResource)

	// Prompts
	server.AddPrompt(&mcp.Prompt{
		Name:        "campaign-brief",
		Description: "Brief for writing outreach copy to selected leads",
		Arguments: []*mcp.PromptArgument{
			{Name: "leads", Description: "Comma separated entity ids", Required: true},
			{Name: "product", Description: "Product or offer name", Required: true},
			{Name: "channels", Description: "Comma separated channel ids"},
		},
	}, promptHandlers.GetPrompt)

	server.AddPrompt(&mcp.Prompt{
		Name:        "inbox-triage",
		Description: "Triage the inbox and suggest replies",
	}, promptHandlers.GetPrompt)

	return server
}

// MCPCommand starts the MCP server on stdio
func MCPCommand(db *sql.DB, version string) error {
	log.Println("Starting Nexus MCP Server...")

	server := NewMCPServer(db, version)

	// Run server on stdio transport
	ctx := context.Background()
	return server.Run(ctx, &mcp.StdioTransport{})
}
