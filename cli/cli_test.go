// ABOUTME: Tests for CLI command implementations
// ABOUTME: Exercises graph output, one-shot search, connection flags and the MCP server wiring
package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/nexus/assistant"
	"github.com/harperreed/nexus/catalog"
	"github.com/harperreed/nexus/config"
	"github.com/harperreed/nexus/db"
	"github.com/harperreed/nexus/prefs"
	"github.com/harperreed/nexus/web"
)

func TestVizGraphCampaignCommand(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, VizGraphCampaignCommand(&out, []string{"1"}))
	assert.Contains(t, out.String(), "digraph")

	assert.Error(t, VizGraphCampaignCommand(&out, nil))
	assert.Error(t, VizGraphCampaignCommand(&out, []string{"abc"}))
	assert.Error(t, VizGraphCampaignCommand(&out, []string{"99"}))
}

func TestVizGraphCampaignWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campaign.dot")
	var out bytes.Buffer
	require.NoError(t, VizGraphCampaignCommand(&out, []string{"--output", path, "2"}))
	assert.Empty(t, out.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "digraph")
}

func TestVizGraphDraftCommand(t *testing.T) {
	var out bytes.Buffer
	err := VizGraphDraftCommand(&out, []string{"--leads", "1, 3", "--channels", "email,whatsapp", "--product", "Enterprise API"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Elena Silva")
	assert.Contains(t, out.String(), "Enterprise API")

	assert.Error(t, VizGraphDraftCommand(&out, []string{"--product", "Enterprise API"}))
	assert.Error(t, VizGraphDraftCommand(&out, []string{"--leads", "1", "--product", "Nope"}))
	assert.Error(t, VizGraphDraftCommand(&out, []string{"--leads", "x", "--product", "Enterprise API"}))
}

func TestVizGraphPipelineCommand(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, VizGraphPipelineCommand(&out, nil))
	assert.Contains(t, out.String(), "Series B Founders - Brazil")
}

func TestInsightsCommand(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, InsightsCommand(&out))
	assert.Contains(t, out.String(), "Total Revenue")
	assert.Contains(t, out.String(), "Closed Won")
}

func TestSearchCommand(t *testing.T) {
	database, err := db.OpenMemory()
	require.NoError(t, err)
	defer database.Close()
	_, err = db.SeedEntities(database, catalog.Entities())
	require.NoError(t, err)

	srv := httptest.NewServer(web.NewServer(database, assistant.NewLocal(), web.Options{}).Handler())
	defer srv.Close()

	var out bytes.Buffer
	require.NoError(t, SearchCommand(&out, srv.URL, []string{"nubank"}))
	assert.Contains(t, out.String(), "Found 2 entities")
	assert.Contains(t, out.String(), "Marcus Chen")
	assert.Contains(t, out.String(), "Nubank Office")

	assert.Error(t, SearchCommand(&out, srv.URL, nil))
	assert.Error(t, SearchCommand(&out, "", []string{"nubank"}))
}

func TestSearchCommandReportsBackendFailure(t *testing.T) {
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	var out bytes.Buffer
	err := SearchCommand(&out, url, []string{"nubank"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Could not reach the search service")
}

func TestConnectionsCommand(t *testing.T) {
	store, err := prefs.OpenInMemory()
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.SaveConnections(map[string]bool{"whatsapp": true, "sap": false}))

	var out bytes.Buffer
	require.NoError(t, ConnectionsCommand(&out, store, nil))
	assert.Contains(t, out.String(), "WhatsApp Business")
	assert.Contains(t, out.String(), "Link API")
	assert.Regexp(t, `whatsapp\s+WhatsApp Business\s+Connected`, out.String())

	out.Reset()
	require.NoError(t, ConnectionsCommand(&out, store, []string{"--reset"}))
	flags, err := store.LoadConnections()
	require.NoError(t, err)
	assert.False(t, flags["whatsapp"])
}

func TestConfigShowHidesKey(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.GeminiAPIKey = "secret-key"

	var out bytes.Buffer
	require.NoError(t, ConfigShowCommand(&out, cfg))
	assert.NotContains(t, out.String(), "secret-key")
	assert.Contains(t, out.String(), "gemini key set: true")
	assert.Contains(t, out.String(), `"selection_policy": "clear-on-leave"`)
}

func TestMCPServerRegistersEverything(t *testing.T) {
	database, err := db.OpenMemory()
	require.NoError(t, err)
	defer database.Close()
	_, err = db.SeedEntities(database, catalog.Entities())
	require.NoError(t, err)

	ctx := context.Background()
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	_, err = NewMCPServer(database, "test").Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "test"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer session.Close()

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	var names []string
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"search_entities", "get_entity", "list_campaigns",
		"list_inbox", "draft_campaign", "generate_graph",
	}, names)

	resources, err := session.ListResources(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, resources.Resources, 4)

	prompts, err := session.ListPrompts(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, prompts.Prompts, 2)

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "get_entity",
		Arguments: map[string]any{"id": 2},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)
}
