// ABOUTME: Visualization CLI commands
// ABOUTME: Handles graph generation for campaigns, drafts and the pipeline plus the text insights dashboard
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/harperreed/nexus/catalog"
	"github.com/harperreed/nexus/models"
	"github.com/harperreed/nexus/viz"
)

// writeOutput prints dot to stdout or writes it to path.
func writeOutput(stdout io.Writer, path, dot string) error {
	if path != "" {
		return os.WriteFile(path, []byte(dot), 0644)
	}
	_, err := fmt.Fprintln(stdout, dot)
	return err
}

// VizGraphCampaignCommand renders one campaign's leads, channels and sentiment.
func VizGraphCampaignCommand(stdout io.Writer, args []string) error {
	fs := flag.NewFlagSet("viz graph campaign", flag.ContinueOnError)
	output := fs.String("output", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		return fmt.Errorf("campaign ID required")
	}

	id, err := strconv.Atoi(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid campaign ID: %w", err)
	}
	campaign, ok := catalog.CampaignByID(id)
	if !ok {
		return fmt.Errorf("campaign %d not found", id)
	}

	dot, err := viz.NewGraphGenerator().CampaignGraph(context.Background(), campaign)
	if err != nil {
		return err
	}
	return writeOutput(stdout, *output, dot)
}

// VizGraphDraftCommand renders a campaign draft before it is published.
func VizGraphDraftCommand(stdout io.Writer, args []string) error {
	fs := flag.NewFlagSet("viz graph draft", flag.ContinueOnError)
	leads := fs.String("leads", "", "Comma separated entity IDs (required)")
	channels := fs.String("channels", models.ChannelEmail, "Comma separated channel IDs")
	product := fs.String("product", "", "Product or offer name (required)")
	output := fs.String("output", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *leads == "" {
		return fmt.Errorf("--leads is required")
	}
	if _, ok := catalog.ProductByName(*product); !ok {
		return fmt.Errorf("unknown product %q", *product)
	}

	ids, err := parseIDs(*leads)
	if err != nil {
		return err
	}

	draft := models.DraftConfig{
		Leads:    ids,
		Channels: splitList(*channels),
		Product:  *product,
	}
	dot, err := viz.NewGraphGenerator().DraftGraph(context.Background(), draft)
	if err != nil {
		return err
	}
	return writeOutput(stdout, *output, dot)
}

// VizGraphPipelineCommand renders every campaign in one graph.
func VizGraphPipelineCommand(stdout io.Writer, args []string) error {
	fs := flag.NewFlagSet("viz graph pipeline", flag.ContinueOnError)
	output := fs.String("output", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	dot, err := viz.NewGraphGenerator().CompleteGraph(context.Background())
	if err != nil {
		return err
	}
	return writeOutput(stdout, *output, dot)
}

// InsightsCommand prints the KPI and funnel dashboard.
func InsightsCommand(stdout io.Writer) error {
	_, err := fmt.Fprint(stdout, viz.RenderDashboard(viz.GenerateDashboardStats()))
	return err
}

func parseIDs(list string) ([]int, error) {
	var ids []int
	for _, part := range splitList(list) {
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid entity ID %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func splitList(list string) []string {
	var out []string
	for _, part := range strings.Split(list, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
