// ABOUTME: Graphviz rendering of campaigns and campaign drafts
// ABOUTME: Leads point at channels, channels point at the campaign or product; unknown ids are left out
package viz

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/harperreed/nexus/catalog"
	"github.com/harperreed/nexus/models"
)

// GraphGenerator renders catalog data to DOT. It holds no state; the type
// exists so callers can share one value the way the server does.
type GraphGenerator struct{}

func NewGraphGenerator() *GraphGenerator {
	return &GraphGenerator{}
}

// CampaignGraph draws one campaign and the channels it runs on.
func (g *GraphGenerator) CampaignGraph(ctx context.Context, campaign models.Campaign) (string, error) {
	return render(ctx, fmt.Sprintf("Campaign: %s", campaign.Name), func(graph *cgraph.Graph) error {
		root, err := graph.CreateNodeByName(fmt.Sprintf("campaign_%d", campaign.ID))
		if err != nil {
			return err
		}
		root.SetLabel(fmt.Sprintf("%s\n%d leads, %d%% sent", campaign.Name, campaign.Leads, campaign.Progress()))
		root.SetShape("box")
		if campaign.Status {
			root.SetStyle("filled")
			root.SetFillColor("lightblue")
		}

		for _, ch := range catalog.ChannelsByIDs(campaign.Channels) {
			node, err := channelNode(graph, ch)
			if err != nil {
				return err
			}
			if _, err := graph.CreateEdgeByName("", node, root); err != nil {
				return err
			}
		}
		return nil
	})
}

// DraftGraph draws a draft: every selected lead feeds every chosen channel, which feed the product.
func (g *GraphGenerator) DraftGraph(ctx context.Context, draft models.DraftConfig) (string, error) {
	return render(ctx, "Campaign draft", func(graph *cgraph.Graph) error {
		graph.SetRankDir(cgraph.LRRank)

		productName := draft.Product
		if productName == "" {
			productName = "(no product)"
		}
		product, err := graph.CreateNodeByName("product")
		if err != nil {
			return err
		}
		product.SetLabel(productName)
		product.SetShape("box")

		var channels []*cgraph.Node
		for _, ch := range catalog.ChannelsByIDs(draft.Channels) {
			node, err := channelNode(graph, ch)
			if err != nil {
				return err
			}
			if _, err := graph.CreateEdgeByName("", node, product); err != nil {
				return err
			}
			channels = append(channels, node)
		}

		for _, e := range catalog.EntitiesByIDs(draft.Leads) {
			lead, err := graph.CreateNodeByName(fmt.Sprintf("entity_%d", e.ID))
			if err != nil {
				return err
			}
			lead.SetLabel(e.Name)
			if e.IsBusiness() {
				lead.SetShape("house")
			} else {
				lead.SetShape("ellipse")
			}
			for _, ch := range channels {
				if _, err := graph.CreateEdgeByName("", lead, ch); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// CompleteGraph draws every campaign sharing channel nodes.
func (g *GraphGenerator) CompleteGraph(ctx context.Context) (string, error) {
	return render(ctx, "All campaigns", func(graph *cgraph.Graph) error {
		channels := make(map[string]*cgraph.Node)
		for _, c := range catalog.Campaigns() {
			root, err := graph.CreateNodeByName(fmt.Sprintf("campaign_%d", c.ID))
			if err != nil {
				return err
			}
			root.SetLabel(c.Name)
			root.SetShape("box")

			for _, ch := range catalog.ChannelsByIDs(c.Channels) {
				node, ok := channels[ch.ID]
				if !ok {
					node, err = channelNode(graph, ch)
					if err != nil {
						return err
					}
					channels[ch.ID] = node
				}
				if _, err := graph.CreateEdgeByName("", node, root); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func channelNode(graph *cgraph.Graph, ch models.Channel) (*cgraph.Node, error) {
	node, err := graph.CreateNodeByName("channel_" + ch.ID)
	if err != nil {
		return nil, err
	}
	label := ch.Label
	if ch.Badge != "" {
		label = fmt.Sprintf("%s\n(%s)", ch.Label, ch.Badge)
	}
	node.SetLabel(label)
	node.SetShape("diamond")
	return node, nil
}

func render(ctx context.Context, label string, build func(*cgraph.Graph) error) (string, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create graphviz instance: %w", err)
	}
	defer func() { _ = gv.Close() }()

	graph, err := gv.Graph()
	if err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	defer func() { _ = graph.Close() }()

	graph.SetLabel(label)
	if err := build(graph); err != nil {
		return "", fmt.Errorf("failed to build graph: %w", err)
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}
	return buf.String(), nil
}
