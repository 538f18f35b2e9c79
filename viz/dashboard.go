// ABOUTME: Terminal insights dashboard built from the catalog
// ABOUTME: KPIs, funnel bars, campaign progress and inbox state as plain text
package viz

import (
	"fmt"
	"strings"

	"github.com/harperreed/nexus/catalog"
	"github.com/harperreed/nexus/models"
)

type DashboardStats struct {
	KPIs   []models.KPI
	Funnel []models.FunnelStage

	Campaigns       []models.Campaign
	ActiveCampaigns int

	TotalEntities int
	People        int
	Businesses    int

	Unread int
}

func GenerateDashboardStats() *DashboardStats {
	stats := &DashboardStats{
		KPIs:          catalog.KPIs(),
		Funnel:        catalog.Funnel(),
		Campaigns:     catalog.Campaigns(),
		TotalEntities: len(catalog.Entities()),
		People:        len(catalog.People()),
		Businesses:    len(catalog.Businesses()),
		Unread:        catalog.UnreadCount(),
	}
	for _, c := range stats.Campaigns {
		if c.Status {
			stats.ActiveCampaigns++
		}
	}
	return stats
}

func RenderDashboard(stats *DashboardStats) string {
	var out strings.Builder

	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	out.WriteString("  NEXUS INSIGHTS\n")
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	out.WriteString("KPIS\n")
	for _, k := range stats.KPIs {
		arrow := "▲"
		if k.Trend == "down" {
			arrow = "▼"
		}
		out.WriteString(fmt.Sprintf("  %-20s %10s  %s %s\n", k.Label, k.Value, arrow, k.Change))
	}
	out.WriteString("\n")

	out.WriteString("FUNNEL\n")
	renderFunnel(&out, stats.Funnel)
	out.WriteString("\n")

	out.WriteString("CAMPAIGNS\n")
	for _, c := range stats.Campaigns {
		state := "paused"
		if c.Status {
			state = "active"
		}
		out.WriteString(fmt.Sprintf("  %-24s %-6s %s %3d%%\n", c.Name, state, Bar(c.Progress(), 10), c.Progress()))
	}
	out.WriteString("\n")

	out.WriteString("STATS\n")
	out.WriteString(fmt.Sprintf("  👤 %d people  🏢 %d companies  📣 %d/%d campaigns active  ✉️  %d unread\n",
		stats.People, stats.Businesses, stats.ActiveCampaigns, len(stats.Campaigns), stats.Unread))

	return out.String()
}

func renderFunnel(out *strings.Builder, funnel []models.FunnelStage) {
	for _, stage := range funnel {
		out.WriteString(fmt.Sprintf("  %-13s %s %3d%%\n", stage.Label, Bar(stage.Percent, 10), stage.Percent))
	}
}

// Bar draws pct (clamped to 0..100) as a width-cell block bar.
func Bar(pct, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct * width / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
