package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/nexus/catalog"
	"github.com/harperreed/nexus/state"
)

type dockTab struct {
	tab   state.Tab
	label string
	icon  string
}

// dockTabs is indexed by number key minus one.
var dockTabs = []dockTab{
	{tab: state.TabSearch, label: "Search", icon: "search"},
	{tab: state.TabLeads, label: "Entities", icon: "users"},
	{tab: state.TabCampaigns, label: "Campaigns", icon: "layers"},
	{tab: state.TabInbox, label: "Inbox", icon: "inbox"},
	{tab: state.TabInsights, label: "Insights", icon: "bar-chart-2"},
	{tab: state.TabSettings, label: "Settings", icon: "settings"},
}

func (m Model) renderDock(st state.State) string {
	var rendered []string
	for i, t := range dockTabs {
		label := fmt.Sprintf("%d %s %s", i+1, m.glyph(t.icon), t.label)
		if t.tab == state.TabInbox {
			if n := catalog.UnreadCount(); n > 0 {
				label += fmt.Sprintf(" (%d)", n)
			}
		}
		if t.tab == st.Tab {
			rendered = append(rendered, tabActiveStyle.Render(label))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(label))
		}
	}
	rendered = append(rendered, tabInactiveStyle.Render("d "+m.glyph("database")+" Data Sources"))

	help := []string{"p: Profile", "q: Quit"}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, rendered...),
		mutedStyle.Render(strings.Join(help, " • ")),
	)
}
