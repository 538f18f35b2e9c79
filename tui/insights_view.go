package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/nexus/catalog"
	"github.com/harperreed/nexus/state"
	"github.com/harperreed/nexus/viz"
)

// insightLeads is the high-intent segment the Action Insight button targets.
var insightLeads = []int{1, 2, 3}

type recommendation struct {
	icon, title, detail string
}

var recommendations = []recommendation{
	{icon: "target", title: `Retarget "Pricing Page" Drop-offs`, detail: "34 leads visited pricing > 2x but didn't convert."},
	{icon: "users", title: `Upsell "Enterprise" to Pro Users`, detail: "12 accounts nearing usage limits."},
}

func greeting(now time.Time) string {
	switch h := now.Hour(); {
	case h < 12:
		return "Good morning, Felix."
	case h < 18:
		return "Good afternoon, Felix."
	default:
		return "Good evening, Felix."
	}
}

func (m Model) renderInsightsView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(m.glyph("sparkles") + " " + greeting(time.Now())))
	s.WriteString("\n")
	s.WriteString("Campaign performance is trending " + goodStyle.Render("up 12%") + " this week.\n")
	s.WriteString("I've detected a high-intent segment of " + accentStyle.Render("24 SaaS Leads") +
		" in Brazil interacting with your Enterprise API pricing page.\n\n")
	s.WriteString(buttonStyle.Render("a " + m.glyph("zap") + " Action Insight"))
	s.WriteString("\n\n")

	var cards []string
	for _, k := range catalog.KPIs() {
		change := goodStyle.Render(k.Change)
		if k.Trend == "down" {
			change = badStyle.Render(k.Change)
		}
		cards = append(cards, panelStyle.Render(fmt.Sprintf("%s\n%s  %s", mutedStyle.Render(k.Label), headerStyle.Render(k.Value), change)))
	}
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	s.WriteString("\n\n")

	s.WriteString(headerStyle.Render("Funnel Health"))
	s.WriteString("\n")
	for _, stage := range catalog.Funnel() {
		s.WriteString(fmt.Sprintf("  %-13s %s %3d%%\n", stage.Label, viz.Bar(stage.Percent, 30), stage.Percent))
	}
	s.WriteString("\n")

	s.WriteString(headerStyle.Render("Customer Sentiment"))
	s.WriteString("\n")
	s.WriteString("  " + goodStyle.Render("Positive (80%)") + "  " + mutedStyle.Render("Neutral (15%)") + "  " + badStyle.Render("Negative (5%)"))
	s.WriteString("\n\n")

	s.WriteString(headerStyle.Render("Campaign Recommendations"))
	s.WriteString("\n")
	for _, r := range recommendations {
		s.WriteString(fmt.Sprintf("  %s %s %s\n    %s\n", m.glyph(r.icon), r.title, m.glyph("arrow-right"), mutedStyle.Render(r.detail)))
	}

	s.WriteString(helpStyle.Render("a: Action Insight"))
	return s.String()
}

func (m Model) handleInsightsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "a" {
		return m.dispatch(state.ConfigRequested{Leads: insightLeads})
	}
	return m, nil
}
