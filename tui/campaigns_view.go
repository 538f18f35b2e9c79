package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/nexus/catalog"
	"github.com/harperreed/nexus/models"
	"github.com/harperreed/nexus/state"
	"github.com/harperreed/nexus/viz"
)

// campaignsView expands rows independently; several can be open at once.
type campaignsView struct {
	cursor   int
	expanded state.Set[int]
}

func sentimentStyle(sentiment string) string {
	switch sentiment {
	case models.SentimentHigh:
		return goodStyle.Render("● high")
	case models.SentimentLow:
		return badStyle.Render("● low")
	default:
		return mutedStyle.Render("● neutral")
	}
}

func (m Model) renderCampaignsView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Active Operations"))
	s.WriteString("\n")

	for i, c := range catalog.Campaigns() {
		marker := "  "
		if i == m.campaigns.cursor {
			marker = "▶ "
		}
		chevron := m.glyph("chevron-down")
		if m.campaigns.expanded.Has(c.ID) {
			chevron = m.glyph("chevron-up")
		}

		status := mutedStyle.Render("Paused")
		if c.Status {
			status = goodStyle.Render("Active")
		}

		var icons []string
		for _, ch := range catalog.ChannelsByIDs(c.Channels) {
			icons = append(icons, m.glyph(ch.Icon))
		}

		title := fmt.Sprintf("%s%s  %s", marker, c.Name, mutedStyle.Render(fmt.Sprintf("%d leads", c.Leads)))
		if i == m.campaigns.cursor {
			title = selectedStyle.Render(title)
		}
		s.WriteString(title)
		s.WriteString("\n")

		s.WriteString(fmt.Sprintf("    %s  %s  %s  %s %d/%d Sent  %s\n",
			status,
			strings.Join(icons, " "),
			sentimentStyle(c.Sentiment),
			viz.Bar(c.Progress(), 20),
			c.Sent, c.Leads,
			chevron,
		))

		details := []string{"Sent via SendGrid"}
		if c.Replies > 0 {
			details = append(details, fmt.Sprintf("%d Replies", c.Replies))
		}
		if c.Tips != "" {
			details = append(details, accentStyle.Render(m.glyph("sparkles")+" "+c.Tips))
		}
		s.WriteString("    " + mutedStyle.Render(strings.Join(details, " • ")))
		s.WriteString("\n")

		if m.campaigns.expanded.Has(c.ID) {
			s.WriteString(m.renderCampaignDrawer(c))
		}
		s.WriteString("\n")
	}

	help := []string{"↑/↓: Navigate", "Enter: Expand/Collapse"}
	s.WriteString(helpStyle.Render(strings.Join(help, " • ")))
	return s.String()
}

func (m Model) renderCampaignDrawer(c models.Campaign) string {
	var s strings.Builder
	for _, ch := range catalog.ChannelsByIDs(c.Channels) {
		setting := "VOLUME THROTTLE  240/day"
		if ch.ID == models.ChannelFacebook || ch.ID == models.ChannelInstagram {
			setting = "BUDGET  $50.00 / day"
		}
		s.WriteString(fmt.Sprintf("      %s %s Config  %s\n", m.glyph(ch.Icon), ch.ID, mutedStyle.Render(setting)))
	}
	return s.String()
}

func (m Model) handleCampaignsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	campaigns := catalog.Campaigns()

	switch msg.String() {
	case "up", "k":
		if m.campaigns.cursor > 0 {
			m.campaigns.cursor--
		}
	case "down", "j":
		if m.campaigns.cursor < len(campaigns)-1 {
			m.campaigns.cursor++
		}
	case "enter", " ":
		if m.campaigns.cursor < len(campaigns) {
			m.campaigns.expanded.Toggle(campaigns[m.campaigns.cursor].ID)
		}
	}
	return m, nil
}
