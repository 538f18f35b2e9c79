package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/nexus/catalog"
)

var settingsSections = []string{"General", "Billing", "Team", "Notifications"}

type settingsView struct {
	section int
}

// newSettingsView opens on billing, the only section with content.
func newSettingsView() settingsView {
	return settingsView{section: 1}
}

type invoice struct {
	date, amount, status string
}

var invoices = []invoice{
	{date: "Feb 12, 2026", amount: "$49.00", status: "Paid"},
	{date: "Jan 12, 2026", amount: "$49.00", status: "Paid"},
	{date: "Dec 12, 2025", amount: "$49.00", status: "Paid"},
}

func (m Model) renderSettingsView() string {
	var nav strings.Builder
	nav.WriteString(headerStyle.Render("Settings"))
	nav.WriteString("\n")
	for i, section := range settingsSections {
		if i == m.settings.section {
			nav.WriteString(selectedStyle.Render("▶ " + section))
		} else {
			nav.WriteString("  " + section)
		}
		nav.WriteString("\n")
	}

	var body strings.Builder
	if settingsSections[m.settings.section] == "Billing" {
		body.WriteString(titleStyle.Render("Available Plans"))
		body.WriteString("\n")
		var plans []string
		for _, p := range catalog.Plans() {
			label := fmt.Sprintf("%s\n%s", p.Name, p.Price)
			if p.Current {
				label += "\n" + goodStyle.Render("Current plan")
			}
			plans = append(plans, panelStyle.Render(label))
		}
		body.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, plans...))
		body.WriteString("\n\n")

		body.WriteString(headerStyle.Render("Payment Method"))
		body.WriteString("\n")
		body.WriteString("Mastercard ending in 4242  " + mutedStyle.Render("Expires 12/28"))
		body.WriteString("\n\n")

		body.WriteString(headerStyle.Render("Invoice History"))
		body.WriteString("\n")
		for _, inv := range invoices {
			body.WriteString(fmt.Sprintf("%-14s %s %s\n", inv.date, goodStyle.Render(inv.status), inv.amount))
		}
	} else {
		body.WriteString(mutedStyle.Render("Section under construction"))
	}

	var s strings.Builder
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, nav.String(), "   ", body.String()))
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("↑/↓: Section"))
	return s.String()
}

func (m Model) handleSettingsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.settings.section > 0 {
			m.settings.section--
		}
	case "down", "j":
		if m.settings.section < len(settingsSections)-1 {
			m.settings.section++
		}
	}
	return m, nil
}
