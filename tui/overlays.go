// ABOUTME: Slide-in overlays: the integrations hub and the profile menu
// ABOUTME: Both take every key while open and close with esc
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/nexus/catalog"
	"github.com/harperreed/nexus/models"
	"github.com/harperreed/nexus/state"
)

type hubPanel struct {
	cursor int
}

// hubProviders lists providers in display order: social first, then enterprise.
func hubProviders() []models.Provider {
	return append(catalog.ProvidersIn(models.ProviderCategorySocial), catalog.ProvidersIn(models.ProviderCategoryEnterprise)...)
}

func (m Model) renderHubPanel(st state.State) string {
	var s strings.Builder
	s.WriteString(titleStyle.Render(m.glyph("database") + " Integrations Hub"))
	s.WriteString("\n")

	providers := hubProviders()
	category := ""
	for i, p := range providers {
		if p.Category != category {
			category = p.Category
			heading := "Social & Identity"
			if category == models.ProviderCategoryEnterprise {
				heading = "Enterprise & ERP"
			}
			s.WriteString("\n")
			s.WriteString(headerStyle.Render(heading))
			s.WriteString("\n")
		}

		label := p.OffLabel
		status := mutedStyle.Render("○ " + label)
		if st.Connected(p.Key) {
			label = p.OnLabel
			status = goodStyle.Render("● " + label)
		}
		line := fmt.Sprintf("%s %-20s %-32s %s", m.glyph(p.Icon), p.Name, mutedStyle.Render(p.Description), status)
		if i == m.hub.cursor {
			line = selectedStyle.Render("▶ " + line)
		} else {
			line = "  " + line
		}
		s.WriteString(line)
		s.WriteString("\n")
	}

	s.WriteString(helpStyle.Render("↑/↓: Navigate • Space: Connect/Disconnect • Esc: Close"))
	return panelStyle.Render(s.String())
}

func (m Model) handleHubKeys(msg tea.KeyMsg, st state.State) (tea.Model, tea.Cmd) {
	providers := hubProviders()

	switch msg.String() {
	case "up", "k":
		if m.hub.cursor > 0 {
			m.hub.cursor--
		}
	case "down", "j":
		if m.hub.cursor < len(providers)-1 {
			m.hub.cursor++
		}
	case " ", "enter":
		if m.hub.cursor < len(providers) {
			return m.dispatch(state.ConnectionToggled{Provider: providers[m.hub.cursor].Key})
		}
	case "esc", "d", "q":
		return m.dispatch(state.PanelClosed{Panel: state.PanelIntegrations})
	}
	return m, nil
}

type profileItem struct {
	icon, label string
	// view is where the item navigates; empty items are placeholders
	view state.View
}

var profileMenu = []profileItem{
	{icon: "user", label: "My Profile"},
	{icon: "settings", label: "Workspace Settings", view: state.ViewSettings},
	{icon: "shield", label: "Billing", view: state.ViewSettings},
}

type profilePanel struct {
	cursor int
}

func (m Model) renderProfilePanel() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("Felix Admin"))
	s.WriteString("\n")
	s.WriteString(mutedStyle.Render("Workspace Owner"))
	s.WriteString("\n\n")
	s.WriteString(headerStyle.Render("Account"))
	s.WriteString("\n")
	for i, item := range profileMenu {
		line := fmt.Sprintf("%s %s", m.glyph(item.icon), item.label)
		if i == m.profile.cursor {
			line = selectedStyle.Render("▶ " + line)
		} else {
			line = "  " + line
		}
		s.WriteString(line)
		s.WriteString("\n")
	}
	s.WriteString(helpStyle.Render("↑/↓: Navigate • Enter: Open • Esc: Close"))
	return panelStyle.Render(s.String())
}

func (m Model) handleProfileKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.profile.cursor > 0 {
			m.profile.cursor--
		}
	case "down", "j":
		if m.profile.cursor < len(profileMenu)-1 {
			m.profile.cursor++
		}
	case "enter":
		item := profileMenu[m.profile.cursor]
		if item.view == "" {
			return m, nil
		}
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m, cmd = m.dispatch(state.ViewRequested{View: item.view})
		cmds = append(cmds, cmd)
		m, cmd = m.dispatch(state.PanelClosed{Panel: state.PanelProfile})
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	case "esc", "p", "q":
		return m.dispatch(state.PanelClosed{Panel: state.PanelProfile})
	}
	return m, nil
}
