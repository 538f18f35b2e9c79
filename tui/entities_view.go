package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/nexus/catalog"
	"github.com/harperreed/nexus/models"
	"github.com/harperreed/nexus/state"
)

type entitiesView struct {
	typeFilter string
	cursor     int
}

func newEntitiesView() entitiesView {
	return entitiesView{typeFilter: catalog.FilterAll}
}

func (v entitiesView) rows() []models.Entity {
	return catalog.FilterEntities(v.typeFilter)
}

func (m Model) renderEntitiesView(st state.State) string {
	var s strings.Builder

	groups := catalog.Groups()
	var sidebar strings.Builder
	sidebar.WriteString(headerStyle.Render("Segments"))
	sidebar.WriteString("\n")
	for i, g := range groups {
		line := fmt.Sprintf("%-18s %3d", g.Label, g.Count)
		if i == 0 {
			line = selectedStyle.Render(line)
		}
		sidebar.WriteString(line)
		sidebar.WriteString("\n")
	}

	entities := m.entities.rows()

	var main strings.Builder
	main.WriteString(titleStyle.Render(groups[0].Label))
	main.WriteString("\n")
	main.WriteString(m.renderTypeFilter())
	main.WriteString("\n\n")
	main.WriteString(m.renderEntitiesTable(entities, st))
	main.WriteString("\n")
	main.WriteString(mutedStyle.Render(fmt.Sprintf("Showing %d of %d", len(entities), len(catalog.Entities()))))

	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panelStyle.Render(sidebar.String()), "  ", main.String()))
	s.WriteString("\n")

	if st.CanBuildCampaign() {
		s.WriteString(fmt.Sprintf("%d selected  ", st.Selection.Len()))
		s.WriteString(buttonStyle.Render("b Build Campaign"))
		s.WriteString("\n")
	}

	s.WriteString(m.renderEntitiesHelp())
	return s.String()
}

func (m Model) renderTypeFilter() string {
	filters := []struct{ id, label string }{
		{catalog.FilterAll, "a All"},
		{catalog.FilterPerson, "p People"},
		{catalog.FilterBusiness, "c Companies"},
	}
	var rendered []string
	for _, f := range filters {
		if f.id == m.entities.typeFilter {
			rendered = append(rendered, tabActiveStyle.Render(f.label))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(f.label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderEntitiesTable(entities []models.Entity, st state.State) string {
	columns := []table.Column{
		{Title: " ", Width: 3},
		{Title: "Entity", Width: 24},
		{Title: "Detail", Width: 28},
		{Title: "Status", Width: 12},
		{Title: "Source", Width: 20},
	}

	var rows []table.Row
	for _, e := range entities {
		mark := ""
		if st.Selection.Has(e.ID) {
			mark = m.glyph("check")
		}
		name := e.Name
		if e.IsBusiness() {
			name += " BIZ"
		}
		rows = append(rows, table.Row{mark, name, e.Subtitle(), e.Status, e.Source})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(len(rows)+1),
	)

	if m.entities.cursor < len(rows) {
		t.SetCursor(m.entities.cursor)
	}

	return t.View()
}

func (m Model) renderEntitiesHelp() string {
	help := []string{
		"↑/↓: Navigate",
		"Space: Select",
		"a/p/c: Filter",
		"i: Import CSV",
		"n: Add Entity",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleEntitiesKeys(msg tea.KeyMsg, st state.State) (tea.Model, tea.Cmd) {
	rows := m.entities.rows()

	switch msg.String() {
	case "up", "k":
		if m.entities.cursor > 0 {
			m.entities.cursor--
		}
	case "down", "j":
		if m.entities.cursor < len(rows)-1 {
			m.entities.cursor++
		}
	case "a":
		m.entities = entitiesView{typeFilter: catalog.FilterAll}
	case "p":
		m.entities = entitiesView{typeFilter: catalog.FilterPerson}
	case "c":
		m.entities = entitiesView{typeFilter: catalog.FilterBusiness}
	case " ":
		if m.entities.cursor < len(rows) {
			return m.dispatch(state.SelectionToggled{ID: rows[m.entities.cursor].ID})
		}
	case "b":
		if st.CanBuildCampaign() {
			return m.dispatch(state.ConfigRequested{Leads: st.Selection.Items()})
		}
	case "i":
		return m.toast("Importing CSV...")
	case "n":
		return m.toast("Add Entity form coming soon")
	}

	return m, nil
}
