// ABOUTME: TUI search view with list and map sub-modes
// ABOUTME: Optionally sends queries to the assistant backend and renders the transcript
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/nexus/catalog"
	"github.com/harperreed/nexus/models"
	"github.com/harperreed/nexus/search"
	"github.com/harperreed/nexus/state"
)

type searchMode int

const (
	searchList searchMode = iota
	searchMap
)

const (
	mapWidth   = 60
	mapHeight  = 14
	askTimeout = 30 * time.Second
)

var suggestions = []string{"Find SaaS CEOs in Brazil", "Companies around me"}

type searchView struct {
	input   textinput.Model
	spinner spinner.Model

	searched bool
	mode     searchMode
	cursor   int
	chip     int

	showPeople    state.Toggle
	showCompanies state.Toggle

	// assistant mode only
	assistant  bool
	transcript *search.Transcript
}

func newSearchView(assistant bool) searchView {
	input := textinput.New()
	input.Placeholder = "Describe your ideal lead..."
	input.CharLimit = 200
	input.Width = 50
	input.Focus()

	v := searchView{
		input:      input,
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		assistant:  assistant,
		transcript: search.NewTranscript(),
	}
	v.showPeople.Set(true)
	v.showCompanies.Set(true)
	return v
}

func (v searchView) init() tea.Cmd {
	return textinput.Blink
}

func (v searchView) update(msg tea.Msg) (searchView, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if v.transcript.Loading() {
		v.spinner, cmd = v.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}
	v.input, cmd = v.input.Update(msg)
	cmds = append(cmds, cmd)
	return v, tea.Batch(cmds...)
}

// wantsMap mirrors how queries pick the sub-mode: location phrasing opens the map.
func wantsMap(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(q, "around me") || strings.Contains(q, "map")
}

func (v searchView) finish(resp *models.SearchResponse, err error) searchView {
	v.transcript.Finish(resp, err)
	v.cursor = 0
	return v
}

// results is what the list shows: the latest assistant answer, or the whole catalog locally.
func (v searchView) results() []models.Entity {
	if v.assistant {
		return v.transcript.LatestResults()
	}
	return catalog.Entities()
}

// rows orders results people first, then companies, matching the rendered groups.
func (v searchView) rows() []models.Entity {
	var people, companies []models.Entity
	for _, e := range v.results() {
		if e.IsPerson() {
			people = append(people, e)
		} else {
			companies = append(companies, e)
		}
	}
	return append(people, companies...)
}

// pins are the entities currently plotted on the map.
func (v searchView) pins() []models.Entity {
	var out []models.Entity
	for _, e := range v.results() {
		if e.Coords == nil {
			continue
		}
		if e.IsPerson() && !v.showPeople.On() {
			continue
		}
		if e.IsBusiness() && !v.showCompanies.On() {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (v searchView) visible() []models.Entity {
	if v.mode == searchMap {
		return v.pins()
	}
	return v.rows()
}

func (v searchView) clampCursor() searchView {
	n := len(v.visible())
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
	return v
}

func askCmd(s search.Searcher, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
		defer cancel()
		resp, err := s.Search(ctx, query)
		return searchResultMsg{query: query, resp: resp, err: err}
	}
}

func (m Model) submitSearch(query string) (tea.Model, tea.Cmd) {
	query = strings.TrimSpace(query)
	if query == "" {
		return m, nil
	}

	m.search.input.SetValue(query)
	m.search.input.Blur()
	m.search.searched = true
	m.search.cursor = 0
	if wantsMap(query) {
		m.search.mode = searchMap
	} else {
		m.search.mode = searchList
	}

	if m.search.assistant && m.searcher != nil {
		m.search.transcript.Begin(query)
		return m, tea.Batch(m.search.spinner.Tick, askCmd(m.searcher, query))
	}
	return m, nil
}

func (m Model) handleSearchKeys(msg tea.KeyMsg, st state.State) (tea.Model, tea.Cmd) {
	if m.search.input.Focused() {
		switch msg.String() {
		case "enter":
			if m.search.transcript.Loading() {
				return m, nil
			}
			return m.submitSearch(m.search.input.Value())
		case "tab":
			if !m.search.searched {
				chip := suggestions[m.search.chip%len(suggestions)]
				m.search.chip++
				return m.submitSearch(chip)
			}
			return m, nil
		case "esc":
			m.search.input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.search.input, cmd = m.search.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "/", "i":
		return m, m.search.input.Focus()
	case "up", "k":
		if m.search.cursor > 0 {
			m.search.cursor--
		}
	case "down", "j":
		if m.search.cursor < len(m.search.visible())-1 {
			m.search.cursor++
		}
	case "m":
		m.search.mode = searchMap
		m.search = m.search.clampCursor()
	case "l":
		m.search.mode = searchList
		m.search = m.search.clampCursor()
	case "P":
		m.search.showPeople.Flip()
		m.search = m.search.clampCursor()
	case "C":
		m.search.showCompanies.Flip()
		m.search = m.search.clampCursor()
	case " ":
		if !m.search.searched {
			return m, nil
		}
		visible := m.search.visible()
		if m.search.cursor < len(visible) {
			return m.dispatch(state.SelectionToggled{ID: visible[m.search.cursor].ID})
		}
	case "b":
		if st.CanBuildCampaign() {
			return m.dispatch(state.ConfigRequested{Leads: st.Selection.Items()})
		}
	}

	return m, nil
}

func (m Model) renderSearchView(st state.State) string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("NEXUS " + m.glyph("search") + " SEARCH"))
	s.WriteString("\n\n")
	s.WriteString(m.search.input.View())
	s.WriteString("\n\n")

	if !m.search.searched {
		var chips []string
		for _, c := range suggestions {
			chips = append(chips, tabInactiveStyle.Render(c))
		}
		s.WriteString(strings.Join(chips, " "))
		s.WriteString("\n")
		s.WriteString(helpStyle.Render("Enter: Search • Tab: Try a suggestion • Esc: Leave input"))
		return s.String()
	}

	if m.search.assistant {
		s.WriteString(m.renderTranscript())
		s.WriteString("\n")
	}

	if m.search.mode == searchMap {
		s.WriteString(m.renderMap(st))
	} else {
		s.WriteString(m.renderResultList(st))
	}

	if st.CanBuildCampaign() {
		s.WriteString("\n")
		s.WriteString(fmt.Sprintf("%d selected  ", st.Selection.Len()))
		s.WriteString(buttonStyle.Render("b Build Campaign"))
		s.WriteString("\n")
	}

	s.WriteString(m.renderSearchHelp())
	return s.String()
}

func (m Model) renderTranscript() string {
	var s strings.Builder
	msgs := m.search.transcript.Messages()
	// Show the last few exchanges
	if len(msgs) > 6 {
		msgs = msgs[len(msgs)-6:]
	}
	for _, msg := range msgs {
		switch msg.Role {
		case models.RoleUser:
			s.WriteString(accentStyle.Render("You: ") + msg.Content)
		case models.RoleAssistant:
			s.WriteString(headerStyle.Render(m.glyph("sparkles")+" ") + msg.Content)
		default:
			s.WriteString(badStyle.Render(msg.Content))
		}
		s.WriteString("\n")
	}
	if m.search.transcript.Loading() {
		s.WriteString(m.search.spinner.View() + mutedStyle.Render(" Thinking..."))
		s.WriteString("\n")
	}
	return s.String()
}

func (m Model) entityLine(e models.Entity, cursor, selected bool) string {
	marker := "  "
	if cursor {
		marker = "▶ "
	}
	check := "[ ]"
	if selected {
		check = "[" + m.glyph("check") + "]"
	}
	icon := m.glyph("user")
	if e.IsBusiness() {
		icon = m.glyph("building-2")
	}
	line := fmt.Sprintf("%s%s %s %s  %s", marker, check, icon, e.Name, mutedStyle.Render(e.Subtitle()))
	if cursor {
		return selectedStyle.Render(line)
	}
	return line
}

func (m Model) renderResultList(st state.State) string {
	var s strings.Builder
	rows := m.search.rows()
	if len(rows) == 0 {
		s.WriteString(mutedStyle.Render("No matching entities."))
		s.WriteString("\n")
		return s.String()
	}

	var people, companies int
	for _, e := range rows {
		if e.IsPerson() {
			people++
		} else {
			companies++
		}
	}

	for i, e := range rows {
		if i == 0 && people > 0 {
			s.WriteString(headerStyle.Render(fmt.Sprintf("%s People (%d)", m.glyph("users"), people)))
			s.WriteString("\n")
		}
		if i == people && companies > 0 {
			s.WriteString(headerStyle.Render(fmt.Sprintf("%s Companies (%d)", m.glyph("building-2"), companies)))
			s.WriteString("\n")
		}
		s.WriteString(m.entityLine(e, i == m.search.cursor, st.Selection.Has(e.ID)))
		s.WriteString("\n")
	}
	return s.String()
}

func layerLabel(name string, on bool) string {
	if on {
		return tabActiveStyle.Render("● " + name)
	}
	return tabInactiveStyle.Render("○ " + name)
}

func (m Model) renderMap(st state.State) string {
	var s strings.Builder
	s.WriteString(layerLabel("P People", m.search.showPeople.On()))
	s.WriteString(" ")
	s.WriteString(layerLabel("C Companies", m.search.showCompanies.On()))
	s.WriteString("\n")

	grid := make([][]string, mapHeight)
	for y := range grid {
		grid[y] = make([]string, mapWidth)
		for x := range grid[y] {
			grid[y][x] = mutedStyle.Render("·")
		}
	}

	pins := m.search.pins()
	for i, e := range pins {
		x := e.Coords.X * (mapWidth - 1) / 100
		y := e.Coords.Y * (mapHeight - 1) / 100
		if x < 0 || x >= mapWidth || y < 0 || y >= mapHeight {
			continue
		}
		pin := "●"
		if e.IsBusiness() {
			pin = "■"
		}
		switch {
		case i == m.search.cursor:
			grid[y][x] = selectedStyle.Render(pin)
		case st.Selection.Has(e.ID):
			grid[y][x] = goodStyle.Render(pin)
		default:
			grid[y][x] = accentStyle.Render(pin)
		}
	}

	for _, row := range grid {
		s.WriteString(strings.Join(row, ""))
		s.WriteString("\n")
	}
	s.WriteString("\n")

	if len(pins) == 0 {
		s.WriteString(mutedStyle.Render("No entities on the map."))
		s.WriteString("\n")
	}
	for i, e := range pins {
		s.WriteString(m.entityLine(e, i == m.search.cursor, st.Selection.Has(e.ID)))
		s.WriteString("\n")
	}
	return s.String()
}

func (m Model) renderSearchHelp() string {
	help := []string{
		"/: Search",
		"↑/↓: Navigate",
		"Space: Select",
		"m/l: Map/List",
	}
	if m.search.mode == searchMap {
		help = append(help, "P/C: Layers")
	}
	return helpStyle.Render(strings.Join(help, " • "))
}
