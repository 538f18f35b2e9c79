// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Root model owns the state store and turns reducer effects into commands
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/harperreed/nexus/logging"
	"github.com/harperreed/nexus/models"
	"github.com/harperreed/nexus/search"
	"github.com/harperreed/nexus/state"
)

// ConnectionStore persists integration flags under the durable policy.
type ConnectionStore interface {
	LoadConnections() (map[string]bool, error)
	SaveConnections(flags map[string]bool) error
}

type Options struct {
	Policy state.Policy
	// Searcher enables assistant search mode when set.
	Searcher search.Searcher
	// Prefs is only consulted under the durable connection policy.
	Prefs  ConnectionStore
	Logger *zap.Logger
}

// Model is the main bubbletea model
type Model struct {
	store    *state.Store
	searcher search.Searcher
	prefs    ConnectionStore
	writer   *connectionWriter
	logger   *zap.Logger

	// Feature view state, local to each view
	search    searchView
	entities  entitiesView
	config    configView
	flow      flowView
	campaigns campaignsView
	inbox     inboxView
	settings  settingsView
	hub       hubPanel
	profile   profilePanel

	missing map[string]bool

	// UI state
	width  int
	height int
}

// Messages produced by commands
type (
	toastExpiredMsg      struct{ generation uint64 }
	connectionsLoadedMsg struct{ flags map[string]bool }
	prefsErrorMsg        struct{ err error }
	searchResultMsg      struct {
		query string
		resp  *models.SearchResponse
		err   error
	}
)

// NewModel creates a new TUI model
func NewModel(opts Options) Model {
	return Model{
		store:    state.NewStore(opts.Policy),
		searcher: opts.Searcher,
		prefs:    opts.Prefs,
		writer:   newConnectionWriter(opts.Prefs),
		logger:   logging.OrNop(opts.Logger),
		search:   newSearchView(opts.Searcher != nil),
		entities: newEntitiesView(),
		config:   newConfigView(),
		inbox:    newInboxView(),
		settings: newSettingsView(),
		missing:  make(map[string]bool),
		width:    100,
		height:   30,
	}
}

// State exposes a snapshot of the store, mostly for tests and the CLI.
func (m Model) State() state.State {
	return m.store.State()
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.search.init()}
	if m.prefs != nil && m.store.State().Policy.Connections == state.ConnectionsDurable {
		cmds = append(cmds, m.loadConnections)
	}
	return tea.Batch(cmds...)
}

func (m Model) loadConnections() tea.Msg {
	flags, err := m.prefs.LoadConnections()
	if err != nil {
		return prefsErrorMsg{err: err}
	}
	return connectionsLoadedMsg{flags: flags}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case toastExpiredMsg:
		return m.dispatch(state.ToastExpired{Generation: msg.generation})
	case connectionsLoadedMsg:
		return m.dispatch(state.ConnectionsLoaded{Flags: msg.flags})
	case prefsErrorMsg:
		m.logger.Error("Preference store failed", zap.Error(msg.err))
		return m, nil
	case searchResultMsg:
		m.search = m.search.finish(msg.resp, msg.err)
		if msg.err != nil {
			m.logger.Warn("Assistant search failed", zap.String("query", msg.query), zap.Error(msg.err))
		}
		return m, nil
	}

	// Spinner ticks and cursor blinks belong to the search view
	var cmd tea.Cmd
	m.search, cmd = m.search.update(msg)
	return m, cmd
}

// dispatch runs one action through the store and interprets the resulting effects.
func (m Model) dispatch(a state.Action) (Model, tea.Cmd) {
	before := m.store.State().View
	effects := m.store.Dispatch(a)
	if after := m.store.State().View; after != before {
		m = m.mount(after)
	}

	var cmds []tea.Cmd
	for _, effect := range effects {
		switch e := effect.(type) {
		case state.ScheduleToastExpiry:
			gen := e.Generation
			cmds = append(cmds, tea.Tick(e.After, func(time.Time) tea.Msg {
				return toastExpiredMsg{generation: gen}
			}))
		case state.PersistConnections:
			if m.writer != nil {
				cmds = append(cmds, m.writer.persistCmd(e))
			}
		case state.LogUnknown:
			m.logger.Warn("Unknown lookup ignored", zap.String("kind", e.Kind), zap.String("name", e.Name))
		}
	}
	return m, tea.Batch(cmds...)
}

// mount resets the local state of a view that just became visible.
func (m Model) mount(v state.View) Model {
	switch v {
	case state.ViewSearch:
		transcript := m.search.transcript
		m.search = newSearchView(m.search.assistant)
		m.search.transcript = transcript
	case state.ViewLeads:
		m.entities = newEntitiesView()
	case state.ViewConfig:
		m.config = newConfigView()
	case state.ViewFlow:
		m.flow = flowView{}
	case state.ViewCampaigns:
		m.campaigns = campaignsView{}
	case state.ViewInbox:
		m.inbox = newInboxView()
	case state.ViewSettings:
		m.settings = newSettingsView()
	}
	return m
}

func (m Model) toast(msg string) (Model, tea.Cmd) {
	return m.dispatch(state.ToastShown{Message: msg})
}

func (m Model) missingIcon(name string) {
	if m.missing[name] {
		return
	}
	m.missing[name] = true
	m.logger.Warn("Icon not found", zap.String("icon", name))
}

func (m Model) View() string {
	st := m.store.State()

	var body string
	switch st.View {
	case state.ViewSearch:
		body = m.renderSearchView(st)
	case state.ViewLeads:
		body = m.renderEntitiesView(st)
	case state.ViewConfig:
		body = m.renderConfigView(st)
	case state.ViewFlow:
		body = m.renderFlowView(st)
	case state.ViewCampaigns:
		body = m.renderCampaignsView()
	case state.ViewInbox:
		body = m.renderInboxView()
	case state.ViewInsights:
		body = m.renderInsightsView()
	case state.ViewSettings:
		body = m.renderSettingsView()
	}

	switch {
	case st.Integrations.On():
		body = m.renderHubPanel(st)
	case st.Profile.On():
		body = m.renderProfilePanel()
	}

	sections := []string{body}
	if st.Widget {
		sections = append(sections, widgetStyle.Render(m.glyph("message-circle")+" WhatsApp live"))
	}
	if st.Toast.Visible() {
		sections = append(sections, toastStyle.Render(m.glyph("check")+" "+st.Toast.Message))
	}
	sections = append(sections, m.renderDock(st))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	st := m.store.State()

	// Overlays sit above the view and take every key while open
	if st.Integrations.On() {
		return m.handleHubKeys(msg, st)
	}
	if st.Profile.On() {
		return m.handleProfileKeys(msg)
	}

	// A focused text field swallows keys that would otherwise navigate
	if st.View == state.ViewSearch && m.search.input.Focused() {
		return m.handleSearchKeys(msg, st)
	}
	if st.View == state.ViewInbox && m.inbox.reply.Focused() {
		return m.handleInboxKeys(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "1", "2", "3", "4", "5", "6":
		// Configuration uses the digits to pick channels
		if st.View != state.ViewConfig {
			return m.dispatch(state.TabChanged{Tab: dockTabs[msg.String()[0]-'1'].tab})
		}
	case "d":
		m.hub.cursor = 0
		return m.dispatch(state.PanelOpened{Panel: state.PanelIntegrations})
	case "p":
		// On the entity directory "p" filters to people instead
		if st.View != state.ViewLeads {
			m.profile.cursor = 0
			return m.dispatch(state.PanelOpened{Panel: state.PanelProfile})
		}
	}

	// Delegate to view-specific handlers
	switch st.View {
	case state.ViewSearch:
		return m.handleSearchKeys(msg, st)
	case state.ViewLeads:
		return m.handleEntitiesKeys(msg, st)
	case state.ViewConfig:
		return m.handleConfigKeys(msg, st)
	case state.ViewFlow:
		return m.handleFlowKeys(msg, st)
	case state.ViewCampaigns:
		return m.handleCampaignsKeys(msg)
	case state.ViewInbox:
		return m.handleInboxKeys(msg)
	case state.ViewInsights:
		return m.handleInsightsKeys(msg)
	case state.ViewSettings:
		return m.handleSettingsKeys(msg)
	}

	return m, nil
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	goodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	badStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63"))

	buttonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("63")).
			Padding(0, 1)

	disabledButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Background(lipgloss.Color("236")).
				Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	toastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("22")).
			Padding(0, 2)

	widgetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("28")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)
)
