// ABOUTME: Tests for the dashboard TUI
// ABOUTME: Drives the root model with synthetic key presses and checks store state and rendering
package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/nexus/models"
	"github.com/harperreed/nexus/prefs"
	"github.com/harperreed/nexus/state"
)

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press feeds keys one at a time and returns the model with the last command.
func press(m Model, keys ...string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var updated tea.Model
		updated, cmd = m.Update(keyMsg(k))
		m = updated.(Model)
	}
	return m, cmd
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(Model)
	}
	return m
}

func newTestModel() Model {
	return NewModel(Options{Policy: state.DefaultPolicy()})
}

func TestStartsOnSearch(t *testing.T) {
	m := newTestModel()
	st := m.State()
	assert.Equal(t, state.ViewSearch, st.View)
	assert.Equal(t, state.TabSearch, st.Tab)

	out := m.View()
	assert.Contains(t, out, "ideal lead")
	assert.Contains(t, out, "Find SaaS CEOs in Brazil")
	assert.Contains(t, out, "Inbox (2)")
}

func TestDockNavigation(t *testing.T) {
	m, _ := press(newTestModel(), "esc", "4")
	assert.Equal(t, state.ViewInbox, m.State().View)

	m, _ = press(m, "6")
	st := m.State()
	assert.Equal(t, state.ViewSettings, st.View)
	assert.Equal(t, state.TabSettings, st.Tab)
	assert.Contains(t, m.View(), "Mastercard ending in 4242")

	m, _ = press(m, "down", "down")
	assert.Contains(t, m.View(), "Section under construction")
}

func TestSearchToPublishFlow(t *testing.T) {
	m := typeText(newTestModel(), "vtex")
	m, _ = press(m, "enter")
	require.True(t, m.search.searched)
	assert.Equal(t, searchList, m.search.mode)
	assert.Contains(t, m.View(), "People (3)")

	// Elena is first; select her and Sarah
	m, _ = press(m, "space", "down", "down", "space")
	assert.Equal(t, []int{1, 3}, m.State().Selection.Items())
	assert.Contains(t, m.View(), "Build Campaign")

	m, _ = press(m, "b")
	st := m.State()
	assert.Equal(t, state.ViewConfig, st.View)
	assert.Equal(t, state.TabNone, st.Tab)
	require.NotNil(t, st.Draft)
	assert.Equal(t, []int{1, 3}, st.Draft.Leads)
	assert.Contains(t, m.View(), "Targeting 2 entities")

	m, _ = press(m, "1", "3", "right", "enter")
	st = m.State()
	assert.Equal(t, state.ViewFlow, st.View)
	assert.Equal(t, []string{models.ChannelEmail, models.ChannelWhatsApp}, st.Draft.Channels)
	assert.Equal(t, "Enterprise API", st.Draft.Product)
	assert.Contains(t, m.View(), "Opportunity: {{Company}} x Enterprise API")
	assert.Contains(t, m.View(), "Sarah Jones")

	m, _ = press(m, "right")
	assert.Contains(t, m.View(), "Want me to send the PDF?")

	m, _ = press(m, "enter")
	st = m.State()
	assert.Equal(t, state.ViewCampaigns, st.View)
	assert.Equal(t, state.TabCampaigns, st.Tab)
	assert.Nil(t, st.Draft)
}

func TestGenerateDraftsNeedsChannelAndProduct(t *testing.T) {
	m, _ := press(newTestModel(), "esc", "5", "a")
	require.Equal(t, state.ViewConfig, m.State().View)
	assert.Equal(t, []int{1, 2, 3}, m.State().Draft.Leads)

	m, _ = press(m, "enter")
	assert.Equal(t, state.ViewConfig, m.State().View)

	m, _ = press(m, "2", "enter")
	assert.Equal(t, state.ViewConfig, m.State().View, "no product chosen yet")

	m, _ = press(m, "left", "enter")
	assert.Equal(t, state.ViewFlow, m.State().View)
	assert.Equal(t, "Free Tech Audit", m.State().Draft.Product)
}

func TestConfigMountsFresh(t *testing.T) {
	m, _ := press(newTestModel(), "esc", "5", "a", "1", "esc")
	require.Equal(t, state.ViewSearch, m.State().View)

	m, _ = press(m, "esc", "5", "a")
	assert.Equal(t, 0, m.config.channels.Len())
}

func TestMapModeFromQuery(t *testing.T) {
	m := typeText(newTestModel(), "Companies around me")
	m, _ = press(m, "enter")
	assert.Equal(t, searchMap, m.search.mode)
	assert.Len(t, m.search.pins(), 6)

	m, _ = press(m, "C")
	pins := m.search.pins()
	require.Len(t, pins, 3)
	for _, e := range pins {
		assert.True(t, e.IsPerson())
	}

	m, _ = press(m, "l")
	assert.Equal(t, searchList, m.search.mode)
}

func TestSuggestionChip(t *testing.T) {
	m, _ := press(newTestModel(), "tab")
	assert.True(t, m.search.searched)
	assert.Equal(t, "Find SaaS CEOs in Brazil", m.search.input.Value())
	assert.Equal(t, searchList, m.search.mode)
}

func TestSelectionClearsWhenLeavingPicker(t *testing.T) {
	m, _ := press(newTestModel(), "esc", "2", "space")
	require.Equal(t, 1, m.State().Selection.Len())

	m, _ = press(m, "3")
	assert.Equal(t, 0, m.State().Selection.Len())
}

func TestSelectionRetainPolicy(t *testing.T) {
	policy := state.DefaultPolicy()
	policy.Selection = state.SelectionRetain
	m, _ := press(NewModel(Options{Policy: policy}), "esc", "2", "space", "3", "2")
	assert.Equal(t, 1, m.State().Selection.Len())
}

func TestEntitiesFilterAndToasts(t *testing.T) {
	m, _ := press(newTestModel(), "esc", "2", "p")
	assert.Equal(t, state.ViewLeads, m.State().View, "p filters people here instead of opening the profile")
	assert.False(t, m.State().Profile.On())
	assert.Contains(t, m.View(), "Showing 3 of 6")

	m, _ = press(m, "c")
	assert.Contains(t, m.View(), "Showing 3 of 6")

	m, cmd := press(m, "i")
	assert.Equal(t, "Importing CSV...", m.State().Toast.Message)
	assert.NotNil(t, cmd, "toast schedules its expiry")
}

func TestToastExpiryIgnoresStaleTimer(t *testing.T) {
	m, _ := press(newTestModel(), "esc", "2", "i")
	first := m.State().Toast.Generation
	m, _ = press(m, "n")
	second := m.State().Toast.Generation
	require.NotEqual(t, first, second)

	updated, _ := m.Update(toastExpiredMsg{generation: first})
	m = updated.(Model)
	assert.Equal(t, "Add Entity form coming soon", m.State().Toast.Message)

	updated, _ = m.Update(toastExpiredMsg{generation: second})
	m = updated.(Model)
	assert.False(t, m.State().Toast.Visible())
}

func TestCampaignRowsExpandIndependently(t *testing.T) {
	m, _ := press(newTestModel(), "esc", "3", "enter", "down", "enter")
	assert.True(t, m.campaigns.expanded.Has(1))
	assert.True(t, m.campaigns.expanded.Has(2))
	assert.Contains(t, m.View(), "VOLUME THROTTLE")

	m, _ = press(m, "enter")
	assert.False(t, m.campaigns.expanded.Has(2))
	assert.True(t, m.campaigns.expanded.Has(1))
}

func TestInboxReply(t *testing.T) {
	m, _ := press(newTestModel(), "esc", "4")
	assert.Contains(t, m.View(), "Thanks for the docs!")

	m, _ = press(m, "r")
	require.True(t, m.inbox.reply.Focused())
	m = typeText(m, "Tomorrow at 10?")
	m, _ = press(m, "enter")
	require.Len(t, m.inbox.sent, 1)
	assert.Equal(t, "Tomorrow at 10?", m.inbox.sent[0].Text)
	assert.Equal(t, "", m.inbox.reply.Value())

	m, _ = press(m, "esc", "tab", "tab")
	assert.Contains(t, m.View(), "System Notification")
	assert.Contains(t, m.View(), "View Details")
}

func TestWhatsAppWidgetFollowsHub(t *testing.T) {
	m, _ := press(newTestModel(), "esc", "d")
	require.True(t, m.State().Integrations.On())
	assert.Contains(t, m.View(), "Integrations Hub")

	// google, meta, whatsapp
	m, _ = press(m, "down", "down", "space")
	st := m.State()
	assert.True(t, st.Widget)
	assert.Equal(t, "Whatsapp Connected", st.Toast.Message)

	m, _ = press(m, "up", "space")
	assert.True(t, m.State().Widget, "other providers leave the widget alone")

	m, _ = press(m, "esc")
	assert.False(t, m.State().Integrations.On())
	assert.Contains(t, m.View(), "WhatsApp live")

	m, _ = press(m, "d", "down", "down", "space")
	assert.False(t, m.State().Widget)
}

func TestProfileOpensSettings(t *testing.T) {
	m, _ := press(newTestModel(), "esc", "p")
	require.True(t, m.State().Profile.On())

	m, _ = press(m, "down", "enter")
	st := m.State()
	assert.False(t, st.Profile.On())
	assert.Equal(t, state.ViewSettings, st.View)
	assert.Equal(t, state.TabSettings, st.Tab)
}

func TestInsightsRender(t *testing.T) {
	m, _ := press(newTestModel(), "esc", "5")
	out := m.View()
	assert.Contains(t, out, "Funnel Health")
	assert.Contains(t, out, "Total Revenue")
	assert.Contains(t, out, "Retarget")
}

func TestInsightsActionBuildsDraft(t *testing.T) {
	m, _ := press(newTestModel(), "esc", "5", "a")
	st := m.State()
	assert.Equal(t, state.ViewConfig, st.View)
	assert.Equal(t, state.TabNone, st.Tab)
	require.NotNil(t, st.Draft)
	assert.Equal(t, []int{1, 2, 3}, st.Draft.Leads)
	assert.Contains(t, m.View(), "Targeting 3 entities")
}

func TestFlowGuardRendersWithoutDraft(t *testing.T) {
	m := newTestModel()
	st := state.New(state.DefaultPolicy())
	st.View = state.ViewFlow
	assert.Contains(t, m.renderFlowView(st), "Nothing to preview yet")

	_, cmd := m.handleFlowKeys(keyMsg("enter"), st)
	assert.Nil(t, cmd)
}

func TestViewRequestedCannotOpenFlow(t *testing.T) {
	m, _ := newTestModel().dispatch(state.ViewRequested{View: state.ViewFlow})
	assert.Equal(t, state.ViewSearch, m.State().View)
	assert.Nil(t, m.State().Draft)
}

type fakeSearcher struct {
	resp *models.SearchResponse
	err  error
}

func (f fakeSearcher) Search(ctx context.Context, query string) (*models.SearchResponse, error) {
	return f.resp, f.err
}

func runCmd(m Model, cmd tea.Cmd) Model {
	if cmd == nil {
		return m
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			if r, ok := c().(searchResultMsg); ok {
				updated, _ := m.Update(r)
				m = updated.(Model)
			}
		}
		return m
	}
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func TestAssistantSearch(t *testing.T) {
	m := NewModel(Options{Policy: state.DefaultPolicy(), Searcher: fakeSearcher{resp: &models.SearchResponse{
		Summary: "Found 1 entities",
		Results: []models.Entity{{ID: 2, Type: models.EntityPerson, Name: "Marcus Chen", Role: "Head of Growth", Company: "Nubank"}},
	}}})

	m = typeText(m, "nubank")
	m, cmd := press(m, "enter")
	require.True(t, m.search.transcript.Loading())
	assert.Contains(t, m.View(), "Thinking...")

	m = runCmd(m, cmd)
	assert.False(t, m.search.transcript.Loading())
	out := m.View()
	assert.Contains(t, out, "Found 1 entities")
	assert.Contains(t, out, "Marcus Chen")

	m, _ = press(m, "space", "b")
	assert.Equal(t, []int{2}, m.State().Draft.Leads)
}

func TestAssistantFailureShowsSystemMessage(t *testing.T) {
	m := NewModel(Options{Policy: state.DefaultPolicy(), Searcher: fakeSearcher{err: errors.New("connection refused")}})
	m = typeText(m, "nubank")
	m, cmd := press(m, "enter")
	m = runCmd(m, cmd)

	last, ok := m.search.transcript.Last()
	require.True(t, ok)
	assert.Equal(t, models.RoleSystem, last.Role)
	assert.Contains(t, m.View(), "Could not reach the search service")
}

// runAll executes cmd and any batched commands, returning the messages they produced.
func runAll(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, runAll(c)...)
	}
	return out
}

func durableModel(t *testing.T) (Model, *prefs.Store) {
	t.Helper()
	store, err := prefs.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	policy := state.DefaultPolicy()
	policy.Connections = state.ConnectionsDurable
	policy.ToastDuration = time.Millisecond
	return NewModel(Options{Policy: policy, Prefs: store}), store
}

func TestDurableConnectionsRoundTrip(t *testing.T) {
	m, store := durableModel(t)
	m, _ = press(m, "esc", "d", "down", "down")
	m, cmd := press(m, "space")
	require.NotNil(t, cmd)
	runAll(cmd)

	flags, err := store.LoadConnections()
	require.NoError(t, err)
	assert.True(t, flags[models.ProviderWhatsApp])

	// A fresh model picks the flag back up on Init
	policy := m.State().Policy
	fresh := NewModel(Options{Policy: policy, Prefs: store})
	updated, _ := fresh.Update(fresh.loadConnections())
	fresh = updated.(Model)
	assert.True(t, fresh.State().Widget)
}

func TestOutOfOrderSavesKeepLatestFlags(t *testing.T) {
	m, store := durableModel(t)
	m, _ = press(m, "esc", "d", "down", "down")
	m, connect := press(m, "space")
	m, disconnect := press(m, "space")
	require.False(t, m.State().Widget)

	// The later save lands first; the stale one must not overwrite it
	runAll(disconnect)
	runAll(connect)

	flags, err := store.LoadConnections()
	require.NoError(t, err)
	assert.False(t, flags[models.ProviderWhatsApp])

	fresh := NewModel(Options{Policy: m.State().Policy, Prefs: store})
	updated, _ := fresh.Update(fresh.loadConnections())
	assert.False(t, updated.(Model).State().Widget)
}

type failingStore struct{}

func (failingStore) LoadConnections() (map[string]bool, error) { return nil, errors.New("disk gone") }
func (failingStore) SaveConnections(map[string]bool) error     { return errors.New("disk gone") }

func TestConnectionWriterReportsErrors(t *testing.T) {
	w := newConnectionWriter(failingStore{})
	msg := w.persistCmd(state.PersistConnections{Revision: 1})()
	_, ok := msg.(prefsErrorMsg)
	assert.True(t, ok)

	// A failed write does not advance the revision
	assert.Equal(t, uint64(0), w.written)
	assert.Nil(t, newConnectionWriter(nil))
}

func TestIconFor(t *testing.T) {
	icon, ok := IconFor("mail")
	require.True(t, ok)
	assert.Equal(t, IconMail, icon)
	assert.NotEmpty(t, icon.Glyph())

	_, ok = IconFor("credit-card")
	assert.False(t, ok)

	m := newTestModel()
	assert.Equal(t, "", m.glyph("credit-card"))
	assert.True(t, m.missing["credit-card"])
}

func TestEveryCatalogIconResolves(t *testing.T) {
	m := newTestModel()
	for _, view := range []string{"1", "2", "3", "4", "5", "6", "d"} {
		m, _ = press(m, "esc", view)
		_ = m.View()
		m, _ = press(m, "esc")
	}
	var missing []string
	for name := range m.missing {
		missing = append(missing, name)
	}
	assert.Empty(t, missing, strings.Join(missing, ", "))
}
