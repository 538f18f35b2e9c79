// ABOUTME: Application state for the dashboard: active view, dock tab, draft, selection, toast and panels
// ABOUTME: A single State value is owned by the Store and only changed through Reduce
package state

import (
	"fmt"
	"time"

	"github.com/harperreed/nexus/catalog"
	"github.com/harperreed/nexus/models"
)

// View is the top-level feature view currently mounted.
type View string

const (
	ViewSearch    View = "search"
	ViewConfig    View = "config"
	ViewFlow      View = "flow"
	ViewCampaigns View = "campaigns"
	ViewLeads     View = "leads"
	ViewInbox     View = "inbox"
	ViewInsights  View = "insights"
	ViewSettings  View = "settings"
)

var allViews = []View{ViewSearch, ViewConfig, ViewFlow, ViewCampaigns, ViewLeads, ViewInbox, ViewInsights, ViewSettings}

func (v View) Valid() bool {
	for _, known := range allViews {
		if v == known {
			return true
		}
	}
	return false
}

// Tab is the highlighted dock entry. TabNone means nothing is highlighted.
type Tab string

const (
	TabNone      Tab = ""
	TabSearch    Tab = "search"
	TabLeads     Tab = "leads"
	TabCampaigns Tab = "campaigns"
	TabInbox     Tab = "inbox"
	TabInsights  Tab = "insights"
	TabSettings  Tab = "settings"
)

// viewForTab is the fixed dock lookup; anything unrecognised lands on search.
func viewForTab(t Tab) View {
	switch t {
	case TabLeads:
		return ViewLeads
	case TabCampaigns:
		return ViewCampaigns
	case TabInbox:
		return ViewInbox
	case TabInsights:
		return ViewInsights
	case TabSettings:
		return ViewSettings
	default:
		return ViewSearch
	}
}

// Panel identifies a slide-in overlay.
type Panel string

const (
	PanelIntegrations Panel = "integrations"
	PanelProfile      Panel = "profile"
)

// SelectionPolicy decides what happens to chosen entities when navigating away from the pickers.
type SelectionPolicy string

const (
	SelectionClearOnLeave SelectionPolicy = "clear-on-leave"
	SelectionRetain       SelectionPolicy = "retain"
)

// ConnectionPolicy decides how integration toggles survive closing the hub.
type ConnectionPolicy string

const (
	ConnectionsSession ConnectionPolicy = "session"
	ConnectionsReset   ConnectionPolicy = "reset"
	ConnectionsDurable ConnectionPolicy = "durable"
)

// DefaultToastDuration is how long a toast stays on screen.
const DefaultToastDuration = 3000 * time.Millisecond

type Policy struct {
	Selection     SelectionPolicy
	Connections   ConnectionPolicy
	ToastDuration time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		Selection:     SelectionClearOnLeave,
		Connections:   ConnectionsSession,
		ToastDuration: DefaultToastDuration,
	}
}

func ParseSelectionPolicy(s string) (SelectionPolicy, error) {
	switch p := SelectionPolicy(s); p {
	case SelectionClearOnLeave, SelectionRetain:
		return p, nil
	}
	return "", fmt.Errorf("unknown selection policy %q (valid: clear-on-leave, retain)", s)
}

func ParseConnectionPolicy(s string) (ConnectionPolicy, error) {
	switch p := ConnectionPolicy(s); p {
	case ConnectionsSession, ConnectionsReset, ConnectionsDurable:
		return p, nil
	}
	return "", fmt.Errorf("unknown connection policy %q (valid: session, reset, durable)", s)
}

// Toast is the single notification slot. Generation increases on every show so
// expiry timers scheduled for an older message can be recognised and ignored.
type Toast struct {
	Message    string
	Generation uint64
}

func (t Toast) Visible() bool {
	return t.Message != ""
}

type State struct {
	View  View
	Tab   Tab
	Draft *models.DraftConfig

	Selection Set[int]
	Toast     Toast

	Integrations Toggle
	Profile      Toggle

	// Connections holds one cell per known provider key.
	Connections map[string]Toggle
	// Widget is the floating WhatsApp indicator; it always mirrors Connections["whatsapp"].
	Widget bool
	// ConnectionsRevision counts persist requests under the durable policy.
	ConnectionsRevision uint64

	Policy Policy
}

// New returns the state the dashboard boots into: search view, search tab highlighted.
func New(policy Policy) State {
	if policy.ToastDuration <= 0 {
		policy.ToastDuration = DefaultToastDuration
	}
	conns := make(map[string]Toggle)
	for _, p := range catalog.Providers() {
		conns[p.Key] = Toggle{}
	}
	return State{
		View:        ViewSearch,
		Tab:         TabSearch,
		Connections: conns,
		Policy:      policy,
	}
}

func (s State) clone() State {
	out := s
	out.Selection = s.Selection.Clone()
	if s.Draft != nil {
		d := s.Draft.Clone()
		out.Draft = &d
	}
	out.Connections = make(map[string]Toggle, len(s.Connections))
	for k, v := range s.Connections {
		out.Connections[k] = v
	}
	return out
}

// CanRenderFlow guards the flow view: it needs a draft to show.
func (s State) CanRenderFlow() bool {
	return s.View == ViewFlow && s.Draft != nil
}

// CanBuildCampaign reports whether the Build Campaign affordance is shown.
func (s State) CanBuildCampaign() bool {
	return s.Selection.Len() > 0
}

func (s State) PanelOpen(p Panel) bool {
	switch p {
	case PanelIntegrations:
		return s.Integrations.On()
	case PanelProfile:
		return s.Profile.On()
	}
	return false
}

func (s State) Connected(provider string) bool {
	return s.Connections[provider].On()
}

// ConnectionFlags is a plain copy of the connection cells, suitable for persistence.
func (s State) ConnectionFlags() map[string]bool {
	out := make(map[string]bool, len(s.Connections))
	for k, v := range s.Connections {
		out[k] = v.On()
	}
	return out
}

// isPicker reports views that own the entity selection.
func isPicker(v View) bool {
	return v == ViewSearch || v == ViewLeads
}
