// ABOUTME: Pure reducer over dashboard actions plus a small Store that owns the current state
// ABOUTME: Reduce never mutates its input; side effects are returned for the host to perform
package state

import (
	"strings"

	"github.com/harperreed/nexus/catalog"
	"github.com/harperreed/nexus/models"
)

// Reduce applies a to s and returns the next state with any effects to run.
func Reduce(s State, a Action) (State, []Effect) {
	next := s.clone()

	switch a := a.(type) {
	case TabChanged:
		next.navigate(viewForTab(a.Tab))
		next.Tab = a.Tab
		return next, nil

	case ConfigRequested:
		if len(a.Leads) == 0 {
			return s, nil
		}
		next.Draft = &models.DraftConfig{Leads: append([]int(nil), a.Leads...)}
		next.navigate(ViewConfig)
		next.Tab = TabNone
		return next, nil

	case DraftGenerated:
		if next.Draft == nil {
			return s, nil
		}
		next.Draft.Channels = append([]string(nil), a.Channels...)
		next.Draft.Product = a.Product
		next.navigate(ViewFlow)
		return next, nil

	case Published:
		next.Draft = nil
		next.navigate(ViewCampaigns)
		next.Tab = TabCampaigns
		return next, nil

	case ViewRequested:
		// Config and flow are only reachable through the draft actions
		if !a.View.Valid() || tabForView(a.View) == TabNone {
			return s, []Effect{LogUnknown{Kind: "view", Name: string(a.View)}}
		}
		next.navigate(a.View)
		next.Tab = tabForView(a.View)
		return next, nil

	case SelectionToggled:
		next.Selection.Toggle(a.ID)
		return next, nil

	case SelectionCleared:
		next.Selection.Clear()
		return next, nil

	case ToastShown:
		effects := next.showToast(a.Message)
		return next, effects

	case ToastExpired:
		if a.Generation != next.Toast.Generation {
			return s, nil
		}
		next.Toast.Message = ""
		return next, nil

	case PanelOpened:
		cell := next.panel(a.Panel)
		if cell == nil {
			return s, []Effect{LogUnknown{Kind: "panel", Name: string(a.Panel)}}
		}
		cell.Set(true)
		return next, nil

	case PanelClosed:
		cell := next.panel(a.Panel)
		if cell == nil {
			return s, []Effect{LogUnknown{Kind: "panel", Name: string(a.Panel)}}
		}
		cell.Set(false)
		if a.Panel == PanelIntegrations && next.Policy.Connections == ConnectionsReset {
			for k := range next.Connections {
				next.Connections[k] = Toggle{}
			}
			next.syncWidget()
		}
		return next, nil

	case ConnectionToggled:
		cell, ok := next.Connections[a.Provider]
		if !ok {
			return s, []Effect{LogUnknown{Kind: "provider", Name: a.Provider}}
		}
		on := cell.Flip()
		next.Connections[a.Provider] = cell
		next.syncWidget()

		var effects []Effect
		if on {
			effects = append(effects, next.showToast(connectedMessage(a.Provider))...)
		}
		if next.Policy.Connections == ConnectionsDurable {
			next.ConnectionsRevision++
			effects = append(effects, PersistConnections{Revision: next.ConnectionsRevision, Flags: next.ConnectionFlags()})
		}
		return next, effects

	case ConnectionsLoaded:
		var effects []Effect
		for k, on := range a.Flags {
			cell, ok := next.Connections[k]
			if !ok {
				effects = append(effects, LogUnknown{Kind: "provider", Name: k})
				continue
			}
			cell.Set(on)
			next.Connections[k] = cell
		}
		next.syncWidget()
		return next, effects
	}

	return s, nil
}

// navigate switches the mounted view and applies the selection policy.
func (s *State) navigate(v View) {
	if v != s.View && isPicker(s.View) && s.Policy.Selection == SelectionClearOnLeave {
		s.Selection.Clear()
	}
	s.View = v
}

func (s *State) showToast(msg string) []Effect {
	s.Toast.Generation++
	s.Toast.Message = msg
	if msg == "" {
		return nil
	}
	return []Effect{ScheduleToastExpiry{Generation: s.Toast.Generation, After: s.Policy.ToastDuration}}
}

func (s *State) panel(p Panel) *Toggle {
	switch p {
	case PanelIntegrations:
		return &s.Integrations
	case PanelProfile:
		return &s.Profile
	}
	return nil
}

func (s *State) syncWidget() {
	s.Widget = s.Connections[models.ProviderWhatsApp].On()
}

// tabForView highlights the dock entry that leads to v, or none for action-only views.
func tabForView(v View) Tab {
	switch v {
	case ViewSearch:
		return TabSearch
	case ViewLeads:
		return TabLeads
	case ViewCampaigns:
		return TabCampaigns
	case ViewInbox:
		return TabInbox
	case ViewInsights:
		return TabInsights
	case ViewSettings:
		return TabSettings
	}
	return TabNone
}

func connectedMessage(key string) string {
	if _, ok := catalog.ProviderByKey(key); !ok || key == "" {
		return "Connected"
	}
	return strings.ToUpper(key[:1]) + key[1:] + " Connected"
}

// Store owns the current state. It is not safe for concurrent use; the
// bubbletea event loop is its only caller.
type Store struct {
	state State
}

func NewStore(policy Policy) *Store {
	return &Store{state: New(policy)}
}

// State returns a copy of the current state.
func (st *Store) State() State {
	return st.state.clone()
}

// Dispatch reduces a into the store and returns the effects to perform.
func (st *Store) Dispatch(a Action) []Effect {
	next, effects := Reduce(st.state, a)
	st.state = next
	return effects
}

// Replay folds actions over a fresh state, discarding effects.
func Replay(policy Policy, actions ...Action) State {
	s := New(policy)
	for _, a := range actions {
		s, _ = Reduce(s, a)
	}
	return s
}
