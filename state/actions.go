// ABOUTME: Tagged-union actions accepted by Reduce and the effects it asks the host to run
// ABOUTME: Effects keep the reducer pure; the TUI turns them into timers and persistence commands
package state

import "time"

// Action is implemented only by the types in this file.
type Action interface {
	isAction()
}

// TabChanged is a dock press.
type TabChanged struct{ Tab Tab }

// ConfigRequested commits the picked entities and opens the configuration view.
type ConfigRequested struct{ Leads []int }

// DraftGenerated merges the chosen channels and product into the draft.
type DraftGenerated struct {
	Channels []string
	Product  string
}

// Published finishes the draft and returns to the campaigns list.
type Published struct{}

// ViewRequested jumps straight to a view and highlights the matching tab (profile menu).
type ViewRequested struct{ View View }

type SelectionToggled struct{ ID int }

type SelectionCleared struct{}

type ToastShown struct{ Message string }

// ToastExpired is delivered by the timer scheduled for Generation.
type ToastExpired struct{ Generation uint64 }

type PanelOpened struct{ Panel Panel }

type PanelClosed struct{ Panel Panel }

type ConnectionToggled struct{ Provider string }

// ConnectionsLoaded restores persisted connection flags.
type ConnectionsLoaded struct{ Flags map[string]bool }

func (TabChanged) isAction()        {}
func (ConfigRequested) isAction()   {}
func (DraftGenerated) isAction()    {}
func (Published) isAction()         {}
func (ViewRequested) isAction()     {}
func (SelectionToggled) isAction()  {}
func (SelectionCleared) isAction()  {}
func (ToastShown) isAction()        {}
func (ToastExpired) isAction()      {}
func (PanelOpened) isAction()       {}
func (PanelClosed) isAction()       {}
func (ConnectionToggled) isAction() {}
func (ConnectionsLoaded) isAction() {}

// Effect is work the host performs after a reduction.
type Effect interface {
	isEffect()
}

// ScheduleToastExpiry asks for ToastExpired{Generation} to be dispatched after the delay.
type ScheduleToastExpiry struct {
	Generation uint64
	After      time.Duration
}

// PersistConnections asks for the flags to be written to durable storage.
// Revision increases with every request; a writer must drop any request
// older than the last one it stored.
type PersistConnections struct {
	Revision uint64
	Flags    map[string]bool
}

// LogUnknown reports a lookup that found nothing (unknown view, panel or provider).
type LogUnknown struct {
	Kind string
	Name string
}

func (ScheduleToastExpiry) isEffect() {}
func (PersistConnections) isEffect()  {}
func (LogUnknown) isEffect()          {}
