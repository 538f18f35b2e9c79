// ABOUTME: Ordered writer for durable connection flags
// ABOUTME: Drops snapshots older than the last one saved
package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/nexus/state"
)

// connectionWriter orders saves coming from concurrent commands. A snapshot
// older than the last one stored is dropped, so the store never goes backwards.
type connectionWriter struct {
	mu      sync.Mutex
	store   ConnectionStore
	written uint64
}

func newConnectionWriter(store ConnectionStore) *connectionWriter {
	if store == nil {
		return nil
	}
	return &connectionWriter{store: store}
}

// save reports whether the snapshot was written.
func (w *connectionWriter) save(revision uint64, flags map[string]bool) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if revision <= w.written {
		return false, nil
	}
	if err := w.store.SaveConnections(flags); err != nil {
		return false, err
	}
	w.written = revision
	return true, nil
}

func (w *connectionWriter) persistCmd(e state.PersistConnections) tea.Cmd {
	return func() tea.Msg {
		if _, err := w.save(e.Revision, e.Flags); err != nil {
			return prefsErrorMsg{err: err}
		}
		return nil
	}
}
