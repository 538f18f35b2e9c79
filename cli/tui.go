// ABOUTME: Dashboard subcommand
// ABOUTME: Builds the store policy, optional search client and preference store, then runs the bubbletea program
package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/harperreed/nexus/config"
	"github.com/harperreed/nexus/prefs"
	"github.com/harperreed/nexus/search"
	"github.com/harperreed/nexus/state"
	"github.com/harperreed/nexus/tui"
)

// TUICommand runs the interactive dashboard.
func TUICommand(cfg *config.Config, logger *zap.Logger) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the dashboard needs an interactive terminal")
	}

	policy, err := cfg.Policy()
	if err != nil {
		return err
	}

	opts := tui.Options{
		Policy: policy,
		Logger: logger,
	}

	if cfg.SearchURL != "" {
		client := search.NewClient(cfg.SearchURL)
		opts.Searcher = client
		logger.Info("Assistant search enabled",
			zap.String("url", cfg.SearchURL),
			zap.String("session", client.SessionID()))
	}

	if policy.Connections == state.ConnectionsDurable {
		store, err := prefs.Open(cfg.PrefsPath)
		if err != nil {
			return fmt.Errorf("failed to open preferences: %w", err)
		}
		defer store.Close()
		opts.Prefs = store
	}

	p := tea.NewProgram(tui.NewModel(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}
