// ABOUTME: Config and connection preference subcommands
// ABOUTME: Shows the effective configuration and inspects or resets saved integration flags
package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"sort"

	"github.com/harperreed/nexus/catalog"
	"github.com/harperreed/nexus/config"
	"github.com/harperreed/nexus/prefs"
)

// ConfigShowCommand prints the effective configuration as JSON. The Gemini key
// is never serialized; only whether one is set.
func ConfigShowCommand(stdout io.Writer, cfg *config.Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	fmt.Fprintf(stdout, "# %s\n", config.ConfigPath())
	fmt.Fprintln(stdout, string(data))
	fmt.Fprintf(stdout, "gemini key set: %t\n", cfg.GeminiAPIKey != "")
	return nil
}

// ConnectionsCommand lists durable integration flags, or clears them with --reset.
func ConnectionsCommand(stdout io.Writer, store *prefs.Store, args []string) error {
	fs := flag.NewFlagSet("connections", flag.ContinueOnError)
	reset := fs.Bool("reset", false, "Disconnect every provider")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *reset {
		if err := store.Reset(); err != nil {
			return fmt.Errorf("failed to reset connections: %w", err)
		}
		fmt.Fprintln(stdout, "All providers disconnected")
		return nil
	}

	flags, err := store.LoadConnections()
	if err != nil {
		return fmt.Errorf("failed to load connections: %w", err)
	}

	providers := catalog.Providers()
	sort.SliceStable(providers, func(i, j int) bool {
		return providers[i].Category > providers[j].Category
	})
	for _, p := range providers {
		status := p.OffLabel
		if flags[p.Key] {
			status = p.OnLabel
		}
		fmt.Fprintf(stdout, "%-12s %-20s %s\n", p.Key, p.Name, status)
	}
	return nil
}
