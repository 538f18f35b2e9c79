// ABOUTME: Search backend subcommand
// ABOUTME: Seeds the entity table and serves /api/search until interrupted
package cli

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/harperreed/nexus/assistant"
	"github.com/harperreed/nexus/catalog"
	"github.com/harperreed/nexus/config"
	"github.com/harperreed/nexus/db"
	"github.com/harperreed/nexus/web"
)

// ServeCommand runs the search backend on the configured port.
func ServeCommand(database *sql.DB, cfg *config.Config, logger *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	port := fs.Int("port", cfg.Port, "Port to listen on")
	host := fs.String("host", "127.0.0.1", "Interface to bind")

	if err := fs.Parse(args); err != nil {
		return err
	}

	seeded, err := db.SeedEntities(database, catalog.Entities())
	if err != nil {
		return fmt.Errorf("failed to seed entities: %w", err)
	}
	if seeded > 0 {
		logger.Info("Seeded entity table", zap.Int("entities", seeded))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := assistant.New(ctx, assistant.Options{
		GeminiAPIKey: cfg.GeminiAPIKey,
		GeminiModel:  cfg.GeminiModel,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	server := web.NewServer(database, a, web.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
	})

	addr := fmt.Sprintf("%s:%d", *host, *port)
	fmt.Printf("Search server listening on http://%s (assistant: %s)\n", addr, a.Name())
	return server.Start(ctx, addr)
}
