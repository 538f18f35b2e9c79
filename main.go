// ABOUTME: Entry point for the nexus dashboard, search server and MCP tools
// ABOUTME: Routes to the TUI, HTTP backend, MCP server or CLI commands based on arguments
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/harperreed/nexus/cli"
	"github.com/harperreed/nexus/config"
	"github.com/harperreed/nexus/db"
	"github.com/harperreed/nexus/logging"
	"github.com/harperreed/nexus/prefs"
)

const version = "0.1.0"

func main() {
	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	dbPath := flag.String("db-path", "", "Database path (default: ~/.local/share/nexus/nexus.db)")
	verbose := flag.Bool("verbose", false, "Debug logging")

	// Parse global flags but don't fail on unknown (for subcommands)
	_ = flag.CommandLine.Parse(os.Args[1:])

	// Handle version flag
	if *showVersion {
		fmt.Printf("nexus version %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *verbose {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Get remaining args after flags
	args := flag.Args()

	// The dashboard is the default command
	command := "tui"
	var commandArgs []string
	if len(args) > 0 {
		command = args[0]
		commandArgs = args[1:]
	}

	switch command {
	case "tui":
		// The TUI owns the terminal, so logs always go to the file
		logger := newLogger(cfg.LogPath, cfg.Verbose)
		defer func() { _ = logger.Sync() }()

		if err := cli.TUICommand(cfg, logger); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "serve":
		logger := newLogger("", cfg.Verbose)
		defer func() { _ = logger.Sync() }()

		database, err := db.OpenDatabase(cfg.DBPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer database.Close()

		log.Printf("Nexus database: %s", cfg.DBPath)

		if err := cli.ServeCommand(database, cfg, logger, commandArgs); err != nil {
			log.Fatalf("Search server failed: %v", err)
		}

	case "mcp":
		// MCP speaks on stdout; nothing else may write there
		database, err := db.OpenDatabase(cfg.DBPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer database.Close()

		if err := cli.MCPCommand(database, version); err != nil {
			log.Fatalf("MCP server failed: %v", err)
		}

	case "search":
		if err := cli.SearchCommand(os.Stdout, cfg.SearchURL, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "insights":
		if err := cli.InsightsCommand(os.Stdout); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "viz":
		if len(commandArgs) < 2 || commandArgs[0] != "graph" {
			fmt.Println("Error: viz requires 'graph' and a type (campaign, draft, or pipeline)")
			printUsage()
			os.Exit(1)
		}

		graphType := commandArgs[1]
		graphArgs := commandArgs[2:]

		switch graphType {
		case "campaign":
			err = cli.VizGraphCampaignCommand(os.Stdout, graphArgs)
		case "draft":
			err = cli.VizGraphDraftCommand(os.Stdout, graphArgs)
		case "pipeline":
			err = cli.VizGraphPipelineCommand(os.Stdout, graphArgs)
		default:
			fmt.Printf("Unknown graph type: %s\n\n", graphType)
			printUsage()
			os.Exit(1)
		}
		if err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "config":
		if err := cli.ConfigShowCommand(os.Stdout, cfg); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "connections":
		store, err := prefs.Open(cfg.PrefsPath)
		if err != nil {
			log.Fatalf("Failed to open preferences: %v", err)
		}
		defer store.Close()

		if err := cli.ConnectionsCommand(os.Stdout, store, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "help":
		printUsage()

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func newLogger(path string, verbose bool) *zap.Logger {
	logger, err := logging.New(logging.Options{Path: path, Verbose: verbose})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	return logger
}

func printUsage() {
	fmt.Printf(`nexus v%s - CRM outreach dashboard

USAGE:
  nexus [global flags] [command] [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --db-path <path>       Database path (default: ~/.local/share/nexus/nexus.db)
  --verbose              Debug logging

COMMANDS:
  tui                    Interactive dashboard (default)
  serve                  Search backend for assistant search mode
  mcp                    Start MCP server for agent clients
  search <query>         One-shot query against the search backend
  insights               Print the KPI and funnel dashboard
  viz                    Visualization commands
  config                 Show the effective configuration
  connections            List or reset saved integration connections

SERVE:
  nexus serve
    --port <n>               Port (default: 8000 or NEXUS_PORT)
    --host <addr>            Interface to bind (default: 127.0.0.1)

SEARCH:
  nexus search [flags] <query>
    --url <url>              Backend base URL (default: NEXUS_SEARCH_URL)
    --timeout <duration>     Request timeout (default: 30s)

VIZ COMMANDS:
  nexus viz graph campaign <id>  Campaign leads, channels and sentiment
    --output <file>               Output file (default: stdout)

  nexus viz graph draft          Campaign draft before publishing
    --leads <ids>                 Comma separated entity IDs (required)
    --channels <ids>              Comma separated channels (default: email)
    --product <name>              Product or offer name (required)
    --output <file>               Output file (default: stdout)

  nexus viz graph pipeline       Every campaign in one graph
    --output <file>               Output file (default: stdout)

CONNECTIONS:
  nexus connections              List saved provider flags
    --reset                       Disconnect every provider

ENVIRONMENT:
  NEXUS_SEARCH_URL, NEXUS_PORT, NEXUS_DB_PATH, NEXUS_LOG_PATH, NEXUS_PREFS_PATH,
  NEXUS_SELECTION_POLICY (clear-on-leave|retain),
  NEXUS_CONNECTION_POLICY (session|reset|durable), NEXUS_TOAST_MS,
  NEXUS_ALLOWED_ORIGINS, GEMINI_API_KEY, NEXUS_GEMINI_MODEL, NEXUS_VERBOSE

EXAMPLES:
  # Run the search backend and point the dashboard at it
  nexus serve &
  NEXUS_SEARCH_URL=http://127.0.0.1:8000 nexus

  # Render a draft as PNG
  nexus viz graph draft --leads 1,3 --channels email,whatsapp --product "Enterprise API" | dot -Tpng > draft.png

`, version)
}
