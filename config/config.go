// ABOUTME: Configuration for the nexus dashboard, search server and tools
// ABOUTME: Layers defaults, the JSON file at XDG config home, an optional .env file and environment overrides
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"

	"github.com/harperreed/nexus/state"
)

const (
	// AppName names the XDG subdirectories used for config, data and logs.
	AppName = "nexus"

	// ConfigFileName is the JSON file inside the config directory.
	ConfigFileName = "config.json"

	DefaultPort        = 8000
	DefaultGeminiModel = "gemini-2.5-flash"
)

// Config holds every setting the binary needs. The Gemini key is only read
// from the environment and never written back to disk.
type Config struct {
	// SearchURL points the search view at a backend. Empty means catalog-only search.
	SearchURL string `json:"search_url,omitempty"`

	Port   int    `json:"port"`
	DBPath string `json:"db_path"`

	// LogPath is where zap writes; the TUI owns stdout.
	LogPath string `json:"log_path"`

	// PrefsPath is the badger directory used by the durable connection policy.
	PrefsPath string `json:"prefs_path"`

	SelectionPolicy  string `json:"selection_policy"`
	ConnectionPolicy string `json:"connection_policy"`
	ToastMS          int    `json:"toast_ms"`

	GeminiAPIKey string `json:"-"`
	GeminiModel  string `json:"gemini_model,omitempty"`

	// AllowedOrigins is the CORS allow-list for the search server.
	AllowedOrigins []string `json:"allowed_origins,omitempty"`

	Verbose bool `json:"verbose"`
}

// DefaultConfig returns a config with XDG default paths and the stock policies.
func DefaultConfig() *Config {
	return &Config{
		Port:             DefaultPort,
		DBPath:           filepath.Join(xdg.DataHome, AppName, "nexus.db"),
		LogPath:          filepath.Join(xdg.StateHome, AppName, "nexus.log"),
		PrefsPath:        filepath.Join(xdg.DataHome, AppName, "prefs"),
		SelectionPolicy:  string(state.SelectionClearOnLeave),
		ConnectionPolicy: string(state.ConnectionsSession),
		ToastMS:          int(state.DefaultToastDuration / time.Millisecond),
		GeminiModel:      DefaultGeminiModel,
		AllowedOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		},
	}
}

// ConfigPath returns the XDG location of the config file.
func ConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, ConfigFileName)
}

// Load reads the config from the default locations.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath(), ".env")
}

// LoadFrom reads the JSON file at path (missing is fine), then loads envFile
// into the process environment if it exists, then applies environment overrides.
func LoadFrom(path, envFile string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides:
// - NEXUS_SEARCH_URL
// - NEXUS_PORT
// - NEXUS_DB_PATH
// - NEXUS_LOG_PATH
// - NEXUS_PREFS_PATH
// - NEXUS_SELECTION_POLICY
// - NEXUS_CONNECTION_POLICY
// - NEXUS_TOAST_MS
// - NEXUS_ALLOWED_ORIGINS (comma separated)
// - GEMINI_API_KEY
// - NEXUS_GEMINI_MODEL
// - NEXUS_VERBOSE.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("NEXUS_SEARCH_URL"); v != "" {
		cfg.SearchURL = v
	}
	if v := os.Getenv("NEXUS_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid NEXUS_PORT %q: %w", v, err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("NEXUS_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("NEXUS_LOG_PATH"); v != "" {
		cfg.LogPath = v
	}
	if v := os.Getenv("NEXUS_PREFS_PATH"); v != "" {
		cfg.PrefsPath = v
	}
	if v := os.Getenv("NEXUS_SELECTION_POLICY"); v != "" {
		cfg.SelectionPolicy = v
	}
	if v := os.Getenv("NEXUS_CONNECTION_POLICY"); v != "" {
		cfg.ConnectionPolicy = v
	}
	if v := os.Getenv("NEXUS_TOAST_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid NEXUS_TOAST_MS %q: %w", v, err)
		}
		cfg.ToastMS = ms
	}
	if v := os.Getenv("NEXUS_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.AllowedOrigins = origins
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.GeminiAPIKey = v
	}
	if v := os.Getenv("NEXUS_GEMINI_MODEL"); v != "" {
		cfg.GeminiModel = v
	}
	if v := os.Getenv("NEXUS_VERBOSE"); v != "" {
		verbose, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid NEXUS_VERBOSE %q: %w", v, err)
		}
		cfg.Verbose = verbose
	}
	return nil
}

// Validate rejects settings the rest of the program cannot act on.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.ToastMS <= 0 {
		return fmt.Errorf("toast duration must be positive, got %dms", c.ToastMS)
	}
	if _, err := state.ParseSelectionPolicy(c.SelectionPolicy); err != nil {
		return err
	}
	if _, err := state.ParseConnectionPolicy(c.ConnectionPolicy); err != nil {
		return err
	}
	if c.DBPath == "" {
		return errors.New("db path is empty")
	}
	return nil
}

// Policy converts the string settings into the store policy.
func (c *Config) Policy() (state.Policy, error) {
	sel, err := state.ParseSelectionPolicy(c.SelectionPolicy)
	if err != nil {
		return state.Policy{}, err
	}
	conn, err := state.ParseConnectionPolicy(c.ConnectionPolicy)
	if err != nil {
		return state.Policy{}, err
	}
	return state.Policy{
		Selection:     sel,
		Connections:   conn,
		ToastDuration: time.Duration(c.ToastMS) * time.Millisecond,
	}, nil
}

// Addr is the listen address for the search server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Save writes the config to the default location.
func (c *Config) Save() error {
	return c.SaveTo(ConfigPath())
}

func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
