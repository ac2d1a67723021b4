package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Error filter modes for the read-side cleaner.
const (
	FilterLegacy = "legacy" // substring match on ai_reply ("error", "429", "404")
	FilterTyped  = "typed"  // ai_status field written at intake time
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Store      StoreConfig      `yaml:"store"`
	AI         AIConfig         `yaml:"ai"`
	Moderation ModerationConfig `yaml:"moderation"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release, test
}

// StoreConfig selects the record-store backend.
// Driver is one of: csv, sheets, sqlite, mysql, postgres.
type StoreConfig struct {
	Driver          string `yaml:"driver"`
	Path            string `yaml:"path"` // csv file path
	DSN             string `yaml:"dsn"`  // database DSN
	SpreadsheetID   string `yaml:"spreadsheet_id"`
	CredentialsFile string `yaml:"credentials_file"` // service account JSON for sheets
}

// AIConfig configures the content generator.
// Provider is one of: gemini, openai, anthropic, ollama, or any
// OpenAI-compatible endpoint via base_url.
type AIConfig struct {
	Provider    string  `yaml:"provider"`
	BaseURL     string  `yaml:"base_url"`
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

type ModerationConfig struct {
	ErrorFilter string `yaml:"error_filter"` // legacy, typed
}

func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	var cfg *Config

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, err
		}
		cfg = &fileCfg
	}

	cfg.overrideFromEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "8080",
			Mode: "debug",
		},
		Store: StoreConfig{
			Driver: "csv",
			Path:   "reviews_db.csv",
			DSN:    "reviewboard.db",
		},
		AI: AIConfig{
			Provider: "gemini",
			Model:    "gemini-flash-latest",
		},
		Moderation: ModerationConfig{
			ErrorFilter: FilterLegacy,
		},
	}
}

func (c *Config) overrideFromEnv() {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		c.Server.Port = port
	}
	if mode := os.Getenv("SERVER_MODE"); mode != "" {
		c.Server.Mode = mode
	}
	if driver := os.Getenv("STORE_DRIVER"); driver != "" {
		c.Store.Driver = driver
	}
	if path := os.Getenv("STORE_PATH"); path != "" {
		c.Store.Path = path
	}
	if dsn := os.Getenv("STORE_DSN"); dsn != "" {
		c.Store.DSN = dsn
	}
	if id := os.Getenv("SPREADSHEET_ID"); id != "" {
		c.Store.SpreadsheetID = id
	}
	if creds := os.Getenv("SHEETS_CREDENTIALS_FILE"); creds != "" {
		c.Store.CredentialsFile = creds
	}
	if provider := os.Getenv("AI_PROVIDER"); provider != "" {
		c.AI.Provider = provider
	}
	if baseURL := os.Getenv("AI_BASE_URL"); baseURL != "" {
		c.AI.BaseURL = baseURL
	}
	if model := os.Getenv("AI_MODEL"); model != "" {
		c.AI.Model = model
	}
	// GEMINI_API_KEY takes priority, GOOGLE_API_KEY is the local fallback.
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.AI.APIKey = key
	} else if key := os.Getenv("GOOGLE_API_KEY"); key != "" && c.AI.APIKey == "" {
		c.AI.APIKey = key
	}
	if key := os.Getenv("AI_API_KEY"); key != "" {
		c.AI.APIKey = key
	}
	if filter := os.Getenv("ERROR_FILTER"); filter != "" {
		c.Moderation.ErrorFilter = filter
	}
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case "csv", "sheets", "sqlite", "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported store driver: %s", c.Store.Driver)
	}
	switch c.Moderation.ErrorFilter {
	case FilterLegacy, FilterTyped:
	default:
		return fmt.Errorf("unsupported error filter mode: %s", c.Moderation.ErrorFilter)
	}
	return nil
}

// TypedStatus reports whether records carry the ai_status field.
func (c *Config) TypedStatus() bool {
	return c.Moderation.ErrorFilter == FilterTyped
}
