package config

import (
	"os"
	"path/filepath"
	"testing"
)

// clearEnv blanks every variable the loader reads so ambient shell state
// cannot leak into a test. t.Setenv restores the originals on cleanup.
func clearEnv(t *testing.T) {
	t.Helper()
	vars := []string{
		"SERVER_HOST", "SERVER_PORT", "SERVER_MODE",
		"STORE_DRIVER", "STORE_PATH", "STORE_DSN",
		"SPREADSHEET_ID", "SHEETS_CREDENTIALS_FILE",
		"AI_PROVIDER", "AI_BASE_URL", "AI_MODEL",
		"GEMINI_API_KEY", "GOOGLE_API_KEY", "AI_API_KEY",
		"ERROR_FILTER",
	}
	for _, v := range vars {
		t.Setenv(v, "")
	}
}

func missingPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "no-such-config.yaml")
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(missingPath(t))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, expected 8080", cfg.Server.Port)
	}
	if cfg.Store.Driver != "csv" {
		t.Errorf("Driver = %q, expected csv", cfg.Store.Driver)
	}
	if cfg.Store.Path != "reviews_db.csv" {
		t.Errorf("Path = %q, expected reviews_db.csv", cfg.Store.Path)
	}
	if cfg.AI.Provider != "gemini" {
		t.Errorf("Provider = %q, expected gemini", cfg.AI.Provider)
	}
	if cfg.Moderation.ErrorFilter != FilterLegacy {
		t.Errorf("ErrorFilter = %q, expected %q", cfg.Moderation.ErrorFilter, FilterLegacy)
	}
	if cfg.TypedStatus() {
		t.Errorf("TypedStatus() = true for legacy filter")
	}
}

func TestLoad_FromYAMLFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  host: 127.0.0.1
  port: "9090"
  mode: release
store:
  driver: sqlite
  dsn: test.db
ai:
  provider: ollama
  model: llama3
moderation:
  error_filter: typed
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != "9090" || cfg.Server.Mode != "release" {
		t.Errorf("server config = %+v", cfg.Server)
	}
	if cfg.Store.Driver != "sqlite" || cfg.Store.DSN != "test.db" {
		t.Errorf("store config = %+v", cfg.Store)
	}
	if cfg.AI.Provider != "ollama" || cfg.AI.Model != "llama3" {
		t.Errorf("ai config = %+v", cfg.AI)
	}
	if !cfg.TypedStatus() {
		t.Errorf("TypedStatus() = false for typed filter")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("STORE_DSN", "host=localhost user=app dbname=reviews")
	t.Setenv("AI_PROVIDER", "openai")
	t.Setenv("AI_MODEL", "gpt-4o-mini")
	t.Setenv("ERROR_FILTER", "typed")

	cfg, err := Load(missingPath(t))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != "3000" {
		t.Errorf("Port = %q, expected 3000", cfg.Server.Port)
	}
	if cfg.Store.Driver != "postgres" {
		t.Errorf("Driver = %q, expected postgres", cfg.Store.Driver)
	}
	if cfg.AI.Provider != "openai" || cfg.AI.Model != "gpt-4o-mini" {
		t.Errorf("ai config = %+v", cfg.AI)
	}
	if cfg.Moderation.ErrorFilter != FilterTyped {
		t.Errorf("ErrorFilter = %q, expected typed", cfg.Moderation.ErrorFilter)
	}
}

func TestLoad_APIKeyPrecedence(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"google key alone", map[string]string{"GOOGLE_API_KEY": "g1"}, "g1"},
		{"gemini beats google", map[string]string{"GOOGLE_API_KEY": "g1", "GEMINI_API_KEY": "g2"}, "g2"},
		{"generic key wins", map[string]string{"GEMINI_API_KEY": "g2", "AI_API_KEY": "a1"}, "a1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load(missingPath(t))
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if cfg.AI.APIKey != tt.want {
				t.Errorf("APIKey = %q, expected %q", cfg.AI.APIKey, tt.want)
			}
		})
	}
}

func TestLoad_RejectsInvalidDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "mongodb")

	if _, err := Load(missingPath(t)); err == nil {
		t.Errorf("Load() accepted an unsupported store driver")
	}
}

func TestLoad_RejectsInvalidFilterMode(t *testing.T) {
	clearEnv(t)
	t.Setenv("ERROR_FILTER", "regex")

	if _, err := Load(missingPath(t)); err == nil {
		t.Errorf("Load() accepted an unsupported filter mode")
	}
}
