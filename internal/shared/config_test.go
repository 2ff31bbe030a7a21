package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Server.BaseURL != "http://localhost:5000" {
			t.Errorf("expected base URL http://localhost:5000, got %s", config.Server.BaseURL)
		}

		if config.Database.Path != "movie-suggestor.db" {
			t.Errorf("expected database path movie-suggestor.db, got %s", config.Database.Path)
		}

		if config.Import.MaxFileSize != 10485760 {
			t.Errorf("expected max file size 10485760, got %d", config.Import.MaxFileSize)
		}

		if config.Import.NumWorkers != 5 {
			t.Errorf("expected 5 workers, got %d", config.Import.NumWorkers)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[server]
base_url = "http://tracker.local:8000"

[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[import]
max_file_size = 1048576
rate_limit = 2.5
num_workers = 3
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Server.BaseURL != "http://tracker.local:8000" {
			t.Errorf("expected base URL http://tracker.local:8000, got %s", config.Server.BaseURL)
		}
		if config.Database.MaxOpenConns != 20 {
			t.Errorf("expected 20 max open conns, got %d", config.Database.MaxOpenConns)
		}
		if config.Import.RateLimit != 2.5 {
			t.Errorf("expected rate limit 2.5, got %v", config.Import.RateLimit)
		}
	})

	t.Run("LoadConfig fails for missing file", func(t *testing.T) {
		if _, err := LoadConfig("/nonexistent/config.toml"); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("LoadConfig fails for malformed TOML", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "bad.toml")
		if err := os.WriteFile(configPath, []byte("[server\nbase_url ="), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected error for malformed TOML")
		}
	})
}
