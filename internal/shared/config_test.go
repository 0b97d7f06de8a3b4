package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Storage.Path != "./tunes.db" {
			t.Errorf("expected storage path ./tunes.db, got %s", config.Storage.Path)
		}

		if config.Search.BaseURL != "https://itunes.apple.com" {
			t.Errorf("expected search base URL https://itunes.apple.com, got %s", config.Search.BaseURL)
		}

		if got := config.Search.Debounce(); got != 300*time.Millisecond {
			t.Errorf("expected debounce 300ms, got %v", got)
		}

		if got := config.Search.Timeout(); got != 10*time.Second {
			t.Errorf("expected timeout 10s, got %v", got)
		}

		if config.Share.BaseURL != "https://tunes.local/" {
			t.Errorf("expected share base URL https://tunes.local/, got %s", config.Share.BaseURL)
		}

		if err := config.Validate(); err != nil {
			t.Errorf("default config should validate: %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Storage.Path != DefaultConfig().Storage.Path {
			t.Errorf("created config storage path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[search]
base_url = "http://localhost:9090"
debounce_ms = 150

[storage]
path = "/custom/path.db"

[log]
level = "debug"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Search.BaseURL != "http://localhost:9090" {
			t.Errorf("expected base URL http://localhost:9090, got %s", config.Search.BaseURL)
		}
		if config.Search.DebounceMS != 150 {
			t.Errorf("expected debounce 150, got %d", config.Search.DebounceMS)
		}
		if config.Storage.Path != "/custom/path.db" {
			t.Errorf("expected storage path /custom/path.db, got %s", config.Storage.Path)
		}
		if config.Log.Level != "debug" {
			t.Errorf("expected log level debug, got %s", config.Log.Level)
		}

		if config.Search.Burst != 5 {
			t.Errorf("expected unset burst to keep default 5, got %d", config.Search.Burst)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("LoadConfig Invalid", func(t *testing.T) {
		tc := []struct {
			name    string
			content string
		}{
			{name: "malformed toml", content: "[search\nbase_url ="},
			{name: "empty base url", content: "[search]\nbase_url = \"\""},
			{name: "negative debounce", content: "[search]\ndebounce_ms = -1"},
			{name: "empty storage path", content: "[storage]\npath = \"\""},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				configPath := filepath.Join(t.TempDir(), "config.toml")
				if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
					t.Fatalf("failed to write test config: %v", err)
				}

				_, err := LoadConfig(configPath)
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
			})
		}
	})
}
