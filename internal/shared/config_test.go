package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "pams.db" {
			t.Errorf("expected database path pams.db, got %s", config.Database.Path)
		}

		if config.Search.Limit != 20 {
			t.Errorf("expected search limit 20, got %d", config.Search.Limit)
		}

		if config.Credentials.MusicBrainz.RateLimit != 1.0 {
			t.Errorf("expected musicbrainz rate limit 1.0, got %f", config.Credentials.MusicBrainz.RateLimit)
		}

		if config.Credentials.Songlink.BaseURL != "https://api.song.link/v1-alpha.1" {
			t.Errorf("expected songlink base URL https://api.song.link/v1-alpha.1, got %s", config.Credentials.Songlink.BaseURL)
		}

		if config.Credentials.Spotify.ClientID != "" {
			t.Errorf("expected empty spotify client_id, got %s", config.Credentials.Spotify.ClientID)
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

		testConfig := `[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[search]
limit = 5

[credentials.spotify]
client_id = "test_client_id"
client_secret = "test_secret"

[credentials.musicbrainz]
user_agent = "test-agent/1.0"
rate_limit = 0.5

[credentials.songlink]
base_url = "http://localhost:9090"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Search.Limit != 5 {
			t.Errorf("expected search limit 5, got %d", config.Search.Limit)
		}

		if config.Credentials.Spotify.ClientID != "test_client_id" {
			t.Errorf("expected spotify client_id test_client_id, got %s", config.Credentials.Spotify.ClientID)
		}

		if config.Credentials.MusicBrainz.RateLimit != 0.5 {
			t.Errorf("expected musicbrainz rate limit 0.5, got %f", config.Credentials.MusicBrainz.RateLimit)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		if !errors.Is(err, ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})
}
