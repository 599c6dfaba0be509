package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Search      SearchConfig      `toml:"search"`
	Database    DatabaseConfig    `toml:"database"`
}

// CredentialsConfig contains service-specific credentials and endpoints.
type CredentialsConfig struct {
	Spotify     SpotifyConfig     `toml:"spotify"`
	MusicBrainz MusicBrainzConfig `toml:"musicbrainz"`
	Songlink    SonglinkConfig    `toml:"songlink"`
}

// SpotifyConfig contains Spotify API credentials for the client-credentials grant.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// MusicBrainzConfig contains MusicBrainz client settings.
// MusicBrainz rejects anonymous clients, so UserAgent is mandatory, and its
// rate policy allows one request per second per client.
type MusicBrainzConfig struct {
	UserAgent string  `toml:"user_agent"`
	RateLimit float64 `toml:"rate_limit"`
}

// SonglinkConfig contains Songlink (Odesli) API settings.
type SonglinkConfig struct {
	BaseURL string `toml:"base_url"`
}

// SearchConfig contains search behavior settings.
type SearchConfig struct {
	Limit int `toml:"limit"` // candidate count requested from the catalog
}

// DatabaseConfig contains local result cache settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingConfig, err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
