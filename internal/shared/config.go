package shared

import (
	_ "embed"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Fetcher FetcherConfig `toml:"fetcher"`
	Target  TargetConfig  `toml:"target"`
	Server  ServerConfig  `toml:"server"`
	Chat    ChatConfig    `toml:"chat"`
	Log     LogConfig     `toml:"log"`
}

// FetcherConfig contains settings for retrieving source pages.
type FetcherConfig struct {
	UserAgent      string `toml:"user_agent"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	MaxBodyBytes   int64  `toml:"max_body_bytes"`
}

// TargetConfig describes the service that search links are generated for.
type TargetConfig struct {
	SearchURL string `toml:"search_url"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host      string  `toml:"host"`
	Port      int     `toml:"port"`
	RateLimit float64 `toml:"rate_limit"` // inbound requests per second
	Burst     int     `toml:"burst"`
}

// ChatConfig contains settings for the chat layer and batch conversions.
type ChatConfig struct {
	HistoryLimit int `toml:"history_limit"`
	Workers      int `toml:"workers"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// Timeout returns the fetch timeout as a [time.Duration].
func (f FetcherConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Validate reports the first out-of-range or malformed setting.
func (c *Config) Validate() error {
	if c.Fetcher.UserAgent == "" {
		return fmt.Errorf("%w: fetcher.user_agent must not be empty", ErrInvalidConfig)
	}
	if c.Fetcher.TimeoutSeconds <= 0 {
		return fmt.Errorf("%w: fetcher.timeout_seconds must be positive", ErrInvalidConfig)
	}
	if c.Fetcher.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: fetcher.max_body_bytes must be positive", ErrInvalidConfig)
	}

	u, err := url.Parse(c.Target.SearchURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: target.search_url must be an absolute URL", ErrInvalidConfig)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port out of range: %d", ErrInvalidConfig, c.Server.Port)
	}
	if c.Server.RateLimit < 0 || c.Server.Burst < 0 {
		return fmt.Errorf("%w: server rate limit settings must not be negative", ErrInvalidConfig)
	}
	if c.Chat.HistoryLimit <= 0 {
		return fmt.Errorf("%w: chat.history_limit must be positive", ErrInvalidConfig)
	}
	if c.Chat.Workers <= 0 {
		return fmt.Errorf("%w: chat.workers must be positive", ErrInvalidConfig)
	}

	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}

	return nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Values missing from the file keep the defaults from the embedded example config.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
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
