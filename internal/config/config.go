package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config mirrors the YAML schema. Every field has a usable default so the
// client works against a local backend with no config file at all.
type Config struct {
	Version int     `yaml:"version"`
	API     API     `yaml:"api"`
	CDN     CDN     `yaml:"cdn"`
	Cache   Cache   `yaml:"cache"`
	Logging Logging `yaml:"logging"`
	UI      UI      `yaml:"ui"`
}

type API struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	UserAgent      string `yaml:"user_agent"`
}

type CDN struct {
	// LogoBaseURL is the host serving team logo SVGs.
	LogoBaseURL string `yaml:"logo_base_url"`
}

type Cache struct {
	DataRoot      string `yaml:"data_root"`
	RecapTTLHours int    `yaml:"recap_ttl_hours"`
}

type Logging struct {
	Level  string `yaml:"level"`  // debug|info|warn|error
	Format string `yaml:"format"` // human|json
}

type UI struct {
	// Mode selects the tab shown on startup: previous | today
	Mode string `yaml:"mode"`
	// Compact hides the date column in narrow terminals.
	Compact bool `yaml:"compact"`
}

const (
	DefaultBaseURL     = "http://localhost:8000"
	DefaultLogoBaseURL = "https://cdn.nba.com"
)

// Default returns the built-in configuration used when no file exists.
func Default() *Config {
	c := &Config{Version: 1}
	c.applyDefaults()
	return c
}

// Load reads, parses, expands, and validates a YAML config file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}
	expanded, err := expandTilde(path)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(expanded)
	if err != nil {
		return nil, err
	}
	// Expand ${ENV} placeholders before unmarshalling
	b = []byte(os.ExpandEnv(string(b)))
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.applyDefaults()
	if c.Cache.DataRoot, err = expandTilde(c.Cache.DataRoot); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadOrDefault loads path if it exists and falls back to Default otherwise.
func LoadOrDefault(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if strings.TrimSpace(c.API.BaseURL) == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.TimeoutSeconds == 0 {
		c.API.TimeoutSeconds = 15
	}
	if strings.TrimSpace(c.API.UserAgent) == "" {
		c.API.UserAgent = "courtside"
	}
	if strings.TrimSpace(c.CDN.LogoBaseURL) == "" {
		c.CDN.LogoBaseURL = DefaultLogoBaseURL
	}
	if strings.TrimSpace(c.Cache.DataRoot) == "" {
		c.Cache.DataRoot = "~/.local/share/courtside"
	}
	if c.Cache.RecapTTLHours == 0 {
		c.Cache.RecapTTLHours = 24
	}
	if strings.TrimSpace(c.UI.Mode) == "" {
		c.UI.Mode = "today"
	}
}

func (c *Config) Validate() error {
	if c.Version != 1 {
		return fmt.Errorf("unsupported config version: %d", c.Version)
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url invalid: %s", c.API.BaseURL)
	}
	if c.API.TimeoutSeconds < 0 {
		return errors.New("api.timeout_seconds must be >= 0")
	}
	if c.Cache.RecapTTLHours < 0 {
		return errors.New("cache.recap_ttl_hours must be >= 0")
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level invalid: %s", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "human", "json":
	default:
		return fmt.Errorf("logging.format invalid: %s", c.Logging.Format)
	}
	switch strings.ToLower(c.UI.Mode) {
	case "previous", "today":
	default:
		return fmt.Errorf("ui.mode invalid: %s", c.UI.Mode)
	}
	return nil
}

// DefaultPath resolves the config file location: flag value, then
// COURTSIDE_CONFIG, then ~/.config/courtside/config.yml.
func DefaultPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv("COURTSIDE_CONFIG"); env != "" {
		return env, nil
	}
	h, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(h, ".config", "courtside", "config.yml"), nil
}

func expandTilde(p string) (string, error) {
	if p == "" {
		return "", nil
	}
	if p[0] != '~' {
		return p, nil
	}
	h, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if p == "~" {
		return h, nil
	}
	return filepath.Join(h, p[2:]), nil
}
