// Package config loads and saves the cazechat settings file.
//
// Only connection and presentation settings live here. Conversations are
// held in memory for the lifetime of the process and are never written to
// disk.
package config

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cazelabs/cazechat/internal/errors"
)

const (
	// DefaultEndpoint is the chat endpoint of a locally running backend.
	DefaultEndpoint = "http://localhost:8000/chat/"

	// DefaultBackendHost is prefixed to server-provided file paths.
	DefaultBackendHost = "http://localhost:8000"
)

// Config holds the application configuration
type Config struct {
	Endpoint             string `json:"endpoint,omitempty"`              // URL submissions are POSTed to
	BackendHost          string `json:"backend_host,omitempty"`          // Host prefixed to assistant file links
	Theme                string `json:"theme,omitempty"`                 // UI theme name (e.g., "dracula", "nord")
	NotificationsEnabled bool   `json:"notifications_enabled,omitempty"` // Desktop notification when a reply lands unfocused
	RequestTimeout       int    `json:"request_timeout,omitempty"`       // Seconds; 0 waits forever

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cazechat"), nil
}

// DefaultPath returns the path of the config file in the user's home.
func DefaultPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// New returns a config populated with defaults that saves to path.
func New(path string) *Config {
	return &Config{
		Endpoint:    DefaultEndpoint,
		BackendHost: DefaultBackendHost,
		filePath:    path,
	}
}

// Load reads the config from the default location, or returns defaults if it
// doesn't exist yet.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, errors.ConfigLoadFailed("~/.cazechat/config.json", err)
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path, or returns defaults if the file is
// missing.
func LoadFrom(path string) (*Config, error) {
	cfg := New(path)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}
	cfg.ensureDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ensureDefaults fills fields an older or hand-edited file left empty.
// Must only be called before the Config is shared.
func (c *Config) ensureDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if c.BackendHost == "" {
		c.BackendHost = DefaultBackendHost
	}
}

// Validate checks that the config is internally consistent.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := validateHTTPURL("endpoint", c.Endpoint); err != nil {
		return err
	}
	if err := validateHTTPURL("backend_host", c.BackendHost); err != nil {
		return err
	}
	if c.RequestTimeout < 0 {
		return errors.ConfigInvalid("request_timeout must not be negative")
	}
	return nil
}

func validateHTTPURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return errors.ConfigInvalid(field + " is not a valid URL: " + err.Error())
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.ConfigInvalid(field + " must be an http(s) URL")
	}
	if u.Host == "" {
		return errors.ConfigInvalid(field + " must include a host")
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.filePath == "" {
		return errors.ConfigSaveFailed("", errors.ConfigInvalid("config has no file path"))
	}

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}

	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// Path returns the file the config is saved to
func (c *Config) Path() string {
	return c.filePath
}

// ThemesPath returns where user-defined themes are read from, next to the
// config file. Empty when the config has no file.
func (c *Config) ThemesPath() string {
	if c.filePath == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(c.filePath), "themes.yaml")
}

// GetEndpoint returns the chat endpoint URL
func (c *Config) GetEndpoint() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Endpoint
}

// SetEndpoint sets the chat endpoint URL
func (c *Config) SetEndpoint(endpoint string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Endpoint = endpoint
}

// GetBackendHost returns the host used to build assistant file links
func (c *Config) GetBackendHost() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.BackendHost
}

// SetBackendHost sets the host used to build assistant file links
func (c *Config) SetBackendHost(host string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.BackendHost = host
}

// GetTheme returns the current theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the current theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled enables or disables desktop notifications
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetRequestTimeout returns the per-request timeout; zero means none.
func (c *Config) GetRequestTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.RequestTimeout) * time.Second
}

// SetRequestTimeout sets the per-request timeout in whole seconds.
func (c *Config) SetRequestTimeout(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.RequestTimeout = int(d / time.Second)
}
