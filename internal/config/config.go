package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	DefaultBaseURL = "http://127.0.0.1:8000"
	DefaultTimeout = 10 * time.Second
)

// Environment variables that override file settings.
const (
	EnvBaseURL   = "NOTILOG_BASE_URL"
	EnvProfile   = "NOTILOG_PROFILE"
	EnvExportDir = "NOTILOG_EXPORT_DIR"
)

// Config represents the global ~/.notilog/config.toml.
type Config struct {
	DefaultProfile string             `toml:"default_profile,omitempty"`
	Theme          string             `toml:"theme,omitempty"`
	Profiles       map[string]Profile `toml:"profiles,omitempty"`
}

// Profile holds the settings for one backend target.
type Profile struct {
	BaseURL         string `toml:"base_url,omitempty"`
	Timeout         string `toml:"timeout,omitempty"`
	ExportDir       string `toml:"export_dir,omitempty"`
	RefreshInterval string `toml:"refresh_interval,omitempty"`
}

// Load reads config from the given path. Returns zero config and error if file missing.
func Load(path string) (*Config, error) {
	var cfg Config
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrEmpty is Load, except that a missing file yields an empty config.
func LoadOrEmpty(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}

// LoadEnv loads KEY=VALUE pairs from the given dotenv files into the process
// environment. Missing files are skipped; variables already set win.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Resolved is a profile with defaults and environment overrides applied.
type Resolved struct {
	Name            string
	BaseURL         string
	Timeout         time.Duration
	ExportDir       string
	RefreshInterval time.Duration
}

// Resolve returns the effective settings for the named profile.
func (c *Config) Resolve(name string) (Resolved, error) {
	p := c.Profiles[name]
	r := Resolved{
		Name:      name,
		BaseURL:   p.BaseURL,
		Timeout:   DefaultTimeout,
		ExportDir: p.ExportDir,
	}

	if v := os.Getenv(EnvBaseURL); v != "" {
		r.BaseURL = v
	}
	if v := os.Getenv(EnvExportDir); v != "" {
		r.ExportDir = v
	}
	if r.BaseURL == "" {
		r.BaseURL = DefaultBaseURL
	}
	r.BaseURL = strings.TrimRight(strings.TrimSpace(r.BaseURL), "/")
	if r.ExportDir == "" {
		r.ExportDir = "."
	}

	if p.Timeout != "" {
		d, err := time.ParseDuration(p.Timeout)
		if err != nil {
			return Resolved{}, fmt.Errorf("profile %q: invalid timeout %q: %w", name, p.Timeout, err)
		}
		r.Timeout = d
	}
	if p.RefreshInterval != "" {
		d, err := time.ParseDuration(p.RefreshInterval)
		if err != nil {
			return Resolved{}, fmt.Errorf("profile %q: invalid refresh_interval %q: %w", name, p.RefreshInterval, err)
		}
		r.RefreshInterval = d
	}
	return r, nil
}
