// Package config loads server tunables from a YAML file, with sensible
// defaults when no file is given.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ParentalConfig holds the default parental-restriction settings applied
// at boot. Runtime changes are persisted through the storage layer.
type ParentalConfig struct {
	Enabled      bool   `yaml:"enabled"`
	LimitMinutes int    `yaml:"limit_minutes"` // 0 = no play-time limit
	WindowStart  string `yaml:"window_start"`  // "HH:MM", empty = no window
	WindowEnd    string `yaml:"window_end"`
}

// Config is the full server configuration.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	DBPath     string `yaml:"db_path"`
	LogLevel   string `yaml:"log_level"`

	// Simulation cadence; the reference is 60 ticks per second.
	TickIntervalMS int `yaml:"tick_interval_ms"`

	// Action cooldowns.
	VetCooldownMS  int `yaml:"vet_cooldown_ms"`
	WalkCooldownMS int `yaml:"walk_cooldown_ms"`
	PlayCooldownMS int `yaml:"play_cooldown_ms"`

	Parental ParentalConfig `yaml:"parental"`
}

// Default returns the reference configuration.
func Default() *Config {
	return &Config{
		ListenAddr:     ":8080",
		DBPath:         "petcrossing.db",
		LogLevel:       "info",
		TickIntervalMS: 16, // ~60 Hz
		VetCooldownMS:  15000,
		WalkCooldownMS: 10000,
		PlayCooldownMS: 8000,
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMS) * time.Millisecond
}

func (c *Config) VetCooldown() time.Duration {
	return time.Duration(c.VetCooldownMS) * time.Millisecond
}

func (c *Config) WalkCooldown() time.Duration {
	return time.Duration(c.WalkCooldownMS) * time.Millisecond
}

func (c *Config) PlayCooldown() time.Duration {
	return time.Duration(c.PlayCooldownMS) * time.Millisecond
}
