// Package config holds front-panel simulator and I/O preferences.
// Sequencer state itself (patterns, bank, tempo) lives in the store.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// MIDIConfig defines the trigger output port and note mapping.
type MIDIConfig struct {
	PortName     string   `json:"portName,omitempty"`
	Channel      uint8    `json:"channel,omitempty"`
	TriggerNotes [4]uint8 `json:"triggerNotes,omitempty"`
	ClockNote    uint8    `json:"clockNote,omitempty"`
}

// Config is the main configuration structure.
type Config struct {
	ClockSource string     `json:"clockSource,omitempty"` // "internal" or "external"
	LengthMode  bool       `json:"lengthMode"`            // pattern-length editing mode compiled in
	TickMs      int        `json:"tickMs,omitempty"`      // control loop period
	StorePath   string     `json:"storePath,omitempty"`   // bank file; empty = default
	Palette     string     `json:"palette,omitempty"`     // GPL palette file; empty = built-in
	MIDI        MIDIConfig `json:"midi"`
}

// DefaultConfig returns a config with sensible defaults: internal
// clock, length editing enabled, GM percussion notes on the triggers.
func DefaultConfig() *Config {
	return &Config{
		ClockSource: "internal",
		LengthMode:  true,
		TickMs:      5,
		MIDI: MIDIConfig{
			Channel:      10,
			TriggerNotes: [4]uint8{36, 38, 42, 46}, // kick, snare, closed HH, open HH
			ClockNote:    75,
		},
	}
}

// ExternalClock reports whether the clock-source setting is external.
func (c *Config) ExternalClock() bool {
	return c.ClockSource == "external"
}

// ConfigDir returns the config directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "euclid-o-matic"), nil
}

// ConfigPath returns the full path to config.json.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.TickMs < 1 {
		cfg.TickMs = DefaultConfig().TickMs
	}

	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
