// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for convospace.
//
// Configuration file locations (in order of precedence):
//   - Environment variables (CONVOSPACE_*), optionally seeded from ./.env
//   - ~/.convospace/config.toml
//   - Built-in defaults
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/jeranaias/convospace/internal/model"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete convospace configuration.
type Config struct {
	// General settings
	Version      string `toml:"version" json:"version"`
	DefaultModel string `toml:"default_model" json:"default_model"`

	// API credential injected into the responder
	API APIConfig `toml:"api" json:"api"`

	// Chat session behavior
	Chat ChatConfig `toml:"chat" json:"chat"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`
}

// APIConfig holds the credential passed to the responder.
type APIConfig struct {
	// Key is reported as Valid/Missing in simulated replies; never sent anywhere
	Key string `toml:"key" json:"key"`
}

// ChatConfig contains chat session settings.
type ChatConfig struct {
	// ReplyDelay is how long the simulated assistant takes to answer (e.g. "1.5s")
	ReplyDelay string `toml:"reply_delay" json:"reply_delay"`
	// DebugLog names a file that receives diagnostic logging; empty disables it
	DebugLog string `toml:"debug_log" json:"debug_log"`
}

// UIConfig contains UI preferences.
type UIConfig struct {
	// Theme is one of "auto", "dark", "light"
	Theme string `toml:"theme" json:"theme"`
	// ShowTimestamps toggles the relative time under each message
	ShowTimestamps bool `toml:"show_timestamps" json:"show_timestamps"`
}

// DefaultReplyDelay is the simulated assistant latency.
const DefaultReplyDelay = 1500 * time.Millisecond

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version:      "1.0.0",
		DefaultModel: model.DefaultModelID,
		Chat: ChatConfig{
			ReplyDelay: DefaultReplyDelay.String(),
		},
		UI: UIConfig{
			Theme:          "auto",
			ShowTimestamps: true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the convospace configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".convospace"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from ~/.convospace/config.toml and falls back to
// defaults when the file does not exist. A .env file in the working directory
// is read first so its variables can feed the environment overrides.
func Load() (*Config, error) {
	LoadDotEnv(".env")

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return LoadFromPath(path)
		}
	}

	cfg := Default()
	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific TOML file with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// finish applies env overrides, defaults and validation in that order.
func (c *Config) finish() error {
	c.ApplyEnvOverrides()
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadDotEnv loads variables from the given .env files if they exist.
// Variables already present in the environment are left untouched.
// Returns the files that were actually read.
func LoadDotEnv(paths ...string) []string {
	var loaded []string
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not read %s: %v\n", p, err)
			continue
		}
		loaded = append(loaded, p)
	}
	return loaded
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes the configuration to the default TOML path.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration to path. The file is created 0600
// because it may hold the API key.
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.DefaultModel == "" {
		errs = append(errs, ValidationError{
			Field:   "default_model",
			Message: "must not be empty",
		})
	} else if !model.IsKnownModel(c.DefaultModel) {
		errs = append(errs, ValidationError{
			Field: "default_model",
			Message: fmt.Sprintf("unknown model '%s', must be one of: %s",
				c.DefaultModel, strings.Join(model.ModelIDs(), ", ")),
		})
	}

	if d, err := time.ParseDuration(c.Chat.ReplyDelay); err != nil {
		errs = append(errs, ValidationError{
			Field:   "chat.reply_delay",
			Message: fmt.Sprintf("invalid duration '%s'", c.Chat.ReplyDelay),
		})
	} else if d <= 0 {
		errs = append(errs, ValidationError{
			Field:   "chat.reply_delay",
			Message: "must be positive",
		})
	} else if d > time.Minute {
		errs = append(errs, ValidationError{
			Field:   "chat.reply_delay",
			Message: "must be at most 1m",
		})
	}

	validThemes := map[string]bool{"auto": true, "dark": true, "light": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: auto, dark, light", c.UI.Theme),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills empty fields with their default values.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.DefaultModel == "" {
		c.DefaultModel = defaults.DefaultModel
	}
	if c.Chat.ReplyDelay == "" {
		c.Chat.ReplyDelay = defaults.Chat.ReplyDelay
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
}

// ReplyDelayDuration returns the parsed reply delay, or the default if unparsable.
func (c *Config) ReplyDelayDuration() time.Duration {
	d, err := time.ParseDuration(c.Chat.ReplyDelay)
	if err != nil || d <= 0 {
		return DefaultReplyDelay
	}
	return d
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides.
//   - CONVOSPACE_API_KEY: overrides api.key
//   - CONVOSPACE_MODEL: overrides default_model
//   - CONVOSPACE_REPLY_DELAY: overrides chat.reply_delay
//   - CONVOSPACE_THEME: overrides ui.theme
//   - CONVOSPACE_DEBUG_LOG: overrides chat.debug_log
func (c *Config) ApplyEnvOverrides() {
	if key := os.Getenv("CONVOSPACE_API_KEY"); key != "" {
		c.API.Key = key
	}
	if m := os.Getenv("CONVOSPACE_MODEL"); m != "" {
		c.DefaultModel = m
	}
	if delay := os.Getenv("CONVOSPACE_REPLY_DELAY"); delay != "" {
		c.Chat.ReplyDelay = delay
	}
	if theme := os.Getenv("CONVOSPACE_THEME"); theme != "" {
		c.UI.Theme = theme
	}
	if logPath := os.Getenv("CONVOSPACE_DEBUG_LOG"); logPath != "" {
		c.Chat.DebugLog = logPath
	}
}

// =============================================================================
// CLONE / STRING
// =============================================================================

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns a string representation of the config for display.
// The API key is redacted.
func (c *Config) String() string {
	safe := c.Clone()
	if safe.API.Key != "" {
		safe.API.Key = "[REDACTED]"
	}
	data, _ := json.MarshalIndent(safe, "", "  ")
	return string(data)
}
