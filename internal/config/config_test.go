// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// clearEnv unsets every override so tests see only what they set.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CONVOSPACE_API_KEY",
		"CONVOSPACE_MODEL",
		"CONVOSPACE_REPLY_DELAY",
		"CONVOSPACE_THEME",
		"CONVOSPACE_DEBUG_LOG",
	} {
		t.Setenv(k, "")
	}
}

func TestConfig_Default(t *testing.T) {
	cfg := Default()

	if cfg.DefaultModel != "gpt-4o" {
		t.Errorf("DefaultModel = %q, want gpt-4o", cfg.DefaultModel)
	}
	if cfg.ReplyDelayDuration() != 1500*time.Millisecond {
		t.Errorf("ReplyDelayDuration = %v, want 1.5s", cfg.ReplyDelayDuration())
	}
	if cfg.API.Key != "" {
		t.Error("default config must not carry an API key")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"valid", func(c *Config) {}, ""},
		{"unknown model", func(c *Config) { c.DefaultModel = "gpt-9" }, "default_model"},
		{"empty model", func(c *Config) { c.DefaultModel = "" }, "default_model"},
		{"bad delay", func(c *Config) { c.Chat.ReplyDelay = "soon" }, "chat.reply_delay"},
		{"zero delay", func(c *Config) { c.Chat.ReplyDelay = "0s" }, "chat.reply_delay"},
		{"huge delay", func(c *Config) { c.Chat.ReplyDelay = "2h" }, "chat.reply_delay"},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
		{"upper theme ok", func(c *Config) { c.UI.Theme = "DARK" }, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()

			if tc.wantField == "" {
				require.NoError(t, err)
				return
			}

			var verrs ValidateErrors
			require.True(t, errors.As(err, &verrs), "want ValidateErrors, got %v", err)
			require.Equal(t, tc.wantField, verrs[0].Field)
		})
	}
}

func TestConfig_ApplyEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONVOSPACE_API_KEY", "12345")
	t.Setenv("CONVOSPACE_MODEL", "llama-3")
	t.Setenv("CONVOSPACE_REPLY_DELAY", "250ms")
	t.Setenv("CONVOSPACE_THEME", "light")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	require.Equal(t, "12345", cfg.API.Key)
	require.Equal(t, "llama-3", cfg.DefaultModel)
	require.Equal(t, 250*time.Millisecond, cfg.ReplyDelayDuration())
	require.Equal(t, "light", cfg.UI.Theme)
}

func TestConfig_LoadFromPath(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
default_model = "claude-3"

[api]
key = "from-file"

[chat]
reply_delay = "2s"

[ui]
theme = "dark"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	require.Equal(t, "claude-3", cfg.DefaultModel)
	require.Equal(t, "from-file", cfg.API.Key)
	require.Equal(t, 2*time.Second, cfg.ReplyDelayDuration())
	require.Equal(t, "dark", cfg.UI.Theme)
	// Unset fields keep their defaults.
	require.True(t, cfg.UI.ShowTimestamps)
}

func TestConfig_LoadFromPathInvalid(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`default_model = "nope"`), 0600))

	_, err := LoadFromPath(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "default_model")
}

func TestConfig_LoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "gpt-4o", cfg.DefaultModel)
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.DefaultModel = "mistral"
	require.NoError(t, SaveTOML(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	require.Equal(t, "mistral", loaded.DefaultModel)
}

func TestLoadDotEnv(t *testing.T) {
	const probe = "CONVOSPACE_DOTENV_PROBE"
	os.Unsetenv(probe)
	t.Cleanup(func() { os.Unsetenv(probe) })

	// Already-set variables win over the file.
	t.Setenv("CONVOSPACE_API_KEY", "from-env")

	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte(probe+"=loaded\nCONVOSPACE_API_KEY=from-file\n"), 0600))

	loaded := LoadDotEnv(envPath, filepath.Join(dir, "missing.env"))
	require.Equal(t, []string{envPath}, loaded)
	require.Equal(t, "loaded", os.Getenv(probe))
	require.Equal(t, "from-env", os.Getenv("CONVOSPACE_API_KEY"))
}

func TestConfig_StringRedactsKey(t *testing.T) {
	cfg := Default()
	cfg.API.Key = "super-secret"

	s := cfg.String()
	if strings.Contains(s, "super-secret") {
		t.Error("String() leaked the API key")
	}
	if !strings.Contains(s, "[REDACTED]") {
		t.Error("String() should mark the key as redacted")
	}
	if cfg.API.Key != "super-secret" {
		t.Error("String() must not modify the original config")
	}
}
