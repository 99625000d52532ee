// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for convospace.
//
// Settings come from a TOML file, a .env file and environment variables,
// with sensible defaults and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - APIConfig: The injected API credential
//   - ChatConfig: Reply delay and debug logging
//   - UIConfig: Theme and timestamp display
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (CONVOSPACE_*)
//   - ./.env (only fills variables not already set)
//   - ~/.convospace/config.toml
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Access settings:
//
//	delay := cfg.ReplyDelayDuration()
//	key := cfg.API.Key
package config
