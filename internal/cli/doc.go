// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the non-TUI commands of
// convospace.
//
// # Commands
//
//   - tui (default): full-screen chat
//   - chat: line-mode chat with history and markdown replies
//   - config: show the effective configuration, its path, or write defaults
//   - version, help
//
// Global flags --model and --delay override the configuration for one run;
// -q suppresses banners in the line-mode chat.
package cli
