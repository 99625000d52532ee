// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes a chat transcript to a file.
//
// # Supported Formats
//
//   - Markdown: human-readable, with YAML frontmatter
//   - JSON: machine-readable, the message records as stored
//
// # Usage
//
//	t := export.NewTranscript(ctrl.Model(), ctrl.Messages())
//	path, err := export.ExportFormat(t, "md", export.DefaultOptions())
package export
