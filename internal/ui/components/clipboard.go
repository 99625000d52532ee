// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/jeranaias/convospace/internal/model"
)

// CopiedToastText is the notification raised after a copy action.
const CopiedToastText = "Message copied to clipboard"

// clipboardWrite is swapped out in tests; headless CI has no clipboard.
var clipboardWrite = clipboard.WriteAll

// CopyToClipboard writes the message content to the system clipboard.
func CopyToClipboard(msg model.Message) error {
	if err := clipboardWrite(msg.Content); err != nil {
		return fmt.Errorf("copy %s: %w", msg.ID, err)
	}
	return nil
}

// ClipboardAvailable reports whether a clipboard backend was found.
func ClipboardAvailable() bool {
	return !clipboard.Unsupported
}
