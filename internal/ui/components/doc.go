// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI components for the convospace TUI.

Components are built on Bubble Tea and Lip Gloss and take a *styles.Theme
for consistent styling.

# Display Components

MessageBubble (message.go) - One chat message with role badge, relative
timestamp and, when selected, a copy hint. Rendering is pure.

RenderEmptyState (thinking.go) - Placeholder before the first message.

ThinkingIndicator (thinking.go) - "AI is thinking..." row with a spinner.

# Interactive Components

Landing (landing.go) - Entry screen; enter emits StartChatMsg.

ModelPicker (model_picker.go) - Overlay list of models; enter emits
ModelSelectedMsg.

# Feedback

ToastManager (toast.go) - Auto-expiring notifications, pruned by
ToastTickCmd.

CopyToClipboard (clipboard.go) - Writes a message to the system clipboard.

# Usage

	theme := styles.NewTheme("auto")
	bubble := components.NewMessageBubble(msg, theme)
	bubble.Width = 80
	fmt.Println(bubble.View())
*/
package components
