// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the convospace TUI.
package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jeranaias/convospace/internal/model"
	"github.com/jeranaias/convospace/internal/ui/styles"
)

// CopyHintText is shown under the selected message.
const CopyHintText = "ctrl+k copy message"

// CopyUnavailableText replaces the copy hint when no clipboard backend exists.
const CopyUnavailableText = "clipboard unavailable"

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders one message. Rendering is a pure function of the
// bubble's fields; nothing is mutated.
type MessageBubble struct {
	Message       model.Message
	Width         int
	Now           time.Time
	ShowTimestamp bool
	Selected      bool
	CopyDisabled  bool
	theme         *styles.Theme
}

// NewMessageBubble creates a bubble for msg with timestamps enabled.
func NewMessageBubble(msg model.Message, theme *styles.Theme) MessageBubble {
	return MessageBubble{
		Message:       msg,
		Width:         80,
		ShowTimestamp: true,
		theme:         themeOrDefault(theme),
	}
}

// View renders the message bubble.
func (b MessageBubble) View() string {
	width := b.Width
	if width <= 0 {
		width = 80
	}

	bubbleStyle := b.theme.AssistantBubble
	badgeStyle := b.theme.AssistantBadge
	align := lipgloss.Left
	if b.Message.IsUser() {
		bubbleStyle = b.theme.UserBubble
		badgeStyle = b.theme.UserBadge
		align = lipgloss.Right
	}
	if b.Selected {
		bubbleStyle = bubbleStyle.BorderForeground(styles.SelectionBorder)
	}

	// Bubbles take at most three quarters of the row.
	maxContentWidth := width*3/4 - bubbleStyle.GetHorizontalFrameSize()
	if maxContentWidth < 10 {
		maxContentWidth = 10
	}

	content := b.Message.Content
	if content == "" {
		content = " "
	}
	bubble := bubbleStyle.Render(wrapText(content, maxContentWidth))

	header := badgeStyle.Render(b.Message.Role.DisplayName())
	if b.ShowTimestamp {
		now := b.Now
		if now.IsZero() {
			now = time.Now()
		}
		header += " " + b.theme.Timestamp.Render(RelativeTime(b.Message.Timestamp, now))
	}

	parts := []string{header, bubble}
	if b.Selected {
		hint := b.theme.CopyHint.Render(CopyHintText)
		if b.CopyDisabled {
			hint = b.theme.CopyHint.Faint(true).Render(CopyUnavailableText)
		}
		parts = append(parts, hint)
	}

	block := lipgloss.JoinVertical(align, parts...)
	return lipgloss.PlaceHorizontal(width, align, block)
}

// RelativeTime formats ts relative to now, e.g. "3 minutes ago".
func RelativeTime(ts, now time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return humanize.RelTime(ts, now, "ago", "from now")
}

// MessageListOptions controls RenderMessages.
type MessageListOptions struct {
	Width          int
	Now            time.Time
	ShowTimestamps bool
	// Selected is the index of the highlighted message, or -1.
	Selected int
	// CopyDisabled swaps the copy hint for CopyUnavailableText.
	CopyDisabled bool
}

// RenderMessages renders a conversation top to bottom with a blank line
// between messages. offsets[i] is the first line of message i.
func RenderMessages(msgs []model.Message, theme *styles.Theme, opts MessageListOptions) (content string, offsets []int) {
	rendered := make([]string, 0, len(msgs))
	offsets = make([]int, 0, len(msgs))
	line := 0
	for i, msg := range msgs {
		b := NewMessageBubble(msg, theme)
		b.Width = opts.Width
		b.Now = opts.Now
		b.ShowTimestamp = opts.ShowTimestamps
		b.Selected = i == opts.Selected
		b.CopyDisabled = opts.CopyDisabled

		view := b.View()
		offsets = append(offsets, line)
		line += lipgloss.Height(view) + 1
		rendered = append(rendered, view)
	}
	return strings.Join(rendered, "\n\n"), offsets
}
