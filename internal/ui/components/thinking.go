// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/convospace/internal/model"
	"github.com/jeranaias/convospace/internal/ui/styles"
)

// Loading and empty-state copy.
const (
	ThinkingText    = "AI is thinking..."
	EmptyStateTitle = "Start a conversation"
	EmptyStateHint  = "Ask anything to test your connections with your local server."
)

// =============================================================================
// THINKING INDICATOR
// =============================================================================

// ThinkingIndicator is the row shown while a reply is pending.
type ThinkingIndicator struct {
	spinner spinner.Model
	theme   *styles.Theme
}

// NewThinkingIndicator creates an indicator with the ASCII line spinner.
func NewThinkingIndicator(theme *styles.Theme) ThinkingIndicator {
	theme = themeOrDefault(theme)
	s := spinner.New(
		spinner.WithSpinner(styles.LineSpinner.Bubbles()),
		spinner.WithStyle(theme.Spinner),
	)
	return ThinkingIndicator{spinner: s, theme: theme}
}

// Tick starts the spinner animation.
func (t ThinkingIndicator) Tick() tea.Msg {
	return t.spinner.Tick()
}

// Update advances the spinner on its own tick messages.
func (t ThinkingIndicator) Update(msg tea.Msg) (ThinkingIndicator, tea.Cmd) {
	var cmd tea.Cmd
	t.spinner, cmd = t.spinner.Update(msg)
	return t, cmd
}

// View renders the AI badge, spinner and text.
func (t ThinkingIndicator) View() string {
	return t.theme.AssistantBadge.Render(model.RoleAssistant.DisplayName()) + " " +
		t.spinner.View() + " " +
		t.theme.ThinkingText.Render(ThinkingText)
}

// =============================================================================
// EMPTY STATE
// =============================================================================

// RenderEmptyState renders the placeholder shown before the first message.
func RenderEmptyState(theme *styles.Theme, width, height int) string {
	theme = themeOrDefault(theme)
	textWidth := width - 4
	if textWidth < 10 {
		textWidth = 10
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		theme.EmptyTitle.Render(EmptyStateTitle),
		theme.EmptyHint.Render(wrapText(EmptyStateHint, textWidth)),
	)

	if width <= 0 || height <= 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
