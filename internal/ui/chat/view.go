// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/convospace/internal/model"
	"github.com/jeranaias/convospace/internal/ui/components"
)

// Fixed copy of the chat view.
const (
	HeaderTitle = "AI Conversation Space"
	FooterText  = "This is a demo implementation. Connect your own AI API endpoints."
	SendHint    = "enter send"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the chat view.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	sections := []string{
		m.renderHeader(),
		m.renderBody(),
		m.renderStatus(),
	}
	if m.toasts.HasToasts() {
		sections = append(sections, components.RenderToastStack(m.toasts.GetToasts(), m.width))
	}
	sections = append(sections,
		m.renderInput(),
		m.renderHelp(),
		m.renderFooter(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader shows the title on the left and the active model on the right.
func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render(HeaderTitle)
	modelLabel := m.theme.HeaderModel.Render(model.DisplayName(m.ctrl.Model()))

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(modelLabel) - m.theme.Header.GetHorizontalFrameSize()
	if gap < 1 {
		gap = 1
	}
	return m.theme.Header.Width(m.width).Render(title + strings.Repeat(" ", gap) + modelLabel)
}

// renderBody shows the picker when open, the empty state before the first
// message, otherwise the scrolled history.
func (m Model) renderBody() string {
	h := m.viewport.Height
	switch {
	case m.picker.Visible():
		return lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, m.picker.View())
	case m.ctrl.Len() == 0:
		return components.RenderEmptyState(m.theme, m.width, h)
	default:
		return m.viewport.View()
	}
}

// renderStatus is a single row; blank when idle so the layout stays put.
func (m Model) renderStatus() string {
	if !m.ctrl.Busy() {
		return ""
	}
	return m.thinking.View()
}

// renderInput shows the input field and a send hint that dims when a submit
// would be ignored.
func (m Model) renderInput() string {
	hintStyle := m.theme.SendDisabled
	if m.ctrl.CanSubmit() {
		hintStyle = m.theme.SendEnabled
	}
	hint := hintStyle.Render(SendHint)

	field := m.input.View()
	inner := m.width - m.theme.InputContainer.GetHorizontalFrameSize()
	gap := inner - lipgloss.Width(field) - lipgloss.Width(hint)
	if gap < 1 {
		gap = 1
	}
	return m.theme.InputContainer.Width(m.width).Render(field + strings.Repeat(" ", gap) + hint)
}

func (m Model) renderHelp() string {
	var parts []string
	for _, b := range m.keys.ShortHelp() {
		parts = append(parts, m.renderBinding(b))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderBinding(b key.Binding) string {
	h := b.Help()
	return m.theme.ShortcutKey.Render(h.Key) + " " + m.theme.ShortcutDesc.Render(h.Desc)
}

func (m Model) renderFooter() string {
	return m.theme.Footer.Width(m.width).Render(FooterText)
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}
