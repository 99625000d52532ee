// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the convospace TUI.
package components

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/convospace/internal/ui/styles"
)

// Landing screen copy.
const (
	LandingTitle  = "AI Conversation Space"
	LandingBlurb  = "A platform to test and interact with AI models through your local server connections."
	LandingAction = "Start Chatting with AI"
)

// StartChatMsg asks the application to switch to the chat view.
type StartChatMsg struct{}

// =============================================================================
// LANDING SCREEN MODEL
// =============================================================================

// Landing is the static entry screen with a single call to action.
type Landing struct {
	width  int
	height int

	start key.Binding
	quit  key.Binding

	theme *styles.Theme
}

// NewLanding creates a new landing screen.
func NewLanding(theme *styles.Theme) Landing {
	return Landing{
		start: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "start chatting"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		theme: themeOrDefault(theme),
	}
}

// SetSize updates the dimensions.
func (l *Landing) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the landing screen.
func (l Landing) Init() tea.Cmd {
	return nil
}

// Update handles messages. Enter emits StartChatMsg.
func (l Landing) Update(msg tea.Msg) (Landing, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		l.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, l.start):
			return l, func() tea.Msg { return StartChatMsg{} }
		case key.Matches(msg, l.quit):
			return l, tea.Quit
		}
	}
	return l, nil
}

// View renders the landing screen centered in the terminal.
func (l Landing) View() string {
	width := l.width
	if width == 0 {
		width = 80
	}
	height := l.height
	if height == 0 {
		height = 24
	}

	boxWidth := 64
	if boxWidth > width-4 {
		boxWidth = width - 4
	}
	if boxWidth < 20 {
		boxWidth = 20
	}
	// Border (2) + horizontal padding (8).
	textWidth := boxWidth - 10
	if textWidth < 10 {
		textWidth = 10
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		l.theme.LandingTitle.Render(LandingTitle),
		"",
		l.theme.LandingBlurb.Render(wrapText(LandingBlurb, textWidth)),
		"",
		l.theme.LandingButton.Render(LandingAction),
		"",
		l.theme.LandingKey.Render("enter start  q quit"),
	)

	box := l.theme.LandingBox.Width(boxWidth).Render(content)

	if lipgloss.Height(box) >= height {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
