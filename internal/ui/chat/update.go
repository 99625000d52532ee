// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/convospace/internal/export"
	"github.com/jeranaias/convospace/internal/model"
	"github.com/jeranaias/convospace/internal/ui/components"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and updates the chat state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ReplyMsg:
		m.refreshToBottom()
		return m, waitForEvent(m.ctrl.Events())

	case SessionClosedMsg:
		m.spinning = false
		return m, nil

	case components.ModelSelectedMsg:
		var cmd tea.Cmd
		if note := m.ctrl.SelectModel(msg.ID); note != "" {
			cmd = m.notify(components.NewStatusToast(note))
		}
		return m, cmd

	case components.ToastTickMsg:
		m.toasts.TickToasts()
		m.layout()
		if m.toasts.HasToasts() {
			return m, components.ToastTickCmd()
		}
		m.toastTicking = false
		return m, nil

	case spinner.TickMsg:
		// The loop stops on its own once the reply has arrived.
		if !m.ctrl.Busy() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.thinking, cmd = m.thinking.Update(msg)
		return m, cmd

	case clockTickMsg:
		m.refresh()
		return m, clockTick()
	}

	// Cursor blink and anything else the input understands.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey routes key presses. The picker, when open, takes every key.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.picker.Visible() {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		if m.selected != noSelection {
			m.selected = noSelection
			m.refresh()
			return m, nil
		}
		return m, backToLanding

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.OpenPicker):
		m.picker.Open(m.ctrl.Model())
		return m, nil

	case key.Matches(msg, m.keys.SelectUp):
		m.moveSelection(-1)
		return m, nil

	case key.Matches(msg, m.keys.SelectDown):
		m.moveSelection(1)
		return m, nil

	case key.Matches(msg, m.keys.CopySelected):
		msgs := m.ctrl.Messages()
		if m.selected < 0 || m.selected >= len(msgs) {
			return m, nil
		}
		cmd := m.copyMessage(msgs[m.selected])
		return m, cmd

	case key.Matches(msg, m.keys.CopyLast):
		last, ok := m.ctrl.Last()
		if !ok {
			return m, nil
		}
		cmd := m.copyMessage(last)
		return m, cmd

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
		return m, nil

	case key.Matches(msg, m.keys.Export):
		cmd := m.exportTranscript()
		return m, cmd

	case key.Matches(msg, m.keys.Reset):
		m.ctrl.Reset()
		m.input.Reset()
		m.selected = noSelection
		m.refreshToBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetInput(m.input.Value())
	return m, cmd
}

// submit sends the input field. Blank input or a pending reply make it a
// no-op; the field keeps its text in that case.
func (m Model) submit() (tea.Model, tea.Cmd) {
	m.ctrl.SetInput(m.input.Value())
	if _, ok := m.ctrl.SubmitInput(); !ok {
		return m, nil
	}

	m.input.Reset()
	m.selected = noSelection
	m.refreshToBottom()

	if m.spinning {
		return m, nil
	}
	m.spinning = true
	return m, m.thinking.Tick
}

// moveSelection walks the highlight through the history. Moving down past
// the newest message clears the selection; moving up from none selects it.
func (m *Model) moveSelection(delta int) {
	n := m.ctrl.Len()
	if n == 0 {
		return
	}

	switch {
	case m.selected == noSelection && delta < 0:
		m.selected = n - 1
	case m.selected == noSelection:
		return
	default:
		m.selected += delta
		if m.selected < 0 {
			m.selected = 0
		}
		if m.selected >= n {
			m.selected = noSelection
		}
	}

	m.refresh()
	if m.selected == noSelection {
		m.viewport.GotoBottom()
		return
	}
	m.scrollToSelected()
}

// copyMessage writes msg to the clipboard and confirms with a toast.
// Clipboard failures are logged but the confirmation is still shown.
func (m *Model) copyMessage(msg model.Message) tea.Cmd {
	if err := components.CopyToClipboard(msg); err != nil {
		m.logger.Printf("chat: WARNING: %v", err)
	}
	return m.notify(components.NewSuccessToast(components.CopiedToastText))
}

// exportTranscript writes the conversation as Markdown and reports the
// path, or the failure, in a toast.
func (m *Model) exportTranscript() tea.Cmd {
	if m.ctrl.Len() == 0 {
		return nil
	}
	t := export.NewTranscript(m.ctrl.Model(), m.ctrl.Messages())
	path, err := export.ExportFormat(t, "md", &export.Options{
		OutputDir:         m.exportDir,
		IncludeTimestamps: true,
	})
	if err != nil {
		m.logger.Printf("chat: export failed: %v", err)
		return m.notify(components.NewErrorToast("Export failed: " + err.Error()))
	}
	return m.notify(components.NewSuccessToast("Exported to " + path))
}

// notify shows a toast and starts the expiry ticker if it is not running.
func (m *Model) notify(t components.Toast) tea.Cmd {
	m.toasts.AddToast(t)
	m.layout()
	if m.toastTicking {
		return nil
	}
	m.toastTicking = true
	return components.ToastTickCmd()
}
