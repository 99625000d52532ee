// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the chat view.
type KeyMap struct {
	Submit       key.Binding
	OpenPicker   key.Binding
	SelectUp     key.Binding
	SelectDown   key.Binding
	CopySelected key.Binding
	CopyLast     key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Reset        key.Binding
	Export       key.Binding
	Back         key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default key bindings for the chat view.
// Letters are reserved for typing, so every binding uses a modifier or a
// special key.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		OpenPicker: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "model"),
		),
		SelectUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("up", "select"),
		),
		SelectDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("down", "select"),
		),
		CopySelected: key.NewBinding(
			key.WithKeys("ctrl+k", "alt+c"),
			key.WithHelp("ctrl+k", "copy"),
		),
		CopyLast: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy last"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "page down"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear"),
		),
		Export: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "export"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the help row.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.OpenPicker, k.SelectUp, k.CopySelected, k.CopyLast, k.Reset, k.Back}
}

// FullHelp returns every binding grouped by purpose.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.OpenPicker, k.Reset, k.Export},
		{k.SelectUp, k.SelectDown, k.CopySelected, k.CopyLast},
		{k.PageUp, k.PageDown, k.Back, k.Quit},
	}
}
