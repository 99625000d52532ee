// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/convospace/internal/model"
	"github.com/jeranaias/convospace/internal/ui/styles"
)

// ModelSelectedMsg is emitted when the user picks a model.
type ModelSelectedMsg struct {
	ID string
}

// =============================================================================
// MODEL PICKER
// =============================================================================

// ModelPicker is an overlay list of the selectable models.
type ModelPicker struct {
	models  []model.ModelInfo
	cursor  int
	current string
	visible bool
	width   int

	up     key.Binding
	down   key.Binding
	choose key.Binding
	cancel key.Binding

	theme *styles.Theme
}

// NewModelPicker creates a hidden picker over the model registry.
func NewModelPicker(theme *styles.Theme) ModelPicker {
	return ModelPicker{
		models: model.Models(),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up", "previous"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j", "tab"),
			key.WithHelp("down", "next"),
		),
		choose: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+o"),
			key.WithHelp("esc", "close"),
		),
		theme: themeOrDefault(theme),
	}
}

// Open shows the picker with the cursor on current.
func (p *ModelPicker) Open(current string) {
	p.current = current
	p.visible = true
	p.cursor = 0
	for i, m := range p.models {
		if m.ID == current {
			p.cursor = i
			break
		}
	}
}

// Close hides the picker.
func (p *ModelPicker) Close() {
	p.visible = false
}

// Visible reports whether the picker is open.
func (p ModelPicker) Visible() bool {
	return p.visible
}

// SetWidth sets the available width.
func (p *ModelPicker) SetWidth(width int) {
	p.width = width
}

// Highlighted returns the model under the cursor.
func (p ModelPicker) Highlighted() model.ModelInfo {
	if len(p.models) == 0 {
		return model.ModelInfo{}
	}
	return p.models[p.cursor]
}

// Update handles keys while the picker is open.
func (p ModelPicker) Update(msg tea.Msg) (ModelPicker, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch {
	case key.Matches(keyMsg, p.up):
		if p.cursor > 0 {
			p.cursor--
		} else {
			p.cursor = len(p.models) - 1
		}
	case key.Matches(keyMsg, p.down):
		p.cursor = (p.cursor + 1) % len(p.models)
	case key.Matches(keyMsg, p.choose):
		id := p.Highlighted().ID
		p.visible = false
		return p, func() tea.Msg { return ModelSelectedMsg{ID: id} }
	case key.Matches(keyMsg, p.cancel):
		p.visible = false
	}
	return p, nil
}

// View renders the picker box, or "" when hidden.
func (p ModelPicker) View() string {
	if !p.visible {
		return ""
	}

	nameWidth := 0
	for _, m := range p.models {
		if w := maxLineWidth(m.Name); w > nameWidth {
			nameWidth = w
		}
	}

	lines := make([]string, 0, len(p.models))
	for i, m := range p.models {
		marker := "  "
		if m.ID == p.current {
			marker = "* "
		}
		label := marker + m.Name + strings.Repeat(" ", nameWidth-maxLineWidth(m.Name))
		if i == p.cursor {
			lines = append(lines, p.theme.PickerSelected.Render(label+"  "+m.Provider))
			continue
		}
		lines = append(lines, p.theme.PickerItem.Render(label)+p.theme.PickerProvider.Render("  "+m.Provider))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		p.theme.PickerTitle.Render("Select model"),
		strings.Join(lines, "\n"),
	)
	box := p.theme.PickerBox.Render(body)

	if p.width > 0 {
		return lipgloss.PlaceHorizontal(p.width, lipgloss.Center, box)
	}
	return box
}
