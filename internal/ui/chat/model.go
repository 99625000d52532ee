// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"io"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/convospace/internal/session"
	"github.com/jeranaias/convospace/internal/ui/components"
	"github.com/jeranaias/convospace/internal/ui/styles"
)

// Fixed rows around the message viewport: header, status, input (border
// plus line), help and footer.
const (
	headerHeight = 1
	statusHeight = 1
	inputHeight  = 2
	helpHeight   = 1
	footerHeight = 1

	chromeHeight = headerHeight + statusHeight + inputHeight + helpHeight + footerHeight
)

// InputCharLimit caps the input field.
const InputCharLimit = 4096

// noSelection marks that no message is highlighted.
const noSelection = -1

// Options configures the chat view.
type Options struct {
	ShowTimestamps bool
	Logger         *log.Logger

	// ExportDir receives ctrl+e transcripts. Default: current directory
	ExportDir string
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	ctrl   *session.Controller
	theme  *styles.Theme
	logger *log.Logger
	keys   KeyMap

	input    textinput.Model
	viewport viewport.Model
	thinking components.ThinkingIndicator
	picker   components.ModelPicker
	toasts   *components.ToastManager

	width  int
	height int

	// selected indexes the highlighted message, or noSelection.
	selected int
	// offsets[i] is the viewport line where message i starts.
	offsets []int

	showTimestamps bool
	exportDir      string
	clipboardOK    bool
	toastTicking   bool
	spinning       bool

	now func() time.Time
}

// New creates a chat view bound to ctrl. The caller owns ctrl and closes it.
func New(ctrl *session.Controller, theme *styles.Theme, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type your message..."
	ti.CharLimit = InputCharLimit
	ti.Focus()

	vp := viewport.New(80, 20)

	return Model{
		ctrl:           ctrl,
		theme:          theme,
		logger:         opts.Logger,
		keys:           DefaultKeyMap(),
		input:          ti,
		viewport:       vp,
		thinking:       components.NewThinkingIndicator(theme),
		picker:         components.NewModelPicker(theme),
		toasts:         components.NewToastManager(),
		selected:       noSelection,
		showTimestamps: opts.ShowTimestamps,
		exportDir:      opts.ExportDir,
		clipboardOK:    components.ClipboardAvailable(),
		now:            time.Now,
	}
}

// Init starts the cursor blink, the reply listener and the clock.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		waitForEvent(m.ctrl.Events()),
		clockTick(),
	)
}

// Controller returns the session controller behind the view.
func (m Model) Controller() *session.Controller {
	return m.ctrl
}

// Selected returns the highlighted message index, or -1.
func (m Model) Selected() int {
	return m.selected
}

// InputValue returns the text in the input field.
func (m Model) InputValue() string {
	return m.input.Value()
}

// PickerVisible reports whether the model picker is open.
func (m Model) PickerVisible() bool {
	return m.picker.Visible()
}

// Toasts returns the active notifications, newest first.
func (m Model) Toasts() []components.Toast {
	return m.toasts.GetToasts()
}

// =============================================================================
// LAYOUT
// =============================================================================

// setSize records the terminal size and lays the view out again.
func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height

	// "> " prompt, container padding and the send hint
	m.input.Width = width - len(m.input.Prompt) - 16
	if m.input.Width < 10 {
		m.input.Width = 10
	}
	m.picker.SetWidth(width)
	m.layout()
}

// layout sizes the viewport for the rows left after the chrome and the
// current toast stack.
func (m *Model) layout() {
	atBottom := m.viewport.AtBottom()

	m.viewport.Width = m.width
	h := m.height - chromeHeight - m.toastHeight()
	if h < 1 {
		h = 1
	}
	m.viewport.Height = h

	m.refresh()
	if atBottom {
		m.viewport.GotoBottom()
	}
}

func (m Model) toastHeight() int {
	if !m.toasts.HasToasts() {
		return 0
	}
	return countLines(components.RenderToastStack(m.toasts.GetToasts(), m.width))
}

// refresh re-renders the conversation into the viewport.
func (m *Model) refresh() {
	msgs := m.ctrl.Messages()
	if m.selected >= len(msgs) {
		m.selected = noSelection
	}

	content, offsets := components.RenderMessages(msgs, m.theme, components.MessageListOptions{
		Width:          m.viewport.Width,
		Now:            m.now(),
		ShowTimestamps: m.showTimestamps,
		Selected:       m.selected,
		CopyDisabled:   !m.clipboardOK,
	})
	m.offsets = offsets
	m.viewport.SetContent(content)
}

// refreshToBottom re-renders and scrolls to the newest message.
func (m *Model) refreshToBottom() {
	m.refresh()
	m.viewport.GotoBottom()
}

// scrollToSelected brings the selected message's first line into view.
func (m *Model) scrollToSelected() {
	if m.selected < 0 || m.selected >= len(m.offsets) {
		return
	}
	top := m.offsets[m.selected]
	if top < m.viewport.YOffset || top >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(top)
	}
}
