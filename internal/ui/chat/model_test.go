// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/convospace/internal/session"
	"github.com/jeranaias/convospace/internal/ui/components"
	"github.com/jeranaias/convospace/internal/ui/styles"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

const testDelay = 50 * time.Millisecond

func newTestModel(t *testing.T) Model {
	t.Helper()
	ctrl := session.NewController(session.Options{
		APIKey:     "sk-test",
		ReplyDelay: testDelay,
	})
	t.Cleanup(ctrl.Close)

	m := New(ctrl, styles.NewTheme("dark"), Options{ShowTimestamps: true})
	// Headless runners have no clipboard backend.
	m.clipboardOK = true
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok, "Update must return chat.Model")
	return out, cmd
}

func press(t *testing.T, m Model, kt tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	return step(t, m, tea.KeyMsg{Type: kt})
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// awaitReply waits for the scheduled reply and feeds it to the view.
func awaitReply(t *testing.T, m Model) Model {
	t.Helper()
	select {
	case ev := <-m.Controller().Events():
		m, _ = step(t, m, ReplyMsg{Message: ev.Message})
		return m
	case <-time.After(2 * time.Second):
		t.Fatal("reply never arrived")
		return m
	}
}

// =============================================================================
// SUBMIT
// =============================================================================

func TestSubmitShowsThinkingThenReply(t *testing.T) {
	m := newTestModel(t)
	m = typeText(t, m, "Hello")
	require.Equal(t, "Hello", m.InputValue())
	require.True(t, m.Controller().CanSubmit())

	m, cmd := press(t, m, tea.KeyEnter)
	require.NotNil(t, cmd, "submit should start the spinner")
	require.Equal(t, 1, m.Controller().Len())
	require.True(t, m.Controller().Busy())
	require.Empty(t, m.InputValue())

	view := m.View()
	require.Contains(t, view, "Hello")
	require.Contains(t, view, components.ThinkingText)

	m = awaitReply(t, m)
	require.Equal(t, 2, m.Controller().Len())
	require.False(t, m.Controller().Busy())

	view = m.View()
	require.Contains(t, view, "API Key used: Valid.")
	require.NotContains(t, view, components.ThinkingText)
}

func TestSubmitBlankIsIgnored(t *testing.T) {
	m := newTestModel(t)

	m, cmd := press(t, m, tea.KeyEnter)
	require.Nil(t, cmd)
	require.Zero(t, m.Controller().Len())

	m = typeText(t, m, "   ")
	m, cmd = press(t, m, tea.KeyEnter)
	require.Nil(t, cmd)
	require.Zero(t, m.Controller().Len())
	require.False(t, m.Controller().Busy())
}

func TestSubmitWhileAwaitingReplyKeepsInput(t *testing.T) {
	m := newTestModel(t)
	m = typeText(t, m, "first")
	m, _ = press(t, m, tea.KeyEnter)

	m = typeText(t, m, "second")
	require.False(t, m.Controller().CanSubmit())

	m, cmd := press(t, m, tea.KeyEnter)
	require.Nil(t, cmd)
	require.Equal(t, 1, m.Controller().Len())
	require.Equal(t, "second", m.InputValue())
}

func TestIdleSpinnerTickStopsLoop(t *testing.T) {
	m := newTestModel(t)
	_, cmd := step(t, m, spinner.TickMsg{})
	require.Nil(t, cmd)
}

// =============================================================================
// MODEL PICKER
// =============================================================================

func TestPickerSelectsModel(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, tea.KeyCtrlO)
	require.True(t, m.PickerVisible())
	require.Contains(t, m.View(), "Select model")

	m, _ = press(t, m, tea.KeyDown)
	m, cmd := press(t, m, tea.KeyEnter)
	require.False(t, m.PickerVisible())
	require.NotNil(t, cmd)

	selected, ok := cmd().(components.ModelSelectedMsg)
	require.True(t, ok)
	require.Equal(t, "claude-3", selected.ID)

	m, cmd = step(t, m, selected)
	require.NotNil(t, cmd, "toast ticker should start")
	require.Equal(t, "claude-3", m.Controller().Model())

	toasts := m.Toasts()
	require.Len(t, toasts, 1)
	require.Equal(t, "Switched to claude-3 model", toasts[0].Message)
	require.Contains(t, m.View(), "Claude 3")
}

func TestPickerEscClosesWithoutLeaving(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, tea.KeyCtrlO)

	m, cmd := press(t, m, tea.KeyEsc)
	require.False(t, m.PickerVisible())
	require.Nil(t, cmd)
	require.Equal(t, "gpt-4o", m.Controller().Model())
}

func TestPickerKeepsHistory(t *testing.T) {
	m := newTestModel(t)
	m = typeText(t, m, "hi")
	m, _ = press(t, m, tea.KeyEnter)
	m = awaitReply(t, m)

	m, _ = press(t, m, tea.KeyCtrlO)
	m, cmd := press(t, m, tea.KeyEnter)
	m, _ = step(t, m, cmd())
	require.Equal(t, 2, m.Controller().Len())
}

// =============================================================================
// SELECTION AND COPY
// =============================================================================

func TestSelectionMovesThroughHistory(t *testing.T) {
	m := newTestModel(t)
	m = typeText(t, m, "question")
	m, _ = press(t, m, tea.KeyEnter)
	m = awaitReply(t, m)

	m, _ = press(t, m, tea.KeyUp)
	require.Equal(t, 1, m.Selected())
	require.Contains(t, m.View(), components.CopyHintText)

	m, _ = press(t, m, tea.KeyUp)
	require.Equal(t, 0, m.Selected())
	m, _ = press(t, m, tea.KeyUp)
	require.Equal(t, 0, m.Selected())

	m, _ = press(t, m, tea.KeyDown)
	require.Equal(t, 1, m.Selected())
	m, _ = press(t, m, tea.KeyDown)
	require.Equal(t, -1, m.Selected())
}

func TestSelectionOnEmptyHistory(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, tea.KeyUp)
	require.Equal(t, -1, m.Selected())
}

func TestCopySelectedShowsToast(t *testing.T) {
	m := newTestModel(t)
	m = typeText(t, m, "copy me")
	m, _ = press(t, m, tea.KeyEnter)

	// Nothing selected yet.
	m, cmd := press(t, m, tea.KeyCtrlK)
	require.Nil(t, cmd)
	require.Empty(t, m.Toasts())

	m, _ = press(t, m, tea.KeyUp)
	m, cmd = press(t, m, tea.KeyCtrlK)
	require.NotNil(t, cmd)

	// The confirmation shows even without a clipboard backend.
	toasts := m.Toasts()
	require.Len(t, toasts, 1)
	require.Equal(t, components.CopiedToastText, toasts[0].Message)
}

func TestCopySelectedAltC(t *testing.T) {
	m := newTestModel(t)
	m = typeText(t, m, "copy me")
	m, _ = press(t, m, tea.KeyEnter)
	m, _ = press(t, m, tea.KeyUp)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}, Alt: true})
	require.Len(t, m.Toasts(), 1)
	require.Empty(t, m.InputValue())
}

func TestSelectionWithoutClipboard(t *testing.T) {
	m := newTestModel(t)
	m.clipboardOK = false
	m = typeText(t, m, "question")
	m, _ = press(t, m, tea.KeyEnter)
	m = awaitReply(t, m)

	m, _ = press(t, m, tea.KeyUp)
	view := m.View()
	require.Contains(t, view, components.CopyUnavailableText)
	require.NotContains(t, view, components.CopyHintText)
}

func TestExportWritesTranscript(t *testing.T) {
	dir := t.TempDir()
	ctrl := session.NewController(session.Options{ReplyDelay: testDelay})
	t.Cleanup(ctrl.Close)
	m := New(ctrl, styles.NewTheme("dark"), Options{ExportDir: dir})
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	m, cmd := press(t, m, tea.KeyCtrlE)
	require.Nil(t, cmd, "empty conversation exports nothing")
	require.Empty(t, m.Toasts())

	m = typeText(t, m, "Hello")
	m, _ = press(t, m, tea.KeyEnter)
	m = awaitReply(t, m)

	m, cmd = press(t, m, tea.KeyCtrlE)
	require.NotNil(t, cmd)
	toasts := m.Toasts()
	require.Len(t, toasts, 1)
	require.True(t, strings.HasPrefix(toasts[0].Message, "Exported to "))

	files, err := filepath.Glob(filepath.Join(dir, "conversation_Hello_*.md"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	require.Contains(t, string(data), "API Key used: Missing.")
}

func TestCopyLast(t *testing.T) {
	m := newTestModel(t)

	m, cmd := press(t, m, tea.KeyCtrlY)
	require.Nil(t, cmd, "nothing to copy")

	m = typeText(t, m, "hello")
	m, _ = press(t, m, tea.KeyEnter)
	m, cmd = press(t, m, tea.KeyCtrlY)
	require.NotNil(t, cmd)
	require.Len(t, m.Toasts(), 1)

	// A second toast does not start a second ticker.
	m, cmd = press(t, m, tea.KeyCtrlY)
	require.Nil(t, cmd)
	require.Len(t, m.Toasts(), 2)
}

func TestToastTickWithoutToastsStops(t *testing.T) {
	m := newTestModel(t)
	_, cmd := step(t, m, components.ToastTickMsg{Time: time.Now()})
	require.Nil(t, cmd)
}

// =============================================================================
// NAVIGATION
// =============================================================================

func TestEscClearsSelectionThenLeaves(t *testing.T) {
	m := newTestModel(t)
	m = typeText(t, m, "hi")
	m, _ = press(t, m, tea.KeyEnter)
	m, _ = press(t, m, tea.KeyUp)
	require.Equal(t, 0, m.Selected())

	m, cmd := press(t, m, tea.KeyEsc)
	require.Nil(t, cmd)
	require.Equal(t, -1, m.Selected())

	_, cmd = press(t, m, tea.KeyEsc)
	require.NotNil(t, cmd)
	require.IsType(t, BackToLandingMsg{}, cmd())
}

func TestResetClearsConversation(t *testing.T) {
	m := newTestModel(t)
	m = typeText(t, m, "hi")
	m, _ = press(t, m, tea.KeyEnter)
	m = typeText(t, m, "draft")

	m, _ = press(t, m, tea.KeyCtrlL)
	require.Zero(t, m.Controller().Len())
	require.False(t, m.Controller().Busy())
	require.Empty(t, m.InputValue())
	require.Contains(t, m.View(), components.EmptyStateTitle)
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := press(t, m, tea.KeyCtrlC)
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestWaitForEventReportsClose(t *testing.T) {
	ctrl := session.NewController(session.Options{ReplyDelay: testDelay})
	ctrl.Close()
	require.IsType(t, SessionClosedMsg{}, waitForEvent(ctrl.Events())())
}

// =============================================================================
// VIEW
// =============================================================================

func TestViewBeforeResize(t *testing.T) {
	ctrl := session.NewController(session.Options{})
	t.Cleanup(ctrl.Close)
	m := New(ctrl, styles.NewTheme("dark"), Options{})
	require.Equal(t, "Loading...", m.View())
}

func TestViewChrome(t *testing.T) {
	m := newTestModel(t)
	view := m.View()

	require.Contains(t, view, HeaderTitle)
	require.Contains(t, view, "GPT-4o")
	require.Contains(t, view, FooterText)
	require.Contains(t, view, SendHint)
	require.Contains(t, view, components.EmptyStateTitle)
}

func TestViewFitsTerminal(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 3; i++ {
		m = typeText(t, m, strings.Repeat("word ", 40))
		m, _ = press(t, m, tea.KeyEnter)
		m = awaitReply(t, m)
	}

	require.LessOrEqual(t, countLines(m.View()), 40)
}

func TestKeyMapHelp(t *testing.T) {
	km := DefaultKeyMap()
	require.NotEmpty(t, km.ShortHelp())
	for _, group := range km.FullHelp() {
		for _, b := range group {
			require.NotEmpty(t, b.Help().Key)
		}
	}
}
