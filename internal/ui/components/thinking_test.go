// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
)

func TestThinkingIndicator_View(t *testing.T) {
	ind := NewThinkingIndicator(testTheme())
	view := ind.View()

	if !strings.Contains(view, ThinkingText) {
		t.Errorf("missing thinking text: %q", view)
	}
	if !strings.Contains(view, "AI") {
		t.Errorf("missing AI badge: %q", view)
	}
}

func TestThinkingIndicator_TickAdvances(t *testing.T) {
	ind := NewThinkingIndicator(testTheme())

	msg := ind.Tick()
	if _, ok := msg.(spinner.TickMsg); !ok {
		t.Fatalf("Tick() returned %T, want spinner.TickMsg", msg)
	}

	before := ind.View()
	ind, cmd := ind.Update(msg)
	if cmd == nil {
		t.Error("spinner should schedule the next frame")
	}
	if ind.View() == before {
		t.Error("spinner frame should change after a tick")
	}
}

func TestRenderEmptyState(t *testing.T) {
	out := RenderEmptyState(testTheme(), 100, 10)
	if !strings.Contains(out, EmptyStateTitle) {
		t.Errorf("missing title:\n%s", out)
	}
	if !strings.Contains(out, "Ask anything") {
		t.Errorf("missing hint:\n%s", out)
	}
}
