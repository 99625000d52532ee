// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the convospace TUI.
package styles

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// THEME CREATION TESTS
// =============================================================================

func TestNewTheme_ForcedModes(t *testing.T) {
	if !NewTheme("dark").IsDark {
		t.Error(`NewTheme("dark") should be dark`)
	}
	if NewTheme("LIGHT").IsDark {
		t.Error(`NewTheme("LIGHT") should be light`)
	}
}

func TestThemeInitStyles(t *testing.T) {
	theme := NewTheme("dark")

	styles := []struct {
		name  string
		style lipgloss.Style
	}{
		{"Header", theme.Header},
		{"UserBubble", theme.UserBubble},
		{"AssistantBubble", theme.AssistantBubble},
		{"InputContainer", theme.InputContainer},
		{"LandingBox", theme.LandingBox},
		{"PickerBox", theme.PickerBox},
	}

	for _, s := range styles {
		rendered := s.style.Render("test")
		if !strings.Contains(rendered, "test") {
			t.Errorf("%s style lost its content: %q", s.name, rendered)
		}
	}

	// Bordered styles add frame size.
	if theme.UserBubble.GetHorizontalFrameSize() == 0 {
		t.Error("UserBubble should have a border and padding")
	}
}

// =============================================================================
// INDICATOR TESTS
// =============================================================================

func TestRenderIndicators(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"success", RenderSuccess("saved"), "[OK] saved"},
		{"error", RenderError("failed"), "[X] failed"},
		{"info", RenderInfo("note"), "[i] note"},
	}

	for _, tc := range tests {
		if !strings.Contains(tc.got, tc.want) {
			t.Errorf("%s: %q does not contain %q", tc.name, tc.got, tc.want)
		}
	}
}

// =============================================================================
// SPINNER TESTS
// =============================================================================

func TestSpinnerConfig_Duration(t *testing.T) {
	if got := DotsSpinner.Duration(); got != time.Second/6 {
		t.Errorf("DotsSpinner.Duration() = %v", got)
	}
	if got := (SpinnerConfig{}).Duration(); got != time.Second {
		t.Errorf("zero FPS should fall back to 1s, got %v", got)
	}
}

func TestSpinnerConfig_Bubbles(t *testing.T) {
	s := LineSpinner.Bubbles()
	if len(s.Frames) != len(LineSpinner.Frames) {
		t.Errorf("frames = %d, want %d", len(s.Frames), len(LineSpinner.Frames))
	}
	if s.FPS != LineSpinner.Duration() {
		t.Errorf("FPS = %v, want %v", s.FPS, LineSpinner.Duration())
	}
}
