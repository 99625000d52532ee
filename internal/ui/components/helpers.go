// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the convospace TUI.
package components

import (
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/convospace/internal/ui/styles"
)

// =============================================================================
// SHARED HELPER FUNCTIONS
// =============================================================================

var (
	fallbackTheme     *styles.Theme
	fallbackThemeOnce sync.Once
)

// themeOrDefault returns theme, or a lazily detected theme when nil.
func themeOrDefault(theme *styles.Theme) *styles.Theme {
	if theme != nil {
		return theme
	}
	fallbackThemeOnce.Do(func() {
		fallbackTheme = styles.NewTheme("auto")
	})
	return fallbackTheme
}

// wrapText wraps text to width display cells, keeping existing newlines.
// Wide characters are measured with go-runewidth.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, wrapLine(line, width)...)
	}
	return strings.Join(out, "\n")
}

// wrapLine breaks one line at spaces. The run of spaces at a break is
// consumed; every other run, indentation included, is kept as typed. Words
// wider than width are split, and a blank line is cut into width-sized
// pieces rather than dropped.
func wrapLine(line string, width int) []string {
	if runewidth.StringWidth(line) <= width {
		return []string{line}
	}
	if strings.TrimSpace(line) == "" {
		return splitWidth(line, width)
	}

	var lines []string
	var cur strings.Builder
	curWidth := 0
	gap, gapWidth := "", 0

	flush := func() {
		lines = append(lines, cur.String())
		cur.Reset()
		curWidth = 0
	}

	for _, tok := range splitRuns(line) {
		w := runewidth.StringWidth(tok)
		if isBlank(tok) {
			gap, gapWidth = tok, w
			continue
		}

		if curWidth > 0 && curWidth+gapWidth+w > width {
			flush()
			gap, gapWidth = "", 0
		}
		if gapWidth >= width {
			gap, gapWidth = "", 0
		}
		cur.WriteString(gap)
		curWidth += gapWidth
		gap, gapWidth = "", 0

		for curWidth+w > width {
			head := runewidth.Truncate(tok, width-curWidth, "")
			if head == "" {
				if curWidth > 0 {
					flush()
					continue
				}
				// A single wide rune does not fit; emit it alone.
				head = string([]rune(tok)[:1])
			}
			cur.WriteString(head)
			flush()
			tok = tok[len(head):]
			w = runewidth.StringWidth(tok)
		}
		if tok != "" {
			cur.WriteString(tok)
			curWidth += w
		}
	}

	if gapWidth > 0 && curWidth+gapWidth <= width {
		cur.WriteString(gap)
		curWidth += gapWidth
	}
	if cur.Len() > 0 {
		flush()
	}
	return lines
}

// splitRuns cuts s into alternating runs of blanks and non-blanks.
func splitRuns(s string) []string {
	var runs []string
	start, blank := 0, false
	for i, r := range s {
		if i == 0 {
			blank = isBlankRune(r)
			continue
		}
		if isBlankRune(r) != blank {
			runs = append(runs, s[start:i])
			start, blank = i, !blank
		}
	}
	if start < len(s) {
		runs = append(runs, s[start:])
	}
	return runs
}

// splitWidth hard-wraps s every width display cells.
func splitWidth(s string, width int) []string {
	var out []string
	for s != "" {
		head := runewidth.Truncate(s, width, "")
		if head == "" {
			head = string([]rune(s)[:1])
		}
		out = append(out, head)
		s = s[len(head):]
	}
	return out
}

func isBlank(s string) bool {
	for _, r := range s {
		if !isBlankRune(r) {
			return false
		}
	}
	return s != ""
}

func isBlankRune(r rune) bool {
	return r == ' ' || r == '\t'
}

// maxLineWidth returns the display width of the widest line.
func maxLineWidth(s string) int {
	widest := 0
	for _, line := range strings.Split(s, "\n") {
		if w := runewidth.StringWidth(line); w > widest {
			widest = w
		}
	}
	return widest
}
