// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the convospace TUI.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection. The Theme bundles the styles used by the chat view, the landing
screen and the model picker.

# Color System (colors.go)

  - Purple - Assistant badge, titles, selections
  - Cyan - User badge, prompts
  - Emerald - Success toasts, enabled send hint
  - Amber - Status toasts, selected message outline
  - Rose - Errors

Bubble colors:

	UserBubbleBg / UserBubbleFg           - user messages
	AssistantBubbleBg / AssistantBubbleFg - assistant messages

# Theme (theme.go)

	theme := styles.NewTheme("auto")
	fmt.Println(theme.HeaderTitle.Render("AI Conversation Space"))

The mode argument forces "dark" or "light"; "auto" queries the terminal
with termenv.

# Animations (animations.go)

SpinnerConfig describes a frame animation and converts it into a
bubbles spinner with Bubbles().
*/
package styles
