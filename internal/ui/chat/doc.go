// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the chat view of the convospace TUI.

The view is a Bubble Tea model wrapped around a session.Controller. The
controller owns the conversation and the pending reply; this package only
translates key presses into controller calls and renders its state.

# Layout (view.go)

	header   title and active model
	body     message history, empty state or model picker
	status   "AI is thinking..." while a reply is pending
	toasts   transient notifications
	input    text field with the send hint
	help     key shortcuts
	footer   demo notice

# Replies

Init starts a command that blocks on the controller's event channel. Each
ReplyMsg refreshes the viewport, scrolls to the bottom and re-arms the
command.

# Keys (keys.go)

	enter        send
	ctrl+o       choose model
	up/down      select a message
	ctrl+k       copy the selected message (alt+c also works)
	ctrl+y       copy the last message
	pgup/pgdown  scroll
	ctrl+l       clear the conversation
	ctrl+e       export the conversation as Markdown
	esc          close picker, clear selection, back to the landing screen
	ctrl+c       quit
*/
package chat
