// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/convospace/internal/model"
	"github.com/jeranaias/convospace/internal/session"
)

// ReplyMsg carries an assistant reply delivered by the controller.
type ReplyMsg struct {
	Message model.Message
}

// SessionClosedMsg is sent once the controller's event channel closes.
type SessionClosedMsg struct{}

// BackToLandingMsg asks the root model to show the landing screen.
type BackToLandingMsg struct{}

// clockTickMsg re-renders relative timestamps.
type clockTickMsg time.Time

// clockInterval is how often "n minutes ago" labels are refreshed.
const clockInterval = 30 * time.Second

// waitForEvent blocks on the controller's event channel.
func waitForEvent(events <-chan session.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return SessionClosedMsg{}
		}
		return ReplyMsg{Message: ev.Message}
	}
}

func clockTick() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

func backToLanding() tea.Msg {
	return BackToLandingMsg{}
}
