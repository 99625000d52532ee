// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session provides the chat session controller.
//
// A Controller owns the message history of one chat, the pending input
// buffer, a busy flag and the selected model label. Each accepted submission
// schedules exactly one simulated assistant reply after a fixed delay.
//
// # Key Types
//
//   - Controller: Session state machine (idle, awaiting-reply)
//   - Options: Injected configuration (API key, delay, model, responder)
//   - Responder: Produces reply text; MockResponder is the default
//   - Event: Notification sent when a reply has been appended
//
// # Usage
//
//	ctrl := session.NewController(session.Options{APIKey: key})
//	defer ctrl.Close()
//
//	if _, ok := ctrl.Submit("Hello"); ok {
//	    ev := <-ctrl.Events()
//	    fmt.Println(ev.Message.Content)
//	}
//
// Blank submissions and submissions while a reply is pending are ignored.
// Reset and Close cancel a pending reply so it never arrives.
package session
