// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session provides the chat session controller.
package session

import (
	"context"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/jeranaias/convospace/internal/model"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// DefaultReplyDelay is how long the simulated assistant takes to answer.
	DefaultReplyDelay = 1500 * time.Millisecond

	// DefaultEventBuffer is the capacity of the events channel.
	DefaultEventBuffer = 16
)

// =============================================================================
// STATE
// =============================================================================

// State is the controller's position in the submit/reply cycle.
type State int

const (
	// StateIdle accepts a new submission.
	StateIdle State = iota
	// StateAwaitingReply has one reply scheduled; submissions are ignored.
	StateAwaitingReply
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingReply:
		return "awaiting-reply"
	default:
		return "unknown"
	}
}

// =============================================================================
// EVENTS
// =============================================================================

// EventKind identifies what happened in the session.
type EventKind int

const (
	// EventReply is sent after the assistant message has been appended.
	EventReply EventKind = iota
)

// Event is a notification delivered on the controller's events channel.
type Event struct {
	Kind    EventKind
	Message model.Message
}

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures a Controller. Zero values select the defaults.
type Options struct {
	// APIKey is handed to the default MockResponder
	APIKey string

	// ReplyDelay is the wait between an accepted submit and the reply
	ReplyDelay time.Duration

	// Model is the initially selected model label
	Model string

	// Responder produces replies (default: MockResponder{APIKey})
	Responder Responder

	// Logger receives diagnostics (default: discard)
	Logger *log.Logger

	// EventBuffer is the events channel capacity (default: 16)
	EventBuffer int
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns one chat session: the message history, the pending input,
// the busy flag and the selected model label. It is safe for concurrent use;
// the scheduled reply runs on its own goroutine.
type Controller struct {
	mu sync.Mutex

	conv      *model.Conversation
	input     string
	state     State
	model     string
	delay     time.Duration
	responder Responder
	logger    *log.Logger
	events    chan Event

	// ctx bounds every scheduled reply to the controller's lifetime.
	ctx    context.Context
	cancel context.CancelFunc

	// Pending reply, set only in StateAwaitingReply.
	replyTimer  *time.Timer
	replyCancel context.CancelFunc

	closed bool
}

// NewController creates an idle controller with an empty conversation.
func NewController(opts Options) *Controller {
	if opts.ReplyDelay <= 0 {
		opts.ReplyDelay = DefaultReplyDelay
	}
	if opts.Model == "" {
		opts.Model = model.DefaultModelID
	}
	if opts.Responder == nil {
		opts.Responder = MockResponder{APIKey: opts.APIKey}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	if opts.EventBuffer <= 0 {
		opts.EventBuffer = DefaultEventBuffer
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		conv:      model.NewConversation(),
		state:     StateIdle,
		model:     opts.Model,
		delay:     opts.ReplyDelay,
		responder: opts.Responder,
		logger:    opts.Logger,
		events:    make(chan Event, opts.EventBuffer),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// =============================================================================
// INPUT BUFFER
// =============================================================================

// SetInput replaces the pending input text.
func (c *Controller) SetInput(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.input = text
}

// Input returns the pending input text.
func (c *Controller) Input() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input
}

// CanSubmit reports whether the pending input would be accepted.
func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.acceptsLocked(c.input)
}

func (c *Controller) acceptsLocked(text string) bool {
	return !c.closed && c.state == StateIdle && strings.TrimSpace(text) != ""
}

// =============================================================================
// SUBMIT / REPLY
// =============================================================================

// Submit appends text as a user message and schedules exactly one reply.
// It is a no-op returning false when text is blank, a reply is already
// pending, or the controller is closed. The stored content is text as given,
// untrimmed.
func (c *Controller) Submit(text string) (model.Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.acceptsLocked(text) {
		return model.Message{}, false
	}

	msg := model.NewUserMessage(text)
	c.conv.Append(msg)
	c.input = ""
	c.state = StateAwaitingReply

	replyCtx, replyCancel := context.WithCancel(c.ctx)
	c.replyCancel = replyCancel
	c.replyTimer = time.AfterFunc(c.delay, func() {
		c.deliver(replyCtx, text)
	})

	c.logger.Printf("session: accepted %s, reply in %v", msg.ID, c.delay)
	return msg, true
}

// SubmitInput submits the pending input buffer.
func (c *Controller) SubmitInput() (model.Message, bool) {
	c.mu.Lock()
	text := c.input
	c.mu.Unlock()
	return c.Submit(text)
}

// deliver appends the assistant reply unless ctx was cancelled by Reset or
// Close while the timer was pending.
func (c *Controller) deliver(ctx context.Context, prompt string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ctx.Err() != nil || c.state != StateAwaitingReply {
		return
	}

	reply := model.NewAssistantMessage(c.responder.Reply(prompt, c.model))
	c.conv.Append(reply)
	c.clearPendingLocked()
	c.state = StateIdle

	c.emitLocked(Event{Kind: EventReply, Message: reply})
}

// emitLocked sends ev without blocking. A full channel drops the event;
// the history already holds the reply.
func (c *Controller) emitLocked(ev Event) {
	select {
	case c.events <- ev:
	default:
		c.logger.Printf("session: WARNING: event channel full, dropping reply notification for %s", ev.Message.ID)
	}
}

// clearPendingLocked stops the pending timer and cancels its context.
func (c *Controller) clearPendingLocked() {
	if c.replyTimer != nil {
		c.replyTimer.Stop()
		c.replyTimer = nil
	}
	if c.replyCancel != nil {
		c.replyCancel()
		c.replyCancel = nil
	}
}

// Events returns the channel on which reply notifications arrive.
// The channel is closed by Close.
func (c *Controller) Events() <-chan Event {
	return c.events
}

// =============================================================================
// MODEL SELECTION
// =============================================================================

// SelectModel changes the display-only model label and returns the
// notification text to show. Empty names are ignored and yield "".
// The message history is never touched.
func (c *Controller) SelectModel(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	c.mu.Lock()
	c.model = name
	c.mu.Unlock()

	c.logger.Printf("session: model set to %s", name)
	return "Switched to " + name + " model"
}

// Model returns the selected model label.
func (c *Controller) Model() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.model
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Busy reports whether a reply is pending.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateAwaitingReply
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Messages returns a copy of the history in insertion order.
func (c *Controller) Messages() []model.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conv.Messages()
}

// Len returns the number of messages in the history.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conv.Len()
}

// Last returns the most recent message, or false if the history is empty.
func (c *Controller) Last() (model.Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conv.Last()
}

// ReplyDelay returns the configured reply delay.
func (c *Controller) ReplyDelay() time.Duration {
	return c.delay
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// Reset cancels any pending reply and clears the history and input.
// The selected model is kept.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clearPendingLocked()
	c.conv.Clear()
	c.input = ""
	c.state = StateIdle
	c.logger.Printf("session: reset")
}

// Close cancels any pending reply and closes the events channel.
// Further submissions are ignored. Safe to call more than once.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.clearPendingLocked()
	c.cancel()
	c.state = StateIdle
	close(c.events)
}
