// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import "fmt"

// Responder produces the assistant's reply to a prompt.
// Implementations are called with the controller's lock held and must not
// call back into the Controller.
type Responder interface {
	Reply(prompt, model string) string
}

// ResponderFunc adapts a plain function to the Responder interface.
type ResponderFunc func(prompt, model string) string

// Reply calls f(prompt, model).
func (f ResponderFunc) Reply(prompt, model string) string {
	return f(prompt, model)
}

// mockReplyFormat is the simulated reply; %s is "Valid" or "Missing".
const mockReplyFormat = "API Key used: %s. This is a simulated response. " +
	"In a real implementation, this would connect to the AI API using the provided key."

// MockResponder answers every prompt with a fixed simulated reply that only
// reports whether an API key was configured. The key itself is never used.
type MockResponder struct {
	APIKey string
}

// Reply returns the simulated reply. The prompt and model do not affect it.
func (m MockResponder) Reply(prompt, model string) string {
	status := "Missing"
	if m.APIKey != "" {
		status = "Valid"
	}
	return fmt.Sprintf(mockReplyFormat, status)
}
