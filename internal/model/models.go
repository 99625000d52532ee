// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

// =============================================================================
// MODEL INFO TYPE
// =============================================================================

// ModelInfo describes a selectable model.
// The selection is a display label only; it never changes reply content.
type ModelInfo struct {
	// ID is the identifier stored as the active model
	ID string `json:"id"`

	// Name is the human-readable display name
	Name string `json:"name"`

	// Provider is shown as secondary text in the picker
	Provider string `json:"provider"`
}

// DefaultModelID is the model selected when nothing else is configured.
const DefaultModelID = "gpt-4o"

// =============================================================================
// MODEL REGISTRY
// =============================================================================

// registry lists the selectable models in display order.
var registry = []ModelInfo{
	{ID: "gpt-4o", Name: "GPT-4o", Provider: "OpenAI"},
	{ID: "claude-3", Name: "Claude 3", Provider: "Anthropic"},
	{ID: "llama-3", Name: "Llama 3", Provider: "Meta"},
	{ID: "mistral", Name: "Mistral AI", Provider: "Mistral"},
}

// Models returns the selectable models in display order.
func Models() []ModelInfo {
	out := make([]ModelInfo, len(registry))
	copy(out, registry)
	return out
}

// ModelIDs returns the ids of the selectable models in display order.
func ModelIDs() []string {
	ids := make([]string, len(registry))
	for i, m := range registry {
		ids[i] = m.ID
	}
	return ids
}

// GetModelInfo looks up a model by id.
func GetModelInfo(id string) (ModelInfo, bool) {
	for _, m := range registry {
		if m.ID == id {
			return m, true
		}
	}
	return ModelInfo{}, false
}

// IsKnownModel reports whether id is in the registry.
func IsKnownModel(id string) bool {
	_, ok := GetModelInfo(id)
	return ok
}

// DisplayName returns the display name for id, or id itself if unknown.
func DisplayName(id string) string {
	if m, ok := GetModelInfo(id); ok {
		return m.Name
	}
	return id
}
