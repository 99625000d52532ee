// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// This package defines the core domain types used throughout the application
// for representing a chat session's messages and the selectable models.
//
// # Key Types
//
//   - Conversation: Append-only, insertion-ordered container of messages
//   - Message: Single message with id, role, content and timestamp
//   - ModelInfo: Display information about a selectable model
//   - Role: Message role enumeration (user, assistant)
//
// # Usage
//
// Create a new conversation:
//
//	conv := model.NewConversation()
//	conv.Append(model.NewUserMessage("Hello!"))
//
// Look up a model for display:
//
//	info, ok := model.GetModelInfo("gpt-4o")
//	fmt.Println(info.Name)
package model
