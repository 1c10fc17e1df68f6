package models

import "fmt"

// ChatMessage represents a single message in a chat conversation.
// Content is decoded as-is from the wire; clients occasionally send
// structured content, which is coerced to text at prompt assembly.
type ChatMessage struct {
	Role    string      `json:"role" validate:"omitempty,oneof=system user assistant"`
	Content interface{} `json:"content"`
}

// Text returns the message content as a string, coercing non-string
// content to its default string representation.
func (m ChatMessage) Text() string {
	switch c := m.Content.(type) {
	case nil:
		return ""
	case string:
		return c
	default:
		return fmt.Sprint(c)
	}
}

// ChatRequest is the body of a chat completion request.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages" validate:"required,min=1,dive"`
}

// PromptMessage is one role-tagged entry of an assembled, provider-ready
// prompt. Unlike ChatMessage its content is always text.
type PromptMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
