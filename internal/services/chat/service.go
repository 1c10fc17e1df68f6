package chat

import (
	"context"

	"github.com/paddockai/paddock/internal/services/chat/models"
	"github.com/paddockai/paddock/internal/services/generation"
)

// FallbackResponse is the fixed answer emitted when every generation
// tier has been exhausted. It is framed through the normal streaming
// path like any real answer.
const FallbackResponse = "I'm sorry, I couldn't generate a response at the moment. Please try again later."

// Stream is the delta stream an answer is delivered on.
type Stream = generation.Stream

// Service defines the interface for chat operations
type Service interface {
	// ProcessChat runs the retrieval-augmented pipeline for one
	// conversation and returns the answer as a delta stream.
	ProcessChat(ctx context.Context, messages []models.ChatMessage) Stream

	// Ready reports whether at least one generation provider is configured.
	Ready() bool
}
