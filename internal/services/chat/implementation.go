package chat

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/paddockai/paddock/internal/services/chat/models"
	"github.com/paddockai/paddock/internal/services/generation"
	"github.com/paddockai/paddock/internal/services/prompt"
)

// Embedder turns the user question into a query vector, degrading to an
// empty vector on failure.
type Embedder interface {
	Embed(ctx context.Context, text string) []float32
}

// Retriever resolves a query vector into a context blob, degrading to an
// empty context on failure.
type Retriever interface {
	Retrieve(ctx context.Context, vector []float32) string
}

// Generator resolves an assembled prompt into a delta stream.
type Generator interface {
	Generate(ctx context.Context, messages []models.PromptMessage) generation.Stream
	Ready() bool
}

// Implementation wires the pipeline stages for one request: embed the
// question, retrieve context, assemble the prompt, generate the answer.
// Every stage failure degrades rather than aborting; the stream the
// caller receives is always valid, possibly empty.
type Implementation struct {
	embedder  Embedder
	retriever Retriever
	generator Generator
}

func NewService(embedder Embedder, retriever Retriever, generator Generator) *Implementation {
	return &Implementation{
		embedder:  embedder,
		retriever: retriever,
		generator: generator,
	}
}

func (s *Implementation) Ready() bool {
	return s.generator.Ready()
}

func (s *Implementation) ProcessChat(ctx context.Context, messages []models.ChatMessage) generation.Stream {
	requestID := uuid.New().String()[:8]
	question := strings.TrimSpace(messages[len(messages)-1].Text())

	log.Info().
		Str("request_id", requestID).
		Int("message_count", len(messages)).
		Msg("Processing chat request")

	vector := s.embedder.Embed(ctx, question)
	if len(vector) == 0 {
		log.Warn().Str("request_id", requestID).Msg("No query vector - skipping retrieval")
	}

	contextBlob := s.retriever.Retrieve(ctx, vector)
	if contextBlob == "" {
		log.Debug().Str("request_id", requestID).Msg("Answering without retrieved context")
	}

	assembled := prompt.Assemble(contextBlob, question, messages)

	log.Debug().
		Str("request_id", requestID).
		Int("vector_dims", len(vector)).
		Int("prompt_messages", len(assembled)).
		Msg("Prompt assembled, generating")

	return s.generator.Generate(ctx, assembled)
}
