package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paddockai/paddock/internal/services/chat/models"
	"github.com/paddockai/paddock/internal/services/generation"
)

type fakeEmbedder struct {
	vector   []float32
	question string
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) []float32 {
	f.question = text
	return f.vector
}

type fakeRetriever struct {
	blob   string
	vector []float32
	calls  int
}

func (f *fakeRetriever) Retrieve(ctx context.Context, vector []float32) string {
	f.calls++
	f.vector = vector
	return f.blob
}

type fakeGenerator struct {
	answer   string
	ready    bool
	received []models.PromptMessage
}

func (f *fakeGenerator) Generate(ctx context.Context, messages []models.PromptMessage) generation.Stream {
	f.received = messages
	return generation.NewTextStream(f.answer)
}

func (f *fakeGenerator) Ready() bool { return f.ready }

func TestProcessChatPipeline(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{0.1, 0.2}}
	retriever := &fakeRetriever{blob: `["context passage"]`}
	generator := &fakeGenerator{answer: "Max Verstappen.", ready: true}
	svc := NewService(embedder, retriever, generator)

	stream := svc.ProcessChat(context.Background(), []models.ChatMessage{
		{Role: "user", Content: "  Who won the 2023 championship?  "},
	})

	delta, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, "Max Verstappen.", delta)

	assert.Equal(t, "Who won the 2023 championship?", embedder.question, "question is trimmed before embedding")
	assert.Equal(t, []float32{0.1, 0.2}, retriever.vector)

	require.NotEmpty(t, generator.received)
	assert.Equal(t, "system", generator.received[0].Role)
	assert.Contains(t, generator.received[0].Content, `["context passage"]`)
}

func TestProcessChatDegradesThroughEmptyStages(t *testing.T) {
	// Embedding and retrieval both fail; generation still runs.
	embedder := &fakeEmbedder{}
	retriever := &fakeRetriever{}
	generator := &fakeGenerator{answer: "answer without context", ready: true}
	svc := NewService(embedder, retriever, generator)

	stream := svc.ProcessChat(context.Background(), []models.ChatMessage{
		{Role: "user", Content: "question"},
	})

	delta, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, "answer without context", delta)
	assert.Contains(t, generator.received[0].Content, "START CONTEXT BLOCK")
}

func TestProcessChatUsesLatestMessage(t *testing.T) {
	embedder := &fakeEmbedder{}
	svc := NewService(embedder, &fakeRetriever{}, &fakeGenerator{ready: true})

	svc.ProcessChat(context.Background(), []models.ChatMessage{
		{Role: "user", Content: "first question"},
		{Role: "assistant", Content: "an answer"},
		{Role: "user", Content: "second question"},
	})

	assert.Equal(t, "second question", embedder.question)
}

func TestReadyDelegatesToGenerator(t *testing.T) {
	svc := NewService(&fakeEmbedder{}, &fakeRetriever{}, &fakeGenerator{ready: false})
	assert.False(t, svc.Ready())
}
