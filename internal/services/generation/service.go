package generation

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/paddockai/paddock/internal/config"
	"github.com/paddockai/paddock/internal/services/chat/models"
	"github.com/paddockai/paddock/internal/services/prompt"
	"github.com/rs/zerolog/log"
)

const (
	primaryMaxTokens   = 512
	primaryTemperature = 0.7
	fallbackMaxTokens  = 256
)

// Fallback model candidates, tried strictly in order within each family.
// The causal family is exhausted before the text-to-text family starts.
var (
	causalModels = []string{
		"tiiuae/falcon-7b-instruct",
		"HuggingFaceH4/zephyr-7b-beta",
		"mistralai/Mistral-7B-Instruct-v0.2",
	}
	text2textModels = []string{
		"google/flan-t5-xxl",
		"google/flan-t5-large",
	}
)

// PrimaryClient is the chat-completion surface of the preferred provider.
type PrimaryClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
	CreateChatCompletionStream(ctx context.Context, req openai.ChatCompletionRequest) (*openai.ChatCompletionStream, error)
}

// FallbackClient is the text-generation surface of the secondary provider.
type FallbackClient interface {
	TextGeneration(ctx context.Context, model, inputs string, maxNewTokens int) (string, error)
	Text2TextGeneration(ctx context.Context, model, inputs string, maxNewTokens int) (string, error)
}

// Service resolves an assembled prompt into a delta stream by trying the
// provider tiers in strict preference order. Every individual attempt
// failure is swallowed and logged; an exhausted chain yields an empty
// stream, never an error.
type Service struct {
	primary       PrimaryClient
	fallback      FallbackClient
	primaryModel  string
	streamEnabled bool
}

func NewService(primary PrimaryClient, fallback FallbackClient) *Service {
	return &Service{
		primary:       primary,
		fallback:      fallback,
		primaryModel:  config.GetOpenAIModel(),
		streamEnabled: config.GetOpenAIStreamEnabled(),
	}
}

// Ready reports whether at least one generation tier is configured.
func (s *Service) Ready() bool {
	return s.primary != nil || s.fallback != nil
}

// Generate returns the answer for the assembled prompt as a delta
// stream. Tier 1 is attempted at most once; on failure the fallback
// models are tried sequentially, first non-empty result wins. Tiers are
// never raced: the secondary provider is only consulted after the
// primary has conclusively failed.
func (s *Service) Generate(ctx context.Context, messages []models.PromptMessage) Stream {
	if stream := s.generatePrimary(ctx, messages); stream != nil {
		return stream
	}
	if stream := s.generateFallback(ctx, messages); stream != nil {
		return stream
	}

	log.Warn().Msg("All generation tiers exhausted")
	return NewTextStream("")
}

func (s *Service) generatePrimary(ctx context.Context, messages []models.PromptMessage) Stream {
	if s.primary == nil {
		return nil
	}

	req := openai.ChatCompletionRequest{
		Model:       s.primaryModel,
		Messages:    toOpenAIMessages(messages),
		Temperature: primaryTemperature,
		MaxTokens:   primaryMaxTokens,
	}

	if s.streamEnabled {
		req.Stream = true
		upstream, err := s.primary.CreateChatCompletionStream(ctx, req)
		if err != nil {
			log.Warn().Err(err).Str("model", s.primaryModel).Msg("Primary tier stream failed - trying fallback")
			return nil
		}
		log.Debug().Str("model", s.primaryModel).Msg("Primary tier streaming")
		return &sseStream{upstream: upstream}
	}

	resp, err := s.primary.CreateChatCompletion(ctx, req)
	if err != nil {
		log.Warn().Err(err).Str("model", s.primaryModel).Msg("Primary tier failed - trying fallback")
		return nil
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		log.Warn().Str("model", s.primaryModel).Msg("Primary tier returned empty completion - trying fallback")
		return nil
	}

	return NewTextStream(resp.Choices[0].Message.Content)
}

func (s *Service) generateFallback(ctx context.Context, messages []models.PromptMessage) Stream {
	if s.fallback == nil {
		return nil
	}

	inputs := prompt.Flatten(messages)

	for _, model := range causalModels {
		text, err := s.fallback.TextGeneration(ctx, model, inputs, fallbackMaxTokens)
		if err != nil {
			log.Warn().Err(err).Str("model", model).Msg("Fallback model failed - trying next")
			continue
		}
		if strings.TrimSpace(text) != "" {
			log.Info().Str("model", model).Msg("Fallback answer produced")
			return NewTextStream(text)
		}
	}

	for _, model := range text2textModels {
		text, err := s.fallback.Text2TextGeneration(ctx, model, inputs, fallbackMaxTokens)
		if err != nil {
			log.Warn().Err(err).Str("model", model).Msg("Fallback model failed - trying next")
			continue
		}
		if strings.TrimSpace(text) != "" {
			log.Info().Str("model", model).Msg("Fallback answer produced")
			return NewTextStream(text)
		}
	}

	return nil
}

func toOpenAIMessages(messages []models.PromptMessage) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(messages))
	for i, msg := range messages {
		out[i] = openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}
	return out
}
