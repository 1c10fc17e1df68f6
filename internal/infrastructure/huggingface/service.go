package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/paddockai/paddock/internal/config"
	"github.com/paddockai/paddock/pkg/logger"
)

// Service is a thin client for the Hugging Face inference API. It carries
// both the feature-extraction pipeline used for query embeddings and the
// text-generation endpoints used by the fallback tier.
type Service struct {
	mu      sync.RWMutex
	client  *http.Client
	apiKey  string
	baseURL string
}

type extractionRequest struct {
	Inputs  string            `json:"inputs"`
	Options extractionOptions `json:"options"`
}

type extractionOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type generationRequest struct {
	Inputs     string               `json:"inputs"`
	Parameters generationParameters `json:"parameters"`
}

type generationParameters struct {
	MaxNewTokens   int   `json:"max_new_tokens"`
	ReturnFullText *bool `json:"return_full_text,omitempty"`
}

type generationResponse []struct {
	GeneratedText string `json:"generated_text"`
}

func NewService() *Service {
	apiKey := config.GetHuggingFaceKey()

	if apiKey == "" {
		return nil
	}

	return &Service{
		mu:      sync.RWMutex{},
		client:  &http.Client{},
		apiKey:  apiKey,
		baseURL: config.GetHuggingFaceBaseURL(),
	}
}

// FeatureExtraction embeds text with the given model and returns the raw
// JSON body. The pipeline's response shape varies by model (flat vector,
// batch of vectors, or keyed object), so callers normalise it themselves.
func (s *Service) FeatureExtraction(ctx context.Context, model, text string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	req := extractionRequest{
		Inputs:  text,
		Options: extractionOptions{WaitForModel: true},
	}

	url := fmt.Sprintf("%s/pipeline/feature-extraction/%s", s.baseURL, model)
	body, err := s.post(ctx, url, req)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// TextGeneration runs a causal text-generation model and returns the
// completion text only.
func (s *Service) TextGeneration(ctx context.Context, model, inputs string, maxNewTokens int) (string, error) {
	full := false
	return s.generate(ctx, model, generationRequest{
		Inputs: inputs,
		Parameters: generationParameters{
			MaxNewTokens:   maxNewTokens,
			ReturnFullText: &full,
		},
	})
}

// Text2TextGeneration runs an instruction-tuned text-to-text model.
func (s *Service) Text2TextGeneration(ctx context.Context, model, inputs string, maxNewTokens int) (string, error) {
	return s.generate(ctx, model, generationRequest{
		Inputs: inputs,
		Parameters: generationParameters{
			MaxNewTokens: maxNewTokens,
		},
	})
}

func (s *Service) generate(ctx context.Context, model string, req generationRequest) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	url := fmt.Sprintf("%s/models/%s", s.baseURL, model)
	body, err := s.post(ctx, url, req)
	if err != nil {
		return "", err
	}

	var genResp generationResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(genResp) == 0 {
		return "", fmt.Errorf("empty generation response from %s", model)
	}
	return genResp[0].GeneratedText, nil
}

func (s *Service) post(ctx context.Context, url string, payload interface{}) ([]byte, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		logger.Warn(logger.SERVICE, "Hugging Face API error response: %s", string(body))
		return nil, fmt.Errorf("hugging face API returned status %d", resp.StatusCode)
	}

	return body, nil
}
