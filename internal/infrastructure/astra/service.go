package astra

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

// Service queries an Astra DB collection through its Data API. Only the
// vector similarity search surface is used; indexing and persistence are
// owned by the offline ingestion job.
type Service struct {
	mu         sync.RWMutex
	client     *http.Client
	endpoint   string
	token      string
	namespace  string
	collection string
}

type searchRequest struct {
	SortByVector []float32 `json:"sortByVector"`
	Limit        int       `json:"limit"`
}

type searchResponse struct {
	Documents []Document `json:"documents"`
}

// Document is one similarity hit, ranked closest first by the store.
type Document struct {
	Text string `json:"text"`
	URL  string `json:"url,omitempty"`
}

func NewService() *Service {
	endpoint := config.GetAstraEndpoint()
	token := config.GetAstraToken()

	if endpoint == "" || token == "" {
		return nil
	}

	return &Service{
		mu:         sync.RWMutex{},
		client:     &http.Client{},
		endpoint:   endpoint,
		token:      token,
		namespace:  config.GetAstraNamespace(),
		collection: config.GetAstraCollection(),
	}
}

// SimilaritySearch returns the limit nearest documents to vector by
// vector distance, with no filter predicate.
func (s *Service) SimilaritySearch(ctx context.Context, vector []float32, limit int) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	req := searchRequest{
		SortByVector: vector,
		Limit:        limit,
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/api/json/v1/%s/%s/search", s.endpoint, s.namespace, s.collection)

	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Cassandra-Token", s.token)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, readErr := io.ReadAll(resp.Body)
		if readErr == nil {
			logger.Warn(logger.SERVICE, "Astra error response body: %s", string(body))
		}

		return nil, fmt.Errorf("astra API returned status %d", resp.StatusCode)
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return searchResp.Documents, nil
}
