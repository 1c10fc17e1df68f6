package embedding

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/paddockai/paddock/internal/config"
	"github.com/rs/zerolog/log"
)

const cacheTTL = time.Hour

// Extractor is the feature-extraction surface of the embedding provider.
type Extractor interface {
	FeatureExtraction(ctx context.Context, model, text string) (json.RawMessage, error)
}

// Cache is an optional lookaside store for query embeddings.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

// Service turns raw query text into an embedding vector. It never fails
// past its own boundary: any transport error or unrecognised response
// shape degrades to an empty vector.
type Service struct {
	extractor Extractor
	cache     Cache
	model     string
}

func NewService(extractor Extractor, cache Cache) *Service {
	return &Service{
		extractor: extractor,
		cache:     cache,
		model:     config.GetEmbeddingModel(),
	}
}

// Embed returns the embedding vector for text, or an empty vector when
// the provider is unavailable, errors, or returns an unusable shape.
func (s *Service) Embed(ctx context.Context, text string) []float32 {
	if s.extractor == nil {
		log.Warn().Msg("Embedding provider not configured - proceeding without a query vector")
		return nil
	}

	key := cacheKey(s.model, text)
	if vector, ok := s.cacheGet(ctx, key); ok {
		return vector
	}

	raw, err := s.extractor.FeatureExtraction(ctx, s.model, text)
	if err != nil {
		log.Warn().Err(err).Str("model", s.model).Msg("Embedding request failed - proceeding without a query vector")
		return nil
	}

	vector := Normalize(raw)
	if len(vector) == 0 {
		return nil
	}

	s.cacheSet(ctx, key, vector)
	return vector
}

// Normalize resolves the provider's heterogeneous response shapes into a
// single flat vector: a flat numeric array is returned as-is, a batch of
// arrays yields its first element, and a keyed object of numerics yields
// its values in document order. Anything else is an empty vector.
func Normalize(raw json.RawMessage) []float32 {
	var flat []float32
	if err := json.Unmarshal(raw, &flat); err == nil {
		return flat
	}

	var batch [][]float32
	if err := json.Unmarshal(raw, &batch); err == nil {
		if len(batch) == 0 {
			return nil
		}
		return batch[0]
	}

	if vector, ok := normalizeKeyed(raw); ok {
		return vector
	}

	log.Warn().Str("body", truncate(string(raw), 200)).Msg("Unrecognised embedding response shape")
	return nil
}

// normalizeKeyed walks a JSON object token by token so the values come
// back in the order the provider wrote them, which map unmarshalling
// would not preserve.
func normalizeKeyed(raw json.RawMessage) ([]float32, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, false
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, false
	}

	var vector []float32
	for dec.More() {
		if _, err := dec.Token(); err != nil { // key
			return nil, false
		}
		val, err := dec.Token()
		if err != nil {
			return nil, false
		}
		num, ok := val.(float64)
		if !ok {
			return nil, false
		}
		vector = append(vector, float32(num))
	}

	return vector, true
}

func cacheKey(model, text string) string {
	sum := sha256.Sum256([]byte(text))
	return "embed:" + model + ":" + hex.EncodeToString(sum[:])
}

func (s *Service) cacheGet(ctx context.Context, key string) ([]float32, bool) {
	if s.cache == nil {
		return nil, false
	}

	val, err := s.cache.Get(ctx, key)
	if err != nil || val == "" {
		return nil, false
	}

	var vector []float32
	if err := json.Unmarshal([]byte(val), &vector); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("Discarding malformed cached embedding")
		return nil, false
	}
	return vector, true
}

func (s *Service) cacheSet(ctx context.Context, key string, vector []float32) {
	if s.cache == nil {
		return
	}

	encoded, err := json.Marshal(vector)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(encoded), cacheTTL); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("Failed to cache embedding")
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
