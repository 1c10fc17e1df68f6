package retrieval

import (
	"context"
	"encoding/json"

	"github.com/paddockai/paddock/internal/infrastructure/astra"
	"github.com/rs/zerolog/log"
)

// topK is the number of nearest documents requested per query.
const topK = 10

// Searcher is the similarity-query surface of the vector store.
type Searcher interface {
	SimilaritySearch(ctx context.Context, vector []float32, limit int) ([]astra.Document, error)
}

// Service resolves a query embedding into a context blob for prompt
// assembly. Retrieval failures degrade to an empty context; they never
// fail the request.
type Service struct {
	searcher Searcher
}

func NewService(searcher Searcher) *Service {
	return &Service{searcher: searcher}
}

// Retrieve returns the serialized texts of the nearest documents,
// closest first. An empty vector skips the store entirely: querying with
// no vector is meaningless and some stores reject it outright.
func (s *Service) Retrieve(ctx context.Context, vector []float32) string {
	if len(vector) == 0 {
		log.Debug().Msg("Empty query vector - skipping similarity search")
		return ""
	}
	if s.searcher == nil {
		log.Warn().Msg("Vector store not configured - answering without context")
		return ""
	}

	docs, err := s.searcher.SimilaritySearch(ctx, vector, topK)
	if err != nil {
		log.Warn().Err(err).Msg("Similarity search failed - answering without context")
		return ""
	}
	if len(docs) == 0 {
		return ""
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Text
	}

	blob, err := json.Marshal(texts)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to serialize context documents")
		return ""
	}

	log.Debug().Int("documents", len(docs)).Msg("Retrieved context for query")
	return string(blob)
}
