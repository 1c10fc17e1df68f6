package services

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/paddockai/paddock/internal/infrastructure/astra"
	"github.com/paddockai/paddock/internal/infrastructure/huggingface"
	"github.com/paddockai/paddock/internal/infrastructure/openai"
	"github.com/paddockai/paddock/internal/infrastructure/redis"
	"github.com/paddockai/paddock/internal/services/chat"
	"github.com/paddockai/paddock/internal/services/embedding"
	"github.com/paddockai/paddock/internal/services/generation"
	"github.com/paddockai/paddock/internal/services/retrieval"
)

var (
	// Mutex for thread-safe initialization
	servicesMu sync.RWMutex
)

type Services struct {
	redisService       *redis.Service
	huggingFaceService *huggingface.Service
	astraService       *astra.Service
	openAIService      *openai.Service
	embeddingService   *embedding.Service
	retrievalService   *retrieval.Service
	generationService  *generation.Service
	chatService        *chat.Implementation
}

// InitializeServices constructs every collaborator handle once at
// startup. Infrastructure services are optional: a missing credential
// yields a nil handle and the pipeline degrades per stage instead of
// refusing to start.
func InitializeServices() (*Services, error) {
	servicesMu.Lock()
	defer servicesMu.Unlock()

	log.Info().Msg("Initializing core services")

	// Optional infrastructure handles
	redisService := redis.NewService()
	huggingFaceService := huggingface.NewService()
	astraService := astra.NewService()
	openAIService := openai.NewService()
	log.Info().Msg("Initializing infrastructure services")

	// A nil concrete pointer must not become a non-nil interface value.
	var extractor embedding.Extractor
	if huggingFaceService != nil {
		extractor = huggingFaceService
	}
	var cache embedding.Cache
	if redisService != nil {
		cache = redisService
	}
	embeddingService := embedding.NewService(extractor, cache)
	log.Info().Msg("Initializing embedding service")

	var searcher retrieval.Searcher
	if astraService != nil {
		searcher = astraService
	}
	retrievalService := retrieval.NewService(searcher)
	log.Info().Msg("Initializing retrieval service")

	var primary generation.PrimaryClient
	if openAIService != nil {
		primary = openAIService.GetClient()
	}
	var fallback generation.FallbackClient
	if huggingFaceService != nil {
		fallback = huggingFaceService
	}
	generationService := generation.NewService(primary, fallback)
	if !generationService.Ready() {
		log.Warn().Msg("No generation provider configured - chat requests will be rejected")
	}
	log.Info().Msg("Initializing generation service")

	chatService := chat.NewService(embeddingService, retrievalService, generationService)
	log.Info().Msg("Initializing chat service")

	log.Info().Msg("All services initialized successfully")

	return &Services{
		redisService:       redisService,
		huggingFaceService: huggingFaceService,
		astraService:       astraService,
		openAIService:      openAIService,
		embeddingService:   embeddingService,
		retrievalService:   retrievalService,
		generationService:  generationService,
		chatService:        chatService,
	}, nil
}

// GetChatService returns the chat service
func (s *Services) GetChatService() *chat.Implementation {
	return s.chatService
}

// GetEmbeddingService returns the embedding service
func (s *Services) GetEmbeddingService() *embedding.Service {
	return s.embeddingService
}

// GetRetrievalService returns the retrieval service
func (s *Services) GetRetrievalService() *retrieval.Service {
	return s.retrievalService
}

// GetGenerationService returns the generation service
func (s *Services) GetGenerationService() *generation.Service {
	return s.generationService
}

// Close releases long-lived infrastructure connections.
func (s *Services) Close() {
	if s.redisService != nil {
		if err := s.redisService.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Redis connection")
		}
	}
}
