package config

import (
	"github.com/paddockai/paddock/pkg/logger"
)

func GetHuggingFaceKey() string {
	logger.Debug(logger.CONFIG, "Getting Hugging Face key from environment")
	value := GetEnvOrDefault("HF_API_KEY", "")
	if value == "" {
		logger.Warn(logger.CONFIG, "HF_API_KEY environment variable not set")
		return value
	}
	logger.Info(logger.CONFIG, "Successfully retrieved Hugging Face key")
	return value
}

func GetHuggingFaceBaseURL() string {
	return GetEnvOrDefault("HF_BASE_URL", "https://api-inference.huggingface.co")
}

// GetEmbeddingModel returns the feature-extraction model used to embed
// user queries for similarity search.
func GetEmbeddingModel() string {
	return GetEnvOrDefault("HF_EMBEDDING_MODEL", "sentence-transformers/all-MiniLM-L6-v2")
}
