package config

import (
	"github.com/paddockai/paddock/pkg/logger"
)

// GetOpenAIKey returns the OpenAI API key, or "" when the primary
// generation tier is not configured.
func GetOpenAIKey() string {
	logger.Debug(logger.CONFIG, "Getting OpenAI key from environment")
	value := GetEnvOrDefault("OPENAI_API_KEY", "")
	if value == "" {
		logger.Warn(logger.CONFIG, "OPENAI_API_KEY environment variable not set - primary generation tier disabled")
		return value
	}
	logger.Info(logger.CONFIG, "Successfully retrieved OpenAI key")
	return value
}

// GetOpenAIModel returns the chat completion model for the primary tier
func GetOpenAIModel() string {
	return GetEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini")
}

// GetOpenAIStreamEnabled reports whether the primary tier should request
// a server-sent-event token stream instead of a single completion body.
func GetOpenAIStreamEnabled() bool {
	return GetEnvOrDefault("OPENAI_STREAM", "true") == "true"
}
