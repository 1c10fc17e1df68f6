package config

import (
	"github.com/paddockai/paddock/pkg/logger"
)

func GetAstraEndpoint() string {
	logger.Debug(logger.CONFIG, "Getting Astra endpoint from environment")
	value := GetEnvOrDefault("ASTRA_DB_ENDPOINT", "")
	if value == "" {
		logger.Warn(logger.CONFIG, "ASTRA_DB_ENDPOINT environment variable not set")
		return value
	}
	logger.Info(logger.CONFIG, "Successfully retrieved Astra endpoint")
	return value
}

func GetAstraToken() string {
	logger.Debug(logger.CONFIG, "Getting Astra token from environment")
	value := GetEnvOrDefault("ASTRA_DB_TOKEN", "")
	if value == "" {
		logger.Warn(logger.CONFIG, "ASTRA_DB_TOKEN environment variable not set")
		return value
	}
	logger.Info(logger.CONFIG, "Successfully retrieved Astra token")
	return value
}

func GetAstraNamespace() string {
	return GetEnvOrDefault("ASTRA_DB_NAMESPACE", "default_keyspace")
}

func GetAstraCollection() string {
	return GetEnvOrDefault("ASTRA_DB_COLLECTION", "race_articles")
}
