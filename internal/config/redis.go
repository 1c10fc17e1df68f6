package config

import (
	"github.com/paddockai/paddock/pkg/logger"
)

func GetRedisURL() string {
	logger.Debug(logger.CONFIG, "Attempting to retrieve Redis URL from environment")
	value := GetEnvOrDefault("REDIS_URL", "")
	if value == "" {
		logger.Warn(logger.CONFIG, "Failed to retrieve Redis URL - environment variable not set")
	} else {
		logger.Info(logger.CONFIG, "Redis URL successfully loaded")
	}
	return value
}

func GetRedisPassword() string {
	logger.Debug(logger.CONFIG, "Attempting to retrieve Redis password from environment")
	return GetEnvOrDefault("REDIS_PASSWORD", "")
}
