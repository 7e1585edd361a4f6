package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	OpenAIApiKey string
	Model        string
	MaxTokens    int
	Temperature  float64
	Host         string
	Port         string
	DatabaseURL  string
}

func Load() *Config {
	return &Config{
		OpenAIApiKey: getEnv("OPENAI_API_KEY", ""),
		Model:        getEnv("MODEL", "gpt-4o-mini"),
		MaxTokens:    getEnvAsInt("MAX_TOKENS", 500),
		Temperature:  getEnvAsFloat("TEMPERATURE", 0.7),
		Host:         getEnv("HOST", "0.0.0.0"),
		Port:         getEnv("PORT", "12001"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
	}
}

// Validate checks the settings the server cannot run without.
func (c *Config) Validate() error {
	if c.OpenAIApiKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is not set")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
