// ABOUTME: Centralized configuration for the lectern service
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the course assistant
type Config struct {
	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
	Temperature    float64
	MaxTokens      int

	// Serving settings
	Addr          string
	DBPath        string
	DocsDir       string
	MaxResults    int
	MaxHistory    int
	MaxToolRounds int

	// Ingestion settings
	ChunkSize    int
	ChunkOverlap int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		ChatModel:      getEnv("LECTERN_CHAT_MODEL", "gpt-4o-mini"),
		EmbeddingModel: getEnv("LECTERN_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:        getEnvDuration("LECTERN_REQUEST_TIMEOUT", 30*time.Second),
		MaxRetries:     getEnvInt("LECTERN_MAX_RETRIES", 3),
		RetryDelay:     getEnvDuration("LECTERN_RETRY_DELAY", time.Second),
		Temperature:    getEnvFloat("LECTERN_TEMPERATURE", 0),
		MaxTokens:      getEnvInt("LECTERN_MAX_TOKENS", 800),
		Addr:           getEnv("LECTERN_ADDR", ":8000"),
		DBPath:         os.Getenv("LECTERN_DB_PATH"),
		DocsDir:        getEnv("LECTERN_DOCS_DIR", "./docs"),
		MaxResults:     getEnvInt("LECTERN_MAX_RESULTS", 5),
		MaxHistory:     getEnvInt("LECTERN_MAX_HISTORY", 2),
		MaxToolRounds:  getEnvInt("LECTERN_MAX_TOOL_ROUNDS", 2),
		ChunkSize:      getEnvInt("LECTERN_CHUNK_SIZE", 800),
		ChunkOverlap:   getEnvInt("LECTERN_CHUNK_OVERLAP", 100),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.MaxResults <= 0 {
		return fmt.Errorf("LECTERN_MAX_RESULTS must be positive, got %d", c.MaxResults)
	}
	if c.MaxHistory < 0 {
		return fmt.Errorf("LECTERN_MAX_HISTORY must be >= 0, got %d", c.MaxHistory)
	}
	if c.MaxToolRounds < 0 {
		return fmt.Errorf("LECTERN_MAX_TOOL_ROUNDS must be >= 0, got %d", c.MaxToolRounds)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("LECTERN_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("LECTERN_TEMPERATURE must be 0-2, got %f", c.Temperature)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("LECTERN_MAX_TOKENS must be positive, got %d", c.MaxTokens)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("LECTERN_CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("LECTERN_CHUNK_OVERLAP must be 0 <= overlap < chunk size, got %d", c.ChunkOverlap)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
