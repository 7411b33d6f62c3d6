package common

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joseph-ayodele/text-structurer/constants"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	LLM      LLMConfig
	Pipeline PipelineConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	GRPCAddr        string
	ShutdownTimeout time.Duration
}

// LLMConfig holds generative-text service configuration. Empty credentials
// are allowed: every call then fails fast and the pipeline falls back.
type LLMConfig struct {
	AccountID   string
	APIKey      string
	BaseURL     string // template; {account_id} and {model} are substituted
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

// HasCredentials reports whether both the account and the token are set.
func (c LLMConfig) HasCredentials() bool {
	return strings.TrimSpace(c.AccountID) != "" && strings.TrimSpace(c.APIKey) != ""
}

// PipelineConfig holds analysis tuning knobs
type PipelineConfig struct {
	ChunkSize     int
	MaxChunks     int
	MaxInputChars int
	MinWords      int
	SummaryChars  int
	FieldMaxDepth int
	Parallel      bool // run summary and extraction concurrently
}

const DefaultBaseURL = "https://api.cloudflare.com/client/v4/accounts/{account_id}/ai/run/{model}"

// DefaultPipelineConfig returns the documented analysis limits.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		ChunkSize:     constants.DefaultChunkSize,
		MaxChunks:     constants.DefaultMaxChunks,
		MaxInputChars: constants.MaxInputChars,
		MinWords:      constants.MinWordCount,
		SummaryChars:  constants.SummaryInputChars,
		FieldMaxDepth: constants.DefaultFieldMaxDepth,
		Parallel:      true,
	}
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	def := DefaultPipelineConfig()
	return &Config{
		Server: ServerConfig{
			GRPCAddr:        getEnv("GRPC_ADDR", ":8080"),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		LLM: LLMConfig{
			AccountID:   getEnv("AI_ACCOUNT_ID", ""),
			APIKey:      getEnv("AI_API_TOKEN", ""),
			BaseURL:     getEnv("AI_BASE_URL", DefaultBaseURL),
			Model:       getEnv("AI_MODEL", "@cf/meta/llama-3.1-8b-instruct"),
			MaxTokens:   getEnvAsInt("AI_MAX_TOKENS", 2048),
			Temperature: getEnvAsFloat32("AI_TEMPERATURE", 0.1),
			Timeout:     getEnvAsDuration("AI_TIMEOUT", 45*time.Second),
		},
		Pipeline: PipelineConfig{
			ChunkSize:     getEnvAsInt("CHUNK_SIZE", def.ChunkSize),
			MaxChunks:     getEnvAsInt("MAX_CHUNKS", def.MaxChunks),
			MaxInputChars: getEnvAsInt("MAX_INPUT_CHARS", def.MaxInputChars),
			MinWords:      getEnvAsInt("MIN_WORDS", def.MinWords),
			SummaryChars:  getEnvAsInt("SUMMARY_CHARS", def.SummaryChars),
			FieldMaxDepth: getEnvAsInt("FIELD_MAX_DEPTH", def.FieldMaxDepth),
			Parallel:      getEnvAsBool("PIPELINE_PARALLEL", def.Parallel),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Server.GRPCAddr == "" {
		return NewAppError(CodeConfig, "GRPC_ADDR is required", ErrInvalidInput)
	}
	if !strings.Contains(c.LLM.BaseURL, "{model}") {
		return NewAppError(CodeConfig, "AI_BASE_URL must contain {model}", ErrInvalidInput)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return NewAppError(CodeConfig, "AI_TEMPERATURE must be within [0, 2]", ErrInvalidInput)
	}
	if c.LLM.MaxTokens <= 0 {
		return NewAppError(CodeConfig, "AI_MAX_TOKENS must be positive", ErrInvalidInput)
	}
	return c.Pipeline.Validate()
}

// Validate checks the analysis limits
func (p PipelineConfig) Validate() error {
	if p.ChunkSize <= 0 {
		return NewAppError(CodeConfig, "CHUNK_SIZE must be positive", ErrInvalidInput)
	}
	if p.MaxChunks < 1 {
		return NewAppError(CodeConfig, "MAX_CHUNKS must be at least 1", ErrInvalidInput)
	}
	if p.MaxInputChars <= 0 || p.MinWords < 0 || p.SummaryChars <= 0 || p.FieldMaxDepth < 1 {
		return NewAppError(CodeConfig, "pipeline limits must be positive", ErrInvalidInput)
	}
	return nil
}
