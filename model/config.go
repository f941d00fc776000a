package model

import (
	"fmt"
	"os"
	"strings"
)

// Provider names accepted by EMBEDDING_PROVIDER and LLM_PROVIDER
const (
	ProviderOpenAI = "openai"
	ProviderGoogle = "google"
	ProviderLocal  = "local"
)

// Retrieval and chunking constants shared by ingestion and querying
const (
	ChunkSize    = 1000
	ChunkOverlap = 150
	TopK         = 10
)

// Config is the environment sourced configuration of ingestion and querying
type Config struct {
	EmbeddingProvider string
	LLMProvider       string

	OpenAIAPIKey string
	GoogleAPIKey string

	OpenAIEmbeddingModel string
	GoogleEmbeddingModel string
	LocalEmbeddingModel  string
	OpenAILLMModel       string
	GoogleLLMModel       string
	ModelsDir            string

	DatabaseURL    string
	CollectionName string
	PDFPath        string
}

// NewConfigFromEnv reads the configuration from the environment and applies defaults
func NewConfigFromEnv() *Config {
	return &Config{
		EmbeddingProvider:    strings.ToLower(getEnv("EMBEDDING_PROVIDER", ProviderOpenAI)),
		LLMProvider:          strings.ToLower(getEnv("LLM_PROVIDER", ProviderOpenAI)),
		OpenAIAPIKey:         os.Getenv("OPENAI_API_KEY"),
		GoogleAPIKey:         os.Getenv("GOOGLE_API_KEY"),
		OpenAIEmbeddingModel: getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
		GoogleEmbeddingModel: getEnv("GOOGLE_EMBEDDING_MODEL", "models/embedding-001"),
		LocalEmbeddingModel:  getEnv("LOCAL_EMBEDDING_MODEL", "sentence-transformers/all-MiniLM-L6-v2"),
		OpenAILLMModel:       getEnv("OPENAI_LLM_MODEL", "gpt-5-nano"),
		GoogleLLMModel:       getEnv("GOOGLE_LLM_MODEL", "gemini-2.5-flash-lite"),
		ModelsDir:            getEnv("MODELS_DIR", "./models"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		CollectionName:       os.Getenv("PG_VECTOR_COLLECTION_NAME"),
		PDFPath:              os.Getenv("PDF_PATH"),
	}
}

// ValidateIngestion checks everything ingestion needs, in the order it is used
func (c *Config) ValidateIngestion() error {
	if err := c.validateStore(); err != nil {
		return err
	}
	if c.PDFPath == "" {
		return missing("PDF_PATH")
	}
	return c.ValidateEmbedding()
}

// ValidateQuery checks everything the question answering pipeline needs
func (c *Config) ValidateQuery() error {
	if err := c.validateStore(); err != nil {
		return err
	}
	if err := c.ValidateEmbedding(); err != nil {
		return err
	}
	return c.ValidateLLM()
}

// ValidateEmbedding checks the embedding provider switch and its credential
func (c *Config) ValidateEmbedding() error {
	switch c.EmbeddingProvider {
	case ProviderOpenAI:
		return requireKey("OPENAI_API_KEY", c.OpenAIAPIKey)
	case ProviderGoogle:
		return requireKey("GOOGLE_API_KEY", c.GoogleAPIKey)
	case ProviderLocal:
		return nil
	default:
		return fmt.Errorf("%w: EMBEDDING_PROVIDER=%s (use 'openai', 'google' or 'local')", ErrUnknownProvider, c.EmbeddingProvider)
	}
}

// ValidateLLM checks the generation provider switch and its credential
func (c *Config) ValidateLLM() error {
	switch c.LLMProvider {
	case ProviderOpenAI:
		return requireKey("OPENAI_API_KEY", c.OpenAIAPIKey)
	case ProviderGoogle:
		return requireKey("GOOGLE_API_KEY", c.GoogleAPIKey)
	default:
		return fmt.Errorf("%w: LLM_PROVIDER=%s (use 'openai' or 'google')", ErrUnknownProvider, c.LLMProvider)
	}
}

func (c *Config) validateStore() error {
	if c.DatabaseURL == "" {
		return missing("DATABASE_URL")
	}
	if c.CollectionName == "" {
		return missing("PG_VECTOR_COLLECTION_NAME")
	}
	return nil
}

func requireKey(key string, value string) error {
	if value == "" {
		return missing(key)
	}
	return nil
}

func missing(key string) error {
	return fmt.Errorf("%w: environment variable %s is not set", ErrMissingConfig, key)
}

func getEnv(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
