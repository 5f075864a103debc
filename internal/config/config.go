package config

import (
	"os"
	"strconv"
)

type Config struct {
	LogLevel string

	DocsDir    string
	IndexDir   string
	Collection string

	OllamaURL        string
	OllamaGenModel   string
	OllamaEmbedModel string
	EmbedDim         int

	RerankURL string

	TokenEncoding string
	ChunkTokens   int

	RetrieveTopK int
	RerankTopK   int

	ModelRateRPS float64

	MetricsPort string
}

func Load() Config {
	return Config{
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		DocsDir:    mustEnv("DOCS_DIR", "./docs"),
		IndexDir:   mustEnv("INDEX_DIR", "./data/index"),
		Collection: mustEnv("INDEX_COLLECTION", "docs"),

		OllamaURL:        mustEnv("OLLAMA_URL", "http://localhost:11434"),
		OllamaGenModel:   mustEnv("OLLAMA_GEN_MODEL", "llama3.1:8b"),
		OllamaEmbedModel: mustEnv("OLLAMA_EMBED_MODEL", "all-minilm"),
		EmbedDim:         mustEnvInt("EMBED_DIM", 384),

		RerankURL: mustEnv("RERANK_URL", "http://localhost:8787"),

		TokenEncoding: mustEnv("TOKEN_ENCODING", "cl100k_base"),
		ChunkTokens:   mustEnvInt("CHUNK_TOKENS", 500),

		RetrieveTopK: mustEnvInt("RETRIEVE_TOP_K", 50),
		RerankTopK:   mustEnvInt("RERANK_TOP_K", 5),

		ModelRateRPS: mustEnvFloat("MODEL_RATE_RPS", 0),

		MetricsPort: mustEnv("METRICS_PORT", "9090"),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
