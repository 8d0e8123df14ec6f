package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	Env             string

	GroqAPIKey   string
	GroqBaseURL  string
	GoogleAPIKey string
	TavilyAPIKey string
	SerpAPIKey   string

	ChatModel      string
	MarketingModel string

	EmbeddingModel   string
	EmbeddingBaseURL string
	EmbeddingAPIKey  string

	DatabaseURL string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	_ = godotenv.Load(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	groqKey := os.Getenv("GROQ_API_KEY")

	if env == "production" && groqKey == "" {
		log.Printf("GROQ_API_KEY is required in production")
	}

	return Config{
		Port:             getEnv("PORT", "9000"),
		CORSAllowOrigin:  splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:8501")),
		Env:              env,
		GroqAPIKey:       groqKey,
		GroqBaseURL:      getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GoogleAPIKey:     getEnv("GOOGLE_API_KEY", ""),
		TavilyAPIKey:     getEnv("TAVILY_API_KEY", ""),
		SerpAPIKey:       getEnv("SERPAPI_API_KEY", ""),
		ChatModel:        getEnv("CHAT_MODEL", "llama-3.3-70b-versatile"),
		MarketingModel:   getEnv("MARKETING_MODEL", "mistral-saba-24b"),
		EmbeddingModel:   getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		EmbeddingBaseURL: getEnv("EMBEDDING_BASE_URL", ""),
		EmbeddingAPIKey:  getEnv("EMBEDDING_API_KEY", os.Getenv("OPENAI_API_KEY")),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}
