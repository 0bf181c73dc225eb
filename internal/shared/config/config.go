package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	DatabaseURL     string

	OCRAPIURL  string
	OCRAPIKey  string
	OCREngine  int
	OCRTimeout time.Duration

	OpenRouterAPIURL string
	OpenRouterAPIKey string
	LLMModel         string
	LLMTimeout       time.Duration

	PlanRef string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             env,
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DatabaseURL:     dbURL,

		OCRAPIURL:  getEnv("OCR_API_URL", "https://api.ocr.space/parse/image"),
		OCRAPIKey:  getEnv("OCR_API_KEY", ""),
		OCREngine:  getEnvInt("OCR_ENGINE", 2),
		OCRTimeout: getEnvSeconds("OCR_TIMEOUT_SECONDS", 30),

		OpenRouterAPIURL: getEnv("OPENROUTER_API_URL", "https://openrouter.ai/api/v1/chat/completions"),
		OpenRouterAPIKey: getEnv("OPENROUTER_API_KEY", ""),
		LLMModel:         getEnv("LLM_MODEL", "meta-llama/llama-4-scout:free"),
		LLMTimeout:       getEnvSeconds("LLM_TIMEOUT_SECONDS", 60),

		PlanRef: getEnv("PLAN_REF", "starter"),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config %s invalid int: %v", key, err)
		return def
	}
	return val
}

func getEnvSeconds(key string, defSeconds int) time.Duration {
	return time.Duration(getEnvInt(key, defSeconds)) * time.Second
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
	default:
		return "dev"
	}
}
