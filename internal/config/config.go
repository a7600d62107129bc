package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Azure OpenAI
	AzureEndpoint   string
	AzureKey        string
	AzureAPIVersion string
	DeploymentName  string

	// Relay defaults
	MaxTokensDefault     int
	ChatMaxTokensDefault int

	// Sessions (used by /chat/)
	RedisURL        string
	SessionTTL      time.Duration
	SessionMaxTurns int

	// CORS
	AllowedOrigins []string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:            getEnvOrDefault("PORT", "8000"),
		Env:             getEnvOrDefault("ENV", "development"),
		AzureEndpoint:   getEnvOrDefault("AZURE_OPENAI_ENDPOINT", "https://neuratek.openai.azure.com/"),
		AzureKey:        os.Getenv("AZURE_OPENAI_KEY"),
		AzureAPIVersion: getEnvOrDefault("AZURE_API_VERSION", "2024-05-01-preview"),
		DeploymentName:  getEnvOrDefault("AZURE_DEPLOYMENT_NAME", "gpt-4o"),

		MaxTokensDefault:     getEnvAsIntOrDefault("MAX_TOKENS_DEFAULT", 300),
		ChatMaxTokensDefault: getEnvAsIntOrDefault("CHAT_MAX_TOKENS_DEFAULT", 1000),

		RedisURL:        getEnvOrDefault("REDIS_URL", ""),
		SessionTTL:      time.Duration(getEnvAsIntOrDefault("SESSION_TTL_MINUTES", 60)) * time.Minute,
		SessionMaxTurns: getEnvAsIntOrDefault("SESSION_MAX_TURNS", 40),

		AllowedOrigins: splitOrigins(getEnvOrDefault("ALLOWED_ORIGINS", "*")),
	}

	// Missing credential is deliberately non-fatal: some hosting
	// environments restart crashed processes in a loop. Every upstream
	// call will fail with a 500 until the key is provided.
	if cfg.AzureKey == "" {
		log.Println("WARNING: AZURE_OPENAI_KEY is not set; completion requests will fail")
	}

	return cfg
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
