package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	GeminiAPIKey    string
	GeminiBaseURL   string
	FunnelModel     string
	TTSModel        string
	ActivityDBDSN   string
	SeedFile        string
	LogLevel        string
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file")
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", getEnv("API_KEY", "")),
		GeminiBaseURL:   getEnv("GEMINI_BASE_URL", ""),
		FunnelModel:     getEnv("FUNNEL_MODEL", "gemini-3-pro-preview"),
		TTSModel:        getEnv("TTS_MODEL", "gemini-2.5-flash-preview-tts"),
		ActivityDBDSN:   getEnv("ACTIVITY_DB_DSN", "file::memory:?cache=shared"),
		SeedFile:        getEnv("SEED_FILE", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
