// Package config centralises environment configuration for the server.
package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	MongoURI        string
	DBName          string
	TelegramToken   string
	BotUsername     string
	BaseURL         string
	DefaultTimezone string
	TickInterval    time.Duration
	ResendAPIKey    string
	FromEmail       string
}

// Load reads .env when present, then the environment. MONGODB_URI is the
// only hard requirement; everything else has a workable default.
func Load() *Config {
	_ = godotenv.Load()
	return &Config{
		Port:            getEnv("PORT", "8080"),
		MongoURI:        mustEnv("MONGODB_URI"),
		DBName:          getEnv("DB_NAME", "habitloop"),
		TelegramToken:   getEnv("TELEGRAM_BOT_TOKEN", ""),
		BotUsername:     getEnv("TELEGRAM_BOT_USERNAME", "habitloop_bot"),
		BaseURL:         getEnv("BASE_URL", ""),
		DefaultTimezone: getEnv("DEFAULT_TIMEZONE", "Europe/Madrid"),
		TickInterval:    getDurationEnv("TICK_INTERVAL", time.Minute),
		ResendAPIKey:    getEnv("RESEND_API_KEY", ""),
		FromEmail:       getEnv("FROM_EMAIL", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("❌ missing env %s", key)
	}
	return value
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("⚠️  invalid %s %q, using %s", key, raw, fallback)
		return fallback
	}
	return parsed
}
