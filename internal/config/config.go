package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the process-wide read-only configuration. It is built once at
// startup and passed explicitly into the collaborator clients and the
// realtime provider; nothing mutates it afterwards.
type Config struct {
	Port           string
	OpenAIAPIKey   string
	APIBaseURL     string
	VoiceAPIKey    string
	RealtimeURL    string
	MongoURI       string
	ArchiveEnabled bool
}

const defaultRealtimeURL = "wss://api.openai.com/v1/realtime?model=gpt-4o-realtime-preview-2024-10-01"

func LoadEnv() error {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println(fmt.Sprintf("Could not load .env file: %v", err))
		return err
	}
	return nil
}

func GetEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("Environment variable %s is required but not set", key)
	}
	return value
}

func GetEnvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

// Load assembles the Config from the environment. PORT, the collaborator base
// URL and the realtime URL have defaults; the OpenAI credential and the
// shared collaborator key are mandatory. The Mongo archive is enabled only
// when MONGODB_URI is present.
func Load() Config {
	mongoURI := os.Getenv("MONGODB_URI")
	return Config{
		Port:           GetEnvDefault("PORT", "8080"),
		OpenAIAPIKey:   GetEnv("OPENAI_API_KEY"),
		APIBaseURL:     GetEnvDefault("API_BASE_URL", "https://app.symplercms.com"),
		VoiceAPIKey:    GetEnv("VOICE_API_KEY"),
		RealtimeURL:    GetEnvDefault("OPENAI_REALTIME_URL", defaultRealtimeURL),
		MongoURI:       mongoURI,
		ArchiveEnabled: mongoURI != "",
	}
}
