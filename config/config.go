package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// StorageMode identifies which persistence backend is active. Exactly one
// backend runs per process, chosen once at start from configuration presence.
type StorageMode string

const (
	ModePostgres StorageMode = "postgres"
	ModeLocal    StorageMode = "local"
	ModeMemory   StorageMode = "memory"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	ListenAddr string

	DatabaseURL    string
	LocalStorePath string

	OpenAIKey       string
	NominatimURL    string
	SessionTTLHours int
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		ListenAddr: getEnv("LISTEN_ADDR", ":8080"),

		DatabaseURL:    getEnv("DATABASE_URL", ""),
		LocalStorePath: getEnv("LOCAL_STORE_PATH", ""),

		OpenAIKey:       getEnv("OPENAI_API_KEY", ""),
		NominatimURL:    getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		SessionTTLHours: getEnvInt("SESSION_TTL_HOURS", 24),
	}
}

// Mode returns the storage backend selected by configuration presence.
// Missing credentials degrade to local or in-memory storage, never crash.
func (c *Config) Mode() StorageMode {
	switch {
	case c.DatabaseURL != "":
		return ModePostgres
	case c.LocalStorePath != "":
		return ModeLocal
	default:
		return ModeMemory
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return c.DatabaseURL
}

// InsightEnabled reports whether the AI insight collaborator is configured.
func (c *Config) InsightEnabled() bool {
	return c.OpenAIKey != ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
