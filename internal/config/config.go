package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	JWTSecret   string
	PostgresDSN string // Dashboard store (dashboards, members, profiles)
	MongoURI    string // Audit trail + log sink
	DBName      string
	SkipAuth    bool
	Environment string
	AppId       string
	DataDir     string // Directory for the local workspace mirror
	BootTimeout int    // Seconds to wait for the remote store at boot before falling back
	PollSeconds int    // Remote-update polling hint handed to clients
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		JWTSecret:   getEnv("JWT_SECRET", "secret"),
		PostgresDSN: getEnv("POSTGRES_DSN", "postgres://localhost:5432/go-dashboards?sslmode=disable"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:      getEnv("DB_NAME", "go-dashboards"),
		SkipAuth:    getEnv("SKIP_AUTH", "false") == "true",
		Environment: getEnv("ENVIRONMENT", "development"),
		AppId:       getEnv("APP_ID", "go-dashboards"),
		DataDir:     getEnv("DATA_DIR", "./data"),
		BootTimeout: getEnvInt("BOOT_TIMEOUT_SECONDS", 5),
		PollSeconds: getEnvInt("POLL_SECONDS", 10),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
