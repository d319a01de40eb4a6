package confs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	ServiceName string
	ListenAddr  string
	Database    DatabaseConfig
}

// DatabaseConfig holds database connection settings. When SQLitePath is set
// the service runs against a local SQLite file instead of Postgres.
type DatabaseConfig struct {
	URL        string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SQLitePath string
}

// Load reads environment variables from a .env file if present and builds
// the application configuration.
func Load() (*Config, error) {
	// Load .env if it exists; ignore error if file not found
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("warning: could not load .env: %v", err)
		}
	}

	cfg := &Config{
		ServiceName: getEnv("SERVICE_NAME", "energy-monitor"),
		ListenAddr:  getEnv("LISTEN_ADDR", "0.0.0.0:8000"),
		Database: DatabaseConfig{
			URL:        getEnv("DB_URL", ""),
			Host:       getEnv("DB_HOST", ""),
			Port:       getEnv("DB_PORT", ""),
			User:       getEnv("DB_USER", ""),
			Password:   getEnv("DB_PASSWORD", ""),
			Name:       getEnv("DB_NAME", ""),
			SQLitePath: getEnv("SQLITE_PATH", ""),
		},
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
