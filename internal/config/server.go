package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ServerConfig holds the HTTP facade configuration, read from the
// environment (optionally seeded from a .env file).
type ServerConfig struct {
	Port           int
	Env            string
	AllowedOrigins []string
	RegulatoryFile string
}

// LoadServerConfig reads the server configuration from the environment.
// A missing .env file is not an error; explicit environment variables
// always win.
func LoadServerConfig() (*ServerConfig, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("NOMINA_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOMINA_PORT: %w", err)
	}

	return &ServerConfig{
		Port:           port,
		Env:            getEnv("NOMINA_ENV", "development"),
		AllowedOrigins: []string{getEnv("NOMINA_ALLOWED_ORIGIN", "http://localhost:3000")},
		RegulatoryFile: getEnv("NOMINA_REGULATORY_FILE", ""),
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
