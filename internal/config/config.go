// Package config reads settings from the environment, optionally seeded
// from a .env file.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const devJWTSecret = "dev-secret-change-me"

var ErrMissingJWTSecret = errors.New("JWT_SECRET environment variable is required in production")

type Server struct {
	Port         string
	DatabaseURL  string
	KafkaBrokers []string
	KafkaTopic   string
	JWTSecret    string
	FrontendURL  string
	LogLevel     string
	Production   bool
}

type Client struct {
	APIURL     string
	SessionDir string
	LogLevel   string
}

// LoadDotEnv loads .env files if present. A missing file is not an error.
func LoadDotEnv(files ...string) {
	_ = godotenv.Load(files...)
}

func LoadServer() (Server, error) {
	cfg := Server{
		Port:         getEnv("PORT", "8080"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "voucher_posted"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		FrontendURL:  getEnv("FRONTEND_URL", "http://localhost:3000"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Production:   os.Getenv("GIN_MODE") == "release" || os.Getenv("ENV") == "production",
	}

	if cfg.JWTSecret == "" {
		if cfg.Production {
			return Server{}, ErrMissingJWTSecret
		}
		cfg.JWTSecret = devJWTSecret
	}
	return cfg, nil
}

func LoadClient() Client {
	sessionDir := os.Getenv("COLDCTL_SESSION_DIR")
	if sessionDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		sessionDir = filepath.Join(home, ".coldctl")
	}

	return Client{
		APIURL:     strings.TrimRight(getEnv("COLDCTL_API_URL", "http://localhost:8080"), "/"),
		SessionDir: sessionDir,
		LogLevel:   getEnv("LOG_LEVEL", "warn"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
