package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr           string
	DatabaseURL    string
	JWTSigningKey  string
	TokenValidity  time.Duration
	AlertWorkers   int
	AlertQueueSize int
	MaxDBConns     int
}

// FromEnv builds a Server config from environment variables so main stays
// lean. A missing signing key is a startup error, never a per-request one.
func FromEnv() (Server, error) {
	addr := os.Getenv("EXPTRACK_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return Server{}, fmt.Errorf("DATABASE_URL is required")
	}

	jwtSigningKey := os.Getenv("JWT_SECRET")
	if jwtSigningKey == "" {
		return Server{}, fmt.Errorf("JWT_SECRET is required")
	}

	return Server{
		Addr:           addr,
		DatabaseURL:    dbURL,
		JWTSigningKey:  jwtSigningKey,
		TokenValidity:  durationEnv("TOKEN_VALIDITY", 30*24*time.Hour),
		AlertWorkers:   intEnv("ALERT_WORKERS", 2),
		AlertQueueSize: intEnv("ALERT_QUEUE_SIZE", 64),
		MaxDBConns:     intEnv("MAX_DB_CONNS", 10),
	}, nil
}

func intEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
