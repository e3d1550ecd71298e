package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/Sachintlgt/brd-admin-sub000/internal/utils"
)

const AppName = "brd-admin"

type Config struct {
	APIBaseURL     string
	StateFilePath  string
	IdentityCookie string // raw identity-cookie value, optional bootstrap
	MaxRetries     int
	RetryInitial   time.Duration
}

// LoadConfig reads the environment (after a best-effort .env load) and
// fails fast on anything required.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		utils.Logger.Debug("No .env file loaded; relying on process environment")
	}

	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		utils.Logger.Fatal("API_BASE_URL env var is missing")
	}

	statePath := os.Getenv("STATE_FILE")
	if statePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			utils.Logger.WithError(err).Fatal("Cannot resolve home directory for STATE_FILE default")
		}
		statePath = filepath.Join(home, ".brdadmin", "session.json")
	}

	maxRetries := 2
	if raw := os.Getenv("MAX_RETRIES"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			utils.Logger.Fatalf("Invalid MAX_RETRIES %q", raw)
		}
		maxRetries = n
	}

	retryInitial := 1 * time.Second
	if raw := os.Getenv("RETRY_INITIAL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			utils.Logger.Fatalf("Invalid RETRY_INITIAL %q", raw)
		}
		retryInitial = d
	}

	return &Config{
		APIBaseURL:     baseURL,
		StateFilePath:  statePath,
		IdentityCookie: os.Getenv("IDENTITY_COOKIE"),
		MaxRetries:     maxRetries,
		RetryInitial:   retryInitial,
	}
}
