package library

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the client's runtime settings. Each field corresponds to an
// environment variable; a .env file in the working directory is honored when
// present.
type Config struct {
	BaseURL string        // SMARTLIB_API_URL: backend base URL
	Timeout time.Duration // SMARTLIB_TIMEOUT_SECONDS: per-request timeout
	StateDB string        // SMARTLIB_STATE_DB: path of the local state database
}

const (
	defaultBaseURL        = "http://localhost:3000"
	defaultTimeoutSeconds = 15
)

// LoadConfig reads the environment. Every setting has a usable default, so
// a missing .env never blocks startup.
func LoadConfig() Config {
	_ = godotenv.Load()

	cfg := Config{
		BaseURL: defaultBaseURL,
		Timeout: defaultTimeoutSeconds * time.Second,
		StateDB: defaultStatePath(),
	}
	if v := os.Getenv("SMARTLIB_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("SMARTLIB_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Timeout = time.Duration(n) * time.Second
		} else {
			log.Printf("config: invalid SMARTLIB_TIMEOUT_SECONDS %q, keeping default", v)
		}
	}
	if v := os.Getenv("SMARTLIB_STATE_DB"); v != "" {
		cfg.StateDB = v
	}
	return cfg
}

func defaultStatePath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "smartlib", "state.db")
	}
	return "smartlib.db"
}
