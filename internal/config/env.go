/*
Package config
File: env.go
Description:
    Process environment for the server binary. A local .env file is
    loaded if present; real environment variables always win. Every
    getter has a default so a bare 'go run .' works out of the box.
*/

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Env holds the typed server settings read from the environment.
type Env struct {
	Port       string
	TuningPath string
	SavePath   string
	LogDir     string
	Seed       int64
}

// Load reads .env (if any) and resolves every setting.
func Load() Env {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment defaults")
	}
	return Env{
		Port:       getString("STREETS_PORT", "8090"),
		TuningPath: getString("STREETS_TUNING", "streets.yaml"),
		SavePath:   getString("STREETS_SAVE_DB", "streets.db"),
		LogDir:     getString("STREETS_LOG_DIR", "logs"),
		Seed:       getInt64("STREETS_SEED", 0),
	}
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("Invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
