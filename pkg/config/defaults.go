// Package config provides centralized default values for LeadPulse.
package config

import (
	"bufio"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var envLoaded sync.Once

func loadEnvFile() {
	envLoaded.Do(func() {
		file, err := os.Open(".env")
		if err != nil {
			return
		}
		defer file.Close()

		log.Println("Loading configuration overrides from .env file...")
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())

			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			parts := strings.SplitN(line, "=", 2)
			if len(parts) != 2 {
				continue
			}

			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])

			if os.Getenv(key) == "" {
				os.Setenv(key, value)
			}
		}
	})
}

func getEnvString(key, defaultValue string) string {
	loadEnvFile()
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	loadEnvFile()
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	loadEnvFile()
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			return val
		}
	}
	return defaultValue
}

// Server configuration.
var (
	ServerPort         = getEnvString("PORT", "8080")
	ServerReadTimeout  = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second)
	ServerIdleTimeout  = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)
	ShutdownTimeout    = getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
)

// Database configuration. When TursoDatabaseURL is set the libsql driver is
// used; otherwise a local sqlite3 file at DBPath.
var (
	DBPath           = getEnvString("DB_PATH", "leadpulse.db")
	TursoDatabaseURL = getEnvString("TURSO_DATABASE_URL", "")
	TursoAuthToken   = getEnvString("TURSO_AUTH_TOKEN", "")

	SlowQueryThreshold = getEnvDuration("SLOW_QUERY_THRESHOLD", 100*time.Millisecond)
)

// Auth configuration. AdminPasswordHash is a bcrypt hash; when empty the
// login endpoint is disabled.
var (
	JWTSecret          = getEnvString("JWT_SECRET", "")
	AdminPasswordHash  = getEnvString("ADMIN_PASSWORD_HASH", "")
	TokenLifetimeHours = getEnvInt("TOKEN_LIFETIME_HOURS", 24)
)

// Logging configuration.
var (
	LogDirectory    = getEnvString("LOG_DIR", "logs")
	LogToFile       = getEnvString("LOG_TO_FILE", "true") == "true"
	LogJSON         = getEnvString("LOG_JSON", "true") == "true"
	LogDefaultLevel = getEnvString("LOG_LEVEL", "info")
)
