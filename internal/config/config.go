package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	StorageType    string // file, memory or database
	DataDir        string
	DatabaseType   string // sqlite, postgres or mysql
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string
	ProgressKey    string
	Language       string
	PassingScore   int
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		StorageType:    getEnv("STORAGE_TYPE", "file"),
		DataDir:        getEnv("DATA_DIR", "./data"),
		DatabaseType:   getEnv("DATABASE_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./digitalseekho.db"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		ProgressKey:    getEnv("PROGRESS_KEY", "computer-course-progress"),
		Language:       getEnv("LANGUAGE", "bilingual"),
		PassingScore:   getEnvInt("PASSING_SCORE", 70),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an integer environment variable, falling back to the default when unset or malformed
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: %s=%q is not a number, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
