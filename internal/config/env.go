package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	JWTSecret string
	JWTTTL    time.Duration
}

// LoadEnv reads configuration from the environment, honoring a local .env
// file when present.
func LoadEnv() Env {
	_ = godotenv.Load()

	return Env{
		AppAddr: getString("APP_ADDR", ":8080"),
		GinMode: getString("GIN_MODE", ""),

		DBHost:     getString("DB_HOST", "localhost"),
		DBPort:     getInt("DB_PORT", 5432),
		DBName:     getString("DB_NAME", "pgat_tec"),
		DBUser:     getString("DB_USER", "postgres"),
		DBPassword: getString("DB_PASSWORD", ""),
		DBSSLMode:  getString("DB_SSLMODE", "disable"),

		JWTSecret: getString("JWT_SECRET", "secreto_temporal"),
		JWTTTL:    getDuration("JWT_TTL", 7*24*time.Hour),
	}
}

func getString(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
