package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"shopora-backend/internal/logger"
)

type Config struct {
	Port         string
	GinMode      string
	MongoURI     string
	MongoDB      string
	JWTSecret    string
	TokenTTL     time.Duration
	AllowOrigins []string
	SeedOnStart  bool
}

// Load reads .env when present and assembles the runtime configuration from
// the environment. Missing values fall back to development defaults.
func Load(log *logger.Logger) Config {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file loaded", "error", err)
	}

	tokenTTLHours := getEnvAsInt("TOKEN_TTL_HOURS", 24*30, log)

	return Config{
		Port:         getEnv("PORT", "5000", log),
		GinMode:      getEnv("GIN_MODE", "debug", log),
		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017", log),
		MongoDB:      getEnv("MONGO_DB", "shopora", log),
		JWTSecret:    getEnv("JWT_SECRET", "defaultsecret", log),
		TokenTTL:     time.Duration(tokenTTLHours) * time.Hour,
		AllowOrigins: splitCSV(getEnv("ALLOW_ORIGINS", "http://localhost:5173,http://localhost:3000", log)),
		SeedOnStart:  getEnvAsBool("SEED_ON_START", true, log),
	}
}

func getEnv(key, fallback string, log *logger.Logger) string {
	if val, ok := os.LookupEnv(key); ok && strings.TrimSpace(val) != "" {
		return val
	}
	log.Debug("env var not set, using default", "key", key, "default", fallback)
	return fallback
}

func getEnvAsInt(key string, fallback int, log *logger.Logger) int {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback
	}
	val, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		log.Warn("invalid int env var, using default", "key", key, "value", raw, "default", fallback)
		return fallback
	}
	return val
}

func getEnvAsBool(key string, fallback bool, log *logger.Logger) bool {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback
	}
	val, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		log.Warn("invalid bool env var, using default", "key", key, "value", raw, "default", fallback)
		return fallback
	}
	return val
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
