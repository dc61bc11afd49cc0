package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Env          string
	Host         string
	Port         string
	DatabaseURL  string
	JWTSecret    []byte
	CORSOrigins  []string
	SentryDSN    string
	KafkaBrokers []string
	ESURL        string
	ESUser       string
	ESPassword   string
	LogLevel     string
}

func (c *Config) Production() bool { return c.Env == "production" }

func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found: %v, using system environment", err)
	}

	cfg := &Config{
		Env:         getDefault("APP_ENV", "development"),
		Host:        getDefault("HOST", "0.0.0.0"),
		Port:        getDefault("PORT", "4000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   []byte(os.Getenv("JWT_SECRET")),
		SentryDSN:   os.Getenv("SENTRY_DSN"),
		ESURL:       os.Getenv("ES_URL"),
		ESUser:      os.Getenv("ES_USER"),
		ESPassword:  os.Getenv("ES_PASSWORD"),
		LogLevel:    getDefault("LOG_LEVEL", "info"),
	}

	cfg.CORSOrigins = splitList(getDefault("CORS_ORIGIN", "http://localhost:3000"))
	cfg.KafkaBrokers = splitList(os.Getenv("KAFKA_ADDRESS"))

	MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	return cfg
}

func getDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
