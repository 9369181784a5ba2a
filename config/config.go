package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port               string
	Environment        string
	DBDriver           string
	DBDSN              string
	DebugSQL           bool
	DocumentStoreURL   string
	CORSAllowedOrigins []string
	PolicyFile         string
}

// Load reads the process environment, after merging a .env file when one exists.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using system environment variables")
	}

	if secret := getEnv("JWT_SECRET", ""); secret != "" {
		JWTSecret = []byte(secret)
	}

	return &Config{
		Port:               getEnv("PORT", "8080"),
		Environment:        strings.ToLower(getEnv("ENVIRONMENT", "development")),
		DBDriver:           strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBDSN:              getEnv("DB_DSN", ""),
		DebugSQL:           strings.EqualFold(getEnv("DEBUG_SQL", ""), "true"),
		DocumentStoreURL:   getEnv("DOCUMENT_STORE_URL", ""),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		PolicyFile:         getEnv("WORKFLOW_POLICY_FILE", "workflow.toml"),
	}
}

func (c *Config) Production() bool {
	return c.Environment == "production"
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
