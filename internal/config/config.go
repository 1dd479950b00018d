package config

import (
	"strings"

	"cleanstride_backend/pkg/utils"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting the server reads from the environment.
type Config struct {
	Port string

	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBSSLMode    string
	DBSchemaPath string

	JWTSecret string

	CORSAllowedOrigins []string
}

// Load reads a .env file when present and then resolves every setting from
// the environment with development defaults.
func Load() *Config {
	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	cfg := &Config{
		Port:         utils.Getenv("PORT", "8080"),
		DBHost:       utils.Getenv("DB_HOST", "localhost"),
		DBPort:       utils.Getenv("DB_PORT", "5432"),
		DBUser:       utils.Getenv("DB_USER", "cleanstride_user"),
		DBPassword:   utils.Getenv("DB_PASSWORD", "cleanstride_password"),
		DBName:       utils.Getenv("DB_NAME", "cleanstride_db"),
		DBSSLMode:    utils.Getenv("DB_SSLMODE", "disable"),
		DBSchemaPath: utils.Getenv("DB_SCHEMA_PATH", ""),
		JWTSecret:    utils.Getenv("JWT_SECRET", "dev-only-jwt-secret-change-me"),
	}

	origins := utils.Getenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	for _, origin := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, trimmed)
		}
	}

	return cfg
}
