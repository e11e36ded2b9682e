package app

import (
	"github.com/fictiverse/fictiverse-backend/internal/pkg/envutil"
	"github.com/fictiverse/fictiverse-backend/internal/pkg/logger"
)

type Config struct {
	Port        string
	Environment string

	// DBDriver is "postgres" (default) or "sqlite" for local development.
	DBDriver   string
	SQLitePath string
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		Port:        envutil.GetEnv("PORT", "8080", log),
		Environment: envutil.GetEnv("APP_ENV", "development", log),
		DBDriver:    envutil.GetEnv("DB_DRIVER", "postgres", log),
		SQLitePath:  envutil.GetEnv("SQLITE_PATH", "fictiverse.db", log),
	}
}
