package app

import (
	"time"

	"github.com/ltplabs/ecatalog/pkg/envx"
	"github.com/ltplabs/ecatalog/pkg/slogx"
)

type Config struct {
	DatabaseFile        string        // SQLite file (default: ./ecatalog.db)
	BusyTimeout         time.Duration // SQLite busy timeout (default: 5s)
	MaintenanceSchedule string        // cron spec for PRAGMA optimize + WAL checkpoint (default: @hourly, "off" disables)
	Env                 string        // dev, staging, prod (default: dev)
	Port                int           // HTTP port (default: 8001)
	ShutdownGracePeriod time.Duration // graceful shutdown timeout (default: 10s)
	Log                 slogx.Config
}

func LoadConfig() Config {
	envx.LoadDotEnv()

	cfg := Config{
		DatabaseFile:        envx.String("DB_PATH", "ecatalog.db"),
		BusyTimeout:         envx.Duration("DB_BUSY_TIMEOUT", 5*time.Second),
		MaintenanceSchedule: envx.String("MAINTENANCE_SCHEDULE", "@hourly"),
		Env:                 envx.String("ENV", "dev"),
		Port:                envx.Int("PORT", 8001),
		ShutdownGracePeriod: envx.Duration("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
	cfg.Log = slogx.Config{
		Service:    "database-service",
		Version:    BuildVersion,
		Env:        cfg.Env,
		Level:      envx.String("LOG_LEVEL", "info"),
		Format:     envx.String("LOG_FORMAT", "json"),
		File:       envx.String("LOG_FILE", ""),
		MaxSizeMB:  envx.Int("LOG_MAX_SIZE_MB", 0),
		MaxBackups: envx.Int("LOG_MAX_BACKUPS", 0),
		MaxAgeDays: envx.Int("LOG_MAX_AGE_DAYS", 0),
	}

	return cfg
}
