package app

import (
	"os"
	"time"

	"github.com/ltplabs/ecatalog/pkg/dbsdk"
	"github.com/ltplabs/ecatalog/pkg/envx"
	"github.com/ltplabs/ecatalog/pkg/slogx"
)

type Config struct {
	DatabaseURL         string        // database service base URL (default: http://localhost:8001)
	AuthURL             string        // authentication service base URL (default: http://localhost:8080)
	HTTPTimeout         time.Duration // downstream call timeout (default: 30s)
	JWTSecret           string        // Required: HS256 secret shared with the authentication service
	Issuer              string        // expected token issuer (default: ecatalog-auth)
	Pepper              string        // optional password pepper, shared with the authentication service
	PepperFile          string        // optional file holding the pepper
	Env                 string        // dev, staging, prod (default: dev)
	Port                int           // HTTP port (default: 8000)
	ShutdownGracePeriod time.Duration // graceful shutdown timeout (default: 10s)
	Log                 slogx.Config
}

func LoadConfig() Config {
	envx.LoadDotEnv()

	cfg := Config{
		DatabaseURL:         envx.String("DATABASE_SERVICE_URL", "http://localhost:8001"),
		AuthURL:             envx.String("AUTH_SERVICE_URL", "http://localhost:8080"),
		HTTPTimeout:         envx.Duration("HTTP_TIMEOUT", dbsdk.DefaultTimeout),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		Issuer:              envx.String("JWT_ISSUER", "ecatalog-auth"),
		Pepper:              os.Getenv("PASSWORD_PEPPER"),
		PepperFile:          os.Getenv("PASSWORD_PEPPER_FILE"),
		Env:                 envx.String("ENV", "dev"),
		Port:                envx.Int("PORT", 8000),
		ShutdownGracePeriod: envx.Duration("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
	cfg.Log = slogx.Config{
		Service:    "catalog-service",
		Version:    BuildVersion,
		Env:        cfg.Env,
		Level:      envx.String("LOG_LEVEL", "info"),
		Format:     envx.String("LOG_FORMAT", "json"),
		File:       os.Getenv("LOG_FILE"),
		MaxSizeMB:  envx.Int("LOG_MAX_SIZE_MB", 0),
		MaxBackups: envx.Int("LOG_MAX_BACKUPS", 0),
		MaxAgeDays: envx.Int("LOG_MAX_AGE_DAYS", 0),
	}

	return cfg
}
