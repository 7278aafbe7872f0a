package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress           string
	DatabaseURI          string
	BackofficeAPIAddress string
	BackofficeAPIToken   string
	JWTSecret            string
	RequestTimeout       time.Duration
	RefreshSchedule      string
	ShutdownTimeout      time.Duration
	LogLevel             slog.Level
	CORSOrigins          []string
	MaxUploadSize        int64
}

const (
	defaultRunAddress      = ":8080"
	defaultRequestTimeout  = 15 * time.Second
	defaultRefreshSchedule = "@every 30s"
	defaultShutdownTimeout = 10 * time.Second
	defaultLogLevel        = "info"
	defaultMaxUploadSize   = 20 << 20
)

// Load parses configuration from an optional .env file, environment variables and flags.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:           getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:          getString(lookup, "DATABASE_URI", ""),
		BackofficeAPIAddress: getString(lookup, "BACKOFFICE_API_ADDRESS", ""),
		BackofficeAPIToken:   getString(lookup, "BACKOFFICE_API_TOKEN", ""),
		JWTSecret:            getString(lookup, "JWT_SECRET", ""),
		RequestTimeout:       getDuration(lookup, "REQUEST_TIMEOUT", defaultRequestTimeout),
		RefreshSchedule:      getString(lookup, "REFRESH_SCHEDULE", defaultRefreshSchedule),
		ShutdownTimeout:      getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		MaxUploadSize:        int64(getInt(lookup, "MAX_UPLOAD_SIZE", defaultMaxUploadSize)),
	}

	flags := flag.NewFlagSet("backoffice", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var (
		requestTimeoutStr  = cfg.RequestTimeout.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		logLevelStr        = getString(lookup, "LOG_LEVEL", defaultLogLevel)
		corsOriginsStr     = getString(lookup, "CORS_ORIGINS", "")
	)

	flags.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	flags.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN for the entity cache")
	flags.StringVar(&cfg.BackofficeAPIAddress, "r", cfg.BackofficeAPIAddress, "Back-office API base URL")
	flags.StringVar(&cfg.BackofficeAPIToken, "api-token", cfg.BackofficeAPIToken, "Token sent to the back-office API")
	flags.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for verifying actor tokens")
	flags.StringVar(&requestTimeoutStr, "request-timeout", requestTimeoutStr, "Back-office API request timeout")
	flags.StringVar(&cfg.RefreshSchedule, "refresh-schedule", cfg.RefreshSchedule, "Cron schedule for cache refresh")
	flags.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	flags.StringVar(&logLevelStr, "log-level", logLevelStr, "Log level (debug, info, warn, error)")
	flags.StringVar(&corsOriginsStr, "cors-origins", corsOriginsStr, "Comma separated allowed CORS origins")
	flags.Int64Var(&cfg.MaxUploadSize, "max-upload-size", cfg.MaxUploadSize, "Maximum attachment size in bytes")

	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.RequestTimeout, err = time.ParseDuration(requestTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid request timeout: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(logLevelStr)); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	cfg.CORSOrigins = splitList(corsOriginsStr)

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.MaxUploadSize <= 0 {
		cfg.MaxUploadSize = defaultMaxUploadSize
	}

	if strings.TrimSpace(cfg.RefreshSchedule) == "" {
		cfg.RefreshSchedule = defaultRefreshSchedule
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.BackofficeAPIAddress == "" {
		return nil, fmt.Errorf("back-office API address must be provided")
	}

	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, fmt.Errorf("jwt secret must be provided")
	}

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
