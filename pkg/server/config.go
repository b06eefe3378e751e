package server

import (
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/time/rate"

	"github.com/NVIDIA/flatfile-validator/pkg/defaults"
	"github.com/NVIDIA/flatfile-validator/pkg/logging"
)

// Environment variables read by DefaultConfig.
const (
	EnvPort           = "PORT"
	EnvRateLimit      = "RATE_LIMIT"
	EnvMaxUploadBytes = "MAX_UPLOAD_BYTES"
)

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	cfg := &Config{
		Address:         "",
		Port:            8080,
		RateLimit:       100, // 100 req/s
		RateLimitBurst:  200, // burst of 200
		MaxUploadBytes:  defaults.MaxUploadBytes,
		ReadTimeout:     defaults.ServerReadTimeout,
		WriteTimeout:    defaults.ServerWriteTimeout,
		IdleTimeout:     defaults.ServerIdleTimeout,
		ShutdownTimeout: defaults.ServerShutdownTimeout,
		LogLevel:        slog.LevelInfo.String(),
	}

	// Override with environment variables if set
	if portStr := os.Getenv(EnvPort); portStr != "" {
		var port int
		if _, err := fmt.Sscanf(portStr, "%d", &port); err == nil {
			cfg.Port = port
		}
	}

	if rateStr := os.Getenv(EnvRateLimit); rateStr != "" {
		var limit float64
		if _, err := fmt.Sscanf(rateStr, "%g", &limit); err == nil && limit > 0 {
			cfg.RateLimit = rate.Limit(limit)
			cfg.RateLimitBurst = max(1, int(2*limit))
		}
	}

	if sizeStr := os.Getenv(EnvMaxUploadBytes); sizeStr != "" {
		var size int64
		if _, err := fmt.Sscanf(sizeStr, "%d", &size); err == nil && size > 0 {
			cfg.MaxUploadBytes = size
		}
	}

	if logLevelStr := os.Getenv(logging.EnvLogLevel); logLevelStr != "" {
		cfg.LogLevel = logLevelStr
	}

	return cfg
}
