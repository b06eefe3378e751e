package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/NVIDIA/flatfile-validator/pkg/logging"
	"github.com/NVIDIA/flatfile-validator/pkg/server"
	"github.com/NVIDIA/flatfile-validator/pkg/validator"
)

const (
	name           = "ffvd"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/flatfile-validator/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the API server and blocks until shutdown.
// It configures logging, sets up routes, and handles graceful shutdown.
// Returns an error if the server fails to start or encounters a fatal error.
func Serve() error {
	ctx := context.Background()

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	s := newServer(server.DefaultConfig())

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

func newServer(cfg *server.Config) *server.Server {
	v := validator.New(
		validator.WithVersion(version),
		validator.WithMaxUploadBytes(cfg.MaxUploadBytes),
	)

	r := map[string]http.HandlerFunc{
		"/v1/validate": v.HandleValidate,
	}

	return server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithConfig(cfg),
		server.WithHandler(r),
	)
}
