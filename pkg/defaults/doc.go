// Package defaults provides centralized configuration constants for the validator.
//
// This package defines timeout values, upload limits, and validation tuning
// defaults used across the codebase. Centralizing these values ensures
// consistency and makes tuning easier.
//
// # Categories
//
//   - Server timeouts: For HTTP server configuration
//   - Handler limits: For upload size and per-request processing
//   - Validation tuning: For chunked parallel row validation
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/NVIDIA/flatfile-validator/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.ValidateHandlerTimeout)
//	defer cancel()
//
// # Guidelines
//
//   - HTTP handlers: 25s for a validation run, under the 30s write timeout
//   - Server shutdown: 30s for graceful shutdown
//   - Uploads: 32 MiB combined for schema and dataset
package defaults
