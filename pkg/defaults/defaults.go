package defaults

import "time"

// Server timeouts.
const (
	ServerReadTimeout     = 10 * time.Second
	ServerWriteTimeout    = 30 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Handler limits.
const (
	// ValidateHandlerTimeout bounds a single validation request. It stays
	// below ServerWriteTimeout so a TIMEOUT response can still be written.
	ValidateHandlerTimeout = 25 * time.Second

	// MaxUploadBytes is the largest multipart body accepted by the validate endpoint.
	MaxUploadBytes int64 = 32 << 20

	// MultipartMemoryBytes is kept in memory while parsing a multipart form,
	// the rest spills to temporary files.
	MultipartMemoryBytes int64 = 8 << 20
)

// Validation tuning.
const (
	// ChunkSize is the number of rows handed to one worker in parallel mode.
	ChunkSize = 1000

	// SuggestionMinDistance is the smallest edit distance allowed for a
	// did-you-mean hint regardless of header length.
	SuggestionMinDistance = 2
)
