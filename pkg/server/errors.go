package server

import (
	"errors"
	"maps"
	"net/http"
	"time"

	"github.com/google/uuid"

	ffverrors "github.com/NVIDIA/flatfile-validator/pkg/errors"
	"github.com/NVIDIA/flatfile-validator/pkg/serializer"
)

// WriteError writes error response
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code ffverrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID, _ := r.Context().Value(contextKeyRequestID).(string)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}

// WriteErrorFromErr writes an error response derived from err. A
// StructuredError anywhere in the chain supplies the code, message and
// context details; any other error is reported as INTERNAL_ERROR with
// fallbackMessage.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string, details map[string]any) {
	var se *ffverrors.StructuredError
	if !errors.As(err, &se) {
		WriteError(w, r, http.StatusInternalServerError, ffverrors.ErrCodeInternal, fallbackMessage,
			retryableFromCode(ffverrors.ErrCodeInternal),
			mergeDetails(details, map[string]any{"error": err.Error()}))
		return
	}

	merged := mergeDetails(se.Context, details)
	if se.Cause != nil {
		merged = mergeDetails(merged, map[string]any{"error": se.Cause.Error()})
	}

	message := se.Message
	if message == "" {
		message = fallbackMessage
	}

	WriteError(w, r, HTTPStatusFromCode(se.Code), se.Code, message, retryableFromCode(se.Code), merged)
}

// HTTPStatusFromCode maps an error code to an HTTP status.
func HTTPStatusFromCode(code ffverrors.ErrorCode) int {
	switch code {
	case ffverrors.ErrCodeSchema, ffverrors.ErrCodeInput, ffverrors.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case ffverrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ffverrors.ErrCodeNotFound:
		return http.StatusNotFound
	case ffverrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case ffverrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case ffverrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case ffverrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func retryableFromCode(code ffverrors.ErrorCode) bool {
	switch code {
	case ffverrors.ErrCodeTimeout, ffverrors.ErrCodeUnavailable,
		ffverrors.ErrCodeRateLimitExceeded, ffverrors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

// mergeDetails returns a new map with a's entries overwritten by b's, or
// nil when both are empty.
func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]any, len(a)+len(b))
	maps.Copy(out, a)
	maps.Copy(out, b)
	return out
}
