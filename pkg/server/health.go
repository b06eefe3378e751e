package server

import (
	"net/http"
	"time"

	ffverrors "github.com/NVIDIA/flatfile-validator/pkg/errors"
	"github.com/NVIDIA/flatfile-validator/pkg/serializer"
)

func (s *Server) healthResponse(status, reason string) HealthResponse {
	return HealthResponse{
		Status:    status,
		Name:      s.name,
		Version:   s.version,
		Timestamp: time.Now().UTC(),
		Reason:    reason,
	}
}

// onlyGet rejects anything but GET and HEAD. It reports whether the request
// may proceed.
func onlyGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", http.MethodGet)
	WriteError(w, r, http.StatusMethodNotAllowed, ffverrors.ErrCodeMethodNotAllowed,
		"Method not allowed", false, map[string]any{"method": r.Method})
	return false
}

// handleHealth reports liveness. It never depends on readiness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !onlyGet(w, r) {
		return
	}
	serializer.RespondJSON(w, http.StatusOK, s.healthResponse(StatusHealthy, ""))
}

// handleReady reports whether the server accepts validation requests.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !onlyGet(w, r) {
		return
	}

	if !s.IsReady() {
		w.Header().Set("Retry-After", "5")
		serializer.RespondJSON(w, http.StatusServiceUnavailable,
			s.healthResponse(StatusNotReady, "server is starting or shutting down"))
		return
	}

	serializer.RespondJSON(w, http.StatusOK, s.healthResponse(StatusReady, ""))
}
