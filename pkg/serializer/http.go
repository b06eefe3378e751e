package serializer

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"gopkg.in/yaml.v3"
)

// Content types written by Respond.
const (
	ContentTypeJSON = "application/json"
	ContentTypeYAML = "application/yaml"
)

// Respond writes v as YAML when the request accepts application/yaml (or
// the legacy application/x-yaml) and as JSON otherwise.
func Respond(w http.ResponseWriter, r *http.Request, statusCode int, v any) {
	if r != nil && acceptsYAML(r.Header.Get("Accept")) {
		RespondYAML(w, statusCode, v)
		return
	}
	RespondJSON(w, statusCode, v)
}

// RespondJSON writes a JSON response with the given status code and data.
// The body is encoded before headers are written so that an encoding failure
// still produces a clean 500.
func RespondJSON(w http.ResponseWriter, statusCode int, data any) {
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(data); err != nil {
		slog.Error("json encoding failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	write(w, statusCode, ContentTypeJSON, buf.Bytes())
}

// RespondYAML is the YAML counterpart of RespondJSON.
func RespondYAML(w http.ResponseWriter, statusCode int, data any) {
	buf := &bytes.Buffer{}
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		slog.Error("yaml encoding failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if err := enc.Close(); err != nil {
		slog.Error("yaml encoding failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	write(w, statusCode, ContentTypeYAML, buf.Bytes())
}

func write(w http.ResponseWriter, statusCode int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		// client went away
		slog.Warn("response write failed", "error", err)
	}
}

func acceptsYAML(accept string) bool {
	for _, part := range strings.Split(accept, ",") {
		mt, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		switch mt {
		case ContentTypeYAML, "application/x-yaml", "text/yaml":
			return true
		}
	}
	return false
}
