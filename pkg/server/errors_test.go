// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	ffverrors "github.com/NVIDIA/flatfile-validator/pkg/errors"
)

func TestHTTPStatusFromCode(t *testing.T) {
	tests := []struct {
		name string
		code ffverrors.ErrorCode
		want int
	}{
		{"schema", ffverrors.ErrCodeSchema, http.StatusBadRequest},
		{"input", ffverrors.ErrCodeInput, http.StatusBadRequest},
		{"invalid request", ffverrors.ErrCodeInvalidRequest, http.StatusBadRequest},
		{"unauthorized", ffverrors.ErrCodeUnauthorized, http.StatusUnauthorized},
		{"not found", ffverrors.ErrCodeNotFound, http.StatusNotFound},
		{"method not allowed", ffverrors.ErrCodeMethodNotAllowed, http.StatusMethodNotAllowed},
		{"rate limit", ffverrors.ErrCodeRateLimitExceeded, http.StatusTooManyRequests},
		{"unavailable", ffverrors.ErrCodeUnavailable, http.StatusServiceUnavailable},
		{"timeout", ffverrors.ErrCodeTimeout, http.StatusGatewayTimeout},
		{"internal", ffverrors.ErrCodeInternal, http.StatusInternalServerError},
		{"unknown defaults to internal", ffverrors.ErrorCode("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatusFromCode(tt.code); got != tt.want {
				t.Fatalf("HTTPStatusFromCode(%q) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}

func TestRetryableFromCode(t *testing.T) {
	tests := []struct {
		name string
		code ffverrors.ErrorCode
		want bool
	}{
		{"schema", ffverrors.ErrCodeSchema, false},
		{"input", ffverrors.ErrCodeInput, false},
		{"invalid request", ffverrors.ErrCodeInvalidRequest, false},
		{"unauthorized", ffverrors.ErrCodeUnauthorized, false},
		{"not found", ffverrors.ErrCodeNotFound, false},
		{"method not allowed", ffverrors.ErrCodeMethodNotAllowed, false},
		{"timeout", ffverrors.ErrCodeTimeout, true},
		{"unavailable", ffverrors.ErrCodeUnavailable, true},
		{"rate limit", ffverrors.ErrCodeRateLimitExceeded, true},
		{"internal", ffverrors.ErrCodeInternal, true},
		{"unknown defaults false", ffverrors.ErrorCode("SOMETHING_ELSE"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := retryableFromCode(tt.code); got != tt.want {
				t.Fatalf("retryableFromCode(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestMergeDetails(t *testing.T) {
	t.Run("both empty returns nil", func(t *testing.T) {
		if got := mergeDetails(nil, nil); got != nil {
			t.Fatalf("expected nil, got %#v", got)
		}
		if got := mergeDetails(map[string]any{}, map[string]any{}); got != nil {
			t.Fatalf("expected nil, got %#v", got)
		}
	})

	t.Run("merges and second overwrites", func(t *testing.T) {
		a := map[string]any{"a": 1, "shared": "old"}
		b := map[string]any{"b": 2, "shared": "new"}

		got := mergeDetails(a, b)
		if got == nil {
			t.Fatal("expected map, got nil")
		}
		if got["a"].(int) != 1 {
			t.Fatalf("expected a=1, got %#v", got["a"])
		}
		if got["b"].(int) != 2 {
			t.Fatalf("expected b=2, got %#v", got["b"])
		}
		if got["shared"].(string) != "new" {
			t.Fatalf("expected shared to be overwritten to 'new', got %#v", got["shared"])
		}
	})
}

func TestWriteError_WritesErrorResponse(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), contextKeyRequestID, "req-123"))
	w := httptest.NewRecorder()

	WriteError(w, req, http.StatusBadRequest, ffverrors.ErrCodeInvalidRequest, "bad request", false, map[string]any{"k": "v"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp.Code != string(ffverrors.ErrCodeInvalidRequest) {
		t.Fatalf("expected code %q, got %q", ffverrors.ErrCodeInvalidRequest, resp.Code)
	}
	if resp.Message != "bad request" {
		t.Fatalf("expected message %q, got %q", "bad request", resp.Message)
	}
	if resp.RequestID != "req-123" {
		t.Fatalf("expected requestId %q, got %q", "req-123", resp.RequestID)
	}
	if resp.Retryable {
		t.Fatalf("expected retryable=false, got true")
	}
	if resp.Details == nil || resp.Details["k"].(string) != "v" {
		t.Fatalf("expected details to include k=v, got %#v", resp.Details)
	}
}

func TestWriteErrorFromErr_StructuredErrorMapsStatusAndDetails(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	cause := errors.New("sheet is locked")
	err := ffverrors.WrapWithContext(ffverrors.ErrCodeUnavailable, "service unavailable", cause, map[string]any{"component": "reader"})

	WriteErrorFromErr(w, req, err, "fallback", map[string]any{"extra": "yes"})

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, w.Code)
	}

	var resp ErrorResponse
	if uerr := json.Unmarshal(w.Body.Bytes(), &resp); uerr != nil {
		t.Fatalf("failed to unmarshal response: %v", uerr)
	}

	if resp.Code != string(ffverrors.ErrCodeUnavailable) {
		t.Fatalf("expected code %q, got %q", ffverrors.ErrCodeUnavailable, resp.Code)
	}
	if resp.Message != "service unavailable" {
		t.Fatalf("expected message %q, got %q", "service unavailable", resp.Message)
	}
	if !resp.Retryable {
		t.Fatalf("expected retryable=true")
	}
	if resp.Details == nil {
		t.Fatalf("expected details, got nil")
	}
	if resp.Details["component"].(string) != "reader" {
		t.Fatalf("expected component=reader, got %#v", resp.Details["component"])
	}
	if resp.Details["extra"].(string) != "yes" {
		t.Fatalf("expected extra=yes, got %#v", resp.Details["extra"])
	}
	if resp.Details["error"].(string) != "sheet is locked" {
		t.Fatalf("expected error cause propagated, got %#v", resp.Details["error"])
	}
}

func TestWriteErrorFromErr_NonStructuredFallsBackToInternal(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	WriteErrorFromErr(w, req, errors.New("boom"), "fallback", map[string]any{"x": "y"})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp.Code != string(ffverrors.ErrCodeInternal) {
		t.Fatalf("expected code %q, got %q", ffverrors.ErrCodeInternal, resp.Code)
	}
	if !resp.Retryable {
		t.Fatalf("expected retryable=true")
	}
	if resp.Details == nil || resp.Details["x"].(string) != "y" {
		t.Fatalf("expected details to include x=y, got %#v", resp.Details)
	}
	if resp.Details["error"].(string) != "boom" {
		t.Fatalf("expected details error=boom, got %#v", resp.Details["error"])
	}
}

func TestWriteErrorFromErr_WrappedSchemaError(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/validate", nil)
	w := httptest.NewRecorder()

	se := ffverrors.WrapWithContext(ffverrors.ErrCodeSchema, "schema structure validation failed", nil,
		map[string]any{"problems": []string{"a: fieldType \"object\" requires properties"}})
	err := fmt.Errorf("failed to load schema from %q: %w", "mapping.json", se)

	WriteErrorFromErr(w, req, err, "fallback", nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	var resp ErrorResponse
	if uerr := json.Unmarshal(w.Body.Bytes(), &resp); uerr != nil {
		t.Fatalf("failed to unmarshal response: %v", uerr)
	}
	if resp.Code != string(ffverrors.ErrCodeSchema) {
		t.Fatalf("expected code %q, got %q", ffverrors.ErrCodeSchema, resp.Code)
	}
	if resp.Retryable {
		t.Fatal("schema errors must not be retryable")
	}
	if _, ok := resp.Details["problems"]; !ok {
		t.Fatalf("expected problems in details, got %#v", resp.Details)
	}
	if _, ok := resp.Details["error"]; ok {
		t.Fatalf("expected no error detail without a cause, got %#v", resp.Details["error"])
	}
}
