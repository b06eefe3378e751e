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

// Package server provides the HTTP server shared by the API binaries.
//
// A Server serves system endpoints (/, /health, /ready, /metrics) and the API
// handlers registered with WithHandler. API handlers run behind middleware
// that assigns request IDs, negotiates the API version from the Accept
// header, applies a token bucket rate limit and recovers panics.
//
// Errors are written as ErrorResponse documents. WriteErrorFromErr maps the
// code of a StructuredError to an HTTP status and a retryable flag:
//
//	SCHEMA_ERROR, INPUT_ERROR, INVALID_REQUEST  400, not retryable
//	RATE_LIMIT_EXCEEDED                         429, retryable
//	TIMEOUT                                     504, retryable
//	anything else                               500, retryable
//
// Configuration comes from DefaultConfig, which honors the PORT, LOG_LEVEL,
// RATE_LIMIT and MAX_UPLOAD_BYTES environment variables.
package server
