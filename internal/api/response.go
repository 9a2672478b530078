// xbrld - XBRL Instance Validation Service
// Copyright 2026 M. Verhaert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mverhaert/xbrld

// Package api provides the HTTP surface of the validation service:
// Chi routing, the /validate handler, and JSON response helpers.
package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/mverhaert/xbrld/internal/logging"
)

// errorResponse is the wire shape for structural and transport failures.
// Semantic validation findings never use this: they arrive inside a 200
// validation result.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with proper headers.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an errorResponse with the given status and message.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, errorResponse{Error: message})
}
