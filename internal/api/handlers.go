// xbrld - XBRL Instance Validation Service
// Copyright 2026 M. Verhaert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mverhaert/xbrld

package api

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/mverhaert/xbrld/internal/logging"
	"github.com/mverhaert/xbrld/internal/validator"
)

// Handler implements the validation endpoints.
type Handler struct {
	svc     *validator.Service
	maxBody int64
}

// NewHandler creates a Handler backed by the given validation service.
// maxBody bounds the accepted request body size in bytes.
func NewHandler(svc *validator.Service, maxBody int64) *Handler {
	return &Handler{svc: svc, maxBody: maxBody}
}

// Validate handles POST /validate. The request body is an XBRL instance
// document; the response is either a validation result (200, even when the
// document is semantically invalid) or an errorResponse for structural and
// transport failures.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	log := logging.Ctx(r.Context())

	if !isXMLContentType(r.Header.Get("Content-Type")) {
		writeError(w, http.StatusBadRequest, "Content-Type must be an XML media type")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body exceeds size limit")
			return
		}
		log.Warn().Err(err).Msg("Failed to read request body")
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	if len(body) == 0 {
		writeError(w, http.StatusBadRequest, "request body is empty")
		return
	}
	if !utf8.Valid(body) {
		writeError(w, http.StatusBadRequest, "request body is not valid UTF-8")
		return
	}

	result, err := h.svc.Validate(r.Context(), body)
	if err != nil {
		var structural *validator.StructuralError
		switch {
		case errors.As(err, &structural):
			writeError(w, http.StatusBadRequest, structural.Reason)
		case errors.Is(err, validator.ErrEngineUnavailable):
			writeError(w, http.StatusServiceUnavailable, "validation engine temporarily unavailable")
		default:
			log.Error().Err(err).Msg("Validation run failed")
			writeError(w, http.StatusInternalServerError, "validation engine failure")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// isXMLContentType reports whether the declared media type carries XML.
// Accepts application/xml, text/xml and +xml suffixed types; parameters
// like charset are ignored.
func isXMLContentType(contentType string) bool {
	mediaType := contentType
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = mediaType[:i]
	}
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	return mediaType == "application/xml" ||
		mediaType == "text/xml" ||
		strings.HasSuffix(mediaType, "+xml")
}
