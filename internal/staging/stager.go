// xbrld - XBRL Instance Validation Service
// Copyright 2026 M. Verhaert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mverhaert/xbrld

// Package staging writes inbound request bodies to uniquely named temporary
// files. The validation engine only accepts filesystem paths, so every
// request is staged to disk for the duration of a single validation and
// removed on every exit path afterwards.
package staging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/mverhaert/xbrld/internal/logging"
	"github.com/mverhaert/xbrld/internal/metrics"
)

// Stager creates uniquely named temporary files.
type Stager struct {
	dir    string
	prefix string
}

// NewStager creates a stager writing into dir. An empty dir falls back to
// the operating system temp directory.
func NewStager(dir string) *Stager {
	if dir == "" {
		dir = os.TempDir()
	}
	return &Stager{dir: dir, prefix: "xbrld-"}
}

// Dir returns the staging directory.
func (s *Stager) Dir() string {
	return s.dir
}

// Stage writes content to a fresh file and returns its path together with a
// cleanup function. UUID-based names make collisions across concurrent
// requests impossible without relying on O_EXCL retry loops.
//
// Cleanup must be called on every exit path. A failed removal is logged and
// counted but deliberately not returned: losing a temp file must never mask
// or replace the validation outcome.
func (s *Stager) Stage(content []byte, suffix string) (string, func(), error) {
	path := filepath.Join(s.dir, s.prefix+uuid.New().String()+suffix)

	if err := os.WriteFile(path, content, 0o600); err != nil {
		metrics.RecordStagingFailure()
		return "", nil, fmt.Errorf("staging: write %s: %w", path, err)
	}

	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			metrics.RecordCleanupFailure()
			logging.Error().Err(err).Str("path", path).Msg("failed to remove staged file")
		}
	}
	return path, cleanup, nil
}

// StagePath reserves a unique path without creating the file. Used for the
// engine's log output, which the engine itself creates and the returned
// cleanup removes afterwards.
func (s *Stager) StagePath(suffix string) (string, func()) {
	path := filepath.Join(s.dir, s.prefix+uuid.New().String()+suffix)

	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			metrics.RecordCleanupFailure()
			logging.Error().Err(err).Str("path", path).Msg("failed to remove staged file")
		}
	}
	return path, cleanup
}
