// xbrld - XBRL Instance Validation Service
// Copyright 2026 M. Verhaert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mverhaert/xbrld

// Package engine wraps the external XBRL validation engine (Arelle) behind a
// narrow interface: validate one staged file, return the diagnostic log as
// ordered raw records. All XBRL semantics (taxonomy parsing, calculation
// checks, dimensional validation) live in the engine; this package only
// invokes it and parses its log output.
package engine

import (
	"context"
)

// Known engine log levels. Arelle's level vocabulary is wider than the
// three-bucket severity taxonomy the API exposes; the validator package owns
// the total mapping onto {error, warning, info}.
const (
	LevelCritical      = "critical"
	LevelFatal         = "fatal"
	LevelError         = "error"
	LevelInconsistency = "inconsistency"
	LevelWarning       = "warning"
	LevelInfo          = "info"
	LevelDebug         = "debug"
	LevelTrace         = "trace"
)

// LogRecord is one raw diagnostic record emitted by the engine.
type LogRecord struct {
	// Level is the engine's severity vocabulary entry for this record.
	Level string

	// Code is the engine's rule/message identifier, preserved verbatim.
	Code string

	// Message is the free-text message, preserved verbatim.
	Message string

	// Line and Column locate the finding in the source document when the
	// engine supplied them; nil means unknown, which must stay
	// distinguishable from zero.
	Line   *int
	Column *int
}

// Engine validates a staged file and returns the emitted log records in
// emission order. Implementations must not fetch anything over the network
// while offline mode is configured.
type Engine interface {
	Validate(ctx context.Context, filePath string) ([]LogRecord, error)
}
