// xbrld - XBRL Instance Validation Service
// Copyright 2026 M. Verhaert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mverhaert/xbrld

package validator

import (
	"github.com/mverhaert/xbrld/internal/engine"
	"github.com/mverhaert/xbrld/internal/logging"
	"github.com/mverhaert/xbrld/internal/metrics"
)

// normalizeLevel maps the engine's level vocabulary onto the three-bucket
// severity taxonomy. The mapping is total: anything at least as strict as
// an error becomes error, informational records (including timing and debug
// noise) become info, and the remainder becomes warning. Unrecognized
// levels indicate a vocabulary drift in the engine; they map to warning and
// are surfaced through a log entry and a counter, never dropped.
func normalizeLevel(level string) (Severity, bool) {
	switch level {
	case engine.LevelCritical, engine.LevelFatal, engine.LevelError, engine.LevelInconsistency:
		return SeverityError, true
	case engine.LevelWarning:
		return SeverityWarning, true
	case engine.LevelInfo, engine.LevelDebug, engine.LevelTrace:
		return SeverityInfo, true
	default:
		return SeverityWarning, false
	}
}

// Normalize converts raw engine records into response messages, preserving
// emission order, codes, and message text verbatim. Line and column are
// copied only when the engine supplied them.
func Normalize(records []engine.LogRecord) []Message {
	messages := make([]Message, 0, len(records))

	for _, rec := range records {
		severity, known := normalizeLevel(rec.Level)
		if !known {
			metrics.RecordUnknownLevel()
			logging.Warn().
				Str("level", rec.Level).
				Str("code", rec.Code).
				Msg("unrecognized engine log level, mapping to warning")
		}

		msg := Message{
			Severity: severity,
			Code:     rec.Code,
			Message:  rec.Message,
		}
		if rec.Line != nil || rec.Column != nil {
			msg.Location = &Location{Line: rec.Line, Column: rec.Column}
		}
		messages = append(messages, msg)
	}
	return messages
}
