// xbrld - XBRL Instance Validation Service
// Copyright 2026 M. Verhaert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mverhaert/xbrld

// Package validator orchestrates a validation request end to end: staging,
// the single-flight engine invocation, and normalization of the engine's
// log records into the fixed severity/message/location response schema.
package validator

import "fmt"

// Severity is the normalized three-bucket severity taxonomy. Every engine
// level maps onto exactly one of these; nothing is ever dropped.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Location points into the source document. Pointer fields keep "unknown"
// distinguishable from zero: absent values serialize as null.
type Location struct {
	Line   *int `json:"line"`
	Column *int `json:"column"`
}

// Message is one normalized validation finding. Code and text are preserved
// verbatim from the engine; downstream consumers pattern-match on both.
type Message struct {
	Severity Severity  `json:"severity"`
	Code     string    `json:"code"`
	Message  string    `json:"message"`
	Location *Location `json:"location,omitempty"`
}

// Summary counts messages per severity.
type Summary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Info     int `json:"info"`
}

// Result is the full validation outcome for one document.
type Result struct {
	Valid    bool      `json:"valid"`
	Summary  Summary   `json:"summary"`
	Messages []Message `json:"messages"`
}

// NewResult builds a Result from normalized messages, deriving the summary
// and validity. Valid is true iff there are zero error-severity messages.
func NewResult(messages []Message) *Result {
	if messages == nil {
		messages = []Message{}
	}

	var summary Summary
	for _, m := range messages {
		switch m.Severity {
		case SeverityError:
			summary.Errors++
		case SeverityWarning:
			summary.Warnings++
		case SeverityInfo:
			summary.Info++
		}
	}

	return &Result{
		Valid:    summary.Errors == 0,
		Summary:  summary,
		Messages: messages,
	}
}

// StructuralError reports a document that could not be parsed at all,
// independent of any taxonomy. Structural failures are the only validation
// findings that surface as HTTP errors; everything else rides inside a
// normal 200 response.
type StructuralError struct {
	Reason string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("structural XML error: %s", e.Reason)
}
