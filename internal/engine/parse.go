// xbrld - XBRL Instance Validation Service
// Copyright 2026 M. Verhaert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mverhaert/xbrld

package engine

import (
	"regexp"
	"strconv"
	"strings"
)

// The engine's text log writes one record per line: "[messageCode] message".
// Location, when present, is embedded in the message as "line N" and
// "column N" fragments.
var (
	recordPattern = regexp.MustCompile(`^\[([^\]]+)\]\s*(.+)`)
	linePattern   = regexp.MustCompile(`line\s+(\d+)`)
	columnPattern = regexp.MustCompile(`column\s+(\d+)`)
)

// ParseLog parses the engine's log file content into ordered records.
// Lines that do not match the record pattern are skipped; blank lines are
// ignored.
func ParseLog(content []byte) []LogRecord {
	var records []LogRecord

	for _, line := range strings.Split(strings.TrimSpace(string(content)), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		m := recordPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		code := m[1]
		message := strings.TrimSpace(m[2])

		records = append(records, LogRecord{
			Level:   LevelFromCode(code),
			Code:    code,
			Message: message,
			Line:    matchInt(linePattern, message),
			Column:  matchInt(columnPattern, message),
		})
	}
	return records
}

func matchInt(re *regexp.Regexp, s string) *int {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}

var errorCodeFragments = []string{
	"error",
	"err",
	"invalid",
	"missing",
	"syntax",
	"undefined",
	"violation",
}

var warningCodeFragments = []string{
	"warning",
	"warn",
	"deprecated",
}

// LevelFromCode derives an engine level from a message code. The text log
// format does not carry an explicit level field, so the code is the only
// signal; the fragment tables mirror the engine's own code conventions.
func LevelFromCode(code string) string {
	lower := strings.ToLower(code)

	for _, fragment := range errorCodeFragments {
		if strings.Contains(lower, fragment) {
			return LevelError
		}
	}
	for _, fragment := range warningCodeFragments {
		if strings.Contains(lower, fragment) {
			return LevelWarning
		}
	}
	if lower == "info" {
		return LevelInfo
	}

	// XBRL spec codes and XML schema codes identify conformance failures.
	if strings.HasPrefix(lower, "xbrl") || strings.HasPrefix(lower, "xmlschema") {
		return LevelError
	}

	return LevelInfo
}
