// xbrld - XBRL Instance Validation Service
// Copyright 2026 M. Verhaert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mverhaert/xbrld

package engine

import (
	"testing"
)

func TestParseLog_BasicRecords(t *testing.T) {
	log := []byte(`[xbrl.5.2.5.2:calcInconsistency] Calculation inconsistency in Assets - instance.xml, line 42, column 7
[info] Validation complete
[xmlSchema:syntax] element not closed - instance.xml, line 3`)

	records := ParseLog(log)
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	first := records[0]
	if first.Code != "xbrl.5.2.5.2:calcInconsistency" {
		t.Errorf("code = %q", first.Code)
	}
	if first.Level != LevelError {
		t.Errorf("level = %q, want error", first.Level)
	}
	if first.Line == nil || *first.Line != 42 {
		t.Errorf("line = %v, want 42", first.Line)
	}
	if first.Column == nil || *first.Column != 7 {
		t.Errorf("column = %v, want 7", first.Column)
	}

	second := records[1]
	if second.Level != LevelInfo {
		t.Errorf("info record level = %q", second.Level)
	}
	if second.Line != nil || second.Column != nil {
		t.Errorf("expected no location on info record, got line=%v column=%v", second.Line, second.Column)
	}

	third := records[2]
	if third.Line == nil || *third.Line != 3 {
		t.Errorf("line = %v, want 3", third.Line)
	}
	if third.Column != nil {
		t.Errorf("expected nil column when absent, got %v", *third.Column)
	}
}

func TestParseLog_PreservesMessageVerbatim(t *testing.T) {
	msg := `Could not load file from local filesystem: http://amsf.mc/fr/taxonomy/strix/2025/strix.xsd`
	records := ParseLog([]byte("[IOerror] " + msg))
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Message != msg {
		t.Errorf("message altered: %q", records[0].Message)
	}
	if records[0].Level != LevelError {
		t.Errorf("IOerror should map to error level, got %q", records[0].Level)
	}
}

func TestParseLog_SkipsNoise(t *testing.T) {
	log := []byte("\n\nnot a record line\n[code] real record\n   \n")
	records := ParseLog(log)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Code != "code" {
		t.Errorf("code = %q", records[0].Code)
	}
}

func TestParseLog_Empty(t *testing.T) {
	if records := ParseLog(nil); len(records) != 0 {
		t.Errorf("expected no records from empty log, got %d", len(records))
	}
}

func TestParseLog_PreservesOrder(t *testing.T) {
	log := []byte("[a] first\n[b] second\n[c] third")
	records := ParseLog(log)
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i, want := range []string{"a", "b", "c"} {
		if records[i].Code != want {
			t.Errorf("records[%d].Code = %q, want %q", i, records[i].Code, want)
		}
	}
}

func TestLevelFromCode(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"IOerror", LevelError},
		{"xbrl.5.2.5.2:calcInconsistency", LevelError},
		{"xmlSchema:syntax", LevelError},
		{"xbrte:missingDimension", LevelError},
		{"undefinedFact", LevelError},
		{"schemaImportMissing", LevelError},
		{"valueViolation", LevelError},
		{"invalidValue", LevelError},
		{"arelle:deprecatedFormula", LevelWarning},
		{"loadWarning", LevelWarning},
		{"info", LevelInfo},
		{"loading", LevelInfo},
		{"xbrl.4.2:schemaRef", LevelError},
		{"performance", LevelInfo},
	}
	for _, tt := range tests {
		if got := LevelFromCode(tt.code); got != tt.want {
			t.Errorf("LevelFromCode(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
