// xbrld - XBRL Instance Validation Service
// Copyright 2026 M. Verhaert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mverhaert/xbrld

package validator

import (
	"errors"
	"testing"
)

func TestCheckWellFormed_Valid(t *testing.T) {
	docs := []string{
		`<?xml version="1.0" encoding="UTF-8"?><xbrl xmlns="http://www.xbrl.org/2003/instance"></xbrl>`,
		`<root><child attr="v">text</child></root>`,
		"\n\t <root/> \n",
	}
	for _, doc := range docs {
		if err := CheckWellFormed([]byte(doc)); err != nil {
			t.Errorf("CheckWellFormed(%q) = %v, want nil", doc, err)
		}
	}
}

func TestCheckWellFormed_Malformed(t *testing.T) {
	docs := []string{
		`<root><unclosed></root>`,
		`<root attr=unquoted/>`,
		`<a><b></a></b>`,
		`just text, no markup`,
		`<`,
	}
	for _, doc := range docs {
		err := CheckWellFormed([]byte(doc))
		var structural *StructuralError
		if !errors.As(err, &structural) {
			t.Errorf("CheckWellFormed(%q) = %v, want *StructuralError", doc, err)
			continue
		}
		if structural.Reason == "" {
			t.Errorf("CheckWellFormed(%q): empty reason", doc)
		}
	}
}

func TestCheckWellFormed_Empty(t *testing.T) {
	for _, doc := range []string{"", "   ", "\n\t"} {
		err := CheckWellFormed([]byte(doc))
		var structural *StructuralError
		if !errors.As(err, &structural) {
			t.Errorf("CheckWellFormed(%q) = %v, want *StructuralError", doc, err)
		}
	}
}
