// xbrld - XBRL Instance Validation Service
// Copyright 2026 M. Verhaert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mverhaert/xbrld

package validator

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// CheckWellFormed scans the document with a streaming XML tokenizer and
// returns a *StructuralError when it is not well-formed. The scan stops at
// the first problem; it performs no schema or taxonomy work, that is the
// engine's job.
func CheckWellFormed(body []byte) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return &StructuralError{Reason: "empty document"}
	}

	decoder := xml.NewDecoder(bytes.NewReader(body))
	sawElement := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return &StructuralError{Reason: describeSyntaxError(err)}
		}
		if _, ok := tok.(xml.StartElement); ok {
			sawElement = true
		}
	}

	if !sawElement {
		return &StructuralError{Reason: "document contains no elements"}
	}
	return nil
}

// describeSyntaxError flattens the decoder's error into a plain description
// carrying the line number when the decoder reports one.
func describeSyntaxError(err error) string {
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		return strings.TrimSpace(syntaxErr.Error())
	}
	return err.Error()
}
