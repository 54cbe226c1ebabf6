/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package wizard

import (
	"math"
	"strconv"
	"strings"
)

// MaxFieldValue is the upper bound accepted for any lab value. Reference
// ranges in the schema are descriptive and not enforced.
const MaxFieldValue = 10000

// GeneralErrorKey holds whole-form errors in ValidationErrors.
const GeneralErrorKey = "general"

const (
	MsgOutOfRange = "value out of range"
	MsgRequired   = "required field"
	MsgNoData     = "enter at least one value"
)

// ValidationErrors maps a field path string, or GeneralErrorKey, to a message.
type ValidationErrors map[string]string

// Clone returns an independent copy.
func (e ValidationErrors) Clone() ValidationErrors {
	out := make(ValidationErrors, len(e))
	for key, msg := range e {
		out[key] = msg
	}

	return out
}

// General returns the whole-form error, if any.
func (e ValidationErrors) General() string {
	return e[GeneralErrorKey]
}

// FieldEntry is the outcome of reading one raw input.
type FieldEntry struct {
	Value   float64
	Set     bool
	Problem string
}

// CheckValue returns MsgOutOfRange when v is non-zero and outside
// [0, MaxFieldValue].
func CheckValue(v float64) string {
	if v != 0 && (v < 0 || v > MaxFieldValue) {
		return MsgOutOfRange
	}

	return ""
}

// ValidateField parses the raw input for path. Blank or non-numeric input
// leaves the field unset.
func ValidateField(path FieldPath, raw string) (FieldEntry, error) {
	if _, ok := LookupField(path); !ok {
		return FieldEntry{}, ErrUnknownField
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return FieldEntry{}, nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return FieldEntry{}, nil
	}

	return FieldEntry{Value: value, Set: true, Problem: CheckValue(value)}, nil
}

// ValidateForm checks the values of the selected tests. Required fields that
// are unset or zero are reported, stored values outside the global bound are
// reported, and a general error is added when no selected test has any
// non-zero value. The result is computed from scratch on every call.
func ValidateForm(tests TestSet, values FormValues) (ValidationErrors, bool) {
	errs := make(ValidationErrors)
	hasData := false

	for _, test := range tests.Tests() {
		for _, path := range RequiredPaths(test) {
			if v, ok := values.Get(path); !ok || v == 0 {
				errs[path.String()] = MsgRequired
			}
		}

		for path, v := range values.ForTest(test) {
			if v != 0 {
				hasData = true
			}

			if msg := CheckValue(v); msg != "" {
				errs[path.String()] = msg
			}
		}
	}

	if !hasData {
		errs[GeneralErrorKey] = MsgNoData
	}

	return errs, len(errs) == 0
}
