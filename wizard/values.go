/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package wizard

// FormValues holds the entered lab values. Only fields the user has filled in
// are present; a missing key means the field is unset.
type FormValues map[FieldPath]float64

// Get returns the stored value and whether the field is set.
func (v FormValues) Get(path FieldPath) (float64, bool) {
	value, ok := v[path]
	return value, ok
}

// Clone returns an independent copy.
func (v FormValues) Clone() FormValues {
	out := make(FormValues, len(v))
	for path, value := range v {
		out[path] = value
	}

	return out
}

// ForTest returns the values that belong to a single test.
func (v FormValues) ForTest(test TestType) FormValues {
	out := make(FormValues)
	for path, value := range v {
		if path.Test == test {
			out[path] = value
		}
	}

	return out
}

// replaceTests returns a copy of v where the values of every test in tests
// are replaced by those in update. Values of other tests are kept.
func (v FormValues) replaceTests(tests TestSet, update FormValues) FormValues {
	out := make(FormValues, len(v)+len(update))
	for path, value := range v {
		if !tests.Has(path.Test) {
			out[path] = value
		}
	}

	for path, value := range update {
		if tests.Has(path.Test) {
			out[path] = value
		}
	}

	return out
}

// rangeErrors reports the stored values of tests that are outside the
// global bound.
func (v FormValues) rangeErrors(tests TestSet) ValidationErrors {
	errs := make(ValidationErrors)

	for path, value := range v {
		if !tests.Has(path.Test) {
			continue
		}

		if problem := CheckValue(value); problem != "" {
			errs[path.String()] = problem
		}
	}

	return errs
}

// Strings renders the values keyed by path string, for templates.
func (v FormValues) Strings() map[string]float64 {
	out := make(map[string]float64, len(v))
	for path, value := range v {
		out[path.String()] = value
	}

	return out
}
