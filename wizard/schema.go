/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package wizard

import (
	"fmt"
	"strconv"
	"strings"
)

// TestType is a kind of laboratory test the user can report on.
type TestType string

const (
	TestHair  TestType = "hair"
	TestUrine TestType = "urine"
	TestBlood TestType = "blood"
)

// TestTypes lists the test types in canonical display order.
var TestTypes = []TestType{TestHair, TestUrine, TestBlood}

// ParseTestType converts a form value into a TestType.
func ParseTestType(value string) (TestType, error) {
	t := TestType(strings.ToLower(strings.TrimSpace(value)))
	if t.bit() == 0 {
		return "", fmt.Errorf("%w: %q", ErrUnknownTestType, value)
	}

	return t, nil
}

// Label is the human readable name of the test.
func (t TestType) Label() string {
	switch t {
	case TestHair:
		return "Hair mineral test"
	case TestUrine:
		return "Urine vitamin test"
	case TestBlood:
		return "Blood test"
	default:
		return string(t)
	}
}

// Description summarises what the test measures.
func (t TestType) Description() string {
	switch t {
	case TestHair:
		return "Long-term mineral balance and toxic metal exposure."
	case TestUrine:
		return "Water-soluble vitamin status and metabolic markers."
	case TestBlood:
		return "Anaemia, vitamin, nutrition, lipid and inflammation markers."
	default:
		return ""
	}
}

func (t TestType) bit() TestSet {
	for i, tt := range TestTypes {
		if tt == t {
			return 1 << i
		}
	}

	return 0
}

// TestSet is an unordered set of test types.
type TestSet uint8

// NewTestSet builds a set from the given tests. Unknown tests are ignored.
func NewTestSet(tests ...TestType) TestSet {
	var s TestSet
	for _, t := range tests {
		s |= t.bit()
	}

	return s
}

// Has reports whether t is in the set.
func (s TestSet) Has(t TestType) bool {
	bit := t.bit()
	return bit != 0 && s&bit != 0
}

// Empty reports whether no test is selected.
func (s TestSet) Empty() bool {
	return s == 0
}

// Len returns the number of tests in the set.
func (s TestSet) Len() int {
	return len(s.Tests())
}

// Tests returns the members in canonical order.
func (s TestSet) Tests() []TestType {
	tests := make([]TestType, 0, len(TestTypes))
	for _, t := range TestTypes {
		if s.Has(t) {
			tests = append(tests, t)
		}
	}

	return tests
}

func (s TestSet) String() string {
	parts := make([]string, 0, len(TestTypes))
	for _, t := range s.Tests() {
		parts = append(parts, string(t))
	}

	return "{" + strings.Join(parts, ",") + "}"
}

// Field describes one numeric input slot.
type Field struct {
	Key      string
	Label    string
	Unit     string
	Range    string
	Required bool
}

// Section is a named group of fields within a test.
type Section struct {
	Key    string
	Title  string
	Fields []Field
}

// FieldPath addresses a single field of a test.
type FieldPath struct {
	Test    TestType
	Section string
	Field   string
}

func (p FieldPath) String() string {
	return string(p.Test) + "." + p.Section + "." + p.Field
}

// ParseFieldPath parses "test.section.field" and checks that the field exists
// in the schema.
func ParseFieldPath(value string) (FieldPath, error) {
	parts := strings.Split(strings.TrimSpace(value), ".")
	if len(parts) != 3 {
		return FieldPath{}, fmt.Errorf("%w: %q", ErrUnknownField, value)
	}

	test, err := ParseTestType(parts[0])
	if err != nil {
		return FieldPath{}, fmt.Errorf("%w: %q", ErrUnknownField, value)
	}

	path := FieldPath{Test: test, Section: parts[1], Field: parts[2]}
	if _, ok := LookupField(path); !ok {
		return FieldPath{}, fmt.Errorf("%w: %q", ErrUnknownField, value)
	}

	return path, nil
}

// requiredFields is the fixed table of fields that must be non-zero before
// the data step can be confirmed.
var requiredFields = map[TestType]map[string][]string{
	TestHair: {
		"essentialMinerals": {"calcium", "magnesium", "zinc", "iron"},
		"toxicMetals":       {"mercury", "lead"},
		"ratios":            {"caToMg"},
	},
	TestUrine: {
		"waterSolubleVitamins": {"vitaminB1", "vitaminB2", "vitaminB12", "vitaminC"},
	},
	TestBlood: {
		"anemia":   {"hemoglobin", "ferritin"},
		"vitamins": {"vitaminB12", "vitamin25D"},
	},
}

// IsRequired reports whether the field at path must be filled in.
func IsRequired(path FieldPath) bool {
	for _, key := range requiredFields[path.Test][path.Section] {
		if key == path.Field {
			return true
		}
	}

	return false
}

// RequiredPaths returns the required fields of a test in schema order.
func RequiredPaths(test TestType) []FieldPath {
	var paths []FieldPath
	for _, section := range SchemaFor(test) {
		for _, field := range section.Fields {
			if field.Required {
				paths = append(paths, FieldPath{Test: test, Section: section.Key, Field: field.Key})
			}
		}
	}

	return paths
}

// AllPaths returns every field path of a test in schema order.
func AllPaths(test TestType) []FieldPath {
	var paths []FieldPath
	for _, section := range SchemaFor(test) {
		for _, field := range section.Fields {
			paths = append(paths, FieldPath{Test: test, Section: section.Key, Field: field.Key})
		}
	}

	return paths
}

// SchemaFor returns the ordered sections of a test. The result is a copy and
// may be modified by the caller.
func SchemaFor(test TestType) []Section {
	sections := schema[test]
	out := make([]Section, len(sections))

	for i, section := range sections {
		fields := make([]Field, len(section.Fields))
		for j, field := range section.Fields {
			field.Required = IsRequired(FieldPath{Test: test, Section: section.Key, Field: field.Key})
			fields[j] = field
		}

		out[i] = Section{Key: section.Key, Title: section.Title, Fields: fields}
	}

	return out
}

// LookupField returns the schema entry for path.
func LookupField(path FieldPath) (Field, bool) {
	for _, section := range schema[path.Test] {
		if section.Key != path.Section {
			continue
		}

		for _, field := range section.Fields {
			if field.Key == path.Field {
				field.Required = IsRequired(path)
				return field, true
			}
		}
	}

	return Field{}, false
}

// ReferenceStatus classifies a value against a field's reference range.
type ReferenceStatus int

const (
	ReferenceUnknown ReferenceStatus = iota
	ReferenceBelow
	ReferenceWithin
	ReferenceAbove
)

func (s ReferenceStatus) String() string {
	switch s {
	case ReferenceBelow:
		return "below"
	case ReferenceWithin:
		return "within"
	case ReferenceAbove:
		return "above"
	default:
		return "unknown"
	}
}

// ReferenceStatus compares v with the descriptive reference range. It is for
// display only; validation uses the global bound.
func (f Field) ReferenceStatus(v float64) ReferenceStatus {
	low, high, ok := parseReferenceRange(f.Range)
	if !ok {
		return ReferenceUnknown
	}

	switch {
	case v < low:
		return ReferenceBelow
	case v > high:
		return ReferenceAbove
	default:
		return ReferenceWithin
	}
}

// parseReferenceRange understands "a-b" and "< b".
func parseReferenceRange(value string) (float64, float64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, 0, false
	}

	if rest, ok := strings.CutPrefix(value, "<"); ok {
		high, err := strconv.ParseFloat(strings.TrimSpace(rest), 64)
		if err != nil {
			return 0, 0, false
		}

		return 0, high, true
	}

	lowText, highText, ok := strings.Cut(value, "-")
	if !ok {
		return 0, 0, false
	}

	low, err := strconv.ParseFloat(strings.TrimSpace(lowText), 64)
	if err != nil {
		return 0, 0, false
	}

	high, err := strconv.ParseFloat(strings.TrimSpace(highText), 64)
	if err != nil || high < low {
		return 0, 0, false
	}

	return low, high, true
}

var schema = map[TestType][]Section{
	TestHair: {
		{
			Key:   "essentialMinerals",
			Title: "Essential minerals",
			Fields: []Field{
				{Key: "calcium", Label: "Calcium", Unit: "mg/100g", Range: "200-1500"},
				{Key: "magnesium", Label: "Magnesium", Unit: "mg/100g", Range: "15-100"},
				{Key: "sodium", Label: "Sodium", Unit: "mg/100g", Range: "10-100"},
				{Key: "potassium", Label: "Potassium", Unit: "mg/100g", Range: "5-50"},
				{Key: "copper", Label: "Copper", Unit: "mg/100g", Range: "1-5"},
				{Key: "zinc", Label: "Zinc", Unit: "mg/100g", Range: "8-25"},
				{Key: "phosphorus", Label: "Phosphorus", Unit: "mg/100g", Range: "12-20"},
				{Key: "iron", Label: "Iron", Unit: "mg/100g", Range: "1-3"},
				{Key: "manganese", Label: "Manganese", Unit: "mg/100g", Range: "0.1-1.0"},
				{Key: "chromium", Label: "Chromium", Unit: "mg/100g", Range: "0.1-2.0"},
				{Key: "selenium", Label: "Selenium", Unit: "mg/100g", Range: "0.8-2.0"},
				{Key: "cobalt", Label: "Cobalt", Unit: "mg/100g", Range: "0.001-0.05"},
			},
		},
		{
			Key:   "toxicMetals",
			Title: "Toxic metals",
			Fields: []Field{
				{Key: "aluminum", Label: "Aluminium", Unit: "mg/100g", Range: "< 10"},
				{Key: "cadmium", Label: "Cadmium", Unit: "mg/100g", Range: "< 0.1"},
				{Key: "mercury", Label: "Mercury", Unit: "mg/100g", Range: "< 1.0"},
				{Key: "lead", Label: "Lead", Unit: "mg/100g", Range: "< 2.0"},
				{Key: "arsenic", Label: "Arsenic", Unit: "mg/100g", Range: "< 0.1"},
				{Key: "beryllium", Label: "Beryllium", Unit: "mg/100g", Range: "< 0.01"},
			},
		},
		{
			Key:   "ratios",
			Title: "Balance ratios",
			Fields: []Field{
				{Key: "caToMg", Label: "Ca/Mg ratio", Range: "4-10"},
				{Key: "naToK", Label: "Na/K ratio", Range: "0.5-3.0"},
				{Key: "znToCu", Label: "Zn/Cu ratio", Range: "4-20"},
				{Key: "caToP", Label: "Ca/P ratio", Range: "1-3"},
			},
		},
	},
	TestUrine: {
		{
			Key:   "waterSolubleVitamins",
			Title: "Water-soluble vitamins",
			Fields: []Field{
				{Key: "vitaminB1", Label: "Vitamin B1", Unit: "μg/g Cre", Range: "50-200"},
				{Key: "vitaminB2", Label: "Vitamin B2", Unit: "μg/g Cre", Range: "30-150"},
				{Key: "vitaminB6", Label: "Vitamin B6", Unit: "μg/g Cre", Range: "20-80"},
				{Key: "vitaminB12", Label: "Vitamin B12", Unit: "ng/g Cre", Range: "100-500"},
				{Key: "niacin", Label: "Niacin", Unit: "mg/g Cre", Range: "2-10"},
				{Key: "pantothenicAcid", Label: "Pantothenic acid", Unit: "mg/g Cre", Range: "1-5"},
				{Key: "biotin", Label: "Biotin", Unit: "μg/g Cre", Range: "10-50"},
				{Key: "folicAcid", Label: "Folic acid", Unit: "μg/g Cre", Range: "50-200"},
				{Key: "vitaminC", Label: "Vitamin C", Unit: "mg/g Cre", Range: "10-50"},
			},
		},
		{
			Key:   "organicAcids",
			Title: "Organic acids",
			Fields: []Field{
				{Key: "lacticAcid", Label: "Lactic acid", Unit: "mg/g Cre", Range: "< 30"},
				{Key: "pyruvicAcid", Label: "Pyruvic acid", Unit: "mg/g Cre", Range: "< 6"},
				{Key: "citricAcid", Label: "Citric acid", Unit: "mg/g Cre", Range: "150-700"},
				{Key: "ketoAcids", Label: "Keto acids", Unit: "mg/g Cre", Range: "< 10"},
				{Key: "oxalicAcid", Label: "Oxalic acid", Unit: "mg/g Cre", Range: "< 40"},
			},
		},
		{
			Key:   "aminoAcids",
			Title: "Amino acids",
			Fields: []Field{
				{Key: "taurine", Label: "Taurine", Unit: "mg/g Cre", Range: "50-250"},
				{Key: "glycine", Label: "Glycine", Unit: "mg/g Cre", Range: "50-300"},
				{Key: "alanine", Label: "Alanine", Unit: "mg/g Cre", Range: "10-60"},
			},
		},
	},
	TestBlood: {
		{
			Key:   "anemia",
			Title: "Anaemia markers",
			Fields: []Field{
				{Key: "hemoglobin", Label: "Haemoglobin", Unit: "g/dL", Range: "12.0-16.0"},
				{Key: "hematocrit", Label: "Haematocrit", Unit: "%", Range: "36-48"},
				{Key: "mcv", Label: "MCV", Unit: "fL", Range: "80-100"},
				{Key: "mch", Label: "MCH", Unit: "pg", Range: "27-33"},
				{Key: "mchc", Label: "MCHC", Unit: "%", Range: "32-36"},
				{Key: "ferritin", Label: "Ferritin", Unit: "ng/mL", Range: "12-200"},
				{Key: "tibc", Label: "TIBC", Unit: "μg/dL", Range: "250-400"},
			},
		},
		{
			Key:   "vitamins",
			Title: "Vitamins",
			Fields: []Field{
				{Key: "vitaminB12", Label: "Vitamin B12", Unit: "pg/mL", Range: "200-900"},
				{Key: "folicAcid", Label: "Folic acid", Unit: "ng/mL", Range: "3-15"},
				{Key: "vitamin25D", Label: "25-OH vitamin D", Unit: "ng/mL", Range: "20-50"},
				{Key: "vitaminE", Label: "Vitamin E", Unit: "mg/dL", Range: "0.8-1.2"},
				{Key: "vitaminA", Label: "Vitamin A", Unit: "IU/dL", Range: "1000-3000"},
			},
		},
		{
			Key:   "nutritionMarkers",
			Title: "Nutrition markers",
			Fields: []Field{
				{Key: "totalProtein", Label: "Total protein", Unit: "g/dL", Range: "6.5-8.0"},
				{Key: "albumin", Label: "Albumin", Unit: "g/dL", Range: "3.8-5.2"},
				{Key: "prealbumin", Label: "Prealbumin", Unit: "mg/dL", Range: "22-40"},
				{Key: "zinc", Label: "Zinc", Unit: "μg/dL", Range: "80-130"},
				{Key: "copper", Label: "Copper", Unit: "μg/dL", Range: "70-140"},
				{Key: "selenium", Label: "Selenium", Unit: "μg/L", Range: "100-160"},
			},
		},
		{
			Key:   "lipids",
			Title: "Lipids",
			Fields: []Field{
				{Key: "totalCholesterol", Label: "Total cholesterol", Unit: "mg/dL", Range: "150-219"},
				{Key: "ldlCholesterol", Label: "LDL cholesterol", Unit: "mg/dL", Range: "70-139"},
				{Key: "hdlCholesterol", Label: "HDL cholesterol", Unit: "mg/dL", Range: "40-90"},
				{Key: "triglycerides", Label: "Triglycerides", Unit: "mg/dL", Range: "50-149"},
			},
		},
		{
			Key:   "inflammation",
			Title: "Inflammation",
			Fields: []Field{
				{Key: "crp", Label: "CRP", Unit: "mg/dL", Range: "< 0.3"},
				{Key: "esr", Label: "ESR", Unit: "mm/h", Range: "< 15"},
			},
		},
	},
}
