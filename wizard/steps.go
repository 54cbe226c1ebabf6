/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package wizard

// Step identifies one screen of the wizard.
type Step string

const (
	StepLanding            Step = "landing"
	StepTestSelection      Step = "testSelection"
	StepDataInput          Step = "dataInput"
	StepPersonalAttributes Step = "personalAttributes"
	StepAnalysis           Step = "analysis"
	StepResults            Step = "results"
	StepSupplements        Step = "supplements"
)

// Steps lists every step in wizard order.
var Steps = []Step{
	StepLanding,
	StepTestSelection,
	StepDataInput,
	StepPersonalAttributes,
	StepAnalysis,
	StepResults,
	StepSupplements,
}

// Index returns the position of s in Steps, or -1 for an unknown step.
func (s Step) Index() int {
	for i, step := range Steps {
		if step == s {
			return i
		}
	}

	return -1
}

// Prev returns the step before s. The landing step has no predecessor.
func (s Step) Prev() (Step, bool) {
	i := s.Index()
	if i <= 0 {
		return s, false
	}

	return Steps[i-1], true
}

// Next returns the step after s. The supplements step has no successor.
func (s Step) Next() (Step, bool) {
	i := s.Index()
	if i < 0 || i == len(Steps)-1 {
		return s, false
	}

	return Steps[i+1], true
}

// Valid reports whether s is one of the known steps.
func (s Step) Valid() bool {
	return s.Index() >= 0
}

// Title is the heading shown for the step.
func (s Step) Title() string {
	switch s {
	case StepLanding:
		return "Welcome"
	case StepTestSelection:
		return "Choose your tests"
	case StepDataInput:
		return "Enter your results"
	case StepPersonalAttributes:
		return "About you"
	case StepAnalysis:
		return "Analysing"
	case StepResults:
		return "Your analysis"
	case StepSupplements:
		return "Supplement plan"
	default:
		return ""
	}
}
