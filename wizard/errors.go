/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package wizard

import "errors"

var (
	ErrInvalidTransition  = errors.New("transition not allowed from current step")
	ErrNoTestsSelected    = errors.New("select at least one test")
	ErrUnknownTestType    = errors.New("unknown test type")
	ErrUnknownField       = errors.New("unknown field path")
	ErrTestNotSelected    = errors.New("test type not selected")
	ErrValidationFailed   = errors.New("form validation failed")
	ErrAnalysisInProgress = errors.New("analysis still running")
	ErrUnknownPriority    = errors.New("unknown priority")
	ErrCatalogEmpty       = errors.New("supplement catalog is empty")
	ErrCatalogInvalid     = errors.New("invalid supplement catalog entry")
	ErrSupplementNotFound = errors.New("supplement not found")
)
