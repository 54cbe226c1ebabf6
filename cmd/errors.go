/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import "errors"

var (
	errCSRFSecretRequired   = errors.New(csrfSecretEnvVar + " is required in production")
	errInvalidRuntimeEnv    = errors.New(runtimeEnvVar + " must be one of: development, dev, production, prod")
	errInvalidSessionIdle   = errors.New("session-idle must be positive")
	errInvalidAnalysisDelay = errors.New("analysis-delay must not be negative")
	errUnknownSchemaFormat  = errors.New("format must be one of: text, yaml")
)
