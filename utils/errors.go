/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package utils

import "errors"

var (
	errEmptyOrgContent = errors.New("org content is empty")
	errPageNotFound    = errors.New("content page not found")
)
