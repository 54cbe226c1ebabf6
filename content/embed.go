/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package content

import "embed"

// Pages holds the org-mode copy shown on the landing and about pages.
//
//go:embed *.org
var Pages embed.FS
