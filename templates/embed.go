/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package templates

import "embed"

// Templates holds one page per wizard step plus the header and footer
// partials.
//
//go:embed *.html
var Templates embed.FS
