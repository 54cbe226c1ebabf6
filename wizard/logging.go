/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package wizard

import "github.com/humaidq/labwise/logging"

var logger = logging.Logger(logging.SourceWizard)
