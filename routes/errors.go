/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import "errors"

var (
	errInvalidNumber   = errors.New("invalid number")
	errNumberOutOfSpan = errors.New("number out of range")
	errUnknownOption   = errors.New("unknown option")
)
