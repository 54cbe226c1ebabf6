/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"encoding/gob"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"
)

// FlashType selects the banner style of a flash message.
type FlashType string

const (
	FlashError FlashType = "error"
	FlashInfo  FlashType = "info"
)

// FlashMessage is shown once on the next rendered page, typically after a
// rejected transition or a redirect to the current step.
type FlashMessage struct {
	Type    FlashType
	Message string
}

func init() {
	gob.Register(FlashMessage{})
}

func setFlash(s session.Session, kind FlashType, message string) {
	s.SetFlash(FlashMessage{Type: kind, Message: message})
}

// SetErrorFlash queues an error banner for the next page.
func SetErrorFlash(s session.Session, message string) {
	setFlash(s, FlashError, message)
}

// SetInfoFlash queues an informational banner for the next page.
func SetInfoFlash(s session.Session, message string) {
	setFlash(s, FlashInfo, message)
}

// FlashInjector exposes the pending flash message to templates as .Flash.
func FlashInjector() flamego.Handler {
	return func(f session.Flash, data template.Data) {
		msg, ok := f.(FlashMessage)
		if !ok || msg.Message == "" {
			return
		}

		data["Flash"] = msg
	}
}
