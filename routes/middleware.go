/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"

	"github.com/flamego/csrf"
	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/humaidq/labwise/wizard"
)

const wizardSessionKey = "wizard_id"

// CSRFInjector exposes the CSRF token to templates as .csrf_token so every
// wizard form can post it back.
func CSRFInjector() flamego.Handler {
	return func(x csrf.CSRF, data template.Data) {
		data["csrf_token"] = x.Token()
	}
}

// NoCacheHeaders disables caching for all page responses and blocks indexing.
func NoCacheHeaders() flamego.Handler {
	return func(c flamego.Context) {
		header := c.ResponseWriter().Header()
		header.Set("X-Robots-Tag", "noindex, nofollow, noarchive, nosnippet")

		if c.Request().Method == http.MethodGet || c.Request().Method == http.MethodHead {
			header.Set("Cache-Control", "no-store, max-age=0")
			header.Set("Pragma", "no-cache")
			header.Set("Expires", "0")
		}

		c.Next()
	}
}

// WizardLoader maps the session's wizard controller into the request, creating
// one when the session has none or its controller was evicted. The registry is
// mapped too so handlers can restart the wizard.
func WizardLoader(registry *wizard.Registry) flamego.Handler {
	return func(c flamego.Context, s session.Session) {
		id, _ := s.Get(wizardSessionKey).(string)

		ctl, ok := registry.Get(id)
		if !ok {
			ctl = registry.Create()
			s.Set(wizardSessionKey, ctl.ID())

			if id != "" {
				logger.Info("wizard expired, starting over", "old_wizard_id", id, "wizard_id", ctl.ID())
			}
		}

		c.Map(registry, ctl)
		c.Next()
	}
}

// RequireStep redirects GET requests for a page other than the current step
// to the current step.
func RequireStep(step wizard.Step) flamego.Handler {
	return func(c flamego.Context, ctl *wizard.Controller) {
		if current := ctl.Step(); current != step {
			c.Redirect(StepPath(current), http.StatusSeeOther)
			return
		}

		c.Next()
	}
}
