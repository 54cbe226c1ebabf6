/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	htmltemplate "html/template"
	"net/http"
	"sync"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/humaidq/labwise/content"
	"github.com/humaidq/labwise/utils"
	"github.com/humaidq/labwise/wizard"
)

var (
	landingPage = sync.OnceValues(func() (utils.Page, error) {
		return utils.LoadOrgPage(content.Pages, "landing")
	})
	aboutPage = sync.OnceValues(func() (utils.Page, error) {
		return utils.LoadOrgPage(content.Pages, "about")
	})
)

func setContentPage(data template.Data, name string, load func() (utils.Page, error)) {
	page, err := load()
	if err != nil {
		logger.Error("Error rendering content page", "page", name, "error", err)
		data["Error"] = "This page could not be loaded"

		return
	}

	data["ContentTitle"] = page.Title
	data["Content"] = htmltemplate.HTML(page.HTML) //nolint:gosec // HTML comes from trusted org parser output.
}

// Landing renders the introduction page.
func Landing(t template.Template, data template.Data, ctl *wizard.Controller) {
	setStepData(data, ctl.Snapshot())
	setContentPage(data, "landing", landingPage)

	t.HTML(http.StatusOK, "landing")
}

// About renders the about page. It is reachable from every step.
func About(t template.Template, data template.Data, ctl *wizard.Controller) {
	data["ResumePath"] = StepPath(ctl.Step())
	data["PageTitle"] = "About"
	setContentPage(data, "about", aboutPage)

	t.HTML(http.StatusOK, "about")
}

// Start leaves the landing page.
func Start(c flamego.Context, s session.Session, ctl *wizard.Controller) {
	redirectAfter(c, s, ctl, "start", ctl.Start())
}
