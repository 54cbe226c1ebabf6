/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/humaidq/labwise/logging"
	"github.com/humaidq/labwise/wizard"
)

// TestOption is one selectable test on the selection page.
type TestOption struct {
	Type          wizard.TestType
	Label         string
	Description   string
	Selected      bool
	FieldCount    int
	RequiredCount int
}

// TestSelection renders the test selection page.
func TestSelection(t template.Template, data template.Data, ctl *wizard.Controller) {
	state := ctl.Snapshot()
	setStepData(data, state)

	options := make([]TestOption, 0, len(wizard.TestTypes))
	for _, test := range wizard.TestTypes {
		options = append(options, TestOption{
			Type:          test,
			Label:         test.Label(),
			Description:   test.Description(),
			Selected:      state.Tests.Has(test),
			FieldCount:    len(wizard.AllPaths(test)),
			RequiredCount: len(wizard.RequiredPaths(test)),
		})
	}

	data["TestOptions"] = options

	t.HTML(http.StatusOK, "tests")
}

// ConfirmTests stores the selected tests.
func ConfirmTests(c flamego.Context, s session.Session, ctl *wizard.Controller) {
	if err := c.Request().ParseForm(); err != nil {
		logger.Warn("Error parsing form", "error", err)
		SetErrorFlash(s, "Failed to parse form")
		c.Redirect(StepPath(ctl.Step()), http.StatusSeeOther)

		return
	}

	var selected []wizard.TestType

	for _, raw := range c.Request().Form["tests"] {
		test, err := wizard.ParseTestType(raw)
		if err != nil {
			logRejectedTransition(c, s, "confirm tests", err)
			SetErrorFlash(s, "Unknown test type")
			c.Redirect(StepPath(ctl.Step()), http.StatusSeeOther)

			return
		}

		selected = append(selected, test)
	}

	tests := wizard.NewTestSet(selected...)
	err := ctl.ConfirmTests(tests)
	if err == nil {
		logging.ForWizard(logger, ctl.ID()).Debug("tests selected", "tests", tests.String())
	}

	redirectAfter(c, s, ctl, "confirm tests", err)
}
