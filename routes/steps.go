/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"errors"
	"net/http"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/humaidq/labwise/wizard"
)

var stepPaths = map[wizard.Step]string{
	wizard.StepLanding:            "/",
	wizard.StepTestSelection:      "/tests",
	wizard.StepDataInput:          "/data",
	wizard.StepPersonalAttributes: "/attributes",
	wizard.StepAnalysis:           "/analysis",
	wizard.StepResults:            "/results",
	wizard.StepSupplements:        "/supplements",
}

// StepPath returns the page that renders step.
func StepPath(step wizard.Step) string {
	if p, ok := stepPaths[step]; ok {
		return p
	}

	return "/"
}

// ProgressItem is one entry of the step indicator.
type ProgressItem struct {
	Number  int
	Title   string
	Done    bool
	Current bool
}

func progress(current wizard.Step) []ProgressItem {
	items := make([]ProgressItem, 0, len(wizard.Steps)-1)
	idx := current.Index()

	// The landing page is not part of the numbered progress.
	for i, step := range wizard.Steps[1:] {
		items = append(items, ProgressItem{
			Number:  i + 1,
			Title:   step.Title(),
			Done:    step.Index() < idx,
			Current: step == current,
		})
	}

	return items
}

func setStepData(data template.Data, state wizard.State) {
	data["Step"] = state.Step
	data["PageTitle"] = state.Step.Title()
	data["Progress"] = progress(state.Step)

	_, canGoBack := state.Step.Prev()
	data["CanGoBack"] = canGoBack
}

// redirectAfter finishes a state-changing POST. Rejected transitions are
// logged and reported with a flash message; either way the browser is sent to
// the page of the step the wizard is now on.
func redirectAfter(c flamego.Context, s session.Session, ctl *wizard.Controller, action string, err error) {
	if err != nil {
		logRejectedTransition(c, s, action, err, "step", ctl.Step())
		SetErrorFlash(s, transitionMessage(err))
	}

	c.Redirect(StepPath(ctl.Step()), http.StatusSeeOther)
}

func transitionMessage(err error) string {
	switch {
	case errors.Is(err, wizard.ErrNoTestsSelected):
		return "Select at least one test to continue"
	case errors.Is(err, wizard.ErrValidationFailed):
		return "Please fix the highlighted fields"
	case errors.Is(err, wizard.ErrAnalysisInProgress):
		return "The analysis is still running"
	case errors.Is(err, wizard.ErrInvalidTransition):
		return "That page is not available right now"
	default:
		return "Something went wrong, please try again"
	}
}

// Back moves the wizard one step back.
func Back(c flamego.Context, s session.Session, ctl *wizard.Controller) {
	redirectAfter(c, s, ctl, "back", ctl.Back())
}

// Restart discards the session's wizard and starts a new one.
func Restart(c flamego.Context, s session.Session, registry *wizard.Registry, ctl *wizard.Controller) {
	registry.Remove(ctl.ID())

	fresh := registry.Create()
	s.Set(wizardSessionKey, fresh.ID())

	logger.Info("wizard restarted", "old_wizard_id", ctl.ID(), "wizard_id", fresh.ID())
	SetInfoFlash(s, "Your answers were cleared")
	c.Redirect(StepPath(fresh.Step()), http.StatusSeeOther)
}
