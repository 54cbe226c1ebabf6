/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/humaidq/labwise/wizard"
)

// analysisRefreshSeconds is how often the progress page reloads itself.
const analysisRefreshSeconds = 1

// Analysis renders the progress page. While the job runs the page refreshes
// itself; once the job is done RequireStep sends the browser to the results.
func Analysis(t template.Template, data template.Data, ctl *wizard.Controller) {
	state := ctl.Snapshot()
	setStepData(data, state)

	data["Running"] = state.AnalysisRunning
	data["AnalysisError"] = state.AnalysisError

	if state.AnalysisRunning {
		data["RefreshSeconds"] = analysisRefreshSeconds
		data["StartedAgo"] = humanize.Time(state.AnalysisStartedAt)
	}

	data["TestLabels"] = testLabels(state.Tests)

	t.HTML(http.StatusOK, "analysis")
}

// RetryAnalysis starts the analysis again after a failure.
func RetryAnalysis(c flamego.Context, s session.Session, ctl *wizard.Controller) {
	redirectAfter(c, s, ctl, "retry analysis", ctl.RetryAnalysis())
}

func testLabels(tests wizard.TestSet) []string {
	labels := make([]string, 0, tests.Len())
	for _, test := range tests.Tests() {
		labels = append(labels, test.Label())
	}

	return labels
}
