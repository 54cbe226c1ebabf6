// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/humaidq/labwise/wizard"
)

func TestGenerateCategoryChart(t *testing.T) {
	t.Parallel()

	chart, err := generateCategoryChart(wizard.CannedResult())
	if err != nil {
		t.Fatalf("generateCategoryChart failed: %v", err)
	}

	for _, want := range []string{"Scores by category", "Mineral balance", "Detoxification"} {
		if !strings.Contains(chart, want) {
			t.Fatalf("expected %q in chart markup", want)
		}
	}
}

func TestFlaggedValues(t *testing.T) {
	t.Parallel()

	zinc := wizard.FieldPath{Test: wizard.TestHair, Section: "essentialMinerals", Field: "zinc"}

	state := wizard.State{
		Tests: wizard.NewTestSet(wizard.TestHair),
		Values: wizard.FormValues{
			calciumPath: 500,
			zinc:        10,
			{Test: wizard.TestBlood, Section: "anemia", Field: "ferritin"}: 1,
		},
	}

	calcium, _ := wizard.LookupField(calciumPath)
	zincField, _ := wizard.LookupField(zinc)

	flagged := flaggedValues(state)

	for _, fv := range flagged {
		if fv.Test != wizard.TestHair.Label() {
			t.Fatalf("expected only selected tests to be flagged, got %#v", fv)
		}
	}

	want := 0
	if s := calcium.ReferenceStatus(500); s == wizard.ReferenceBelow || s == wizard.ReferenceAbove {
		want++
	}

	if s := zincField.ReferenceStatus(10); s == wizard.ReferenceBelow || s == wizard.ReferenceAbove {
		want++
	}

	if len(flagged) != want {
		t.Fatalf("expected %d flagged values, got %#v", want, flagged)
	}
}

func TestResultsRendersCannedAnalysis(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	ctl := controllerAt(t, wizard.StepResults)

	f := newRoutesTestApp(t, s, ctl)
	f.Get("/results", Results)
	f.Post("/results", ViewSupplements)

	rec := performGET(t, f, "/results")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{
		`<div class="score-value">72</div>`,
		"Needs attention",
		"Mineral balance",
		"Key findings",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q on the results page", want)
		}
	}

	assertRedirect(t, performFormPOST(t, f, "/results", url.Values{}), "/supplements")
}

func TestResultsWithoutResultRedirects(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	f := newRoutesTestApp(t, s, controllerAt(t, wizard.StepDataInput))
	f.Get("/results", Results)

	assertRedirect(t, performGET(t, f, "/results"), "/analysis")
}
