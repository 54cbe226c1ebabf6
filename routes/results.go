/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"net/http"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/humaidq/labwise/wizard"
)

// ScoreView is a score with its display band.
type ScoreView struct {
	Label string
	Score int
	Band  wizard.ScoreBand
}

// FlaggedValue is an entered value outside its reference range.
type FlaggedValue struct {
	Test   string
	Label  string
	Value  string
	Unit   string
	Range  string
	Status string
}

func generateCategoryChart(result wizard.AnalysisResult) (string, error) {
	scores := result.CategoryScores.List()

	labels := make([]string, 0, len(scores))
	values := make([]opts.BarData, 0, len(scores))

	for _, score := range scores {
		labels = append(labels, score.Label)
		values = append(values, opts.BarData{Value: score.Score})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "100%",
			Height: "320px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Scores by category",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Min: 0,
			Max: 100,
		}),
	)

	bar.SetXAxis(labels).
		AddSeries("Score", values).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show:     opts.Bool(true),
				Position: "top",
			}),
			charts.WithMarkLineNameYAxisItemOpts(
				opts.MarkLineNameYAxisItem{Name: "Good", YAxis: 80},
			),
		)

	var buf bytes.Buffer
	if err := bar.Render(&buf); err != nil {
		return "", fmt.Errorf("failed to render chart: %w", err)
	}

	return buf.String(), nil
}

func flaggedValues(state wizard.State) []FlaggedValue {
	var out []FlaggedValue

	for _, test := range state.Tests.Tests() {
		for _, path := range wizard.AllPaths(test) {
			v, ok := state.Values.Get(path)
			if !ok {
				continue
			}

			field, _ := wizard.LookupField(path)

			status := field.ReferenceStatus(v)
			if status != wizard.ReferenceBelow && status != wizard.ReferenceAbove {
				continue
			}

			out = append(out, FlaggedValue{
				Test:   test.Label(),
				Label:  field.Label,
				Value:  formatValue(v),
				Unit:   field.Unit,
				Range:  field.Range,
				Status: status.String(),
			})
		}
	}

	return out
}

// Results renders the analysis outcome.
func Results(c flamego.Context, s session.Session, t template.Template, data template.Data, ctl *wizard.Controller) {
	state := ctl.Snapshot()
	if state.Result == nil {
		logRejectedTransition(c, s, "view results", wizard.ErrInvalidTransition)
		c.Redirect(StepPath(wizard.StepAnalysis), http.StatusSeeOther)

		return
	}

	setStepData(data, state)

	result := *state.Result
	band := wizard.BandFor(result.OverallScore)

	data["Result"] = result
	data["Overall"] = ScoreView{Label: "Overall", Score: result.OverallScore, Band: band}
	data["Summary"] = band.Summary()

	categories := make([]ScoreView, 0, 4)
	for _, score := range result.CategoryScores.List() {
		categories = append(categories, ScoreView{Label: score.Label, Score: score.Score, Band: wizard.BandFor(score.Score)})
	}

	data["Categories"] = categories
	data["Flagged"] = flaggedValues(state)

	chart, err := generateCategoryChart(result)
	if err != nil {
		logger.Error("Error generating category chart", "error", err)
	} else {
		data["Chart"] = htmltemplate.HTML(chart) //nolint:gosec // Chart markup comes from go-echarts.
	}

	t.HTML(http.StatusOK, "results")
}

// ViewSupplements moves on to the supplement list.
func ViewSupplements(c flamego.Context, s session.Session, ctl *wizard.Controller) {
	redirectAfter(c, s, ctl, "view supplements", ctl.ViewSupplements())
}
