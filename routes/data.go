/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/humaidq/labwise/wizard"
)

// FieldView is one input on the data entry page.
type FieldView struct {
	Path     string
	Label    string
	Unit     string
	Range    string
	Required bool
	Value    string
	Error    string
	Status   string
}

// SectionView groups the inputs of one schema section.
type SectionView struct {
	Title  string
	Fields []FieldView
}

// TestView is one selected test on the data entry page.
type TestView struct {
	Type     wizard.TestType
	Label    string
	Sections []SectionView
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func buildTestViews(state wizard.State) []TestView {
	views := make([]TestView, 0, state.Tests.Len())

	for _, test := range state.Tests.Tests() {
		view := TestView{Type: test, Label: test.Label()}

		for _, section := range wizard.SchemaFor(test) {
			sv := SectionView{Title: section.Title, Fields: make([]FieldView, 0, len(section.Fields))}

			for _, field := range section.Fields {
				path := wizard.FieldPath{Test: test, Section: section.Key, Field: field.Key}
				fv := FieldView{
					Path:     path.String(),
					Label:    field.Label,
					Unit:     field.Unit,
					Range:    field.Range,
					Required: field.Required,
					Error:    state.Errors[path.String()],
				}

				if v, ok := state.Values.Get(path); ok {
					fv.Value = formatValue(v)
					fv.Status = field.ReferenceStatus(v).String()
				}

				sv.Fields = append(sv.Fields, fv)
			}

			view.Sections = append(view.Sections, sv)
		}

		views = append(views, view)
	}

	return views
}

// DataInput renders the lab value form for the selected tests.
func DataInput(t template.Template, data template.Data, ctl *wizard.Controller) {
	state := ctl.Snapshot()
	setStepData(data, state)

	data["Tests"] = buildTestViews(state)
	data["GeneralError"] = state.Errors.General()
	data["MaxValue"] = wizard.MaxFieldValue

	t.HTML(http.StatusOK, "data")
}

// parseFormValues reads every schema field of the selected tests from form.
// Blank and non-numeric inputs are left out.
func parseFormValues(get func(string) string, tests wizard.TestSet) wizard.FormValues {
	values := make(wizard.FormValues)

	for _, test := range tests.Tests() {
		for _, path := range wizard.AllPaths(test) {
			entry, err := wizard.ValidateField(path, get(path.String()))
			if err != nil || !entry.Set {
				continue
			}

			values[path] = entry.Value
		}
	}

	return values
}

// ConfirmData stores the submitted lab values and moves on when they are valid.
func ConfirmData(c flamego.Context, s session.Session, ctl *wizard.Controller) {
	if err := c.Request().ParseForm(); err != nil {
		logger.Warn("Error parsing form", "error", err)
		SetErrorFlash(s, "Failed to parse form")
		c.Redirect(StepPath(ctl.Step()), http.StatusSeeOther)

		return
	}

	errs, err := ctl.ConfirmDataFrom(func(tests wizard.TestSet) wizard.FormValues {
		return parseFormValues(c.Request().Form.Get, tests)
	})
	if errors.Is(err, wizard.ErrValidationFailed) {
		logRejectedTransition(c, s, "confirm data", err, "error_count", len(errs))
		SetErrorFlash(s, transitionMessage(err))
		c.Redirect(StepPath(wizard.StepDataInput), http.StatusSeeOther)

		return
	}

	redirectAfter(c, s, ctl, "confirm data", err)
}

// FieldResponse is the JSON reply to a single field edit.
type FieldResponse struct {
	Path   string            `json:"path"`
	Value  *float64          `json:"value"`
	Error  string            `json:"error"`
	Errors map[string]string `json:"errors"`
}

// EditField validates and stores one field while the user types.
func EditField(c flamego.Context, ctl *wizard.Controller) {
	if err := c.Request().ParseForm(); err != nil {
		writeJSONError(c, http.StatusBadRequest, "failed to parse form")
		return
	}

	path, err := wizard.ParseFieldPath(c.Request().Form.Get("path"))
	if err != nil {
		writeJSONError(c, http.StatusBadRequest, "unknown field")
		return
	}

	entry, err := ctl.EditField(path, c.Request().Form.Get("value"))
	switch {
	case errors.Is(err, wizard.ErrInvalidTransition):
		writeJSONError(c, http.StatusConflict, "lab values cannot be edited on this step")
		return
	case errors.Is(err, wizard.ErrTestNotSelected):
		writeJSONError(c, http.StatusBadRequest, "test not selected")
		return
	case err != nil:
		writeJSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	resp := FieldResponse{
		Path:   path.String(),
		Error:  entry.Problem,
		Errors: ctl.Snapshot().Errors,
	}

	if entry.Set {
		v := entry.Value
		resp.Value = &v
	}

	writeJSON(c, resp)
}

func writeJSON(c flamego.Context, payload any) {
	c.ResponseWriter().Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(c.ResponseWriter()).Encode(payload); err != nil {
		logger.Error("Error encoding JSON response", "error", err)
	}
}

func writeJSONError(c flamego.Context, status int, message string) {
	c.ResponseWriter().Header().Set("Content-Type", "application/json")
	c.ResponseWriter().WriteHeader(status)

	if err := json.NewEncoder(c.ResponseWriter()).Encode(map[string]string{"error": message}); err != nil {
		logger.Error("Error encoding JSON error", "error", err)
	}
}
