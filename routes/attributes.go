/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"encoding/gob"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/humaidq/labwise/wizard"
)

// attributesDraftKey holds a rejected attributes form until the next render.
const attributesDraftKey = "attributes_draft"

// Plausible ranges accepted by the attributes form. The template repeats them
// as min and max on the inputs.
const (
	minAge, maxAge       = 1, 120
	minWeight, maxWeight = 10.0, 300.0
	minHeight, maxHeight = 50.0, 250.0
	minSleep, maxSleep   = 0.0, 24.0
)

func init() {
	gob.Register(url.Values{})
}

// Attributes renders the personal attributes form, prefilled with the stored
// answers or the defaults. A form rejected by ConfirmAttributes is shown
// once as submitted.
func Attributes(t template.Template, data template.Data, s session.Session, ctl *wizard.Controller) {
	state := ctl.Snapshot()
	setStepData(data, state)

	attrs := state.Attributes
	if draft, ok := s.Get(attributesDraftKey).(url.Values); ok {
		s.Delete(attributesDraftKey)
		attrs = draftAttributes(draft, attrs)
	}

	data["Attrs"] = attrs
	data["BMI"] = fmt.Sprintf("%.1f", attrs.BMI())
	data["ActivityOptions"] = wizard.ActivityOptions
	data["SmokingOptions"] = wizard.SmokingOptions
	data["AlcoholOptions"] = wizard.AlcoholOptions
	data["DietOptions"] = wizard.DietOptions
	data["Diseases"] = checkboxes(wizard.CommonDiseases, attrs.HealthConditions.ChronicDiseases)
	data["Medications"] = checkboxes(wizard.CommonMedications, attrs.HealthConditions.Medications)
	data["Supplements"] = checkboxes(wizard.CommonSupplements, attrs.DietaryPreferences.SupplementsCurrently)
	data["OtherDiseases"] = strings.Join(extras(wizard.CommonDiseases, attrs.HealthConditions.ChronicDiseases), ", ")
	data["Allergies"] = strings.Join(attrs.HealthConditions.Allergies, ", ")
	data["Restrictions"] = strings.Join(attrs.DietaryPreferences.Restrictions, ", ")
	data["StressLevels"] = []int{1, 2, 3, 4, 5}

	t.HTML(http.StatusOK, "attributes")
}

// Checkbox is one entry of a multi-select list.
type Checkbox struct {
	Value   string
	Checked bool
}

func checkboxes(options, selected []string) []Checkbox {
	out := make([]Checkbox, 0, len(options))
	for _, option := range options {
		out = append(out, Checkbox{Value: option, Checked: slices.Contains(selected, option)})
	}

	return out
}

func extras(options, selected []string) []string {
	var out []string

	for _, value := range selected {
		if !slices.Contains(options, value) {
			out = append(out, value)
		}
	}

	return out
}

func splitList(value string) []string {
	var out []string

	for _, part := range strings.FieldsFunc(value, func(r rune) bool { return r == ',' || r == '\n' }) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}

func parseIntField(form url.Values, key string, low, high int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(form.Get(key)))
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errInvalidNumber, key)
	}

	if n < low || n > high {
		return 0, fmt.Errorf("%w: %s must be between %d and %d", errNumberOutOfSpan, key, low, high)
	}

	return n, nil
}

func parseFloatField(form url.Values, key string, low, high float64) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(form.Get(key)), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errInvalidNumber, key)
	}

	if f < low || f > high {
		return 0, fmt.Errorf("%w: %s must be between %g and %g", errNumberOutOfSpan, key, low, high)
	}

	return f, nil
}

func parseOption(form url.Values, key string, options []wizard.Option) (string, error) {
	value := strings.TrimSpace(form.Get(key))
	for _, option := range options {
		if option.Value == value {
			return value, nil
		}
	}

	return "", fmt.Errorf("%w: %s=%q", errUnknownOption, key, value)
}

var genderOptions = []wizard.Option{
	{Value: string(wizard.GenderFemale), Label: "Female"},
	{Value: string(wizard.GenderMale), Label: "Male"},
}

// parseAttributes reads the attributes form. Number fields must be present
// and plausible; every choice must be one of the offered options.
func parseAttributes(form url.Values) (wizard.PersonalAttributes, error) {
	var (
		attrs wizard.PersonalAttributes
		err   error
		value string
	)

	if attrs.Age, err = parseIntField(form, "age", minAge, maxAge); err != nil {
		return attrs, err
	}

	if attrs.Weight, err = parseFloatField(form, "weight", minWeight, maxWeight); err != nil {
		return attrs, err
	}

	if attrs.Height, err = parseFloatField(form, "height", minHeight, maxHeight); err != nil {
		return attrs, err
	}

	if attrs.Lifestyle.StressLevel, err = parseIntField(form, "stress_level", wizard.MinStressLevel, wizard.MaxStressLevel); err != nil {
		return attrs, err
	}

	if attrs.Lifestyle.SleepHours, err = parseFloatField(form, "sleep_hours", minSleep, maxSleep); err != nil {
		return attrs, err
	}

	if value, err = parseOption(form, "gender", genderOptions); err != nil {
		return attrs, err
	}

	attrs.Gender = wizard.Gender(value)

	if value, err = parseOption(form, "activity_level", wizard.ActivityOptions); err != nil {
		return attrs, err
	}

	attrs.Lifestyle.ActivityLevel = wizard.ActivityLevel(value)

	if value, err = parseOption(form, "smoking_status", wizard.SmokingOptions); err != nil {
		return attrs, err
	}

	attrs.Lifestyle.SmokingStatus = wizard.SmokingStatus(value)

	if value, err = parseOption(form, "alcohol_intake", wizard.AlcoholOptions); err != nil {
		return attrs, err
	}

	attrs.Lifestyle.AlcoholIntake = wizard.AlcoholIntake(value)

	if value, err = parseOption(form, "diet_type", wizard.DietOptions); err != nil {
		return attrs, err
	}

	attrs.DietaryPreferences.DietType = wizard.DietType(value)

	setAttributeLists(&attrs, form)

	return attrs, nil
}

func setAttributeLists(attrs *wizard.PersonalAttributes, form url.Values) {
	attrs.HealthConditions.ChronicDiseases = slices.Concat(form["chronic_diseases"], splitList(form.Get("other_diseases")))
	attrs.HealthConditions.Medications = form["medications"]
	attrs.HealthConditions.Allergies = splitList(form.Get("allergies"))
	attrs.HealthConditions.PregnancyStatus = form.Get("pregnancy") == "on"
	attrs.HealthConditions.BreastfeedingStatus = form.Get("breastfeeding") == "on"
	attrs.DietaryPreferences.Restrictions = splitList(form.Get("restrictions"))
	attrs.DietaryPreferences.SupplementsCurrently = form["supplements_current"]
}

// draftAttributes overlays whatever parses in a rejected form onto base.
// Numbers are kept even when out of range so the user sees what to fix;
// unknown choices fall back to base.
func draftAttributes(form url.Values, base wizard.PersonalAttributes) wizard.PersonalAttributes {
	attrs := base

	if n, err := strconv.Atoi(strings.TrimSpace(form.Get("age"))); err == nil {
		attrs.Age = n
	}

	if n, err := strconv.Atoi(strings.TrimSpace(form.Get("stress_level"))); err == nil {
		attrs.Lifestyle.StressLevel = n
	}

	for key, dst := range map[string]*float64{
		"weight":      &attrs.Weight,
		"height":      &attrs.Height,
		"sleep_hours": &attrs.Lifestyle.SleepHours,
	} {
		if f, err := strconv.ParseFloat(strings.TrimSpace(form.Get(key)), 64); err == nil {
			*dst = f
		}
	}

	if value, err := parseOption(form, "gender", genderOptions); err == nil {
		attrs.Gender = wizard.Gender(value)
	}

	if value, err := parseOption(form, "activity_level", wizard.ActivityOptions); err == nil {
		attrs.Lifestyle.ActivityLevel = wizard.ActivityLevel(value)
	}

	if value, err := parseOption(form, "smoking_status", wizard.SmokingOptions); err == nil {
		attrs.Lifestyle.SmokingStatus = wizard.SmokingStatus(value)
	}

	if value, err := parseOption(form, "alcohol_intake", wizard.AlcoholOptions); err == nil {
		attrs.Lifestyle.AlcoholIntake = wizard.AlcoholIntake(value)
	}

	if value, err := parseOption(form, "diet_type", wizard.DietOptions); err == nil {
		attrs.DietaryPreferences.DietType = wizard.DietType(value)
	}

	setAttributeLists(&attrs, form)

	return attrs
}

// ConfirmAttributes stores the personal attributes and starts the analysis.
func ConfirmAttributes(c flamego.Context, s session.Session, ctl *wizard.Controller) {
	if err := c.Request().ParseForm(); err != nil {
		logger.Warn("Error parsing form", "error", err)
		SetErrorFlash(s, "Failed to parse form")
		c.Redirect(StepPath(ctl.Step()), http.StatusSeeOther)

		return
	}

	attrs, err := parseAttributes(c.Request().Form)
	if err != nil {
		logRejectedTransition(c, s, "confirm attributes", err)
		s.Set(attributesDraftKey, c.Request().PostForm)
		SetErrorFlash(s, "Please check your details: "+err.Error())
		c.Redirect(StepPath(ctl.Step()), http.StatusSeeOther)

		return
	}

	s.Delete(attributesDraftKey)
	redirectAfter(c, s, ctl, "confirm attributes", ctl.ConfirmAttributes(attrs))
}
