/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package wizard

import "strings"

// Gender of the person the lab values belong to.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ActivityLevel describes weekly exercise habits.
type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "sedentary"
	ActivityLight     ActivityLevel = "light"
	ActivityModerate  ActivityLevel = "moderate"
	ActivityVigorous  ActivityLevel = "vigorous"
)

// SmokingStatus describes tobacco use.
type SmokingStatus string

const (
	SmokingNever   SmokingStatus = "never"
	SmokingFormer  SmokingStatus = "former"
	SmokingCurrent SmokingStatus = "current"
)

// AlcoholIntake describes drinking habits.
type AlcoholIntake string

const (
	AlcoholNone     AlcoholIntake = "none"
	AlcoholLight    AlcoholIntake = "light"
	AlcoholModerate AlcoholIntake = "moderate"
	AlcoholHeavy    AlcoholIntake = "heavy"
)

// DietType is the general eating pattern.
type DietType string

const (
	DietOmnivore    DietType = "omnivore"
	DietVegetarian  DietType = "vegetarian"
	DietVegan       DietType = "vegan"
	DietPescatarian DietType = "pescatarian"
)

const (
	MinStressLevel = 1
	MaxStressLevel = 5
)

// Lifestyle groups daily habits.
type Lifestyle struct {
	ActivityLevel ActivityLevel
	StressLevel   int
	SleepHours    float64
	SmokingStatus SmokingStatus
	AlcoholIntake AlcoholIntake
}

// HealthConditions groups medical history. Pregnancy and breastfeeding only
// apply when Gender is female.
type HealthConditions struct {
	ChronicDiseases     []string
	Medications         []string
	Allergies           []string
	PregnancyStatus     bool
	BreastfeedingStatus bool
}

// DietaryPreferences groups eating habits and current supplements.
type DietaryPreferences struct {
	DietType             DietType
	Restrictions         []string
	SupplementsCurrently []string
}

// PersonalAttributes is collected once per session on the attributes step.
type PersonalAttributes struct {
	Age                int
	Gender             Gender
	Weight             float64
	Height             float64
	Lifestyle          Lifestyle
	HealthConditions   HealthConditions
	DietaryPreferences DietaryPreferences
}

// DefaultPersonalAttributes returns the values every session starts with.
func DefaultPersonalAttributes() PersonalAttributes {
	return PersonalAttributes{
		Age:    30,
		Gender: GenderFemale,
		Weight: 60,
		Height: 165,
		Lifestyle: Lifestyle{
			ActivityLevel: ActivityModerate,
			StressLevel:   3,
			SleepHours:    7,
			SmokingStatus: SmokingNever,
			AlcoholIntake: AlcoholLight,
		},
		DietaryPreferences: DietaryPreferences{
			DietType: DietOmnivore,
		},
	}
}

// Normalize replaces unknown enum values with defaults, clamps the stress
// level, drops female-only flags for other genders and deduplicates the free
// text sets.
func (a PersonalAttributes) Normalize() PersonalAttributes {
	def := DefaultPersonalAttributes()

	if a.Gender != GenderMale && a.Gender != GenderFemale {
		a.Gender = def.Gender
	}

	switch a.Lifestyle.ActivityLevel {
	case ActivitySedentary, ActivityLight, ActivityModerate, ActivityVigorous:
	default:
		a.Lifestyle.ActivityLevel = def.Lifestyle.ActivityLevel
	}

	switch a.Lifestyle.SmokingStatus {
	case SmokingNever, SmokingFormer, SmokingCurrent:
	default:
		a.Lifestyle.SmokingStatus = def.Lifestyle.SmokingStatus
	}

	switch a.Lifestyle.AlcoholIntake {
	case AlcoholNone, AlcoholLight, AlcoholModerate, AlcoholHeavy:
	default:
		a.Lifestyle.AlcoholIntake = def.Lifestyle.AlcoholIntake
	}

	switch a.DietaryPreferences.DietType {
	case DietOmnivore, DietVegetarian, DietVegan, DietPescatarian:
	default:
		a.DietaryPreferences.DietType = def.DietaryPreferences.DietType
	}

	a.Lifestyle.StressLevel = min(max(a.Lifestyle.StressLevel, MinStressLevel), MaxStressLevel)

	if a.Gender != GenderFemale {
		a.HealthConditions.PregnancyStatus = false
		a.HealthConditions.BreastfeedingStatus = false
	}

	a.HealthConditions.ChronicDiseases = uniqueStrings(a.HealthConditions.ChronicDiseases)
	a.HealthConditions.Medications = uniqueStrings(a.HealthConditions.Medications)
	a.HealthConditions.Allergies = uniqueStrings(a.HealthConditions.Allergies)
	a.DietaryPreferences.Restrictions = uniqueStrings(a.DietaryPreferences.Restrictions)
	a.DietaryPreferences.SupplementsCurrently = uniqueStrings(a.DietaryPreferences.SupplementsCurrently)

	return a
}

// BMI returns the body mass index, or 0 when height is unknown.
func (a PersonalAttributes) BMI() float64 {
	if a.Height <= 0 || a.Weight <= 0 {
		return 0
	}

	m := a.Height / 100

	return a.Weight / (m * m)
}

func uniqueStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))

	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		if _, ok := seen[value]; ok {
			continue
		}

		seen[value] = struct{}{}
		out = append(out, value)
	}

	if len(out) == 0 {
		return nil
	}

	return out
}

// Option is a selectable value with a label, used by the attributes form.
type Option struct {
	Value       string
	Label       string
	Description string
}

// ActivityOptions lists activity levels with their descriptions.
var ActivityOptions = []Option{
	{Value: string(ActivitySedentary), Label: "Sedentary", Description: "Desk work, no exercise habit"},
	{Value: string(ActivityLight), Label: "Light", Description: "Light exercise 1-2 times a week"},
	{Value: string(ActivityModerate), Label: "Moderate", Description: "Moderate exercise 3-4 times a week"},
	{Value: string(ActivityVigorous), Label: "Vigorous", Description: "Intense exercise 5 or more times a week"},
}

// SmokingOptions lists smoking statuses.
var SmokingOptions = []Option{
	{Value: string(SmokingNever), Label: "Never"},
	{Value: string(SmokingFormer), Label: "Former"},
	{Value: string(SmokingCurrent), Label: "Current"},
}

// AlcoholOptions lists alcohol intake levels.
var AlcoholOptions = []Option{
	{Value: string(AlcoholNone), Label: "None"},
	{Value: string(AlcoholLight), Label: "Light"},
	{Value: string(AlcoholModerate), Label: "Moderate"},
	{Value: string(AlcoholHeavy), Label: "Heavy"},
}

// DietOptions lists diet types.
var DietOptions = []Option{
	{Value: string(DietOmnivore), Label: "Omnivore"},
	{Value: string(DietVegetarian), Label: "Vegetarian"},
	{Value: string(DietVegan), Label: "Vegan"},
	{Value: string(DietPescatarian), Label: "Pescatarian"},
}

// CommonDiseases are offered as checkboxes on the attributes form.
var CommonDiseases = []string{
	"Hypertension", "Diabetes", "Dyslipidaemia", "Thyroid disease", "Anaemia",
	"Osteoporosis", "Arthritis", "Allergic disease", "Digestive disorder", "Heart disease",
}

// CommonMedications are offered as checkboxes on the attributes form.
var CommonMedications = []string{
	"Antihypertensives", "Glucose-lowering drugs", "Statins", "Thyroid hormone",
	"Iron tablets", "Vitamin D", "Calcium preparations", "Antihistamines", "Antacids",
}

// CommonSupplements are offered as checkboxes on the attributes form.
var CommonSupplements = []string{
	"Multivitamin", "Vitamin D", "Vitamin C", "Vitamin B complex",
	"Iron", "Calcium", "Magnesium", "Zinc", "Omega-3",
	"Probiotics", "Coenzyme Q10", "Protein",
}
