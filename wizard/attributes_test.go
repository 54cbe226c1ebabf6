// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package wizard

import (
	"math"
	"slices"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	in := PersonalAttributes{
		Age:    41,
		Gender: "other",
		Lifestyle: Lifestyle{
			ActivityLevel: "extreme",
			StressLevel:   0,
			SmokingStatus: "sometimes",
			AlcoholIntake: "daily",
		},
		HealthConditions: HealthConditions{
			ChronicDiseases:     []string{"Diabetes", " Diabetes ", "", "Anaemia"},
			PregnancyStatus:     true,
			BreastfeedingStatus: true,
		},
		DietaryPreferences: DietaryPreferences{DietType: "keto"},
	}

	got := in.Normalize()
	def := DefaultPersonalAttributes()

	if got.Gender != def.Gender {
		t.Fatalf("expected default gender, got %q", got.Gender)
	}

	if got.Lifestyle.ActivityLevel != def.Lifestyle.ActivityLevel ||
		got.Lifestyle.SmokingStatus != def.Lifestyle.SmokingStatus ||
		got.Lifestyle.AlcoholIntake != def.Lifestyle.AlcoholIntake ||
		got.DietaryPreferences.DietType != def.DietaryPreferences.DietType {
		t.Fatalf("expected default enums, got %#v", got)
	}

	if got.Lifestyle.StressLevel != MinStressLevel {
		t.Fatalf("expected stress level clamped to %d, got %d", MinStressLevel, got.Lifestyle.StressLevel)
	}

	if !slices.Equal(got.HealthConditions.ChronicDiseases, []string{"Diabetes", "Anaemia"}) {
		t.Fatalf("unexpected diseases: %v", got.HealthConditions.ChronicDiseases)
	}

	if got.Age != 41 {
		t.Fatalf("age changed to %d", got.Age)
	}
}

func TestNormalizeFemaleOnlyFlags(t *testing.T) {
	t.Parallel()

	female := DefaultPersonalAttributes()
	female.HealthConditions.PregnancyStatus = true

	if !female.Normalize().HealthConditions.PregnancyStatus {
		t.Fatal("expected pregnancy flag to be kept for female")
	}

	male := female
	male.Gender = GenderMale

	if male.Normalize().HealthConditions.PregnancyStatus {
		t.Fatal("expected pregnancy flag to be dropped for male")
	}
}

func TestBMI(t *testing.T) {
	t.Parallel()

	attrs := DefaultPersonalAttributes()
	if got := attrs.BMI(); math.Abs(got-22.04) > 0.01 {
		t.Fatalf("BMI = %.2f, want 22.04", got)
	}

	attrs.Height = 0
	if attrs.BMI() != 0 {
		t.Fatal("expected zero BMI without height")
	}
}
