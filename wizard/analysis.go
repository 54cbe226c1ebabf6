/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package wizard

import (
	"context"
	"time"
)

// DefaultAnalysisDelay is how long the canned analysis pretends to work.
const DefaultAnalysisDelay = 3 * time.Second

// CategoryScores breaks the overall score down by area.
type CategoryScores struct {
	MineralBalance    int
	VitaminStatus     int
	MetabolicFunction int
	Detoxification    int
}

// CategoryScore is a named score, in display order.
type CategoryScore struct {
	Key   string
	Label string
	Score int
}

// List returns the category scores in display order.
func (c CategoryScores) List() []CategoryScore {
	return []CategoryScore{
		{Key: "mineralBalance", Label: "Mineral balance", Score: c.MineralBalance},
		{Key: "vitaminStatus", Label: "Vitamin status", Score: c.VitaminStatus},
		{Key: "metabolicFunction", Label: "Metabolic function", Score: c.MetabolicFunction},
		{Key: "detoxification", Label: "Detoxification", Score: c.Detoxification},
	}
}

// AnalysisResult is what the analysis step produces for the results step.
type AnalysisResult struct {
	OverallScore    int
	CategoryScores  CategoryScores
	KeyFindings     []string
	Recommendations []string
	RiskFactors     []string
}

// ScoreBand groups a 0-100 score for display.
type ScoreBand string

const (
	BandGood      ScoreBand = "good"
	BandAttention ScoreBand = "attention"
	BandImprove   ScoreBand = "improve"
)

// BandFor returns the display band of a score.
func BandFor(score int) ScoreBand {
	switch {
	case score >= 80:
		return BandGood
	case score >= 60:
		return BandAttention
	default:
		return BandImprove
	}
}

// Label is the text shown next to a score in this band.
func (b ScoreBand) Label() string {
	switch b {
	case BandGood:
		return "Good"
	case BandAttention:
		return "Needs attention"
	default:
		return "Needs improvement"
	}
}

// Summary is a one-sentence explanation of an overall score in this band.
func (b ScoreBand) Summary() string {
	switch b {
	case BandGood:
		return "Your nutritional status is in good shape overall."
	case BandAttention:
		return "Some nutrients need attention; targeted supplementation can help."
	default:
		return "Several areas need improvement; consider professional advice."
	}
}

// AnalysisInput is the snapshot of answers handed to an Analyzer.
type AnalysisInput struct {
	Tests      TestSet
	Values     FormValues
	Attributes PersonalAttributes
}

// Analyzer turns the collected answers into an AnalysisResult. Implementations
// must return promptly once ctx is done.
type Analyzer interface {
	Analyze(ctx context.Context, in AnalysisInput) (AnalysisResult, error)
}

// AnalyzerFunc adapts a function to the Analyzer interface.
type AnalyzerFunc func(ctx context.Context, in AnalysisInput) (AnalysisResult, error)

// Analyze calls f.
func (f AnalyzerFunc) Analyze(ctx context.Context, in AnalysisInput) (AnalysisResult, error) {
	return f(ctx, in)
}

// CannedAnalyzer waits for Delay and then returns CannedResult. It performs no
// computation on the input.
type CannedAnalyzer struct {
	Delay time.Duration
}

// Analyze implements Analyzer.
func (a CannedAnalyzer) Analyze(ctx context.Context, _ AnalysisInput) (AnalysisResult, error) {
	if a.Delay > 0 {
		timer := time.NewTimer(a.Delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return AnalysisResult{}, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return AnalysisResult{}, err
	}

	return CannedResult(), nil
}

// CannedResult is the fixed analysis shown to every user.
func CannedResult() AnalysisResult {
	return AnalysisResult{
		OverallScore: 72,
		CategoryScores: CategoryScores{
			MineralBalance:    68,
			VitaminStatus:     75,
			MetabolicFunction: 70,
			Detoxification:    76,
		},
		KeyFindings: []string{
			"Magnesium deficiency linked to muscle tension and fatigue",
			"Low vitamin D affecting bone metabolism",
			"Low zinc level, a concern for immune function",
			"Iron deficiency with a mild tendency towards anaemia",
		},
		Recommendations: []string{
			"Do about 30 minutes of aerobic exercise three times a week",
			"Aim for enough sleep (7-8 hours)",
			"Practise relaxation techniques to manage stress",
			"Follow up with regular blood tests",
		},
	}
}
