// Package metrics turns a raw Snapshot into the values the dashboard
// displays. Derive is pure and total: no I/O, no failure modes, same output
// for the same input.
package metrics

import (
	"fmt"

	"github.com/Ammaar-Alam/draw-calculator/internal/models"
)

// TierFor buckets a single-room probability percentage into its qualitative
// tier. Thresholds are evaluated top-down, first match wins.
func TierFor(probability int) models.Tier {
	switch {
	case probability >= 90:
		return models.TierExcellent
	case probability >= 70:
		return models.TierGood
	case probability >= 50:
		return models.TierFair
	case probability >= 30:
		return models.TierLimited
	default:
		return models.TierPoor
	}
}

// Derive computes the display metrics for a snapshot: the user's competitor
// rank, the probability tier, and the three ordered chart series. Upstream
// fields (FinalPositionEstimate, ProbabilitySingle) are trusted as given; an
// out-of-range probability propagates into the complement unclamped.
func Derive(s models.Snapshot) models.DerivedMetrics {
	return models.DerivedMetrics{
		CompetitorRank:  s.FinalPositionEstimate + 1,
		ProbabilityTier: TierFor(s.ProbabilitySingle),
		PositionSeries: []models.SeriesPoint{
			{Label: "Initial Ahead", Value: s.InitialAhead},
			{Label: "Final Ahead", Value: s.FinalPositionEstimate},
			{Label: "Available Singles", Value: s.AvailableSingles},
		},
		RemovalSeries: []models.SeriesPoint{
			{Label: fmt.Sprintf("Spelman Draw (Top %d)", s.SpelmanCapacity), Value: s.RemovedSpelman},
			{Label: fmt.Sprintf("Other Res Colleges (Top %d)", s.OtherResTopN), Value: s.RemovedOtherRes},
		},
		ProbabilitySeries: []models.SeriesPoint{
			{Label: "Chance of Getting a Single", Value: s.ProbabilitySingle},
			{Label: "Chance of Not Getting a Single", Value: 100 - s.ProbabilitySingle},
		},
	}
}
