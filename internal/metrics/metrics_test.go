package metrics

import (
	"fmt"
	"testing"

	"github.com/Ammaar-Alam/draw-calculator/internal/models"
)

func TestTierFor_Boundaries(t *testing.T) {
	tests := []struct {
		probability int
		want        models.Tier
	}{
		{100, models.TierExcellent},
		{90, models.TierExcellent},
		{89, models.TierGood},
		{70, models.TierGood},
		{69, models.TierFair},
		{50, models.TierFair},
		{49, models.TierLimited},
		{30, models.TierLimited},
		{29, models.TierPoor},
		{0, models.TierPoor},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("p=%d", tt.probability), func(t *testing.T) {
			if got := TierFor(tt.probability); got != tt.want {
				t.Errorf("TierFor(%d) = %s, want %s", tt.probability, got, tt.want)
			}
		})
	}
}

func TestDerive_WorkedExample(t *testing.T) {
	snap := models.Snapshot{
		InitialAhead:          400,
		RemovedSpelman:        60,
		RemovedOtherRes:       40,
		SpelmanCapacity:       120,
		OtherResTopN:          50,
		FinalPositionEstimate: 300,
		AvailableSingles:      200,
		ProbabilitySingle:     66,
	}

	m := Derive(snap)

	if m.CompetitorRank != 301 {
		t.Errorf("CompetitorRank = %d, want 301", m.CompetitorRank)
	}
	if m.ProbabilityTier != models.TierFair {
		t.Errorf("ProbabilityTier = %s, want Fair", m.ProbabilityTier)
	}

	wantPosition := []models.SeriesPoint{
		{Label: "Initial Ahead", Value: 400},
		{Label: "Final Ahead", Value: 300},
		{Label: "Available Singles", Value: 200},
	}
	assertSeries(t, "PositionSeries", m.PositionSeries, wantPosition)

	wantRemoval := []models.SeriesPoint{
		{Label: "Spelman Draw (Top 120)", Value: 60},
		{Label: "Other Res Colleges (Top 50)", Value: 40},
	}
	assertSeries(t, "RemovalSeries", m.RemovalSeries, wantRemoval)
}

func TestDerive_ProbabilitySeries(t *testing.T) {
	snap := models.Snapshot{ProbabilitySingle: 72}
	m := Derive(snap)

	want := []models.SeriesPoint{
		{Label: "Chance of Getting a Single", Value: 72},
		{Label: "Chance of Not Getting a Single", Value: 28},
	}
	assertSeries(t, "ProbabilitySeries", m.ProbabilitySeries, want)
}

func TestDerive_ProbabilitySeriesSumsTo100(t *testing.T) {
	for p := 0; p <= 100; p++ {
		m := Derive(models.Snapshot{ProbabilitySingle: p})
		sum := m.ProbabilitySeries[0].Value + m.ProbabilitySeries[1].Value
		if sum != 100 {
			t.Fatalf("probability series for p=%d sums to %d, want 100", p, sum)
		}
	}
}

func TestDerive_CompetitorRank(t *testing.T) {
	for _, final := range []int{0, 1, 299, 5000} {
		m := Derive(models.Snapshot{FinalPositionEstimate: final})
		if m.CompetitorRank != final+1 {
			t.Errorf("CompetitorRank for final=%d is %d, want %d", final, m.CompetitorRank, final+1)
		}
	}
}

func TestDerive_DefaultSnapshot(t *testing.T) {
	m := Derive(models.DefaultSnapshot())

	if m.ProbabilityTier != models.TierPoor {
		t.Errorf("ProbabilityTier = %s, want Poor", m.ProbabilityTier)
	}
	if m.CompetitorRank != 1 {
		t.Errorf("CompetitorRank = %d, want 1", m.CompetitorRank)
	}
	if m.ProbabilitySeries[0].Value != 0 || m.ProbabilitySeries[1].Value != 100 {
		t.Errorf("ProbabilitySeries = %v, want values 0 and 100", m.ProbabilitySeries)
	}
}

func assertSeries(t *testing.T, name string, got, want []models.SeriesPoint) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s has %d points, want %d", name, len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s[%d] = %+v, want %+v", name, i, got[i], want[i])
		}
	}
}
