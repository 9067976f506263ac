package models

// SeriesPoint is one labeled value in an ordered chart series. The rendering
// layer consumes these as-is; order is significant.
type SeriesPoint struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Tier is the qualitative bucket for a single-room probability.
type Tier string

const (
	TierExcellent Tier = "Excellent"
	TierGood      Tier = "Good"
	TierFair      Tier = "Fair"
	TierLimited   Tier = "Limited"
	TierPoor      Tier = "Poor"
)

// DerivedMetrics holds everything the dashboard displays that is not a raw
// Snapshot field. It is recomputed whenever the Snapshot changes (at most
// once per session) and never mutated afterwards.
type DerivedMetrics struct {
	CompetitorRank    int           `json:"competitorRank"` // FinalPositionEstimate + 1
	ProbabilityTier   Tier          `json:"probabilityTier"`
	PositionSeries    []SeriesPoint `json:"positionSeries"`
	RemovalSeries     []SeriesPoint `json:"removalSeries"`
	ProbabilitySeries []SeriesPoint `json:"probabilitySeries"`
}
