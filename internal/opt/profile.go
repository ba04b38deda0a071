package opt

import (
	"math"
	"sort"

	"greenroute/internal/catalog"
)

// Weights is the urgency-weighted scoring split over the four criteria.
// A valid set sums to 1 within WeightEpsilon.
type Weights struct {
	Time        float64
	Carbon      float64
	Cost        float64
	Reliability float64
}

// WeightEpsilon bounds the accepted deviation of a weight sum from 1.
const WeightEpsilon = 1e-6

// Sum returns the total of the four weights.
func (w Weights) Sum() float64 { return w.Time + w.Carbon + w.Cost + w.Reliability }

// Valid reports whether all weights are non-negative and sum to 1.
func (w Weights) Valid() bool {
	if w.Time < 0 || w.Carbon < 0 || w.Cost < 0 || w.Reliability < 0 {
		return false
	}
	return math.Abs(w.Sum()-1) <= WeightEpsilon
}

// Urgency presets. Express trades carbon and cost for speed, green does the
// opposite, standard sits between.
var urgencyWeights = map[string]Weights{
	"express":  {Time: 0.50, Carbon: 0.10, Cost: 0.20, Reliability: 0.20},
	"standard": {Time: 0.25, Carbon: 0.30, Cost: 0.25, Reliability: 0.20},
	"economy":  {Time: 0.10, Carbon: 0.25, Cost: 0.45, Reliability: 0.20},
	"green":    {Time: 0.10, Carbon: 0.50, Cost: 0.20, Reliability: 0.20},
}

// WeightsFor returns the preset weights for a named urgency profile.
// Missing names report false rather than falling back to an arbitrary preset.
func WeightsFor(urgency string) (Weights, bool) {
	w, ok := urgencyWeights[urgency]
	return w, ok
}

// UrgencyProfiles lists the available preset names, sorted.
func UrgencyProfiles() []string {
	out := make([]string, 0, len(urgencyWeights))
	for name := range urgencyWeights {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ConstraintProfile carries the hard limits and scoring weights for one
// optimization call. Zero-valued limits are unset; MinReliability of zero
// means any reliability passes.
type ConstraintProfile struct {
	MaxTransitHours   float64
	MaxCostPerKg      float64
	MaxCarbonGPerKg   float64
	MinReliability    float64
	AllowMultiModal   bool
	MaxHandlingPoints int
	Weights           Weights
}

// DefaultConstraints returns a permissive profile with standard urgency.
func DefaultConstraints() ConstraintProfile {
	return ConstraintProfile{
		AllowMultiModal:   true,
		MaxHandlingPoints: 2,
		Weights:           urgencyWeights["standard"],
	}
}

// Request is one shipment to route: endpoints, load, cargo class and the
// business constraints to honor.
type Request struct {
	Origin        string
	Destination   string
	CargoWeightKg float64
	CargoType     catalog.CargoType
	Constraints   ConstraintProfile
}

// ScoringConfig holds the tunable normalization constants used by the
// scorer. These are policy knobs, not physical constants.
type ScoringConfig struct {
	// HandoffHours is the fixed transfer delay charged per intermediate hub.
	HandoffHours float64
	// TimeCapHours normalizes transit time; anything slower scores 0 on time.
	TimeCapHours float64
	// CarbonRefGPerKg normalizes per-kg carbon.
	CarbonRefGPerKg float64
	// CostRefPerKg normalizes per-kg cost.
	CostRefPerKg float64
	// SyntheticAir parameterizes the baseline estimate used when no
	// compatible direct leg exists.
	SyntheticAir SyntheticAirBaseline
}

// SyntheticAirBaseline approximates a single air-freight leg for lanes the
// catalog has no direct service on.
type SyntheticAirBaseline struct {
	DistanceKm        float64
	CarbonGPerTonneKm float64
	CostPerTonneKm    float64
	SpeedKmh          float64
	Reliability       float64
}

// DefaultScoringConfig returns the stock normalization constants.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		HandoffHours:    4,
		TimeCapHours:    168,
		CarbonRefGPerKg: 1000,
		CostRefPerKg:    10,
		SyntheticAir: SyntheticAirBaseline{
			DistanceKm:        8000,
			CarbonGPerTonneKm: 602,
			CostPerTonneKm:    4.2,
			SpeedKmh:          750,
			Reliability:       0.95,
		},
	}
}

// RouteRules is the tunable validity policy applied during candidate
// generation. The rules encode operational judgment, not proven optimality.
type RouteRules struct {
	// MinOceanLegKm rejects ocean legs below this distance as inefficient.
	MinOceanLegKm float64
	// MaxHubFanOut caps how many hubs are expanded for two-leg candidates,
	// keeping worst-case work bounded on dense catalogs.
	MaxHubFanOut int
}

// DefaultRouteRules returns the stock generation policy.
func DefaultRouteRules() RouteRules {
	return RouteRules{MinOceanLegKm: 500, MaxHubFanOut: 8}
}
