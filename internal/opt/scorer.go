package opt

import (
	"fmt"
	"math"

	"greenroute/internal/catalog"
)

// ScoredRoute is a candidate with aggregated metrics, its constraint
// violations (if any) and the urgency-weighted score. Violating routes carry
// a zero score but are still reported for diagnostics.
type ScoredRoute struct {
	Legs           []catalog.TransportLeg
	TotalCarbonG   float64
	TotalCost      float64
	TotalTimeHours float64
	Reliability    float64
	Score          float64
	Violations     []string
}

// Feasible reports whether every hard constraint held.
func (r ScoredRoute) Feasible() bool { return len(r.Violations) == 0 }

// MultiModal reports whether the route mixes transport modes.
func (r ScoredRoute) MultiModal() bool {
	if len(r.Legs) == 0 {
		return false
	}
	for _, l := range r.Legs[1:] {
		if l.Mode != r.Legs[0].Mode {
			return true
		}
	}
	return false
}

// Key is the leg-ID sequence of the underlying candidate.
func (r ScoredRoute) Key() string { return Candidate{Legs: r.Legs}.Key() }

// Scorer aggregates candidate metrics and applies constraint checks and the
// weighted score. It is stateless; one instance serves concurrent calls.
type Scorer struct {
	Config ScoringConfig
}

// Score computes totals, evaluates every hard constraint (never
// short-circuiting, so all violation reasons are reported) and assigns the
// urgency-weighted score to feasible routes.
func (s Scorer) Score(c Candidate, weightKg float64, p ConstraintProfile) ScoredRoute {
	tonnes := weightKg / 1000
	r := ScoredRoute{Legs: c.Legs, Reliability: 1}
	for _, leg := range c.Legs {
		r.TotalCarbonG += leg.CarbonGPerTonneKm * leg.DistanceKm * tonnes
		r.TotalCost += leg.CostPerTonneKm * leg.DistanceKm * tonnes
		r.TotalTimeHours += leg.BaseTransitHours
		r.Reliability *= leg.Reliability
	}
	if n := len(c.Legs); n > 1 {
		r.TotalTimeHours += float64(n-1) * s.Config.HandoffHours
	}

	if p.MaxTransitHours > 0 && r.TotalTimeHours > p.MaxTransitHours {
		r.Violations = append(r.Violations,
			fmt.Sprintf("transit time %.1fh exceeds limit %.1fh", r.TotalTimeHours, p.MaxTransitHours))
	}
	if p.MaxCostPerKg > 0 && r.TotalCost > p.MaxCostPerKg*weightKg {
		r.Violations = append(r.Violations,
			fmt.Sprintf("cost %.2f exceeds limit %.2f (%.2f/kg)", r.TotalCost, p.MaxCostPerKg*weightKg, p.MaxCostPerKg))
	}
	if p.MaxCarbonGPerKg > 0 && r.TotalCarbonG > p.MaxCarbonGPerKg*weightKg {
		r.Violations = append(r.Violations,
			fmt.Sprintf("carbon %.0fg exceeds limit %.0fg (%.1fg/kg)", r.TotalCarbonG, p.MaxCarbonGPerKg*weightKg, p.MaxCarbonGPerKg))
	}
	if r.Reliability < p.MinReliability {
		r.Violations = append(r.Violations,
			fmt.Sprintf("reliability %.3f below floor %.3f", r.Reliability, p.MinReliability))
	}
	if len(r.Violations) > 0 {
		return r
	}

	r.Score = s.score(r, weightKg, p.Weights)
	return r
}

func (s Scorer) score(r ScoredRoute, weightKg float64, w Weights) float64 {
	timeScore := 1 - math.Min(r.TotalTimeHours/s.Config.TimeCapHours, 1)
	carbonScore := 1 - math.Min((r.TotalCarbonG/weightKg)/s.Config.CarbonRefGPerKg, 1)
	costScore := 1 - math.Min((r.TotalCost/weightKg)/s.Config.CostRefPerKg, 1)
	score := w.Time*timeScore + w.Carbon*carbonScore + w.Cost*costScore + w.Reliability*r.Reliability
	return math.Max(0, math.Min(1, score))
}
