package api

import (
	"fmt"

	"greenroute/internal/catalog"
	"greenroute/internal/model"
	"greenroute/internal/opt"
)

// validateOptimizeRequest checks the wire-level fields that have a closed
// value set. Core invariants (positive weight, distinct endpoints, weight
// sum) are re-checked by the optimizer itself.
func validateOptimizeRequest(req *model.OptimizeRequest) error {
	if _, err := catalog.ParseCargoType(req.CargoType); err != nil {
		return err
	}
	if req.Urgency != "" {
		if _, ok := opt.WeightsFor(req.Urgency); !ok {
			return fmt.Errorf("unknown urgency profile: %q (available: %v)", req.Urgency, opt.UrgencyProfiles())
		}
	}
	if req.MaxTransitHours < 0 || req.MaxCostPerKg < 0 || req.MaxCarbonGPerKg < 0 {
		return fmt.Errorf("constraint limits must be >= 0")
	}
	if req.MinReliability < 0 || req.MinReliability > 1 {
		return fmt.Errorf("minReliability must be in [0,1]")
	}
	if req.MaxHandlingPoints < 0 {
		return fmt.Errorf("maxHandlingPoints must be >= 0")
	}
	return nil
}

// toOptRequest translates the wire request into the core request, applying
// defaults: standard urgency, multi-modal allowed, two handling points.
func toOptRequest(req *model.OptimizeRequest) opt.Request {
	cons := opt.DefaultConstraints()
	cons.MaxTransitHours = req.MaxTransitHours
	cons.MaxCostPerKg = req.MaxCostPerKg
	cons.MaxCarbonGPerKg = req.MaxCarbonGPerKg
	cons.MinReliability = req.MinReliability
	if req.AllowMultiModal != nil {
		cons.AllowMultiModal = *req.AllowMultiModal
	}
	if req.MaxHandlingPoints > 0 {
		cons.MaxHandlingPoints = req.MaxHandlingPoints
	}
	if req.Urgency != "" {
		if w, ok := opt.WeightsFor(req.Urgency); ok {
			cons.Weights = w
		}
	}
	if req.Weights != nil {
		cons.Weights = opt.Weights{
			Time:        req.Weights.Time,
			Carbon:      req.Weights.Carbon,
			Cost:        req.Weights.Cost,
			Reliability: req.Weights.Reliability,
		}
	}
	return opt.Request{
		Origin:        req.Origin,
		Destination:   req.Destination,
		CargoWeightKg: req.CargoWeightKg,
		CargoType:     catalog.CargoType(req.CargoType),
		Constraints:   cons,
	}
}

func toRouteOut(r opt.ScoredRoute) model.RouteOut {
	out := model.RouteOut{
		Legs:              make([]model.LegOut, len(r.Legs)),
		TotalCarbonG:      r.TotalCarbonG,
		TotalCost:         r.TotalCost,
		TotalTimeHours:    r.TotalTimeHours,
		ReliabilityScore:  r.Reliability,
		OptimizationScore: r.Score,
		Violations:        r.Violations,
	}
	for i, l := range r.Legs {
		out.Legs[i] = legOut(l)
	}
	return out
}

func legOut(l catalog.TransportLeg) model.LegOut {
	return model.LegOut{
		ID:                l.ID,
		Origin:            l.Origin,
		Destination:       l.Destination,
		Mode:              string(l.Mode),
		DistanceKm:        l.DistanceKm,
		TransitHours:      l.BaseTransitHours,
		CarbonGPerTonneKm: l.CarbonGPerTonneKm,
		CostPerTonneKm:    l.CostPerTonneKm,
		Reliability:       l.Reliability,
	}
}
