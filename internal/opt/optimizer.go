package opt

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"greenroute/internal/catalog"
)

// Result is the outcome of one optimization call: the selected route, the
// baseline it is compared against, percentage deltas and recommendations.
type Result struct {
	Route               ScoredRoute
	Baseline            ScoredRoute
	BaselineSynthetic   bool
	CarbonVsBaselinePct float64
	CostVsBaselinePct   float64
	TimeVsBaselinePct   float64
	Recommendations     []string
	CandidatesEvaluated int
}

// Optimizer runs the Generate -> Score -> Select -> Baseline -> Recommend
// pipeline over a shared, read-only catalog. It holds no per-call state, so
// one instance serves unlimited concurrent calls.
type Optimizer struct {
	Catalog *catalog.Catalog
	Rules   RouteRules
	Scoring ScoringConfig
}

// New returns an optimizer over cat with default rules and scoring config.
func New(cat *catalog.Catalog) *Optimizer {
	return &Optimizer{Catalog: cat, Rules: DefaultRouteRules(), Scoring: DefaultScoringConfig()}
}

// Optimize selects the feasible route with the highest score for the
// request. Identical inputs against an unmodified catalog produce identical
// results: scoring is deterministic and ties are broken by a total order.
func (o *Optimizer) Optimize(ctx context.Context, req Request) (*Result, error) {
	scored, err := o.ScoreAll(ctx, req)
	if err != nil {
		return nil, err
	}
	return o.Finalize(req, scored)
}

// ScoreAll validates the request, generates candidates and scores every one
// of them, including constraint violators (score 0) for diagnostics. Results
// come back in the generator's deterministic order regardless of which
// goroutine finished first.
func (o *Optimizer) ScoreAll(ctx context.Context, req Request) ([]ScoredRoute, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("optimize %s -> %s: %w", req.Origin, req.Destination, err)
	}

	candidates := GenerateCandidates(o.Catalog, req, o.Rules)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("optimize %s -> %s: %w", req.Origin, req.Destination, err)
	}

	// Candidates are scored concurrently; each goroutine writes only its own
	// index, with the deterministic selection pass as the sole sync point.
	scorer := Scorer{Config: o.Scoring}
	scored := make([]ScoredRoute, len(candidates))
	var wg sync.WaitGroup
	for i, c := range candidates {
		wg.Add(1)
		go func(i int, c Candidate) {
			defer wg.Done()
			scored[i] = scorer.Score(c, req.CargoWeightKg, req.Constraints)
		}(i, c)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("optimize %s -> %s: %w", req.Origin, req.Destination, err)
	}
	return scored, nil
}

// Finalize selects the best feasible route from scored, computes the
// baseline comparison and recommendations. It fails with NoViableRouteError
// when the pool is empty or fully infeasible; constraints are never relaxed
// here.
func (o *Optimizer) Finalize(req Request, scored []ScoredRoute) (*Result, error) {
	best, ok := selectBest(scored)
	if !ok {
		return nil, &NoViableRouteError{
			Origin:              req.Origin,
			Destination:         req.Destination,
			CargoType:           req.CargoType,
			AttemptedCandidates: len(scored),
		}
	}

	baseline, synthetic := o.baseline(req)
	res := &Result{
		Route:               best,
		Baseline:            baseline,
		BaselineSynthetic:   synthetic,
		CarbonVsBaselinePct: pctDelta(best.TotalCarbonG, baseline.TotalCarbonG),
		CostVsBaselinePct:   pctDelta(best.TotalCost, baseline.TotalCost),
		TimeVsBaselinePct:   pctDelta(best.TotalTimeHours, baseline.TotalTimeHours),
		CandidatesEvaluated: len(scored),
	}
	res.Recommendations = Recommend(res)
	return res, nil
}

func validateRequest(req Request) error {
	if strings.TrimSpace(req.Origin) == "" {
		return &InvalidRequestError{Reason: "origin must be non-empty"}
	}
	if strings.TrimSpace(req.Destination) == "" {
		return &InvalidRequestError{Reason: "destination must be non-empty"}
	}
	if req.Origin == req.Destination {
		// A zero-leg route has no legs to report and breaks the baseline
		// definition, so same-endpoint requests are rejected up front.
		return &InvalidRequestError{Reason: "origin and destination must differ"}
	}
	if req.CargoWeightKg <= 0 {
		return &InvalidRequestError{Reason: "cargoWeightKg must be > 0"}
	}
	if _, err := catalog.ParseCargoType(string(req.CargoType)); err != nil {
		return &InvalidRequestError{Reason: err.Error()}
	}
	if !req.Constraints.Weights.Valid() {
		return &InvalidRequestError{
			Reason: fmt.Sprintf("urgency weights must be non-negative and sum to 1, got %.6f", req.Constraints.Weights.Sum()),
		}
	}
	if req.Constraints.MaxHandlingPoints < 1 {
		return &InvalidRequestError{Reason: "maxHandlingPoints must be >= 1"}
	}
	return nil
}

// selectBest picks the feasible route with the maximum score under the
// documented deterministic tie-break: higher score, then lower carbon, then
// lower cost, then fewer legs, then lexicographic leg-ID sequence.
func selectBest(scored []ScoredRoute) (ScoredRoute, bool) {
	var best ScoredRoute
	found := false
	for _, r := range scored {
		if !r.Feasible() {
			continue
		}
		if !found || better(r, best) {
			best = r
			found = true
		}
	}
	return best, found
}

func better(a, b ScoredRoute) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.TotalCarbonG != b.TotalCarbonG {
		return a.TotalCarbonG < b.TotalCarbonG
	}
	if a.TotalCost != b.TotalCost {
		return a.TotalCost < b.TotalCost
	}
	if len(a.Legs) != len(b.Legs) {
		return len(a.Legs) < len(b.Legs)
	}
	return a.Key() < b.Key()
}

// baseline returns the fastest cargo-compatible direct leg scored for the
// request, or a synthetic single-leg air-freight estimate when the lane has
// no direct service.
func (o *Optimizer) baseline(req Request) (ScoredRoute, bool) {
	var fastest *catalog.TransportLeg
	for _, leg := range o.Catalog.LegsBetween(req.Origin, req.Destination) {
		if !leg.Supports(req.CargoType) || !leg.CanCarry(req.CargoWeightKg) {
			continue
		}
		l := leg
		if fastest == nil ||
			l.BaseTransitHours < fastest.BaseTransitHours ||
			(l.BaseTransitHours == fastest.BaseTransitHours && l.ID < fastest.ID) {
			fastest = &l
		}
	}
	scorer := Scorer{Config: o.Scoring}
	if fastest != nil {
		return scorer.Score(Candidate{Legs: []catalog.TransportLeg{*fastest}}, req.CargoWeightKg, req.Constraints), false
	}

	air := o.Scoring.SyntheticAir
	leg := catalog.TransportLeg{
		ID:                "synthetic-air",
		Origin:            req.Origin,
		Destination:       req.Destination,
		Mode:              catalog.ModeAir,
		DistanceKm:        air.DistanceKm,
		CarbonGPerTonneKm: air.CarbonGPerTonneKm,
		CostPerTonneKm:    air.CostPerTonneKm,
		BaseTransitHours:  air.DistanceKm / air.SpeedKmh,
		Reliability:       air.Reliability,
		CompatibleCargo:   []catalog.CargoType{req.CargoType},
	}
	return scorer.Score(Candidate{Legs: []catalog.TransportLeg{leg}}, req.CargoWeightKg, req.Constraints), true
}

// pctDelta returns the percentage change of got relative to base. Negative
// values are improvements over the baseline.
func pctDelta(got, base float64) float64 {
	if base == 0 {
		return 0
	}
	return (got - base) / base * 100
}
