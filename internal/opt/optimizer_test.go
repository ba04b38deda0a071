package opt

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"greenroute/internal/catalog"
)

func TestOptimizeOceanDominatedScenario(t *testing.T) {
	// Shanghai -> London, 1000 kg general cargo, standard urgency,
	// multi-modal allowed, 500 g/kg carbon ceiling.
	o := New(testCatalog(t))
	req := testRequest("Shanghai", "London", 1000, catalog.CargoGeneral)
	req.Constraints.MaxCarbonGPerKg = 500

	res, err := o.Optimize(context.Background(), req)
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	for _, leg := range res.Route.Legs {
		if leg.Mode == catalog.ModeAir {
			t.Errorf("air leg %s selected under a 500 g/kg carbon ceiling", leg.ID)
		}
	}
	if res.Route.Legs[0].Mode != catalog.ModeOcean {
		t.Errorf("expected an ocean-dominated route, got %v", res.Route.Key())
	}
	if res.Route.Score <= 0 || res.Route.Score > 1 {
		t.Errorf("score %.4f out of (0,1]", res.Route.Score)
	}
}

func TestOptimizeImpossibleCarbonCeiling(t *testing.T) {
	o := New(testCatalog(t))
	req := testRequest("Shanghai", "London", 1000, catalog.CargoGeneral)
	req.Constraints.MaxCarbonGPerKg = 1

	_, err := o.Optimize(context.Background(), req)
	var noRoute *NoViableRouteError
	if !errors.As(err, &noRoute) {
		t.Fatalf("expected NoViableRouteError, got %v", err)
	}
	if noRoute.AttemptedCandidates == 0 {
		t.Fatalf("expected attempted candidates to be reported")
	}
	if noRoute.Origin != "Shanghai" || noRoute.Destination != "London" || noRoute.CargoType != catalog.CargoGeneral {
		t.Fatalf("failure context incomplete: %+v", noRoute)
	}
}

func TestOptimizeSameEndpointsRejected(t *testing.T) {
	o := New(testCatalog(t))
	req := testRequest("Shanghai", "Shanghai", 1000, catalog.CargoGeneral)
	_, err := o.Optimize(context.Background(), req)
	var invalid *InvalidRequestError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidRequestError for origin == destination, got %v", err)
	}
}

func TestOptimizeNoDirectLegWithoutMultiModal(t *testing.T) {
	o := New(testCatalog(t))
	// Shanghai -> Lyon only works via Rotterdam.
	req := testRequest("Shanghai", "Lyon", 1000, catalog.CargoGeneral)
	req.Constraints.AllowMultiModal = false

	_, err := o.Optimize(context.Background(), req)
	var noRoute *NoViableRouteError
	if !errors.As(err, &noRoute) {
		t.Fatalf("expected NoViableRouteError with multi-modal disabled, got %v", err)
	}
	if noRoute.AttemptedCandidates != 0 {
		t.Fatalf("no direct candidates exist, got %d", noRoute.AttemptedCandidates)
	}

	req.Constraints.AllowMultiModal = true
	res, err := o.Optimize(context.Background(), req)
	if err != nil {
		t.Fatalf("multi-modal enabled: %v", err)
	}
	if len(res.Route.Legs) != 2 {
		t.Fatalf("expected two-leg route via hub, got %v", res.Route.Key())
	}
}

func TestOptimizeInvalidRequests(t *testing.T) {
	o := New(testCatalog(t))
	cases := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero weight", func(r *Request) { r.CargoWeightKg = 0 }},
		{"negative weight", func(r *Request) { r.CargoWeightKg = -5 }},
		{"empty origin", func(r *Request) { r.Origin = "" }},
		{"empty destination", func(r *Request) { r.Destination = "" }},
		{"unknown cargo", func(r *Request) { r.CargoType = "antimatter" }},
		{"weights not summing to 1", func(r *Request) {
			r.Constraints.Weights = Weights{Time: 0.5, Carbon: 0.5, Cost: 0.5, Reliability: 0.5}
		}},
		{"negative weight component", func(r *Request) {
			r.Constraints.Weights = Weights{Time: -0.2, Carbon: 0.6, Cost: 0.4, Reliability: 0.2}
		}},
		{"zero handling points", func(r *Request) { r.Constraints.MaxHandlingPoints = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := testRequest("Shanghai", "London", 1000, catalog.CargoGeneral)
			tc.mutate(&req)
			_, err := o.Optimize(context.Background(), req)
			var invalid *InvalidRequestError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidRequestError, got %v", err)
			}
		})
	}
}

func TestOptimizeIdempotent(t *testing.T) {
	o := New(testCatalog(t))
	req := testRequest("Shanghai", "London", 1000, catalog.CargoGeneral)
	req.Constraints.MaxCarbonGPerKg = 500

	first, err := o.Optimize(context.Background(), req)
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := o.Optimize(context.Background(), req)
		if err != nil {
			t.Fatalf("optimize run %d: %v", i, err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d produced a different result", i)
		}
	}
}

func TestOptimizeCarbonCeilingMonotonicity(t *testing.T) {
	o := New(testCatalog(t))
	prev := -1.0
	for _, ceiling := range []float64{160, 200, 500, 10000} {
		req := testRequest("Shanghai", "London", 1000, catalog.CargoGeneral)
		req.Constraints.MaxCarbonGPerKg = ceiling
		res, err := o.Optimize(context.Background(), req)
		if err != nil {
			t.Fatalf("ceiling %.0f: %v", ceiling, err)
		}
		if res.Route.Score < prev {
			t.Fatalf("relaxing carbon ceiling to %.0f decreased best score: %.4f < %.4f",
				ceiling, res.Route.Score, prev)
		}
		prev = res.Route.Score
	}
}

func TestOptimizeDeterministicTieBreak(t *testing.T) {
	// Two legs with identical metrics: the lexicographically smaller leg ID
	// must win, every time.
	mk := func(id string) catalog.TransportLeg {
		return catalog.TransportLeg{
			ID: id, Origin: "A", Destination: "B", Mode: catalog.ModeTruck,
			DistanceKm: 100, CarbonGPerTonneKm: 62, CostPerTonneKm: 0.11,
			BaseTransitHours: 2, Reliability: 0.95,
			CompatibleCargo: []catalog.CargoType{catalog.CargoGeneral},
		}
	}
	cat, err := catalog.New([]catalog.TransportLeg{mk("bbb"), mk("aaa")})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	o := New(cat)
	req := testRequest("A", "B", 500, catalog.CargoGeneral)
	for i := 0; i < 10; i++ {
		res, err := o.Optimize(context.Background(), req)
		if err != nil {
			t.Fatalf("optimize: %v", err)
		}
		if got := res.Route.Legs[0].ID; got != "aaa" {
			t.Fatalf("tie-break picked %q, want aaa", got)
		}
	}
}

func TestOptimizeBaselineZeroDeltaWhenChosen(t *testing.T) {
	// high_value cargo leaves the direct air leg as the only candidate, so
	// the chosen route equals the baseline and all deltas are zero.
	o := New(testCatalog(t))
	req := testRequest("Shanghai", "London", 1000, catalog.CargoHighValue)
	res, err := o.Optimize(context.Background(), req)
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	if res.Route.Key() != res.Baseline.Key() {
		t.Fatalf("expected chosen route to equal baseline, got %s vs %s", res.Route.Key(), res.Baseline.Key())
	}
	if res.CarbonVsBaselinePct != 0 || res.CostVsBaselinePct != 0 || res.TimeVsBaselinePct != 0 {
		t.Fatalf("deltas must be zero when route equals baseline: carbon=%.2f cost=%.2f time=%.2f",
			res.CarbonVsBaselinePct, res.CostVsBaselinePct, res.TimeVsBaselinePct)
	}
}

func TestOptimizeSyntheticBaseline(t *testing.T) {
	// Shanghai -> Lyon has no direct leg at all, so the baseline is the
	// synthetic air-freight estimate.
	o := New(testCatalog(t))
	req := testRequest("Shanghai", "Lyon", 1000, catalog.CargoGeneral)
	res, err := o.Optimize(context.Background(), req)
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	if !res.BaselineSynthetic {
		t.Fatalf("expected synthetic baseline flag")
	}
	if len(res.Baseline.Legs) != 1 || res.Baseline.Legs[0].Mode != catalog.ModeAir {
		t.Fatalf("synthetic baseline must be a single air leg, got %v", res.Baseline.Key())
	}
}

func TestOptimizeCarbonSavingsVsAirBaseline(t *testing.T) {
	o := New(testCatalog(t))
	req := testRequest("Shanghai", "London", 1000, catalog.CargoGeneral)
	req.Constraints.MaxCarbonGPerKg = 500
	res, err := o.Optimize(context.Background(), req)
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	// Baseline is the 14h air leg; the ocean route emits ~97% less.
	if res.Baseline.Legs[0].ID != "sha-lon-air" {
		t.Fatalf("baseline should be the fastest direct leg, got %s", res.Baseline.Key())
	}
	if res.CarbonVsBaselinePct > -90 {
		t.Fatalf("expected large carbon savings vs air baseline, got %.2f%%", res.CarbonVsBaselinePct)
	}
}

func TestOptimizeHonorsContextCancellation(t *testing.T) {
	o := New(testCatalog(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := o.Optimize(ctx, testRequest("Shanghai", "London", 1000, catalog.CargoGeneral))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestScoreAllKeepsViolatorsForDiagnostics(t *testing.T) {
	o := New(testCatalog(t))
	req := testRequest("Shanghai", "London", 1000, catalog.CargoGeneral)
	req.Constraints.MaxCarbonGPerKg = 1

	scored, err := o.ScoreAll(context.Background(), req)
	if err != nil {
		t.Fatalf("score all: %v", err)
	}
	if len(scored) == 0 {
		t.Fatalf("expected scored candidates")
	}
	for _, r := range scored {
		if r.Feasible() || r.Score != 0 {
			t.Errorf("%s: expected violating route with zero score, got score=%.4f violations=%v",
				r.Key(), r.Score, r.Violations)
		}
	}
}
