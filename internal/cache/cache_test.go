package cache

import (
	"strings"
	"testing"

	"greenroute/internal/model"
)

func TestKeyDeterministic(t *testing.T) {
	req := model.OptimizeRequest{
		Origin:        "Shanghai",
		Destination:   "London",
		CargoWeightKg: 1000,
		CargoType:     "general",
		Urgency:       "standard",
	}
	if Key(req) != Key(req) {
		t.Fatalf("equal requests must hash to the same key")
	}
	if !strings.HasPrefix(Key(req), "greenroute:result:") {
		t.Errorf("key missing namespace prefix: %s", Key(req))
	}
}

func TestKeyDistinguishesRequests(t *testing.T) {
	base := model.OptimizeRequest{
		Origin:        "Shanghai",
		Destination:   "London",
		CargoWeightKg: 1000,
		CargoType:     "general",
	}
	mutations := []func(*model.OptimizeRequest){
		func(r *model.OptimizeRequest) { r.Destination = "Rotterdam" },
		func(r *model.OptimizeRequest) { r.CargoWeightKg = 1001 },
		func(r *model.OptimizeRequest) { r.CargoType = "perishable" },
		func(r *model.OptimizeRequest) { r.Urgency = "green" },
		func(r *model.OptimizeRequest) { r.MaxCarbonGPerKg = 500 },
		func(r *model.OptimizeRequest) { r.Weights = &model.WeightsIn{Time: 0.25, Carbon: 0.25, Cost: 0.25, Reliability: 0.25} },
		func(r *model.OptimizeRequest) { f := false; r.AllowMultiModal = &f },
	}
	ref := Key(base)
	for i, mutate := range mutations {
		req := base
		mutate(&req)
		if Key(req) == ref {
			t.Errorf("mutation %d produced a colliding key", i)
		}
	}
}
