package opt

import (
	"sort"
	"strings"

	"greenroute/internal/catalog"
)

// Candidate is an ordered chain of legs from the requested origin to the
// requested destination, every leg compatible with the cargo.
type Candidate struct {
	Legs []catalog.TransportLeg
}

// Key is the leg-ID sequence, the identity used for deduplication and the
// final tie-break.
func (c Candidate) Key() string {
	ids := make([]string, len(c.Legs))
	for i, l := range c.Legs {
		ids[i] = l.ID
	}
	return strings.Join(ids, ">")
}

// GenerateCandidates enumerates direct and hub-mediated two-leg paths for
// the request. It is a pure function of catalog, request and rules: a sparse
// catalog yields fewer candidates, never an error.
func GenerateCandidates(cat *catalog.Catalog, req Request, rules RouteRules) []Candidate {
	seen := make(map[string]struct{})
	var out []Candidate
	add := func(legs ...catalog.TransportLeg) {
		c := Candidate{Legs: legs}
		k := c.Key()
		if _, dup := seen[k]; dup {
			return
		}
		seen[k] = struct{}{}
		out = append(out, c)
	}

	for _, leg := range cat.LegsBetween(req.Origin, req.Destination) {
		if legUsable(leg, req, rules) {
			add(leg)
		}
	}

	if req.Constraints.AllowMultiModal && req.Constraints.MaxHandlingPoints >= 2 {
		for _, hub := range rankedHubs(cat, req, rules) {
			for _, first := range cat.LegsBetween(req.Origin, hub) {
				if !legUsable(first, req, rules) {
					continue
				}
				for _, second := range cat.LegsBetween(hub, req.Destination) {
					if !legUsable(second, req, rules) {
						continue
					}
					if !sequenceAllowed(first, second) {
						continue
					}
					add(first, second)
				}
			}
		}
	}

	// Stable output order regardless of map iteration above.
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

// legUsable checks cargo compatibility, capacity and the per-leg rule table.
func legUsable(leg catalog.TransportLeg, req Request, rules RouteRules) bool {
	if !leg.Supports(req.CargoType) || !leg.CanCarry(req.CargoWeightKg) {
		return false
	}
	if leg.Mode == catalog.ModeOcean && rules.MinOceanLegKm > 0 && leg.DistanceKm < rules.MinOceanLegKm {
		return false
	}
	return true
}

// sequenceAllowed rejects operationally backwards leg orderings. Flying
// cargo to a port and then putting it on a ship forfeits the speed that was
// paid for, so air-then-ocean chains are excluded.
func sequenceAllowed(first, second catalog.TransportLeg) bool {
	if first.Mode == catalog.ModeAir && second.Mode == catalog.ModeOcean {
		return false
	}
	return true
}

// rankedHubs orders reachable hubs by their fastest usable first leg and
// truncates to the fan-out cap. Truncation only reduces coverage.
func rankedHubs(cat *catalog.Catalog, req Request, rules RouteRules) []string {
	type hubRank struct {
		name    string
		fastest float64
	}
	var ranked []hubRank
	for _, hub := range cat.HubCandidates(req.Origin) {
		if hub == req.Origin || hub == req.Destination {
			continue
		}
		fastest := -1.0
		for _, leg := range cat.LegsBetween(req.Origin, hub) {
			if !legUsable(leg, req, rules) {
				continue
			}
			if fastest < 0 || leg.BaseTransitHours < fastest {
				fastest = leg.BaseTransitHours
			}
		}
		if fastest < 0 {
			continue
		}
		ranked = append(ranked, hubRank{name: hub, fastest: fastest})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].fastest != ranked[j].fastest {
			return ranked[i].fastest < ranked[j].fastest
		}
		return ranked[i].name < ranked[j].name
	})
	if rules.MaxHubFanOut > 0 && len(ranked) > rules.MaxHubFanOut {
		ranked = ranked[:rules.MaxHubFanOut]
	}
	out := make([]string, len(ranked))
	for i, h := range ranked {
		out[i] = h.name
	}
	return out
}
