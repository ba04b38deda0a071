package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// TransportMode identifies the vehicle class a leg is operated with.
type TransportMode string

const (
	ModeOcean TransportMode = "ocean"
	ModeAir   TransportMode = "air"
	ModeRail  TransportMode = "rail"
	ModeTruck TransportMode = "truck"
	ModeBarge TransportMode = "barge"
)

// CargoType classifies the shipment for leg compatibility checks.
type CargoType string

const (
	CargoGeneral               CargoType = "general"
	CargoPerishable            CargoType = "perishable"
	CargoFragile               CargoType = "fragile"
	CargoHazardous             CargoType = "hazardous"
	CargoOversized             CargoType = "oversized"
	CargoHighValue             CargoType = "high_value"
	CargoTemperatureControlled CargoType = "temperature_controlled"
)

var validModes = map[TransportMode]struct{}{
	ModeOcean: {}, ModeAir: {}, ModeRail: {}, ModeTruck: {}, ModeBarge: {},
}

var validCargoTypes = map[CargoType]struct{}{
	CargoGeneral: {}, CargoPerishable: {}, CargoFragile: {}, CargoHazardous: {},
	CargoOversized: {}, CargoHighValue: {}, CargoTemperatureControlled: {},
}

// ParseMode returns the typed mode for s, or an error for unknown values.
func ParseMode(s string) (TransportMode, error) {
	m := TransportMode(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := validModes[m]; !ok {
		return "", fmt.Errorf("unknown transport mode: %q", s)
	}
	return m, nil
}

// ParseCargoType returns the typed cargo class for s, or an error for unknown values.
func ParseCargoType(s string) (CargoType, error) {
	c := CargoType(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := validCargoTypes[c]; !ok {
		return "", fmt.Errorf("unknown cargo type: %q", s)
	}
	return c, nil
}

// GeoPoint is an optional coordinate annotation on a leg endpoint.
type GeoPoint struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// TransportLeg is one mode-homogeneous segment between two named locations.
// Legs are owned by the catalog and never mutated after construction.
type TransportLeg struct {
	ID                string
	Origin            string
	Destination       string
	Mode              TransportMode
	DistanceKm        float64
	CarbonGPerTonneKm float64
	CostPerTonneKm    float64
	BaseTransitHours  float64
	Reliability       float64
	CompatibleCargo   []CargoType
	MaxWeightT        float64
	MaxVolumeM3       float64
	OriginCoord       *GeoPoint
	DestinationCoord  *GeoPoint
}

// Supports reports whether the leg accepts the given cargo class.
func (l TransportLeg) Supports(c CargoType) bool {
	for _, cc := range l.CompatibleCargo {
		if cc == c {
			return true
		}
	}
	return false
}

// CanCarry reports whether weightKg fits within the leg's weight capacity.
// A zero MaxWeightT means the operator declared no limit.
func (l TransportLeg) CanCarry(weightKg float64) bool {
	if l.MaxWeightT <= 0 {
		return true
	}
	return weightKg <= l.MaxWeightT*1000
}

func (l TransportLeg) validate() error {
	if strings.TrimSpace(l.Origin) == "" || strings.TrimSpace(l.Destination) == "" {
		return fmt.Errorf("leg %s: origin and destination must be non-empty", l.ID)
	}
	if l.Origin == l.Destination {
		return fmt.Errorf("leg %s: self-loop %s -> %s", l.ID, l.Origin, l.Destination)
	}
	if _, ok := validModes[l.Mode]; !ok {
		return fmt.Errorf("leg %s: unknown transport mode %q", l.ID, l.Mode)
	}
	if l.DistanceKm <= 0 {
		return fmt.Errorf("leg %s: distanceKm must be > 0", l.ID)
	}
	if l.BaseTransitHours <= 0 {
		return fmt.Errorf("leg %s: baseTransitHours must be > 0", l.ID)
	}
	if l.CarbonGPerTonneKm < 0 || l.CostPerTonneKm < 0 {
		return fmt.Errorf("leg %s: carbon and cost coefficients must be >= 0", l.ID)
	}
	if l.Reliability < 0 || l.Reliability > 1 {
		return fmt.Errorf("leg %s: reliability %.3f out of [0,1]", l.ID, l.Reliability)
	}
	if len(l.CompatibleCargo) == 0 {
		return fmt.Errorf("leg %s: compatibleCargo must be non-empty", l.ID)
	}
	for _, c := range l.CompatibleCargo {
		if _, ok := validCargoTypes[c]; !ok {
			return fmt.Errorf("leg %s: unknown cargo type %q", l.ID, c)
		}
	}
	return nil
}

type pairKey struct{ origin, destination string }

// Catalog is the immutable set of transport legs. It is constructed once,
// then shared by reference into any number of concurrent optimizer calls.
type Catalog struct {
	legs      []TransportLeg
	byOrigin  map[string][]int
	byPair    map[pairKey][]int
	locations []string
}

// New builds a catalog from legs and freezes it. Legs without an ID get a
// synthesized one; a leg failing validation fails the whole construction.
func New(legs []TransportLeg) (*Catalog, error) {
	c := &Catalog{
		legs:     make([]TransportLeg, len(legs)),
		byOrigin: make(map[string][]int),
		byPair:   make(map[pairKey][]int),
	}
	copy(c.legs, legs)
	seen := make(map[string]struct{}, len(legs))
	locs := make(map[string]struct{})
	for i := range c.legs {
		l := &c.legs[i]
		if l.ID == "" {
			l.ID = fmt.Sprintf("%s-%s-%s-%d", slug(l.Origin), slug(l.Destination), l.Mode, i)
		}
		if err := l.validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[l.ID]; dup {
			return nil, fmt.Errorf("duplicate leg id %q", l.ID)
		}
		seen[l.ID] = struct{}{}
		c.byOrigin[l.Origin] = append(c.byOrigin[l.Origin], i)
		c.byPair[pairKey{l.Origin, l.Destination}] = append(c.byPair[pairKey{l.Origin, l.Destination}], i)
		locs[l.Origin] = struct{}{}
		locs[l.Destination] = struct{}{}
	}
	for loc := range locs {
		c.locations = append(c.locations, loc)
	}
	sort.Strings(c.locations)
	return c, nil
}

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}

// Len returns the number of legs in the catalog.
func (c *Catalog) Len() int { return len(c.legs) }

// Locations returns every location named by at least one leg, sorted.
func (c *Catalog) Locations() []string {
	out := make([]string, len(c.locations))
	copy(out, c.locations)
	return out
}

// LegsFrom returns all legs departing the given location. Unknown locations
// yield an empty result, never an error.
func (c *Catalog) LegsFrom(origin string) []TransportLeg {
	return c.collect(c.byOrigin[origin])
}

// LegsBetween returns all legs from origin to destination. "No route" is a
// first-class outcome: missing pairs yield an empty slice.
func (c *Catalog) LegsBetween(origin, destination string) []TransportLeg {
	return c.collect(c.byPair[pairKey{origin, destination}])
}

// HubCandidates returns the distinct locations directly reachable from
// origin, sorted for deterministic iteration.
func (c *Catalog) HubCandidates(origin string) []string {
	seen := make(map[string]struct{})
	for _, i := range c.byOrigin[origin] {
		seen[c.legs[i].Destination] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

func (c *Catalog) collect(idx []int) []TransportLeg {
	if len(idx) == 0 {
		return nil
	}
	out := make([]TransportLeg, len(idx))
	for i, j := range idx {
		out[i] = c.legs[j]
	}
	return out
}
