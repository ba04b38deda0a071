package catalog

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"
)

type legFile struct {
	Legs []legRecord `yaml:"legs"`
}

type legRecord struct {
	ID                string    `yaml:"id"`
	Origin            string    `yaml:"origin"`
	Destination       string    `yaml:"destination"`
	Mode              string    `yaml:"mode"`
	DistanceKm        float64   `yaml:"distanceKm"`
	CarbonGPerTonneKm float64   `yaml:"carbonGPerTonneKm"`
	CostPerTonneKm    float64   `yaml:"costPerTonneKm"`
	BaseTransitHours  float64   `yaml:"baseTransitHours"`
	Reliability       float64   `yaml:"reliability"`
	CompatibleCargo   []string  `yaml:"compatibleCargo"`
	MaxWeightT        float64   `yaml:"maxWeightT"`
	MaxVolumeM3       float64   `yaml:"maxVolumeM3"`
	OriginCoord       *GeoPoint `yaml:"originCoord"`
	DestinationCoord  *GeoPoint `yaml:"destinationCoord"`
}

// LoadFile reads a YAML leg catalog from path and constructs the catalog.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	var f legFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("load catalog: parse %s: %w", path, err)
	}
	legs := make([]TransportLeg, 0, len(f.Legs))
	for i, r := range f.Legs {
		leg, err := r.toLeg()
		if err != nil {
			return nil, fmt.Errorf("load catalog: record %d: %w", i, err)
		}
		legs = append(legs, leg)
	}
	return New(legs)
}

func (r legRecord) toLeg() (TransportLeg, error) {
	mode, err := ParseMode(r.Mode)
	if err != nil {
		return TransportLeg{}, err
	}
	cargo := make([]CargoType, 0, len(r.CompatibleCargo))
	for _, s := range r.CompatibleCargo {
		c, err := ParseCargoType(s)
		if err != nil {
			return TransportLeg{}, err
		}
		cargo = append(cargo, c)
	}
	return TransportLeg{
		ID:                r.ID,
		Origin:            r.Origin,
		Destination:       r.Destination,
		Mode:              mode,
		DistanceKm:        r.DistanceKm,
		CarbonGPerTonneKm: r.CarbonGPerTonneKm,
		CostPerTonneKm:    r.CostPerTonneKm,
		BaseTransitHours:  r.BaseTransitHours,
		Reliability:       r.Reliability,
		CompatibleCargo:   cargo,
		MaxWeightT:        r.MaxWeightT,
		MaxVolumeM3:       r.MaxVolumeM3,
		OriginCoord:       r.OriginCoord,
		DestinationCoord:  r.DestinationCoord,
	}, nil
}
