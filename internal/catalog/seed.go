package catalog

// Demo network used when neither CATALOG_FILE nor DATABASE_URL is set.
// Distances and coefficients are representative trade-lane figures, not a
// routing dataset.

var (
	oceanCargo       = []CargoType{CargoGeneral, CargoOversized, CargoHazardous}
	reeferOceanCargo = []CargoType{CargoGeneral, CargoPerishable, CargoTemperatureControlled}
	airCargo         = []CargoType{CargoGeneral, CargoPerishable, CargoFragile, CargoHighValue, CargoTemperatureControlled}
	railCargo        = []CargoType{CargoGeneral, CargoFragile, CargoHazardous, CargoOversized}
	truckCargo       = []CargoType{CargoGeneral, CargoFragile, CargoPerishable, CargoTemperatureControlled, CargoHighValue}
	bargeCargo       = []CargoType{CargoGeneral, CargoOversized, CargoHazardous}
)

func seedLeg(id, origin, dest string, mode TransportMode, km, hours float64, cargo []CargoType) TransportLeg {
	var carbon, cost, rel, capT float64
	switch mode {
	case ModeOcean:
		carbon, cost, rel, capT = 8, 0.008, 0.92, 25000
	case ModeAir:
		carbon, cost, rel, capT = 602, 4.2, 0.97, 120
	case ModeRail:
		carbon, cost, rel, capT = 22, 0.05, 0.90, 4000
	case ModeTruck:
		carbon, cost, rel, capT = 62, 0.11, 0.95, 24
	case ModeBarge:
		carbon, cost, rel, capT = 31, 0.03, 0.88, 3000
	}
	return TransportLeg{
		ID: id, Origin: origin, Destination: dest, Mode: mode,
		DistanceKm: km, CarbonGPerTonneKm: carbon, CostPerTonneKm: cost,
		BaseTransitHours: hours, Reliability: rel,
		CompatibleCargo: cargo, MaxWeightT: capT,
	}
}

// Seed returns the built-in demo catalog.
func Seed() *Catalog {
	legs := []TransportLeg{
		seedLeg("sha-rtm-ocean", "Shanghai", "Rotterdam", ModeOcean, 19000, 520, oceanCargo),
		seedLeg("sha-rtm-reefer", "Shanghai", "Rotterdam", ModeOcean, 19000, 525, reeferOceanCargo),
		seedLeg("sha-lon-ocean", "Shanghai", "London", ModeOcean, 19800, 540, oceanCargo),
		seedLeg("sha-sin-ocean", "Shanghai", "Singapore", ModeOcean, 3800, 110, oceanCargo),
		seedLeg("sha-lax-ocean", "Shanghai", "Los Angeles", ModeOcean, 10500, 290, oceanCargo),
		seedLeg("sha-dxb-ocean", "Shanghai", "Dubai", ModeOcean, 10700, 300, oceanCargo),
		seedLeg("sha-ham-ocean", "Shanghai", "Hamburg", ModeOcean, 19300, 530, oceanCargo),
		seedLeg("sha-hkg-ocean", "Shanghai", "Hong Kong", ModeOcean, 1460, 40, oceanCargo),
		seedLeg("sha-lon-air", "Shanghai", "London", ModeAir, 9200, 14, airCargo),
		seedLeg("sha-dxb-air", "Shanghai", "Dubai", ModeAir, 6400, 9, airCargo),
		seedLeg("sin-rtm-ocean", "Singapore", "Rotterdam", ModeOcean, 15600, 430, oceanCargo),
		seedLeg("sin-lon-air", "Singapore", "London", ModeAir, 10900, 16, airCargo),
		seedLeg("hkg-sin-ocean", "Hong Kong", "Singapore", ModeOcean, 2600, 75, oceanCargo),
		seedLeg("hkg-lon-air", "Hong Kong", "London", ModeAir, 9650, 14, airCargo),
		seedLeg("dxb-rtm-ocean", "Dubai", "Rotterdam", ModeOcean, 9900, 280, oceanCargo),
		seedLeg("dxb-ham-ocean", "Dubai", "Hamburg", ModeOcean, 10300, 290, oceanCargo),
		seedLeg("dxb-lon-air", "Dubai", "London", ModeAir, 5500, 8, airCargo),
		seedLeg("rtm-lon-truck", "Rotterdam", "London", ModeTruck, 350, 10, truckCargo),
		seedLeg("rtm-lon-rail", "Rotterdam", "London", ModeRail, 370, 8, railCargo),
		seedLeg("rtm-ham-truck", "Rotterdam", "Hamburg", ModeTruck, 450, 7, truckCargo),
		seedLeg("rtm-ham-barge", "Rotterdam", "Hamburg", ModeBarge, 520, 30, bargeCargo),
		seedLeg("ham-lon-rail", "Hamburg", "London", ModeRail, 980, 20, railCargo),
		seedLeg("ham-lon-truck", "Hamburg", "London", ModeTruck, 930, 16, truckCargo),
		seedLeg("lax-nyc-rail", "Los Angeles", "New York", ModeRail, 4500, 90, railCargo),
		seedLeg("lax-nyc-truck", "Los Angeles", "New York", ModeTruck, 4500, 50, truckCargo),
		seedLeg("lax-nyc-air", "Los Angeles", "New York", ModeAir, 3980, 6, airCargo),
		seedLeg("nyc-lon-ocean", "New York", "London", ModeOcean, 5570, 160, oceanCargo),
		seedLeg("nyc-lon-air", "New York", "London", ModeAir, 5570, 8, airCargo),
	}
	c, err := New(legs)
	if err != nil {
		// The seed table is compiled in; a validation failure is a programming error.
		panic(err)
	}
	return c
}
