package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// LoadPostgres reads the full transport_legs table once and constructs the
// catalog. The connection is closed before returning; nothing in the
// optimizer touches the database after load.
func LoadPostgres(ctx context.Context, dsn string) (*Catalog, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("load catalog: open: %w", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("load catalog: ping: %w", err)
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, origin, destination, mode,
		       distance_km, carbon_g_per_tonne_km, cost_per_tonne_km,
		       base_transit_hours, reliability, compatible_cargo,
		       max_weight_t, max_volume_m3
		FROM transport_legs`)
	if err != nil {
		return nil, fmt.Errorf("load catalog: query: %w", err)
	}
	defer rows.Close()

	var legs []TransportLeg
	for rows.Next() {
		var (
			r     legRecord
			cargo string
		)
		if err := rows.Scan(&r.ID, &r.Origin, &r.Destination, &r.Mode,
			&r.DistanceKm, &r.CarbonGPerTonneKm, &r.CostPerTonneKm,
			&r.BaseTransitHours, &r.Reliability, &cargo,
			&r.MaxWeightT, &r.MaxVolumeM3); err != nil {
			return nil, fmt.Errorf("load catalog: scan: %w", err)
		}
		// compatible_cargo is a comma-separated text column.
		for _, c := range strings.Split(cargo, ",") {
			if c = strings.TrimSpace(c); c != "" {
				r.CompatibleCargo = append(r.CompatibleCargo, c)
			}
		}
		leg, err := r.toLeg()
		if err != nil {
			return nil, fmt.Errorf("load catalog: leg %s: %w", r.ID, err)
		}
		legs = append(legs, leg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load catalog: rows: %w", err)
	}
	return New(legs)
}
