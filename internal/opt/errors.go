package opt

import (
	"fmt"

	"greenroute/internal/catalog"
)

// InvalidRequestError rejects a request before any graph work happens.
// It maps to a "bad input" response at the API boundary, never a 5xx.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return "invalid request: " + e.Reason
}

// NoViableRouteError reports that no candidate exists between the endpoints,
// or that every candidate violates a hard constraint. It is an expected,
// data-dependent outcome; relaxing constraints is the caller's decision.
type NoViableRouteError struct {
	Origin              string
	Destination         string
	CargoType           catalog.CargoType
	AttemptedCandidates int
}

func (e *NoViableRouteError) Error() string {
	if e.AttemptedCandidates == 0 {
		return fmt.Sprintf("no viable route: no candidates from %s to %s for %s cargo",
			e.Origin, e.Destination, e.CargoType)
	}
	return fmt.Sprintf("no viable route: all %d candidates from %s to %s for %s cargo violate constraints",
		e.AttemptedCandidates, e.Origin, e.Destination, e.CargoType)
}
