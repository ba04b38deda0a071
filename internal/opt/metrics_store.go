package opt

import "sync"

// CorridorStats accumulates optimization outcomes per origin/destination
// lane, for the admin metrics endpoint.
type CorridorStats struct {
	Requests            int     `json:"requests"`
	NoViableRoute       int     `json:"noViableRoute"`
	CandidatesEvaluated int     `json:"candidatesEvaluated"`
	LastScore           float64 `json:"lastScore"`
	BestScore           float64 `json:"bestScore"`
}

type corridorKey struct {
	Origin      string
	Destination string
}

var (
	statsMu sync.Mutex
	stats   = map[corridorKey]CorridorStats{}
)

// RecordOptimization folds one call's outcome into the corridor stats.
func RecordOptimization(origin, destination string, candidates int, feasible bool, score float64) {
	statsMu.Lock()
	defer statsMu.Unlock()
	k := corridorKey{Origin: origin, Destination: destination}
	s := stats[k]
	s.Requests++
	s.CandidatesEvaluated += candidates
	if !feasible {
		s.NoViableRoute++
	} else {
		s.LastScore = score
		if score > s.BestScore {
			s.BestScore = score
		}
	}
	stats[k] = s
}

// CorridorMetrics returns the accumulated stats, keyed "origin->destination".
// Empty origin/destination act as wildcards.
func CorridorMetrics(origin, destination string) map[string]CorridorStats {
	statsMu.Lock()
	defer statsMu.Unlock()
	out := map[string]CorridorStats{}
	for k, v := range stats {
		if origin != "" && k.Origin != origin {
			continue
		}
		if destination != "" && k.Destination != destination {
			continue
		}
		out[k.Origin+"->"+k.Destination] = v
	}
	return out
}
