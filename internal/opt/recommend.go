package opt

import "fmt"

// Recommendation thresholds. Tunable policy, aligned with the scorer's
// diagnostics rather than derived from it.
const (
	carbonSavingsNotePct    = 10
	reliabilityCautionFloor = 0.85
	transitTimePenaltyPct   = 100
)

// Recommend derives the ordered recommendation strings for a result. It is
// a pure function of the result: callers may regenerate the notes from a
// stored result at any time.
func Recommend(res *Result) []string {
	var notes []string
	if res.CarbonVsBaselinePct <= -carbonSavingsNotePct {
		notes = append(notes, fmt.Sprintf(
			"Selected route cuts carbon by %.0f%% versus the fastest direct option.",
			-res.CarbonVsBaselinePct))
	}
	if res.TimeVsBaselinePct >= transitTimePenaltyPct {
		notes = append(notes, fmt.Sprintf(
			"Transit takes %.1fx the fastest direct option; confirm the delivery window tolerates %.0fh.",
			1+res.TimeVsBaselinePct/100, res.Route.TotalTimeHours))
	}
	if res.Route.Reliability < reliabilityCautionFloor {
		notes = append(notes, fmt.Sprintf(
			"Route reliability is %.0f%%, below the 85%% comfort level; consider buffer stock or a faster mode.",
			res.Route.Reliability*100))
	}
	if res.Route.MultiModal() {
		notes = append(notes,
			"Multi-modal routing balances cost and carbon; allow handling time at the transfer point.")
	}
	if res.BaselineSynthetic {
		notes = append(notes,
			"No direct service exists on this lane; baseline figures are an air-freight estimate.")
	}
	return notes
}
