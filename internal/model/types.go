package model

// Wire types for the HTTP and WebSocket surfaces. The optimizer core never
// imports this package; handlers translate in both directions.

// OptimizeRequest is the request body for POST /v1/optimize.
type OptimizeRequest struct {
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	CargoWeightKg float64 `json:"cargoWeightKg"`
	CargoType     string  `json:"cargoType"`
	// Urgency names a preset weight profile; ignored when Weights is set.
	Urgency string     `json:"urgency,omitempty"`
	Weights *WeightsIn `json:"weights,omitempty"`

	MaxTransitHours   float64 `json:"maxTransitHours,omitempty"`
	MaxCostPerKg      float64 `json:"maxCostPerKg,omitempty"`
	MaxCarbonGPerKg   float64 `json:"maxCarbonGPerKg,omitempty"`
	MinReliability    float64 `json:"minReliability,omitempty"`
	AllowMultiModal   *bool   `json:"allowMultiModal,omitempty"`
	MaxHandlingPoints int     `json:"maxHandlingPoints,omitempty"`
}

// WeightsIn overrides the urgency preset with explicit scoring weights.
type WeightsIn struct {
	Time        float64 `json:"time"`
	Carbon      float64 `json:"carbon"`
	Cost        float64 `json:"cost"`
	Reliability float64 `json:"reliability"`
}

// LegOut is one leg of a returned route.
type LegOut struct {
	ID                string  `json:"id"`
	Origin            string  `json:"origin"`
	Destination       string  `json:"destination"`
	Mode              string  `json:"mode"`
	DistanceKm        float64 `json:"distanceKm"`
	TransitHours      float64 `json:"transitHours"`
	CarbonGPerTonneKm float64 `json:"carbonGPerTonneKm"`
	CostPerTonneKm    float64 `json:"costPerTonneKm"`
	Reliability       float64 `json:"reliability"`
}

// RouteOut is a scored route with its aggregated metrics.
type RouteOut struct {
	Legs              []LegOut `json:"legs"`
	TotalCarbonG      float64  `json:"totalCarbonG"`
	TotalCost         float64  `json:"totalCost"`
	TotalTimeHours    float64  `json:"totalTimeHours"`
	ReliabilityScore  float64  `json:"reliabilityScore"`
	OptimizationScore float64  `json:"optimizationScore"`
	Violations        []string `json:"violations,omitempty"`
}

// OptimizeResponse is the success body for POST /v1/optimize.
type OptimizeResponse struct {
	ID                  string   `json:"id"`
	Route               RouteOut `json:"route"`
	Baseline            RouteOut `json:"baseline"`
	BaselineSynthetic   bool     `json:"baselineSynthetic,omitempty"`
	CarbonVsBaselinePct float64  `json:"carbonVsBaselinePercent"`
	CostVsBaselinePct   float64  `json:"costVsBaselinePercent"`
	TimeVsBaselinePct   float64  `json:"timeVsBaselinePercent"`
	Recommendations     []string `json:"recommendations"`
	CandidatesEvaluated int      `json:"candidatesEvaluated"`
	Cached              bool     `json:"cached,omitempty"`
}

// NoViableRouteOut is the structured failure body when no candidate
// satisfies the constraints. Served with a 4xx status: it is an expected,
// data-dependent outcome, not a server fault.
type NoViableRouteOut struct {
	Error               string `json:"error"`
	Origin              string `json:"origin"`
	Destination         string `json:"destination"`
	CargoType           string `json:"cargoType"`
	AttemptedCandidates int    `json:"attemptedCandidates"`
	Detail              string `json:"detail"`
}

// StreamMessage frames WebSocket traffic on /v1/optimize/stream.
type StreamMessage struct {
	Type      string            `json:"type"` // candidate, result, error
	Candidate *RouteOut         `json:"candidate,omitempty"`
	Result    *OptimizeResponse `json:"result,omitempty"`
	Failure   *NoViableRouteOut `json:"failure,omitempty"`
	Detail    string            `json:"detail,omitempty"`
}
