package types

// WildfireData is the /api/infrastructure/recommendations request body,
// matching the documented frontend contract.
type WildfireData struct {
	WildfireID             string    `json:"wildfire_id"`
	Location               *Location `json:"location,omitempty"`
	Severity               string    `json:"severity"`
	AffectedInfrastructure []string  `json:"affected_infrastructure,omitempty"`
}

// InfrastructureRecommendation is one protective action for one asset class.
type InfrastructureRecommendation struct {
	InfrastructureType string `json:"infrastructure_type"`
	Action             string `json:"action"`
	Priority           string `json:"priority"`
	EstimatedTime      string `json:"estimated_time"`
}

// EvacuationRoutes summarizes route availability around the fire.
type EvacuationRoutes struct {
	Status          string   `json:"status"`
	AlternateRoutes []string `json:"alternate_routes"`
}

// RecommendationsResponse is the full recommendations payload.
type RecommendationsResponse struct {
	Recommendations  []InfrastructureRecommendation `json:"recommendations"`
	EvacuationRoutes EvacuationRoutes               `json:"evacuation_routes"`
}
