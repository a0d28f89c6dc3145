package types

// SystemStatus is the /api/status payload polled by the frontend on load.
type SystemStatus struct {
	Status          string `json:"status"`
	ActiveWildfires int    `json:"active_wildfires"`
	RiskLevel       string `json:"risk_level"`
	LastUpdate      string `json:"last_update"`
}
