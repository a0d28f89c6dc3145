package types

// Prediction is the model output attached to uploads.
type Prediction struct {
	RiskLevel       RiskLevel `json:"risk_level"`
	Confidence      float64   `json:"confidence"`
	Recommendations []string  `json:"recommendations"`
}

// PredictRecommendations splits advice between infrastructure operators and
// evacuation coordination, matching the frontend's prediction panel.
type PredictRecommendations struct {
	Infrastructure []string `json:"infrastructure"`
	Evacuation     []string `json:"evacuation"`
}

// PredictResponse is the full /api/predict payload.
type PredictResponse struct {
	RiskLevel       string                 `json:"risk_level"`
	Confidence      float64                `json:"confidence"`
	AffectedAreas   []string               `json:"affected_areas"`
	Recommendations PredictRecommendations `json:"recommendations"`
}
