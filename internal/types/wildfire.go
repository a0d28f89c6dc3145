package types

import "time"

// RiskLevel is the classification vocabulary shared by predictions and
// stored detections. The frontend renders these verbatim.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// ValidRiskLevel reports whether s belongs to the closed risk vocabulary.
func ValidRiskLevel(s string) bool {
	switch RiskLevel(s) {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return true
	}
	return false
}

// Severity ranks risk levels for comparisons (critical > high > medium > low).
func (r RiskLevel) Severity() int {
	switch r {
	case RiskCritical:
		return 3
	case RiskHigh:
		return 2
	case RiskMedium:
		return 1
	default:
		return 0
	}
}

// DetectionStatus is the lifecycle of a stored wildfire detection.
type DetectionStatus string

const (
	StatusActive     DetectionStatus = "active"
	StatusMonitoring DetectionStatus = "monitoring"
	StatusContained  DetectionStatus = "contained"
)

// ValidDetectionStatus reports whether s is a known detection status.
func ValidDetectionStatus(s string) bool {
	switch DetectionStatus(s) {
	case StatusActive, StatusMonitoring, StatusContained:
		return true
	}
	return false
}

// WildfireDetection is a persisted detection row.
type WildfireDetection struct {
	ID         int64           `json:"id"`
	ImageID    *string         `json:"image_id,omitempty"`
	Lat        float64         `json:"lat"`
	Lng        float64         `json:"lng"`
	Intensity  RiskLevel       `json:"intensity"`
	Confidence float64         `json:"confidence"`
	Area       string          `json:"area,omitempty"`
	DetectedAt time.Time       `json:"detected_at"`
	Status     DetectionStatus `json:"status"`
	CreatedAt  time.Time       `json:"created_at,omitempty"`
}

// WildfireLocation is the wire shape of one wildfire in map responses.
type WildfireLocation struct {
	ID                     int64    `json:"id"`
	Lat                    float64  `json:"lat"`
	Lng                    float64  `json:"lng"`
	Intensity              string   `json:"intensity"`
	Confidence             float64  `json:"confidence"`
	Area                   string   `json:"area,omitempty"`
	DetectedAt             string   `json:"detected_at"`
	Status                 string   `json:"status"`
	AffectedInfrastructure []string `json:"affected_infrastructure,omitempty"`
}

// WildfireQueryResponse is the envelope for /api/wildfires/* queries.
// Radius and center fields are only present on nearby queries.
type WildfireQueryResponse struct {
	Wildfires []WildfireLocation `json:"wildfires"`
	Total     int                `json:"total"`
	RadiusKm  *float64           `json:"radius_km,omitempty"`
	CenterLat *float64           `json:"center_lat,omitempty"`
	CenterLng *float64           `json:"center_lng,omitempty"`
}

// BoundingBox is the rectangular prefilter used for nearby queries.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// CreateDetectionRequest is the admin ingest payload.
type CreateDetectionRequest struct {
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	Intensity  string  `json:"intensity"`
	Confidence float64 `json:"confidence"`
	Area       string  `json:"area,omitempty"`
	ImageID    *string `json:"image_id,omitempty"`
}
