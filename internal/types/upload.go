package types

import (
	"time"

	"github.com/google/uuid"
)

// ImageStatus is the analysis lifecycle of an uploaded image.
type ImageStatus string

const (
	ImagePending  ImageStatus = "pending"
	ImageAnalyzed ImageStatus = "analyzed"
)

// WildfireImage is a persisted upload row.
type WildfireImage struct {
	ID               uuid.UUID   `json:"id"`
	Filename         string      `json:"filename"`
	FilePath         string      `json:"file_path"`
	OriginalFilename string      `json:"original_filename"`
	FileSize         int64       `json:"file_size"`
	Latitude         *float64    `json:"latitude,omitempty"`
	Longitude        *float64    `json:"longitude,omitempty"`
	UploadedAt       time.Time   `json:"uploaded_at"`
	AnalysisResult   string      `json:"analysis_result,omitempty"` // JSON-encoded Prediction
	RiskLevel        RiskLevel   `json:"risk_level,omitempty"`
	Confidence       float64     `json:"confidence"`
	Status           ImageStatus `json:"status"`
}

// Location echoes back the coordinates sent with an upload.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// UploadResponse is the /api/upload-image payload. Location is only set when
// the client sent both coordinates.
type UploadResponse struct {
	Message    string     `json:"message"`
	Filename   string     `json:"filename"`
	Size       int64      `json:"size"`
	Timestamp  *string    `json:"timestamp"`
	Prediction Prediction `json:"prediction"`
	Location   *Location  `json:"location,omitempty"`
}

// UploadParams carries the parsed multipart fields into the service.
type UploadParams struct {
	Filename  string
	Contents  []byte
	Latitude  *float64
	Longitude *float64
	Timestamp *string
}
