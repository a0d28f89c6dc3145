package upload

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	appMetrics "github.com/AmmaarShareef/phoenix-aid-backend/app/observability/metrics"
	"github.com/AmmaarShareef/phoenix-aid-backend/internal/api/wildfire"
	"github.com/AmmaarShareef/phoenix-aid-backend/internal/ml"
	"github.com/AmmaarShareef/phoenix-aid-backend/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service ingests an uploaded image: analyze, store, and when the analysis
// indicates a located fire, feed the wildfire store.
type Service interface {
	ProcessUpload(ctx context.Context, params types.UploadParams) (*types.UploadResponse, error)
}

type ServiceImpl struct {
	logger     *slog.Logger
	predictor  ml.Predictor
	images     Repository
	detections wildfire.Service
	uploadDir  string
	metrics    *appMetrics.AppMetrics // optional, nil in tests
}

func NewServiceImpl(predictor ml.Predictor, images Repository, detections wildfire.Service, uploadDir string, logger *slog.Logger) *ServiceImpl {
	if uploadDir == "" {
		uploadDir = filepath.Join("uploads", "images")
	}
	return &ServiceImpl{
		logger:     logger,
		predictor:  predictor,
		images:     images,
		detections: detections,
		uploadDir:  uploadDir,
	}
}

// WithMetrics attaches the application metric instruments.
func (s *ServiceImpl) WithMetrics(m *appMetrics.AppMetrics) *ServiceImpl {
	s.metrics = m
	return s
}

func (s *ServiceImpl) ProcessUpload(ctx context.Context, params types.UploadParams) (*types.UploadResponse, error) {
	if len(params.Contents) == 0 {
		return nil, fmt.Errorf("uploaded image is empty")
	}

	img, format, err := ml.DecodeImage(params.Contents)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	start := time.Now()
	prediction, err := s.predictor.Predict(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("prediction failed: %w", err)
	}
	if s.metrics != nil {
		s.metrics.PredictionsTotal.Add(ctx, 1)
		s.metrics.PredictionDurationSeconds.Record(ctx, time.Since(start).Seconds())
	}

	storedName := fmt.Sprintf("%d_%s", time.Now().UTC().Unix(), sanitizeFilename(params.Filename))
	storedPath := filepath.Join(s.uploadDir, storedName)
	if err := s.writeImageFile(storedPath, params.Contents); err != nil {
		return nil, err
	}

	analysisJSON, err := json.Marshal(prediction)
	if err != nil {
		return nil, fmt.Errorf("failed to encode analysis result: %w", err)
	}

	record := types.WildfireImage{
		ID:               uuid.New(),
		Filename:         storedName,
		FilePath:         storedPath,
		OriginalFilename: params.Filename,
		FileSize:         int64(len(params.Contents)),
		Latitude:         params.Latitude,
		Longitude:        params.Longitude,
		UploadedAt:       time.Now().UTC(),
		AnalysisResult:   string(analysisJSON),
		RiskLevel:        prediction.RiskLevel,
		Confidence:       prediction.Confidence,
		Status:           types.ImageAnalyzed,
	}
	if err := s.images.SaveImage(ctx, record); err != nil {
		return nil, err
	}

	if s.fireDetected(prediction) && params.Latitude != nil && params.Longitude != nil {
		imageID := record.ID.String()
		if _, err := s.detections.ReportDetection(ctx, types.CreateDetectionRequest{
			ImageID:    &imageID,
			Lat:        *params.Latitude,
			Lng:        *params.Longitude,
			Intensity:  string(prediction.RiskLevel),
			Confidence: prediction.Confidence,
		}); err != nil {
			// The upload itself succeeded; log and keep the response intact.
			s.logger.ErrorContext(ctx, "Failed to record detection for upload",
				slog.String("image_id", imageID),
				slog.Any("error", err))
		}
	}

	s.logger.InfoContext(ctx, "Image upload processed",
		slog.String("image_id", record.ID.String()),
		slog.String("format", format),
		slog.String("risk_level", string(prediction.RiskLevel)),
		slog.Float64("confidence", prediction.Confidence))

	resp := &types.UploadResponse{
		Message:    "Image uploaded successfully",
		Filename:   params.Filename,
		Size:       int64(len(params.Contents)),
		Timestamp:  params.Timestamp,
		Prediction: prediction,
	}
	if params.Latitude != nil && params.Longitude != nil {
		resp.Location = &types.Location{Lat: *params.Latitude, Lng: *params.Longitude}
	}
	return resp, nil
}

func (s *ServiceImpl) fireDetected(p types.Prediction) bool {
	return p.RiskLevel == types.RiskHigh || p.RiskLevel == types.RiskCritical
}

func (s *ServiceImpl) writeImageFile(path string, contents []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		return fmt.Errorf("failed to save uploaded image: %w", err)
	}
	return nil
}

// sanitizeFilename strips path components and separators so client-supplied
// names can't escape the upload directory.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, string(os.PathSeparator), "_")
	if name == "" || name == "." || name == ".." {
		return "upload"
	}
	return name
}
