package wildfire

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"

	appMetrics "github.com/AmmaarShareef/phoenix-aid-backend/app/observability/metrics"
	"github.com/AmmaarShareef/phoenix-aid-backend/internal/types"
)

// DefaultRadiusKm is used when a nearby query omits the radius parameter.
const DefaultRadiusKm = 50.0

const activeCacheKey = "wildfires:active"

var _ Service = (*ServiceImpl)(nil)

// Service is the business contract for wildfire map queries and ingestion.
type Service interface {
	GetNearbyWildfires(ctx context.Context, lat, lng, radiusKm float64) (*types.WildfireQueryResponse, error)
	GetActiveWildfires(ctx context.Context) (*types.WildfireQueryResponse, error)
	ReportDetection(ctx context.Context, req types.CreateDetectionRequest) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

type ServiceImpl struct {
	logger  *slog.Logger
	repo    Repository
	cache   *cache.Cache
	metrics *appMetrics.AppMetrics // optional, nil in tests
}

func NewServiceImpl(repo Repository, cacheTTL time.Duration, logger *slog.Logger) *ServiceImpl {
	if cacheTTL <= 0 {
		cacheTTL = 15 * time.Second
	}
	return &ServiceImpl{
		logger: logger,
		repo:   repo,
		cache:  cache.New(cacheTTL, time.Minute),
	}
}

// WithMetrics attaches the application metric instruments.
func (s *ServiceImpl) WithMetrics(m *appMetrics.AppMetrics) *ServiceImpl {
	s.metrics = m
	return s
}

func (s *ServiceImpl) GetNearbyWildfires(ctx context.Context, lat, lng, radiusKm float64) (*types.WildfireQueryResponse, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, fmt.Errorf("%w: lat=%f, lng=%f", ErrInvalidInput, lat, lng)
	}
	if radiusKm <= 0 {
		radiusKm = DefaultRadiusKm
	}

	box := BoundingBoxAround(lat, lng, radiusKm)
	detections, err := s.repo.GetDetectionsInBox(ctx, box)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch nearby detections: %w", err)
	}

	// The bounding box over-selects at the corners; refine with the real
	// great-circle distance.
	wildfires := make([]types.WildfireLocation, 0, len(detections))
	for _, d := range detections {
		if HaversineKm(lat, lng, d.Lat, d.Lng) > radiusKm {
			continue
		}
		wildfires = append(wildfires, toLocation(d))
	}

	s.logger.DebugContext(ctx, "Nearby wildfires resolved",
		slog.Float64("lat", lat),
		slog.Float64("lng", lng),
		slog.Float64("radius_km", radiusKm),
		slog.Int("count", len(wildfires)))

	return &types.WildfireQueryResponse{
		Wildfires: wildfires,
		Total:     len(wildfires),
		RadiusKm:  &radiusKm,
		CenterLat: &lat,
		CenterLng: &lng,
	}, nil
}

func (s *ServiceImpl) GetActiveWildfires(ctx context.Context) (*types.WildfireQueryResponse, error) {
	if cached, found := s.cache.Get(activeCacheKey); found {
		if resp, ok := cached.(*types.WildfireQueryResponse); ok {
			return resp, nil
		}
	}

	detections, err := s.repo.GetActiveDetections(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active detections: %w", err)
	}

	wildfires := make([]types.WildfireLocation, 0, len(detections))
	for _, d := range detections {
		wildfires = append(wildfires, toLocation(d))
	}

	resp := &types.WildfireQueryResponse{
		Wildfires: wildfires,
		Total:     len(wildfires),
	}
	s.cache.Set(activeCacheKey, resp, cache.DefaultExpiration)
	return resp, nil
}

func (s *ServiceImpl) ReportDetection(ctx context.Context, req types.CreateDetectionRequest) (int64, error) {
	if !types.ValidRiskLevel(req.Intensity) {
		return 0, fmt.Errorf("%w: intensity must be one of low, medium, high, critical", ErrInvalidInput)
	}
	if req.Confidence < 0 || req.Confidence > 1 {
		return 0, fmt.Errorf("%w: confidence must be between 0.0 and 1.0", ErrInvalidInput)
	}
	if req.Lat < -90 || req.Lat > 90 || req.Lng < -180 || req.Lng > 180 {
		return 0, fmt.Errorf("%w: lat=%f, lng=%f", ErrInvalidInput, req.Lat, req.Lng)
	}

	id, err := s.repo.CreateDetection(ctx, types.WildfireDetection{
		ImageID:    req.ImageID,
		Lat:        req.Lat,
		Lng:        req.Lng,
		Intensity:  types.RiskLevel(req.Intensity),
		Confidence: req.Confidence,
		Area:       req.Area,
		Status:     types.StatusActive,
	})
	if err != nil {
		return 0, err
	}
	if s.metrics != nil {
		s.metrics.DetectionsStoredTotal.Add(ctx, 1)
	}

	s.cache.Delete(activeCacheKey)
	return id, nil
}

func (s *ServiceImpl) UpdateStatus(ctx context.Context, id int64, status string) error {
	if !types.ValidDetectionStatus(status) {
		return fmt.Errorf("%w: status must be one of active, monitoring, contained", ErrInvalidInput)
	}
	if err := s.repo.UpdateDetectionStatus(ctx, id, types.DetectionStatus(status)); err != nil {
		return err
	}
	s.cache.Delete(activeCacheKey)
	return nil
}

// toLocation converts a stored detection into its wire shape. Affected
// infrastructure is derived from intensity; detections don't store it.
func toLocation(d types.WildfireDetection) types.WildfireLocation {
	return types.WildfireLocation{
		ID:                     d.ID,
		Lat:                    d.Lat,
		Lng:                    d.Lng,
		Intensity:              string(d.Intensity),
		Confidence:             d.Confidence,
		Area:                   d.Area,
		DetectedAt:             d.DetectedAt.UTC().Format(time.RFC3339),
		Status:                 string(d.Status),
		AffectedInfrastructure: affectedInfrastructureFor(d.Intensity),
	}
}

func affectedInfrastructureFor(intensity types.RiskLevel) []string {
	switch intensity {
	case types.RiskCritical:
		return []string{"power_lines", "water_supply", "transportation"}
	case types.RiskHigh:
		return []string{"power_lines", "water_supply"}
	case types.RiskMedium:
		return []string{"transportation"}
	default:
		return nil
	}
}
