package status

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/AmmaarShareef/phoenix-aid-backend/internal/api/wildfire"
	"github.com/AmmaarShareef/phoenix-aid-backend/internal/types"
)

const statusCacheKey = "system:status"

var _ Service = (*ServiceImpl)(nil)

// Service reports the aggregate system state the frontend polls on load.
type Service interface {
	GetStatus(ctx context.Context) (*types.SystemStatus, error)
}

type ServiceImpl struct {
	logger    *slog.Logger
	wildfires wildfire.Repository
	cache     *cache.Cache
	startedAt time.Time
}

func NewServiceImpl(wildfires wildfire.Repository, ttl time.Duration, logger *slog.Logger) *ServiceImpl {
	if ttl <= 0 {
		ttl = 15 * time.Second
	}
	return &ServiceImpl{
		logger:    logger,
		wildfires: wildfires,
		cache:     cache.New(ttl, time.Minute),
		startedAt: time.Now().UTC(),
	}
}

func (s *ServiceImpl) GetStatus(ctx context.Context) (*types.SystemStatus, error) {
	if cached, found := s.cache.Get(statusCacheKey); found {
		if st, ok := cached.(*types.SystemStatus); ok {
			return st, nil
		}
	}

	detections, err := s.wildfires.GetActiveDetections(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to derive system status: %w", err)
	}

	risk := types.RiskLow
	lastUpdate := s.startedAt
	for _, d := range detections {
		if d.Intensity.Severity() > risk.Severity() {
			risk = d.Intensity
		}
		if d.DetectedAt.After(lastUpdate) {
			lastUpdate = d.DetectedAt
		}
	}

	st := &types.SystemStatus{
		Status:          "operational",
		ActiveWildfires: len(detections),
		RiskLevel:       string(risk),
		LastUpdate:      lastUpdate.UTC().Format(time.RFC3339),
	}
	s.cache.Set(statusCacheKey, st, cache.DefaultExpiration)

	s.logger.DebugContext(ctx, "System status derived",
		slog.Int("active_wildfires", st.ActiveWildfires),
		slog.String("risk_level", st.RiskLevel))

	return st, nil
}
