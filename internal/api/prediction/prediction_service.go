package prediction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	appMetrics "github.com/AmmaarShareef/phoenix-aid-backend/app/observability/metrics"
	"github.com/AmmaarShareef/phoenix-aid-backend/internal/ml"
	"github.com/AmmaarShareef/phoenix-aid-backend/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service runs the predictor on raw image bytes and expands the result into
// the detailed prediction payload.
type Service interface {
	PredictFromImage(ctx context.Context, contents []byte) (*types.PredictResponse, error)
}

type ServiceImpl struct {
	logger    *slog.Logger
	predictor ml.Predictor
	metrics   *appMetrics.AppMetrics // optional, nil in tests
}

func NewServiceImpl(predictor ml.Predictor, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:    logger,
		predictor: predictor,
	}
}

// WithMetrics attaches the application metric instruments.
func (s *ServiceImpl) WithMetrics(m *appMetrics.AppMetrics) *ServiceImpl {
	s.metrics = m
	return s
}

func (s *ServiceImpl) PredictFromImage(ctx context.Context, contents []byte) (*types.PredictResponse, error) {
	if len(contents) == 0 {
		return nil, fmt.Errorf("uploaded image is empty")
	}

	img, format, err := ml.DecodeImage(contents)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	start := time.Now()
	p, err := s.predictor.Predict(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("prediction failed: %w", err)
	}
	if s.metrics != nil {
		s.metrics.PredictionsTotal.Add(ctx, 1)
		s.metrics.PredictionDurationSeconds.Record(ctx, time.Since(start).Seconds())
	}

	risk := p.RiskLevel

	s.logger.DebugContext(ctx, "Prediction computed",
		slog.String("format", format),
		slog.String("risk_level", string(risk)),
		slog.Float64("confidence", p.Confidence))

	return &types.PredictResponse{
		RiskLevel:     string(risk),
		Confidence:    p.Confidence,
		AffectedAreas: affectedAreasFor(risk),
		Recommendations: types.PredictRecommendations{
			Infrastructure: infrastructureAdviceFor(risk),
			Evacuation:     evacuationAdviceFor(risk),
		},
	}, nil
}

// affectedAreasFor names the zones around the capture point by blast radius;
// without per-pixel localization the zone count tracks severity.
func affectedAreasFor(risk types.RiskLevel) []string {
	switch risk {
	case types.RiskCritical:
		return []string{"Immediate fire zone", "Adjacent residential areas", "Downwind corridor"}
	case types.RiskHigh:
		return []string{"Immediate fire zone", "Adjacent residential areas"}
	case types.RiskMedium:
		return []string{"Immediate fire zone"}
	default:
		return []string{}
	}
}

func infrastructureAdviceFor(risk types.RiskLevel) []string {
	switch risk {
	case types.RiskCritical:
		return []string{
			"Shut off power lines in the affected zone",
			"Pressurize water supply systems for fire crews",
			"Close transportation corridors through the fire zone",
		}
	case types.RiskHigh:
		return []string{
			"Secure power lines in affected zone",
			"Prepare water supply systems",
			"Alert transportation department",
		}
	case types.RiskMedium:
		return []string{
			"Inspect power lines near the capture point",
			"Verify water supply access",
		}
	default:
		return []string{"No infrastructure action required"}
	}
}

func evacuationAdviceFor(risk types.RiskLevel) []string {
	switch risk {
	case types.RiskCritical:
		return []string{"Route 1: Congested - use alternate", "Route 2: Evacuate immediately"}
	case types.RiskHigh:
		return []string{"Route 1: Clear", "Route 2: Monitor"}
	case types.RiskMedium:
		return []string{"Route 1: Clear", "Route 2: Clear"}
	default:
		return []string{"No evacuation required"}
	}
}
