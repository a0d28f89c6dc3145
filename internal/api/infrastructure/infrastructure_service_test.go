package infrastructure

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/AmmaarShareef/phoenix-aid-backend/internal/types"
)

type MockContentGenerator struct {
	mock.Mock
}

func (m *MockContentGenerator) GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	args := m.Called(ctx, prompt, config)
	return args.String(0), args.Error(1)
}

func newService(t *testing.T) *ServiceImpl {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServiceImpl(logger)
}

func TestServiceImpl_GetRecommendations(t *testing.T) {
	ctx := context.Background()

	t.Run("builds one recommendation per affected asset", func(t *testing.T) {
		service := newService(t)

		resp, err := service.GetRecommendations(ctx, types.WildfireData{
			WildfireID:             "wf-1",
			Severity:               "high",
			AffectedInfrastructure: []string{"power_lines", "water_supply"},
		})
		require.NoError(t, err)
		require.Len(t, resp.Recommendations, 2)

		assert.Equal(t, "power_lines", resp.Recommendations[0].InfrastructureType)
		assert.Equal(t, "De-energize affected lines", resp.Recommendations[0].Action)
		assert.Equal(t, "high", resp.Recommendations[0].Priority)
		assert.Equal(t, "2 hours", resp.Recommendations[0].EstimatedTime)

		assert.Equal(t, "water_supply", resp.Recommendations[1].InfrastructureType)
		assert.Equal(t, "Increase water pressure in fire zones", resp.Recommendations[1].Action)
		assert.Equal(t, "30 minutes", resp.Recommendations[1].EstimatedTime)
	})

	t.Run("empty affected infrastructure falls back to the default pair", func(t *testing.T) {
		service := newService(t)

		resp, err := service.GetRecommendations(ctx, types.WildfireData{
			WildfireID: "wf-2",
			Severity:   "medium",
		})
		require.NoError(t, err)
		require.Len(t, resp.Recommendations, 2)
		assert.Equal(t, "power_lines", resp.Recommendations[0].InfrastructureType)
		assert.Equal(t, "water_supply", resp.Recommendations[1].InfrastructureType)
	})

	t.Run("critical severity escalates priority and congests routes", func(t *testing.T) {
		service := newService(t)

		resp, err := service.GetRecommendations(ctx, types.WildfireData{
			WildfireID:             "wf-3",
			Severity:               "critical",
			AffectedInfrastructure: []string{"transportation"},
		})
		require.NoError(t, err)
		require.Len(t, resp.Recommendations, 1)
		assert.Equal(t, "critical", resp.Recommendations[0].Priority)
		assert.Equal(t, "Close roads through the fire zone", resp.Recommendations[0].Action)
		assert.Equal(t, "congested", resp.EvacuationRoutes.Status)
		assert.NotEmpty(t, resp.EvacuationRoutes.AlternateRoutes)
	})

	t.Run("unknown asset types get a generic action", func(t *testing.T) {
		service := newService(t)

		resp, err := service.GetRecommendations(ctx, types.WildfireData{
			Severity:               "low",
			AffectedInfrastructure: []string{"rail_lines"},
		})
		require.NoError(t, err)
		require.Len(t, resp.Recommendations, 1)
		assert.Equal(t, "rail_lines", resp.Recommendations[0].InfrastructureType)
		assert.Contains(t, resp.Recommendations[0].Action, "rail lines")
	})

	t.Run("low severity reports clear routes", func(t *testing.T) {
		service := newService(t)

		resp, err := service.GetRecommendations(ctx, types.WildfireData{Severity: "low"})
		require.NoError(t, err)
		assert.Equal(t, "clear", resp.EvacuationRoutes.Status)
	})

	t.Run("unknown severity is rejected", func(t *testing.T) {
		service := newService(t)

		_, err := service.GetRecommendations(ctx, types.WildfireData{Severity: "extreme"})
		require.Error(t, err)
	})
}

func TestServiceImpl_Enrichment(t *testing.T) {
	ctx := context.Background()
	data := types.WildfireData{
		WildfireID:             "wf-9",
		Severity:               "high",
		AffectedInfrastructure: []string{"power_lines"},
	}

	t.Run("model rewrite replaces the rule-based action", func(t *testing.T) {
		enricher := new(MockContentGenerator)
		enricher.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
			Return(`["De-energize the 12kV feeders crossing the northern perimeter"]`, nil)
		service := newService(t).WithEnricher(enricher)

		resp, err := service.GetRecommendations(ctx, data)
		require.NoError(t, err)
		require.Len(t, resp.Recommendations, 1)
		assert.Equal(t, "De-energize the 12kV feeders crossing the northern perimeter", resp.Recommendations[0].Action)
		enricher.AssertExpectations(t)
	})

	t.Run("model failure falls back to the rule table", func(t *testing.T) {
		enricher := new(MockContentGenerator)
		enricher.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
			Return("", errors.New("quota exceeded"))
		service := newService(t).WithEnricher(enricher)

		resp, err := service.GetRecommendations(ctx, data)
		require.NoError(t, err)
		assert.Equal(t, "De-energize affected lines", resp.Recommendations[0].Action)
	})

	t.Run("mismatched response length is discarded", func(t *testing.T) {
		enricher := new(MockContentGenerator)
		enricher.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
			Return(`["one", "two", "three"]`, nil)
		service := newService(t).WithEnricher(enricher)

		resp, err := service.GetRecommendations(ctx, data)
		require.NoError(t, err)
		assert.Equal(t, "De-energize affected lines", resp.Recommendations[0].Action)
	})

	t.Run("fenced JSON is unwrapped", func(t *testing.T) {
		enricher := new(MockContentGenerator)
		enricher.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
			Return("```json\n[\"Cut power on the ridge feeders\"]\n```", nil)
		service := newService(t).WithEnricher(enricher)

		resp, err := service.GetRecommendations(ctx, data)
		require.NoError(t, err)
		assert.Equal(t, "Cut power on the ridge feeders", resp.Recommendations[0].Action)
	})
}
