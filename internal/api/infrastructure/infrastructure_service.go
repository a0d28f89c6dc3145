package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	generativeAI "github.com/AmmaarShareef/phoenix-aid-backend/internal/api/generative_ai"
	"github.com/AmmaarShareef/phoenix-aid-backend/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service produces protective actions for infrastructure threatened by a
// wildfire, plus an evacuation route summary.
type Service interface {
	GetRecommendations(ctx context.Context, data types.WildfireData) (*types.RecommendationsResponse, error)
}

type ServiceImpl struct {
	logger   *slog.Logger
	enricher generativeAI.ContentGenerator // optional, nil disables enrichment
}

func NewServiceImpl(logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{logger: logger}
}

// WithEnricher lets Gemini rewrite the rule-based actions. Enrichment is
// best effort: any failure falls back to the rule table.
func (s *ServiceImpl) WithEnricher(enricher generativeAI.ContentGenerator) *ServiceImpl {
	s.enricher = enricher
	return s
}

// defaultInfrastructure is assumed when the caller doesn't name any assets.
var defaultInfrastructure = []string{"power_lines", "water_supply"}

type recommendationRule struct {
	action        string
	priority      string
	estimatedTime string
}

// recommendationRules is keyed by infrastructure type, then severity.
// Severities beyond "high" (i.e. critical) reuse the high row with the
// priority escalated.
var recommendationRules = map[string]map[types.RiskLevel]recommendationRule{
	"power_lines": {
		types.RiskLow:    {"Inspect lines within the monitored area", "low", "4 hours"},
		types.RiskMedium: {"Reduce load on lines near the fire perimeter", "medium", "2 hours"},
		types.RiskHigh:   {"De-energize affected lines", "high", "2 hours"},
	},
	"water_supply": {
		types.RiskLow:    {"Verify hydrant access in the area", "low", "2 hours"},
		types.RiskMedium: {"Stage water tenders near the fire perimeter", "medium", "1 hour"},
		types.RiskHigh:   {"Increase water pressure in fire zones", "high", "30 minutes"},
	},
	"transportation": {
		types.RiskLow:    {"Post advisories on routes near the area", "low", "1 hour"},
		types.RiskMedium: {"Stage traffic control at key intersections", "medium", "45 minutes"},
		types.RiskHigh:   {"Close roads through the fire zone", "high", "30 minutes"},
	},
	"communications": {
		types.RiskLow:    {"Check tower backup power", "low", "4 hours"},
		types.RiskMedium: {"Enable backup power on towers in the area", "medium", "2 hours"},
		types.RiskHigh:   {"Deploy mobile cell units outside the fire zone", "high", "1 hour"},
	},
}

func (s *ServiceImpl) GetRecommendations(ctx context.Context, data types.WildfireData) (*types.RecommendationsResponse, error) {
	severity := types.RiskLevel(strings.ToLower(data.Severity))
	if !types.ValidRiskLevel(string(severity)) {
		return nil, fmt.Errorf("severity must be one of low, medium, high, critical")
	}

	assets := data.AffectedInfrastructure
	if len(assets) == 0 {
		assets = defaultInfrastructure
	}

	recommendations := make([]types.InfrastructureRecommendation, 0, len(assets))
	for _, asset := range assets {
		recommendations = append(recommendations, recommendationFor(asset, severity))
	}

	if s.enricher != nil {
		recommendations = s.enrichActions(ctx, data, recommendations)
	}

	s.logger.DebugContext(ctx, "Infrastructure recommendations built",
		slog.String("wildfire_id", data.WildfireID),
		slog.String("severity", string(severity)),
		slog.Int("count", len(recommendations)))

	return &types.RecommendationsResponse{
		Recommendations:  recommendations,
		EvacuationRoutes: evacuationRoutesFor(severity),
	}, nil
}

func recommendationFor(asset string, severity types.RiskLevel) types.InfrastructureRecommendation {
	lookup := severity
	if lookup == types.RiskCritical {
		lookup = types.RiskHigh
	}

	rules, known := recommendationRules[asset]
	if !known {
		// Unknown asset types still get a generic protective action.
		rec := types.InfrastructureRecommendation{
			InfrastructureType: asset,
			Action:             fmt.Sprintf("Assess %s exposure in the fire zone", strings.ReplaceAll(asset, "_", " ")),
			Priority:           string(lookup),
			EstimatedTime:      "2 hours",
		}
		if severity == types.RiskCritical {
			rec.Priority = "critical"
		}
		return rec
	}

	rule := rules[lookup]
	rec := types.InfrastructureRecommendation{
		InfrastructureType: asset,
		Action:             rule.action,
		Priority:           rule.priority,
		EstimatedTime:      rule.estimatedTime,
	}
	if severity == types.RiskCritical {
		rec.Priority = "critical"
	}
	return rec
}

func evacuationRoutesFor(severity types.RiskLevel) types.EvacuationRoutes {
	switch severity {
	case types.RiskCritical:
		return types.EvacuationRoutes{
			Status:          "congested",
			AlternateRoutes: []string{"Route A", "Route B", "Route C"},
		}
	case types.RiskHigh:
		return types.EvacuationRoutes{
			Status:          "monitor",
			AlternateRoutes: []string{"Route A", "Route B"},
		}
	default:
		return types.EvacuationRoutes{
			Status:          "clear",
			AlternateRoutes: []string{"Route A", "Route B"},
		}
	}
}

// enrichActions asks the model to rewrite the rule-based actions with the
// incident context. Responses that aren't a JSON string array of the same
// length are discarded.
func (s *ServiceImpl) enrichActions(ctx context.Context, data types.WildfireData, recommendations []types.InfrastructureRecommendation) []types.InfrastructureRecommendation {
	prompt := buildEnrichmentPrompt(data, recommendations)

	raw, err := s.enricher.GenerateContent(ctx, prompt, &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.2),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "Recommendation enrichment failed, using rule table",
			slog.Any("error", err))
		return recommendations
	}

	var actions []string
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	if err := json.Unmarshal([]byte(cleaned), &actions); err != nil || len(actions) != len(recommendations) {
		s.logger.WarnContext(ctx, "Discarding unusable enrichment response",
			slog.Int("expected", len(recommendations)),
			slog.Int("got", len(actions)))
		return recommendations
	}

	for i := range recommendations {
		if action := strings.TrimSpace(actions[i]); action != "" {
			recommendations[i].Action = action
		}
	}
	return recommendations
}

func buildEnrichmentPrompt(data types.WildfireData, recommendations []types.InfrastructureRecommendation) string {
	var b strings.Builder
	b.WriteString("You advise wildfire incident commanders. Rewrite each protective action below ")
	b.WriteString("to be specific to the incident. Reply with ONLY a JSON array of strings, one ")
	b.WriteString("rewritten action per input action, same order.\n")
	fmt.Fprintf(&b, "Incident: id=%s severity=%s", data.WildfireID, data.Severity)
	if data.Location != nil {
		fmt.Fprintf(&b, " location=(%.4f, %.4f)", data.Location.Lat, data.Location.Lng)
	}
	b.WriteString("\nActions:\n")
	for _, rec := range recommendations {
		fmt.Fprintf(&b, "- [%s] %s\n", rec.InfrastructureType, rec.Action)
	}
	return b.String()
}
