package infrastructure

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/AmmaarShareef/phoenix-aid-backend/internal/api"
	"github.com/AmmaarShareef/phoenix-aid-backend/internal/types"
)

type Handler struct {
	logger  *slog.Logger
	service Service
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
	}
}

// GetRecommendations handles POST /api/infrastructure/recommendations.
//
//	@Summary      Infrastructure protection recommendations
//	@Tags         infrastructure
//	@Accept       json
//	@Produce      json
//	@Param        wildfire  body  types.WildfireData  true  "Wildfire context"
//	@Success      200  {object}  types.RecommendationsResponse
//	@Router       /api/infrastructure/recommendations [post]
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("InfrastructureHandler").Start(r.Context(), "GetRecommendations")
	defer span.End()

	var data types.WildfireData
	if err := api.DecodeJSONBody(w, r, &data); err != nil {
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.GetRecommendations(ctx, data)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Recommendation build failed")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, resp)
	span.SetStatus(codes.Ok, "Recommendations returned")
}
