package status

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/AmmaarShareef/phoenix-aid-backend/internal/api"
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

// GetStatus handles GET /api/status - the health/overview payload the
// frontend polls on load.
//
//	@Summary      System status
//	@Tags         status
//	@Produce      json
//	@Success      200  {object}  types.SystemStatus
//	@Router       /api/status [get]
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("StatusHandler").Start(r.Context(), "GetStatus")
	defer span.End()

	st, err := h.service.GetStatus(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Status derivation failed")
		h.logger.ErrorContext(ctx, "Failed to derive system status", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, st)
	span.SetStatus(codes.Ok, "System status returned")
}
