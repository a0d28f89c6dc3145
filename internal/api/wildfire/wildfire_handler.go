package wildfire

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

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

// GetNearby handles GET /api/wildfires/nearby - wildfires around a point for map display.
//
//	@Summary      Wildfires near a location
//	@Tags         wildfires
//	@Produce      json
//	@Param        lat     query  number  true   "Latitude"
//	@Param        lng     query  number  true   "Longitude"
//	@Param        radius  query  number  false  "Radius in kilometers"  default(50)
//	@Success      200  {object}  types.WildfireQueryResponse
//	@Router       /api/wildfires/nearby [get]
func (h *Handler) GetNearby(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("WildfireHandler").Start(r.Context(), "GetNearby")
	defer span.End()

	l := h.logger.With(slog.String("method", "GetNearby"))

	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		span.SetStatus(codes.Error, "Invalid lat parameter")
		api.ErrorResponse(w, r, http.StatusBadRequest, "lat query parameter is required and must be a number")
		return
	}
	lng, err := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if err != nil {
		span.SetStatus(codes.Error, "Invalid lng parameter")
		api.ErrorResponse(w, r, http.StatusBadRequest, "lng query parameter is required and must be a number")
		return
	}

	radius := DefaultRadiusKm
	if raw := r.URL.Query().Get("radius"); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil || radius <= 0 {
			span.SetStatus(codes.Error, "Invalid radius parameter")
			api.ErrorResponse(w, r, http.StatusBadRequest, "radius must be a positive number of kilometers")
			return
		}
	}

	resp, err := h.service.GetNearbyWildfires(ctx, lat, lng, radius)
	if err != nil {
		h.writeServiceError(ctx, w, r, l, span, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, resp)
	span.SetStatus(codes.Ok, "Nearby wildfires returned")
}

// GetActive handles GET /api/wildfires/active - all active wildfires for map display.
//
//	@Summary      All active wildfires
//	@Tags         wildfires
//	@Produce      json
//	@Success      200  {object}  types.WildfireQueryResponse
//	@Router       /api/wildfires/active [get]
func (h *Handler) GetActive(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("WildfireHandler").Start(r.Context(), "GetActive")
	defer span.End()

	l := h.logger.With(slog.String("method", "GetActive"))

	resp, err := h.service.GetActiveWildfires(ctx)
	if err != nil {
		h.writeServiceError(ctx, w, r, l, span, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, resp)
	span.SetStatus(codes.Ok, "Active wildfires returned")
}

// Report handles POST /api/wildfires - operator ingest of a confirmed detection.
//
//	@Summary      Report a wildfire detection
//	@Tags         wildfires
//	@Accept       json
//	@Produce      json
//	@Security     BearerAuth
//	@Param        detection  body  types.CreateDetectionRequest  true  "Detection"
//	@Success      201  {object}  map[string]int64
//	@Router       /api/wildfires [post]
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("WildfireHandler").Start(r.Context(), "Report")
	defer span.End()

	l := h.logger.With(slog.String("method", "Report"))

	var req types.CreateDetectionRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.service.ReportDetection(ctx, req)
	if err != nil {
		h.writeServiceError(ctx, w, r, l, span, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, map[string]int64{"id": id})
	span.SetStatus(codes.Ok, "Detection reported")
}

// UpdateStatus handles PATCH /api/wildfires/{id}/status.
//
//	@Summary      Update detection lifecycle status
//	@Tags         wildfires
//	@Accept       json
//	@Produce      json
//	@Security     BearerAuth
//	@Param        id      path  int                true  "Detection id"
//	@Param        status  body  map[string]string  true  "New status (active|monitoring|contained)"
//	@Success      200  {object}  map[string]string
//	@Router       /api/wildfires/{id}/status [patch]
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("WildfireHandler").Start(r.Context(), "UpdateStatus")
	defer span.End()

	l := h.logger.With(slog.String("method", "UpdateStatus"))

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		span.SetStatus(codes.Error, "Invalid id parameter")
		api.ErrorResponse(w, r, http.StatusBadRequest, "detection id must be an integer")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.UpdateStatus(ctx, id, req.Status); err != nil {
		h.writeServiceError(ctx, w, r, l, span, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, map[string]string{"status": req.Status})
	span.SetStatus(codes.Ok, "Detection status updated")
}

// writeServiceError maps service failures onto the uniform detail response:
// validation problems become 400, missing detections 404, everything else 500.
func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, r *http.Request, l *slog.Logger, span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, "Service operation failed")

	switch {
	case errors.Is(err, ErrInvalidInput):
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrDetectionNotFound):
		api.ErrorResponse(w, r, http.StatusNotFound, err.Error())
	default:
		l.ErrorContext(ctx, "Wildfire service failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, err.Error())
	}
}
