package upload

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	appMetrics "github.com/AmmaarShareef/phoenix-aid-backend/app/observability/metrics"
	"github.com/AmmaarShareef/phoenix-aid-backend/internal/api"
	"github.com/AmmaarShareef/phoenix-aid-backend/internal/types"
)

const defaultMaxUploadBytes = 10 << 20

type Handler struct {
	logger   *slog.Logger
	service  Service
	maxBytes int64
	metrics  *appMetrics.AppMetrics // optional, nil in tests
}

func NewHandler(service Service, maxUploadMB int64, logger *slog.Logger) *Handler {
	maxBytes := maxUploadMB << 20
	if maxBytes <= 0 {
		maxBytes = defaultMaxUploadBytes
	}
	return &Handler{
		logger:   logger,
		service:  service,
		maxBytes: maxBytes,
	}
}

// WithMetrics attaches the application metric instruments.
func (h *Handler) WithMetrics(m *appMetrics.AppMetrics) *Handler {
	h.metrics = m
	return h
}

// UploadImage handles POST /api/upload-image - multipart image upload with
// optional latitude/longitude/timestamp form fields.
//
//	@Summary      Upload and analyze an image
//	@Tags         upload
//	@Accept       multipart/form-data
//	@Produce      json
//	@Param        image      formData  file     true   "Image file"
//	@Param        latitude   formData  number   false  "Capture latitude"
//	@Param        longitude  formData  number   false  "Capture longitude"
//	@Param        timestamp  formData  string   false  "Capture timestamp"
//	@Success      200  {object}  types.UploadResponse
//	@Router       /api/upload-image [post]
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("UploadHandler").Start(r.Context(), "UploadImage")
	defer span.End()

	if h.metrics != nil {
		h.metrics.UploadRequestsTotal.Add(ctx, 1)
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		span.SetStatus(codes.Error, "Invalid multipart form")
		api.ErrorResponse(w, r, http.StatusBadRequest, "request must be multipart/form-data with an image file")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		span.SetStatus(codes.Error, "Missing image part")
		api.ErrorResponse(w, r, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	contents, err := io.ReadAll(file)
	if err != nil {
		span.SetStatus(codes.Error, "Failed to read image part")
		api.ErrorResponse(w, r, http.StatusBadRequest, "failed to read uploaded image")
		return
	}

	params := types.UploadParams{
		Filename: header.Filename,
		Contents: contents,
	}

	if raw := r.FormValue("latitude"); raw != "" {
		lat, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			span.SetStatus(codes.Error, "Invalid latitude")
			api.ErrorResponse(w, r, http.StatusBadRequest, "latitude must be a number")
			return
		}
		params.Latitude = &lat
	}
	if raw := r.FormValue("longitude"); raw != "" {
		lng, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			span.SetStatus(codes.Error, "Invalid longitude")
			api.ErrorResponse(w, r, http.StatusBadRequest, "longitude must be a number")
			return
		}
		params.Longitude = &lng
	}
	if raw := r.FormValue("timestamp"); raw != "" {
		params.Timestamp = &raw
	}

	resp, err := h.service.ProcessUpload(ctx, params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Upload processing failed")
		h.logger.ErrorContext(ctx, "Failed to process upload",
			slog.String("filename", header.Filename),
			slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, resp)
	span.SetStatus(codes.Ok, "Upload processed")
}
