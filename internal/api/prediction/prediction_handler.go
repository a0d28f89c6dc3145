package prediction

import (
	"io"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/AmmaarShareef/phoenix-aid-backend/internal/api"
)

const defaultMaxImageBytes = 10 << 20

type Handler struct {
	logger   *slog.Logger
	service  Service
	maxBytes int64
}

func NewHandler(service Service, maxUploadMB int64, logger *slog.Logger) *Handler {
	maxBytes := maxUploadMB << 20
	if maxBytes <= 0 {
		maxBytes = defaultMaxImageBytes
	}
	return &Handler{
		logger:   logger,
		service:  service,
		maxBytes: maxBytes,
	}
}

// Predict handles POST /api/predict - detailed wildfire risk analysis of a
// single image.
//
//	@Summary      Predict wildfire risk from an image
//	@Tags         prediction
//	@Accept       multipart/form-data
//	@Produce      json
//	@Param        image  formData  file  true  "Image file"
//	@Success      200  {object}  types.PredictResponse
//	@Router       /api/predict [post]
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PredictionHandler").Start(r.Context(), "Predict")
	defer span.End()

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

	resp, err := h.service.PredictFromImage(ctx, contents)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Prediction failed")
		h.logger.ErrorContext(ctx, "Failed to run prediction",
			slog.String("filename", header.Filename),
			slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, resp)
	span.SetStatus(codes.Ok, "Prediction returned")
}
