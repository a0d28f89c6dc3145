package prediction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/AmmaarShareef/phoenix-aid-backend/internal/types"
)

type MockPredictionService struct {
	mock.Mock
}

func (m *MockPredictionService) PredictFromImage(ctx context.Context, contents []byte) (*types.PredictResponse, error) {
	args := m.Called(ctx, contents)
	if resp := args.Get(0); resp != nil {
		return resp.(*types.PredictResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func multipartImage(t *testing.T, contents []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", "scene.jpg")
	require.NoError(t, err)
	_, err = part.Write(contents)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestHandler_Predict(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("returns the full prediction payload", func(t *testing.T) {
		mockService := new(MockPredictionService)
		mockService.On("PredictFromImage", mock.Anything, []byte("image-data")).
			Return(&types.PredictResponse{
				RiskLevel:     "high",
				Confidence:    0.85,
				AffectedAreas: []string{"Immediate fire zone"},
				Recommendations: types.PredictRecommendations{
					Infrastructure: []string{"Secure power lines in affected zone"},
					Evacuation:     []string{"Route 1: Clear"},
				},
			}, nil)
		handler := NewHandler(mockService, 10, logger)

		body, contentType := multipartImage(t, []byte("image-data"))
		req := httptest.NewRequest(http.MethodPost, "/api/predict", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		handler.Predict(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var payload map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		assert.Equal(t, "high", payload["risk_level"])
		assert.Equal(t, 0.85, payload["confidence"])
		recs, ok := payload["recommendations"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, recs, "infrastructure")
		assert.Contains(t, recs, "evacuation")
		mockService.AssertExpectations(t)
	})

	t.Run("missing image part is a 400 with a detail", func(t *testing.T) {
		handler := NewHandler(new(MockPredictionService), 10, logger)

		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		require.NoError(t, w.WriteField("note", "no image here"))
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/predict", &buf)
		req.Header.Set("Content-Type", w.FormDataContentType())
		rec := httptest.NewRecorder()
		handler.Predict(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var payload map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		assert.Equal(t, "image file is required", payload["detail"])
	})

	t.Run("service failure is a 500", func(t *testing.T) {
		mockService := new(MockPredictionService)
		mockService.On("PredictFromImage", mock.Anything, mock.Anything).
			Return(nil, errors.New("failed to decode image: image: unknown format"))
		handler := NewHandler(mockService, 10, logger)

		body, contentType := multipartImage(t, []byte("garbage"))
		req := httptest.NewRequest(http.MethodPost, "/api/predict", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		handler.Predict(rec, req)

		require.Equal(t, http.StatusInternalServerError, rec.Code)

		var payload map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		assert.NotEmpty(t, payload["detail"])
	})
}
