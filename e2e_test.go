package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	appMiddleware "github.com/AmmaarShareef/phoenix-aid-backend/app/middleware"
	"github.com/AmmaarShareef/phoenix-aid-backend/internal/api/infrastructure"
	"github.com/AmmaarShareef/phoenix-aid-backend/internal/api/prediction"
	"github.com/AmmaarShareef/phoenix-aid-backend/internal/api/status"
	"github.com/AmmaarShareef/phoenix-aid-backend/internal/api/upload"
	"github.com/AmmaarShareef/phoenix-aid-backend/internal/api/wildfire"
	"github.com/AmmaarShareef/phoenix-aid-backend/internal/ml"
	"github.com/AmmaarShareef/phoenix-aid-backend/internal/router"
	"github.com/AmmaarShareef/phoenix-aid-backend/internal/types"
)

// memDetectionStore is an in-memory wildfire.Repository so the whole request
// path runs without Postgres.
type memDetectionStore struct {
	mu     sync.Mutex
	nextID int64
	rows   []types.WildfireDetection
}

func (s *memDetectionStore) CreateDetection(_ context.Context, d types.WildfireDetection) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	d.ID = s.nextID
	if d.DetectedAt.IsZero() {
		d.DetectedAt = time.Now().UTC()
	}
	if d.Status == "" {
		d.Status = types.StatusActive
	}
	d.CreatedAt = time.Now().UTC()
	s.rows = append(s.rows, d)
	return d.ID, nil
}

func (s *memDetectionStore) GetDetectionsInBox(_ context.Context, box types.BoundingBox) ([]types.WildfireDetection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []types.WildfireDetection
	for _, d := range s.rows {
		if d.Status != types.StatusActive {
			continue
		}
		if d.Lat >= box.MinLat && d.Lat <= box.MaxLat && d.Lng >= box.MinLng && d.Lng <= box.MaxLng {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *memDetectionStore) GetActiveDetections(_ context.Context) ([]types.WildfireDetection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []types.WildfireDetection
	for _, d := range s.rows {
		if d.Status == types.StatusActive {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *memDetectionStore) UpdateDetectionStatus(_ context.Context, id int64, st types.DetectionStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows[i].Status = st
			return nil
		}
	}
	return wildfire.ErrDetectionNotFound
}

type memImageStore struct {
	mu   sync.Mutex
	rows []types.WildfireImage
}

func (s *memImageStore) SaveImage(_ context.Context, img types.WildfireImage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, img)
	return nil
}

// APIContractSuite exercises the documented frontend contract end to end
// against an in-process server.
type APIContractSuite struct {
	suite.Suite
	server     *httptest.Server
	client     *http.Client
	detections *memDetectionStore
	images     *memImageStore
	authToken  string
}

func (s *APIContractSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.detections = &memDetectionStore{}
	s.images = &memImageStore{}

	predictor := ml.NewBaselinePredictor()
	wildfireService := wildfire.NewServiceImpl(s.detections, 15*time.Second, logger)
	statusService := status.NewServiceImpl(s.detections, time.Millisecond, logger)
	uploadService := upload.NewServiceImpl(predictor, s.images, wildfireService, s.T().TempDir(), logger)
	predictionService := prediction.NewServiceImpl(predictor, logger)
	infrastructureService := infrastructure.NewServiceImpl(logger)

	handler := router.SetupRouter(&router.Config{
		StatusHandler:          status.NewHandler(statusService, logger),
		UploadHandler:          upload.NewHandler(uploadService, 10, logger),
		PredictionHandler:      prediction.NewHandler(predictionService, 10, logger),
		InfrastructureHandler:  infrastructure.NewHandler(infrastructureService, logger),
		WildfireHandler:        wildfire.NewHandler(wildfireService, logger),
		AuthenticateMiddleware: appMiddleware.Authenticate,
	})

	s.server = httptest.NewServer(handler)
	s.client = &http.Client{Timeout: 10 * time.Second}
	s.authToken = s.signToken()
}

func (s *APIContractSuite) TearDownTest() {
	s.server.Close()
}

func (s *APIContractSuite) signToken() string {
	claims := &appMiddleware.Claims{
		UserID: "op-1",
		Role:   "operator",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(appMiddleware.JwtSecretKey)
	require.NoError(s.T(), err)
	return token
}

func (s *APIContractSuite) getJSON(path string, out any) *http.Response {
	resp, err := s.client.Get(s.server.URL + path)
	require.NoError(s.T(), err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(s.T(), json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func (s *APIContractSuite) imagePNG(c color.RGBA) []byte {
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(s.T(), png.Encode(&buf, img))
	return buf.Bytes()
}

func (s *APIContractSuite) uploadImage(contents []byte, fields map[string]string) *http.Response {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", "scene.png")
	require.NoError(s.T(), err)
	_, err = part.Write(contents)
	require.NoError(s.T(), err)
	for k, v := range fields {
		require.NoError(s.T(), w.WriteField(k, v))
	}
	require.NoError(s.T(), w.Close())

	req, err := http.NewRequest(http.MethodPost, s.server.URL+"/api/upload-image", &buf)
	require.NoError(s.T(), err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := s.client.Do(req)
	require.NoError(s.T(), err)
	return resp
}

func (s *APIContractSuite) TestStatusEndpoint() {
	var payload map[string]any
	resp := s.getJSON("/api/status", &payload)

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("operational", payload["status"])
	s.Equal(float64(0), payload["active_wildfires"])
	s.Equal("low", payload["risk_level"])
	s.NotEmpty(payload["last_update"])
}

func (s *APIContractSuite) TestUploadedFireAppearsOnTheMap() {
	// Upload a flame-colored image with coordinates.
	resp := s.uploadImage(s.imagePNG(color.RGBA{R: 255, G: 80, B: 0, A: 255}), map[string]string{
		"latitude":  "37.7749",
		"longitude": "-122.4194",
		"timestamp": "2024-01-01T12:00:00Z",
	})
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var uploaded map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&uploaded))
	s.Equal("Image uploaded successfully", uploaded["message"])
	s.Equal("scene.png", uploaded["filename"])
	location, ok := uploaded["location"].(map[string]any)
	s.Require().True(ok, "location must be echoed when coordinates are sent")
	s.Equal(37.7749, location["lat"])

	// It should now show up nearby and in the active set.
	var nearby map[string]any
	s.getJSON("/api/wildfires/nearby?lat=37.7749&lng=-122.4194&radius=10", &nearby)
	s.Equal(float64(1), nearby["total"])
	s.Equal(float64(10), nearby["radius_km"])

	var active map[string]any
	s.getJSON("/api/wildfires/active", &active)
	s.Equal(float64(1), active["total"])

	// Status cache TTL is a millisecond in tests; let it lapse.
	time.Sleep(5 * time.Millisecond)
	var st map[string]any
	s.getJSON("/api/status", &st)
	s.Equal(float64(1), st["active_wildfires"])
	s.NotEqual("low", st["risk_level"])
}

func (s *APIContractSuite) TestUploadInvalidatesActiveWildfireCache() {
	// Prime the active-set cache while it is empty.
	var before map[string]any
	s.getJSON("/api/wildfires/active", &before)
	s.Require().Equal(float64(0), before["total"])

	resp := s.uploadImage(s.imagePNG(color.RGBA{R: 255, G: 80, B: 0, A: 255}), map[string]string{
		"latitude":  "37.7749",
		"longitude": "-122.4194",
	})
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	// The new detection must be visible immediately, not after the TTL lapses.
	var after map[string]any
	s.getJSON("/api/wildfires/active", &after)
	s.Equal(float64(1), after["total"])
}

func (s *APIContractSuite) TestUploadWithoutLocationOmitsLocationKey() {
	resp := s.uploadImage(s.imagePNG(color.RGBA{R: 30, G: 140, B: 40, A: 255}), nil)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var payload map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&payload))
	s.NotContains(payload, "location")

	var active map[string]any
	s.getJSON("/api/wildfires/active", &active)
	s.Equal(float64(0), active["total"])
}

func (s *APIContractSuite) TestUnreadableImageIsA500WithDetail() {
	resp := s.uploadImage([]byte("this is not an image"), nil)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusInternalServerError, resp.StatusCode)

	var payload map[string]string
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&payload))
	s.NotEmpty(payload["detail"])
}

func (s *APIContractSuite) TestPredictEndpoint() {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", "scene.png")
	s.Require().NoError(err)
	_, err = part.Write(s.imagePNG(color.RGBA{R: 255, G: 80, B: 0, A: 255}))
	s.Require().NoError(err)
	s.Require().NoError(w.Close())

	req, err := http.NewRequest(http.MethodPost, s.server.URL+"/api/predict", &buf)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var payload map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&payload))
	s.True(types.ValidRiskLevel(payload["risk_level"].(string)))
	s.Contains(payload, "affected_areas")
	recs, ok := payload["recommendations"].(map[string]any)
	s.Require().True(ok)
	s.Contains(recs, "infrastructure")
	s.Contains(recs, "evacuation")
}

func (s *APIContractSuite) TestInfrastructureRecommendations() {
	body := `{"wildfire_id": "wf-1", "location": {"lat": 37.78, "lng": -122.42}, "severity": "high", "affected_infrastructure": ["power_lines", "water_supply"]}`
	resp, err := s.client.Post(s.server.URL+"/api/infrastructure/recommendations", "application/json", bytes.NewBufferString(body))
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var payload types.RecommendationsResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&payload))
	s.Len(payload.Recommendations, 2)
	s.Equal("power_lines", payload.Recommendations[0].InfrastructureType)
	s.NotEmpty(payload.EvacuationRoutes.Status)
}

func (s *APIContractSuite) TestNearbyValidation() {
	resp := s.getJSON("/api/wildfires/nearby?lng=-122.4", nil)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *APIContractSuite) TestCORSPreflightForFrontendOrigins() {
	for _, origin := range []string{"http://localhost:3000", "http://127.0.0.1:3000"} {
		req, err := http.NewRequest(http.MethodOptions, s.server.URL+"/api/status", nil)
		s.Require().NoError(err)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		resp, err := s.client.Do(req)
		s.Require().NoError(err)
		resp.Body.Close()
		s.Equal(origin, resp.Header.Get("Access-Control-Allow-Origin"), origin)
	}
}

func (s *APIContractSuite) TestOperatorDetectionLifecycle() {
	report := func(token string) *http.Response {
		body := `{"lat": 38.5, "lng": -121.7, "intensity": "critical", "confidence": 0.93, "area": "Yolo County"}`
		req, err := http.NewRequest(http.MethodPost, s.server.URL+"/api/wildfires", bytes.NewBufferString(body))
		s.Require().NoError(err)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := s.client.Do(req)
		s.Require().NoError(err)
		return resp
	}

	// Without a token the route is closed.
	resp := report("")
	resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	resp = report(s.authToken)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var created map[string]int64
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&created))
	s.Require().NotZero(created["id"])

	// Contain it and verify it drops off the active map.
	patch, err := http.NewRequest(http.MethodPatch,
		fmt.Sprintf("%s/api/wildfires/%d/status", s.server.URL, created["id"]),
		bytes.NewBufferString(`{"status": "contained"}`))
	s.Require().NoError(err)
	patch.Header.Set("Content-Type", "application/json")
	patch.Header.Set("Authorization", "Bearer "+s.authToken)
	patchResp, err := s.client.Do(patch)
	s.Require().NoError(err)
	patchResp.Body.Close()
	s.Equal(http.StatusOK, patchResp.StatusCode)

	var active map[string]any
	s.getJSON("/api/wildfires/active", &active)
	s.Equal(float64(0), active["total"])
}

func TestAPIContractSuite(t *testing.T) {
	suite.Run(t, new(APIContractSuite))
}
