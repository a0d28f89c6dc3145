package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/AmmaarShareef/phoenix-aid-backend/internal/api/infrastructure"
	"github.com/AmmaarShareef/phoenix-aid-backend/internal/api/prediction"
	"github.com/AmmaarShareef/phoenix-aid-backend/internal/api/status"
	"github.com/AmmaarShareef/phoenix-aid-backend/internal/api/upload"
	"github.com/AmmaarShareef/phoenix-aid-backend/internal/api/wildfire"
)

// localDevOrigins are always allowed; the frontend dev server runs there.
var localDevOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
}

// Config contains dependencies needed for the router setup.
type Config struct {
	StatusHandler          *status.Handler
	UploadHandler          *upload.Handler
	PredictionHandler      *prediction.Handler
	InfrastructureHandler  *infrastructure.Handler
	WildfireHandler        *wildfire.Handler
	AuthenticateMiddleware func(http.Handler) http.Handler
	ExtraOrigins           []string
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, requestID, recoverer) are expected to be
// applied before mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   append(append([]string{}, localDevOrigins...), cfg.ExtraOrigins...),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	r.Route("/api", func(r chi.Router) {
		// --- Public contract routes ---
		r.Group(func(r chi.Router) {
			r.Get("/status", cfg.StatusHandler.GetStatus)
			r.Post("/upload-image", cfg.UploadHandler.UploadImage)
			r.Post("/predict", cfg.PredictionHandler.Predict)
			r.Post("/infrastructure/recommendations", cfg.InfrastructureHandler.GetRecommendations)
			r.Get("/wildfires/nearby", cfg.WildfireHandler.GetNearby)
			r.Get("/wildfires/active", cfg.WildfireHandler.GetActive)
		})

		// --- Operator routes (JWT) ---
		r.Group(func(r chi.Router) {
			r.Use(cfg.AuthenticateMiddleware)

			r.Post("/wildfires", cfg.WildfireHandler.Report)
			r.Patch("/wildfires/{id}/status", cfg.WildfireHandler.UpdateStatus)
		})
	})

	return r
}
