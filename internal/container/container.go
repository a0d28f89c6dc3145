package container

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	database "github.com/AmmaarShareef/phoenix-aid-backend/app/db"
	appMetrics "github.com/AmmaarShareef/phoenix-aid-backend/app/observability/metrics"
	"github.com/AmmaarShareef/phoenix-aid-backend/config"
	generativeAI "github.com/AmmaarShareef/phoenix-aid-backend/internal/api/generative_ai"
	"github.com/AmmaarShareef/phoenix-aid-backend/internal/api/infrastructure"
	"github.com/AmmaarShareef/phoenix-aid-backend/internal/api/prediction"
	"github.com/AmmaarShareef/phoenix-aid-backend/internal/api/status"
	"github.com/AmmaarShareef/phoenix-aid-backend/internal/api/upload"
	"github.com/AmmaarShareef/phoenix-aid-backend/internal/api/wildfire"
	"github.com/AmmaarShareef/phoenix-aid-backend/internal/ml"
)

// Container holds all application dependencies
type Container struct {
	Config                *config.Config
	Logger                *slog.Logger
	Pool                  *pgxpool.Pool
	StatusHandler         *status.Handler
	UploadHandler         *upload.Handler
	PredictionHandler     *prediction.Handler
	InfrastructureHandler *infrastructure.Handler
	WildfireHandler       *wildfire.Handler
}

// NewContainer initializes and returns a new dependency container
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	dbConfig, err := database.NewDatabaseConfig(cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		return nil, err
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		return nil, err
	}

	// The model is loaded once here, never per request.
	predictor, err := ml.New(cfg.Model.Provider)
	if err != nil {
		logger.Error("Failed to initialize predictor", slog.Any("error", err))
		return nil, err
	}
	logger.Info("Predictor ready", slog.String("provider", predictor.Name()))

	metrics := appMetrics.Get()

	wildfireRepo := wildfire.NewRepository(pool, logger)
	wildfireService := wildfire.NewServiceImpl(wildfireRepo, cfg.Cache.ActiveTTL, logger).WithMetrics(metrics)
	wildfireHandler := wildfire.NewHandler(wildfireService, logger)

	statusService := status.NewServiceImpl(wildfireRepo, cfg.Cache.StatusTTL, logger)
	statusHandler := status.NewHandler(statusService, logger)

	uploadRepo := upload.NewRepository(pool, logger)
	uploadService := upload.NewServiceImpl(predictor, uploadRepo, wildfireService, cfg.Uploads.Dir, logger).WithMetrics(metrics)
	uploadHandler := upload.NewHandler(uploadService, cfg.Uploads.MaxSizeMB, logger).WithMetrics(metrics)

	predictionService := prediction.NewServiceImpl(predictor, logger).WithMetrics(metrics)
	predictionHandler := prediction.NewHandler(predictionService, cfg.Uploads.MaxSizeMB, logger)

	infrastructureService := infrastructure.NewServiceImpl(logger)
	if cfg.AI.EnrichRecommendations {
		if enricher, err := generativeAI.NewAIClient(ctx, cfg.AI.Model); err != nil {
			logger.Warn("Recommendation enrichment disabled", slog.Any("error", err))
		} else {
			infrastructureService = infrastructureService.WithEnricher(enricher)
		}
	}
	infrastructureHandler := infrastructure.NewHandler(infrastructureService, logger)

	return &Container{
		Config:                cfg,
		Logger:                logger,
		Pool:                  pool,
		StatusHandler:         statusHandler,
		UploadHandler:         uploadHandler,
		PredictionHandler:     predictionHandler,
		InfrastructureHandler: infrastructureHandler,
		WildfireHandler:       wildfireHandler,
	}, nil
}

// Close releases pooled resources.
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}
