package upload

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/AmmaarShareef/phoenix-aid-backend/internal/api/wildfire"
	"github.com/AmmaarShareef/phoenix-aid-backend/internal/types"
)

var _ Repository = (*PostgresRepository)(nil)

// Repository persists uploaded image metadata and analysis results.
type Repository interface {
	SaveImage(ctx context.Context, img types.WildfireImage) error
}

type PostgresRepository struct {
	logger *slog.Logger
	pgpool wildfire.PgxPool
}

func NewRepository(pool wildfire.PgxPool, logger *slog.Logger) *PostgresRepository {
	return &PostgresRepository{
		logger: logger,
		pgpool: pool,
	}
}

func (r *PostgresRepository) SaveImage(ctx context.Context, img types.WildfireImage) error {
	tx, err := r.pgpool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
        INSERT INTO wildfire_images (
            id, filename, file_path, original_filename, file_size,
            latitude, longitude, uploaded_at, analysis_result,
            risk_level, confidence, status
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
    `
	if _, err = tx.Exec(ctx, query,
		img.ID, img.Filename, img.FilePath, img.OriginalFilename, img.FileSize,
		img.Latitude, img.Longitude, img.UploadedAt, img.AnalysisResult,
		img.RiskLevel, img.Confidence, img.Status,
	); err != nil {
		return fmt.Errorf("failed to insert image record: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.Info("Uploaded image recorded",
		slog.String("id", img.ID.String()),
		slog.String("filename", img.Filename),
		slog.String("risk_level", string(img.RiskLevel)))

	return nil
}
