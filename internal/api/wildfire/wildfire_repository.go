package wildfire

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AmmaarShareef/phoenix-aid-backend/internal/types"
)

var _ Repository = (*PostgresRepository)(nil)

// Repository is the persistence contract for wildfire detections.
type Repository interface {
	CreateDetection(ctx context.Context, d types.WildfireDetection) (int64, error)
	GetDetectionsInBox(ctx context.Context, box types.BoundingBox) ([]types.WildfireDetection, error)
	GetActiveDetections(ctx context.Context) ([]types.WildfireDetection, error)
	UpdateDetectionStatus(ctx context.Context, id int64, status types.DetectionStatus) error
}

// PgxPool is the subset of pgxpool.Pool the repository uses; pgxmock
// implements it too.
type PgxPool interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

var _ PgxPool = (*pgxpool.Pool)(nil)

type PostgresRepository struct {
	logger *slog.Logger
	pgpool PgxPool
}

func NewRepository(pool PgxPool, logger *slog.Logger) *PostgresRepository {
	return &PostgresRepository{
		logger: logger,
		pgpool: pool,
	}
}

const detectionColumns = `id, image_id, lat, lng, intensity, confidence, area, detected_at, status, created_at`

func (r *PostgresRepository) CreateDetection(ctx context.Context, d types.WildfireDetection) (int64, error) {
	if d.Lat < -90 || d.Lat > 90 || d.Lng < -180 || d.Lng > 180 {
		return 0, fmt.Errorf("invalid coordinates: lat=%f, lng=%f", d.Lat, d.Lng)
	}

	tx, err := r.pgpool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	detectedAt := d.DetectedAt
	if detectedAt.IsZero() {
		detectedAt = time.Now().UTC()
	}
	status := d.Status
	if status == "" {
		status = types.StatusActive
	}

	var imageID *uuid.UUID
	if d.ImageID != nil {
		parsed, err := uuid.Parse(*d.ImageID)
		if err != nil {
			return 0, fmt.Errorf("invalid image id %q: %w", *d.ImageID, err)
		}
		imageID = &parsed
	}

	query := `
        INSERT INTO wildfire_detections (
            image_id, lat, lng, intensity, confidence, area, detected_at, status
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id
    `
	var id int64
	if err = tx.QueryRow(ctx, query,
		imageID, d.Lat, d.Lng, d.Intensity, d.Confidence, nullableString(d.Area), detectedAt, status,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert detection: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.Info("Wildfire detection saved",
		slog.Int64("id", id),
		slog.String("intensity", string(d.Intensity)),
		slog.Float64("lat", d.Lat),
		slog.Float64("lng", d.Lng))

	return id, nil
}

func (r *PostgresRepository) GetDetectionsInBox(ctx context.Context, box types.BoundingBox) ([]types.WildfireDetection, error) {
	query := `
        SELECT ` + detectionColumns + `
        FROM wildfire_detections
        WHERE status = 'active'
          AND lat BETWEEN $1 AND $2
          AND lng BETWEEN $3 AND $4
        ORDER BY detected_at DESC
    `
	rows, err := r.pgpool.Query(ctx, query, box.MinLat, box.MaxLat, box.MinLng, box.MaxLng)
	if err != nil {
		return nil, fmt.Errorf("failed to query detections in box: %w", err)
	}
	defer rows.Close()

	return scanDetections(rows)
}

func (r *PostgresRepository) GetActiveDetections(ctx context.Context) ([]types.WildfireDetection, error) {
	query := `
        SELECT ` + detectionColumns + `
        FROM wildfire_detections
        WHERE status = 'active'
        ORDER BY detected_at DESC
    `
	rows, err := r.pgpool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active detections: %w", err)
	}
	defer rows.Close()

	return scanDetections(rows)
}

func (r *PostgresRepository) UpdateDetectionStatus(ctx context.Context, id int64, status types.DetectionStatus) error {
	tx, err := r.pgpool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `UPDATE wildfire_detections SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update detection status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("detection %d: %w", id, ErrDetectionNotFound)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.Info("Wildfire detection status updated",
		slog.Int64("id", id),
		slog.String("status", string(status)))

	return nil
}

func scanDetections(rows pgx.Rows) ([]types.WildfireDetection, error) {
	var detections []types.WildfireDetection
	for rows.Next() {
		var (
			d       types.WildfireDetection
			imageID *uuid.UUID
			area    *string
		)
		if err := rows.Scan(
			&d.ID, &imageID, &d.Lat, &d.Lng, &d.Intensity, &d.Confidence,
			&area, &d.DetectedAt, &d.Status, &d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan detection row: %w", err)
		}
		if imageID != nil {
			s := imageID.String()
			d.ImageID = &s
		}
		if area != nil {
			d.Area = *area
		}
		detections = append(detections, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading detection rows: %w", err)
	}
	return detections, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
