package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	UploadRequestsTotal       metric.Int64Counter
	PredictionsTotal          metric.Int64Counter
	PredictionDurationSeconds metric.Float64Histogram
	DetectionsStoredTotal     metric.Int64Counter
	DbQueryDurationSeconds    metric.Float64Histogram
	DbQueryErrorsTotal        metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metric instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("phoenix-aid-api")
		var err error
		m := &AppMetrics{}

		m.UploadRequestsTotal, err = meter.Int64Counter(
			"upload_requests_total",
			metric.WithDescription("Total number of image upload requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create upload_requests_total: %v", err)
		}

		m.PredictionsTotal, err = meter.Int64Counter(
			"predictions_total",
			metric.WithDescription("Total number of model predictions run"),
			metric.WithUnit("{prediction}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create predictions_total: %v", err)
		}

		m.PredictionDurationSeconds, err = meter.Float64Histogram(
			"prediction_duration_seconds",
			metric.WithDescription("Duration of model predictions in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create prediction_duration_seconds: %v", err)
		}

		m.DetectionsStoredTotal, err = meter.Int64Counter(
			"detections_stored_total",
			metric.WithDescription("Total number of wildfire detections persisted"),
			metric.WithUnit("{detection}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create detections_stored_total: %v", err)
		}

		m.DbQueryDurationSeconds, err = meter.Float64Histogram(
			"db_query_duration_seconds",
			metric.WithDescription("Duration of database queries in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create db_query_duration_seconds: %v", err)
		}

		m.DbQueryErrorsTotal, err = meter.Int64Counter(
			"db_query_errors_total",
			metric.WithDescription("Total number of database query errors"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create db_query_errors_total: %v", err)
		}

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}
