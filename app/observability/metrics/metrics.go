package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	DatasetLoadsTotal      metric.Int64Counter
	DatasetLoadErrorsTotal metric.Int64Counter
	CatalogSize            metric.Int64Gauge
	QueryRequestsTotal     metric.Int64Counter
	QueryDurationSeconds   metric.Float64Histogram
	QueryCacheHitsTotal    metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics creates the instruments once, from the global MeterProvider,
// and returns them. Later calls return the same instance.
func InitAppMetrics() *AppMetrics {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("TravelRecommendation")
		var err error
		m := &AppMetrics{}

		m.DatasetLoadsTotal, err = meter.Int64Counter(
			"dataset_loads_total",
			metric.WithDescription("Total number of successful dataset loads"),
			metric.WithUnit("{load}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create dataset_loads_total: %v", err)
		}

		m.DatasetLoadErrorsTotal, err = meter.Int64Counter(
			"dataset_load_errors_total",
			metric.WithDescription("Total number of failed dataset loads"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create dataset_load_errors_total: %v", err)
		}

		m.CatalogSize, err = meter.Int64Gauge(
			"catalog_destinations",
			metric.WithDescription("Number of destinations in the installed catalog"),
			metric.WithUnit("{destination}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create catalog_destinations: %v", err)
		}

		m.QueryRequestsTotal, err = meter.Int64Counter(
			"query_requests_total",
			metric.WithDescription("Total number of destination queries"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create query_requests_total: %v", err)
		}

		m.QueryDurationSeconds, err = meter.Float64Histogram(
			"query_duration_seconds",
			metric.WithDescription("Duration of destination queries in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create query_duration_seconds: %v", err)
		}

		m.QueryCacheHitsTotal, err = meter.Int64Counter(
			"query_cache_hits_total",
			metric.WithDescription("Total number of queries answered from cache"),
			metric.WithUnit("{hit}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create query_cache_hits_total: %v", err)
		}

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
	return appMetrics
}
