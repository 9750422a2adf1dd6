// Package observability provides OpenTelemetry instrumentation for tracing and metrics.
package observability

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// InitMetrics initializes the OpenTelemetry metrics provider with a Prometheus exporter.
// It returns the HTTP handler for the /metrics endpoint and a shutdown function.
// The shutdown function should be called on application exit for graceful cleanup.
func InitMetrics() (http.Handler, func(context.Context) error, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)

	otel.SetMeterProvider(provider)

	return promhttp.Handler(), provider.Shutdown, nil
}

// ServerMetrics holds the counters the HTTP layer records.
type ServerMetrics struct {
	JobsCreated   metric.Int64Counter
	JobsRejected  metric.Int64Counter
	StatusChanges metric.Int64Counter
}

// NewServerMetrics registers the server's counters on the global meter.
func NewServerMetrics() (*ServerMetrics, error) {
	meter := otel.Meter("washplane-server")

	created, err := meter.Int64Counter("washplane.jobs.created",
		metric.WithDescription("Jobs admitted and created"))
	if err != nil {
		return nil, err
	}

	rejected, err := meter.Int64Counter("washplane.jobs.rejected",
		metric.WithDescription("Job creation requests rejected by capacity admission"))
	if err != nil {
		return nil, err
	}

	changes, err := meter.Int64Counter("washplane.jobs.status_changes",
		metric.WithDescription("Accepted status transitions"))
	if err != nil {
		return nil, err
	}

	return &ServerMetrics{
		JobsCreated:   created,
		JobsRejected:  rejected,
		StatusChanges: changes,
	}, nil
}
