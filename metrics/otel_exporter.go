package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// OTelExporter provides OpenTelemetry metrics export in Prometheus format
type OTelExporter struct {
	meterProvider *sdkmetric.MeterProvider
	collector     Collector
	instanceID    string

	meter          metric.Meter
	bookCountGauge metric.Int64ObservableGauge
}

// NewOTelExporter creates a new OpenTelemetry metrics exporter with
// Prometheus format. Each API process gets a unique instance id so
// observations from parallel instances stay distinguishable.
func NewOTelExporter(collector Collector) (*OTelExporter, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(meterProvider)

	meter := meterProvider.Meter(
		"bookstore",
		metric.WithInstrumentationVersion("1.0.0"),
	)

	oe := &OTelExporter{
		meterProvider: meterProvider,
		collector:     collector,
		instanceID:    uuid.New().String(),
		meter:         meter,
	}

	if err := oe.registerInstruments(); err != nil {
		return nil, fmt.Errorf("registering instruments: %w", err)
	}

	return oe, nil
}

// InstanceID returns the unique id of this exporter's process.
func (oe *OTelExporter) InstanceID() string {
	return oe.instanceID
}

func (oe *OTelExporter) registerInstruments() error {
	var err error

	oe.bookCountGauge, err = oe.meter.Int64ObservableGauge(
		"bookstore.books.count",
		metric.WithDescription("Number of books currently held per store"),
		metric.WithUnit("{books}"),
		metric.WithInt64Callback(oe.observeBookCounts),
	)
	if err != nil {
		return fmt.Errorf("creating book count gauge: %w", err)
	}

	return nil
}

// observeBookCounts is a callback that reports book counts per store
func (oe *OTelExporter) observeBookCounts(ctx context.Context, observer metric.Int64Observer) error {
	counts, err := oe.collector.GetBookCounts(ctx)
	if err != nil {
		return err
	}

	for store, count := range counts {
		observer.Observe(count, metric.WithAttributes(
			attribute.String("store", store),
			attribute.String("instance.id", oe.instanceID),
		))
	}

	return nil
}

// ServeHTTP serves Prometheus-formatted metrics
func (oe *OTelExporter) ServeHTTP() http.Handler {
	return promhttp.Handler()
}

// Shutdown gracefully shuts down the meter provider
func (oe *OTelExporter) Shutdown(ctx context.Context) error {
	if oe.meterProvider != nil {
		return oe.meterProvider.Shutdown(ctx)
	}
	return nil
}
