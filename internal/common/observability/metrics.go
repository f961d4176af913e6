package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/trace"
)

// Observability records store load telemetry through OpenTelemetry and
// exposes it on the prometheus registry.
type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	tracer        trace.Tracer
	loadCounter   otelmetric.Int64Counter
	loadDuration  otelmetric.Float64Histogram
}

// New wires a meter provider to a prometheus exporter. When the exporter
// cannot be created the returned value records nothing.
func New(serviceName string, opts ...prometheus.Option) (*Observability, error) {
	obs := &Observability{tracer: otel.Tracer(serviceName)}

	exporter, err := prometheus.New(opts...)
	if err != nil {
		return obs, err
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	loadCounter, err := meter.Int64Counter(
		"listing.loads",
		otelmetric.WithDescription("Number of listing store loads"),
	)
	if err != nil {
		return obs, err
	}

	loadDuration, err := meter.Float64Histogram(
		"listing.load.duration",
		otelmetric.WithDescription("Listing store load duration"),
		otelmetric.WithUnit("ms"),
	)
	if err != nil {
		return obs, err
	}

	obs.meterProvider = provider
	obs.meter = meter
	obs.loadCounter = loadCounter
	obs.loadDuration = loadDuration
	return obs, nil
}

// NewNoop returns an Observability that records nothing.
func NewNoop() *Observability {
	return &Observability{tracer: otel.Tracer("noop")}
}

// RecordLoad counts one load and its duration.
func (o *Observability) RecordLoad(ctx context.Context, mode, status string, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := otelmetric.WithAttributes(
		attribute.String("mode", mode),
		attribute.String("status", status),
	)
	if o.loadCounter != nil {
		o.loadCounter.Add(ctx, 1, attrs)
	}
	if o.loadDuration != nil {
		o.loadDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
	}
}

// Tracer returns the tracer used for upstream spans.
func (o *Observability) Tracer() trace.Tracer {
	if o == nil || o.tracer == nil {
		return otel.Tracer("pixisphere")
	}
	return o.tracer
}

func (o *Observability) Shutdown() {
	if o == nil || o.meterProvider == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = o.meterProvider.Shutdown(ctx)
}
