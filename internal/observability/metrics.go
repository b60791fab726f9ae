package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// MetricsProvider wraps the OpenTelemetry meter provider with shutdown capabilities.
type MetricsProvider struct {
	provider *sdkmetric.MeterProvider
}

// InitMetrics initializes the global OpenTelemetry meter provider.
// Returns a MetricsProvider that must be shut down on application exit.
func InitMetrics(ctx context.Context, cfg Config) (*MetricsProvider, error) {
	opts := []sdkmetric.Option{sdkmetric.WithResource(cfg.resource())}

	if cfg.OTLPEndpoint != "" {
		exporter, err := otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(cfg.OTLPEndpoint),
			otlpmetricgrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("create OTLP metric exporter: %w", err)
		}
		opts = append(opts, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)))
	}

	provider := sdkmetric.NewMeterProvider(opts...)

	otel.SetMeterProvider(provider)

	return &MetricsProvider{provider: provider}, nil
}

// Shutdown flushes any remaining metrics and shuts down the provider.
func (mp *MetricsProvider) Shutdown(ctx context.Context) error {
	if mp.provider == nil {
		return nil
	}
	return mp.provider.Shutdown(ctx)
}

// Meter returns a meter for the given instrumentation name.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Instruments records one counter, one error counter and one latency
// histogram per operation, labelled by operation name.
type Instruments struct {
	requests metric.Int64Counter
	failures metric.Int64Counter
	latency  metric.Float64Histogram
}

// NewInstruments creates the operation instruments on m. prefix names the
// surface, e.g. "http" yields http_operations_total.
func NewInstruments(m metric.Meter, prefix string) (*Instruments, error) {
	requests, err := m.Int64Counter(prefix+"_operations_total",
		metric.WithDescription("Total time operations served"))
	if err != nil {
		return nil, fmt.Errorf("create requests counter: %w", err)
	}
	failures, err := m.Int64Counter(prefix+"_operation_errors_total",
		metric.WithDescription("Total time operations that failed"))
	if err != nil {
		return nil, fmt.Errorf("create errors counter: %w", err)
	}
	latency, err := m.Float64Histogram(prefix+"_operation_duration_seconds",
		metric.WithDescription("Time operation latency"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("create latency histogram: %w", err)
	}
	return &Instruments{requests: requests, failures: failures, latency: latency}, nil
}

// Record adds one observation for op. code is the error code on failure and
// empty on success.
func (in *Instruments) Record(ctx context.Context, op, code string, elapsed time.Duration) {
	opAttr := metric.WithAttributes(attribute.String("operation", op))
	in.requests.Add(ctx, 1, opAttr)
	in.latency.Record(ctx, elapsed.Seconds(), opAttr)
	if code != "" {
		in.failures.Add(ctx, 1, metric.WithAttributes(
			attribute.String("operation", op),
			attribute.String("code", code),
		))
	}
}
