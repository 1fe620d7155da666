package trace

import (
	"context"
	"time"

	otel "go.opentelemetry.io/otel"

	host "go.opentelemetry.io/contrib/instrumentation/host"
	runtimemetrics "go.opentelemetry.io/contrib/instrumentation/runtime"
	otlpmetricgrpc "go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	otlptracegrpc "go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	stdoutmetric "go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	stdouttrace "go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	metricsdk "go.opentelemetry.io/otel/sdk/metric"
	resource "go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	logger "github.com/openwms/procflow/pkg/middleware/logger"
)

type InitConfig struct {
	ServiceName    string
	Version        string
	TraceEndpoint  string
	MetricEndpoint string
}

var (
	tp *tracesdk.TracerProvider
	mp *metricsdk.MeterProvider
)

// InitTrace wires the global otel providers. Without endpoints both
// signals fall back to stdout exporters at a low sample rate, which is
// enough for local debugging.
func InitTrace(ctx context.Context, conf *InitConfig) {
	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(conf.ServiceName),
		semconv.ServiceVersion(conf.Version),
	))
	if err != nil {
		logger.Warnf(ctx, "build otel resource err: %+v", err)
		res = resource.Default()
	}

	tp = tracesdk.NewTracerProvider(
		tracesdk.WithBatcher(newTraceExporter(ctx, conf.TraceEndpoint)),
		tracesdk.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	mp = metricsdk.NewMeterProvider(
		metricsdk.WithReader(metricsdk.NewPeriodicReader(
			newMetricExporter(ctx, conf.MetricEndpoint),
			metricsdk.WithInterval(30*time.Second),
		)),
		metricsdk.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	if err := runtimemetrics.Start(); err != nil {
		logger.Warnf(ctx, "start runtime metrics err: %+v", err)
	}
	if err := host.Start(); err != nil {
		logger.Warnf(ctx, "start host metrics err: %+v", err)
	}
}

func newTraceExporter(ctx context.Context, endpoint string) tracesdk.SpanExporter {
	if endpoint == "" {
		exp, _ := stdouttrace.New(stdouttrace.WithPrettyPrint())
		return exp
	}
	exp, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		logger.Warnf(ctx, "otlp trace exporter err: %+v, falling back to stdout", err)
		fallback, _ := stdouttrace.New()
		return fallback
	}
	return exp
}

func newMetricExporter(ctx context.Context, endpoint string) metricsdk.Exporter {
	if endpoint == "" {
		exp, _ := stdoutmetric.New()
		return exp
	}
	exp, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithEndpoint(endpoint),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		logger.Warnf(ctx, "otlp metric exporter err: %+v, falling back to stdout", err)
		fallback, _ := stdoutmetric.New()
		return fallback
	}
	return exp
}

func CloseTrace() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if tp != nil {
		_ = tp.Shutdown(ctx)
	}
	if mp != nil {
		_ = mp.Shutdown(ctx)
	}
}
