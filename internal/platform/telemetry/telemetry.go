// Package telemetry bootstraps the OpenTelemetry trace and metric pipelines
// and owns the instruments the service records against.
//
// Both pipelines pick an exporter by name: "stdout" pretty-prints for local
// runs and "otlp" ships to a collector over HTTP.
//
//	tp, err := telemetry.InitTracer(ctx, "todo-service", telemetry.ExporterOTLP, "http://otel-collector:4318")
//	mp, err := telemetry.InitMeter(ctx, "todo-service", telemetry.ExporterOTLP, "http://otel-collector:4318")
//	metrics, err := telemetry.NewMetrics(mp, "todo-service")
//
// RecordOutcome counts the success or failure of a Result per operation.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"

	"github.com/jsamuelsen11/go-result/pkg/result"
)

// Supported exporter names.
const (
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// ErrUnsupportedExporter is returned for exporter names other than
// ExporterStdout and ExporterOTLP.
var ErrUnsupportedExporter = errors.New("unsupported exporter")

// errMissingEndpoint is returned when the otlp exporter has no endpoint.
var errMissingEndpoint = errors.New("otlp exporter requires an endpoint")

// Attribute keys for metric labels.
var (
	AttrHTTPMethod  = attribute.Key("http.method")
	AttrHTTPStatus  = attribute.Key("http.status_code")
	AttrHTTPRoute   = attribute.Key("http.route")
	AttrPeerService = attribute.Key("peer.service")
	AttrResult      = attribute.Key("result")
	AttrOperation   = attribute.Key("operation")
	AttrErrorType   = attribute.Key("error.type")
)

// Values of AttrResult on the outcome and server request counters.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds pre-registered OpenTelemetry metric instruments.
type Metrics struct {
	ServerRequestDuration metric.Float64Histogram
	ServerRequestTotal    metric.Int64Counter
	ClientRequestDuration metric.Float64Histogram
	ClientRequestTotal    metric.Int64Counter
	ResultOutcomeTotal    metric.Int64Counter
}

// InitTracer creates and registers a global TracerProvider.
//
// The exporter parameter selects the span exporter: ExporterOTLP uses
// OTLP/HTTP with the given endpoint; ExporterStdout uses a pretty-printed
// stdout exporter for development. Other values are rejected.
//
// The returned TracerProvider must be shut down when the application exits.
func InitTracer(ctx context.Context, serviceName, exporter, endpoint string) (*sdktrace.TracerProvider, error) {
	res, err := newResource(serviceName)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	spanExporter, err := newSpanExporter(ctx, exporter, endpoint)
	if err != nil {
		return nil, fmt.Errorf("creating span exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(spanExporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp, nil
}

// InitMeter creates and registers a global MeterProvider.
//
// The exporter parameter selects the metric exporter with the same rules as
// InitTracer.
//
// The returned MeterProvider must be shut down when the application exits.
func InitMeter(ctx context.Context, serviceName, exporter, endpoint string) (*sdkmetric.MeterProvider, error) {
	res, err := newResource(serviceName)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	metricExporter, err := newMetricExporter(ctx, exporter, endpoint)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	return mp, nil
}

type instrument struct {
	name, description, unit string
}

var (
	serverDuration = instrument{"http.server.request.duration", "Duration of incoming HTTP requests", "s"}
	serverTotal    = instrument{"http.server.request.total", "Total number of incoming HTTP requests", "{request}"}
	clientDuration = instrument{"http.client.request.duration", "Duration of outgoing HTTP requests", "s"}
	clientTotal    = instrument{"http.client.request.total", "Total number of outgoing HTTP requests", "{request}"}
	outcomeTotal   = instrument{"result.outcome.total", "Total number of Result outcomes per application operation", "{outcome}"}
)

// NewMetrics registers every instrument on a meter named after serviceName.
// The first registration error aborts construction.
func NewMetrics(mp metric.MeterProvider, serviceName string) (*Metrics, error) {
	meter := mp.Meter(serviceName)
	var errs []error

	histogram := func(in instrument) metric.Float64Histogram {
		h, err := meter.Float64Histogram(in.name, metric.WithDescription(in.description), metric.WithUnit(in.unit))
		if err != nil {
			errs = append(errs, fmt.Errorf("creating %s: %w", in.name, err))
		}
		return h
	}
	counter := func(in instrument) metric.Int64Counter {
		c, err := meter.Int64Counter(in.name, metric.WithDescription(in.description), metric.WithUnit(in.unit))
		if err != nil {
			errs = append(errs, fmt.Errorf("creating %s: %w", in.name, err))
		}
		return c
	}

	m := &Metrics{
		ServerRequestDuration: histogram(serverDuration),
		ServerRequestTotal:    counter(serverTotal),
		ClientRequestDuration: histogram(clientDuration),
		ClientRequestTotal:    counter(clientTotal),
		ResultOutcomeTotal:    counter(outcomeTotal),
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return m, nil
}

// RecordOutcome adds one to counter for the outcome of r. Failures are
// labelled with the type of their first error, or "none" for a failure that
// carries no errors.
func RecordOutcome[V any](ctx context.Context, counter metric.Int64Counter, operation string, r result.Result[V]) {
	attrs := []attribute.KeyValue{AttrOperation.String(operation)}
	if r.IsSuccess() {
		attrs = append(attrs, AttrResult.String(OutcomeSuccess))
	} else {
		errType := "none"
		if errs := r.Errors(); len(errs) > 0 {
			errType = errs[0].Type.String()
		}
		attrs = append(attrs, AttrResult.String(OutcomeFailure), AttrErrorType.String(errType))
	}
	counter.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func newResource(serviceName string) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
}

func newSpanExporter(ctx context.Context, exporter, endpoint string) (sdktrace.SpanExporter, error) {
	switch exporter {
	case ExporterStdout:
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	case ExporterOTLP:
		target, insecure, err := otlpTarget(endpoint)
		if err != nil {
			return nil, err
		}
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(target)}
		if insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		return otlptracehttp.New(ctx, opts...)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedExporter, exporter)
}

func newMetricExporter(ctx context.Context, exporter, endpoint string) (sdkmetric.Exporter, error) {
	switch exporter {
	case ExporterStdout:
		return stdoutmetric.New()
	case ExporterOTLP:
		target, insecure, err := otlpTarget(endpoint)
		if err != nil {
			return nil, err
		}
		opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(target)}
		if insecure {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}
		return otlpmetrichttp.New(ctx, opts...)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedExporter, exporter)
}

// otlpTarget turns a collector URL such as "http://otel-collector:4318"
// into the host:port the OTLP exporters expect. Anything but an https URL
// is dialled without TLS; a bare host:port is used as given.
func otlpTarget(endpoint string) (target string, insecure bool, err error) {
	if endpoint == "" {
		return "", false, errMissingEndpoint
	}
	u, perr := url.Parse(endpoint)
	if perr != nil || u.Host == "" {
		return endpoint, true, nil
	}
	return u.Host, u.Scheme != "https", nil
}
