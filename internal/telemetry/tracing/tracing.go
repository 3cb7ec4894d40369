package tracing

import (
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/honeycombio/honeycomb-opentelemetry-go"
	"github.com/honeycombio/otel-config-go/otelconfig"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var GlobalTracer = otel.Tracer("healthstats-backend")

// EndSpanWithErrCheck records err (if any) on the span and ends it.
// Meant to be deferred with a named error return.
func EndSpanWithErrCheck(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "ok")
	}
	span.End()
}

// HoneycombSetup configures the OpenTelemetry SDK with the honeycomb distro.
// Returned shutdown func is never nil.
func HoneycombSetup(enabled bool, serviceName string, rdb *redis.Client) (func(), error) {
	if !enabled {
		return func() {}, nil
	}

	otelShutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithServiceName(serviceName),
		otelconfig.WithSpanProcessor(honeycomb.NewBaggageSpanProcessor()),
	)
	if err != nil {
		return nil, err
	}

	if rdb != nil {
		rdb.AddHook(redisotel.NewTracingHook())
	}

	log.Debugf("honeycomb tracing set up for service: %s", serviceName)
	return otelShutdown, nil
}
