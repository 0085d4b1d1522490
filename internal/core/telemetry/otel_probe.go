package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"userapp/internal/core/port"
)

const tracerName = "userapp"

// OTELProbe reports core operations as OpenTelemetry spans, Prometheus
// counters and slog lines.
type OTELProbe struct {
	logger  *slog.Logger
	metrics *AppMetrics
}

func NewOTELProbe(logger *slog.Logger, metrics *AppMetrics) port.Telemetry {
	if logger == nil {
		logger = slog.Default()
	}

	return &OTELProbe{logger: logger, metrics: metrics}
}

type otelSpan struct {
	span trace.Span
}

func (s *otelSpan) End() { s.span.End() }

func (s *otelSpan) SetAttributes(attrs map[string]interface{}) {
	s.span.SetAttributes(toAttributes(attrs)...)
}

func (s *otelSpan) SetStatus(code string, message string) {
	s.span.SetStatus(statusCode(code), message)
}

func (s *otelSpan) RecordError(err error) { s.span.RecordError(err) }

func statusCode(code string) codes.Code {
	switch code {
	case "ok":
		return codes.Ok
	case "error":
		return codes.Error
	}
	return codes.Unset
}

func toAttributes(attrs map[string]interface{}) []attribute.KeyValue {
	out := make([]attribute.KeyValue, 0, len(attrs))

	for key, value := range attrs {
		switch v := value.(type) {
		case string:
			out = append(out, attribute.String(key, v))
		case int:
			out = append(out, attribute.Int(key, v))
		case int64:
			out = append(out, attribute.Int64(key, v))
		case float64:
			out = append(out, attribute.Float64(key, v))
		case bool:
			out = append(out, attribute.Bool(key, v))
		default:
			out = append(out, attribute.String(key, fmt.Sprint(v)))
		}
	}

	return out
}

// startSpan names spans "<component>.<scope>.<operation>", for example
// service.user.update or repository.users.list.
func startSpan(ctx context.Context, component, scope, operation string, attrs map[string]interface{}) (context.Context, port.Span) {
	kv := append([]attribute.KeyValue{
		attribute.String("component", component),
		attribute.String(component+".scope", scope),
		attribute.String(component+".operation", operation),
	}, toAttributes(attrs)...)

	ctx, span := otel.Tracer(tracerName).Start(ctx,
		fmt.Sprintf("%s.%s.%s", component, scope, operation),
		trace.WithAttributes(kv...))

	return ctx, &otelSpan{span: span}
}

func (p *OTELProbe) StartRepositorySpan(ctx context.Context, operation string, entity string, attrs map[string]interface{}) (context.Context, port.Span) {
	return startSpan(ctx, "repository", entity, operation, attrs)
}

func (p *OTELProbe) StartServiceSpan(ctx context.Context, service string, operation string, attrs map[string]interface{}) (context.Context, port.Span) {
	return startSpan(ctx, "service", service, operation, attrs)
}

// finish annotates the span already in ctx with the outcome of an operation.
func (p *OTELProbe) finish(ctx context.Context, component, scope, operation string, duration time.Duration, err error) {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(
		attribute.Int64("duration_ns", duration.Nanoseconds()),
		attribute.Bool("has_error", err != nil),
	)

	if err == nil {
		span.SetStatus(codes.Ok, "")
		return
	}

	span.SetStatus(codes.Error, err.Error())
	span.RecordError(err)
	p.logger.ErrorContext(ctx, component+" operation failed",
		"scope", scope,
		"operation", operation,
		"duration_ms", duration.Milliseconds(),
		"error", err)
}

func (p *OTELProbe) RecordRepositoryOperation(ctx context.Context, operation string, entity string, duration time.Duration, err error) {
	if p.metrics != nil {
		p.metrics.RecordStoreQuery(ctx, operation, entity, duration, err)
	}
	p.finish(ctx, "repository", entity, operation, duration, err)
}

func (p *OTELProbe) RecordServiceOperation(ctx context.Context, service string, operation string, duration time.Duration, err error) {
	if p.metrics != nil {
		p.metrics.RecordUserOperation(ctx, operation, err)
	}
	p.finish(ctx, "service", service, operation, duration, err)
}

func (p *OTELProbe) RecordBusinessEvent(ctx context.Context, event string, entity string, entityID string, metadata map[string]interface{}) {
	trace.SpanFromContext(ctx).AddEvent(event, trace.WithAttributes(
		attribute.String("entity", entity),
		attribute.String("entity_id", entityID),
	))

	p.logger.InfoContext(ctx, "Business event",
		"event", event,
		"entity", entity,
		"entity_id", entityID,
		"metadata", metadata)
}
