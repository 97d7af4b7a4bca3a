package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"jsontodos/internal/core/port"
)

const tracerName = "jsontodos"

// OTELProbe implements Telemetry using OpenTelemetry, zap and Prometheus.
type OTELProbe struct {
	logger  *otelzap.Logger
	metrics *AppMetrics
}

// NewOTELProbe builds a probe; metrics may be nil.
func NewOTELProbe(logger *otelzap.Logger, metrics *AppMetrics) port.Telemetry {
	return &OTELProbe{
		logger:  logger,
		metrics: metrics,
	}
}

func (p *OTELProbe) StartStoreSpan(ctx context.Context, operation string, attrs []attribute.KeyValue) (context.Context, trace.Span) {
	standardAttrs := []attribute.KeyValue{
		attribute.String("store.operation", operation),
		attribute.String("component", "store"),
	}

	return otel.Tracer(tracerName).Start(ctx, fmt.Sprintf("store.todos.%s", operation),
		trace.WithAttributes(append(standardAttrs, attrs...)...))
}

func (p *OTELProbe) StartServiceSpan(ctx context.Context, operation string, attrs []attribute.KeyValue) (context.Context, trace.Span) {
	standardAttrs := []attribute.KeyValue{
		attribute.String("service.name", "todo"),
		attribute.String("service.operation", operation),
		attribute.String("component", "service"),
	}

	return otel.Tracer(tracerName).Start(ctx, fmt.Sprintf("service.todo.%s", operation),
		trace.WithAttributes(append(standardAttrs, attrs...)...))
}

func (p *OTELProbe) RecordStoreOperation(ctx context.Context, operation string, size int, duration time.Duration, err error) {
	span := trace.SpanFromContext(ctx)

	span.SetAttributes(
		attribute.Int("store.size", size),
		attribute.Int64("duration_ns", duration.Nanoseconds()),
		attribute.Bool("has_error", err != nil),
	)

	if p.metrics != nil {
		p.metrics.RecordStoreOperation(ctx, operation, size, duration, err)
	}

	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)

		p.logger.Ctx(ctx).Error("Store operation failed",
			zap.String("operation", operation),
			zap.Duration("duration", duration),
			zap.Error(err))

		return
	}

	span.SetStatus(codes.Ok, "")
}

func (p *OTELProbe) RecordServiceOperation(ctx context.Context, operation string, duration time.Duration, err error) {
	span := trace.SpanFromContext(ctx)

	span.SetAttributes(
		attribute.Int64("duration_ns", duration.Nanoseconds()),
		attribute.Bool("has_error", err != nil),
	)

	if p.metrics != nil {
		p.metrics.RecordTodoOperation(ctx, operation, err)
	}

	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)

		p.logger.Ctx(ctx).Warn("Service operation failed",
			zap.String("operation", operation),
			zap.Duration("duration", duration),
			zap.Error(err))

		return
	}

	span.SetStatus(codes.Ok, "")
}

func (p *OTELProbe) RecordBusinessEvent(ctx context.Context, event string, todoID int64, metadata map[string]interface{}) {
	span := trace.SpanFromContext(ctx)

	attrs := []attribute.KeyValue{
		attribute.Int64("todo.id", todoID),
	}

	for key, value := range metadata {
		attrs = append(attrs, toAttribute(key, value))
	}

	span.AddEvent(event, trace.WithAttributes(attrs...))

	p.logger.Ctx(ctx).Info("Business event recorded",
		zap.String("event", event),
		zap.Int64("todo_id", todoID),
		zap.Any("metadata", metadata))
}

func toAttribute(key string, value interface{}) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case bool:
		return attribute.Bool(key, v)
	default:
		return attribute.String(key, fmt.Sprintf("%v", v))
	}
}
