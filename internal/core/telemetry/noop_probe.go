package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"jsontodos/internal/core/port"
)

// noopSpan is safe to End; the span already on ctx belongs to the caller.
var noopSpan = trace.SpanFromContext(context.Background())

// NoOpProbe implements Telemetry with no operations - useful for testing or when telemetry is disabled
type NoOpProbe struct{}

func NewNoOpProbe() port.Telemetry {
	return &NoOpProbe{}
}

func (p *NoOpProbe) StartStoreSpan(ctx context.Context, operation string, attrs []attribute.KeyValue) (context.Context, trace.Span) {
	return ctx, noopSpan
}

func (p *NoOpProbe) StartServiceSpan(ctx context.Context, operation string, attrs []attribute.KeyValue) (context.Context, trace.Span) {
	return ctx, noopSpan
}

func (p *NoOpProbe) RecordStoreOperation(ctx context.Context, operation string, size int, duration time.Duration, err error) {
}

func (p *NoOpProbe) RecordServiceOperation(ctx context.Context, operation string, duration time.Duration, err error) {
}

func (p *NoOpProbe) RecordBusinessEvent(ctx context.Context, event string, todoID int64, metadata map[string]interface{}) {
}

// Operation measures the duration of a store or service call.
type Operation struct {
	probe     port.Telemetry
	ctx       context.Context
	span      trace.Span
	startTime time.Time
	name      string
	store     bool
}

// StartStoreOperation opens a store span and starts the clock.
func StartStoreOperation(probe port.Telemetry, ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, *Operation) {
	ctx, span := probe.StartStoreSpan(ctx, name, attrs)

	return ctx, &Operation{probe: probe, ctx: ctx, span: span, startTime: time.Now(), name: name, store: true}
}

// StartServiceOperation opens a service span and starts the clock.
func StartServiceOperation(probe port.Telemetry, ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, *Operation) {
	ctx, span := probe.StartServiceSpan(ctx, name, attrs)

	return ctx, &Operation{probe: probe, ctx: ctx, span: span, startTime: time.Now(), name: name}
}

// End records the outcome and closes the span. size is the number of todos
// read or written and is ignored for service operations.
func (op *Operation) End(size int, err error) {
	duration := time.Since(op.startTime)

	if op.store {
		op.probe.RecordStoreOperation(op.ctx, op.name, size, duration, err)
	} else {
		op.probe.RecordServiceOperation(op.ctx, op.name, duration, err)
	}

	op.span.End()
}
