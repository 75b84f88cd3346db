package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "goalsapp"

// AddSpanError marks a span as failed
func AddSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func GetTraceID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		return span.SpanContext().TraceID().String()
	}
	return ""
}

// CreateChildSpan starts a span under whatever span ctx already carries.
func CreateChildSpan(ctx context.Context, name string, attrs []attribute.KeyValue) (context.Context, trace.Span) {
	tracer := otel.Tracer(tracerName)
	opts := []trace.SpanStartOption{
		trace.WithAttributes(attrs...),
	}
	return tracer.Start(ctx, name, opts...)
}

func SpanWrapper(ctx context.Context, name string, attrs []attribute.KeyValue, fn func(context.Context) error) error {
	ctx, span := CreateChildSpan(ctx, name, attrs)
	defer span.End()

	err := fn(ctx)
	if err != nil {
		AddSpanError(span, err)
	}

	return err
}

// DatabaseSpanWrapper runs fn inside a "db.<table>.<operation>" span.
func DatabaseSpanWrapper(ctx context.Context, system, table, operation string, fn func(context.Context) error) error {
	attrs := []attribute.KeyValue{
		attribute.String("db.system", system),
		attribute.String("db.table", table),
		attribute.String("db.operation", operation),
	}

	return SpanWrapper(ctx, fmt.Sprintf("db.%s.%s", table, operation), attrs, fn)
}
