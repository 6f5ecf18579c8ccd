package pubsub

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "vehicle_bridge.pubsub"

// TraceHeaders carries the span context of a publisher to its consumers.
type TraceHeaders struct {
	TraceID    string `json:"trace_id,omitempty"`
	SpanID     string `json:"span_id,omitempty"`
	TraceFlags string `json:"trace_flags,omitempty"`
}

func ExtractTraceFromContext(ctx context.Context) TraceHeaders {
	spanCtx := trace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return TraceHeaders{}
	}

	return TraceHeaders{
		TraceID:    spanCtx.TraceID().String(),
		SpanID:     spanCtx.SpanID().String(),
		TraceFlags: strconv.FormatUint(uint64(spanCtx.TraceFlags()), 16),
	}
}

// InjectTraceIntoContext returns ctx unchanged when the headers do not hold a valid span context.
func InjectTraceIntoContext(ctx context.Context, headers TraceHeaders) context.Context {
	if headers.TraceID == "" || headers.SpanID == "" {
		return ctx
	}

	traceID, err := trace.TraceIDFromHex(headers.TraceID)
	if err != nil {
		return ctx
	}

	spanID, err := trace.SpanIDFromHex(headers.SpanID)
	if err != nil {
		return ctx
	}

	var traceFlags trace.TraceFlags
	if flags, err := strconv.ParseUint(headers.TraceFlags, 16, 8); err == nil {
		traceFlags = trace.TraceFlags(flags)
	}

	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: traceFlags,
		Remote:     true,
	})

	return trace.ContextWithSpanContext(ctx, spanCtx)
}

// startConsumeSpan opens the span of a handler call as a child of the publisher span.
func startConsumeSpan(ctx context.Context, topic Topic, headers TraceHeaders) (context.Context, trace.Span) {
	ctx = InjectTraceIntoContext(ctx, headers)
	return otel.Tracer(tracerName).Start(ctx, "consume "+string(topic),
		trace.WithSpanKind(trace.SpanKindConsumer))
}

func envelopeFor(ctx context.Context, message Message) Envelope {
	return Envelope{Trace: ExtractTraceFromContext(ctx), Payload: message}
}
