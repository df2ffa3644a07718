//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package trace holds the tracer used by the module.
//
// Spans go to the global OpenTelemetry provider, which is a no-op until the
// host program installs an SDK provider.
package trace

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	semconvtrace "trpc.group/trpc-go/trpc-agent-graph/telemetry/semconv/trace"
)

// InstrumentName is the instrumentation scope of every span.
const InstrumentName = "trpc.group/trpc-go/trpc-agent-graph"

// Tracer is the shared tracer.
var Tracer oteltrace.Tracer = otel.Tracer(InstrumentName)

// SetTracerProvider points Tracer at tp. A nil tp restores the global provider.
func SetTracerProvider(tp oteltrace.TracerProvider) {
	if tp == nil {
		Tracer = otel.Tracer(InstrumentName)
		return
	}
	Tracer = tp.Tracer(InstrumentName)
}

// Start starts a span on Tracer.
func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, oteltrace.Span) {
	return Tracer.Start(ctx, name, oteltrace.WithAttributes(attrs...))
}

// End records err on span, if any, and ends it.
func End(span oteltrace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String(semconvtrace.KeyErrorType, ErrorType(err)))
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// ErrorType returns the value of the error.type attribute for err.
func ErrorType(err error) string {
	if err == nil {
		return ""
	}
	t := fmt.Sprintf("%T", err)
	if t == "*errors.errorString" || t == "*fmt.wrapError" {
		return semconvtrace.ValueDefaultErrorType
	}
	return t
}
