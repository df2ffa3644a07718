//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package trace

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	semconvtrace "trpc.group/trpc-go/trpc-agent-graph/telemetry/semconv/trace"
)

type customError struct{}

func (customError) Error() string { return "custom" }

func TestStartAndEnd(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	SetTracerProvider(tp)
	t.Cleanup(func() { SetTracerProvider(nil) })

	_, span := Start(context.Background(), "ok-span", attribute.String("k", "v"))
	End(span, nil)

	_, span = Start(context.Background(), "err-span")
	End(span, customError{})

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)

	assert.Equal(t, "ok-span", spans[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
	assert.Contains(t, spans[0].Attributes, attribute.String("k", "v"))

	assert.Equal(t, "err-span", spans[1].Name)
	assert.Equal(t, codes.Error, spans[1].Status.Code)
	assert.Contains(t, spans[1].Attributes,
		attribute.String(semconvtrace.KeyErrorType, "trace.customError"))
	require.Len(t, spans[1].Events, 1)
	assert.Equal(t, "exception", spans[1].Events[0].Name)
}

func TestErrorType(t *testing.T) {
	assert.Equal(t, "", ErrorType(nil))
	assert.Equal(t, semconvtrace.ValueDefaultErrorType, ErrorType(errors.New("x")))
	assert.Equal(t, semconvtrace.ValueDefaultErrorType, ErrorType(fmt.Errorf("wrap: %w", errors.New("x"))))
	assert.Equal(t, "*trace.customErrorPtr", ErrorType(&customErrorPtr{}))
}

type customErrorPtr struct{}

func (*customErrorPtr) Error() string { return "ptr" }
