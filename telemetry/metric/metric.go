//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package metric provides render metrics on top of OpenTelemetry.
package metric

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"trpc.group/trpc-go/trpc-agent-graph/telemetry/semconv/metrics"
)

var (
	mu             sync.RWMutex
	renderCnt      metric.Int64Counter
	renderDuration metric.Float64Histogram
	renderBytes    metric.Int64Histogram
)

func init() {
	if err := InitMeterProvider(noop.NewMeterProvider()); err != nil {
		panic(err)
	}
}

// InitMeterProvider initializes the render instruments from mp.
func InitMeterProvider(mp metric.MeterProvider) error {
	meter := mp.Meter(metrics.MeterNameRender)

	cnt, err := meter.Int64Counter(
		metrics.MetricRenderCnt,
		metric.WithDescription("Total number of graph renders"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create render metric RenderCnt: %w", err)
	}
	dur, err := meter.Float64Histogram(
		metrics.MetricRenderDuration,
		metric.WithDescription("Duration of graph renders"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create render metric RenderDuration: %w", err)
	}
	size, err := meter.Int64Histogram(
		metrics.MetricRenderBytes,
		metric.WithDescription("Size of rendered files"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return fmt.Errorf("failed to create render metric RenderBytes: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	renderCnt, renderDuration, renderBytes = cnt, dur, size
	return nil
}

// RecordRender records one render attempt.
func RecordRender(ctx context.Context, format string, elapsed time.Duration, size int, err error) {
	status := metrics.StatusOK
	if err != nil {
		status = metrics.StatusError
	}
	attrs := metric.WithAttributes(
		attribute.String(metrics.KeyRenderFormat, format),
		attribute.String(metrics.KeyRenderStatus, status),
	)

	mu.RLock()
	defer mu.RUnlock()
	renderCnt.Add(ctx, 1, attrs)
	renderDuration.Record(ctx, elapsed.Seconds(), attrs)
	if err == nil {
		renderBytes.Record(ctx, int64(size), attrs)
	}
}
