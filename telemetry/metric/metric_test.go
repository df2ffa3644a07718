//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package metric

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"trpc.group/trpc-go/trpc-agent-graph/telemetry/semconv/metrics"
)

func TestRecordRender(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	require.NoError(t, InitMeterProvider(mp))
	t.Cleanup(func() { _ = InitMeterProvider(noop.NewMeterProvider()) })

	ctx := context.Background()
	RecordRender(ctx, "png", 20*time.Millisecond, 1024, nil)
	RecordRender(ctx, "svg", 10*time.Millisecond, 0, errors.New("boom"))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	assert.Equal(t, metrics.MeterNameRender, rm.ScopeMetrics[0].Scope.Name)

	byName := map[string]metricdata.Metrics{}
	for _, m := range rm.ScopeMetrics[0].Metrics {
		byName[m.Name] = m
	}

	cnt, ok := byName[metrics.MetricRenderCnt].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	var total int64
	for _, dp := range cnt.DataPoints {
		total += dp.Value
	}
	assert.Equal(t, int64(2), total)
	assert.Len(t, cnt.DataPoints, 2, "one data point per format/status pair")

	size, ok := byName[metrics.MetricRenderBytes].Data.(metricdata.Histogram[int64])
	require.True(t, ok)
	require.Len(t, size.DataPoints, 1, "failed renders do not record a size")
	assert.Equal(t, uint64(1), size.DataPoints[0].Count)
	assert.Equal(t, int64(1024), size.DataPoints[0].Sum)

	_, ok = byName[metrics.MetricRenderDuration].Data.(metricdata.Histogram[float64])
	assert.True(t, ok)
}
