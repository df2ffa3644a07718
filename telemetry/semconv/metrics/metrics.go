//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package metrics defines metric name constants following OpenTelemetry semantic conventions.
package metrics

const (
	// KeyRenderFormat is the output format attribute.
	KeyRenderFormat = "trpc_agent_go.graph.render.format"
	// KeyRenderStatus is "ok" or "error".
	KeyRenderStatus = "trpc_agent_go.graph.render.status"

	// MetricRenderCnt counts render attempts.
	MetricRenderCnt = "trpc_agent_go.graph.render.cnt"
	// MetricRenderDuration records render latency in seconds.
	MetricRenderDuration = "trpc_agent_go.graph.render.duration"
	// MetricRenderBytes records the size of written files.
	MetricRenderBytes = "trpc_agent_go.graph.render.bytes"

	// MeterNameRender is the meter name for render operations.
	MeterNameRender = "trpc_agent_go.graph.render"

	// StatusOK marks a successful render.
	StatusOK = "ok"
	// StatusError marks a failed render.
	StatusError = "error"
)
