//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package trace defines span and attribute names.
package trace

// Span names.
const (
	SpanLoadConfig = "load_config"
	SpanBuildGraph = "build_graph"
	SpanRender     = "render_graph"
	SpanRenderAll  = "render_graph_all"
)

// Attribute keys.
const (
	KeyConfigSource = "trpc.go.agent.graph.config.source"

	KeyGraphRoot        = "trpc.go.agent.graph.root"
	KeyGraphEntities    = "trpc.go.agent.graph.entities"
	KeyGraphDelegations = "trpc.go.agent.graph.delegations"

	KeyRenderID     = "trpc.go.agent.graph.render.id"
	KeyRenderFormat = "trpc.go.agent.graph.render.format"
	KeyRenderPath   = "trpc.go.agent.graph.render.path"
	KeyRenderBytes  = "trpc.go.agent.graph.render.bytes"

	// https://github.com/open-telemetry/semantic-conventions/blob/main/docs/general/recording-errors.md#recording-errors-on-spans
	KeyErrorType          = "error.type"
	ValueDefaultErrorType = "_OTHER"
)
