//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package render

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"trpc.group/trpc-go/trpc-agent-graph/tool"
)

// RankDir is the layout direction.
type RankDir string

// Layout directions.
const (
	RankDirTB RankDir = "TB"
	RankDirLR RankDir = "LR"
	RankDirBT RankDir = "BT"
	RankDirRL RankDir = "RL"
)

// ParseRankDir parses a layout direction, ignoring case.
func ParseRankDir(s string) (RankDir, error) {
	switch d := RankDir(strings.ToUpper(strings.TrimSpace(s))); d {
	case RankDirTB, RankDirLR, RankDirBT, RankDirRL:
		return d, nil
	case "":
		return RankDirTB, nil
	default:
		return "", fmt.Errorf("unknown rank direction %q", s)
	}
}

const (
	defaultEdgeLabel = "handoff"
	defaultTitle     = "Agent hand-off graph"
	defaultFileMode  = os.FileMode(0o644)
)

// Option configures a Renderer.
type Option func(*options)

type options struct {
	rankDir          RankDir
	edgeLabel        string
	title            string
	showCapabilities bool
	capabilityFilter tool.FilterFunc
	startEnd         bool
	fileMode         os.FileMode
	concurrency      int
	catalog          *tool.Catalog
}

func defaultOptions() options {
	return options{
		rankDir:     RankDirTB,
		edgeLabel:   defaultEdgeLabel,
		title:       defaultTitle,
		fileMode:    defaultFileMode,
		concurrency: runtime.NumCPU(),
	}
}

// WithRankDir sets the layout direction.
func WithRankDir(d RankDir) Option {
	return func(o *options) {
		o.rankDir = d
	}
}

// WithEdgeLabel sets the label drawn on hand-off arrows. An empty label
// draws bare arrows.
func WithEdgeLabel(label string) Option {
	return func(o *options) {
		o.edgeLabel = label
	}
}

// WithTitle sets the diagram and document title.
func WithTitle(title string) Option {
	return func(o *options) {
		if title != "" {
			o.title = title
		}
	}
}

// WithCapabilities draws capabilities as ellipses joined to their agents by
// dotted edges. Off by default, so a diagram has exactly one node per entity.
func WithCapabilities(show bool) Option {
	return func(o *options) {
		o.showCapabilities = show
	}
}

// WithCapabilityFilter limits which capabilities are drawn and listed.
func WithCapabilityFilter(filter tool.FilterFunc) Option {
	return func(o *options) {
		o.capabilityFilter = filter
	}
}

// WithStartEnd adds __start__ and __end__ markers: __start__ points at the
// root, every entity without hand-offs points at __end__.
func WithStartEnd(show bool) Option {
	return func(o *options) {
		o.startEnd = show
	}
}

// WithFileMode sets the permission bits of written files.
func WithFileMode(mode os.FileMode) Option {
	return func(o *options) {
		o.fileMode = mode
	}
}

// WithConcurrency bounds the RenderAll worker pool.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithCatalog supplies capability declarations so reports can show
// signatures and descriptions.
func WithCatalog(c *tool.Catalog) Option {
	return func(o *options) {
		o.catalog = c
	}
}
