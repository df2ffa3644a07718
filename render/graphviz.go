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
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"trpc.group/trpc-go/trpc-agent-graph/graph"
	"trpc.group/trpc-go/trpc-agent-graph/log"
	"trpc.group/trpc-go/trpc-agent-graph/tool"
)

// Base identifiers for marker and capability nodes. Entity nodes use the
// entity name; the others get a numeric suffix when that name is taken.
const (
	startNodeID      = "__start__"
	endNodeID        = "__end__"
	capabilityPrefix = "capability:"
)

// Colors follow the usual agent diagram palette.
const (
	entityFill     = "lightyellow"
	capabilityFill = "lightgreen"
	markerFill     = "lightblue"
	rootPenWidth   = 2.0
)

var graphvizFormats = map[Format]graphviz.Format{
	FormatDOT: graphviz.XDOT,
	FormatSVG: graphviz.SVG,
	FormatPNG: graphviz.PNG,
	FormatJPG: graphviz.JPG,
}

var rankDirs = map[RankDir]cgraph.RankDir{
	RankDirTB: cgraph.TBRank,
	RankDirLR: cgraph.LRRank,
	RankDirBT: cgraph.BTRank,
	RankDirRL: cgraph.RLRank,
}

// layout renders g with Graphviz in one of the formats Graphviz can emit
// directly. Every call uses its own engine instance.
func (r *Renderer) layout(ctx context.Context, g *graph.Graph, format Format, w io.Writer) error {
	gvFormat, ok := graphvizFormats[format]
	if !ok {
		return &UnsupportedFormatError{Format: string(format)}
	}

	if err := ctx.Err(); err != nil {
		return &RenderError{Op: "layout", Format: format, Err: err}
	}
	gv, err := graphviz.New(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return &RenderError{Op: "layout", Format: format, Err: ctxErr}
		}
		return &RenderError{Op: "layout", Format: format, Err: fmt.Errorf("%w: %v", ErrBackendUnavailable, err)}
	}
	defer gv.Close()

	cg, err := gv.Graph()
	if err != nil {
		return &RenderError{Op: "layout", Format: format, Err: fmt.Errorf("%w: %v", ErrBackendUnavailable, err)}
	}
	defer cg.Close()

	if err := r.populate(cg, g); err != nil {
		return &RenderError{Op: "layout", Format: format, Err: err}
	}
	if err := gv.Render(ctx, cg, gvFormat, w); err != nil {
		return &RenderError{Op: "layout", Format: format, Err: err}
	}
	return nil
}

// populate copies g into the Graphviz graph.
func (r *Renderer) populate(cg *cgraph.Graph, g *graph.Graph) error {
	if d, ok := rankDirs[r.opts.rankDir]; ok {
		cg.SetRankDir(d)
	}
	if r.opts.title != "" {
		cg.SetLabel(labelText(r.opts.title))
	}

	nodes := make(map[string]*cgraph.Node, g.Len())
	for _, e := range g.Entities() {
		n, err := cg.CreateNodeByName(e.Name)
		if err != nil {
			return fmt.Errorf("create node %q: %w", e.Name, err)
		}
		n.SetLabel(labelText(e.Name))
		n.SetShape(cgraph.BoxShape)
		n.SetStyle(cgraph.FilledNodeStyle)
		n.SetFillColor(entityFill)
		if tip := r.tooltip(e); tip != "" {
			n.SetTooltip(labelText(tip))
		}
		log.Tracef("graphviz: node %q", e.Name)
		if e.Name == g.RootName() {
			n.SetPenWidth(rootPenWidth)
		}
		nodes[e.Name] = n
	}

	for _, d := range g.Edges() {
		from := nodes[d.Source]
		for _, target := range d.Targets {
			edge, err := cg.CreateEdgeByName(d.Source+"->"+target, from, nodes[target])
			if err != nil {
				return fmt.Errorf("create edge %q -> %q: %w", d.Source, target, err)
			}
			if r.opts.edgeLabel != "" {
				edge.SetLabel(labelText(r.opts.edgeLabel))
			}
			log.Tracef("graphviz: edge %q -> %q", d.Source, target)
		}
	}

	if r.opts.showCapabilities {
		if err := r.populateCapabilities(cg, g, nodes); err != nil {
			return err
		}
	}
	if r.opts.startEnd {
		if err := r.populateMarkers(cg, g, nodes); err != nil {
			return err
		}
	}
	return nil
}

// populateCapabilities draws one ellipse per capability name, shared by all
// entities carrying it.
func (r *Renderer) populateCapabilities(cg *cgraph.Graph, g *graph.Graph, nodes map[string]*cgraph.Node) error {
	capNodes := make(map[string]*cgraph.Node)
	for _, e := range g.Entities() {
		for _, c := range r.capabilities(e) {
			n, ok := capNodes[c]
			if !ok {
				var err error
				n, err = cg.CreateNodeByName(uniqueID(capabilityPrefix+c, nodes))
				if err != nil {
					return fmt.Errorf("create capability node %q: %w", c, err)
				}
				n.SetLabel(labelText(c))
				n.SetShape(cgraph.EllipseShape)
				n.SetStyle(cgraph.FilledNodeStyle)
				n.SetFillColor(capabilityFill)
				if d, ok := r.opts.catalog.Lookup(c); ok {
					n.SetTooltip(labelText(d.Signature()))
				}
				capNodes[c] = n
			}
			edge, err := cg.CreateEdgeByName(e.Name+"~"+c, nodes[e.Name], n)
			if err != nil {
				return fmt.Errorf("create capability edge %q: %w", c, err)
			}
			edge.SetStyle(cgraph.DottedEdgeStyle)
			log.Tracef("graphviz: capability %q of %q", c, e.Name)
		}
	}
	return nil
}

func (r *Renderer) populateMarkers(cg *cgraph.Graph, g *graph.Graph, nodes map[string]*cgraph.Node) error {
	marker := func(label string) (*cgraph.Node, error) {
		n, err := cg.CreateNodeByName(uniqueID(label, nodes))
		if err != nil {
			return nil, fmt.Errorf("create marker %q: %w", label, err)
		}
		n.SetLabel(labelText(label))
		n.SetShape(cgraph.EllipseShape)
		n.SetStyle(cgraph.FilledNodeStyle)
		n.SetFillColor(markerFill)
		return n, nil
	}

	start, err := marker(startNodeID)
	if err != nil {
		return err
	}
	if _, err := cg.CreateEdgeByName(startNodeID+"->"+g.RootName(), start, nodes[g.RootName()]); err != nil {
		return fmt.Errorf("create start edge: %w", err)
	}

	var end *cgraph.Node
	for _, e := range g.Entities() {
		if g.IsRouter(e.Name) {
			continue
		}
		if end == nil {
			if end, err = marker(endNodeID); err != nil {
				return err
			}
		}
		if _, err := cg.CreateEdgeByName(e.Name+"->"+endNodeID, nodes[e.Name], end); err != nil {
			return fmt.Errorf("create end edge: %w", err)
		}
	}
	return nil
}

// capabilities returns the entity's capabilities after filtering.
func (r *Renderer) capabilities(e graph.Entity) []string {
	return tool.FilterNames(e.Capabilities, r.opts.capabilityFilter)
}

// tooltip summarizes an entity for SVG hover text.
func (r *Renderer) tooltip(e graph.Entity) string {
	tip := e.Description
	if caps := r.capabilities(e); len(caps) > 0 {
		if tip != "" {
			tip += "\n"
		}
		tip += "capabilities: " + joinNames(caps)
	}
	return tip
}

// labelText escapes s for a Graphviz escString attribute so that it is drawn
// literally. Graphviz would otherwise expand sequences such as \N or \n.
func labelText(s string) string {
	return strings.ReplaceAll(s, `\`, `\\`)
}

// uniqueID returns base, or base with a numeric suffix, so that it does not
// collide with an entity node.
func uniqueID(base string, taken map[string]*cgraph.Node) string {
	id := base
	for i := 1; ; i++ {
		if _, ok := taken[id]; !ok {
			return id
		}
		id = fmt.Sprintf("%s#%d", base, i)
	}
}
