//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package render draws a delegation graph to image and document files.
//
// Graphviz lays out the diagram. PDF and HTML outputs wrap the Graphviz
// image with an agent table. Files are encoded in memory and then written
// with a rename, so a failed render never leaves a partial file.
package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/moby/sys/atomicwriter"
	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"

	"trpc.group/trpc-go/trpc-agent-graph/graph"
	"trpc.group/trpc-go/trpc-agent-graph/log"
	"trpc.group/trpc-go/trpc-agent-graph/telemetry/metric"
	semconvtrace "trpc.group/trpc-go/trpc-agent-graph/telemetry/semconv/trace"
	"trpc.group/trpc-go/trpc-agent-graph/telemetry/trace"
)

// Renderer writes graphs to files. It is safe for concurrent use.
type Renderer struct {
	opts options
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Renderer{opts: o}
}

// Encode writes g to w in the given format.
func (r *Renderer) Encode(ctx context.Context, g *graph.Graph, format Format, w io.Writer) error {
	if !format.Valid() {
		return &UnsupportedFormatError{Format: string(format)}
	}
	if g == nil {
		return &RenderError{Op: "encode", Format: format, Err: ErrNilGraph}
	}

	switch format {
	case FormatPDF:
		var img bytes.Buffer
		if err := r.layout(ctx, g, FormatPNG, &img); err != nil {
			return err
		}
		if err := r.writePDF(g, img.Bytes(), w); err != nil {
			return &RenderError{Op: "encode", Format: format, Err: err}
		}
	case FormatHTML:
		var img bytes.Buffer
		if err := r.layout(ctx, g, FormatSVG, &img); err != nil {
			return err
		}
		if err := r.writeHTML(g, img.Bytes(), w); err != nil {
			return &RenderError{Op: "encode", Format: format, Err: err}
		}
	default:
		return r.layout(ctx, g, format, w)
	}
	return nil
}

// Render writes g to "<base>.<ext>" and returns the path. format may be any
// name ParseFormat accepts; empty means DefaultFormat.
//
// An unsupported format fails before anything is laid out or written.
func (r *Renderer) Render(ctx context.Context, g *graph.Graph, base string, format Format) (path string, err error) {
	if format == "" {
		format = DefaultFormat
	}
	format, err = ParseFormat(string(format))
	if err != nil {
		return "", err
	}
	if base == "" {
		return "", &RenderError{Op: "write", Format: format, Err: ErrEmptyBase}
	}
	if g == nil {
		return "", &RenderError{Op: "encode", Format: format, Err: ErrNilGraph}
	}
	path = base + "." + format.Extension()

	id := uuid.NewString()
	ctx, span := trace.Start(ctx, semconvtrace.SpanRender,
		attribute.String(semconvtrace.KeyRenderID, id),
		attribute.String(semconvtrace.KeyRenderFormat, format.String()),
		attribute.String(semconvtrace.KeyRenderPath, path),
		attribute.String(semconvtrace.KeyGraphRoot, g.RootName()),
		attribute.Int(semconvtrace.KeyGraphEntities, g.Len()),
	)
	start := time.Now()
	var size int
	defer func() {
		metric.RecordRender(ctx, format.String(), time.Since(start), size, err)
		trace.End(span, err)
	}()

	r.warnUnreachable(g)

	var buf bytes.Buffer
	if err = r.Encode(ctx, g, format, &buf); err != nil {
		if re, ok := err.(*RenderError); ok && re.Path == "" {
			re.Path = path
		}
		return "", err
	}
	if buf.Len() == 0 {
		err = &RenderError{Op: "encode", Format: format, Path: path, Err: ErrEmptyOutput}
		return "", err
	}
	size = buf.Len()
	span.SetAttributes(attribute.Int(semconvtrace.KeyRenderBytes, size))

	if err = atomicwriter.WriteFile(path, buf.Bytes(), r.opts.fileMode); err != nil {
		err = &RenderError{Op: "write", Format: format, Path: path, Err: err}
		return "", err
	}
	log.Infof("render %s: wrote %s (%d bytes)", id, path, size)
	return path, nil
}

// RenderAll renders g once per format on a worker pool and returns the
// written paths in format order. Every format is validated before any task
// starts, and formats naming the same output are rendered once. Failures
// of individual formats are combined; paths of formats that succeeded are
// still returned.
func (r *Renderer) RenderAll(ctx context.Context, g *graph.Graph, base string, formats []Format) (paths []string, err error) {
	parsed := make([]Format, 0, len(formats))
	seen := make(map[Format]bool, len(formats))
	for _, f := range formats {
		p, err := ParseFormat(string(f))
		if err != nil {
			return nil, err
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		parsed = append(parsed, p)
	}
	if len(parsed) == 0 {
		parsed = append(parsed, DefaultFormat)
	}

	ctx, span := trace.Start(ctx, semconvtrace.SpanRenderAll,
		attribute.Int(semconvtrace.KeyGraphEntities, graphLen(g)))
	defer func() { trace.End(span, err) }()

	pool, err := ants.NewPool(r.opts.concurrency)
	if err != nil {
		return nil, &RenderError{Op: "schedule", Err: fmt.Errorf("failed to create render worker pool: %w", err)}
	}
	defer pool.Release()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		errs    error
		results = make([]string, len(parsed))
	)
	fail := func(e error) {
		mu.Lock()
		errs = multierr.Append(errs, e)
		mu.Unlock()
	}
	for i, f := range parsed {
		idx, format := i, f
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			defer func() {
				if rec := recover(); rec != nil {
					fail(&RenderError{Op: "encode", Format: format, Err: fmt.Errorf("panic: %v", rec)})
				}
			}()
			path, err := r.Render(ctx, g, base, format)
			if err != nil {
				fail(err)
				return
			}
			results[idx] = path
		})
		if submitErr != nil {
			wg.Done()
			fail(&RenderError{Op: "schedule", Format: format, Err: submitErr})
		}
	}
	wg.Wait()

	for _, p := range results {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths, errs
}

// warnUnreachable logs entities that no hand-off chain from the root reaches.
// They are still drawn.
func (r *Renderer) warnUnreachable(g *graph.Graph) {
	reachable := g.Reachable()
	if len(reachable) == g.Len() {
		return
	}
	seen := make(map[string]bool, len(reachable))
	for _, name := range reachable {
		seen[name] = true
	}
	var orphans []string
	for _, e := range g.Entities() {
		if !seen[e.Name] {
			orphans = append(orphans, e.Name)
		}
	}
	log.Warnf("entities not reachable from root %q: %s", g.RootName(), joinNames(orphans))
}

// tableRow is one agent in the PDF and HTML summaries.
type tableRow struct {
	agent        string
	root         bool
	targets      []string
	capabilities []string
}

func (r *Renderer) tableRows(g *graph.Graph) []tableRow {
	entities := g.Entities()
	rows := make([]tableRow, 0, len(entities))
	for _, e := range entities {
		rows = append(rows, tableRow{
			agent:        e.Name,
			root:         e.Name == g.RootName(),
			targets:      g.Targets(e.Name),
			capabilities: r.capabilities(e),
		})
	}
	return rows
}

func graphLen(g *graph.Graph) int {
	if g == nil {
		return 0
	}
	return g.Len()
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}
