//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package config loads agent topologies from YAML.
//
// A file lists agents with their instructions, capability names and hand-off
// targets, plus output and logging settings:
//
//	root: Triage Agent
//	agents:
//	  - name: Triage Agent
//	    handoffs: [Sales Agent]
//	  - name: Sales Agent
//	    tools: [ui_open_app]
//	output:
//	  base: agent_graph
//	  formats: [png, svg]
//
// Capability names must be declared, either by the built-in UI tools or in
// the file's capabilities list.
package config

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"go.opentelemetry.io/otel/attribute"
	"gopkg.in/yaml.v3"

	"trpc.group/trpc-go/trpc-agent-graph/graph"
	"trpc.group/trpc-go/trpc-agent-graph/log"
	semconvtrace "trpc.group/trpc-go/trpc-agent-graph/telemetry/semconv/trace"
	"trpc.group/trpc-go/trpc-agent-graph/telemetry/trace"
	"trpc.group/trpc-go/trpc-agent-graph/tool"
	"trpc.group/trpc-go/trpc-agent-graph/tool/uitool"
)

// Defaults applied to unset fields.
const (
	DefaultBase      = "agent_graph"
	DefaultFormat    = "png"
	DefaultRankDir   = "TB"
	DefaultEdgeLabel = "handoff"
)

//go:embed default.yaml
var defaultYAML []byte

// Config is the decoded configuration.
type Config struct {
	// Root names the entry agent. Defaults to the first agent.
	Root string `yaml:"root,omitempty"`
	// RequireAcyclic rejects topologies with hand-off cycles.
	RequireAcyclic bool `yaml:"require_acyclic,omitempty"`
	// Capabilities declares capabilities beyond the built-in UI tools.
	Capabilities []*tool.Declaration `yaml:"capabilities,omitempty"`
	// Agents lists the agents in declaration order.
	Agents []Agent `yaml:"agents"`
	// Output controls rendering.
	Output Output `yaml:"output,omitempty"`
	// Log controls logging.
	Log Log `yaml:"log,omitempty"`
}

// Agent declares one agent.
type Agent struct {
	Name         string   `yaml:"name"`
	Instructions string   `yaml:"instructions,omitempty"`
	Tools        []string `yaml:"tools,omitempty"`
	Handoffs     []string `yaml:"handoffs,omitempty"`
}

// Output holds rendering settings.
type Output struct {
	Base             string   `yaml:"base,omitempty"`
	Formats          []string `yaml:"formats,omitempty"`
	RankDir          string   `yaml:"rankdir,omitempty"`
	EdgeLabel        string   `yaml:"edge_label,omitempty"`
	Title            string   `yaml:"title,omitempty"`
	ShowCapabilities bool     `yaml:"show_capabilities,omitempty"`
	HideCapabilities []string `yaml:"hide_capabilities,omitempty"`
	StartEnd         bool     `yaml:"start_end,omitempty"`
}

// Log holds logging settings.
type Log struct {
	Level string `yaml:"level,omitempty"`
}

// Default returns the built-in triage topology.
func Default() *Config {
	cfg, err := Parse(defaultYAML)
	if err != nil {
		// The embedded file is part of the build.
		panic(fmt.Sprintf("config: invalid embedded default: %v", err))
	}
	return cfg
}

// Parse decodes YAML and fills in defaults. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg, err := decode(data)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func decode(data []byte) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, &graph.ConfigurationError{Err: fmt.Errorf("decode yaml: %w", err)}
	}
	return cfg, nil
}

// Load reads and decodes one file.
func Load(ctx context.Context, path string) (cfg *Config, err error) {
	_, span := trace.Start(ctx, semconvtrace.SpanLoadConfig,
		attribute.String(semconvtrace.KeyConfigSource, path))
	defer func() { trace.End(span, err) }()

	cfg, err = load(path)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	log.Debugf("loaded %d agents from %s", len(cfg.Agents), path)
	return cfg, nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &graph.ConfigurationError{Err: fmt.Errorf("read %s: %w", path, err)}
	}
	cfg, err := decode(data)
	if err != nil {
		var cfgErr *graph.ConfigurationError
		if errors.As(err, &cfgErr) {
			cfgErr.Err = fmt.Errorf("%s: %w", path, cfgErr.Err)
		}
		return nil, err
	}
	return cfg, nil
}

// LoadGlob loads every file matching pattern (doublestar syntax, e.g.
// "agents/**/*.yaml") in lexical order and merges them.
//
// Agents and capabilities are concatenated. Scalar settings come from the
// first file that sets them; conflicting roots are an error.
func LoadGlob(ctx context.Context, pattern string) (cfg *Config, err error) {
	_, span := trace.Start(ctx, semconvtrace.SpanLoadConfig,
		attribute.String(semconvtrace.KeyConfigSource, pattern))
	defer func() { trace.End(span, err) }()

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, &graph.ConfigurationError{Err: fmt.Errorf("glob %q: %w", pattern, err)}
	}
	if len(matches) == 0 {
		return nil, &graph.ConfigurationError{Err: fmt.Errorf("no config files match %q", pattern)}
	}
	sort.Strings(matches)

	merged := &Config{}
	for _, path := range matches {
		part, err := load(path)
		if err != nil {
			return nil, err
		}
		if err := merged.merge(part, path); err != nil {
			return nil, err
		}
	}
	merged.applyDefaults()
	log.Debugf("loaded %d agents from %d files matching %s", len(merged.Agents), len(matches), pattern)
	return merged, nil
}

// Catalog returns the known capabilities: the UI tools followed by the
// file's own declarations.
func (c *Config) Catalog() (*tool.Catalog, error) {
	catalog := uitool.Catalog()
	if err := catalog.Add(c.Capabilities...); err != nil {
		return nil, &graph.ConfigurationError{Err: err}
	}
	return catalog, nil
}

// Graph builds the delegation graph.
func (c *Config) Graph(ctx context.Context) (g *graph.Graph, err error) {
	_, span := trace.Start(ctx, semconvtrace.SpanBuildGraph)
	defer func() {
		if g != nil {
			span.SetAttributes(
				attribute.String(semconvtrace.KeyGraphRoot, g.RootName()),
				attribute.Int(semconvtrace.KeyGraphEntities, g.Len()),
				attribute.Int(semconvtrace.KeyGraphDelegations, len(g.Edges())),
			)
		}
		trace.End(span, err)
	}()

	catalog, err := c.Catalog()
	if err != nil {
		return nil, err
	}
	opts := []graph.BuilderOption{graph.WithCapabilityValidator(catalog.Has)}
	if c.RequireAcyclic {
		opts = append(opts, graph.WithRequireAcyclic())
	}
	b := graph.NewBuilder(opts...)
	for _, a := range c.Agents {
		b.AddEntity(a.Name,
			graph.WithDescription(a.Instructions),
			graph.WithCapabilities(a.Tools...),
		)
		if len(a.Handoffs) > 0 {
			b.AddDelegation(a.Name, a.Handoffs...)
		}
	}
	if c.Root != "" {
		b.SetRoot(c.Root)
	}
	return b.Build()
}

func (c *Config) applyDefaults() {
	if c.Output.Base == "" {
		c.Output.Base = DefaultBase
	}
	if len(c.Output.Formats) == 0 {
		c.Output.Formats = []string{DefaultFormat}
	}
	if c.Output.RankDir == "" {
		c.Output.RankDir = DefaultRankDir
	}
	if c.Output.EdgeLabel == "" {
		c.Output.EdgeLabel = DefaultEdgeLabel
	}
	if c.Log.Level == "" {
		c.Log.Level = log.LevelInfo
	}
}

func (c *Config) merge(other *Config, source string) error {
	if other.Root != "" {
		if c.Root != "" && c.Root != other.Root {
			return &graph.ConfigurationError{
				Entity: other.Root,
				Err:    fmt.Errorf("%s: root conflicts with %q", source, c.Root),
			}
		}
		c.Root = other.Root
	}
	c.RequireAcyclic = c.RequireAcyclic || other.RequireAcyclic
	c.Capabilities = append(c.Capabilities, other.Capabilities...)
	c.Agents = append(c.Agents, other.Agents...)
	c.Output.merge(other.Output)
	if c.Log.Level == "" {
		c.Log.Level = other.Log.Level
	}
	return nil
}

func (o *Output) merge(other Output) {
	if o.Base == "" {
		o.Base = other.Base
	}
	if len(o.Formats) == 0 {
		o.Formats = other.Formats
	}
	if o.RankDir == "" {
		o.RankDir = other.RankDir
	}
	if o.EdgeLabel == "" {
		o.EdgeLabel = other.EdgeLabel
	}
	if o.Title == "" {
		o.Title = other.Title
	}
	if len(o.HideCapabilities) == 0 {
		o.HideCapabilities = other.HideCapabilities
	}
	o.ShowCapabilities = o.ShowCapabilities || other.ShowCapabilities
	o.StartEnd = o.StartEnd || other.StartEnd
}
