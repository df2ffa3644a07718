//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Command agentgraph renders an agent hand-off topology to an image.
//
// Without arguments it draws the built-in triage topology to
// agent_graph.png in the working directory:
//
//	go run ./cmd/agentgraph
//	go run ./cmd/agentgraph -config 'agents/**/*.yaml' -format png,pdf -capabilities
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"trpc.group/trpc-go/trpc-agent-graph/config"
	"trpc.group/trpc-go/trpc-agent-graph/graph"
	"trpc.group/trpc-go/trpc-agent-graph/log"
	"trpc.group/trpc-go/trpc-agent-graph/render"
	"trpc.group/trpc-go/trpc-agent-graph/tool"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(exitCode(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)))
}

// usageError marks command line misuse.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

func exitCode(err error) int {
	var ue *usageError
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return exitOK
	case errors.As(err, &ue):
		return exitUsage
	default:
		return exitError
	}
}

type flags struct {
	config           string
	output           string
	format           string
	rankDir          string
	capabilities     bool
	startEnd         bool
	hideCapabilities string
	logLevel         string
	set              map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (*flags, error) {
	f := &flags{set: map[string]bool{}}
	fs := flag.NewFlagSet("agentgraph", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.config, "config", "", "YAML topology file or doublestar glob (default: built-in triage topology)")
	fs.StringVar(&f.output, "output", "", "Output base name without extension (default \"agent_graph\")")
	fs.StringVar(&f.format, "format", "", "Comma separated output formats: png, jpg, svg, pdf, dot, html")
	fs.StringVar(&f.rankDir, "rankdir", "", "Layout direction: TB, LR, BT or RL")
	fs.BoolVar(&f.capabilities, "capabilities", false, "Draw capabilities attached to each agent")
	fs.BoolVar(&f.startEnd, "start-end", false, "Draw __start__ and __end__ markers")
	fs.StringVar(&f.hideCapabilities, "hide-capabilities", "", "Comma separated capability names to leave out")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, &usageError{err: err}
	}
	if fs.NArg() > 0 {
		return nil, &usageError{err: fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))}
	}
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	f, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(ctx, f.config)
	if err != nil {
		return report(stderr, err)
	}
	if err := f.apply(cfg); err != nil {
		return report(stderr, err)
	}
	log.SetLevel(cfg.Log.Level)

	formats, err := render.ParseFormats(strings.Join(cfg.Output.Formats, ","))
	if err != nil {
		return report(stderr, err)
	}
	rankDir, err := render.ParseRankDir(cfg.Output.RankDir)
	if err != nil {
		return report(stderr, err)
	}

	g, err := cfg.Graph(ctx)
	if err != nil {
		return report(stderr, err)
	}
	catalog, err := cfg.Catalog()
	if err != nil {
		return report(stderr, err)
	}

	opts := []render.Option{
		render.WithRankDir(rankDir),
		render.WithEdgeLabel(cfg.Output.EdgeLabel),
		render.WithTitle(cfg.Output.Title),
		render.WithCapabilities(cfg.Output.ShowCapabilities),
		render.WithStartEnd(cfg.Output.StartEnd),
		render.WithCatalog(catalog),
	}
	if len(cfg.Output.HideCapabilities) > 0 {
		opts = append(opts, render.WithCapabilityFilter(tool.NewExcludeNamesFilter(cfg.Output.HideCapabilities...)))
	}
	r := render.New(opts...)

	var paths []string
	if len(formats) == 1 {
		path, err := r.Render(ctx, g, cfg.Output.Base, formats[0])
		if err != nil {
			return report(stderr, err)
		}
		paths = []string{path}
	} else {
		paths, err = r.RenderAll(ctx, g, cfg.Output.Base, formats)
		if err != nil {
			return report(stderr, err)
		}
	}

	fmt.Fprintf(stdout, "Generated %s (%s)\n", strings.Join(paths, ", "), pattern(g))
	return nil
}

func loadConfig(ctx context.Context, source string) (*config.Config, error) {
	switch {
	case source == "":
		return config.Default(), nil
	case strings.ContainsAny(source, "*?[{"):
		return config.LoadGlob(ctx, source)
	default:
		return config.Load(ctx, source)
	}
}

// apply lets explicitly set flags override the configuration.
func (f *flags) apply(cfg *config.Config) error {
	if f.set["output"] {
		if f.output == "" {
			return &usageError{err: errors.New("-output must not be empty")}
		}
		cfg.Output.Base = f.output
	}
	if f.set["format"] {
		cfg.Output.Formats = splitList(f.format)
	}
	if f.set["rankdir"] {
		cfg.Output.RankDir = f.rankDir
	}
	if f.set["capabilities"] {
		cfg.Output.ShowCapabilities = f.capabilities
	}
	if f.set["start-end"] {
		cfg.Output.StartEnd = f.startEnd
	}
	if f.set["hide-capabilities"] {
		cfg.Output.HideCapabilities = splitList(f.hideCapabilities)
	}
	if f.set["log-level"] {
		if _, err := log.ParseLevel(f.logLevel); err != nil {
			return &usageError{err: err}
		}
		cfg.Log.Level = f.logLevel
	}
	return nil
}

// pattern names the topology for the completion line.
func pattern(g *graph.Graph) string {
	edges := g.Edges()
	if len(edges) == 1 && edges[0].Source == g.RootName() {
		return "triage pattern"
	}
	return "hand-off pattern"
}

func report(stderr io.Writer, err error) error {
	fmt.Fprintf(stderr, "agentgraph: %v\n", err)
	return err
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
