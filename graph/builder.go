//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.
// All rights reserved.
//
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the  Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.
//
//

package graph

import (
	"strings"

	"go.uber.org/multierr"
	"golang.org/x/text/unicode/norm"
)

// Builder provides a fluent interface for declaring a delegation graph.
//
// Example usage:
//
//	g, err := graph.NewBuilder().
//	  AddEntity("Triage").
//	  AddEntity("Support", graph.WithCapabilities("ui_set_layout")).
//	  AddEntity("Sales").
//	  AddDelegation("Triage", "Support", "Sales").
//	  SetRoot("Triage").
//	  Build()
//
// Declarations are only checked by Build, which reports every problem at
// once.
type Builder struct {
	entities    []Entity
	delegations []DelegationEdge
	root        string
	opts        builderOptions
}

// BuilderOption configures a Builder.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	requireAcyclic bool
	capabilityOK   func(name string) bool
}

// WithRequireAcyclic makes Build reject graphs containing a delegation cycle.
func WithRequireAcyclic() BuilderOption {
	return func(o *builderOptions) {
		o.requireAcyclic = true
	}
}

// WithCapabilityValidator installs a check for capability names.
// Names for which fn returns false fail the build with ErrUnknownCapability.
func WithCapabilityValidator(fn func(name string) bool) BuilderOption {
	return func(o *builderOptions) {
		o.capabilityOK = fn
	}
}

// EntityOption configures an entity declaration.
type EntityOption func(*Entity)

// WithDescription sets the entity description.
func WithDescription(description string) EntityOption {
	return func(e *Entity) {
		e.Description = description
	}
}

// WithCapabilities appends capability names to the entity.
// Repeated names are kept once, at their first position.
func WithCapabilities(names ...string) EntityOption {
	return func(e *Entity) {
		e.Capabilities = append(e.Capabilities, names...)
	}
}

// NewBuilder creates an empty builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(&b.opts)
	}
	return b
}

// AddEntity declares an entity.
func (b *Builder) AddEntity(name string, opts ...EntityOption) *Builder {
	e := Entity{Name: name}
	for _, opt := range opts {
		opt(&e)
	}
	b.entities = append(b.entities, e)
	return b
}

// AddDelegation declares that source hands off to targets, in order.
func (b *Builder) AddDelegation(source string, targets ...string) *Builder {
	b.delegations = append(b.delegations, DelegationEdge{
		Source:  source,
		Targets: append([]string(nil), targets...),
	})
	return b
}

// SetRoot sets the root entity. The first declared entity is used when
// no root is set.
func (b *Builder) SetRoot(name string) *Builder {
	b.root = name
	return b
}

// Build validates the declarations and returns the graph.
// Every error is a *ConfigurationError; several are combined with multierr.
func (b *Builder) Build() (*Graph, error) {
	if len(b.entities) == 0 {
		return nil, configErrorf("", ErrEmptyGraph, "")
	}

	g := &Graph{
		index:     make(map[string]int, len(b.entities)),
		edgeIndex: make(map[string]int, len(b.delegations)),
	}
	// names maps normalized names to declared names.
	names := make(map[string]string, len(b.entities))
	var errs error

	for _, decl := range b.entities {
		if strings.TrimSpace(decl.Name) == "" {
			errs = multierr.Append(errs, configErrorf("", ErrEmptyName, "entity"))
			continue
		}
		key := normalize(decl.Name)
		if prev, exists := names[key]; exists {
			if prev == decl.Name {
				errs = multierr.Append(errs, configErrorf(decl.Name, ErrDuplicateEntity, ""))
			} else {
				errs = multierr.Append(errs, configErrorf(decl.Name, ErrDuplicateEntity,
					"normalizes to the same name as %q", prev))
			}
			continue
		}
		e, err := b.entity(decl)
		errs = multierr.Append(errs, err)
		names[key] = decl.Name
		g.index[key] = len(g.entities)
		g.entities = append(g.entities, e)
	}

	for _, decl := range b.delegations {
		source, ok := names[normalize(decl.Source)]
		if !ok {
			errs = multierr.Append(errs, configErrorf(decl.Source, ErrUndefinedEntity, "delegation source"))
			continue
		}
		if _, exists := g.edgeIndex[normalize(source)]; exists {
			errs = multierr.Append(errs, configErrorf(source, ErrDuplicateDelegation, ""))
			continue
		}
		if len(decl.Targets) == 0 {
			errs = multierr.Append(errs, configErrorf(source, ErrNoTargets, ""))
			continue
		}
		edge := DelegationEdge{Source: source, Targets: make([]string, 0, len(decl.Targets))}
		seen := make(map[string]bool, len(decl.Targets))
		for _, t := range decl.Targets {
			target, ok := names[normalize(t)]
			if !ok {
				errs = multierr.Append(errs, configErrorf(source, ErrUndefinedEntity, "delegation target %q", t))
				continue
			}
			if seen[target] {
				errs = multierr.Append(errs, configErrorf(source, ErrDuplicateTarget, "%q", target))
				continue
			}
			seen[target] = true
			edge.Targets = append(edge.Targets, target)
		}
		g.edgeIndex[normalize(source)] = len(g.edges)
		g.edges = append(g.edges, edge)
	}

	switch root, ok := names[normalize(b.root)]; {
	case b.root == "" && len(g.entities) > 0:
		g.root = g.entities[0].Name
	case ok:
		g.root = root
	default:
		errs = multierr.Append(errs, configErrorf(b.root, ErrUndefinedEntity, "root"))
	}

	if errs != nil {
		return nil, errs
	}
	if b.opts.requireAcyclic {
		if cycle := g.findCycle(); cycle != nil {
			return nil, configErrorf(cycle[0], ErrCycle, "%s", strings.Join(cycle, " -> "))
		}
	}
	return g, nil
}

// MustBuild builds the graph or panics if invalid.
func (b *Builder) MustBuild() *Graph {
	g, err := b.Build()
	if err != nil {
		panic(err)
	}
	return g
}

func (b *Builder) entity(decl Entity) (Entity, error) {
	e := Entity{Name: decl.Name, Description: decl.Description}
	var errs error
	seen := make(map[string]bool, len(decl.Capabilities))
	for _, c := range decl.Capabilities {
		if seen[c] {
			continue
		}
		seen[c] = true
		if strings.TrimSpace(c) == "" {
			errs = multierr.Append(errs, configErrorf(decl.Name, ErrEmptyName, "capability"))
			continue
		}
		if b.opts.capabilityOK != nil && !b.opts.capabilityOK(c) {
			errs = multierr.Append(errs, configErrorf(decl.Name, ErrUnknownCapability, "%q", c))
			continue
		}
		e.Capabilities = append(e.Capabilities, c)
	}
	return e, errs
}

// normalize returns the key used for name uniqueness.
func normalize(name string) string {
	return norm.NFC.String(name)
}
