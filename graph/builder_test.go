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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func triageBuilder() *Builder {
	return NewBuilder().
		AddEntity("Triage", WithDescription("First point of contact.")).
		AddEntity("Support", WithCapabilities("ui_set_layout", "ui_highlight_element")).
		AddEntity("Sales", WithCapabilities("ui_open_app")).
		AddEntity("Orders", WithCapabilities("ui_open_app", "ui_highlight_element")).
		AddDelegation("Triage", "Support", "Sales", "Orders").
		SetRoot("Triage")
}

func TestBuild_Triage(t *testing.T) {
	g, err := triageBuilder().Build()
	require.NoError(t, err)

	assert.Equal(t, "Triage", g.RootName())
	assert.Equal(t, "First point of contact.", g.Root().Description)
	assert.Equal(t, 4, g.Len())

	var names []string
	for _, e := range g.Entities() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"Triage", "Support", "Sales", "Orders"}, names)

	edges := g.Edges()
	require.Len(t, edges, 1)
	assert.Equal(t, "Triage", edges[0].Source)
	assert.Equal(t, []string{"Support", "Sales", "Orders"}, edges[0].Targets)

	assert.True(t, g.IsRouter("Triage"))
	assert.False(t, g.IsRouter("Sales"))
	assert.Nil(t, g.Targets("Sales"))

	support, ok := g.Entity("Support")
	require.True(t, ok)
	assert.Equal(t, []string{"ui_set_layout", "ui_highlight_element"}, support.Capabilities)
	assert.True(t, support.HasCapability("ui_set_layout"))
	assert.False(t, support.HasCapability("ui_open_app"))

	_, ok = g.Entity("Unknown")
	assert.False(t, ok)
}

func TestBuild_PreservesTargetOrder(t *testing.T) {
	g, err := NewBuilder().
		AddEntity("r").AddEntity("c").AddEntity("a").AddEntity("b").
		AddDelegation("r", "c", "a", "b").
		Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, g.Targets("r"))
	assert.Equal(t, "r", g.RootName(), "root defaults to the first entity")
}

func TestBuild_UndefinedTarget(t *testing.T) {
	_, err := NewBuilder().
		AddEntity("Triage").
		AddEntity("Support").
		AddDelegation("Triage", "Support", "Billing").
		Build()
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "Triage", cfgErr.Entity)
	assert.ErrorIs(t, err, ErrUndefinedEntity)
	assert.Contains(t, err.Error(), "Billing")
	assert.True(t, IsConfigurationError(err))
}

func TestBuild_UndefinedSource(t *testing.T) {
	_, err := NewBuilder().
		AddEntity("Support").
		AddDelegation("Triage", "Support").
		Build()
	assert.ErrorIs(t, err, ErrUndefinedEntity)
}

func TestBuild_DuplicateEntity(t *testing.T) {
	_, err := NewBuilder().
		AddEntity("Sales").
		AddEntity("Sales").
		Build()
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "Sales", cfgErr.Entity)
	assert.ErrorIs(t, err, ErrDuplicateEntity)
}

func TestBuild_DuplicateEntityAfterNormalization(t *testing.T) {
	_, err := NewBuilder().
		AddEntity("Caf\u00e9").
		AddEntity("Cafe\u0301").
		Build()
	require.ErrorIs(t, err, ErrDuplicateEntity)
	assert.Contains(t, err.Error(), "normalizes to the same name")
}

func TestBuild_InvalidDeclarations(t *testing.T) {
	tests := []struct {
		name    string
		builder *Builder
		want    error
	}{
		{
			name:    "empty graph",
			builder: NewBuilder(),
			want:    ErrEmptyGraph,
		},
		{
			name:    "empty entity name",
			builder: NewBuilder().AddEntity("a").AddEntity("  "),
			want:    ErrEmptyName,
		},
		{
			name:    "no targets",
			builder: NewBuilder().AddEntity("a").AddDelegation("a"),
			want:    ErrNoTargets,
		},
		{
			name: "duplicate delegation",
			builder: NewBuilder().AddEntity("a").AddEntity("b").
				AddDelegation("a", "b").AddDelegation("a", "b"),
			want: ErrDuplicateDelegation,
		},
		{
			name: "duplicate target",
			builder: NewBuilder().AddEntity("a").AddEntity("b").
				AddDelegation("a", "b", "b"),
			want: ErrDuplicateTarget,
		},
		{
			name:    "undefined root",
			builder: NewBuilder().AddEntity("a").SetRoot("z"),
			want:    ErrUndefinedEntity,
		},
		{
			name:    "empty capability",
			builder: NewBuilder().AddEntity("a", WithCapabilities("")),
			want:    ErrEmptyName,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := tt.builder.Build()
			assert.Nil(t, g)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, IsConfigurationError(err))
		})
	}
}

func TestBuild_ReportsAllProblems(t *testing.T) {
	_, err := NewBuilder().
		AddEntity("a").
		AddEntity("a").
		AddDelegation("a", "missing").
		Build()
	require.Error(t, err)

	errs := multierr.Errors(err)
	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0], ErrDuplicateEntity)
	assert.ErrorIs(t, errs[1], ErrUndefinedEntity)
}

func TestBuild_Capabilities(t *testing.T) {
	known := map[string]bool{"ui_open_app": true}
	b := func() *Builder {
		return NewBuilder(WithCapabilityValidator(func(name string) bool { return known[name] }))
	}

	g, err := b().AddEntity("Sales", WithCapabilities("ui_open_app", "ui_open_app")).Build()
	require.NoError(t, err)
	sales, _ := g.Entity("Sales")
	assert.Equal(t, []string{"ui_open_app"}, sales.Capabilities)

	_, err = b().AddEntity("Sales", WithCapabilities("ui_teleport")).Build()
	assert.ErrorIs(t, err, ErrUnknownCapability)
	assert.Contains(t, err.Error(), "ui_teleport")
}

func TestBuild_Cycles(t *testing.T) {
	decl := func(opts ...BuilderOption) *Builder {
		return NewBuilder(opts...).
			AddEntity("a").AddEntity("b").AddEntity("c").
			AddDelegation("a", "b").
			AddDelegation("b", "c").
			AddDelegation("c", "a")
	}

	g, err := decl().Build()
	require.NoError(t, err)
	assert.True(t, g.HasCycle())

	_, err = decl(WithRequireAcyclic()).Build()
	require.ErrorIs(t, err, ErrCycle)
	assert.Contains(t, err.Error(), "a -> b -> c -> a")

	acyclic, err := triageBuilder().Build()
	require.NoError(t, err)
	assert.False(t, acyclic.HasCycle())
}

func TestBuild_SelfDelegationIsCycle(t *testing.T) {
	_, err := NewBuilder(WithRequireAcyclic()).
		AddEntity("a").
		AddDelegation("a", "a").
		Build()
	assert.ErrorIs(t, err, ErrCycle)
}

func TestMustBuild(t *testing.T) {
	assert.NotPanics(t, func() { triageBuilder().MustBuild() })
	assert.Panics(t, func() { NewBuilder().MustBuild() })
}

func TestBuilderIsReusable(t *testing.T) {
	b := triageBuilder()
	g1, err := b.Build()
	require.NoError(t, err)
	g2, err := b.AddEntity("Extra").Build()
	require.NoError(t, err)
	assert.Equal(t, 4, g1.Len())
	assert.Equal(t, 5, g2.Len())
}
