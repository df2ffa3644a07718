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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphAccessorsReturnCopies(t *testing.T) {
	g := triageBuilder().MustBuild()

	entities := g.Entities()
	entities[1].Capabilities[0] = "mutated"
	entities[0].Name = "mutated"

	edges := g.Edges()
	edges[0].Targets[0] = "mutated"

	targets := g.Targets("Triage")
	targets[0] = "mutated"

	support, ok := g.Entity("Support")
	require.True(t, ok)
	assert.Equal(t, "ui_set_layout", support.Capabilities[0])
	assert.Equal(t, "Triage", g.Entities()[0].Name)
	assert.Equal(t, []string{"Support", "Sales", "Orders"}, g.Targets("Triage"))
}

func TestGraphLookupsNormalizeNames(t *testing.T) {
	g := NewBuilder().
		AddEntity("Caf\u00e9").
		AddEntity("Bar").
		AddDelegation("Cafe\u0301", "Bar").
		MustBuild()

	e, ok := g.Entity("Cafe\u0301")
	require.True(t, ok)
	assert.Equal(t, "Caf\u00e9", e.Name, "the declared spelling is kept")
	assert.Equal(t, []string{"Bar"}, g.Targets("Cafe\u0301"))
	assert.Equal(t, []string{"Bar"}, g.Targets("Caf\u00e9"))
	assert.True(t, g.IsRouter("Cafe\u0301"))
	assert.Equal(t, "Caf\u00e9", g.Edges()[0].Source)
}

func TestGraphReachable(t *testing.T) {
	g := NewBuilder().
		AddEntity("root").
		AddEntity("a").
		AddEntity("b").
		AddEntity("leaf").
		AddEntity("island").
		AddDelegation("root", "a", "b").
		AddDelegation("a", "leaf", "root").
		SetRoot("root").
		MustBuild()

	assert.Equal(t, []string{"root", "a", "b", "leaf"}, g.Reachable())
}

func TestConfigurationErrorMessage(t *testing.T) {
	err := &ConfigurationError{Entity: "Sales", Err: ErrDuplicateEntity}
	assert.Equal(t, `configuration error: entity "Sales": entity already exists`, err.Error())

	err = &ConfigurationError{Err: ErrEmptyGraph}
	assert.Equal(t, "configuration error: graph has no entities", err.Error())
	assert.False(t, IsConfigurationError(ErrEmptyGraph))
	assert.False(t, IsConfigurationError(nil))
}
