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

// Package graph models agent hand-off topologies.
//
// A Graph holds named entities (agents) and delegation edges from a router
// entity to the specialists it may hand work off to. Graphs are built once
// through Builder and never change afterwards.
package graph

// Entity is a named node of the delegation graph.
type Entity struct {
	// Name is unique within a graph.
	Name string
	// Description is free text shown alongside the node, typically the
	// agent's instructions.
	Description string
	// Capabilities is an ordered set of capability names.
	Capabilities []string
}

// HasCapability reports whether the entity carries the named capability.
func (e Entity) HasCapability(name string) bool {
	for _, c := range e.Capabilities {
		if c == name {
			return true
		}
	}
	return false
}

func (e Entity) clone() Entity {
	e.Capabilities = append([]string(nil), e.Capabilities...)
	return e
}

// DelegationEdge says that Source may hand off work to each of Targets.
type DelegationEdge struct {
	// Source is the router entity name.
	Source string
	// Targets are the specialist entity names, in declaration order.
	Targets []string
}

func (d DelegationEdge) clone() DelegationEdge {
	d.Targets = append([]string(nil), d.Targets...)
	return d
}

// Graph is an immutable delegation graph.
type Graph struct {
	root     string
	entities []Entity
	// index maps NFC-normalized entity names to positions in entities.
	index map[string]int
	edges []DelegationEdge
	// edgeIndex maps NFC-normalized source names to positions in edges.
	edgeIndex map[string]int
}

// Root returns the designated root entity.
func (g *Graph) Root() Entity {
	e, _ := g.Entity(g.root)
	return e
}

// RootName returns the name of the root entity.
func (g *Graph) RootName() string {
	return g.root
}

// Len returns the number of entities.
func (g *Graph) Len() int {
	return len(g.entities)
}

// Entities returns all entities in declaration order.
func (g *Graph) Entities() []Entity {
	out := make([]Entity, len(g.entities))
	for i, e := range g.entities {
		out[i] = e.clone()
	}
	return out
}

// Entity returns the entity with the given name. Lookups, like uniqueness,
// compare NFC-normalized names.
func (g *Graph) Entity(name string) (Entity, bool) {
	i, ok := g.index[normalize(name)]
	if !ok {
		return Entity{}, false
	}
	return g.entities[i].clone(), true
}

// Edges returns all delegation edges in declaration order.
func (g *Graph) Edges() []DelegationEdge {
	out := make([]DelegationEdge, len(g.edges))
	for i, e := range g.edges {
		out[i] = e.clone()
	}
	return out
}

// Targets returns the delegation targets of source in order, or nil when
// source does not route.
func (g *Graph) Targets(source string) []string {
	i, ok := g.edgeIndex[normalize(source)]
	if !ok {
		return nil
	}
	return append([]string(nil), g.edges[i].Targets...)
}

// IsRouter reports whether name has outgoing delegations.
func (g *Graph) IsRouter(name string) bool {
	_, ok := g.edgeIndex[normalize(name)]
	return ok
}

// Reachable returns the entity names reachable from the root in
// breadth-first order, root first.
func (g *Graph) Reachable() []string {
	if g.root == "" {
		return nil
	}
	visited := map[string]bool{g.root: true}
	order := []string{g.root}
	for i := 0; i < len(order); i++ {
		for _, to := range g.Targets(order[i]) {
			if visited[to] {
				continue
			}
			visited[to] = true
			order = append(order, to)
		}
	}
	return order
}

// HasCycle reports whether any delegation path returns to its start.
func (g *Graph) HasCycle() bool {
	return len(g.findCycle()) > 0
}

// findCycle returns the entity names of one cycle, or nil.
func (g *Graph) findCycle() []string {
	const (
		unvisited = iota
		inStack
		done
	)
	state := make(map[string]int, len(g.entities))
	var stack []string
	var cycle []string

	var visit func(name string) bool
	visit = func(name string) bool {
		state[name] = inStack
		stack = append(stack, name)
		for _, to := range g.Targets(name) {
			switch state[to] {
			case inStack:
				for i := len(stack) - 1; i >= 0; i-- {
					if stack[i] == to {
						cycle = append(append([]string(nil), stack[i:]...), to)
						break
					}
				}
				return true
			case unvisited:
				if visit(to) {
					return true
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[name] = done
		return false
	}

	for _, e := range g.entities {
		if state[e.Name] == unvisited && visit(e.Name) {
			return cycle
		}
	}
	return nil
}
