//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package tool declares the capabilities an agent can be annotated with.
//
// A capability is a name plus a descriptive signature. Declarations carry no
// executable code; they only label nodes of a hand-off graph.
package tool

import (
	"fmt"
	"strings"
)

// Parameter describes one argument of a capability.
type Parameter struct {
	// Name is the argument name.
	Name string `yaml:"name"`
	// Type is a free-form type name such as "string" or "int".
	Type string `yaml:"type"`
	// Description explains the argument.
	Description string `yaml:"description,omitempty"`
}

// Declaration describes a capability.
type Declaration struct {
	// Name is the unique capability name.
	Name string `yaml:"name"`
	// Description explains what the capability does.
	Description string `yaml:"description,omitempty"`
	// Parameters lists the arguments in call order.
	Parameters []Parameter `yaml:"parameters,omitempty"`
}

// Signature renders the declaration as name(arg type, ...).
func (d *Declaration) Signature() string {
	var b strings.Builder
	b.WriteString(d.Name)
	b.WriteByte('(')
	for i, p := range d.Parameters {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		if p.Type != "" {
			b.WriteByte(' ')
			b.WriteString(p.Type)
		}
	}
	b.WriteByte(')')
	return b.String()
}

// Catalog is an ordered, duplicate-free set of declarations.
type Catalog struct {
	decls []*Declaration
	index map[string]int
}

// NewCatalog creates a catalog. Declarations keep their order.
func NewCatalog(decls ...*Declaration) (*Catalog, error) {
	c := &Catalog{index: make(map[string]int, len(decls))}
	if err := c.Add(decls...); err != nil {
		return nil, err
	}
	return c, nil
}

// Add appends declarations to the catalog.
func (c *Catalog) Add(decls ...*Declaration) error {
	for _, d := range decls {
		if d == nil {
			return fmt.Errorf("tool: nil declaration")
		}
		if d.Name == "" {
			return fmt.Errorf("tool: declaration name cannot be empty")
		}
		if _, exists := c.index[d.Name]; exists {
			return fmt.Errorf("tool: declaration %q already exists", d.Name)
		}
		c.index[d.Name] = len(c.decls)
		c.decls = append(c.decls, d)
	}
	return nil
}

// Lookup returns the declaration registered under name.
func (c *Catalog) Lookup(name string) (*Declaration, bool) {
	if c == nil {
		return nil, false
	}
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.decls[i], true
}

// Has reports whether name is declared.
func (c *Catalog) Has(name string) bool {
	_, ok := c.Lookup(name)
	return ok
}

// Names returns the declared names in order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, len(c.decls))
	for i, d := range c.decls {
		names[i] = d.Name
	}
	return names
}

// Declarations returns the declarations in order.
func (c *Catalog) Declarations() []*Declaration {
	if c == nil {
		return nil
	}
	out := make([]*Declaration, len(c.decls))
	copy(out, c.decls)
	return out
}

// Len returns the number of declarations.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.decls)
}
