//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package uitool declares the screen-control capabilities used by the
// desktop assistant agents. They are placeholders: nothing here executes.
package uitool

import (
	"strings"

	"trpc.group/trpc-go/trpc-agent-graph/tool"
)

// Capability names.
const (
	SetLayout        = "ui_set_layout"
	OpenApp          = "ui_open_app"
	HighlightElement = "ui_highlight_element"
)

// Layout modes accepted by ui_set_layout.
const (
	LayoutSingle = "single"
	LayoutSplit2 = "split-2"
	LayoutSplit3 = "split-3"
	LayoutSplit4 = "split-4"
)

// SetLayoutDeclaration switches the screen layout.
var SetLayoutDeclaration = &tool.Declaration{
	Name:        SetLayout,
	Description: "Set the screen layout (" + strings.Join(LayoutModes(), "/") + ").",
	Parameters: []tool.Parameter{
		{Name: "mode", Type: "string", Description: "Layout mode: " + strings.Join(LayoutModes(), ", ") + "."},
	},
}

// LayoutModes returns the modes ui_set_layout accepts.
func LayoutModes() []string {
	return []string{LayoutSingle, LayoutSplit2, LayoutSplit3, LayoutSplit4}
}

// OpenAppDeclaration opens an app on a screen.
var OpenAppDeclaration = &tool.Declaration{
	Name:        OpenApp,
	Description: "Open an app on the given screen.",
	Parameters: []tool.Parameter{
		{Name: "app_id", Type: "string", Description: "Registered app identifier."},
		{Name: "screen_id", Type: "int", Description: "Target screen index."},
	},
}

// HighlightElementDeclaration highlights a UI element.
var HighlightElementDeclaration = &tool.Declaration{
	Name:        HighlightElement,
	Description: "Highlight an element on screen.",
	Parameters: []tool.Parameter{
		{Name: "selector", Type: "string", Description: "CSS selector of the element."},
	},
}

// Declarations returns the UI capabilities in a stable order.
func Declarations() []*tool.Declaration {
	return []*tool.Declaration{
		SetLayoutDeclaration,
		OpenAppDeclaration,
		HighlightElementDeclaration,
	}
}

// Catalog returns a fresh catalog holding the UI capabilities.
func Catalog() *tool.Catalog {
	c, err := tool.NewCatalog(Declarations()...)
	if err != nil {
		// The declarations above are static and unique.
		panic(err)
	}
	return c
}
