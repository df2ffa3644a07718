//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package uitool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-agent-graph/tool"
)

func TestCatalog(t *testing.T) {
	c := Catalog()
	assert.Equal(t, []string{SetLayout, OpenApp, HighlightElement}, c.Names())

	d, ok := c.Lookup(OpenApp)
	require.True(t, ok)
	assert.Equal(t, "ui_open_app(app_id string, screen_id int)", d.Signature())

	// Each call returns an independent catalog.
	require.NoError(t, c.Add(&tool.Declaration{Name: "extra"}))
	assert.False(t, Catalog().Has("extra"))
}

func TestSetLayoutDescribesModes(t *testing.T) {
	assert.Equal(t, []string{"single", "split-2", "split-3", "split-4"}, LayoutModes())
	assert.Equal(t, "Set the screen layout (single/split-2/split-3/split-4).", SetLayoutDeclaration.Description)
	require.Len(t, SetLayoutDeclaration.Parameters, 1)
	assert.Equal(t, "Layout mode: single, split-2, split-3, split-4.", SetLayoutDeclaration.Parameters[0].Description)
}
