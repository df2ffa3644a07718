//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package render

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"png", FormatPNG},
		{"PNG", FormatPNG},
		{".png", FormatPNG},
		{"raster-image", FormatPNG},
		{"jpeg", FormatJPG},
		{"vector-image", FormatSVG},
		{" svg ", FormatSVG},
		{"paginated-document", FormatPDF},
		{"gv", FormatDOT},
		{"report", FormatHTML},
		{"htm", FormatHTML},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFormat_Unsupported(t *testing.T) {
	for _, in := range []string{"", "bmp", "png2", "raster image"} {
		_, err := ParseFormat(in)
		var ufe *UnsupportedFormatError
		require.True(t, errors.As(err, &ufe), "input %q", in)
		assert.Equal(t, in, ufe.Format)
		assert.Contains(t, err.Error(), "supported: png, jpg, svg, pdf, dot, html")
	}
}

func TestParseFormats(t *testing.T) {
	got, err := ParseFormats("png, svg,PNG,,raster-image,pdf")
	require.NoError(t, err)
	assert.Equal(t, []Format{FormatPNG, FormatSVG, FormatPDF}, got)

	_, err = ParseFormats(" , ")
	assert.Error(t, err)

	_, err = ParseFormats("png,gif")
	var ufe *UnsupportedFormatError
	require.ErrorAs(t, err, &ufe)
	assert.Equal(t, "gif", ufe.Format)
}

func TestFormatValid(t *testing.T) {
	for _, f := range Formats() {
		assert.True(t, f.Valid())
		assert.Equal(t, string(f), f.Extension())
	}
	assert.False(t, Format("raster-image").Valid())
	assert.False(t, Format("").Valid())
}

func TestParseRankDir(t *testing.T) {
	d, err := ParseRankDir("")
	require.NoError(t, err)
	assert.Equal(t, RankDirTB, d)

	d, err = ParseRankDir("lr")
	require.NoError(t, err)
	assert.Equal(t, RankDirLR, d)

	_, err = ParseRankDir("diagonal")
	assert.Error(t, err)
}

func TestRenderErrorMessage(t *testing.T) {
	err := &RenderError{Op: "write", Format: FormatPNG, Path: "out/agent_graph.png", Err: ErrEmptyOutput}
	assert.Equal(t, "render error: write png out/agent_graph.png: rendering produced no output", err.Error())
	assert.ErrorIs(t, err, ErrEmptyOutput)

	bare := &RenderError{Op: "schedule", Err: errors.New("pool closed")}
	assert.Equal(t, "render error: schedule: pool closed", bare.Error())
}
