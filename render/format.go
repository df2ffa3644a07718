//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package render

import "strings"

// Format identifies an output format.
type Format string

// Supported formats.
const (
	// FormatPNG is a raster image. It is the default.
	FormatPNG Format = "png"
	// FormatJPG is a lossy raster image.
	FormatJPG Format = "jpg"
	// FormatSVG is a vector image.
	FormatSVG Format = "svg"
	// FormatPDF is a paginated document: the diagram followed by an agent table.
	FormatPDF Format = "pdf"
	// FormatDOT is Graphviz source with layout positions.
	FormatDOT Format = "dot"
	// FormatHTML is a standalone report page with an inline SVG.
	FormatHTML Format = "html"
)

// DefaultFormat is used when no format is given.
const DefaultFormat = FormatPNG

var formatAliases = map[string]Format{
	"png":                FormatPNG,
	"raster":             FormatPNG,
	"raster-image":       FormatPNG,
	"jpg":                FormatJPG,
	"jpeg":               FormatJPG,
	"svg":                FormatSVG,
	"vector":             FormatSVG,
	"vector-image":       FormatSVG,
	"pdf":                FormatPDF,
	"document":           FormatPDF,
	"paginated-document": FormatPDF,
	"dot":                FormatDOT,
	"gv":                 FormatDOT,
	"graphviz":           FormatDOT,
	"html":               FormatHTML,
	"htm":                FormatHTML,
	"report":             FormatHTML,
}

// Formats returns the canonical formats.
func Formats() []Format {
	return []Format{FormatPNG, FormatJPG, FormatSVG, FormatPDF, FormatDOT, FormatHTML}
}

// ParseFormat resolves a format name, file extension or abstract identifier
// such as "raster-image". Matching ignores case and a leading dot.
func ParseFormat(s string) (Format, error) {
	key := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".")
	if f, ok := formatAliases[key]; ok {
		return f, nil
	}
	return "", &UnsupportedFormatError{Format: s}
}

// ParseFormats parses a comma separated list, dropping repeats.
func ParseFormats(list string) ([]Format, error) {
	var (
		out  []Format
		seen = map[Format]bool{}
	)
	for _, part := range strings.Split(list, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		f, err := ParseFormat(part)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return nil, &UnsupportedFormatError{Format: list}
	}
	return out, nil
}

// Valid reports whether f is a canonical format.
func (f Format) Valid() bool {
	for _, c := range Formats() {
		if f == c {
			return true
		}
	}
	return false
}

// Extension returns the file extension without the dot.
func (f Format) Extension() string {
	return string(f)
}

// String implements fmt.Stringer.
func (f Format) String() string {
	return string(f)
}
