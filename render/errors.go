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
	"fmt"
	"strings"
)

// Reasons carried by RenderError.
var (
	// ErrBackendUnavailable means the layout engine could not be started.
	ErrBackendUnavailable = errors.New("rendering backend unavailable")
	// ErrEmptyOutput means the backend produced no bytes.
	ErrEmptyOutput = errors.New("rendering produced no output")
	// ErrNilGraph means no graph was given.
	ErrNilGraph = errors.New("graph is nil")
	// ErrEmptyBase means the output base name is empty.
	ErrEmptyBase = errors.New("output base name is empty")
)

// UnsupportedFormatError reports an unknown format identifier.
type UnsupportedFormatError struct {
	Format string
}

// Error implements error.
func (e *UnsupportedFormatError) Error() string {
	names := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	return fmt.Sprintf("unsupported format %q (supported: %s)", e.Format, strings.Join(names, ", "))
}

// RenderError reports a failure while producing or writing output.
type RenderError struct {
	// Op is the failed step: "layout", "encode", "write" or "schedule".
	Op string
	// Format is the requested format.
	Format Format
	// Path is the output path, if known.
	Path string
	// Err is the underlying error.
	Err error
}

// Error implements error.
func (e *RenderError) Error() string {
	var b strings.Builder
	b.WriteString("render error: ")
	b.WriteString(e.Op)
	if e.Format != "" {
		b.WriteString(" ")
		b.WriteString(string(e.Format))
	}
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	b.WriteString(": ")
	if e.Err != nil {
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *RenderError) Unwrap() error {
	return e.Err
}
