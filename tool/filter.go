//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package tool

// FilterFunc reports whether a capability name should be kept.
type FilterFunc func(name string) bool

// FilterNames filters capability names based on a filter function.
// A nil filter keeps every name.
func FilterNames(names []string, filter FilterFunc) []string {
	if filter == nil {
		return append([]string(nil), names...)
	}
	filtered := make([]string, 0, len(names))
	for _, name := range names {
		if filter(name) {
			filtered = append(filtered, name)
		}
	}
	return filtered
}

// NewIncludeNamesFilter creates a FilterFunc that includes only the specified names.
func NewIncludeNamesFilter(names ...string) FilterFunc {
	allowedNames := make(map[string]struct{}, len(names))
	for _, name := range names {
		allowedNames[name] = struct{}{}
	}
	return func(name string) bool {
		_, ok := allowedNames[name]
		return ok
	}
}

// NewExcludeNamesFilter creates a FilterFunc that excludes the specified names.
func NewExcludeNamesFilter(names ...string) FilterFunc {
	excludedNames := make(map[string]struct{}, len(names))
	for _, name := range names {
		excludedNames[name] = struct{}{}
	}
	return func(name string) bool {
		_, ok := excludedNames[name]
		return !ok
	}
}
