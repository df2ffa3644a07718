//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package tool

import (
	"reflect"
	"testing"
)

func TestFilterNames_WithIncludeFilter(t *testing.T) {
	names := []string{"alpha", "beta", "gamma"}
	filtered := FilterNames(names, NewIncludeNamesFilter("alpha", "gamma"))
	assertNames(t, filtered, []string{"alpha", "gamma"})
}

func TestFilterNames_WithExcludeFilter(t *testing.T) {
	names := []string{"alpha", "beta", "gamma"}
	filtered := FilterNames(names, NewExcludeNamesFilter("beta"))
	assertNames(t, filtered, []string{"alpha", "gamma"})
}

func TestFilterNames_NoFilter(t *testing.T) {
	names := []string{"alpha", "beta"}
	filtered := FilterNames(names, nil)
	assertNames(t, filtered, names)

	filtered[0] = "changed"
	if names[0] != "alpha" {
		t.Fatalf("FilterNames must not alias its input")
	}
}

func assertNames(t *testing.T, got, want []string) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("names = %v, want %v", got, want)
	}
}
