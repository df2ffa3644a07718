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
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// Reasons carried by ConfigurationError.
var (
	ErrEmptyName           = errors.New("name cannot be empty")
	ErrDuplicateEntity     = errors.New("entity already exists")
	ErrUndefinedEntity     = errors.New("entity is not defined")
	ErrNoTargets           = errors.New("delegation has no targets")
	ErrDuplicateDelegation = errors.New("delegation already declared for source")
	ErrDuplicateTarget     = errors.New("target listed more than once")
	ErrUnknownCapability   = errors.New("capability is not known")
	ErrEmptyGraph          = errors.New("graph has no entities")
	ErrCycle               = errors.New("delegation cycle")
)

// ConfigurationError reports an invalid static graph configuration.
type ConfigurationError struct {
	// Entity is the entity the problem was found on, if any.
	Entity string
	// Err is the underlying reason, usually one of the Err* values.
	Err error
}

// Error implements error.
func (e *ConfigurationError) Error() string {
	if e.Entity == "" {
		return fmt.Sprintf("configuration error: %v", e.Err)
	}
	return fmt.Sprintf("configuration error: entity %q: %v", e.Entity, e.Err)
}

// Unwrap returns the underlying reason.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func configErrorf(entity string, reason error, format string, args ...any) error {
	if format == "" {
		return &ConfigurationError{Entity: entity, Err: reason}
	}
	return &ConfigurationError{
		Entity: entity,
		Err:    fmt.Errorf("%w: "+format, append([]any{reason}, args...)...),
	}
}

// IsConfigurationError reports whether err is, or combines, a ConfigurationError.
func IsConfigurationError(err error) bool {
	for _, e := range multierr.Errors(err) {
		var cfgErr *ConfigurationError
		if errors.As(e, &cfgErr) {
			return true
		}
	}
	return false
}
