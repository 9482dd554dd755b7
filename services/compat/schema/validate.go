// Copyright (C) 2025 Kevnet IO (oss@kevnet.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package schema

import "fmt"

// DefinitionError describes one violation found in a schema definition.
//
// Validation is batch-oriented: Validate reports every violation it finds
// rather than stopping at the first one, so a caller can present complete
// feedback in a single round trip.
type DefinitionError struct {
	// Schema is the name of the offending schema (may be empty when the
	// name itself is the violation).
	Schema string `json:"schema"`

	// Dimension is the name of the offending dimension, or "" for
	// schema-level violations.
	Dimension string `json:"dimension,omitempty"`

	// Reason is a human-readable description of the violation.
	Reason string `json:"reason"`
}

// Error implements the error interface.
func (e DefinitionError) Error() string {
	if e.Dimension == "" {
		return fmt.Sprintf("schema %q: %s", e.Schema, e.Reason)
	}
	return fmt.Sprintf("schema %q: dimension %q: %s", e.Schema, e.Dimension, e.Reason)
}

// Validate checks a schema definition before it may be used.
//
// # Description
//
// The following invariants are enforced:
//   - schema name is non-empty
//   - at least one dimension is declared
//   - dimension names are non-empty and unique within the schema
//   - every dimension type is a supported type
//   - enum dimensions declare a non-empty, duplicate-free value set
//   - numeric dimensions with both bounds set satisfy min <= max
//   - list dimensions declare a scalar element type; a list of enums
//     declares a value set for its elements
//   - constraint fields are not applied to types that do not use them
//
// # Outputs
//
//   - []DefinitionError: every violation found, in declaration order.
//     Empty (nil) when the schema is valid.
func Validate(s Schema) []DefinitionError {
	var errs []DefinitionError

	report := func(dimension, format string, args ...any) {
		errs = append(errs, DefinitionError{
			Schema:    s.Name,
			Dimension: dimension,
			Reason:    fmt.Sprintf(format, args...),
		})
	}

	if s.Name == "" {
		report("", "schema name must not be empty")
	}
	if len(s.Dimensions) == 0 {
		report("", "schema must declare at least one dimension")
	}

	seen := make(map[string]bool, len(s.Dimensions))
	for _, d := range s.Dimensions {
		if d.Name == "" {
			report("", "dimension name must not be empty")
			continue
		}
		if seen[d.Name] {
			report(d.Name, "duplicate dimension name")
			continue
		}
		seen[d.Name] = true

		if !d.Type.Valid() {
			report(d.Name, "unsupported dimension type %q", d.Type)
			continue
		}

		switch d.Type {
		case TypeEnum:
			validateEnumValues(d.Name, d.Values, report)
		case TypeList:
			if d.ItemType == "" {
				report(d.Name, "list dimension must declare item_type")
			} else if !d.ItemType.Scalar() {
				report(d.Name, "list item_type %q must be a scalar type", d.ItemType)
			} else if d.ItemType == TypeEnum {
				validateEnumValues(d.Name, d.Values, report)
			}
		}

		if len(d.Values) > 0 && d.Type != TypeEnum && !(d.Type == TypeList && d.ItemType == TypeEnum) {
			report(d.Name, "values constraint applies only to enum dimensions")
		}
		if (d.Min != nil || d.Max != nil) && !d.Type.Numeric() {
			report(d.Name, "min/max bounds apply only to integer and float dimensions")
		}
		if d.Min != nil && d.Max != nil && *d.Min > *d.Max {
			report(d.Name, "min %v exceeds max %v", *d.Min, *d.Max)
		}
	}

	return errs
}

// validateEnumValues checks that an enum value set is non-empty and free of
// duplicates and blanks.
func validateEnumValues(dimension string, values []string, report func(dimension, format string, args ...any)) {
	if len(values) == 0 {
		report(dimension, "enum dimension must declare a non-empty values set")
		return
	}
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if v == "" {
			report(dimension, "enum values must not be empty strings")
			continue
		}
		if seen[v] {
			report(dimension, "duplicate enum value %q", v)
		}
		seen[v] = true
	}
}
