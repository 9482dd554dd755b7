// Copyright (C) 2025 Kevnet IO (oss@kevnet.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package catalog

import (
	"fmt"

	"github.com/kevnet-io/rulate/services/compat/schema"
)

// ItemValidationError describes one conformance violation, citing the
// offending item, the dimension, and the reason.
type ItemValidationError struct {
	ItemID    string `json:"item_id"`
	Dimension string `json:"dimension,omitempty"`
	Reason    string `json:"reason"`
}

// Error implements the error interface.
func (e ItemValidationError) Error() string {
	if e.Dimension == "" {
		return fmt.Sprintf("item %q: %s", e.ItemID, e.Reason)
	}
	return fmt.Sprintf("item %q: dimension %q: %s", e.ItemID, e.Dimension, e.Reason)
}

// Validate checks every item in the catalog against the schema.
//
// # Description
//
// For each item:
//   - the item id must be non-empty and unique within the catalog
//   - every required dimension must have a present value
//   - every present value must type-check against its dimension: enum
//     values must be members of the allowed set, numeric values must lie
//     within [min,max] when bounds are set, list elements must each be
//     valid against the declared element type, string/boolean values are
//     checked for representational type only
//
// Keys that do not name a schema dimension are ignored, not an error.
// Validation never stops at the first invalid item: all errors across the
// whole catalog are aggregated so the caller gets complete feedback.
//
// The schema itself is assumed to have passed schema.Validate; Validate
// does not re-check schema-definition invariants.
//
// # Outputs
//
//   - []ItemValidationError: every violation found, in catalog order.
//     Empty (nil) when the whole catalog conforms.
func Validate(s schema.Schema, c Catalog) []ItemValidationError {
	var errs []ItemValidationError

	seen := make(map[string]bool, len(c.Items))
	for _, item := range c.Items {
		if item.ID == "" {
			errs = append(errs, ItemValidationError{
				ItemID: item.ID,
				Reason: "item id must not be empty",
			})
			continue
		}
		if seen[item.ID] {
			errs = append(errs, ItemValidationError{
				ItemID: item.ID,
				Reason: "duplicate item id",
			})
			continue
		}
		seen[item.ID] = true

		errs = append(errs, validateItem(s, item)...)
	}

	return errs
}

// validateItem checks a single item's values against the schema.
func validateItem(s schema.Schema, item Item) []ItemValidationError {
	var errs []ItemValidationError

	report := func(dimension, format string, args ...any) {
		errs = append(errs, ItemValidationError{
			ItemID:    item.ID,
			Dimension: dimension,
			Reason:    fmt.Sprintf(format, args...),
		})
	}

	for _, dim := range s.Dimensions {
		value, present := item.Value(dim.Name)
		if !present {
			if dim.Required {
				report(dim.Name, "required dimension is missing")
			}
			continue
		}
		if reason := checkValue(dim, dim.Type, value); reason != "" {
			report(dim.Name, "%s", reason)
		}
	}

	return errs
}

// checkValue type-checks one value against a dimension. For lists, typ is
// the element type on the recursive call. Returns "" when the value is
// valid, the violation reason otherwise.
func checkValue(dim schema.Dimension, typ schema.DimensionType, value any) string {
	switch typ {
	case schema.TypeEnum:
		literal, ok := value.(string)
		if !ok {
			return fmt.Sprintf("expected enum literal, got %T", value)
		}
		if !dim.AllowsValue(literal) {
			return fmt.Sprintf("value %q is not in the allowed set", literal)
		}

	case schema.TypeInteger:
		if !isIntegral(value) {
			return fmt.Sprintf("expected integer, got %T (%v)", value, value)
		}
		n, _ := asNumber(value)
		return checkBounds(dim, n)

	case schema.TypeFloat:
		n, ok := asNumber(value)
		if !ok {
			return fmt.Sprintf("expected number, got %T", value)
		}
		return checkBounds(dim, n)

	case schema.TypeString:
		if _, ok := value.(string); !ok {
			return fmt.Sprintf("expected string, got %T", value)
		}

	case schema.TypeBoolean:
		if _, ok := value.(bool); !ok {
			return fmt.Sprintf("expected boolean, got %T", value)
		}

	case schema.TypeList:
		elements, ok := value.([]any)
		if !ok {
			return fmt.Sprintf("expected list, got %T", value)
		}
		for i, el := range elements {
			if reason := checkValue(dim, dim.ItemType, el); reason != "" {
				return fmt.Sprintf("element %d: %s", i, reason)
			}
		}
	}

	return ""
}

// checkBounds verifies a numeric value against optional inclusive bounds.
func checkBounds(dim schema.Dimension, n float64) string {
	if dim.Min != nil && n < *dim.Min {
		return fmt.Sprintf("value %v is below min %v", n, *dim.Min)
	}
	if dim.Max != nil && n > *dim.Max {
		return fmt.Sprintf("value %v is above max %v", n, *dim.Max)
	}
	return ""
}
