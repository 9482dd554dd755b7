// Copyright (C) 2025 Kevnet IO (oss@kevnet.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package catalog defines catalog items and checks their conformance to a
// schema.
//
// An Item carries a mapping from dimension name to a typed value. An Item
// is conformant only relative to a specific schema; Validate runs every
// item in a catalog against the schema and aggregates all errors rather
// than stopping at the first invalid item.
package catalog

import "math"

// Item is one catalog entry with concrete values for some or all of a
// schema's dimensions.
//
// Values holds decoded values keyed by dimension name. Supported concrete
// types are string, bool, int/int64/uint64/float64 for numerics, and
// []any for lists. Keys that do not name a schema dimension are ignored by
// validation (forward compatibility).
type Item struct {
	ID     string         `json:"id" yaml:"id"`
	Values map[string]any `json:"values" yaml:"values"`
}

// Value returns the item's value for the dimension, if present.
func (it Item) Value(dimension string) (any, bool) {
	v, ok := it.Values[dimension]
	return v, ok
}

// Clone returns a deep copy of the item. List values are copied one level
// deep, which is sufficient for the scalar element types the schema model
// permits.
func (it Item) Clone() Item {
	out := Item{ID: it.ID}
	if it.Values != nil {
		out.Values = make(map[string]any, len(it.Values))
		for k, v := range it.Values {
			if list, ok := v.([]any); ok {
				copied := make([]any, len(list))
				copy(copied, list)
				out.Values[k] = copied
				continue
			}
			out.Values[k] = v
		}
	}
	return out
}

// Catalog is a named collection of items, all conformant to one schema.
type Catalog struct {
	Name  string `json:"name" yaml:"name"`
	Items []Item `json:"items" yaml:"items"`
}

// Clone returns a deep copy of the catalog.
func (c Catalog) Clone() Catalog {
	out := Catalog{Name: c.Name}
	if c.Items != nil {
		out.Items = make([]Item, len(c.Items))
		for i, it := range c.Items {
			out.Items[i] = it.Clone()
		}
	}
	return out
}

// asNumber coerces the decoded numeric representations (YAML produces int,
// JSON produces float64) to a float64 view.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	default:
		return 0, false
	}
}

// isIntegral returns true when v is a whole number. Float representations
// of whole numbers (JSON decodes all numbers as float64) are accepted.
func isIntegral(v any) bool {
	switch n := v.(type) {
	case int, int64, uint64:
		return true
	case float64:
		return n == math.Trunc(n)
	case float32:
		f := float64(n)
		return f == math.Trunc(f)
	default:
		return false
	}
}
