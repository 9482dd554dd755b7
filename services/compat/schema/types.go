// Copyright (C) 2025 Kevnet IO (oss@kevnet.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package schema defines the typed attribute model that catalog items must
// satisfy, and validates schema definitions before they may be used.
//
// # Description
//
// A Schema is a named, versioned, ordered sequence of Dimensions. Each
// Dimension is one typed attribute slot with optional type-specific
// constraints (allowed enum values, numeric bounds, list element type).
// Dimension order is presentation-only; dimension names must be unique.
//
// Schemas are treated as immutable value snapshots once published. Code
// that needs to hold a schema across goroutines or across an evaluation
// call should take a Clone rather than sharing a reference into a mutable
// store.
package schema

// DimensionType identifies the value type of a Dimension.
type DimensionType string

const (
	// TypeEnum restricts values to a fixed set of string literals.
	TypeEnum DimensionType = "enum"

	// TypeInteger accepts whole numbers, optionally bounded by Min/Max.
	TypeInteger DimensionType = "integer"

	// TypeFloat accepts real numbers, optionally bounded by Min/Max.
	TypeFloat DimensionType = "float"

	// TypeString accepts arbitrary strings.
	TypeString DimensionType = "string"

	// TypeBoolean accepts true/false.
	TypeBoolean DimensionType = "boolean"

	// TypeList accepts an ordered collection whose elements are all of the
	// declared ItemType.
	TypeList DimensionType = "list"
)

// Valid returns true if t is one of the supported dimension types.
func (t DimensionType) Valid() bool {
	switch t {
	case TypeEnum, TypeInteger, TypeFloat, TypeString, TypeBoolean, TypeList:
		return true
	default:
		return false
	}
}

// Numeric returns true for the types that support numeric bounds and
// numeric predicate operators (RangeOverlap).
func (t DimensionType) Numeric() bool {
	return t == TypeInteger || t == TypeFloat
}

// Scalar returns true for the types that may appear as list elements.
func (t DimensionType) Scalar() bool {
	return t.Valid() && t != TypeList
}

// Dimension is one typed, named attribute slot in a Schema.
//
// Type-specific constraint fields:
//   - Values: enum only. Non-empty set of allowed string literals.
//   - Min/Max: integer/float only. Optional inclusive bounds; when both are
//     set, Min <= Max must hold.
//   - ItemType: list only. The element type; must be a scalar type. A list
//     of enums validates each element against Values.
type Dimension struct {
	Name     string        `json:"name" yaml:"name"`
	Type     DimensionType `json:"type" yaml:"type"`
	Required bool          `json:"required" yaml:"required"`
	Values   []string      `json:"values,omitempty" yaml:"values,omitempty"`
	Min      *float64      `json:"min,omitempty" yaml:"min,omitempty"`
	Max      *float64      `json:"max,omitempty" yaml:"max,omitempty"`
	ItemType DimensionType `json:"item_type,omitempty" yaml:"item_type,omitempty"`
}

// AllowsValue returns true if literal is a member of the enum value set.
// Only meaningful for enum dimensions (and list-of-enum elements).
func (d Dimension) AllowsValue(literal string) bool {
	for _, v := range d.Values {
		if v == literal {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the dimension.
func (d Dimension) Clone() Dimension {
	out := d
	if d.Values != nil {
		out.Values = make([]string, len(d.Values))
		copy(out.Values, d.Values)
	}
	if d.Min != nil {
		min := *d.Min
		out.Min = &min
	}
	if d.Max != nil {
		max := *d.Max
		out.Max = &max
	}
	return out
}

// Schema is a named, versioned, ordered sequence of Dimensions.
type Schema struct {
	Name       string      `json:"name" yaml:"name"`
	Version    string      `json:"version" yaml:"version"`
	Dimensions []Dimension `json:"dimensions" yaml:"dimensions"`
}

// Dimension returns the dimension with the given name, if present.
func (s Schema) Dimension(name string) (Dimension, bool) {
	for _, d := range s.Dimensions {
		if d.Name == name {
			return d, true
		}
	}
	return Dimension{}, false
}

// Clone returns a deep copy of the schema.
func (s Schema) Clone() Schema {
	out := s
	if s.Dimensions != nil {
		out.Dimensions = make([]Dimension, len(s.Dimensions))
		for i, d := range s.Dimensions {
			out.Dimensions[i] = d.Clone()
		}
	}
	return out
}
