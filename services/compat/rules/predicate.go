// Copyright (C) 2025 Kevnet IO (oss@kevnet.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package rules defines compatibility rules as tagged predicate expression
// trees, validates them against a schema, and evaluates them over pairs of
// item values.
//
// # Description
//
// A Predicate is data, never code: a tree of nodes discriminated by Kind.
// This keeps rules serializable (YAML/JSON), validatable at binding time,
// and safe to evaluate without executing caller-supplied functions.
//
// Atomic kinds reference one dimension and compare the two items' values
// for that dimension:
//
//   - equals / not_equals: typed equality on scalar dimensions
//   - in_set: both enum values are members of a parameter set
//   - range_overlap: numeric values within a tolerance of each other
//   - list_intersects: non-empty element intersection of two lists
//
// Composite kinds (and / or / not) combine child nodes.
//
// # Missing-value policy
//
// When a referenced dimension's value is absent on either item the atomic
// node evaluates to false (fails closed) instead of raising an error. This
// keeps evaluation total over every validated catalog: optional dimensions
// may legitimately be unset.
package rules

// Kind discriminates predicate node variants.
type Kind string

const (
	// KindEquals passes when both items carry equal values.
	KindEquals Kind = "equals"

	// KindNotEquals passes when both items carry values that differ.
	KindNotEquals Kind = "not_equals"

	// KindInSet passes when both items' enum values are members of the
	// node's Values set.
	KindInSet Kind = "in_set"

	// KindRangeOverlap passes when the items' numeric values are within
	// Tolerance of each other.
	KindRangeOverlap Kind = "range_overlap"

	// KindListIntersects passes when the items' lists share at least one
	// element.
	KindListIntersects Kind = "list_intersects"

	// KindAnd passes when every child passes.
	KindAnd Kind = "and"

	// KindOr passes when at least one child passes.
	KindOr Kind = "or"

	// KindNot inverts its single child.
	KindNot Kind = "not"
)

// Atomic returns true for node kinds that reference a dimension.
func (k Kind) Atomic() bool {
	switch k {
	case KindEquals, KindNotEquals, KindInSet, KindRangeOverlap, KindListIntersects:
		return true
	default:
		return false
	}
}

// Composite returns true for node kinds that combine children.
func (k Kind) Composite() bool {
	switch k {
	case KindAnd, KindOr, KindNot:
		return true
	default:
		return false
	}
}

// Valid returns true if k is a supported node kind.
func (k Kind) Valid() bool {
	return k.Atomic() || k.Composite()
}

// Predicate is one node of a tagged expression tree.
//
// Which fields are meaningful depends on Kind:
//
//   - atomic kinds use Dimension; in_set additionally uses Values and
//     range_overlap uses Tolerance
//   - composite kinds use Children (and/or take one or more children,
//     not takes exactly one)
type Predicate struct {
	Kind      Kind        `json:"kind" yaml:"kind"`
	Dimension string      `json:"dimension,omitempty" yaml:"dimension,omitempty"`
	Values    []string    `json:"values,omitempty" yaml:"values,omitempty"`
	Tolerance float64     `json:"tolerance,omitempty" yaml:"tolerance,omitempty"`
	Children  []Predicate `json:"children,omitempty" yaml:"children,omitempty"`
}

// Clone returns a deep copy of the predicate tree.
func (p Predicate) Clone() Predicate {
	out := p
	if p.Values != nil {
		out.Values = make([]string, len(p.Values))
		copy(out.Values, p.Values)
	}
	if p.Children != nil {
		out.Children = make([]Predicate, len(p.Children))
		for i, child := range p.Children {
			out.Children[i] = child.Clone()
		}
	}
	return out
}

// Rule is a named predicate plus metadata. A rule's predicate is evaluated
// once per item pair and yields the rule's passed boolean directly.
type Rule struct {
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Predicate   Predicate `json:"predicate" yaml:"predicate"`
}

// Clone returns a deep copy of the rule.
func (r Rule) Clone() Rule {
	out := r
	out.Predicate = r.Predicate.Clone()
	return out
}

// RuleSet is a named, ordered sequence of rules. Rule order is significant:
// it determines trace order in evaluation results and is never reordered or
// short-circuited.
type RuleSet struct {
	Name  string `json:"name" yaml:"name"`
	Rules []Rule `json:"rules" yaml:"rules"`
}

// Clone returns a deep copy of the rule set.
func (rs RuleSet) Clone() RuleSet {
	out := RuleSet{Name: rs.Name}
	if rs.Rules != nil {
		out.Rules = make([]Rule, len(rs.Rules))
		for i, r := range rs.Rules {
			out.Rules[i] = r.Clone()
		}
	}
	return out
}
