// Copyright (C) 2025 Kevnet IO (oss@kevnet.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package rules

import (
	"fmt"

	"github.com/kevnet-io/rulate/services/compat/schema"
)

// DefinitionError describes one violation found while binding a rule set
// to a schema: a predicate referencing an unknown or type-incompatible
// dimension, a malformed tree, or a duplicate rule name.
type DefinitionError struct {
	Rule      string `json:"rule"`
	Dimension string `json:"dimension,omitempty"`
	Reason    string `json:"reason"`
}

// Error implements the error interface.
func (e DefinitionError) Error() string {
	if e.Dimension == "" {
		return fmt.Sprintf("rule %q: %s", e.Rule, e.Reason)
	}
	return fmt.Sprintf("rule %q: dimension %q: %s", e.Rule, e.Dimension, e.Reason)
}

// Bind validates a rule set against a schema.
//
// # Description
//
// Binding-time validation is distinct from per-pair evaluation: it runs
// once, before any evaluation, and guarantees that evaluation is total.
// Checks, collected in batch across the whole rule set:
//
//   - rule names are non-empty and unique within the set
//   - every node kind is supported
//   - every atomic node references a dimension that exists in the schema
//   - the dimension's type supports the operator used on it:
//     equals/not_equals on any scalar type, range_overlap on integer/float
//     with a non-negative tolerance, in_set on enum with a non-empty
//     parameter set drawn from the dimension's allowed values,
//     list_intersects on list
//   - and/or nodes carry at least one child, not carries exactly one
//
// # Outputs
//
//   - []DefinitionError: every violation found, in rule order. Empty (nil)
//     when the rule set binds cleanly.
func Bind(s schema.Schema, rs RuleSet) []DefinitionError {
	var errs []DefinitionError

	seen := make(map[string]bool, len(rs.Rules))
	for _, rule := range rs.Rules {
		if rule.Name == "" {
			errs = append(errs, DefinitionError{
				Rule:   rule.Name,
				Reason: "rule name must not be empty",
			})
			continue
		}
		if seen[rule.Name] {
			errs = append(errs, DefinitionError{
				Rule:   rule.Name,
				Reason: "duplicate rule name",
			})
			continue
		}
		seen[rule.Name] = true

		errs = append(errs, bindNode(s, rule.Name, rule.Predicate)...)
	}

	return errs
}

// bindNode validates one predicate node and recurses into children.
func bindNode(s schema.Schema, rule string, p Predicate) []DefinitionError {
	var errs []DefinitionError

	report := func(dimension, format string, args ...any) {
		errs = append(errs, DefinitionError{
			Rule:      rule,
			Dimension: dimension,
			Reason:    fmt.Sprintf(format, args...),
		})
	}

	if !p.Kind.Valid() {
		report("", "unsupported predicate kind %q", p.Kind)
		return errs
	}

	if p.Kind.Composite() {
		switch p.Kind {
		case KindNot:
			if len(p.Children) != 1 {
				report("", "not node requires exactly one child, got %d", len(p.Children))
			}
		default:
			if len(p.Children) == 0 {
				report("", "%s node requires at least one child", p.Kind)
			}
		}
		for _, child := range p.Children {
			errs = append(errs, bindNode(s, rule, child)...)
		}
		return errs
	}

	// Atomic node.
	if p.Dimension == "" {
		report("", "%s node must reference a dimension", p.Kind)
		return errs
	}
	dim, ok := s.Dimension(p.Dimension)
	if !ok {
		report(p.Dimension, "dimension does not exist in schema %q", s.Name)
		return errs
	}

	switch p.Kind {
	case KindEquals, KindNotEquals:
		if dim.Type == schema.TypeList {
			report(p.Dimension, "%s does not apply to list dimensions", p.Kind)
		}

	case KindRangeOverlap:
		if !dim.Type.Numeric() {
			report(p.Dimension, "range_overlap requires an integer or float dimension, got %s", dim.Type)
		}
		if p.Tolerance < 0 {
			report(p.Dimension, "range_overlap tolerance must not be negative, got %v", p.Tolerance)
		}

	case KindInSet:
		if dim.Type != schema.TypeEnum {
			report(p.Dimension, "in_set requires an enum dimension, got %s", dim.Type)
		} else {
			if len(p.Values) == 0 {
				report(p.Dimension, "in_set requires a non-empty values set")
			}
			for _, v := range p.Values {
				if !dim.AllowsValue(v) {
					report(p.Dimension, "in_set value %q is not in the dimension's allowed set", v)
				}
			}
		}

	case KindListIntersects:
		if dim.Type != schema.TypeList {
			report(p.Dimension, "list_intersects requires a list dimension, got %s", dim.Type)
		}
	}

	return errs
}
