// Copyright (C) 2025 Kevnet IO (oss@kevnet.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package rules

// Evaluate reports whether the predicate holds for a pair of items' value
// maps.
//
// # Description
//
// Evaluation is a pure function: no I/O, no mutation, and no error path.
// Every atomic kind is symmetric in its two operands, so
// Evaluate(a, b) == Evaluate(b, a) for all inputs.
//
// An atomic node whose dimension is absent on either item evaluates to
// false (fails closed); the same applies when a value does not have the
// representation the operator needs. Bind guarantees the latter cannot
// happen for conformant catalogs, but evaluation stays total regardless.
//
// Callers must have validated the rule set with Bind and the items with
// catalog.Validate; Evaluate itself never re-validates.
func (p Predicate) Evaluate(left, right map[string]any) bool {
	switch p.Kind {
	case KindAnd:
		for _, child := range p.Children {
			if !child.Evaluate(left, right) {
				return false
			}
		}
		return true

	case KindOr:
		for _, child := range p.Children {
			if child.Evaluate(left, right) {
				return true
			}
		}
		return false

	case KindNot:
		if len(p.Children) != 1 {
			return false
		}
		return !p.Children[0].Evaluate(left, right)
	}

	a, okA := left[p.Dimension]
	b, okB := right[p.Dimension]
	if !okA || !okB {
		return false
	}

	switch p.Kind {
	case KindEquals:
		eq, comparable := scalarEqual(a, b)
		return comparable && eq

	case KindNotEquals:
		eq, comparable := scalarEqual(a, b)
		return comparable && !eq

	case KindInSet:
		sa, okA := a.(string)
		sb, okB := b.(string)
		return okA && okB && inSet(p.Values, sa) && inSet(p.Values, sb)

	case KindRangeOverlap:
		na, okA := toNumber(a)
		nb, okB := toNumber(b)
		if !okA || !okB {
			return false
		}
		diff := na - nb
		if diff < 0 {
			diff = -diff
		}
		return diff <= p.Tolerance

	case KindListIntersects:
		la, okA := a.([]any)
		lb, okB := b.([]any)
		if !okA || !okB {
			return false
		}
		for _, ea := range la {
			for _, eb := range lb {
				if eq, comparable := scalarEqual(ea, eb); comparable && eq {
					return true
				}
			}
		}
		return false
	}

	return false
}

// scalarEqual compares two scalar values. Numbers compare numerically
// across integer and float representations. The second return value is
// false when the operands are not of a comparable scalar pairing.
func scalarEqual(a, b any) (equal, comparable bool) {
	if na, okA := toNumber(a); okA {
		nb, okB := toNumber(b)
		return na == nb, okB
	}

	switch va := a.(type) {
	case string:
		vb, ok := b.(string)
		return va == vb, ok
	case bool:
		vb, ok := b.(bool)
		return va == vb, ok
	default:
		return false, false
	}
}

// toNumber coerces the decoded numeric representations to float64.
func toNumber(v any) (float64, bool) {
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

// inSet reports membership of literal in values.
func inSet(values []string, literal string) bool {
	for _, v := range values {
		if v == literal {
			return true
		}
	}
	return false
}
