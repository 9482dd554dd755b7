// Copyright (C) 2025 Kevnet IO (oss@kevnet.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package rules

import "testing"

func values(pairs ...any) map[string]any {
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		m[pairs[i].(string)] = pairs[i+1]
	}
	return m
}

func TestEvaluate_AtomicKinds(t *testing.T) {
	tests := []struct {
		name  string
		pred  Predicate
		left  map[string]any
		right map[string]any
		want  bool
	}{
		{
			name:  "equals strings match",
			pred:  Predicate{Kind: KindEquals, Dimension: "category"},
			left:  values("category", "shirt"),
			right: values("category", "shirt"),
			want:  true,
		},
		{
			name:  "equals strings differ",
			pred:  Predicate{Kind: KindEquals, Dimension: "category"},
			left:  values("category", "shirt"),
			right: values("category", "pants"),
			want:  false,
		},
		{
			name:  "equals int and float representations",
			pred:  Predicate{Kind: KindEquals, Dimension: "size"},
			left:  values("size", 2),
			right: values("size", float64(2)),
			want:  true,
		},
		{
			name:  "equals booleans",
			pred:  Predicate{Kind: KindEquals, Dimension: "washable"},
			left:  values("washable", true),
			right: values("washable", true),
			want:  true,
		},
		{
			name:  "not_equals differing values",
			pred:  Predicate{Kind: KindNotEquals, Dimension: "category"},
			left:  values("category", "shirt"),
			right: values("category", "pants"),
			want:  true,
		},
		{
			name:  "not_equals equal values",
			pred:  Predicate{Kind: KindNotEquals, Dimension: "category"},
			left:  values("category", "shirt"),
			right: values("category", "shirt"),
			want:  false,
		},
		{
			name:  "in_set both members",
			pred:  Predicate{Kind: KindInSet, Dimension: "category", Values: []string{"shirt", "pants"}},
			left:  values("category", "shirt"),
			right: values("category", "pants"),
			want:  true,
		},
		{
			name:  "in_set one outside",
			pred:  Predicate{Kind: KindInSet, Dimension: "category", Values: []string{"shirt"}},
			left:  values("category", "shirt"),
			right: values("category", "pants"),
			want:  false,
		},
		{
			name:  "range_overlap within tolerance",
			pred:  Predicate{Kind: KindRangeOverlap, Dimension: "size", Tolerance: 1},
			left:  values("size", 1),
			right: values("size", 2),
			want:  true,
		},
		{
			name:  "range_overlap outside tolerance",
			pred:  Predicate{Kind: KindRangeOverlap, Dimension: "size", Tolerance: 1},
			left:  values("size", 1),
			right: values("size", 5),
			want:  false,
		},
		{
			name:  "range_overlap zero tolerance exact",
			pred:  Predicate{Kind: KindRangeOverlap, Dimension: "size", Tolerance: 0},
			left:  values("size", 3),
			right: values("size", 3),
			want:  true,
		},
		{
			name:  "list_intersects shared element",
			pred:  Predicate{Kind: KindListIntersects, Dimension: "colors"},
			left:  values("colors", []any{"red", "blue"}),
			right: values("colors", []any{"blue", "green"}),
			want:  true,
		},
		{
			name:  "list_intersects disjoint",
			pred:  Predicate{Kind: KindListIntersects, Dimension: "colors"},
			left:  values("colors", []any{"red"}),
			right: values("colors", []any{"green"}),
			want:  false,
		},
		{
			name:  "list_intersects numeric elements across representations",
			pred:  Predicate{Kind: KindListIntersects, Dimension: "sizes"},
			left:  values("sizes", []any{1, 2}),
			right: values("sizes", []any{float64(2), float64(3)}),
			want:  true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.pred.Evaluate(tc.left, tc.right); got != tc.want {
				t.Fatalf("Evaluate() = %v, want %v", got, tc.want)
			}
			// Every atomic kind is symmetric.
			if got := tc.pred.Evaluate(tc.right, tc.left); got != tc.want {
				t.Fatalf("Evaluate() not symmetric: swapped operands = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestEvaluate_MissingValueFailsClosed(t *testing.T) {
	preds := []Predicate{
		{Kind: KindEquals, Dimension: "size"},
		{Kind: KindNotEquals, Dimension: "size"},
		{Kind: KindInSet, Dimension: "size", Values: []string{"a"}},
		{Kind: KindRangeOverlap, Dimension: "size", Tolerance: 100},
		{Kind: KindListIntersects, Dimension: "size"},
	}

	withValue := values("size", 1)
	withoutValue := values()

	for _, p := range preds {
		t.Run(string(p.Kind), func(t *testing.T) {
			if p.Evaluate(withValue, withoutValue) {
				t.Error("absent value on right must evaluate to false")
			}
			if p.Evaluate(withoutValue, withValue) {
				t.Error("absent value on left must evaluate to false")
			}
			if p.Evaluate(withoutValue, withoutValue) {
				t.Error("absent value on both must evaluate to false")
			}
		})
	}
}

func TestEvaluate_Composites(t *testing.T) {
	sameCategory := Predicate{Kind: KindEquals, Dimension: "category"}
	sizeClose := Predicate{Kind: KindRangeOverlap, Dimension: "size", Tolerance: 1}

	left := values("category", "shirt", "size", 1)
	rightNear := values("category", "shirt", "size", 2)
	rightFar := values("category", "pants", "size", 9)

	tests := []struct {
		name  string
		pred  Predicate
		right map[string]any
		want  bool
	}{
		{
			name:  "and all pass",
			pred:  Predicate{Kind: KindAnd, Children: []Predicate{sameCategory, sizeClose}},
			right: rightNear,
			want:  true,
		},
		{
			name:  "and one fails",
			pred:  Predicate{Kind: KindAnd, Children: []Predicate{sameCategory, sizeClose}},
			right: rightFar,
			want:  false,
		},
		{
			name:  "or one passes",
			pred:  Predicate{Kind: KindOr, Children: []Predicate{sameCategory, sizeClose}},
			right: values("category", "pants", "size", 2),
			want:  true,
		},
		{
			name:  "or none pass",
			pred:  Predicate{Kind: KindOr, Children: []Predicate{sameCategory, sizeClose}},
			right: rightFar,
			want:  false,
		},
		{
			name:  "not inverts",
			pred:  Predicate{Kind: KindNot, Children: []Predicate{sameCategory}},
			right: rightFar,
			want:  true,
		},
		{
			name: "nested tree",
			pred: Predicate{Kind: KindAnd, Children: []Predicate{
				sameCategory,
				{Kind: KindNot, Children: []Predicate{sizeClose}},
			}},
			right: values("category", "shirt", "size", 9),
			want:  true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.pred.Evaluate(left, tc.right); got != tc.want {
				t.Fatalf("Evaluate() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestEvaluate_NotOverMissingValue(t *testing.T) {
	// The atomic child fails closed; not negates that, by design.
	p := Predicate{Kind: KindNot, Children: []Predicate{
		{Kind: KindEquals, Dimension: "size"},
	}}
	if !p.Evaluate(values(), values("size", 1)) {
		t.Fatal("not over a failed-closed atom must be true")
	}
}

func TestPredicate_CloneIsDeep(t *testing.T) {
	p := Predicate{Kind: KindAnd, Children: []Predicate{
		{Kind: KindInSet, Dimension: "category", Values: []string{"shirt"}},
	}}
	clone := p.Clone()
	clone.Children[0].Values[0] = "pants"

	if p.Children[0].Values[0] != "shirt" {
		t.Fatal("clone shares values with original")
	}
}
