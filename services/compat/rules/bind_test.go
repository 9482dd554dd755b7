// Copyright (C) 2025 Kevnet IO (oss@kevnet.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevnet-io/rulate/services/compat/schema"
)

func bindSchema() schema.Schema {
	return schema.Schema{
		Name:    "apparel",
		Version: "1",
		Dimensions: []schema.Dimension{
			{Name: "category", Type: schema.TypeEnum, Values: []string{"shirt", "pants"}},
			{Name: "size", Type: schema.TypeInteger},
			{Name: "brand", Type: schema.TypeString},
			{Name: "colors", Type: schema.TypeList, ItemType: schema.TypeString},
		},
	}
}

func TestBind_AcceptsWellFormedRuleSet(t *testing.T) {
	rs := RuleSet{
		Name: "pairing",
		Rules: []Rule{
			{Name: "same_category", Predicate: Predicate{Kind: KindEquals, Dimension: "category"}},
			{Name: "size_close", Predicate: Predicate{Kind: KindRangeOverlap, Dimension: "size", Tolerance: 2}},
			{Name: "palette_overlap", Predicate: Predicate{Kind: KindListIntersects, Dimension: "colors"}},
			{Name: "composite", Predicate: Predicate{Kind: KindOr, Children: []Predicate{
				{Kind: KindInSet, Dimension: "category", Values: []string{"shirt"}},
				{Kind: KindNot, Children: []Predicate{
					{Kind: KindNotEquals, Dimension: "brand"},
				}},
			}}},
		},
	}

	assert.Empty(t, Bind(bindSchema(), rs))
}

func TestBind_Violations(t *testing.T) {
	tests := []struct {
		name          string
		rule          Rule
		wantDimension string
		wantReason    string
	}{
		{
			name:       "unknown dimension",
			rule:       Rule{Name: "r", Predicate: Predicate{Kind: KindEquals, Dimension: "ghost"}},
			wantDimension: "ghost",
			wantReason: "does not exist",
		},
		{
			name:       "unknown kind",
			rule:       Rule{Name: "r", Predicate: Predicate{Kind: "almost_equals", Dimension: "size"}},
			wantReason: "unsupported predicate kind",
		},
		{
			name:       "atomic without dimension",
			rule:       Rule{Name: "r", Predicate: Predicate{Kind: KindEquals}},
			wantReason: "must reference a dimension",
		},
		{
			name:          "range_overlap on enum",
			rule:          Rule{Name: "r", Predicate: Predicate{Kind: KindRangeOverlap, Dimension: "category"}},
			wantDimension: "category",
			wantReason:    "integer or float",
		},
		{
			name:          "negative tolerance",
			rule:          Rule{Name: "r", Predicate: Predicate{Kind: KindRangeOverlap, Dimension: "size", Tolerance: -1}},
			wantDimension: "size",
			wantReason:    "must not be negative",
		},
		{
			name:          "in_set on integer",
			rule:          Rule{Name: "r", Predicate: Predicate{Kind: KindInSet, Dimension: "size", Values: []string{"1"}}},
			wantDimension: "size",
			wantReason:    "requires an enum",
		},
		{
			name:          "in_set empty values",
			rule:          Rule{Name: "r", Predicate: Predicate{Kind: KindInSet, Dimension: "category"}},
			wantDimension: "category",
			wantReason:    "non-empty values",
		},
		{
			name:          "in_set value outside enum domain",
			rule:          Rule{Name: "r", Predicate: Predicate{Kind: KindInSet, Dimension: "category", Values: []string{"hat"}}},
			wantDimension: "category",
			wantReason:    "not in the dimension's allowed set",
		},
		{
			name:          "list_intersects on scalar",
			rule:          Rule{Name: "r", Predicate: Predicate{Kind: KindListIntersects, Dimension: "brand"}},
			wantDimension: "brand",
			wantReason:    "requires a list",
		},
		{
			name:          "equals on list",
			rule:          Rule{Name: "r", Predicate: Predicate{Kind: KindEquals, Dimension: "colors"}},
			wantDimension: "colors",
			wantReason:    "does not apply to list",
		},
		{
			name:       "not with two children",
			rule:       Rule{Name: "r", Predicate: Predicate{Kind: KindNot, Children: []Predicate{{Kind: KindEquals, Dimension: "size"}, {Kind: KindEquals, Dimension: "size"}}}},
			wantReason: "exactly one child",
		},
		{
			name:       "and without children",
			rule:       Rule{Name: "r", Predicate: Predicate{Kind: KindAnd}},
			wantReason: "at least one child",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			errs := Bind(bindSchema(), RuleSet{Name: "rs", Rules: []Rule{tc.rule}})
			require.NotEmpty(t, errs)
			assert.Equal(t, "r", errs[0].Rule)
			assert.Equal(t, tc.wantDimension, errs[0].Dimension)
			assert.Contains(t, errs[0].Reason, tc.wantReason)
		})
	}
}

func TestBind_DuplicateRuleNames(t *testing.T) {
	rs := RuleSet{Name: "rs", Rules: []Rule{
		{Name: "same", Predicate: Predicate{Kind: KindEquals, Dimension: "category"}},
		{Name: "same", Predicate: Predicate{Kind: KindEquals, Dimension: "size"}},
	}}

	errs := Bind(bindSchema(), rs)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Reason, "duplicate rule name")
}

func TestBind_BatchesAcrossRules(t *testing.T) {
	// Violations in separate rules, and deep inside a composite tree, must
	// all surface in one pass.
	rs := RuleSet{Name: "rs", Rules: []Rule{
		{Name: "a", Predicate: Predicate{Kind: KindEquals, Dimension: "ghost"}},
		{Name: "b", Predicate: Predicate{Kind: KindAnd, Children: []Predicate{
			{Kind: KindEquals, Dimension: "category"},
			{Kind: KindRangeOverlap, Dimension: "brand"},
		}}},
	}}

	errs := Bind(bindSchema(), rs)
	require.Len(t, errs, 2)
	assert.Equal(t, "a", errs[0].Rule)
	assert.Equal(t, "b", errs[1].Rule)
}
