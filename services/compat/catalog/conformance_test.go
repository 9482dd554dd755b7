// Copyright (C) 2025 Kevnet IO (oss@kevnet.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevnet-io/rulate/services/compat/schema"
)

func floatPtr(f float64) *float64 { return &f }

func testSchema() schema.Schema {
	return schema.Schema{
		Name:    "apparel",
		Version: "1",
		Dimensions: []schema.Dimension{
			{Name: "category", Type: schema.TypeEnum, Required: true, Values: []string{"shirt", "pants"}},
			{Name: "size", Type: schema.TypeInteger, Required: true, Min: floatPtr(0), Max: floatPtr(60)},
			{Name: "weight", Type: schema.TypeFloat, Min: floatPtr(0)},
			{Name: "brand", Type: schema.TypeString},
			{Name: "washable", Type: schema.TypeBoolean},
			{Name: "colors", Type: schema.TypeList, ItemType: schema.TypeString},
		},
	}
}

func conformantItem(id string) Item {
	return Item{
		ID: id,
		Values: map[string]any{
			"category": "shirt",
			"size":     10,
			"weight":   0.4,
			"brand":    "north",
			"washable": true,
			"colors":   []any{"red", "blue"},
		},
	}
}

func TestValidate_ConformantCatalog(t *testing.T) {
	cat := Catalog{Name: "spring", Items: []Item{conformantItem("a"), conformantItem("b")}}

	errs := Validate(testSchema(), cat)
	assert.Empty(t, errs)
}

func TestValidate_Violations(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*Item)
		wantDimension string
		wantReason    string
	}{
		{
			name:          "missing required dimension",
			mutate:        func(it *Item) { delete(it.Values, "size") },
			wantDimension: "size",
			wantReason:    "required dimension is missing",
		},
		{
			name:          "enum value outside allowed set",
			mutate:        func(it *Item) { it.Values["category"] = "hat" },
			wantDimension: "category",
			wantReason:    "not in the allowed set",
		},
		{
			name:          "non-integral integer",
			mutate:        func(it *Item) { it.Values["size"] = 10.5 },
			wantDimension: "size",
			wantReason:    "expected integer",
		},
		{
			name:          "integer above max",
			mutate:        func(it *Item) { it.Values["size"] = 61 },
			wantDimension: "size",
			wantReason:    "above max",
		},
		{
			name:          "float below min",
			mutate:        func(it *Item) { it.Values["weight"] = -1.0 },
			wantDimension: "weight",
			wantReason:    "below min",
		},
		{
			name:          "wrong string type",
			mutate:        func(it *Item) { it.Values["brand"] = 7 },
			wantDimension: "brand",
			wantReason:    "expected string",
		},
		{
			name:          "wrong boolean type",
			mutate:        func(it *Item) { it.Values["washable"] = "yes" },
			wantDimension: "washable",
			wantReason:    "expected boolean",
		},
		{
			name:          "wrong list type",
			mutate:        func(it *Item) { it.Values["colors"] = "red" },
			wantDimension: "colors",
			wantReason:    "expected list",
		},
		{
			name:          "invalid list element",
			mutate:        func(it *Item) { it.Values["colors"] = []any{"red", 9} },
			wantDimension: "colors",
			wantReason:    "element 1",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			item := conformantItem("x1")
			tc.mutate(&item)

			errs := Validate(testSchema(), Catalog{Name: "c", Items: []Item{item}})
			require.Len(t, errs, 1)
			assert.Equal(t, "x1", errs[0].ItemID)
			assert.Equal(t, tc.wantDimension, errs[0].Dimension)
			assert.Contains(t, errs[0].Reason, tc.wantReason)
		})
	}
}

func TestValidate_UnknownKeysIgnored(t *testing.T) {
	item := conformantItem("a")
	item.Values["not_in_schema"] = 12345

	errs := Validate(testSchema(), Catalog{Items: []Item{item}})
	assert.Empty(t, errs, "unknown attribute keys must be ignored for forward compatibility")
}

func TestValidate_IntegralFloatAcceptedAsInteger(t *testing.T) {
	// JSON decodes every number as float64; whole-number floats must
	// satisfy integer dimensions.
	item := conformantItem("a")
	item.Values["size"] = float64(12)

	errs := Validate(testSchema(), Catalog{Items: []Item{item}})
	assert.Empty(t, errs)
}

func TestValidate_AggregatesAcrossItems(t *testing.T) {
	good := conformantItem("good")
	bad1 := conformantItem("bad1")
	delete(bad1.Values, "category")
	bad2 := conformantItem("bad2")
	bad2.Values["size"] = "huge"

	errs := Validate(testSchema(), Catalog{Items: []Item{bad1, good, bad2}})

	require.Len(t, errs, 2, "all invalid items must be reported, not only the first")
	assert.Equal(t, "bad1", errs[0].ItemID)
	assert.Equal(t, "bad2", errs[1].ItemID)
}

func TestValidate_DuplicateAndEmptyIDs(t *testing.T) {
	errs := Validate(testSchema(), Catalog{Items: []Item{
		conformantItem("a"),
		conformantItem("a"),
		{ID: "", Values: map[string]any{}},
	}})

	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Reason, "duplicate item id")
	assert.Contains(t, errs[1].Reason, "must not be empty")
}

func TestItem_CloneIsDeep(t *testing.T) {
	item := conformantItem("a")
	clone := item.Clone()

	clone.Values["brand"] = "other"
	clone.Values["colors"].([]any)[0] = "green"

	assert.Equal(t, "north", item.Values["brand"])
	assert.Equal(t, "red", item.Values["colors"].([]any)[0])
}
