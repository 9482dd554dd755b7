// Copyright (C) 2025 Kevnet IO (oss@kevnet.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMatrix() *EvaluationMatrix {
	return newMatrix([]ComparisonResult{
		{Item1ID: "a", Item2ID: "b", Compatible: true},
		{Item1ID: "a", Item2ID: "c", Compatible: false},
		{Item1ID: "b", Item2ID: "c", Compatible: true},
	})
}

func TestLookup_NormalizesQueryOrder(t *testing.T) {
	m := sampleMatrix()

	forward, ok := m.Lookup("a", "c")
	require.True(t, ok)
	reversed, ok := m.Lookup("c", "a")
	require.True(t, ok)

	assert.Equal(t, forward, reversed)
	assert.Equal(t, "a", forward.Item1ID)
	assert.Equal(t, "c", forward.Item2ID)
}

func TestLookup_MissingPair(t *testing.T) {
	m := sampleMatrix()

	_, ok := m.Lookup("a", "z")
	assert.False(t, ok)
	_, ok = m.Lookup("a", "a")
	assert.False(t, ok, "self-pairs are never part of a matrix")
}

func TestItemIDs_DistinctSortedAxis(t *testing.T) {
	m := sampleMatrix()
	assert.Equal(t, []string{"a", "b", "c"}, m.ItemIDs())
}

func TestItemIDs_EmptyMatrix(t *testing.T) {
	m := newMatrix(nil)
	assert.Empty(t, m.ItemIDs())
}
