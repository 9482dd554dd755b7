// Copyright (C) 2025 Kevnet IO (oss@kevnet.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package matrix enumerates all unordered item pairs of a catalog, runs
// every rule of a rule set against each pair, and aggregates per-pair
// compatibility with a full per-rule explainability trace.
package matrix

import "sort"

// RuleTrace is one entry of a comparison's explainability trace: the rule
// that was evaluated and whether the pair passed it.
type RuleTrace struct {
	RuleName string `json:"rule_name"`
	Passed   bool   `json:"passed"`
}

// ComparisonResult is the outcome for one unordered item pair.
//
// Item ids are in canonical order (Item1ID <= Item2ID lexicographically).
// RulesEvaluated carries one entry per rule in rule-set definition order,
// regardless of early failures, and Compatible is always the logical AND
// of all trace entries' Passed.
type ComparisonResult struct {
	Item1ID        string      `json:"item1_id"`
	Item2ID        string      `json:"item2_id"`
	Compatible     bool        `json:"compatible"`
	RulesEvaluated []RuleTrace `json:"rules_evaluated"`
}

// pairKey is the canonical (low id, high id) index key.
type pairKey struct {
	lo string
	hi string
}

// canonicalKey normalizes an id pair into canonical order.
func canonicalKey(a, b string) pairKey {
	if a <= b {
		return pairKey{lo: a, hi: b}
	}
	return pairKey{lo: b, hi: a}
}

// EvaluationMatrix is the complete set of comparison results for one
// (catalog, rule set) evaluation: exactly one result per unordered item
// pair, no duplicates, no self-pairs, in canonical pair order.
//
// An auxiliary index keyed by canonical pair gives renderers O(1) cell
// lookup without linear scans or duplicate storage of both orderings.
type EvaluationMatrix struct {
	Results []ComparisonResult `json:"results"`

	index map[pairKey]int
}

// newMatrix wraps an ordered result sequence and builds the lookup index.
func newMatrix(results []ComparisonResult) *EvaluationMatrix {
	m := &EvaluationMatrix{
		Results: results,
		index:   make(map[pairKey]int, len(results)),
	}
	for i, r := range results {
		m.index[pairKey{lo: r.Item1ID, hi: r.Item2ID}] = i
	}
	return m
}

// Lookup returns the comparison result for an item pair, normalizing the
// queried ids into canonical order first. Callers may pass the ids in
// either order.
func (m *EvaluationMatrix) Lookup(a, b string) (ComparisonResult, bool) {
	i, ok := m.index[canonicalKey(a, b)]
	if !ok {
		return ComparisonResult{}, false
	}
	return m.Results[i], true
}

// ItemIDs derives the distinct, ascending item-id axis from the results.
// This is the axis a renderer lays out rows and columns on.
func (m *EvaluationMatrix) ItemIDs() []string {
	seen := make(map[string]bool, len(m.Results))
	var ids []string
	for _, r := range m.Results {
		if !seen[r.Item1ID] {
			seen[r.Item1ID] = true
			ids = append(ids, r.Item1ID)
		}
		if !seen[r.Item2ID] {
			seen[r.Item2ID] = true
			ids = append(ids, r.Item2ID)
		}
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of comparison results.
func (m *EvaluationMatrix) Len() int {
	return len(m.Results)
}
