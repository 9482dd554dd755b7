// Copyright (C) 2025 Kevnet IO (oss@kevnet.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package matrix

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/kevnet-io/rulate/services/compat/catalog"
	"github.com/kevnet-io/rulate/services/compat/rules"
)

// ErrEvaluationCancelled is returned when the caller's context is
// cancelled before the matrix is complete. The contract is complete matrix
// or nothing: partial results are never surfaced.
var ErrEvaluationCancelled = errors.New("evaluation cancelled")

// Engine computes evaluation matrices.
//
// # Preconditions
//
// Evaluate assumes the catalog has passed catalog.Validate with zero
// errors against the same schema the rule set was bound to, and that
// rules.Bind reported zero errors. Evaluating unvalidated input is a
// programmer error; the engine does not re-validate.
//
// # Concurrency
//
// Pair-rule evaluation is pure and stateless: each pair reads only the two
// items' values and the predicate trees, and writes only its own
// preassigned result slot, so pairs are distributed across a worker pool
// without locking. The assembled matrix is identical for any worker count:
// enumeration order is fixed by ascending item id and every result lands
// at its positional rank.
//
// Engine itself is immutable after construction and safe for concurrent
// use from multiple goroutines.
type Engine struct {
	workers int
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers sets the number of worker goroutines used to evaluate pairs.
// Values below 1 fall back to the default (GOMAXPROCS).
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

// New creates an Engine. With no options, pairs are evaluated on GOMAXPROCS
// workers.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers < 1 {
		e.workers = runtime.GOMAXPROCS(0)
	}
	return e
}

// pairJob identifies one unordered pair by the sorted-item indexes and its
// positional rank in the result sequence.
type pairJob struct {
	i, j, rank int
}

// Evaluate computes the complete evaluation matrix for one catalog and one
// rule set.
//
// # Description
//
// Steps, per the engine contract:
//
//  1. Snapshot both inputs (deep copy) so concurrent mutation of caller
//     state is never visible mid-evaluation.
//  2. Sort catalog items by ascending id to fix enumeration order.
//  3. For every i < j pair, evaluate every rule in rule-set order. All
//     rules are evaluated: the trace is never short-circuited, so it is
//     always complete and explainable.
//  4. Compatible is the AND over the pair's trace.
//  5. Results carry ids in canonical (Item1ID <= Item2ID) order, which the
//     ascending sort already guarantees.
//
// The returned matrix holds exactly n·(n−1)/2 results for a catalog of n
// items. Repeated calls on unchanged inputs produce an identical matrix.
//
// # Cancellation
//
// ctx is checked cooperatively between pair iterations. When it is
// cancelled the call returns ErrEvaluationCancelled (wrapping the context
// cause) and a nil matrix.
//
// # Inputs
//
//   - ctx: Context for cancellation. Must not be nil.
//   - cat: A catalog that passed conformance checking.
//   - rs: A rule set that passed binding validation.
//
// # Outputs
//
//   - *EvaluationMatrix: The complete matrix, nil on cancellation.
//   - error: nil or ErrEvaluationCancelled.
func (e *Engine) Evaluate(ctx context.Context, cat catalog.Catalog, rs rules.RuleSet) (*EvaluationMatrix, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEvaluationCancelled, err)
	}

	// Immutable snapshots for the lifetime of this call.
	cat = cat.Clone()
	rs = rs.Clone()

	items := make([]catalog.Item, len(cat.Items))
	copy(items, cat.Items)
	sort.Slice(items, func(a, b int) bool { return items[a].ID < items[b].ID })

	n := len(items)
	total := n * (n - 1) / 2
	results := make([]ComparisonResult, total)
	if total == 0 {
		return newMatrix(results), nil
	}

	workers := e.workers
	if workers > total {
		workers = total
	}

	g, gCtx := errgroup.WithContext(ctx)
	jobs := make(chan pairJob)

	g.Go(func() error {
		defer close(jobs)
		rank := 0
		for i := 0; i < n-1; i++ {
			for j := i + 1; j < n; j++ {
				select {
				case jobs <- pairJob{i: i, j: j, rank: rank}:
					rank++
				case <-gCtx.Done():
					return gCtx.Err()
				}
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for job := range jobs {
				if err := gCtx.Err(); err != nil {
					return err
				}
				results[job.rank] = comparePair(items[job.i], items[job.j], rs)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEvaluationCancelled, err)
	}

	return newMatrix(results), nil
}

// comparePair runs every rule against one pair and aggregates the trace.
// Item ids arrive pre-sorted, so the canonical order invariant holds by
// construction.
func comparePair(a, b catalog.Item, rs rules.RuleSet) ComparisonResult {
	trace := make([]RuleTrace, len(rs.Rules))
	compatible := true
	for i, rule := range rs.Rules {
		passed := rule.Predicate.Evaluate(a.Values, b.Values)
		trace[i] = RuleTrace{RuleName: rule.Name, Passed: passed}
		compatible = compatible && passed
	}
	return ComparisonResult{
		Item1ID:        a.ID,
		Item2ID:        b.ID,
		Compatible:     compatible,
		RulesEvaluated: trace,
	}
}
