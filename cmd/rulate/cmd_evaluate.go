// Copyright (C) 2025 Kevnet IO (oss@kevnet.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kevnet-io/rulate/cmd/rulate/config"
	"github.com/kevnet-io/rulate/pkg/ux"
	"github.com/kevnet-io/rulate/services/compat/catalog"
	"github.com/kevnet-io/rulate/services/compat/matrix"
	"github.com/kevnet-io/rulate/services/compat/rules"
	"github.com/kevnet-io/rulate/services/compat/schema"
)

// runEvaluate validates the three inputs and runs the full pairwise
// evaluation. Ctrl-C cancels the run; no partial matrix is printed.
func runEvaluate(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	in, err := loadInputs(schemaPath, catalogPath, rulesPath)
	if err != nil {
		ux.Error(err.Error())
		os.Exit(1)
	}

	if !validateInputs(in) {
		os.Exit(1)
	}

	result, err := evaluateMatrix(ctx, in)
	if err != nil {
		if errors.Is(err, matrix.ErrEvaluationCancelled) {
			ux.Warning("evaluation cancelled, discarding partial results")
			os.Exit(130)
		}
		ux.Error(err.Error())
		os.Exit(1)
	}

	printMatrix(result)
}

// validateInputs runs all three validators, reporting every violation.
// Returns true when the inputs are clean.
func validateInputs(in evaluationInputs) bool {
	schemaErrs := schema.Validate(in.Schema)
	if len(schemaErrs) > 0 {
		ux.Title("Schema")
		reportSchemaErrors(schemaErrs)
		return false
	}

	itemErrs := catalog.Validate(in.Schema, in.Catalog)
	ruleErrs := rules.Bind(in.Schema, in.RuleSet)
	if len(itemErrs) > 0 {
		ux.Title("Catalog")
		reportItemErrors(itemErrs)
	}
	if len(ruleErrs) > 0 {
		ux.Title("Rules")
		reportRuleErrors(ruleErrs)
	}
	return len(itemErrs)+len(ruleErrs) == 0
}

// evaluateMatrix runs the engine with a spinner on the terminal.
func evaluateMatrix(ctx context.Context, in evaluationInputs) (*matrix.EvaluationMatrix, error) {
	n := len(in.Catalog.Items)
	pairs := n * (n - 1) / 2

	workerCount := workers
	if workerCount == 0 {
		workerCount = config.Global.Engine.Workers
	}
	var opts []matrix.Option
	if workerCount > 0 {
		opts = append(opts, matrix.WithWorkers(workerCount))
	}
	eng := matrix.New(opts...)

	spin := ux.NewSpinner(fmt.Sprintf("evaluating %d pairs across %d rules", pairs, len(in.RuleSet.Rules)))
	spin.Start()
	start := time.Now()

	result, err := eng.Evaluate(ctx, in.Catalog, in.RuleSet)
	elapsed := time.Since(start)

	if err != nil {
		spin.Stop()
		logger.Warn("evaluation aborted", "error", err, "elapsed", elapsed)
		return nil, err
	}

	spin.StopWithSuccess(fmt.Sprintf("evaluated %d pairs in %s", result.Len(), elapsed.Round(time.Millisecond)))
	logger.Info("evaluation complete", "items", n, "pairs", result.Len(), "elapsed", elapsed)
	return result, nil
}

// printMatrix renders the result in the configured format.
func printMatrix(result *matrix.EvaluationMatrix) {
	format := outputFormat
	if format == "" {
		format = config.Global.Output.Format
	}

	switch {
	case format == "json":
		out, err := renderMatrixJSON(result)
		if err != nil {
			ux.Error(err.Error())
			os.Exit(1)
		}
		fmt.Println(out)
	case ux.GetPersonality().Level == ux.PersonalityMachine:
		fmt.Print(renderMatrixMachine(result))
	default:
		fmt.Println(renderMatrixGrid(result))
		if showTraces {
			for _, r := range result.Results {
				renderTrace(r)
			}
		}
	}

	compatible := 0
	for _, r := range result.Results {
		if r.Compatible {
			compatible++
		}
	}
	ux.PairSummary(compatible, result.Len()-compatible, result.Len())
}
