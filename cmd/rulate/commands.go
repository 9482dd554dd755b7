// Copyright (C) 2025 Kevnet IO (oss@kevnet.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"github.com/spf13/cobra"

	"github.com/kevnet-io/rulate/pkg/ux"
)

// --- Global Command Variables ---
var (
	schemaPath       string
	catalogPath      string
	rulesPath        string
	workers          int
	outputFormat     string
	showTraces       bool
	personalityLevel string // UX personality level (full/minimal/machine)

	rootCmd = &cobra.Command{
		Use:   "rulate",
		Short: "A cli to validate catalogs and evaluate pairwise compatibility",
		Long: `Rulate checks catalog items against a typed attribute schema and
				evaluates every unordered item pair against a declarative rule set,
				producing a full compatibility matrix with per-rule traces.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize UX personality from flag or environment
			if personalityLevel != "" {
				ux.SetPersonalityLevel(ux.ParsePersonalityLevel(personalityLevel))
			} else {
				ux.InitPersonality()
			}
		},
	}

	// --- Validation ---
	validateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Validate a schema, a catalog against it, and a rule set bound to it",
		Long: `Validate checks each supplied input and reports every violation,
				not just the first. The catalog and rule set are optional; whatever
				is supplied is checked against the schema.`,
		Run: runValidate, // Defined in cmd_validate.go
	}

	// --- Evaluation ---
	evaluateCmd = &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate the full pairwise compatibility matrix",
		Long: `Evaluate validates the schema, catalog, and rule set, then runs
				every rule against every unordered item pair. Output is a rendered
				grid or JSON. Interrupting the run discards all partial results.`,
		Run: runEvaluate, // Defined in cmd_evaluate.go
	}

	// --- Watch ---
	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Re-evaluate automatically whenever an input file changes",
		Long: `Watch monitors the schema, catalog, and rule set files and re-runs
				the evaluation after each change, debounced so editor save bursts
				trigger a single run.`,
		Run: runWatch, // Defined in cmd_watch.go
	}
)

// init runs when the Go program starts
func init() {
	// Global UX personality flag
	rootCmd.PersistentFlags().StringVar(&personalityLevel, "personality", "",
		"Output style: full (default), minimal, or machine (scripting)")

	rootCmd.PersistentFlags().StringVarP(&schemaPath, "schema", "s", "schema.yaml",
		"Path to the schema definition YAML")
	rootCmd.PersistentFlags().StringVarP(&catalogPath, "catalog", "c", "catalog.yaml",
		"Path to the catalog YAML")
	rootCmd.PersistentFlags().StringVarP(&rulesPath, "rules", "r", "rules.yaml",
		"Path to the rule set YAML")

	rootCmd.AddCommand(validateCmd)

	rootCmd.AddCommand(evaluateCmd)
	evaluateCmd.Flags().IntVarP(&workers, "workers", "w", 0,
		"Evaluation worker count (0 = one per CPU)")
	evaluateCmd.Flags().StringVarP(&outputFormat, "output", "o", "",
		"Output format: table or json (default from config)")
	evaluateCmd.Flags().BoolVar(&showTraces, "traces", false,
		"Print the per-rule trace for every pair")

	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().IntVarP(&workers, "workers", "w", 0,
		"Evaluation worker count (0 = one per CPU)")
}
