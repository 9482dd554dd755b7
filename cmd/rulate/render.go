// Copyright (C) 2025 Kevnet IO (oss@kevnet.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kevnet-io/rulate/pkg/ux"
	"github.com/kevnet-io/rulate/services/compat/catalog"
	"github.com/kevnet-io/rulate/services/compat/matrix"
	"github.com/kevnet-io/rulate/services/compat/rules"
	"github.com/kevnet-io/rulate/services/compat/schema"
)

// evaluateOutput is the JSON shape emitted by --output json.
type evaluateOutput struct {
	ItemIDs []string                  `json:"item_ids"`
	Pairs   int                       `json:"pairs"`
	Results []matrix.ComparisonResult `json:"results"`
}

// renderMatrixJSON marshals the matrix for scripting consumers.
func renderMatrixJSON(m *matrix.EvaluationMatrix) (string, error) {
	out := evaluateOutput{
		ItemIDs: m.ItemIDs(),
		Pairs:   m.Len(),
		Results: m.Results,
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal matrix: %w", err)
	}
	return string(data), nil
}

// renderMatrixGrid renders the matrix as a symmetric grid. Rows and
// columns share the sorted item-id axis; the diagonal is blank because
// self-pairs are never evaluated.
func renderMatrixGrid(m *matrix.EvaluationMatrix) string {
	ids := m.ItemIDs()
	if len(ids) == 0 {
		return ux.Styles.Muted.Render("(no pairs)")
	}

	colWidth := 3
	for _, id := range ids {
		if len(id)+1 > colWidth {
			colWidth = len(id) + 1
		}
	}

	cellStyle := lipgloss.NewStyle().Width(colWidth).Align(lipgloss.Center)
	headStyle := cellStyle.Bold(true).Foreground(ux.ColorIndigoBright)
	okStyle := cellStyle.Foreground(ux.ColorSuccess)
	badStyle := cellStyle.Foreground(ux.ColorError)

	var b strings.Builder

	// Header row
	b.WriteString(headStyle.Render(""))
	for _, id := range ids {
		b.WriteString(headStyle.Render(id))
	}
	b.WriteString("\n")

	for _, row := range ids {
		b.WriteString(headStyle.Render(row))
		for _, col := range ids {
			if row == col {
				b.WriteString(cellStyle.Render("·"))
				continue
			}
			result, ok := m.Lookup(row, col)
			switch {
			case !ok:
				b.WriteString(cellStyle.Render("?"))
			case result.Compatible:
				b.WriteString(okStyle.Render("✓"))
			default:
				b.WriteString(badStyle.Render("✗"))
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

// renderMatrixMachine emits one tab-separated line per pair for
// machine-mode output.
func renderMatrixMachine(m *matrix.EvaluationMatrix) string {
	var b strings.Builder
	for _, r := range m.Results {
		verdict := "incompatible"
		if r.Compatible {
			verdict = "compatible"
		}
		fmt.Fprintf(&b, "%s\t%s\t%s\n", r.Item1ID, r.Item2ID, verdict)
	}
	return b.String()
}

// renderTrace prints the per-rule trace for a single pair.
func renderTrace(r matrix.ComparisonResult) {
	header := fmt.Sprintf("%s × %s", r.Item1ID, r.Item2ID)
	if r.Compatible {
		ux.CheckStatus(header, ux.IconSuccess, "")
	} else {
		ux.CheckStatus(header, ux.IconError, "")
	}
	for _, trace := range r.RulesEvaluated {
		icon := ux.IconError
		if trace.Passed {
			icon = ux.IconSuccess
		}
		ux.CheckStatus("  "+trace.RuleName, icon, "")
	}
}

// reportSchemaErrors prints schema definition errors.
func reportSchemaErrors(errs []schema.DefinitionError) {
	for _, e := range errs {
		name := e.Dimension
		if name == "" {
			name = e.Schema
		}
		ux.CheckStatus(name, ux.IconError, e.Reason)
	}
}

// reportItemErrors prints catalog conformance errors.
func reportItemErrors(errs []catalog.ItemValidationError) {
	for _, e := range errs {
		name := e.ItemID
		if e.Dimension != "" {
			name = fmt.Sprintf("%s.%s", e.ItemID, e.Dimension)
		}
		ux.CheckStatus(name, ux.IconError, e.Reason)
	}
}

// reportRuleErrors prints rule binding errors.
func reportRuleErrors(errs []rules.DefinitionError) {
	for _, e := range errs {
		name := e.Rule
		if e.Dimension != "" {
			name = fmt.Sprintf("%s (%s)", e.Rule, e.Dimension)
		}
		ux.CheckStatus(name, ux.IconError, e.Reason)
	}
}
