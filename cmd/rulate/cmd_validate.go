// Copyright (C) 2025 Kevnet IO (oss@kevnet.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kevnet-io/rulate/pkg/ux"
	"github.com/kevnet-io/rulate/services/compat/catalog"
	"github.com/kevnet-io/rulate/services/compat/rules"
	"github.com/kevnet-io/rulate/services/compat/schema"
)

// runValidate checks the schema, then the catalog and rule set against
// it. Every violation across all supplied inputs is reported; the exit
// code is nonzero if anything failed.
func runValidate(cmd *cobra.Command, args []string) {
	s, err := loadSchemaFile(schemaPath)
	if err != nil {
		ux.Error(err.Error())
		os.Exit(1)
	}

	failed := false

	schemaErrs := schema.Validate(s)
	if len(schemaErrs) > 0 {
		failed = true
		ux.Title("Schema")
		reportSchemaErrors(schemaErrs)
		logger.Info("schema rejected", "schema", s.Name, "errors", len(schemaErrs))
	} else {
		ux.Success(fmt.Sprintf("schema %q is well-formed (%d dimensions)", s.Name, len(s.Dimensions)))
	}

	// Item and rule checks only make sense against a sound schema.
	if !failed {
		if _, err := os.Stat(catalogPath); err == nil {
			c, err := loadCatalogFile(catalogPath)
			if err != nil {
				ux.Error(err.Error())
				os.Exit(1)
			}
			itemErrs := catalog.Validate(s, c)
			if len(itemErrs) > 0 {
				failed = true
				ux.Title("Catalog")
				reportItemErrors(itemErrs)
				logger.Info("catalog rejected", "catalog", c.Name, "errors", len(itemErrs))
			} else {
				ux.Success(fmt.Sprintf("catalog %q conforms (%d items)", c.Name, len(c.Items)))
			}
		} else {
			ux.Muted("no catalog file, skipping conformance check")
		}

		if _, err := os.Stat(rulesPath); err == nil {
			rs, err := loadRuleSetFile(rulesPath)
			if err != nil {
				ux.Error(err.Error())
				os.Exit(1)
			}
			ruleErrs := rules.Bind(s, rs)
			if len(ruleErrs) > 0 {
				failed = true
				ux.Title("Rules")
				reportRuleErrors(ruleErrs)
				logger.Info("ruleset rejected", "ruleset", rs.Name, "errors", len(ruleErrs))
			} else {
				ux.Success(fmt.Sprintf("ruleset %q binds cleanly (%d rules)", rs.Name, len(rs.Rules)))
			}
		} else {
			ux.Muted("no rules file, skipping rule binding check")
		}
	}

	if failed {
		os.Exit(1)
	}
}
