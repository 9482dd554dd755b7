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

	"gopkg.in/yaml.v3"

	"github.com/kevnet-io/rulate/services/compat/catalog"
	"github.com/kevnet-io/rulate/services/compat/rules"
	"github.com/kevnet-io/rulate/services/compat/schema"
)

// loadSchemaFile reads and parses a schema definition from a YAML file.
func loadSchemaFile(path string) (schema.Schema, error) {
	var s schema.Schema
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read schema file: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse schema file %s: %w", path, err)
	}
	return s, nil
}

// loadCatalogFile reads and parses a catalog from a YAML file.
func loadCatalogFile(path string) (catalog.Catalog, error) {
	var c catalog.Catalog
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read catalog file: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parse catalog file %s: %w", path, err)
	}
	return c, nil
}

// loadRuleSetFile reads and parses a rule set from a YAML file.
func loadRuleSetFile(path string) (rules.RuleSet, error) {
	var rs rules.RuleSet
	data, err := os.ReadFile(path)
	if err != nil {
		return rs, fmt.Errorf("read ruleset file: %w", err)
	}
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return rs, fmt.Errorf("parse ruleset file %s: %w", path, err)
	}
	return rs, nil
}

// evaluationInputs bundles the three files an evaluation needs.
type evaluationInputs struct {
	Schema  schema.Schema
	Catalog catalog.Catalog
	RuleSet rules.RuleSet
}

// loadInputs loads all three input files, failing on the first
// unreadable or unparseable file.
func loadInputs(schemaPath, catalogPath, rulesPath string) (evaluationInputs, error) {
	var in evaluationInputs
	var err error

	if in.Schema, err = loadSchemaFile(schemaPath); err != nil {
		return in, err
	}
	if in.Catalog, err = loadCatalogFile(catalogPath); err != nil {
		return in, err
	}
	if in.RuleSet, err = loadRuleSetFile(rulesPath); err != nil {
		return in, err
	}
	return in, nil
}
