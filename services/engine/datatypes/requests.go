// Copyright (C) 2025 Kevnet IO (oss@kevnet.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package datatypes provides request and response types for the engine
// service.
//
// Request types carry go-playground/validator tags plus struct-level
// checks for the input caps. Cap violations are transport-level guards
// (bounded request size), distinct from the domain validators in
// services/compat which judge the content.
package datatypes

import (
	"github.com/go-playground/validator/v10"

	"github.com/kevnet-io/rulate/services/compat/catalog"
	"github.com/kevnet-io/rulate/services/compat/rules"
	"github.com/kevnet-io/rulate/services/compat/schema"
)

const (
	// MaxCatalogItems caps the number of items accepted per request. The
	// matrix is quadratic in catalog size; 5000 items is ~12.5M pairs,
	// which is the most a single synchronous request should carry.
	MaxCatalogItems = 5000

	// MaxRules caps the number of rules accepted per request.
	MaxRules = 256

	// MaxWorkers caps the caller-requested worker count.
	MaxWorkers = 256
)

// engineValidate is the shared validator instance for engine request
// types. Initialized in init() with struct-level cap checks.
var engineValidate *validator.Validate

func init() {
	engineValidate = validator.New()
	engineValidate.RegisterStructValidation(validateEvaluateRequest, EvaluateRequest{})
	engineValidate.RegisterStructValidation(validateCatalogRequest, ValidateCatalogRequest{})
	engineValidate.RegisterStructValidation(validateRuleSetRequest, ValidateRuleSetRequest{})
}

// ValidateSchemaRequest is the body of POST /v1/schemas/validate.
type ValidateSchemaRequest struct {
	Schema schema.Schema `json:"schema" validate:"required"`
}

// Validate checks the request against its validation tags.
func (r *ValidateSchemaRequest) Validate() error {
	return engineValidate.Struct(r)
}

// ValidateCatalogRequest is the body of POST /v1/catalogs/validate. The
// schema travels with the catalog: conformance is only defined relative to
// a specific schema.
type ValidateCatalogRequest struct {
	Schema  schema.Schema   `json:"schema" validate:"required"`
	Catalog catalog.Catalog `json:"catalog" validate:"required"`
}

// Validate checks the request against its validation tags and caps.
func (r *ValidateCatalogRequest) Validate() error {
	return engineValidate.Struct(r)
}

// ValidateRuleSetRequest is the body of POST /v1/rulesets/validate.
type ValidateRuleSetRequest struct {
	Schema  schema.Schema `json:"schema" validate:"required"`
	RuleSet rules.RuleSet `json:"ruleset" validate:"required"`
}

// Validate checks the request against its validation tags and caps.
func (r *ValidateRuleSetRequest) Validate() error {
	return engineValidate.Struct(r)
}

// EvaluateRequest is the body of POST /v1/evaluate: a bound (schema,
// catalog, rule set) triple plus evaluation options.
//
// Workers optionally overrides the engine's worker count for this request;
// 0 means use the server default.
type EvaluateRequest struct {
	Schema  schema.Schema   `json:"schema" validate:"required"`
	Catalog catalog.Catalog `json:"catalog" validate:"required"`
	RuleSet rules.RuleSet   `json:"ruleset" validate:"required"`
	Workers int             `json:"workers" validate:"gte=0"`
}

// Validate checks the request against its validation tags and caps.
func (r *EvaluateRequest) Validate() error {
	return engineValidate.Struct(r)
}

// validateEvaluateRequest enforces the request caps at struct level.
func validateEvaluateRequest(sl validator.StructLevel) {
	req := sl.Current().Interface().(EvaluateRequest)
	if len(req.Catalog.Items) > MaxCatalogItems {
		sl.ReportError(req.Catalog.Items, "Catalog.Items", "Catalog", "maxitems", "")
	}
	if len(req.RuleSet.Rules) > MaxRules {
		sl.ReportError(req.RuleSet.Rules, "RuleSet.Rules", "RuleSet", "maxrules", "")
	}
	if req.Workers > MaxWorkers {
		sl.ReportError(req.Workers, "Workers", "Workers", "maxworkers", "")
	}
}

// validateCatalogRequest enforces the catalog cap at struct level.
func validateCatalogRequest(sl validator.StructLevel) {
	req := sl.Current().Interface().(ValidateCatalogRequest)
	if len(req.Catalog.Items) > MaxCatalogItems {
		sl.ReportError(req.Catalog.Items, "Catalog.Items", "Catalog", "maxitems", "")
	}
}

// validateRuleSetRequest enforces the rule cap at struct level.
func validateRuleSetRequest(sl validator.StructLevel) {
	req := sl.Current().Interface().(ValidateRuleSetRequest)
	if len(req.RuleSet.Rules) > MaxRules {
		sl.ReportError(req.RuleSet.Rules, "RuleSet.Rules", "RuleSet", "maxrules", "")
	}
}
