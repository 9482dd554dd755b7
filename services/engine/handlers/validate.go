// Copyright (C) 2025 Kevnet IO (oss@kevnet.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kevnet-io/rulate/services/compat/catalog"
	"github.com/kevnet-io/rulate/services/compat/rules"
	"github.com/kevnet-io/rulate/services/compat/schema"
	"github.com/kevnet-io/rulate/services/engine/datatypes"
	"github.com/kevnet-io/rulate/services/engine/observability"
)

// ValidateSchema handles POST /v1/schemas/validate.
//
// Returns 200 with valid=true for a well-formed schema, 422 with the full
// list of definition errors otherwise. Validation is batch: every
// violation in the schema is reported, not just the first.
func ValidateSchema(metrics *observability.EngineMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req datatypes.ValidateSchemaRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, datatypes.ErrorResponse{Error: "invalid request body"})
			return
		}
		if err := req.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, datatypes.ErrorResponse{Error: "request failed validation"})
			return
		}

		schemaErrs := schema.Validate(req.Schema)
		if len(schemaErrs) > 0 {
			metrics.RecordValidationFailures("schema", len(schemaErrs))
			slog.Info("schema rejected", "schema", req.Schema.Name, "errors", len(schemaErrs))
			c.JSON(http.StatusUnprocessableEntity, datatypes.ValidationResponse{
				Valid:        false,
				SchemaErrors: schemaErrs,
			})
			return
		}

		c.JSON(http.StatusOK, datatypes.ValidationResponse{Valid: true})
	}
}

// ValidateCatalog handles POST /v1/catalogs/validate.
//
// The schema rides along in the request because conformance is only
// defined against a schema. A malformed schema is itself a 422: items
// cannot be judged against a schema that does not hold together.
func ValidateCatalog(metrics *observability.EngineMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req datatypes.ValidateCatalogRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, datatypes.ErrorResponse{Error: "invalid request body"})
			return
		}
		if err := req.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, datatypes.ErrorResponse{Error: "request failed validation"})
			return
		}

		schemaErrs := schema.Validate(req.Schema)
		if len(schemaErrs) > 0 {
			metrics.RecordValidationFailures("schema", len(schemaErrs))
			c.JSON(http.StatusUnprocessableEntity, datatypes.ValidationResponse{
				Valid:        false,
				SchemaErrors: schemaErrs,
			})
			return
		}

		itemErrs := catalog.Validate(req.Schema, req.Catalog)
		if len(itemErrs) > 0 {
			metrics.RecordValidationFailures("catalog", len(itemErrs))
			slog.Info("catalog rejected",
				"catalog", req.Catalog.Name,
				"items", len(req.Catalog.Items),
				"errors", len(itemErrs))
			c.JSON(http.StatusUnprocessableEntity, datatypes.ValidationResponse{
				Valid:      false,
				ItemErrors: itemErrs,
			})
			return
		}

		c.JSON(http.StatusOK, datatypes.ValidationResponse{Valid: true})
	}
}

// ValidateRuleSet handles POST /v1/rulesets/validate.
//
// Binds the rule set against the schema: every predicate node is checked
// for structural soundness and dimension/type agreement.
func ValidateRuleSet(metrics *observability.EngineMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req datatypes.ValidateRuleSetRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, datatypes.ErrorResponse{Error: "invalid request body"})
			return
		}
		if err := req.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, datatypes.ErrorResponse{Error: "request failed validation"})
			return
		}

		schemaErrs := schema.Validate(req.Schema)
		if len(schemaErrs) > 0 {
			metrics.RecordValidationFailures("schema", len(schemaErrs))
			c.JSON(http.StatusUnprocessableEntity, datatypes.ValidationResponse{
				Valid:        false,
				SchemaErrors: schemaErrs,
			})
			return
		}

		ruleErrs := rules.Bind(req.Schema, req.RuleSet)
		if len(ruleErrs) > 0 {
			metrics.RecordValidationFailures("ruleset", len(ruleErrs))
			slog.Info("ruleset rejected",
				"ruleset", req.RuleSet.Name,
				"rules", len(req.RuleSet.Rules),
				"errors", len(ruleErrs))
			c.JSON(http.StatusUnprocessableEntity, datatypes.ValidationResponse{
				Valid:      false,
				RuleErrors: ruleErrs,
			})
			return
		}

		c.JSON(http.StatusOK, datatypes.ValidationResponse{Valid: true})
	}
}
