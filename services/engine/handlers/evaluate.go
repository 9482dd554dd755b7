// Copyright (C) 2025 Kevnet IO (oss@kevnet.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kevnet-io/rulate/services/compat/catalog"
	"github.com/kevnet-io/rulate/services/compat/matrix"
	"github.com/kevnet-io/rulate/services/compat/rules"
	"github.com/kevnet-io/rulate/services/compat/schema"
	"github.com/kevnet-io/rulate/services/engine/datatypes"
	"github.com/kevnet-io/rulate/services/engine/observability"
)

// Evaluate handles POST /v1/evaluate.
//
// The request carries the full (schema, catalog, ruleset) triple. All three
// inputs are validated up front and every violation across all three is
// returned in a single 422 response; evaluation starts only on clean
// inputs. A successful evaluation returns the complete matrix with one
// result per unordered pair and the full rule trace per pair.
//
// Cancellation (client disconnect, server shutdown) aborts the evaluation
// and yields 408 with no partial matrix.
func Evaluate(eng *matrix.Engine, metrics *observability.EngineMetrics) gin.HandlerFunc {
	tracer := otel.Tracer("rulate-engine")

	return func(c *gin.Context) {
		var req datatypes.EvaluateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, datatypes.ErrorResponse{Error: "invalid request body"})
			return
		}
		if err := req.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, datatypes.ErrorResponse{Error: "request failed validation"})
			return
		}

		evaluationID := uuid.New().String()

		ctx, span := tracer.Start(c.Request.Context(), "engine.evaluate")
		defer span.End()
		span.SetAttributes(
			attribute.String("evaluation.id", evaluationID),
			attribute.Int("catalog.items", len(req.Catalog.Items)),
			attribute.Int("ruleset.rules", len(req.RuleSet.Rules)),
		)

		resp := datatypes.ValidationResponse{Valid: false}
		resp.SchemaErrors = schema.Validate(req.Schema)
		if len(resp.SchemaErrors) == 0 {
			// Item and rule validation both presuppose a sound schema.
			resp.ItemErrors = catalog.Validate(req.Schema, req.Catalog)
			resp.RuleErrors = rules.Bind(req.Schema, req.RuleSet)
		}
		if len(resp.SchemaErrors)+len(resp.ItemErrors)+len(resp.RuleErrors) > 0 {
			metrics.RecordValidationFailures("schema", len(resp.SchemaErrors))
			metrics.RecordValidationFailures("catalog", len(resp.ItemErrors))
			metrics.RecordValidationFailures("ruleset", len(resp.RuleErrors))
			metrics.EvaluationsTotal.WithLabelValues("rejected").Inc()
			slog.Info("evaluation rejected",
				"evaluation_id", evaluationID,
				"schema_errors", len(resp.SchemaErrors),
				"item_errors", len(resp.ItemErrors),
				"rule_errors", len(resp.RuleErrors))
			c.JSON(http.StatusUnprocessableEntity, resp)
			return
		}

		engine := eng
		if req.Workers > 0 {
			engine = matrix.New(matrix.WithWorkers(req.Workers))
		}

		metrics.ActiveEvaluations.Inc()
		defer metrics.ActiveEvaluations.Dec()

		start := time.Now()
		result, err := engine.Evaluate(ctx, req.Catalog, req.RuleSet)
		elapsed := time.Since(start)

		if err != nil {
			if errors.Is(err, matrix.ErrEvaluationCancelled) {
				metrics.ObserveEvaluation("cancelled", elapsed.Seconds(), 0)
				slog.Warn("evaluation cancelled", "evaluation_id", evaluationID, "elapsed", elapsed)
				c.JSON(http.StatusRequestTimeout, datatypes.ErrorResponse{Error: "evaluation cancelled"})
				return
			}
			metrics.ObserveEvaluation("error", elapsed.Seconds(), 0)
			slog.Error("evaluation failed", "evaluation_id", evaluationID, "error", err)
			c.JSON(http.StatusInternalServerError, datatypes.ErrorResponse{Error: "evaluation failed"})
			return
		}

		metrics.ObserveEvaluation("ok", elapsed.Seconds(), result.Len())
		slog.Info("evaluation complete",
			"evaluation_id", evaluationID,
			"items", len(req.Catalog.Items),
			"pairs", result.Len(),
			"elapsed", elapsed)

		c.JSON(http.StatusOK, datatypes.EvaluateResponse{
			EvaluationID: evaluationID,
			ItemIDs:      result.ItemIDs(),
			Pairs:        result.Len(),
			Results:      result.Results,
		})
	}
}
