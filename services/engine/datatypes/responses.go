// Copyright (C) 2025 Kevnet IO (oss@kevnet.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

import (
	"github.com/kevnet-io/rulate/services/compat/catalog"
	"github.com/kevnet-io/rulate/services/compat/matrix"
	"github.com/kevnet-io/rulate/services/compat/rules"
	"github.com/kevnet-io/rulate/services/compat/schema"
)

// ValidationResponse is returned by the three validation endpoints and,
// with status 422, by POST /v1/evaluate when its inputs fail validation.
// Only the error groups relevant to the endpoint are populated.
type ValidationResponse struct {
	Valid        bool                           `json:"valid"`
	SchemaErrors []schema.DefinitionError       `json:"schema_errors,omitempty"`
	ItemErrors   []catalog.ItemValidationError  `json:"item_errors,omitempty"`
	RuleErrors   []rules.DefinitionError        `json:"rule_errors,omitempty"`
}

// EvaluateResponse is the success body of POST /v1/evaluate.
//
// EvaluationID is a server-generated UUIDv4 identifying this evaluation
// in logs and traces. ItemIDs is the sorted matrix axis; Results holds
// one entry per unordered pair in ascending-id order.
type EvaluateResponse struct {
	EvaluationID string                    `json:"evaluation_id"`
	ItemIDs      []string                  `json:"item_ids"`
	Pairs        int                       `json:"pairs"`
	Results      []matrix.ComparisonResult `json:"results"`
}

// ErrorResponse is the generic error body for malformed or rejected
// requests.
type ErrorResponse struct {
	Error string `json:"error"`
}
