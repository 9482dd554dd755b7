// Copyright (C) 2025 Kevnet IO (oss@kevnet.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kevnet-io/rulate/services/compat/matrix"
	"github.com/kevnet-io/rulate/services/engine/handlers"
	"github.com/kevnet-io/rulate/services/engine/observability"
)

// SetupRoutes registers the engine's routes on router.
func SetupRoutes(router *gin.Engine, eng *matrix.Engine,
	metrics *observability.EngineMetrics, gatherer prometheus.Gatherer) {

	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// API version 1 group
	v1 := router.Group("/v1")
	{
		v1.POST("/schemas/validate", handlers.ValidateSchema(metrics))
		v1.POST("/catalogs/validate", handlers.ValidateCatalog(metrics))
		v1.POST("/rulesets/validate", handlers.ValidateRuleSet(metrics))
		v1.POST("/evaluate", handlers.Evaluate(eng, metrics))
	}
}
