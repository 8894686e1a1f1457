// Copyright (c) 2026 Veridoc. All rights reserved.
// Author: eng@veridoc.dev

// Package api contains the health check handlers for liveness and readiness probes.
package api

import (
	"log/slog"
	"net/http"

	"github.com/veridoc/veridoc/internal/platform/respond"
)

// HealthDependencies holds the injectable dependency checkers for the /ready endpoint.
type HealthDependencies struct {
	// CheckDatabase pings the PostgreSQL pool.
	CheckDatabase func() error

	// CheckCache pings the Redis status cache.
	CheckCache func() error
}

// dependencyCheck names a single probed dependency and its result.
type dependencyCheck struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps, logger: logger}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health (Liveness probe).
func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{"status": "ok"})
}

// probe runs one dependency check and records the outcome.
func (handler *healthHandler) probe(name string, check func() error) dependencyCheck {
	result := dependencyCheck{Name: name, IsOK: true}
	if err := check(); err != nil {
		result.IsOK = false
		result.Error = err.Error()
		handler.logger.Error("readiness_check_failed",
			slog.String("dependency", name),
			slog.Any("error", err),
		)
	}
	return result
}

// readiness handles GET /ready (Readiness probe).
//
// The server is ready only when PostgreSQL and Redis both answer. A degraded
// response carries 503 so orchestrators pull the instance out of rotation.
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	results := make([]dependencyCheck, 0, 2)
	isSystemReady := true

	if handler.dependencies.CheckDatabase != nil {
		result := handler.probe("postgres", handler.dependencies.CheckDatabase)
		isSystemReady = isSystemReady && result.IsOK
		results = append(results, result)
	}

	if handler.dependencies.CheckCache != nil {
		result := handler.probe("redis", handler.dependencies.CheckCache)
		isSystemReady = isSystemReady && result.IsOK
		results = append(results, result)
	}

	responseStatus := "ready"

	if !isSystemReady {
		responseStatus = "degraded"
		// respond.OK always sends 200, so the 503 header goes out first.
		writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		writer.WriteHeader(http.StatusServiceUnavailable)
	}

	respond.OK(writer, map[string]any{
		"status": responseStatus,
		"checks": results,
	})
}
