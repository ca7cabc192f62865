// Woody - Disney Vacation Planning Recommendation Service
// Copyright 2026 William Carrico (Williamcarrico)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Williamcarrico/woody-disney-vacation-planning-sub007

// Package api implements the HTTP surface of the recommendation service:
// a chi route tree, the JSON response envelope, and handlers for
// recommendations, catalog items, user preferences, scoring configuration,
// and operational endpoints (health probes, stats, Prometheus metrics).
//
// Handlers are plain http.HandlerFunc methods on Handler; cross-cutting
// concerns (request IDs, logging, metrics, compression, CORS, rate limits)
// are middleware, assembled per route group in SetupChi.
package api
