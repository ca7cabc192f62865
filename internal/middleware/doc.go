// Woody - Disney Vacation Planning Recommendation Service
// Copyright 2026 William Carrico (Williamcarrico)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Williamcarrico/woody-disney-vacation-planning-sub007

// Package middleware provides HTTP middleware in http.HandlerFunc style:
// request ID propagation, structured request logging, Prometheus
// instrumentation, gzip compression, and an in-process performance monitor
// backing the admin stats endpoint.
//
// Middleware here composes with chi via a small adapter in the api package;
// keeping the http.HandlerFunc shape makes individual middleware trivially
// testable with httptest.
package middleware
