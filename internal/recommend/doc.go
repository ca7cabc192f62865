// Woody - Disney Vacation Planning Recommendation Service
// Copyright 2026 William Carrico (Williamcarrico)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Williamcarrico/woody-disney-vacation-planning-sub007

// Package recommend scores and ranks park attractions, dining, shows,
// and events for a guest's preference profile.
//
// The pipeline has three independent stages:
//
//   - Scorer: a pure additive weighted scoring function mapping
//     (item, preferences, context) to a Recommendation with
//     human-readable justifications, or nil when the item earns no
//     signal.
//   - Ranker: sorts candidates, applies a diversity penalty so one
//     sub-category cannot flood the results, enforces the inclusion
//     threshold, and truncates to the requested count.
//   - Filters: narrows an already-scored list by hard constraints
//     (park, kind, sub-type, price, wait time, priority access) and
//     re-sorts by relevance, popularity, or rating without re-scoring.
//
// All weights, thresholds, and normalization bounds live in Config and
// are injected at construction, so tests can run isolated engines with
// different weight sets in parallel. Scoring never mutates its inputs
// and uses no clock or randomness, so output is deterministic for fixed
// inputs; ties are broken by item ID.
//
// Engine wraps the stages with a TTL response cache and an optional
// CatalogProvider for pulling items and profiles from storage.
package recommend
