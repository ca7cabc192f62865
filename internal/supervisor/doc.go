// Woody - Disney Vacation Planning Recommendation Service
// Copyright 2026 William Carrico (Williamcarrico)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Williamcarrico/woody-disney-vacation-planning-sub007

// Package supervisor builds the suture supervision tree for the service.
//
// The tree has two layers: data (catalog store maintenance) and api (the
// HTTP server). Layers are separate child supervisors so a crash loop in
// store maintenance cannot take the API down with it.
package supervisor
