// Woody - Disney Vacation Planning Recommendation Service
// Copyright 2026 William Carrico (Williamcarrico)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Williamcarrico/woody-disney-vacation-planning-sub007

// Package services contains suture.Service wrappers that adapt component
// lifecycles (blocking server loops, periodic maintenance) to supervised
// context-aware Serve methods.
package services
