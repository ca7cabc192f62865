// Woody - Disney Vacation Planning Recommendation Service
// Copyright 2026 William Carrico (Williamcarrico)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Williamcarrico/woody-disney-vacation-planning-sub007

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/Williamcarrico/woody-disney-vacation-planning-sub007/internal/metrics"
)

// ValueLogGCRunner matches the catalog store's garbage collection method.
//
// Satisfied by *catalog.Store.
type ValueLogGCRunner interface {
	RunValueLogGC(discardRatio float64) (rewritten bool, err error)
}

// CatalogGCService periodically runs Badger value-log garbage collection
// on the catalog store. Badger never reclaims value-log space on its own;
// something has to call RunValueLogGC, and it must not be the request path.
//
// When a cycle rewrites a log file another cycle runs immediately, since
// one rewrite often unblocks more.
//
// Example usage:
//
//	svc := services.NewCatalogGCService(store, 10*time.Minute, 0.5, logger)
//	tree.AddDataService(svc)
type CatalogGCService struct {
	store        ValueLogGCRunner
	interval     time.Duration
	discardRatio float64
	logger       zerolog.Logger
	name         string
}

// NewCatalogGCService creates the GC service. Non-positive interval or
// out-of-range discardRatio fall back to 10m and 0.5.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCatalogGCService(store ValueLogGCRunner, interval time.Duration, discardRatio float64, logger zerolog.Logger) *CatalogGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	if discardRatio <= 0 || discardRatio >= 1 {
		discardRatio = 0.5
	}
	return &CatalogGCService{
		store:        store,
		interval:     interval,
		discardRatio: discardRatio,
		logger:       logger.With().Str("component", "catalog-gc").Logger(),
		name:         "catalog-gc",
	}
}

// Serve implements suture.Service. It paces GC cycles with a rate limiter
// rather than a ticker so the follow-up cycles after a rewrite still count
// against the configured cadence.
func (s *CatalogGCService) Serve(ctx context.Context) error {
	limiter := rate.NewLimiter(rate.Every(s.interval), 1)

	// Consume the initial burst token so the first cycle waits a full
	// interval after startup.
	_ = limiter.Allow()

	for {
		if err := limiter.Wait(ctx); err != nil {
			return ctx.Err()
		}

		for {
			rewritten, err := s.store.RunValueLogGC(s.discardRatio)
			metrics.RecordStoreGC(rewritten, err)
			if err != nil {
				s.logger.Error().Err(err).Msg("value log gc failed")
				break
			}
			if !rewritten {
				break
			}
			s.logger.Debug().Msg("value log file rewritten")

			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
	}
}

// String implements fmt.Stringer; suture uses it in log messages.
func (s *CatalogGCService) String() string {
	return s.name
}
