// Woody - Disney Vacation Planning Recommendation Service
// Copyright 2026 William Carrico (Williamcarrico)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Williamcarrico/woody-disney-vacation-planning-sub007

// Package catalog persists the recommendable item catalog and user
// preference profiles in BadgerDB. The store implements
// recommend.CatalogProvider so the engine can pull snapshots directly.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/Williamcarrico/woody-disney-vacation-planning-sub007/internal/recommend"
)

// Key prefixes for BadgerDB storage.
const (
	itemKeyPrefix  = "item:"
	prefsKeyPrefix = "prefs:"
)

// ErrItemNotFound is returned when a catalog item does not exist.
var ErrItemNotFound = errors.New("catalog: item not found")

// Store is a BadgerDB-backed catalog and preference store.
type Store struct {
	db     *badger.DB
	logger zerolog.Logger
}

// Open opens (or creates) the store at path. An empty path opens an
// in-memory database, used by tests.
func Open(path string, logger zerolog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Badger's own logger is too chatty; we log around it.
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("catalog: open badger db: %w", err)
	}
	return &Store{
		db:     db,
		logger: logger.With().Str("component", "catalog").Logger(),
	}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RunValueLogGC runs one Badger value-log garbage collection cycle.
// Badger returns an error when nothing was rewritten; that is reported
// as rewritten=false, not as an error.
func (s *Store) RunValueLogGC(discardRatio float64) (rewritten bool, err error) {
	err = s.db.RunValueLogGC(discardRatio)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrRejected) {
		return false, nil
	}
	return false, fmt.Errorf("catalog: value log gc: %w", err)
}

// PutItem validates and stores one catalog item, overwriting any
// existing item with the same ID.
func (s *Store) PutItem(ctx context.Context, item *recommend.Item) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("catalog: marshal item %s: %w", item.ID, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(itemKeyPrefix+item.ID), data)
	})
}

// GetItem returns the item with the given ID, or ErrItemNotFound.
func (s *Store) GetItem(ctx context.Context, id string) (*recommend.Item, error) {
	var item recommend.Item
	err := s.db.View(func(txn *badger.Txn) error {
		entry, err := txn.Get([]byte(itemKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrItemNotFound
		}
		if err != nil {
			return fmt.Errorf("catalog: get item %s: %w", id, err)
		}
		return entry.Value(func(val []byte) error {
			return json.Unmarshal(val, &item)
		})
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem removes the item with the given ID. Deleting a missing item
// is not an error.
func (s *Store) DeleteItem(ctx context.Context, id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(itemKeyPrefix + id))
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("catalog: delete item %s: %w", id, err)
		}
		return nil
	})
}

// Items returns the full catalog, sorted by item ID for stable output.
// Implements recommend.CatalogProvider.
func (s *Store) Items(ctx context.Context) ([]recommend.Item, error) {
	var items []recommend.Item
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(itemKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var item recommend.Item
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &item)
			})
			if err != nil {
				s.logger.Warn().Err(err).
					Str("key", string(it.Item().Key())).
					Msg("skipping undecodable catalog entry")
				continue
			}
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: list items: %w", err)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// ItemsByPark returns all items in the given park, sorted by ID.
func (s *Store) ItemsByPark(ctx context.Context, park recommend.Park) ([]recommend.Item, error) {
	all, err := s.Items(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]recommend.Item, 0, len(all))
	for _, item := range all {
		if item.Park == park {
			out = append(out, item)
		}
	}
	return out, nil
}

// CountItems reports the number of stored catalog items.
func (s *Store) CountItems(ctx context.Context) (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(itemKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// PutPreferences stores a user's preference profile.
func (s *Store) PutPreferences(ctx context.Context, prefs *recommend.UserPreferences) error {
	if prefs.UserID == "" {
		return fmt.Errorf("catalog: preferences missing user id")
	}
	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("catalog: marshal preferences for %s: %w", prefs.UserID, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(prefsKeyPrefix+prefs.UserID), data)
	})
}

// Preferences returns the stored profile for userID. Unknown users get an
// empty profile rather than an error; an absent profile is a valid state
// that simply contributes no preference terms.
// Implements recommend.CatalogProvider.
func (s *Store) Preferences(ctx context.Context, userID string) (*recommend.UserPreferences, error) {
	prefs := &recommend.UserPreferences{UserID: userID}
	err := s.db.View(func(txn *badger.Txn) error {
		entry, err := txn.Get([]byte(prefsKeyPrefix + userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("catalog: get preferences for %s: %w", userID, err)
		}
		return entry.Value(func(val []byte) error {
			return json.Unmarshal(val, prefs)
		})
	})
	if err != nil {
		return nil, err
	}
	return prefs, nil
}
