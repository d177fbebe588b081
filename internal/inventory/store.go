// Package inventory owns the in-memory asset collection and the pure
// functions derived from it: filtering, warranty expiry and dashboard
// aggregation.
package inventory

import (
	"sync"

	"techtrack-api/internal/models"
)

// Store is the single owner of the asset list. Records are kept newest
// first and are only changed through Add, Create and Remove.
type Store struct {
	mu     sync.RWMutex
	assets []models.Asset
	newID  func() string
}

// NewStore creates a store holding seed in the given order
func NewStore(seed ...models.Asset) *Store {
	assets := make([]models.Asset, len(seed))
	copy(assets, seed)
	return &Store{
		assets: assets,
		newID:  newID,
	}
}

// Add prepends a fully populated asset. It always succeeds.
func (s *Store) Add(a models.Asset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.assets = append(s.assets, models.Asset{})
	copy(s.assets[1:], s.assets)
	s.assets[0] = a
}

// Remove deletes the asset with the given id and reports whether one
// was found. Removing an unknown id leaves the store untouched.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.assets {
		if s.assets[i].ID == id {
			s.assets = append(s.assets[:i], s.assets[i+1:]...)
			return true
		}
	}
	return false
}

// List returns a copy of the current assets, newest first
func (s *Store) List() []models.Asset {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Asset, len(s.assets))
	copy(out, s.assets)
	return out
}

// Len returns the number of stored assets
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.assets)
}
