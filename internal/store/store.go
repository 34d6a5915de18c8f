package store

import (
	"errors"
	"sync"
)

var (
	// ErrListingNotFound indicates no listing carries the requested id.
	ErrListingNotFound = errors.New("listing not found")
)

// Store keeps listings in process memory. The zero value is not usable;
// construct one with New and share the pointer.
type Store struct {
	mu       sync.RWMutex
	listings []Listing
	newID    func() string
}

// New sets up an empty Store.
func New() *Store {
	return &Store{newID: newListingID}
}

// Count reports how many listings have been created.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.listings)
}
