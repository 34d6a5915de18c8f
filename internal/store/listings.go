package store

import (
	"strings"

	"github.com/google/uuid"
)

// Listing is a single property record.
type Listing struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Location    string  `json:"location"`
	City        string  `json:"city"`
}

// NewListing carries the caller supplied fields of a listing.
type NewListing struct {
	Title       string
	Description string
	Price       float64
	Location    string
	City        string
}

// ListingFilter narrows ListListings. An empty City or a nil bound imposes
// no constraint.
type ListingFilter struct {
	City     string
	MinPrice *float64
	MaxPrice *float64
}

// CreateListing stores a new listing under a freshly generated id. Empty
// strings and negative prices are stored as given.
func (s *Store) CreateListing(input NewListing) Listing {
	listing := Listing{
		ID:          s.newID(),
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Location:    input.Location,
		City:        input.City,
	}

	s.mu.Lock()
	s.listings = append(s.listings, listing)
	s.mu.Unlock()

	return listing
}

// ListingByID returns the listing with exactly the given id.
func (s *Store) ListingByID(id string) (Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, listing := range s.listings {
		if listing.ID == id {
			return listing, nil
		}
	}
	return Listing{}, ErrListingNotFound
}

// ListListings returns the listings matching every filter in creation order.
func (s *Store) ListListings(filter ListingFilter) []Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Listing, 0, len(s.listings))
	for _, listing := range s.listings {
		if filter.matches(listing) {
			result = append(result, listing)
		}
	}
	return result
}

func (f ListingFilter) matches(l Listing) bool {
	if f.City != "" && !strings.EqualFold(l.City, f.City) {
		return false
	}
	if f.MinPrice != nil && l.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && l.Price > *f.MaxPrice {
		return false
	}
	return true
}

func newListingID() string {
	return uuid.NewString()
}
