package store

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float64Ptr(v float64) *float64 { return &v }

func seedListings(t *testing.T, s *Store, inputs ...NewListing) []Listing {
	t.Helper()
	created := make([]Listing, 0, len(inputs))
	for _, in := range inputs {
		created = append(created, s.CreateListing(in))
	}
	return created
}

func TestCreateListingAssignsDistinctIDs(t *testing.T) {
	s := New()

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		listing := s.CreateListing(NewListing{Title: "Loft", Price: float64(i)})
		require.NotEmpty(t, listing.ID)
		_, dup := seen[listing.ID]
		require.False(t, dup, "duplicate id %q", listing.ID)
		seen[listing.ID] = struct{}{}
	}
	assert.Equal(t, 100, s.Count())
}

func TestCreateListingKeepsInputAsGiven(t *testing.T) {
	s := New()

	listing := s.CreateListing(NewListing{Title: "", Description: "", Price: -12.5, Location: "", City: ""})

	assert.Equal(t, -12.5, listing.Price)
	assert.Empty(t, listing.Title)
	got, err := s.ListingByID(listing.ID)
	require.NoError(t, err)
	assert.Equal(t, listing, got)
}

func TestListListingsPreservesCreationOrder(t *testing.T) {
	s := New()
	created := seedListings(t, s,
		NewListing{Title: "a", City: "Lyon", Price: 30},
		NewListing{Title: "b", City: "Nice", Price: 10},
		NewListing{Title: "c", City: "Lyon", Price: 20},
	)

	assert.Equal(t, created, s.ListListings(ListingFilter{}))
}

func TestListListingsEmptyStore(t *testing.T) {
	s := New()

	got := s.ListListings(ListingFilter{City: "Paris"})
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListingByID(t *testing.T) {
	s := New()
	created := seedListings(t, s, NewListing{Title: "Studio", City: "Paris", Price: 900})

	got, err := s.ListingByID(created[0].ID)
	require.NoError(t, err)
	assert.Equal(t, created[0], got)

	_, err = s.ListingByID("does-not-exist")
	assert.True(t, errors.Is(err, ErrListingNotFound))

	_, err = s.ListingByID("")
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestListingByIDIsCaseSensitive(t *testing.T) {
	s := New()
	s.newID = func() string { return "abc-DEF" }
	s.CreateListing(NewListing{Title: "Flat"})

	_, err := s.ListingByID("ABC-def")
	assert.ErrorIs(t, err, ErrListingNotFound)

	_, err = s.ListingByID("abc-DEF")
	assert.NoError(t, err)
}

func TestListListingsFilters(t *testing.T) {
	s := New()
	created := seedListings(t, s,
		NewListing{Title: "one", City: "A", Price: 10},
		NewListing{Title: "two", City: "A", Price: 20},
		NewListing{Title: "three", City: "B", Price: 10},
	)

	tests := []struct {
		name   string
		filter ListingFilter
		want   []Listing
	}{
		{
			name:   "no filters",
			filter: ListingFilter{},
			want:   created,
		},
		{
			name:   "city lower case",
			filter: ListingFilter{City: "a"},
			want:   []Listing{created[0], created[1]},
		},
		{
			name:   "min price inclusive",
			filter: ListingFilter{MinPrice: float64Ptr(20)},
			want:   []Listing{created[1]},
		},
		{
			name:   "max price inclusive",
			filter: ListingFilter{MaxPrice: float64Ptr(10)},
			want:   []Listing{created[0], created[2]},
		},
		{
			name:   "city and min price",
			filter: ListingFilter{City: "A", MinPrice: float64Ptr(15)},
			want:   []Listing{created[1]},
		},
		{
			name:   "exact price window",
			filter: ListingFilter{MinPrice: float64Ptr(10), MaxPrice: float64Ptr(10)},
			want:   []Listing{created[0], created[2]},
		},
		{
			name:   "inverted window",
			filter: ListingFilter{MinPrice: float64Ptr(20), MaxPrice: float64Ptr(10)},
			want:   []Listing{},
		},
		{
			name:   "unknown city",
			filter: ListingFilter{City: "C"},
			want:   []Listing{},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, s.ListListings(tc.filter))
		})
	}
}

func TestListListingsCityCaseInsensitive(t *testing.T) {
	s := New()
	created := seedListings(t, s, NewListing{City: "Paris", Price: 100})

	for _, city := range []string{"paris", "PARIS", "Paris", "pArIs"} {
		assert.Equal(t, created, s.ListListings(ListingFilter{City: city}), city)
	}
	assert.Empty(t, s.ListListings(ListingFilter{City: "pari"}))
}

func TestListListingsScenario(t *testing.T) {
	s := New()
	created := seedListings(t, s,
		NewListing{City: "X", Price: 5},
		NewListing{City: "Y", Price: 15},
		NewListing{City: "X", Price: 25},
	)

	got := s.ListListings(ListingFilter{City: "x"})
	require.Len(t, got, 2)
	assert.Equal(t, created[0], got[0])
	assert.Equal(t, created[2], got[1])
	assert.Equal(t, 5.0, got[0].Price)
	assert.Equal(t, 25.0, got[1].Price)
}

func TestListListingsReturnsCopies(t *testing.T) {
	s := New()
	created := seedListings(t, s, NewListing{Title: "orig", City: "Oslo"})

	got := s.ListListings(ListingFilter{})
	got[0].Title = "mutated"

	fresh, err := s.ListingByID(created[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "orig", fresh.Title)
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := New()

	const writers = 8
	const perWriter = 50

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				created := s.CreateListing(NewListing{City: "Rome", Price: float64(i)})
				_, _ = s.ListingByID(created.ID)
				_ = s.ListListings(ListingFilter{City: "rome"})
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, writers*perWriter, s.Count())
	assert.Len(t, s.ListListings(ListingFilter{}), writers*perWriter)
}
