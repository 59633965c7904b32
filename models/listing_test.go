package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(month time.Month, d int) time.Time {
	return time.Date(2026, month, d, 0, 0, 0, 0, time.UTC)
}

func validListing() *Listing {
	return &Listing{
		ID:          "lst-1",
		Title:       "Lakeside Cabin",
		Description: "A quiet cabin by the lake.",
		Price:       100,
		Currency:    "USD",
		Location: Location{
			Address: "1 Shore Rd",
			City:    "Portland",
			State:   "OR",
			Country: "USA",
		},
		Capacity: Capacity{Guests: 4, Bedrooms: 2, Beds: 2, Bathrooms: 1},
		HostID:   "host-1",
		Availability: Availability{
			CheckIn:     "15:00",
			CheckOut:    "11:00",
			MinimumStay: 1,
			MaximumStay: 30,
		},
		Status: ListingStatusActive,
	}
}

func TestIsAvailableOverlapCases(t *testing.T) {
	l := validListing()
	l.Availability.BlockedDates = []BlockedDate{
		{StartDate: day(time.January, 10), EndDate: day(time.January, 15), Reason: BlockReasonMaintenance},
	}

	// Block contains the candidate start.
	assert.False(t, l.IsAvailable(day(time.January, 12), day(time.January, 20)))
	// Block contains the candidate end.
	assert.False(t, l.IsAvailable(day(time.January, 5), day(time.January, 12)))
	// Candidate contains the block.
	assert.False(t, l.IsAvailable(day(time.January, 5), day(time.January, 20)))
	// Candidate entirely inside the block.
	assert.False(t, l.IsAvailable(day(time.January, 11), day(time.January, 13)))

	// Clear of the block entirely.
	assert.True(t, l.IsAvailable(day(time.January, 16), day(time.January, 20)))
	assert.True(t, l.IsAvailable(day(time.January, 1), day(time.January, 9)))
}

func TestIsAvailableInclusiveBoundaries(t *testing.T) {
	l := validListing()
	l.Availability.BlockedDates = []BlockedDate{
		{StartDate: day(time.March, 10), EndDate: day(time.March, 15)},
	}

	// Touching either boundary still counts as overlap.
	assert.False(t, l.IsAvailable(day(time.March, 15), day(time.March, 20)))
	assert.False(t, l.IsAvailable(day(time.March, 5), day(time.March, 10)))
}

func TestValidateBlockedDateOrdering(t *testing.T) {
	l := validListing()
	l.Availability.BlockedDates = []BlockedDate{
		{StartDate: day(time.May, 10), EndDate: day(time.May, 10)},
	}
	err := l.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocked date start must be before end")

	l.Availability.BlockedDates[0].EndDate = day(time.May, 12)
	require.NoError(t, l.Validate())
}

func TestValidateBounds(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Listing)
	}{
		{"missing title", func(l *Listing) { l.Title = "" }},
		{"zero price", func(l *Listing) { l.Price = 0 }},
		{"bad currency", func(l *Listing) { l.Currency = "XYZ" }},
		{"missing city", func(l *Listing) { l.Location.City = "" }},
		{"too many guests", func(l *Listing) { l.Capacity.Guests = 51 }},
		{"no beds", func(l *Listing) { l.Capacity.Beds = 0 }},
		{"bad check-in time", func(l *Listing) { l.Availability.CheckIn = "25:00" }},
		{"zero minimum stay", func(l *Listing) { l.Availability.MinimumStay = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := validListing()
			tc.mutate(l)
			assert.Error(t, l.Validate())
		})
	}
}

func TestGuestCountTotalExcludesPets(t *testing.T) {
	g := GuestCount{Adults: 2, Children: 1, Infants: 1, Pets: 3}
	assert.Equal(t, 4, g.Total())
}
