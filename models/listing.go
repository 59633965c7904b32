package models

import (
	"fmt"
	"regexp"
	"time"
)

// Listing statuses. Only active listings are bookable.
const (
	ListingStatusActive    = "active"
	ListingStatusInactive  = "inactive"
	ListingStatusPending   = "pending"
	ListingStatusSuspended = "suspended"
)

// Blocked-interval reasons. Informational only; the availability predicate
// treats every reason the same.
const (
	BlockReasonBooked      = "booked"
	BlockReasonMaintenance = "maintenance"
	BlockReasonPersonalUse = "personal_use"
	BlockReasonOther       = "other"
)

// SupportedCurrencies is the closed set of accepted currency codes.
var SupportedCurrencies = []string{"USD", "EUR", "GBP", "INR", "CAD", "AUD"}

var timeOfDayRe = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// Location describes where a listing is.
type Location struct {
	Address string `bson:"address" json:"address"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	Country string `bson:"country" json:"country"`
	ZipCode string `bson:"zipCode,omitempty" json:"zipCode,omitempty"`
}

// Capacity bounds how many people a listing accommodates.
type Capacity struct {
	Guests    int     `bson:"guests" json:"guests"`
	Bedrooms  int     `bson:"bedrooms" json:"bedrooms"`
	Beds      int     `bson:"beds" json:"beds"`
	Bathrooms float64 `bson:"bathrooms" json:"bathrooms"`
}

// BlockedDate is a host-declared interval during which the listing is not
// bookable, independent of any actual bookings.
type BlockedDate struct {
	StartDate time.Time `bson:"startDate" json:"startDate"`
	EndDate   time.Time `bson:"endDate" json:"endDate"`
	Reason    string    `bson:"reason" json:"reason"`
}

// Availability holds check-in/out times, stay bounds and blocked intervals.
type Availability struct {
	CheckIn      string        `bson:"checkIn" json:"checkIn"`   // HH:MM
	CheckOut     string        `bson:"checkOut" json:"checkOut"` // HH:MM
	MinimumStay  int           `bson:"minimumStay" json:"minimumStay"`
	MaximumStay  int           `bson:"maximumStay" json:"maximumStay"`
	BlockedDates []BlockedDate `bson:"blockedDates" json:"blockedDates"`
}

// ListingImage is URL metadata only; storage itself is out of scope.
type ListingImage struct {
	URL       string `bson:"url" json:"url"`
	Caption   string `bson:"caption,omitempty" json:"caption,omitempty"`
	IsPrimary bool   `bson:"isPrimary" json:"isPrimary"`
}

// Listing is a bookable property published by a host.
type Listing struct {
	ID           string         `bson:"id" json:"id"`
	Title        string         `bson:"title" json:"title"`
	Description  string         `bson:"description" json:"description"`
	PropertyType string         `bson:"propertyType" json:"propertyType"`
	RoomType     string         `bson:"roomType" json:"roomType"`
	Price        float64        `bson:"price" json:"price"` // nightly rate
	Currency     string         `bson:"currency" json:"currency"`
	Location     Location       `bson:"location" json:"location"`
	Capacity     Capacity       `bson:"capacity" json:"capacity"`
	Amenities    []string       `bson:"amenities" json:"amenities"`
	Images       []ListingImage `bson:"images" json:"images"`
	HostID       string         `bson:"hostId" json:"hostId"`
	Availability Availability   `bson:"availability" json:"availability"`
	Status       string         `bson:"status" json:"status"`
	CreatedAt    time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// Validate enforces the write-path invariants on a listing document.
func (l *Listing) Validate() error {
	if l.Title == "" || l.Description == "" {
		return fmt.Errorf("title and description are required")
	}
	if l.Price <= 0 {
		return fmt.Errorf("price must be positive")
	}
	if !validCurrency(l.Currency) {
		return fmt.Errorf("unsupported currency %q", l.Currency)
	}
	if l.Location.Address == "" || l.Location.City == "" || l.Location.State == "" || l.Location.Country == "" {
		return fmt.Errorf("complete location details are required (address, city, state, country)")
	}
	if l.Capacity.Guests < 1 || l.Capacity.Guests > 50 {
		return fmt.Errorf("guest capacity must be between 1 and 50")
	}
	if l.Capacity.Bedrooms < 0 || l.Capacity.Bedrooms > 20 {
		return fmt.Errorf("bedrooms must be between 0 and 20")
	}
	if l.Capacity.Beds < 1 || l.Capacity.Beds > 50 {
		return fmt.Errorf("beds must be between 1 and 50")
	}
	if l.Capacity.Bathrooms < 0.5 || l.Capacity.Bathrooms > 20 {
		return fmt.Errorf("bathrooms must be between 0.5 and 20")
	}
	if !timeOfDayRe.MatchString(l.Availability.CheckIn) || !timeOfDayRe.MatchString(l.Availability.CheckOut) {
		return fmt.Errorf("check-in and check-out times must be in HH:MM format")
	}
	if l.Availability.MinimumStay < 1 {
		return fmt.Errorf("minimum stay must be at least 1 night")
	}
	if l.Availability.MaximumStay < 1 {
		return fmt.Errorf("maximum stay must be at least 1 night")
	}
	for _, block := range l.Availability.BlockedDates {
		if !block.StartDate.Before(block.EndDate) {
			return fmt.Errorf("blocked date start must be before end date")
		}
	}
	return nil
}

// IsAvailable reports whether [start, end] avoids every blocked interval.
// Boundaries are inclusive: a block that touches either endpoint, or that
// sits entirely inside the candidate range, makes the listing unavailable.
func (l *Listing) IsAvailable(start, end time.Time) bool {
	for _, block := range l.Availability.BlockedDates {
		blockContainsStart := !block.StartDate.After(start) && !block.EndDate.Before(start)
		blockContainsEnd := !block.StartDate.After(end) && !block.EndDate.Before(end)
		candidateContainsBlock := !block.StartDate.Before(start) && !block.EndDate.After(end)
		if blockContainsStart || blockContainsEnd || candidateContainsBlock {
			return false
		}
	}
	return true
}

func validCurrency(code string) bool {
	for _, c := range SupportedCurrencies {
		if c == code {
			return true
		}
	}
	return false
}
