package listingRepo

import (
	"time"

	"stayhub/models"
)

// SearchFilter narrows a public listing search. Zero values mean "no filter".
type SearchFilter struct {
	HostID       string
	Location     string
	MinPrice     float64
	MaxPrice     float64
	PropertyType string
	RoomType     string
	MinGuests    int
	Amenities    []string
	CheckIn      *time.Time
	CheckOut     *time.Time
	SortBy       string
	SortOrder    string
}

// ListingRepository defines persistence operations for listings.
type ListingRepository interface {
	Create(listing *models.Listing) error
	GetByID(id string) (*models.Listing, error)
	Update(listing *models.Listing) error
	Delete(id string) error
	Search(filter SearchFilter, page, limit int) ([]models.Listing, int64, error)
	ListByHost(hostID string, page, limit int) ([]models.Listing, int64, error)
	CountByHost(hostID string) (int64, error)
}
