package listing

import (
	"stayhub/models"

	listingRepo "stayhub/database/repository/listing"
)

// SearchResult is a page of listings with its total.
type SearchResult struct {
	Listings []models.Listing `json:"listings"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
}

// ListingService exposes listing management and discovery.
type ListingService interface {
	CreateListing(hostID string, l *models.Listing) (*models.Listing, error)
	GetListing(id string) (*models.Listing, error)
	UpdateListing(actorID, actorRole, id string, updated *models.Listing) (*models.Listing, error)
	DeleteListing(actorID, actorRole, id string) error
	Search(filter listingRepo.SearchFilter, page, limit int) (*SearchResult, error)
	ListByHost(hostID string, page, limit int) (*SearchResult, error)
}

// DefaultListingService implements ListingService.
type DefaultListingService struct {
	Repo listingRepo.ListingRepository
}
