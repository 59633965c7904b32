package listing

import (
	"errors"
	"time"

	"stayhub/database/repository"
	"stayhub/models"
	"stayhub/utils"

	listingRepo "stayhub/database/repository/listing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateListing validates and persists a new listing owned by hostID. New
// listings start active unless the caller supplied an explicit status.
func (s *DefaultListingService) CreateListing(hostID string, l *models.Listing) (*models.Listing, error) {
	l.ID = uuid.NewString()
	l.HostID = hostID
	if l.Currency == "" {
		l.Currency = "USD"
	}
	if l.Status == "" {
		l.Status = models.ListingStatusActive
	}
	if l.Availability.MinimumStay == 0 {
		l.Availability.MinimumStay = 1
	}
	if l.Availability.MaximumStay == 0 {
		l.Availability.MaximumStay = 30
	}

	if err := l.Validate(); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	if err := s.Repo.Create(l); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("listing created",
		zap.String("listingId", l.ID), zap.String("hostId", hostID))
	return l, nil
}

// GetListing fetches a single listing by ID.
func (s *DefaultListingService) GetListing(id string) (*models.Listing, error) {
	l, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, err
	}
	return l, nil
}

// UpdateListing replaces the mutable fields of a listing. Only the owning
// host or an admin may mutate it; ownership itself never changes here.
func (s *DefaultListingService) UpdateListing(actorID, actorRole, id string, updated *models.Listing) (*models.Listing, error) {
	existing, err := s.GetListing(id)
	if err != nil {
		return nil, err
	}
	if actorID != existing.HostID && actorRole != models.RoleAdmin {
		return nil, &AuthorizationError{Message: "only the listing owner can modify this listing"}
	}

	updated.ID = existing.ID
	updated.HostID = existing.HostID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()
	if updated.Currency == "" {
		updated.Currency = existing.Currency
	}
	if updated.Status == "" {
		updated.Status = existing.Status
	}

	if err := updated.Validate(); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	if err := s.Repo.Update(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteListing removes a listing. Owner or admin only.
func (s *DefaultListingService) DeleteListing(actorID, actorRole, id string) error {
	existing, err := s.GetListing(id)
	if err != nil {
		return err
	}
	if actorID != existing.HostID && actorRole != models.RoleAdmin {
		return &AuthorizationError{Message: "only the listing owner can delete this listing"}
	}
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	utils.GetLogger().Info("listing deleted",
		zap.String("listingId", id), zap.String("actorId", actorID))
	return nil
}

// Search returns a page of listings matching the public search filter.
func (s *DefaultListingService) Search(filter listingRepo.SearchFilter, page, limit int) (*SearchResult, error) {
	listings, total, err := s.Repo.Search(filter, page, limit)
	if err != nil {
		return nil, err
	}
	return &SearchResult{Listings: listings, Total: total, Page: page, Limit: limit}, nil
}

// ListByHost returns a page of the host's own listings, any status.
func (s *DefaultListingService) ListByHost(hostID string, page, limit int) (*SearchResult, error) {
	listings, total, err := s.Repo.ListByHost(hostID, page, limit)
	if err != nil {
		return nil, err
	}
	return &SearchResult{Listings: listings, Total: total, Page: page, Limit: limit}, nil
}
