package bookingRepo

import (
	"context"
	"time"

	"stayhub/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ListFilter narrows booking listings. Zero values mean "no filter".
type ListFilter struct {
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
	SortBy    string
	SortOrder string
}

// BookingRepository defines persistence operations for bookings.
type BookingRepository interface {
	GetByID(id string) (*models.Booking, error)

	// FindConsumingOverlaps returns consuming bookings for the listing whose
	// half-open [checkIn, checkOut) range strictly overlaps [start, end).
	FindConsumingOverlaps(listingID string, start, end time.Time) ([]models.Booking, error)

	// CreateIfNoConflict inserts the booking inside a transaction that
	// re-runs the overlap query first; it fails with ErrDateConflict if a
	// consuming booking slipped in between check and commit.
	CreateIfNoConflict(ctx context.Context, booking *models.Booking) error

	// UpdateStatusCAS applies the update document only if the booking still
	// holds fromStatus; it fails with ErrStaleStatus otherwise.
	UpdateStatusCAS(id, fromStatus string, set bson.M) error

	ListByGuest(guestID string, filter ListFilter, page, limit int) ([]models.Booking, int64, error)
	ListByHost(hostID string, filter ListFilter, page, limit int) ([]models.Booking, int64, error)
	ListAll(filter ListFilter, page, limit int) ([]models.Booking, int64, error)

	StatsByUser(userID, role string) ([]models.StatusCount, int64, error)
	RevenueByHost(hostID string) (float64, error)
	RecentByHost(hostID string, limit int) ([]models.Booking, error)
	UpcomingByGuest(guestID string, from time.Time, limit int) ([]models.Booking, error)
	CompletedByGuest(guestID string) ([]models.Booking, float64, error)
	CountByHost(hostID string) (int64, error)
	CountByGuest(guestID string) (int64, error)
}
