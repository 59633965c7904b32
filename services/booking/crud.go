package booking

import (
	"errors"

	"stayhub/database/repository"
	"stayhub/models"

	bookingRepo "stayhub/database/repository/booking"
)

// GetBooking fetches a booking visible to the actor. Only the booking's
// guest, its host, or an admin may view it.
func (s *DefaultBookingService) GetBooking(bookingID string, actor Actor) (*models.Booking, error) {
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Resource: "booking", ID: bookingID}
		}
		return nil, err
	}
	if ResolveActorRole(b, actor) == actorNone {
		return nil, &AuthorizationError{Message: "you are not authorized to view this booking"}
	}
	return b, nil
}

// ListForGuest returns a page of the guest's own bookings.
func (s *DefaultBookingService) ListForGuest(guestID string, filter bookingRepo.ListFilter, page, limit int) (*ListResult, error) {
	bookings, total, err := s.BookingRepo.ListByGuest(guestID, filter, page, limit)
	if err != nil {
		return nil, err
	}
	return &ListResult{Bookings: bookings, Total: total, Page: page, Limit: limit}, nil
}

// ListForHost returns a page of bookings received on the host's listings.
func (s *DefaultBookingService) ListForHost(hostID string, filter bookingRepo.ListFilter, page, limit int) (*ListResult, error) {
	bookings, total, err := s.BookingRepo.ListByHost(hostID, filter, page, limit)
	if err != nil {
		return nil, err
	}
	return &ListResult{Bookings: bookings, Total: total, Page: page, Limit: limit}, nil
}

// ListAll returns a page of every booking. Admin-gated at the route level.
func (s *DefaultBookingService) ListAll(filter bookingRepo.ListFilter, page, limit int) (*ListResult, error) {
	bookings, total, err := s.BookingRepo.ListAll(filter, page, limit)
	if err != nil {
		return nil, err
	}
	return &ListResult{Bookings: bookings, Total: total, Page: page, Limit: limit}, nil
}

// Stats summarizes the actor's bookings by status. Hosts see bookings they
// received, everyone else sees bookings they made.
func (s *DefaultBookingService) Stats(actor Actor) (*models.BookingStats, error) {
	role := models.RoleUser
	if actor.Role == models.RoleHost {
		role = models.RoleHost
	}
	breakdown, total, err := s.BookingRepo.StatsByUser(actor.ID, role)
	if err != nil {
		return nil, err
	}
	return &models.BookingStats{
		TotalBookings:   total,
		StatusBreakdown: breakdown,
		Role:            role,
	}, nil
}
