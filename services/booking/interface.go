package booking

import (
	"context"
	"time"

	"stayhub/models"

	bookingRepo "stayhub/database/repository/booking"
	listingRepo "stayhub/database/repository/listing"
)

// CreateBookingRequest carries the guest-supplied fields of a new booking.
type CreateBookingRequest struct {
	ListingID       string              `json:"listingId" binding:"required"`
	CheckIn         time.Time           `json:"checkIn" binding:"required"`
	CheckOut        time.Time           `json:"checkOut" binding:"required"`
	Guests          models.GuestCount   `json:"guests"`
	PaymentMethod   string              `json:"paymentMethod" binding:"required"`
	SpecialRequests string              `json:"specialRequests"`
	GuestContact    models.GuestContact `json:"guestContact"`
}

// AvailabilityResult reports both independent unavailability sources for a
// candidate range.
type AvailabilityResult struct {
	Available     bool `json:"available"`
	HasConflict   bool `json:"hasConflict"`
	BlockedByHost bool `json:"blockedByHost"`
}

// ListResult is a page of bookings with its total.
type ListResult struct {
	Bookings []models.Booking `json:"bookings"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
}

// ReminderScheduler schedules a check-in reminder for a confirmed booking.
// Failures to enqueue are logged, never surfaced to the caller.
type ReminderScheduler interface {
	ScheduleCheckInReminder(b *models.Booking) error
}

// BookingService exposes the booking operations.
type BookingService interface {
	CreateBooking(ctx context.Context, guest Actor, req CreateBookingRequest) (*models.Booking, error)
	ChangeStatus(bookingID string, actor Actor, target, reason string) (*models.Booking, error)
	GetBooking(bookingID string, actor Actor) (*models.Booking, error)
	CheckAvailability(listingID string, checkIn, checkOut time.Time) (*AvailabilityResult, error)

	ListForGuest(guestID string, filter bookingRepo.ListFilter, page, limit int) (*ListResult, error)
	ListForHost(hostID string, filter bookingRepo.ListFilter, page, limit int) (*ListResult, error)
	ListAll(filter bookingRepo.ListFilter, page, limit int) (*ListResult, error)
	Stats(actor Actor) (*models.BookingStats, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	BookingRepo bookingRepo.BookingRepository
	ListingRepo listingRepo.ListingRepository
	Fees        FeeSchedule
	Reminders   ReminderScheduler
}
