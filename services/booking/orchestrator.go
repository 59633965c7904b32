package booking

import (
	"context"
	"errors"
	"time"

	"stayhub/database/repository"
	"stayhub/models"
	"stayhub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxTotalGuests = 20

// defaultRefundPolicy is fixed onto every booking at creation. Guests do not
// choose a policy in the current flow.
const defaultRefundPolicy = models.RefundPolicyModerate

// CreateBooking validates the request, prices the stay and persists a pending
// booking. Preconditions run in order and the first failure wins: listing
// exists, listing active, no self-booking, party within capacity, no
// consuming-booking conflict, no host-blocked dates. The final conflict check
// is re-run inside the insert transaction, so a concurrent creation for
// overlapping dates cannot slip past this method.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, guest Actor, req CreateBookingRequest) (*models.Booking, error) {
	logger := utils.GetLogger()

	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	listing, err := s.ListingRepo.GetByID(req.ListingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Resource: "listing", ID: req.ListingID}
		}
		return nil, err
	}
	if listing.Status != models.ListingStatusActive {
		return nil, newValidationError("listing is not available for booking")
	}
	if guest.ID == listing.HostID {
		return nil, &AuthorizationError{Message: "you cannot book your own listing"}
	}
	if req.Guests.Total() > listing.Capacity.Guests {
		return nil, newValidationError("guest count %d exceeds listing capacity of %d", req.Guests.Total(), listing.Capacity.Guests)
	}

	nights := Nights(req.CheckIn, req.CheckOut)
	if nights < listing.Availability.MinimumStay {
		return nil, newValidationError("stay must be at least %d nights", listing.Availability.MinimumStay)
	}
	if nights > listing.Availability.MaximumStay {
		return nil, newValidationError("stay cannot exceed %d nights", listing.Availability.MaximumStay)
	}

	overlaps, err := s.BookingRepo.FindConsumingOverlaps(listing.ID, req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}
	if len(overlaps) > 0 {
		return nil, &ConflictError{Message: "the selected dates are already booked"}
	}
	if !listing.IsAvailable(req.CheckIn, req.CheckOut) {
		return nil, &ConflictError{Message: "the host has blocked the selected dates"}
	}

	now := time.Now()
	booking := &models.Booking{
		ID:        uuid.NewString(),
		ListingID: listing.ID,
		GuestID:   guest.ID,
		HostID:    listing.HostID,
		Dates: models.BookingDates{
			CheckIn:  req.CheckIn,
			CheckOut: req.CheckOut,
			Nights:   nights,
		},
		Guests:          req.Guests,
		Pricing:         s.Fees.Quote(listing.Price, nights, listing.Currency),
		Status:          models.BookingStatusPending,
		Payment:         models.Payment{Method: req.PaymentMethod},
		SpecialRequests: req.SpecialRequests,
		GuestContact:    req.GuestContact,
		Timeline:        models.Timeline{BookedAt: now},
		Cancellation:    models.Cancellation{RefundPolicy: defaultRefundPolicy},
	}

	if err := s.BookingRepo.CreateIfNoConflict(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrDateConflict) {
			return nil, &ConflictError{Message: "the selected dates are already booked"}
		}
		return nil, err
	}

	logger.Info("booking created",
		zap.String("bookingId", booking.ID),
		zap.String("listingId", listing.ID),
		zap.String("guestId", guest.ID),
		zap.Float64("total", booking.Pricing.Total),
	)
	return booking, nil
}

// ChangeStatus moves a booking through the state machine on behalf of an
// actor. The write is a compare-and-set on the prior status; if another actor
// wins the race first, the booking is re-read and the caller gets an
// invalid-transition error naming the now-current status.
func (s *DefaultBookingService) ChangeStatus(bookingID string, actor Actor, target, reason string) (*models.Booking, error) {
	logger := utils.GetLogger()

	if !validBookingStatus(target) {
		return nil, newValidationError("unknown booking status %q", target)
	}

	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Resource: "booking", ID: bookingID}
		}
		return nil, err
	}

	prior := b.Status
	set, err := ApplyTransition(b, actor, target, reason, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.BookingRepo.UpdateStatusCAS(bookingID, prior, set); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			fresh, readErr := s.BookingRepo.GetByID(bookingID)
			if readErr != nil {
				return nil, readErr
			}
			return nil, &InvalidTransitionError{Current: fresh.Status, Requested: target}
		}
		return nil, err
	}

	logger.Info("booking status changed",
		zap.String("bookingId", bookingID),
		zap.String("from", prior),
		zap.String("to", target),
		zap.String("actorId", actor.ID),
	)

	if target == models.BookingStatusConfirmed && s.Reminders != nil {
		if err := s.Reminders.ScheduleCheckInReminder(b); err != nil {
			logger.Warn("failed to schedule check-in reminder",
				zap.String("bookingId", bookingID), zap.Error(err))
		}
	}
	return b, nil
}

// CheckAvailability reports both unavailability sources for a candidate
// range. The booking-conflict check and the host-block check stay
// independent; creation requires both to pass.
func (s *DefaultBookingService) CheckAvailability(listingID string, checkIn, checkOut time.Time) (*AvailabilityResult, error) {
	if !checkOut.After(checkIn) {
		return nil, newValidationError("check-out must be after check-in")
	}

	listing, err := s.ListingRepo.GetByID(listingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Resource: "listing", ID: listingID}
		}
		return nil, err
	}

	overlaps, err := s.BookingRepo.FindConsumingOverlaps(listingID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	result := &AvailabilityResult{
		HasConflict:   len(overlaps) > 0,
		BlockedByHost: !listing.IsAvailable(checkIn, checkOut),
	}
	result.Available = !result.HasConflict && !result.BlockedByHost
	return result, nil
}

func validateCreateRequest(req CreateBookingRequest) error {
	if req.ListingID == "" {
		return newValidationError("listingId is required")
	}
	if !req.CheckOut.After(req.CheckIn) {
		return newValidationError("check-out must be after check-in")
	}
	if Nights(req.CheckIn, req.CheckOut) <= 0 {
		return newValidationError("stay must cover at least one night")
	}
	if req.Guests.Adults < 1 {
		return newValidationError("at least one adult is required")
	}
	if req.Guests.Children < 0 || req.Guests.Infants < 0 || req.Guests.Pets < 0 {
		return newValidationError("guest counts cannot be negative")
	}
	if req.Guests.Total() > maxTotalGuests {
		return newValidationError("total guest count cannot exceed %d", maxTotalGuests)
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		return newValidationError("unsupported payment method %q", req.PaymentMethod)
	}
	return nil
}

func validBookingStatus(status string) bool {
	switch status {
	case models.BookingStatusPending, models.BookingStatusConfirmed, models.BookingStatusPaid,
		models.BookingStatusCheckedIn, models.BookingStatusCheckedOut, models.BookingStatusCompleted,
		models.BookingStatusCancelledByGuest, models.BookingStatusCancelledByHost, models.BookingStatusCancelledByAdmin:
		return true
	}
	return false
}
