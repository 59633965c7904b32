package booking

import (
	"time"

	"stayhub/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Actor is the resolved identity making a request. Role is the account-level
// role; the booking-relative role comes from ResolveActorRole.
type Actor struct {
	ID   string
	Role string
}

// Booking-relative actor roles.
const (
	actorGuest = "guest"
	actorHost  = "host"
	actorAdmin = "admin"
	actorNone  = "none"
)

// validTransitions is the authoritative table of allowed status changes,
// keyed by current status then booking-relative role. checked_out can still
// advance to completed; completed and every cancelled state are terminal.
var validTransitions = map[string]map[string][]string{
	models.BookingStatusPending: {
		actorHost:  {models.BookingStatusConfirmed, models.BookingStatusCancelledByHost},
		actorAdmin: {models.BookingStatusConfirmed, models.BookingStatusCancelledByAdmin},
	},
	models.BookingStatusConfirmed: {
		actorGuest: {models.BookingStatusCancelledByGuest},
		actorHost:  {models.BookingStatusPaid, models.BookingStatusCancelledByHost},
		actorAdmin: {models.BookingStatusPaid, models.BookingStatusCancelledByAdmin},
	},
	models.BookingStatusPaid: {
		actorGuest: {models.BookingStatusCancelledByGuest},
		actorHost:  {models.BookingStatusCheckedIn, models.BookingStatusCancelledByHost},
		actorAdmin: {models.BookingStatusCheckedIn, models.BookingStatusCancelledByAdmin},
	},
	models.BookingStatusCheckedIn: {
		actorHost:  {models.BookingStatusCheckedOut},
		actorAdmin: {models.BookingStatusCheckedOut},
	},
	models.BookingStatusCheckedOut: {
		actorHost:  {models.BookingStatusCompleted},
		actorAdmin: {models.BookingStatusCompleted},
	},
}

// ResolveActorRole maps an actor onto the booking. Identity match wins over
// the admin permission: the booking's own guest or host always acts in that
// capacity even when they also hold the admin role.
func ResolveActorRole(b *models.Booking, actor Actor) string {
	switch {
	case actor.ID == b.GuestID:
		return actorGuest
	case actor.ID == b.HostID:
		return actorHost
	case actor.Role == models.RoleAdmin:
		return actorAdmin
	default:
		return actorNone
	}
}

// CanTransition reports whether role may move a booking from current to
// target.
func CanTransition(current, role, target string) bool {
	for _, allowed := range validTransitions[current][role] {
		if allowed == target {
			return true
		}
	}
	return false
}

// ApplyTransition is the only writer of status, timeline, cancellation and
// refund fields. It validates the actor against the transition table,
// mutates b in memory and returns the matching update document for the
// compare-and-set write. No persistence happens here.
func ApplyTransition(b *models.Booking, actor Actor, target, reason string, now time.Time) (bson.M, error) {
	role := ResolveActorRole(b, actor)
	if role == actorNone {
		return nil, &AuthorizationError{Message: "you are not authorized to modify this booking"}
	}
	if !CanTransition(b.Status, role, target) {
		return nil, &InvalidTransitionError{Current: b.Status, Requested: target}
	}

	set := bson.M{"status": target}
	b.Status = target

	switch target {
	case models.BookingStatusConfirmed:
		b.Timeline.ConfirmedAt = &now
		set["timeline.confirmedAt"] = now
	case models.BookingStatusPaid:
		b.Timeline.PaidAt = &now
		b.Payment.PaymentDate = &now
		set["timeline.paidAt"] = now
		set["payment.paymentDate"] = now
	case models.BookingStatusCheckedIn:
		b.Timeline.CheckedInAt = &now
		set["timeline.checkedInAt"] = now
	case models.BookingStatusCheckedOut:
		b.Timeline.CheckedOutAt = &now
		set["timeline.checkedOutAt"] = now
	case models.BookingStatusCompleted:
		b.Timeline.CompletedAt = &now
		set["timeline.completedAt"] = now
	case models.BookingStatusCancelledByGuest, models.BookingStatusCancelledByHost, models.BookingStatusCancelledByAdmin:
		b.Timeline.CancelledAt = &now
		b.Cancellation.CancelledBy = actor.ID
		b.Cancellation.Reason = reason
		set["timeline.cancelledAt"] = now
		set["cancellation.cancelledBy"] = actor.ID
		set["cancellation.reason"] = reason

		refund := RefundAmount(b.Pricing.Total, b.Cancellation.RefundPolicy, b.Dates.CheckIn, now)
		b.Payment.RefundAmount = refund
		set["payment.refundAmount"] = refund
		if refund > 0 {
			b.Payment.RefundDate = &now
			set["payment.refundDate"] = now
		}
	}

	return set, nil
}
