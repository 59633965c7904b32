package booking

import (
	"testing"
	"time"

	"stayhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingBooking() *models.Booking {
	checkIn := time.Date(2026, time.September, 10, 15, 0, 0, 0, time.UTC)
	return &models.Booking{
		ID:      "bkg-1",
		GuestID: "guest-1",
		HostID:  "host-1",
		Status:  models.BookingStatusPending,
		Dates: models.BookingDates{
			CheckIn:  checkIn,
			CheckOut: checkIn.AddDate(0, 0, 3),
			Nights:   3,
		},
		Pricing:      models.PricingSnapshot{Total: 416, Currency: "USD"},
		Timeline:     models.Timeline{BookedAt: time.Now()},
		Cancellation: models.Cancellation{RefundPolicy: models.RefundPolicyModerate},
	}
}

func TestResolveActorRole(t *testing.T) {
	b := pendingBooking()

	assert.Equal(t, actorGuest, ResolveActorRole(b, Actor{ID: "guest-1", Role: models.RoleUser}))
	assert.Equal(t, actorHost, ResolveActorRole(b, Actor{ID: "host-1", Role: models.RoleHost}))
	assert.Equal(t, actorAdmin, ResolveActorRole(b, Actor{ID: "someone-else", Role: models.RoleAdmin}))
	assert.Equal(t, actorNone, ResolveActorRole(b, Actor{ID: "stranger", Role: models.RoleUser}))

	// Identity beats the admin permission.
	assert.Equal(t, actorGuest, ResolveActorRole(b, Actor{ID: "guest-1", Role: models.RoleAdmin}))
}

func TestGuestCannotLeavePending(t *testing.T) {
	guest := Actor{ID: "guest-1", Role: models.RoleUser}
	targets := []string{
		models.BookingStatusConfirmed,
		models.BookingStatusPaid,
		models.BookingStatusCancelledByGuest,
		models.BookingStatusCheckedIn,
	}
	for _, target := range targets {
		b := pendingBooking()
		_, err := ApplyTransition(b, guest, target, "", time.Now())
		var invalid *InvalidTransitionError
		require.ErrorAs(t, err, &invalid, "guest moving pending to %s", target)
		assert.Equal(t, models.BookingStatusPending, invalid.Current)
		assert.Equal(t, models.BookingStatusPending, b.Status)
	}
}

func TestHostConfirmStampsTimeline(t *testing.T) {
	b := pendingBooking()
	now := time.Date(2026, time.August, 1, 10, 0, 0, 0, time.UTC)

	set, err := ApplyTransition(b, Actor{ID: "host-1", Role: models.RoleHost}, models.BookingStatusConfirmed, "", now)
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusConfirmed, b.Status)
	require.NotNil(t, b.Timeline.ConfirmedAt)
	assert.Equal(t, now, *b.Timeline.ConfirmedAt)
	assert.Equal(t, models.BookingStatusConfirmed, set["status"])
	assert.Equal(t, now, set["timeline.confirmedAt"])
}

func TestNoReturnToPending(t *testing.T) {
	actors := []Actor{
		{ID: "guest-1", Role: models.RoleUser},
		{ID: "host-1", Role: models.RoleHost},
		{ID: "admin-1", Role: models.RoleAdmin},
	}
	for _, actor := range actors {
		b := pendingBooking()
		b.Status = models.BookingStatusConfirmed
		_, err := ApplyTransition(b, actor, models.BookingStatusPending, "", time.Now())
		var invalid *InvalidTransitionError
		assert.ErrorAs(t, err, &invalid, "actor %s", actor.ID)
	}
}

func TestTerminalStates(t *testing.T) {
	terminals := []string{
		models.BookingStatusCompleted,
		models.BookingStatusCancelledByGuest,
		models.BookingStatusCancelledByHost,
		models.BookingStatusCancelledByAdmin,
	}
	admin := Actor{ID: "admin-1", Role: models.RoleAdmin}
	for _, current := range terminals {
		for _, target := range []string{models.BookingStatusConfirmed, models.BookingStatusCompleted, models.BookingStatusCancelledByAdmin} {
			if current == target {
				continue
			}
			b := pendingBooking()
			b.Status = current
			_, err := ApplyTransition(b, admin, target, "", time.Now())
			assert.Error(t, err, "from %s to %s", current, target)
		}
	}
}

func TestCancellationNotReachableAfterCheckIn(t *testing.T) {
	b := pendingBooking()
	b.Status = models.BookingStatusCheckedIn

	_, err := ApplyTransition(b, Actor{ID: "guest-1", Role: models.RoleUser}, models.BookingStatusCancelledByGuest, "", time.Now())
	var invalid *InvalidTransitionError
	assert.ErrorAs(t, err, &invalid)
}

func TestStrangerGetsAuthorizationError(t *testing.T) {
	b := pendingBooking()
	_, err := ApplyTransition(b, Actor{ID: "stranger", Role: models.RoleUser}, models.BookingStatusConfirmed, "", time.Now())
	var forbidden *AuthorizationError
	require.ErrorAs(t, err, &forbidden)
	assert.Equal(t, models.BookingStatusPending, b.Status)
}

func TestGuestCancellationRecordsRefund(t *testing.T) {
	b := pendingBooking()
	b.Status = models.BookingStatusConfirmed
	// 6 days before check-in: moderate pays in full.
	now := b.Dates.CheckIn.AddDate(0, 0, -6)

	set, err := ApplyTransition(b, Actor{ID: "guest-1", Role: models.RoleUser}, models.BookingStatusCancelledByGuest, "change of plans", now)
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusCancelledByGuest, b.Status)
	assert.Equal(t, "guest-1", b.Cancellation.CancelledBy)
	assert.Equal(t, "change of plans", b.Cancellation.Reason)
	require.NotNil(t, b.Timeline.CancelledAt)
	assert.Equal(t, 416.0, b.Payment.RefundAmount)
	require.NotNil(t, b.Payment.RefundDate)
	assert.Equal(t, 416.0, set["payment.refundAmount"])
}

func TestZeroRefundLeavesRefundDateUnset(t *testing.T) {
	b := pendingBooking()
	b.Status = models.BookingStatusPaid
	// Cancelling on the day of check-in pays nothing under moderate.
	now := b.Dates.CheckIn

	set, err := ApplyTransition(b, Actor{ID: "guest-1", Role: models.RoleUser}, models.BookingStatusCancelledByGuest, "", now)
	require.NoError(t, err)

	assert.Equal(t, 0.0, b.Payment.RefundAmount)
	assert.Nil(t, b.Payment.RefundDate)
	_, hasDate := set["payment.refundDate"]
	assert.False(t, hasDate)
}

func TestFullLifecycleHappyPath(t *testing.T) {
	b := pendingBooking()
	host := Actor{ID: "host-1", Role: models.RoleHost}
	steps := []string{
		models.BookingStatusConfirmed,
		models.BookingStatusPaid,
		models.BookingStatusCheckedIn,
		models.BookingStatusCheckedOut,
		models.BookingStatusCompleted,
	}
	for _, target := range steps {
		_, err := ApplyTransition(b, host, target, "", time.Now())
		require.NoError(t, err, "to %s", target)
		assert.Equal(t, target, b.Status)
	}
	require.NotNil(t, b.Timeline.ConfirmedAt)
	require.NotNil(t, b.Timeline.PaidAt)
	require.NotNil(t, b.Timeline.CheckedInAt)
	require.NotNil(t, b.Timeline.CheckedOutAt)
	require.NotNil(t, b.Timeline.CompletedAt)
}
