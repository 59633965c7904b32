package models

import "time"

// Booking statuses.
const (
	BookingStatusPending          = "pending"
	BookingStatusConfirmed        = "confirmed"
	BookingStatusPaid             = "paid"
	BookingStatusCheckedIn        = "checked_in"
	BookingStatusCheckedOut       = "checked_out"
	BookingStatusCompleted        = "completed"
	BookingStatusCancelledByGuest = "cancelled_by_guest"
	BookingStatusCancelledByHost  = "cancelled_by_host"
	BookingStatusCancelledByAdmin = "cancelled_by_admin"
)

// ConsumingStatuses are the statuses that occupy calendar inventory. Pending
// and cancelled bookings never block dates.
var ConsumingStatuses = []string{
	BookingStatusConfirmed,
	BookingStatusPaid,
	BookingStatusCheckedIn,
}

// Refund policies.
const (
	RefundPolicyFlexible    = "flexible"
	RefundPolicyModerate    = "moderate"
	RefundPolicyStrict      = "strict"
	RefundPolicySuperStrict = "super_strict"
	RefundPolicyNoRefund    = "no_refund"
)

// Payment methods. Payment is recorded, never processed.
var PaymentMethods = []string{"stripe", "paypal", "bank_transfer", "cash"}

// BookingDates holds the reserved range. Nights is derived at creation.
type BookingDates struct {
	CheckIn  time.Time `bson:"checkIn" json:"checkIn"`
	CheckOut time.Time `bson:"checkOut" json:"checkOut"`
	Nights   int       `bson:"nights" json:"nights"`
}

// GuestCount breaks down the party composition.
type GuestCount struct {
	Adults   int `bson:"adults" json:"adults"`
	Children int `bson:"children" json:"children"`
	Infants  int `bson:"infants" json:"infants"`
	Pets     int `bson:"pets" json:"pets"`
}

// Total returns adults + children + infants. Pets do not count toward the
// occupancy cap.
func (g GuestCount) Total() int {
	return g.Adults + g.Children + g.Infants
}

// PricingSnapshot is the itemized price fixed at creation. It is the source
// of truth for display and refunds and is never recomputed, even if the
// listing's nightly rate changes later.
type PricingSnapshot struct {
	BasePrice   float64 `bson:"basePrice" json:"basePrice"`
	Nights      int     `bson:"nights" json:"nights"`
	Subtotal    float64 `bson:"subtotal" json:"subtotal"`
	ServiceFee  float64 `bson:"serviceFee" json:"serviceFee"`
	CleaningFee float64 `bson:"cleaningFee" json:"cleaningFee"`
	Taxes       float64 `bson:"taxes" json:"taxes"`
	Total       float64 `bson:"total" json:"total"`
	Currency    string  `bson:"currency" json:"currency"`
}

// Payment records the opaque payment reference and any refund.
type Payment struct {
	Method        string     `bson:"method" json:"method"`
	TransactionID string     `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	PaymentDate   *time.Time `bson:"paymentDate,omitempty" json:"paymentDate,omitempty"`
	RefundAmount  float64    `bson:"refundAmount" json:"refundAmount"`
	RefundDate    *time.Time `bson:"refundDate,omitempty" json:"refundDate,omitempty"`
}

// Timeline stamps each lifecycle transition. Every field except BookedAt is
// set exactly once, by the transition that fires it.
type Timeline struct {
	BookedAt     time.Time  `bson:"bookedAt" json:"bookedAt"`
	ConfirmedAt  *time.Time `bson:"confirmedAt,omitempty" json:"confirmedAt,omitempty"`
	PaidAt       *time.Time `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	CheckedInAt  *time.Time `bson:"checkedInAt,omitempty" json:"checkedInAt,omitempty"`
	CheckedOutAt *time.Time `bson:"checkedOutAt,omitempty" json:"checkedOutAt,omitempty"`
	CancelledAt  *time.Time `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	CompletedAt  *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
}

// Cancellation records who cancelled and under which refund policy. The
// policy is fixed at creation and consulted only if a cancellation fires.
type Cancellation struct {
	CancelledBy  string `bson:"cancelledBy,omitempty" json:"cancelledBy,omitempty"`
	Reason       string `bson:"reason,omitempty" json:"reason,omitempty"`
	RefundPolicy string `bson:"refundPolicy" json:"refundPolicy"`
}

// GuestContact is optional contact info supplied at booking time.
type GuestContact struct {
	Phone             string `bson:"phone,omitempty" json:"phone,omitempty"`
	EmergencyName     string `bson:"emergencyName,omitempty" json:"emergencyName,omitempty"`
	EmergencyPhone    string `bson:"emergencyPhone,omitempty" json:"emergencyPhone,omitempty"`
	EmergencyRelation string `bson:"emergencyRelation,omitempty" json:"emergencyRelation,omitempty"`
}

// Booking is a guest's reservation of a listing for a date range.
//
// HostID is a snapshot of the listing's host at creation time. It must never
// be re-derived from the listing, even if the listing changes hands later.
type Booking struct {
	ID              string          `bson:"id" json:"id"`
	ListingID       string          `bson:"listingId" json:"listingId"`
	GuestID         string          `bson:"guestId" json:"guestId"`
	HostID          string          `bson:"hostId" json:"hostId"`
	Dates           BookingDates    `bson:"dates" json:"dates"`
	Guests          GuestCount      `bson:"guests" json:"guests"`
	Pricing         PricingSnapshot `bson:"pricing" json:"pricing"`
	Status          string          `bson:"status" json:"status"`
	Payment         Payment         `bson:"payment" json:"payment"`
	SpecialRequests string          `bson:"specialRequests,omitempty" json:"specialRequests,omitempty"`
	GuestContact    GuestContact    `bson:"guestContact" json:"guestContact,omitzero"`
	Timeline        Timeline        `bson:"timeline" json:"timeline"`
	Cancellation    Cancellation    `bson:"cancellation" json:"cancellation"`
	CreatedAt       time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time       `bson:"updatedAt" json:"updatedAt"`
}

// IsConsuming reports whether this booking occupies calendar inventory.
func (b *Booking) IsConsuming() bool {
	for _, s := range ConsumingStatuses {
		if b.Status == s {
			return true
		}
	}
	return false
}

// IsCancelled reports whether the booking sits in any cancelled state.
func (b *Booking) IsCancelled() bool {
	switch b.Status {
	case BookingStatusCancelledByGuest, BookingStatusCancelledByHost, BookingStatusCancelledByAdmin:
		return true
	}
	return false
}

// ValidPaymentMethod reports whether the method belongs to the closed set.
func ValidPaymentMethod(method string) bool {
	for _, m := range PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

// ValidRefundPolicy reports whether the policy tag is recognized.
func ValidRefundPolicy(policy string) bool {
	switch policy {
	case RefundPolicyFlexible, RefundPolicyModerate, RefundPolicyStrict, RefundPolicySuperStrict, RefundPolicyNoRefund:
		return true
	}
	return false
}
