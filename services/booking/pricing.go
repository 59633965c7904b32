package booking

import (
	"math"
	"time"

	"stayhub/config"
	"stayhub/models"
)

// FeeSchedule is the injectable pricing policy. Rates are fractions of the
// subtotal; the cleaning fee is a flat amount per booking.
type FeeSchedule struct {
	ServiceFeeRate float64
	TaxRate        float64
	CleaningFee    float64
}

// DefaultFeeSchedule loads the fee schedule from application config.
func DefaultFeeSchedule() FeeSchedule {
	cfg := config.AppConfig
	return FeeSchedule{
		ServiceFeeRate: cfg.ServiceFeeRate,
		TaxRate:        cfg.TaxRate,
		CleaningFee:    cfg.CleaningFee,
	}
}

// Nights returns the ceiling of whole days between checkIn and checkOut.
func Nights(checkIn, checkOut time.Time) int {
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
}

// Quote builds the itemized pricing snapshot for a stay. Fee components are
// rounded half-up individually; subtotal and total are exact sums of the
// already-rounded parts. The result is re-derivable from {basePrice, nights}
// plus the schedule, and once stored on a booking it is never recomputed.
func (fs FeeSchedule) Quote(basePrice float64, nights int, currency string) models.PricingSnapshot {
	subtotal := basePrice * float64(nights)
	serviceFee := math.Round(subtotal * fs.ServiceFeeRate)
	taxes := math.Round(subtotal * fs.TaxRate)
	return models.PricingSnapshot{
		BasePrice:   basePrice,
		Nights:      nights,
		Subtotal:    subtotal,
		ServiceFee:  serviceFee,
		CleaningFee: fs.CleaningFee,
		Taxes:       taxes,
		Total:       subtotal + serviceFee + fs.CleaningFee + taxes,
		Currency:    currency,
	}
}
