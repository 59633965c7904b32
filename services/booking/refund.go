package booking

import (
	"math"
	"time"

	"stayhub/models"
)

// refundTier maps a minimum days-until-check-in to a refund percentage.
type refundTier struct {
	minDays int
	percent float64
}

// refundSchedules holds the per-policy tiers, most generous first. A policy
// absent from the map (including no_refund) pays nothing.
var refundSchedules = map[string][]refundTier{
	models.RefundPolicyFlexible: {
		{minDays: 1, percent: 100},
	},
	models.RefundPolicyModerate: {
		{minDays: 5, percent: 100},
		{minDays: 1, percent: 50},
	},
	models.RefundPolicyStrict: {
		{minDays: 7, percent: 100},
		{minDays: 1, percent: 50},
	},
	models.RefundPolicySuperStrict: {
		{minDays: 30, percent: 100},
		{minDays: 7, percent: 50},
	},
}

// RefundAmount computes the refund owed on cancellation. Days until check-in
// is the ceiling of the remaining interval and may be negative once check-in
// has passed. The result is persisted with the cancellation transition and
// never recomputed afterward.
func RefundAmount(total float64, policy string, checkIn, now time.Time) float64 {
	days := int(math.Ceil(checkIn.Sub(now).Hours() / 24))
	for _, tier := range refundSchedules[policy] {
		if days >= tier.minDays {
			return math.Round(total * tier.percent / 100)
		}
	}
	return 0
}
