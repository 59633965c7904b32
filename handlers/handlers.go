// Package handlers exposes the HTTP surface. Handlers translate transport
// concerns and delegate every decision to the services.
package handlers

import (
	"strconv"

	"stayhub/services/booking"
	"stayhub/services/dashboard"
	"stayhub/services/listing"
	"stayhub/services/user"

	bookingRepo "stayhub/database/repository/booking"
	listingRepo "stayhub/database/repository/listing"
	userRepo "stayhub/database/repository/user"

	"github.com/gin-gonic/gin"
)

var (
	UserSvc      user.UserService
	ListingSvc   listing.ListingService
	BookingSvc   booking.BookingService
	DashboardSvc dashboard.DashboardService
)

// InitServices wires the service layer onto the repositories constructed in
// main, which stays the single wiring point.
func InitServices(
	users userRepo.UserRepository,
	listings listingRepo.ListingRepository,
	bookings bookingRepo.BookingRepository,
	reminders booking.ReminderScheduler,
) {
	UserSvc = &user.DefaultUserService{Repo: users}
	ListingSvc = &listing.DefaultListingService{Repo: listings}
	BookingSvc = &booking.DefaultBookingService{
		BookingRepo: bookings,
		ListingRepo: listings,
		Fees:        booking.DefaultFeeSchedule(),
		Reminders:   reminders,
	}
	DashboardSvc = &dashboard.DefaultDashboardService{
		BookingRepo: bookings,
		ListingRepo: listings,
	}
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}
