// Command seed populates the database with demo accounts, listings and
// bookings. All booking prices go through the same fee schedule as the live
// creation path, so seeded totals match what the API would have produced.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"stayhub/config"
	"stayhub/database"
	"stayhub/models"
	"stayhub/services/booking"

	bookingRepo "stayhub/database/repository/booking"
	listingRepo "stayhub/database/repository/listing"
	userRepo "stayhub/database/repository/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const demoPassword = "password123"

func main() {
	config.LoadConfig()
	database.InitDB()

	users := userRepo.NewMongoUserRepo()
	listings := listingRepo.NewMongoListingRepo()
	bookings := bookingRepo.NewMongoBookingRepo()

	host := seedUser(users, "Maya Hoffman", "maya@stayhub.dev", models.RoleHost)
	guest := seedUser(users, "Devon Clarke", "devon@stayhub.dev", models.RoleUser)
	seedUser(users, "Site Admin", "admin@stayhub.dev", models.RoleAdmin)

	cabin := seedListing(listings, host.ID, "Lakeside Cabin", "cabin", 100)
	loft := seedListing(listings, host.ID, "Downtown Loft", "apartment", 180)

	fees := booking.DefaultFeeSchedule()
	seedBooking(bookings, fees, cabin, guest.ID, 14, 17, models.BookingStatusConfirmed)
	seedBooking(bookings, fees, cabin, guest.ID, 40, 45, models.BookingStatusPending)
	seedBooking(bookings, fees, loft, guest.ID, 7, 9, models.BookingStatusPaid)

	log.Println("seed complete")
}

func seedUser(repo *userRepo.MongoUserRepo, name, email, role string) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash demo password: %v", err)
	}

	now := time.Now()
	u := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repo.Create(u); err != nil {
		log.Fatalf("failed to seed user %s: %v", email, err)
	}
	log.Printf("seeded user %s (%s)", email, role)
	return u
}

func seedListing(repo *listingRepo.MongoListingRepo, hostID, title, propertyType string, price float64) *models.Listing {
	now := time.Now()
	blockStart := now.AddDate(0, 0, 60)
	l := &models.Listing{
		ID:           uuid.NewString(),
		Title:        title,
		Description:  fmt.Sprintf("%s available for demo bookings.", title),
		PropertyType: propertyType,
		RoomType:     "entire_place",
		Price:        price,
		Currency:     "USD",
		Location: models.Location{
			Address: "100 Demo Street",
			City:    "Portland",
			State:   "OR",
			Country: "USA",
		},
		Capacity: models.Capacity{
			Guests:    4,
			Bedrooms:  2,
			Beds:      2,
			Bathrooms: 1,
		},
		Amenities: []string{"wifi", "kitchen", "parking"},
		HostID:    hostID,
		Availability: models.Availability{
			CheckIn:     "15:00",
			CheckOut:    "11:00",
			MinimumStay: 1,
			MaximumStay: 30,
			BlockedDates: []models.BlockedDate{
				{StartDate: blockStart, EndDate: blockStart.AddDate(0, 0, 5), Reason: models.BlockReasonMaintenance},
			},
		},
		Status:    models.ListingStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := l.Validate(); err != nil {
		log.Fatalf("seed listing %q is invalid: %v", title, err)
	}
	if err := repo.Create(l); err != nil {
		log.Fatalf("failed to seed listing %q: %v", title, err)
	}
	log.Printf("seeded listing %q", title)
	return l
}

func seedBooking(repo *bookingRepo.MongoBookingRepo, fees booking.FeeSchedule, l *models.Listing, guestID string, startOffset, endOffset int, status string) {
	now := time.Now()
	checkIn := now.AddDate(0, 0, startOffset)
	checkOut := now.AddDate(0, 0, endOffset)
	nights := booking.Nights(checkIn, checkOut)

	b := &models.Booking{
		ID:        uuid.NewString(),
		ListingID: l.ID,
		GuestID:   guestID,
		HostID:    l.HostID,
		Dates: models.BookingDates{
			CheckIn:  checkIn,
			CheckOut: checkOut,
			Nights:   nights,
		},
		Guests:       models.GuestCount{Adults: 2},
		Pricing:      fees.Quote(l.Price, nights, l.Currency),
		Status:       status,
		Payment:      models.Payment{Method: "stripe"},
		Timeline:     models.Timeline{BookedAt: now},
		Cancellation: models.Cancellation{RefundPolicy: models.RefundPolicyModerate},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if status != models.BookingStatusPending {
		b.Timeline.ConfirmedAt = &now
	}
	if status == models.BookingStatusPaid {
		b.Timeline.PaidAt = &now
		b.Payment.PaymentDate = &now
	}

	if err := repo.CreateIfNoConflict(context.Background(), b); err != nil {
		log.Fatalf("failed to seed booking on %q: %v", l.Title, err)
	}
	log.Printf("seeded %s booking on %q (total %.0f %s)", status, l.Title, b.Pricing.Total, b.Pricing.Currency)
}
