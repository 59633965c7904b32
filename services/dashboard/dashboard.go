// Package dashboard assembles per-user activity summaries. All sums and
// groupings run inside MongoDB aggregations; no record sets are reduced in
// application memory.
package dashboard

import (
	"time"

	"stayhub/models"

	bookingRepo "stayhub/database/repository/booking"
	listingRepo "stayhub/database/repository/listing"
)

const recentBookingsLimit = 5
const upcomingStaysLimit = 5

// DashboardService builds host and guest dashboards.
type DashboardService interface {
	HostDashboard(hostID string) (*models.HostDashboard, error)
	GuestDashboard(guestID string) (*models.GuestDashboard, error)
}

// DefaultDashboardService implements DashboardService.
type DefaultDashboardService struct {
	BookingRepo bookingRepo.BookingRepository
	ListingRepo listingRepo.ListingRepository
}

// HostDashboard summarizes a host's listings, booking volume and revenue.
func (s *DefaultDashboardService) HostDashboard(hostID string) (*models.HostDashboard, error) {
	listings, err := s.ListingRepo.CountByHost(hostID)
	if err != nil {
		return nil, err
	}
	bookings, err := s.BookingRepo.CountByHost(hostID)
	if err != nil {
		return nil, err
	}
	revenue, err := s.BookingRepo.RevenueByHost(hostID)
	if err != nil {
		return nil, err
	}
	recent, err := s.BookingRepo.RecentByHost(hostID, recentBookingsLimit)
	if err != nil {
		return nil, err
	}
	return &models.HostDashboard{
		TotalListings:  listings,
		TotalBookings:  bookings,
		TotalRevenue:   revenue,
		RecentBookings: recent,
	}, nil
}

// GuestDashboard summarizes a guest's upcoming and completed stays.
func (s *DefaultDashboardService) GuestDashboard(guestID string) (*models.GuestDashboard, error) {
	total, err := s.BookingRepo.CountByGuest(guestID)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.BookingRepo.UpcomingByGuest(guestID, time.Now(), upcomingStaysLimit)
	if err != nil {
		return nil, err
	}
	completed, spent, err := s.BookingRepo.CompletedByGuest(guestID)
	if err != nil {
		return nil, err
	}
	return &models.GuestDashboard{
		TotalBookings:  total,
		UpcomingStays:  upcoming,
		TotalSpent:     spent,
		CompletedStays: completed,
	}, nil
}
