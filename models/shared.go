package models

// Pagination describes a page of results.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
}

// StatusCount is one bucket of a status-grouped aggregation.
type StatusCount struct {
	Status       string  `bson:"_id" json:"status"`
	Count        int64   `bson:"count" json:"count"`
	TotalRevenue float64 `bson:"totalRevenue" json:"totalRevenue"`
}

// BookingStats summarizes a user's bookings by status.
type BookingStats struct {
	TotalBookings   int64         `json:"totalBookings"`
	StatusBreakdown []StatusCount `json:"statusBreakdown"`
	Role            string        `json:"role"`
}

// HostDashboard aggregates a host's activity.
type HostDashboard struct {
	TotalListings  int64     `json:"totalListings"`
	TotalBookings  int64     `json:"totalBookings"`
	TotalRevenue   float64   `json:"totalRevenue"`
	RecentBookings []Booking `json:"recentBookings"`
}

// GuestDashboard aggregates a guest's activity.
type GuestDashboard struct {
	TotalBookings  int64     `json:"totalBookings"`
	UpcomingStays  []Booking `json:"upcomingStays"`
	TotalSpent     float64   `json:"totalSpent"`
	CompletedStays []Booking `json:"completedStays"`
}
