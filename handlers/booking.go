package handlers

import (
	"errors"
	"net/http"
	"time"

	"stayhub/middleware"
	"stayhub/services/booking"

	bookingRepo "stayhub/database/repository/booking"

	"github.com/gin-gonic/gin"
)

// CreateBooking reserves a listing for the authenticated guest. Returns 409
// when the dates are taken or host-blocked.
func CreateBooking(c *gin.Context) {
	var req booking.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	actor := actorFromContext(c)
	b, err := BookingSvc.CreateBooking(c.Request.Context(), actor, req)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GetBooking returns one booking. Guest, host or admin only.
func GetBooking(c *gin.Context) {
	b, err := BookingSvc.GetBooking(c.Param("id"), actorFromContext(c))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// UpdateBookingStatus moves a booking through its state machine.
func UpdateBookingStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	b, err := BookingSvc.ChangeStatus(c.Param("id"), actorFromContext(c), req.Status, req.Reason)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CheckAvailability reports whether a date range is bookable. Public.
func CheckAvailability(c *gin.Context) {
	checkIn, err1 := time.Parse(time.RFC3339, c.Query("checkIn"))
	checkOut, err2 := time.Parse(time.RFC3339, c.Query("checkOut"))
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "checkIn and checkOut must be RFC3339 timestamps"})
		return
	}

	result, err := BookingSvc.CheckAvailability(c.Param("id"), checkIn, checkOut)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// MyBookings returns the authenticated guest's bookings.
func MyBookings(c *gin.Context) {
	page, limit := pageParams(c)
	result, err := BookingSvc.ListForGuest(c.GetString(middleware.CtxUserID), bookingListFilter(c), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load bookings"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// HostBookings returns bookings received on the authenticated host's
// listings.
func HostBookings(c *gin.Context) {
	page, limit := pageParams(c)
	result, err := BookingSvc.ListForHost(c.GetString(middleware.CtxUserID), bookingListFilter(c), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load bookings"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// AllBookings returns every booking. Admin only, gated at the route.
func AllBookings(c *gin.Context) {
	page, limit := pageParams(c)
	result, err := BookingSvc.ListAll(bookingListFilter(c), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load bookings"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// BookingStats summarizes the authenticated user's bookings by status.
func BookingStats(c *gin.Context) {
	stats, err := BookingSvc.Stats(actorFromContext(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func actorFromContext(c *gin.Context) booking.Actor {
	return booking.Actor{
		ID:   c.GetString(middleware.CtxUserID),
		Role: c.GetString(middleware.CtxUserRole),
	}
}

func bookingListFilter(c *gin.Context) bookingRepo.ListFilter {
	filter := bookingRepo.ListFilter{
		Status:    c.Query("status"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}
	if v := c.Query("startDate"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.StartDate = &t
		}
	}
	if v := c.Query("endDate"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.EndDate = &t
		}
	}
	return filter
}

func respondBookingError(c *gin.Context, err error) {
	var (
		validation *booking.ValidationError
		notFound   *booking.NotFoundError
		forbidden  *booking.AuthorizationError
		conflict   *booking.ConflictError
		transition *booking.InvalidTransitionError
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &forbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &transition):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"current":   transition.Current,
			"requested": transition.Requested,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
	}
}
