package handlers

import (
	"net/http"

	"stayhub/middleware"

	"github.com/gin-gonic/gin"
)

// HostDashboard summarizes the authenticated host's listings, bookings and
// revenue.
func HostDashboard(c *gin.Context) {
	dash, err := DashboardSvc.HostDashboard(c.GetString(middleware.CtxUserID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}
	c.JSON(http.StatusOK, dash)
}

// GuestDashboard summarizes the authenticated guest's stays and spend.
func GuestDashboard(c *gin.Context) {
	dash, err := DashboardSvc.GuestDashboard(c.GetString(middleware.CtxUserID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}
	c.JSON(http.StatusOK, dash)
}
