package routes

import (
	"time"

	"stayhub/handlers"
	"stayhub/middleware"
	"stayhub/models"

	userRepo "stayhub/database/repository/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, users userRepo.UserRepository) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	registerAuthRoutes(r, users)
	registerListingRoutes(r, users)
	registerBookingRoutes(r, users)
	registerDashboardRoutes(r, users)
	registerHealthRoute(r)
}

func registerAuthRoutes(r *gin.Engine, users userRepo.UserRepository) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", handlers.Register)
		api.POST("/login", handlers.SignIn)

		api.Use(middleware.JWTAuthMiddleware(users))
		api.POST("/logout", handlers.SignOut)
		api.GET("/me", handlers.GetProfile)
		api.PATCH("/me", handlers.UpdateProfile)
		api.POST("/become-host", handlers.BecomeHost)
	}
}

func registerListingRoutes(r *gin.Engine, users userRepo.UserRepository) {
	api := r.Group("/api/listings")
	{
		// Public discovery endpoints.
		api.GET("", handlers.SearchListings)
		api.GET("/:id", handlers.GetListing)
		api.GET("/:id/availability", handlers.CheckAvailability)
		api.GET("/host/:hostId", handlers.HostListings)

		// Mutations require a host account.
		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(users))
		protected.GET("/mine/all", handlers.MyListings)
		protected.POST("", middleware.RequireRole(models.RoleHost), handlers.CreateListing)
		protected.PUT("/:id", middleware.RequireRole(models.RoleHost), handlers.UpdateListing)
		protected.DELETE("/:id", middleware.RequireRole(models.RoleHost), handlers.DeleteListing)
	}
}

func registerBookingRoutes(r *gin.Engine, users userRepo.UserRepository) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware(users))
		api.POST("", handlers.CreateBooking)
		api.GET("/mine", handlers.MyBookings)
		api.GET("/host", middleware.RequireRole(models.RoleHost), handlers.HostBookings)
		api.GET("/all", middleware.RequireAdmin(), handlers.AllBookings)
		api.GET("/stats", handlers.BookingStats)
		api.GET("/:id", handlers.GetBooking)
		api.PATCH("/:id/status", handlers.UpdateBookingStatus)
	}
}

func registerDashboardRoutes(r *gin.Engine, users userRepo.UserRepository) {
	api := r.Group("/api/dashboard")
	{
		api.Use(middleware.JWTAuthMiddleware(users))
		api.GET("/host", middleware.RequireRole(models.RoleHost), handlers.HostDashboard)
		api.GET("/guest", handlers.GuestDashboard)
	}
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.Health)
}
