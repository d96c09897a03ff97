package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"hotelease/config"
	"hotelease/controllers"
	"hotelease/middleware"
)

// SetupRouter wires controllers into the route tree.
func SetupRouter(
	cfg *config.Config,
	logger *zerolog.Logger,
	authC *controllers.AuthController,
	hotelC *controllers.HotelController,
	bookingC *controllers.BookingController,
	userC *controllers.UserController,
	adminC *controllers.AdminController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))

	origins := cfg.CORSOrigins
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requireAuth := middleware.RequireAuth(cfg.JWTSecret)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		auth.Use(middleware.RateLimit(cfg.AuthRateRPS, cfg.AuthRateBurst))
		{
			auth.POST("/register", authC.Register)
			auth.POST("/login", authC.Login)
			auth.POST("/forgot-password", authC.ForgotPassword)
			auth.POST("/reset-password", authC.ResetPassword)
			auth.GET("/me", requireAuth, authC.Me)
			auth.PUT("/profile", requireAuth, authC.UpdateProfile)
		}

		hotels := api.Group("/hotels")
		{
			hotels.GET("", hotelC.GetHotels)
			hotels.GET("/:id", hotelC.GetHotel)
		}

		bookings := api.Group("/bookings")
		bookings.Use(requireAuth)
		{
			bookings.POST("", bookingC.CreateBooking)
			bookings.GET("/my-bookings", bookingC.GetMyBookings)
			bookings.GET("/:id", bookingC.GetBooking)
			bookings.PUT("/:id/cancel", bookingC.CancelBooking)
			bookings.POST("/payment-intent", bookingC.CreatePaymentIntent)
			bookings.POST("/confirm-payment", bookingC.ConfirmPayment)
		}

		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.POST("/favorites", userC.AddFavorite)
			users.GET("/favorites", userC.GetFavorites)
			users.DELETE("/favorites/:hotelId", userC.RemoveFavorite)
			users.GET("/favorites/check/:hotelId", userC.CheckFavorite)

			users.POST("/hotels/:hotelId/reviews", userC.CreateReview)
			users.GET("/hotels/:hotelId/reviews", userC.GetHotelReviews)

			users.GET("/notifications", userC.GetNotifications)
			users.PUT("/notifications/:id/read", userC.MarkNotificationRead)
		}

		admin := api.Group("/admin")
		admin.Use(requireAuth, middleware.RequireAdmin())
		{
			admin.GET("/dashboard", adminC.Dashboard)
			admin.GET("/users", adminC.GetUsers)

			admin.GET("/hotels", adminC.GetHotels)
			admin.POST("/hotels", hotelC.CreateHotel)
			admin.PUT("/hotels/:id", hotelC.UpdateHotel)
			admin.DELETE("/hotels/:id", hotelC.DeleteHotel)
			admin.POST("/hotels/:id/images", hotelC.AddImages)

			admin.GET("/bookings", adminC.GetBookings)
			admin.PUT("/bookings/:id/status", adminC.UpdateBookingStatus)

			admin.PUT("/reviews/:id/approve", adminC.ApproveReview)
			admin.POST("/refunds/:bookingId", adminC.ProcessRefund)

			admin.GET("/employees", adminC.GetEmployees)
			admin.POST("/employees", adminC.CreateEmployee)
			admin.DELETE("/employees/:id", adminC.DeleteEmployee)

			admin.GET("/settings", adminC.GetSettings)
			admin.PUT("/settings", adminC.UpdateSettings)
		}
	}

	return r
}
