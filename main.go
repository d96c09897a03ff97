package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hotelease/config"
	"hotelease/controllers"
	"hotelease/logging"
	"hotelease/payments"
	"hotelease/pricing"
	"hotelease/routes"
	"hotelease/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)

	db, err := config.ConnectDatabase(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connect failed")
	}
	logger.Info().Msg("database connected, migrations applied")

	if cfg.StripeSecretKey == "" {
		logger.Warn().Msg("STRIPE_SECRET_KEY is not set; payment endpoints will fail")
	}
	provider := payments.NewStripeProvider(cfg.StripeSecretKey)

	calc := pricing.Calculator{
		Currency:       cfg.Currency,
		DiscountNights: cfg.DiscountNights,
		DiscountAmount: cfg.DiscountAmount,
	}

	// Services
	authService := services.NewAuthService(db, cfg.JWTSecret, cfg.JWTTTL)
	hotelService := services.NewHotelService(db)
	bookingService := services.NewBookingService(db, calc, provider)
	paymentService := services.NewPaymentService(db, provider, cfg.Currency)
	favoriteService := services.NewFavoriteService(db)
	reviewService := services.NewReviewService(db)
	notificationService := services.NewNotificationService(db)
	adminService := services.NewAdminService(db)

	// Controllers
	authController := controllers.NewAuthController(authService, &logger)
	hotelController := controllers.NewHotelController(hotelService)
	bookingController := controllers.NewBookingController(bookingService, paymentService)
	userController := controllers.NewUserController(favoriteService, reviewService, notificationService)
	adminController := controllers.NewAdminController(adminService, reviewService, paymentService)

	router := routes.SetupRouter(cfg, &logger, authController, hotelController, bookingController, userController, adminController)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("listen failed")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("forced shutdown")
	}

	logger.Info().Msg("server stopped gracefully")
}
