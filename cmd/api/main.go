package main

import (
	"log"
	"net/http"

	"eventtix/internal/config"
	"eventtix/internal/database"
	"eventtix/internal/middleware"
	"eventtix/internal/modules/admin"
	"eventtix/internal/modules/auth"
	"eventtix/internal/modules/booking"
	"eventtix/internal/modules/event"
	"eventtix/internal/modules/payment"
	"eventtix/internal/modules/seatfeed"
	jwtsvc "eventtix/internal/pkg/jwt"
	"eventtix/internal/pkg/response"
	"eventtix/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	jwtService := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	orderRepo := repository.NewPaymentOrderRepository(db)

	hub := seatfeed.NewHub()

	authService := auth.NewService(userRepo, jwtService)
	eventService := event.NewService(eventRepo)
	bookingService := booking.NewService(bookingRepo, eventRepo, hub)
	paymentService := payment.NewService(orderRepo, cfg.PaymentKeyID, cfg.PaymentKeySecret, cfg.PaymentCurrency)
	adminService := admin.NewService(userRepo, bookingRepo, bookingService)

	authHandler := auth.NewHandler(authService)
	eventHandler := event.NewHandler(eventService)
	bookingHandler := booking.NewHandler(bookingService)
	paymentHandler := payment.NewHandler(paymentService)
	adminHandler := admin.NewHandler(adminService)
	feedHandler := seatfeed.NewHandler(hub)

	if config.IsProdLike(cfg.AppEnv) {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.ErrorLogger())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")

	// public
	authHandler.RegisterRoutes(api)
	eventHandler.RegisterRoutes(api)
	feedHandler.RegisterRoutes(api)

	// authenticated
	protected := api.Group("")
	protected.Use(middleware.Auth(jwtService))
	authHandler.RegisterProtectedRoutes(protected)
	bookingHandler.RegisterRoutes(protected)
	paymentHandler.RegisterRoutes(protected)

	// admin
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.Auth(jwtService), middleware.AdminOnly())
	eventHandler.RegisterAdminRoutes(adminGroup)
	bookingHandler.RegisterAdminRoutes(adminGroup)
	adminHandler.RegisterRoutes(adminGroup)

	log.Printf("listening on :%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
