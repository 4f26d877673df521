package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/playon/turf-booking-backend/internal/auth"
	"github.com/playon/turf-booking-backend/internal/booking"
	bookingHttp "github.com/playon/turf-booking-backend/internal/booking/http"
	"github.com/playon/turf-booking-backend/internal/event"
	eventHttp "github.com/playon/turf-booking-backend/internal/event/http"
	"github.com/playon/turf-booking-backend/internal/payment"
	paymentHttp "github.com/playon/turf-booking-backend/internal/payment/http"
	"github.com/playon/turf-booking-backend/internal/review"
	reviewHttp "github.com/playon/turf-booking-backend/internal/review/http"
	"github.com/playon/turf-booking-backend/internal/turf"
	turfHttp "github.com/playon/turf-booking-backend/internal/turf/http"
	"github.com/playon/turf-booking-backend/internal/turfimage"
	turfimageHttp "github.com/playon/turf-booking-backend/internal/turfimage/http"
	"github.com/playon/turf-booking-backend/internal/user"
)

// Config holds everything the router needs to assemble the API surface.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService         user.Service
	TurfService         turf.Service
	BookingService      booking.Service
	AvailabilityService booking.AvailabilityService
	EventService        event.Service
	ReviewService       review.Service
	PaymentService      payment.Service
	ImageService        turfimage.Service

	JWTManager *auth.JWTManager
}

// NewRouter assembles middleware (CORS, logging, auth) and registers
// every module's routes under /v1.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000", "http://localhost:8081"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	adminMiddleware := RequireAdmin()

	authHandler := NewAuthHandler(cfg.UserService, cfg.JWTManager)
	userHandler := NewUserHandler(cfg.UserService)
	adminHandler := NewAdminHandler(cfg.UserService, cfg.TurfService, cfg.BookingService)

	turfHandler := turfHttp.NewHandler(cfg.TurfService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.AvailabilityService)
	eventHandler := eventHttp.NewHandler(cfg.EventService)
	reviewHandler := reviewHttp.NewHandler(cfg.ReviewService)
	paymentHandler := paymentHttp.NewHandler(cfg.PaymentService)
	imageHandler := turfimageHttp.NewHandler(cfg.ImageService)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/register", authHandler.Register)
		v1.POST("/auth/login", authHandler.Login)
		v1.GET("/me", authMiddleware, authHandler.Me)

		turfHttp.RegisterRoutes(v1, turfHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, adminMiddleware)
		eventHttp.RegisterRoutes(v1, eventHandler, authMiddleware)
		reviewHttp.RegisterRoutes(v1, reviewHandler, authMiddleware)
		paymentHttp.RegisterRoutes(v1, paymentHandler, authMiddleware)
		turfimageHttp.RegisterRoutes(v1, imageHandler, authMiddleware)

		admin := v1.Group("/admin", authMiddleware, adminMiddleware)
		{
			admin.GET("/dashboard", adminHandler.Dashboard)
			admin.GET("/bookings/export", adminHandler.ExportBookings)
			admin.GET("/users", userHandler.List)
			admin.GET("/users/:id", userHandler.Get)
			admin.DELETE("/users/:id", userHandler.Delete)
		}
	}

	return r
}
