package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/playon/turf-booking-backend/internal/api"
	"github.com/playon/turf-booking-backend/internal/auth"
	"github.com/playon/turf-booking-backend/internal/booking"
	"github.com/playon/turf-booking-backend/internal/event"
	"github.com/playon/turf-booking-backend/internal/metrics"
	"github.com/playon/turf-booking-backend/internal/notification"
	"github.com/playon/turf-booking-backend/internal/payment"
	"github.com/playon/turf-booking-backend/internal/pkg/storage"
	"github.com/playon/turf-booking-backend/internal/review"
	"github.com/playon/turf-booking-backend/internal/turf"
	"github.com/playon/turf-booking-backend/internal/turfimage"
	"github.com/playon/turf-booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	DBPool      *pgxpool.Pool
	RedisClient *redis.Client // nil disables availability caching
	Storage     storage.Storage

	JWTSecret  string
	JWTTTL     time.Duration
	BcryptCost int

	MaxBookingHours      int
	AvailabilityCacheTTL time.Duration

	Logger zerolog.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	metrics.Register()

	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// User module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Turf module
	turfRepo := turf.NewPgxRepository(cfg.DBPool)
	turfService := turf.NewService(turfRepo)

	// Booking module
	availabilityCache := booking.NewAvailabilityCache(cfg.RedisClient, cfg.AvailabilityCacheTTL)
	notifier := notification.NewLogNotifier(cfg.Logger)
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(
		bookingRepo, turfService, userService, notifier,
		availabilityCache, cfg.MaxBookingHours, cfg.Logger,
	)
	availabilityService := booking.NewAvailabilityService(
		bookingRepo, turfService, availabilityCache, cfg.MaxBookingHours,
	)

	// Event module
	eventRepo := event.NewPgxRepository(cfg.DBPool)
	eventService := event.NewService(eventRepo)

	// Review module
	reviewRepo := review.NewPgxRepository(cfg.DBPool)
	reviewService := review.NewService(reviewRepo, turfService)

	// Payment module
	paymentRepo := payment.NewPgxRepository(cfg.DBPool)
	paymentService := payment.NewService(paymentRepo, bookingService, turfService)

	// Turf image module
	imageRepo := turfimage.NewPgxRepository(cfg.DBPool)
	imageService := turfimage.NewService(imageRepo, turfService, cfg.Storage, cfg.Logger)

	router := api.NewRouter(api.Config{
		IsProduction: cfg.IsProduction,
		ProdOrigins:  cfg.ProdOrigins,

		UserService:         userService,
		TurfService:         turfService,
		BookingService:      bookingService,
		AvailabilityService: availabilityService,
		EventService:        eventService,
		ReviewService:       reviewService,
		PaymentService:      paymentService,
		ImageService:        imageService,

		JWTManager: jwtManager,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}
}
