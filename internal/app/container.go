package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wandertrails/guide-booking-backend/internal/api"
	"github.com/wandertrails/guide-booking-backend/internal/auth"
	"github.com/wandertrails/guide-booking-backend/internal/booking"
	"github.com/wandertrails/guide-booking-backend/internal/guide"
	"github.com/wandertrails/guide-booking-backend/internal/photo"
	"github.com/wandertrails/guide-booking-backend/internal/pkg/storage"
	"github.com/wandertrails/guide-booking-backend/internal/review"
	"github.com/wandertrails/guide-booking-backend/internal/trip"
	"github.com/wandertrails/guide-booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	UploadDir    string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	photoStore, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("init photo storage: %w", err)
	}

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Guide Module
	guideRepo := guide.NewPgxRepository(cfg.DBPool)
	guideService := guide.NewService(guideRepo, userService)

	// Trip Module
	tripRepo := trip.NewPgxRepository(cfg.DBPool)
	tripService := trip.NewService(tripRepo, guideService)

	// Review Module
	reviewRepo := review.NewPgxRepository(cfg.DBPool)
	reviewService := review.NewService(reviewRepo)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	availability := booking.NewAvailabilityEngine(bookingRepo, guideService)
	pricing := booking.NewHourlyPriceCalculator()
	bookingService := booking.NewService(bookingRepo, guideService, availability, pricing)

	// Photo Module
	photoRepo := photo.NewPgxRepository(cfg.DBPool)
	photoService := photo.NewService(photoRepo, tripService, guideService, photoStore)

	// API Router Config
	routerParams := api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		UserService:    userService,
		GuideService:   guideService,
		TripService:    tripService,
		ReviewService:  reviewService,
		BookingService: bookingService,
		PhotoService:   photoService,
		JWTManager:     jwtManager,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
