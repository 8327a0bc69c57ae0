package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/wandertrails/guide-booking-backend/internal/auth"
	"github.com/wandertrails/guide-booking-backend/internal/booking"
	bookingHttp "github.com/wandertrails/guide-booking-backend/internal/booking/http"
	"github.com/wandertrails/guide-booking-backend/internal/guide"
	guideHttp "github.com/wandertrails/guide-booking-backend/internal/guide/http"
	"github.com/wandertrails/guide-booking-backend/internal/photo"
	photoHttp "github.com/wandertrails/guide-booking-backend/internal/photo/http"
	"github.com/wandertrails/guide-booking-backend/internal/review"
	reviewHttp "github.com/wandertrails/guide-booking-backend/internal/review/http"
	"github.com/wandertrails/guide-booking-backend/internal/trip"
	tripHttp "github.com/wandertrails/guide-booking-backend/internal/trip/http"
	"github.com/wandertrails/guide-booking-backend/internal/user"
	userHttp "github.com/wandertrails/guide-booking-backend/internal/user/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService    user.Service
	GuideService   guide.Service
	TripService    trip.Service
	ReviewService  review.Service
	BookingService booking.Service
	PhotoService   photo.Service

	JWTManager *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (CORS, Logger, Auth) and registers routes for each module.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// adminMiddleware: Further checks if the authenticated user is an admin.
	adminMiddleware := RequireAdmin(cfg.UserService)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewUserHandler(cfg.UserService, cfg.JWTManager)
	guideHandler := guideHttp.NewHandler(cfg.GuideService)
	tripHandler := tripHttp.NewHandler(cfg.TripService)
	reviewHandler := reviewHttp.NewHandler(cfg.ReviewService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	photoHandler := photoHttp.NewHandler(cfg.PhotoService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, adminMiddleware)
		guideHttp.RegisterRoutes(v1, guideHandler, authMiddleware, adminMiddleware)
		tripHttp.RegisterRoutes(v1, tripHandler, authMiddleware)
		reviewHttp.RegisterRoutes(v1, reviewHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		photoHttp.RegisterRoutes(v1, photoHandler, authMiddleware)
	}

	return r
}
