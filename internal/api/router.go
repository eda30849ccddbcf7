package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/lunamochi/meeting-scheduler-backend/internal/auth"
	"github.com/lunamochi/meeting-scheduler-backend/internal/availability"
	availabilityHttp "github.com/lunamochi/meeting-scheduler-backend/internal/availability/http"
	"github.com/lunamochi/meeting-scheduler-backend/internal/booking"
	bookingHttp "github.com/lunamochi/meeting-scheduler-backend/internal/booking/http"
	"github.com/lunamochi/meeting-scheduler-backend/internal/meetingtype"
	meetingtypeHttp "github.com/lunamochi/meeting-scheduler-backend/internal/meetingtype/http"
	"github.com/lunamochi/meeting-scheduler-backend/internal/scheduling"
	schedulingHttp "github.com/lunamochi/meeting-scheduler-backend/internal/scheduling/http"
	"github.com/lunamochi/meeting-scheduler-backend/internal/user"
	userHttp "github.com/lunamochi/meeting-scheduler-backend/internal/user/http"
)

// Config bundles everything the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService         user.Service
	MeetingTypeService  meetingtype.Service
	AvailabilityService availability.Service
	BookingService      booking.Service
	Engine              *scheduling.Engine
	JWTManager          *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = []string{cfg.ProdOrigins}
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000", // Local booking page dev server
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// hostMiddleware: Further checks that the authenticated user is a host.
	hostMiddleware := RequireHost(cfg.UserService)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	meetingTypeHandler := meetingtypeHttp.NewHandler(cfg.MeetingTypeService)
	availabilityHandler := availabilityHttp.NewHandler(cfg.AvailabilityService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	schedulingHandler := schedulingHttp.NewHandler(cfg.Engine, cfg.MeetingTypeService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		meetingtypeHttp.RegisterRoutes(v1, meetingTypeHandler, authMiddleware, hostMiddleware)
		availabilityHttp.RegisterRoutes(v1, availabilityHandler, authMiddleware, hostMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		schedulingHttp.RegisterRoutes(v1, schedulingHandler)
	}

	return r
}
