package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lunamochi/meeting-scheduler-backend/internal/api"
	"github.com/lunamochi/meeting-scheduler-backend/internal/auth"
	"github.com/lunamochi/meeting-scheduler-backend/internal/availability"
	"github.com/lunamochi/meeting-scheduler-backend/internal/booking"
	"github.com/lunamochi/meeting-scheduler-backend/internal/meetingtype"
	"github.com/lunamochi/meeting-scheduler-backend/internal/scheduling"
	"github.com/lunamochi/meeting-scheduler-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction    bool
	ProdOrigins     string
	DBPool          *pgxpool.Pool
	JWTSecret       string
	JWTTTL          time.Duration
	BcryptCost      int
	DefaultTimezone string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
	Engine     *scheduling.Engine
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Meeting Type Module
	mtRepo := meetingtype.NewPgxRepository(cfg.DBPool)
	mtService := meetingtype.NewService(mtRepo)

	// Availability Module
	availRepo := availability.NewPgxRepository(cfg.DBPool)
	availService := availability.NewService(availRepo)

	// Booking repository first: the engine reads bookings through it.
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)

	// Scheduling Engine (availability resolution, conflicts, suggestions)
	engine := scheduling.NewEngine(availRepo, bookingRepo, userService, cfg.DefaultTimezone)

	// Booking Module
	bookingService := booking.NewService(bookingRepo, mtService, engine)

	// API Router Config
	routerParams := api.Config{
		IsProduction:        cfg.IsProduction,
		ProdOrigins:         cfg.ProdOrigins,
		UserService:         userService,
		MeetingTypeService:  mtService,
		AvailabilityService: availService,
		BookingService:      bookingService,
		Engine:              engine,
		JWTManager:          jwtManager,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
		Engine:     engine,
	}
}
