package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/raceops/race-weekend-api/docs"
	"github.com/raceops/race-weekend-api/internal/api/handler"
	"github.com/raceops/race-weekend-api/internal/api/middleware"
	"github.com/raceops/race-weekend-api/internal/core/authz"
	"github.com/raceops/race-weekend-api/internal/core/ports"
	"github.com/raceops/race-weekend-api/internal/core/service"
	"github.com/raceops/race-weekend-api/internal/infrastructure/config"
	mongorepo "github.com/raceops/race-weekend-api/internal/infrastructure/db/mongo"
	redisstore "github.com/raceops/race-weekend-api/internal/infrastructure/db/redis"
	"github.com/raceops/race-weekend-api/internal/infrastructure/weather"
)

// RouterDeps carries everything NewRouter needs that is owned by the caller:
// live connections and the reminder dispatcher started in main.
type RouterDeps struct {
	DB         *mongo.Database
	Redis      *redis.Client
	Config     *config.Config
	Logger     zerolog.Logger
	Dispatcher handler.ReminderEnqueuer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("raceweekend"))

	// --- Dependencies ---
	authRepo := mongorepo.NewAuthRepository(deps.DB)
	eventRepo := mongorepo.NewEventRepository(deps.DB)
	taskRepo := mongorepo.NewTaskRepository(deps.DB)

	counterStore := redisstore.NewCounterStore(deps.Redis)
	taskCache := redisstore.NewTaskCache(deps.Redis, deps.Config.RateLimit.CacheTTL)

	tokenService := service.NewTokenService(deps.Config.Auth.JWTSecret, deps.Config.Auth.TokenTTL)
	authService := service.NewAuthService(authRepo, tokenService, deps.Config.Auth.BcryptCost)
	eventService := service.NewEventService(eventRepo, deps.Logger)
	taskService := service.NewTaskService(taskRepo, eventRepo, taskCache, deps.Logger)
	limiter := service.NewRateLimitService(counterStore, service.RateLimitConfig{
		Limits: map[string]int{
			ports.ClassTaskRead:  deps.Config.RateLimit.TaskRead,
			ports.ClassTaskWrite: deps.Config.RateLimit.TaskWrite,
		},
		Window:   deps.Config.RateLimit.Window,
		FailOpen: deps.Config.RateLimit.FailOpen,
	}, deps.Logger)

	authHandler := handler.NewAuthHandler(authService)
	eventHandler := handler.NewEventHandler(eventService, weather.NewClient())
	taskHandler := handler.NewTaskHandler(taskService, deps.Dispatcher)

	authn := middleware.Auth(tokenService)
	member := middleware.RequireCapability(authz.RequireMemberOrAdmin())
	admin := middleware.RequireCapability(authz.RequireAdmin())
	readLimit := middleware.RateLimit(limiter, ports.ClassTaskRead)
	writeLimit := middleware.RateLimit(limiter, ports.ClassTaskWrite)

	// --- Auth routes (public) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Events ---
	events := e.Group("/v1/events", authn)
	events.POST("", eventHandler.Create, admin, writeLimit)
	events.GET("", eventHandler.List, member, readLimit)
	events.GET("/:id", eventHandler.Get, member, readLimit)
	events.GET("/:id/weather", eventHandler.Weather, member, readLimit)

	// --- Tasks ---
	tasks := e.Group("/v1/tasks", authn, member)
	tasks.POST("", taskHandler.Create, writeLimit)
	tasks.GET("", taskHandler.List, readLimit)
	tasks.GET("/:id", taskHandler.Get, readLimit)
	tasks.PATCH("/:id", taskHandler.Update, writeLimit)
	tasks.DELETE("/:id", taskHandler.Delete, writeLimit)
	tasks.POST("/:id/remind", taskHandler.Remind, writeLimit)

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
