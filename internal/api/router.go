package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	// Registers the OpenAPI document served under /swagger/*.
	_ "github.com/nocturnal/nocturnal-api/docs"

	"github.com/nocturnal/nocturnal-api/internal/api/handler"
	"github.com/nocturnal/nocturnal-api/internal/api/middleware"
	"github.com/nocturnal/nocturnal-api/internal/core/domain"
	"github.com/nocturnal/nocturnal-api/internal/core/ports"
)

const metricsSubsystem = "http"

// Deps carries everything the router needs. Checks feeds the readiness probe.
type Deps struct {
	Users     ports.UserService
	Messages  ports.MessageService
	Checks    map[string]handler.Checker
	JWTSecret string
	Logger    zerolog.Logger

	// Nil means the default Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
// Admin routes are mounted only when a JWT secret is configured.
func NewRouter(deps Deps) *echo.Echo {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "nocturnal",
		Subsystem:  metricsSubsystem,
		Registerer: deps.Registerer,
	}))

	users := handler.NewUserHandler(deps.Users)
	messages := handler.NewMessageHandler(deps.Messages)
	health := handler.NewHealthHandler(deps.Checks)

	// --- Public routes ---
	e.GET("/", handler.Index)
	e.GET("/users/@me", users.Me)
	e.GET("/users/:username", users.GetByUsername)

	// --- Operational ---
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: deps.Gatherer,
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Admin ---
	if deps.JWTSecret != "" {
		admin := e.Group("/admin",
			middleware.Auth(deps.JWTSecret),
			middleware.RBAC(domain.RoleAdmin),
		)
		admin.POST("/users", users.Create)
		admin.GET("/users/:id", users.GetByID)
		admin.DELETE("/users/:id", users.Delete)
		admin.POST("/messages", messages.Create)
	}

	return e
}
