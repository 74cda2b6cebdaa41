package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"github.com/mindmate/mindmate-api/internal/api/handler"
	"github.com/mindmate/mindmate-api/internal/api/middleware"
)

// Deps carries the constructed handlers and settings the router needs.
// Repositories and services are assembled at bootstrap, where the store
// backend (Mongo or in-memory) is selected, and arrive here fully wired.
type Deps struct {
	Auth      *handler.AuthHandler
	Tasks     *handler.TaskHandler
	Goals     *handler.GoalHandler
	Chat      *handler.ChatHandler
	Health    *handler.HealthHandler
	JWTSecret string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("mindmate"))

	// --- Operational endpoints (no auth required) ---
	e.GET("/health", deps.Health.Live)
	e.GET("/health/ready", deps.Health.Ready)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	// Credential endpoints are rate limited per client IP to slow down
	// password and OTP guessing.
	auth := e.Group("/auth", echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(5),
			Burst:     10,
			ExpiresIn: 3 * time.Minute,
		}),
	}))
	auth.POST("/register", deps.Auth.Register)
	auth.POST("/login", deps.Auth.Login)
	auth.POST("/send-otp", deps.Auth.SendOTP)
	auth.POST("/verify-otp", deps.Auth.VerifyOTP)

	authRequired := middleware.Auth(deps.JWTSecret)
	e.GET("/auth/me", deps.Auth.Me, authRequired)
	e.PUT("/auth/me", deps.Auth.UpdateProfile, authRequired)

	// --- Protected API ---
	v1 := e.Group("/v1", authRequired)

	v1.GET("/tasks", deps.Tasks.List)
	v1.POST("/tasks", deps.Tasks.Create)
	v1.PATCH("/tasks/:id", deps.Tasks.Update)
	v1.DELETE("/tasks/:id", deps.Tasks.Delete)

	v1.GET("/goals", deps.Goals.List)
	v1.POST("/goals", deps.Goals.Create)
	v1.PATCH("/goals/:id", deps.Goals.Update)
	v1.DELETE("/goals/:id", deps.Goals.Delete)

	v1.POST("/chat", deps.Chat.Chat)

	return e
}
