package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/laughline/booking-api/docs"
	"github.com/laughline/booking-api/internal/api/handler"
	"github.com/laughline/booking-api/internal/api/middleware"
	"github.com/laughline/booking-api/internal/core/ports"
)

// uploadBodyLimit caps a whole multipart request; each file is still held to
// domain.MaxImageBytes.
const uploadBodyLimit = "30M"

// Dependencies are the fully constructed services the router mounts.
type Dependencies struct {
	Log      zerolog.Logger
	Reporter ErrorReporter

	Auth     ports.AuthService
	Sessions ports.SessionResolver
	Profiles ports.ProfileService
	Shows    ports.ShowService
	Images   ports.ImageService

	Cookie handler.SessionCookie
	// Health lists the readiness checks; nil entries are skipped.
	Health map[string]handler.Pinger

	// Registry receives the HTTP request metrics. The default registry is used
	// when nil.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log, deps.Reporter)

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "booking",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Cookie)
	profileHandler := handler.NewProfileHandler(deps.Profiles)
	showHandler := handler.NewShowHandler(deps.Shows)
	uploadHandler := handler.NewUploadHandler(deps.Images)
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Health)

	requireSession := middleware.Auth(deps.Sessions, deps.Cookie.Name)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/session", authHandler.Session, requireSession)
	e.PUT("/user/role", authHandler.UpdateRole, requireSession)

	// --- Profiles ---
	e.GET("/profile", profileHandler.Get, requireSession)
	e.POST("/profile", profileHandler.Save, requireSession)

	comedians := e.Group("/comedians")
	comedians.GET("", profileHandler.List)
	comedians.GET("/profile", profileHandler.Mine, requireSession)
	comedians.GET("/:id", profileHandler.Detail, requireSession)

	// --- Shows ---
	shows := e.Group("/shows")
	shows.GET("", showHandler.List)
	shows.GET("/:id", showHandler.Get)
	shows.POST("", showHandler.Create, requireSession)

	// --- Uploads ---
	e.POST("/upload", uploadHandler.Upload, echomiddleware.BodyLimit(uploadBodyLimit), requireSession)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
