package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/sharedcustody/custody-calendar/docs"
	"github.com/sharedcustody/custody-calendar/internal/api/handler"
	"github.com/sharedcustody/custody-calendar/internal/api/middleware"
	"github.com/sharedcustody/custody-calendar/internal/core/ports"
)

// Services are the core use cases the HTTP layer exposes.
type Services struct {
	Auth      ports.AuthService
	Documents ports.DocumentService
	Reports   ports.ReportService
}

// Options tune the router. Zero values are usable except JWTSecret.
type Options struct {
	JWTSecret    string
	RequireToken bool
	// Readiness lists the dependency checks behind /health/ready.
	Readiness map[string]handler.Pinger
	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Log)

	registerer := opts.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.BodyLimit("1M"))
	e.Use(requestLogger(opts.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "custody_http",
		Registerer: registerer,
	}))

	// --- Users ---
	users := handler.NewUserHandler(svc.Auth)
	e.POST("/api/users", users.Users)

	// --- Documents and reports (scoped to ?username=) ---
	owned := []echo.MiddlewareFunc{
		middleware.Auth(opts.JWTSecret, opts.RequireToken),
		middleware.Owner("username"),
	}
	data := handler.NewDataHandler(svc.Documents)
	e.GET("/api/data", data.Get, owned...)
	e.POST("/api/data", data.Save, owned...)

	reports := handler.NewReportHandler(svc.Documents, svc.Reports)
	e.GET("/api/reports", reports.Get, owned...)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(opts.Readiness)

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
				Msg("request")
			return nil
		},
	})
}
