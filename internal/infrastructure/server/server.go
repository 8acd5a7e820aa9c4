package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/afero"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/mobilectl/core/docs"
	httpHandlers "github.com/mobilectl/core/internal/adapters/http"
	"github.com/mobilectl/core/internal/domain/entities"
	"github.com/mobilectl/core/internal/infrastructure/config"
	"github.com/mobilectl/core/internal/infrastructure/logger"
	"github.com/mobilectl/core/internal/infrastructure/metrics"
	"github.com/mobilectl/core/internal/ports"
)

// Device reports which platform the controller drives
type Device interface {
	PlatformName() string
	Supported() bool
}

// Dependencies are the collaborators the server routes to
type Dependencies struct {
	Actions ports.ActionService
	Device  Device
	// Fs is the filesystem holding the phonebook file
	Fs      afero.Fs
	Metrics *metrics.Metrics
}

// Server represents the HTTP server
type Server struct {
	echo   *echo.Echo
	config *config.Config
	logger *logger.Logger
	deps   Dependencies
}

// New creates a new server instance
func New(cfg *config.Config, deps Dependencies, appLogger *logger.Logger) (*Server, error) {
	if deps.Actions == nil {
		return nil, errors.New("action service is required")
	}
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout

	server := &Server{
		echo:   e,
		config: cfg,
		logger: appLogger.WithComponent("http"),
		deps:   deps,
	}

	server.setupMiddleware()

	if cfg.Metrics.Enabled && deps.Metrics != nil {
		server.setupMetrics()
	}

	server.setupRoutes(httpHandlers.NewActionHandler(deps.Actions, server.logger))

	return server, nil
}

// Handler exposes the router for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Recover())

	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			reqLogger := s.logger.WithRequestID(values.RequestID)
			if values.Error != nil {
				reqLogger = reqLogger.WithError(values.Error)
			}
			reqLogger.LogHTTPRequest(values.Method, values.URI, values.UserAgent, values.RemoteIP, values.Status, values.Latency)
			return nil
		},
	}))

	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodDelete},
	}))

	requests := s.config.Security.RateLimitRequests
	s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			return isProbe(c.Path())
		},
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Every(s.config.Security.RateLimitWindow / time.Duration(requests)),
			Burst:     requests,
			ExpiresIn: s.config.Security.RateLimitWindow,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, entities.Failed(entities.FailureInternal, "rate limit exceeded"))
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, entities.Failed(entities.FailureInternal, "rate limit exceeded"))
		},
	}))

	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		// The swagger UI relies on inline scripts.
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Path(), "/swagger")
		},
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
	}))

	if timeout := s.config.Server.RequestTimeout; timeout > 0 {
		s.echo.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
			Timeout: timeout,
		}))
	}
}

func (s *Server) setupRoutes(h *httpHandlers.ActionHandler) {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	api := s.echo.Group("/api")
	api.POST("/mobile-control", h.Execute)

	phonebook := api.Group("/phonebook")
	phonebook.GET("", h.ListContacts)
	phonebook.POST("", h.Body(entities.ActionPhonebookAdd))
	phonebook.DELETE("/:name", h.DeleteContact)

	system := api.Group("/system")
	system.POST("/volume", h.Body(entities.ActionVolume))
	system.POST("/brightness", h.Body(entities.ActionBrightness))
	system.POST("/theme", h.Body(entities.ActionTheme))

	communication := api.Group("/communication")
	communication.POST("/call", h.Body(entities.ActionCall))
	communication.POST("/sms", h.Body(entities.ActionSMS))
}

func (s *Server) setupMetrics() {
	m := s.deps.Metrics

	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			m.ObserveRequest(c.Request().Method, path, status, time.Since(start))

			return err
		}
	})

	s.echo.GET("/metrics", echo.WrapHandler(m.Handler()))
}

func isProbe(path string) bool {
	return path == "/health" || path == "/health/detailed" || path == "/ready" || path == "/metrics"
}

func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": s.config.App.Name,
		"version": s.config.App.Version,
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	status := "healthy"
	checks := make(map[string]interface{})

	if err := s.checkPhonebook(); err != nil {
		status = "unhealthy"
		checks["phonebook"] = map[string]interface{}{
			"status": "error",
			"path":   s.config.Phonebook.File,
			"error":  err.Error(),
		}
	} else {
		checks["phonebook"] = map[string]interface{}{
			"status": "ok",
			"path":   s.config.Phonebook.File,
		}
	}

	if s.deps.Device != nil {
		device := map[string]interface{}{
			"status":   "ok",
			"platform": s.deps.Device.PlatformName(),
			"dry_run":  s.config.System.DryRun,
		}
		if !s.deps.Device.Supported() {
			status = "unhealthy"
			device["status"] = "unsupported"
		}
		checks["device"] = device
	}

	response := map[string]interface{}{
		"status":  status,
		"service": s.config.App.Name,
		"time":    time.Now().UTC().Format(time.RFC3339),
		"checks":  checks,
		"version": s.config.App.Version,
	}

	if status == "healthy" {
		return c.JSON(http.StatusOK, response)
	}
	return c.JSON(http.StatusServiceUnavailable, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	if err := s.checkPhonebook(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "phonebook_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// checkPhonebook reports whether the phonebook file can be opened
func (s *Server) checkPhonebook() error {
	f, err := s.deps.Fs.Open(s.config.Phonebook.File)
	if err != nil {
		return err
	}
	return f.Close()
}

// Start starts the HTTP server
func (s *Server) Start() error {
	address := s.config.Server.Address()
	s.logger.Infow("Starting server", "address", address)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// customErrorHandler renders router and middleware errors as result envelopes
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		message := http.StatusText(code)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			switch code {
			case http.StatusNotFound:
				message = "endpoint not found"
			case http.StatusMethodNotAllowed:
				message = "method not allowed"
			default:
				message = fmt.Sprint(he.Message)
			}
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		}

		if code >= http.StatusInternalServerError {
			logger.Errorw("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		if c.Response().Committed {
			return
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, entities.Failed(entities.FailureInternal, message))
		}
		if err != nil {
			logger.Errorw("Error sending response", "error", err)
		}
	}
}
