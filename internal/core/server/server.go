package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clearance-tracker/internal/core/config"
	"clearance-tracker/internal/core/logger"

	"github.com/gofiber/contrib/fiberzap/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"

	_ "clearance-tracker/docs/swagger"
)

// RayIDHeader carries the per-request identifier echoed in error bodies.
const RayIDHeader = "X-Ray-ID"

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds the Fiber application and configuration.
type Server struct {
	// App is the main Fiber application instance.
	App *fiber.App
	// cfg holds the application configuration.
	cfg *config.AppConfig
}

// New creates a new Server instance with configured middleware.
func New(cfg *config.AppConfig) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		AppName:               "clearance-tracker",
		ErrorHandler:          errorHandler,
	})

	app.Use(requestid.New(requestid.Config{
		Header: RayIDHeader,
	}))

	app.Use(fiberzap.New(fiberzap.Config{
		Logger: logger.Get(),
		Fields: []string{"status", "method", "url", "latency", "requestId"},
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)

	return &Server{
		App: app,
		cfg: cfg,
	}
}

// Admin returns the /admin route group guarded by the configured credential.
func (s *Server) Admin() fiber.Router {
	return s.App.Group("/admin", basicauth.New(basicauth.Config{
		Users: map[string]string{
			s.cfg.Admin.Username: s.cfg.Admin.Password,
		},
		Realm: "clearance-admin",
		Unauthorized: func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="clearance-admin"`)
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorBody{
				Message: "unauthorized",
				RayID:   RayID(c),
			})
		},
	}))
}

// RegisterHealth mounts GET /healthz, answering 503 when p cannot be reached.
func (s *Server) RegisterHealth(p Pinger) {
	s.App.Get("/healthz", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		if err := p.Ping(ctx); err != nil {
			logger.Get().Warn("Health check failed", zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.ServerPort)
	logger.Get().Info("Starting server", zap.String("address", addr))
	return s.App.Listen(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests up to timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	return s.App.ShutdownWithTimeout(timeout)
}

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// RayID returns the request id assigned by the requestid middleware.
func RayID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return c.GetRespHeader(RayIDHeader)
}

// errorHandler renders errors that escaped the handlers, such as unknown routes.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	} else {
		logger.Get().Error("Unhandled error", zap.Error(err), zap.String("path", c.Path()))
	}

	return c.Status(code).JSON(ErrorBody{Message: msg, RayID: RayID(c)})
}
