package http_handler

import (
	"context"

	"github.com/anthanhphan/go-media-transfer/internal/uploader/port"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes the batch state and process metrics while an upload runs.
type Server struct {
	app     *fiber.App
	addr    string
	service port.UploadService
}

func NewServer(addr string, service port.UploadService) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(recover.New())

	s := &Server{
		app:     app,
		addr:    addr,
		service: service,
	}

	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.app.Get("/healthz", s.handleHealth)
	s.app.Get("/state", s.handleState)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

func (s *Server) Start() error {
	return s.app.Listen(s.addr)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.SendString("ok")
}

// handleState returns the aggregate state polled by UI layers.
func (s *Server) handleState(c *fiber.Ctx) error {
	return c.JSON(s.service.Snapshot())
}
