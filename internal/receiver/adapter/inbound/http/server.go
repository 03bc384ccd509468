package http_handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/anthanhphan/go-media-transfer/internal/receiver/domain"
	"github.com/anthanhphan/go-media-transfer/internal/receiver/port"
	"github.com/anthanhphan/go-media-transfer/pkg/resilience"
	sdklogger "github.com/anthanhphan/gosdk/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// multipartOverhead covers form fields and boundaries around one part.
	multipartOverhead = 64 * 1024
	maxFieldSize      = 1024
)

// Options configures the receiver HTTP surface.
type Options struct {
	Addr        string
	MaxPartSize int64
	// MediaRoot, when set, is served read-only under /media.
	MediaRoot  string
	RequestLog bool
}

type Server struct {
	app     *fiber.App
	opts    Options
	service port.ReceiverService
}

func NewServer(opts Options, service port.ReceiverService) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:             int(opts.MaxPartSize) + multipartOverhead,
		StreamRequestBody:     true,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	if opts.RequestLog {
		app.Use(fiberlogger.New())
	}

	s := &Server{
		app:     app,
		opts:    opts,
		service: service,
	}

	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.app.Get("/healthz", s.handleHealth)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	uploads := s.app.Group("/api/uploads")
	uploads.Post("/chunk", s.handleChunk)
	uploads.Post("/finalize", s.handleFinalize)

	if s.opts.MediaRoot != "" {
		s.app.Static("/media", s.opts.MediaRoot, fiber.Static{
			ByteRange: true,
			Browse:    false,
		})
	}
}

func (s *Server) Start() error {
	return s.app.Listen(s.opts.Addr)
}

// Handler exposes the routes as a net/http handler.
func (s *Server) Handler() http.HandlerFunc {
	return adaptor.FiberApp(s.app)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) sendJSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// sendServiceError maps receiver errors onto HTTP status codes.
func (s *Server) sendServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrPartTooLarge):
		return s.sendJSONError(c, fiber.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, domain.ErrMissingParts), errors.Is(err, domain.ErrSizeMismatch):
		return s.sendJSONError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrInvalidChecksum):
		return s.sendJSONError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, resilience.ErrCircuitOpen):
		var openErr *resilience.CircuitOpenError
		if errors.As(err, &openErr) {
			retry := int(math.Ceil(openErr.RetryAfter.Seconds()))
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(max(retry, 1)))
		}
		return s.sendJSONError(c, fiber.StatusServiceUnavailable, "storage backend unavailable")
	default:
		return s.sendJSONError(c, fiber.StatusInternalServerError, "internal error")
	}
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.SendString("ok")
}

// handleChunk streams the "chunk" file part straight into the service.
// Form fields must precede the file part.
func (s *Server) handleChunk(c *fiber.Ctx) error {
	contentType := c.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Content-Type must be multipart/form-data")
	}

	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Invalid Content-Type")
	}
	boundary, ok := params["boundary"]
	if !ok {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Missing boundary in Content-Type")
	}

	bodyStream := c.Context().RequestBodyStream()
	if bodyStream == nil {
		bodyStream = bytes.NewReader(c.Body())
	}
	mr := multipart.NewReader(bodyStream, boundary)

	fields := make(map[string]string)
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return s.sendJSONError(c, fiber.StatusBadRequest, "Missing 'chunk' part")
		}
		if err != nil {
			return s.sendJSONError(c, fiber.StatusBadRequest, fmt.Sprintf("Failed to read multipart: %v", err))
		}

		if part.FormName() == "chunk" {
			return s.receive(c, fields, part)
		}

		value, err := io.ReadAll(io.LimitReader(part, maxFieldSize+1))
		_ = part.Close()
		if err != nil || len(value) > maxFieldSize {
			return s.sendJSONError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid form field %q", part.FormName()))
		}
		fields[part.FormName()] = string(value)
	}
}

func (s *Server) receive(c *fiber.Ctx, fields map[string]string, payload io.Reader) error {
	part, err := parsePart(fields)
	if err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, err.Error())
	}

	size, err := s.service.ReceivePart(c.UserContext(), part, payload)
	if err != nil {
		if !domain.IsClientError(err) {
			sdklogger.Errorw("Chunk receive failed", "upload_id", part.UploadID, "part_number", part.PartNumber, "error", err.Error())
		}
		return s.sendServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"uploadId":   part.UploadID,
		"partNumber": part.PartNumber,
		"size":       size,
	})
}

func parsePart(fields map[string]string) (domain.Part, error) {
	part := domain.Part{UploadID: fields["uploadId"]}
	if part.UploadID == "" {
		return part, errors.New("missing 'uploadId' field")
	}

	n, err := strconv.Atoi(fields["partNumber"])
	if err != nil {
		return part, errors.New("invalid 'partNumber' field")
	}
	part.PartNumber = n

	if v, ok := fields["totalParts"]; ok && v != "" {
		total, err := strconv.Atoi(v)
		if err != nil {
			return part, errors.New("invalid 'totalParts' field")
		}
		part.TotalParts = total
	}

	if v, ok := fields["checksum"]; ok && v != "" {
		sum, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return part, errors.New("invalid 'checksum' field")
		}
		part.Checksum = uint32(sum)
		part.HasChecksum = true
	}
	return part, nil
}

func (s *Server) handleFinalize(c *fiber.Ctx) error {
	var req domain.AssembleRequest
	if err := c.BodyParser(&req); err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Invalid JSON body")
	}

	publicURL, err := s.service.Assemble(c.UserContext(), req)
	if err != nil {
		if !domain.IsClientError(err) {
			sdklogger.Errorw("Finalize failed", "upload_id", req.UploadID, "file_name", req.FileName, "error", err.Error())
		} else {
			sdklogger.Warnw("Finalize rejected", "upload_id", req.UploadID, "error", err.Error())
		}
		return s.sendServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"publicUrl": publicURL,
	})
}
