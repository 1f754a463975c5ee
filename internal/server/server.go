// Package server exposes the recruiter workflow over HTTP.
package server

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/autohire/internal/hiring"
	"github.com/spigell/autohire/internal/recruiter"
)

const (
	DefaultAddress      = ":5000"
	DefaultBodyLimit    = 16 << 20
	DefaultReadTimeout  = 30 * time.Second
	DefaultWriteTimeout = 2 * time.Minute

	shutdownTimeout = 10 * time.Second
)

// Config holds the listener settings.
type Config struct {
	Address      string        `mapstructure:"address"`
	BodyLimit    int           `mapstructure:"body-limit"`
	ReadTimeout  time.Duration `mapstructure:"read-timeout"`
	WriteTimeout time.Duration `mapstructure:"write-timeout"`
	AllowOrigins string        `mapstructure:"allow-origins"`
}

// Recruiter is the workflow served by the API.
type Recruiter interface {
	ProcessJobDescription(ctx context.Context, data []byte, filename string) (recruiter.JobDescriptionReport, error)
	ProcessCV(ctx context.Context, data []byte, filename string, jd hiring.JobDescription) (recruiter.CVReport, error)
	ScheduleInterviews(ctx context.Context, req recruiter.ScheduleRequest) (recruiter.ScheduleReport, error)
}

type Server struct {
	app         *fiber.App
	cfg         Config
	recruiter   Recruiter
	aiAvailable func() bool
	logger      *zap.Logger
}

// Option customises a Server.
type Option func(*Server)

func WithLogger(l *zap.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithAIStatus reports AI backend availability on the health endpoint.
func WithAIStatus(available func() bool) Option {
	return func(s *Server) { s.aiAvailable = available }
}

func New(r Recruiter, cfg Config, opts ...Option) *Server {
	if cfg.Address == "" {
		cfg.Address = DefaultAddress
	}
	if cfg.BodyLimit <= 0 {
		cfg.BodyLimit = DefaultBodyLimit
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.AllowOrigins == "" {
		cfg.AllowOrigins = "*"
	}

	s := &Server{cfg: cfg, recruiter: r}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "autohire",
		BodyLimit:             cfg.BodyLimit,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})

	s.app.Use(recover.New())
	s.app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	s.app.Use(s.accessLog)
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	api := s.app.Group("/api")
	api.Get("/", s.handleIndex)
	api.Get("/health", s.handleHealth)
	api.Post("/process-job-description", s.handleProcessJobDescription)
	api.Post("/process-cv", s.handleProcessCV)
	api.Post("/schedule-interviews", s.handleScheduleInterviews)

	return s
}

// App returns the underlying fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("address", s.cfg.Address))
		errCh <- s.app.Listen(s.cfg.Address)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down http server")
		if err := s.app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			return err
		}
		return <-errCh
	}
}

func (s *Server) accessLog(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	// Errors are rendered after the chain returns, so the status is taken from err here.
	status := c.Response().StatusCode()
	if err != nil {
		status = fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
	}

	s.logger.Info("http request",
		zap.String("request_id", requestID(c)),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", status),
		zap.Duration("latency", time.Since(start)),
	)
	return err
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	if code >= fiber.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("request_id", requestID(c)), zap.Error(err))
	}

	return c.Status(code).JSON(fiber.Map{
		"message": err.Error(),
		"code":    code,
	})
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
	return id
}
