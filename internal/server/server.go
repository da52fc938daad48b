package server

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"journal/internal/middleware"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config holds the HTTP-level settings of the app.
type Config struct {
	AllowedOrigins []string
	// AccessLog enables one log line per request.
	AccessLog bool
}

const healthTimeout = 2 * time.Second

// New builds the Fiber app with its middleware, error handler and health
// check. Resource routes are registered by the caller.
func New(cfg Config, db Pinger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "journal",
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	if cfg.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${respHeader:X-Request-ID} ${status} - ${latency} ${method} ${path}\n",
			Output: log.Logger.With().Str("component", "http").Logger(),
		}))
	}
	app.Use(middleware.RequestLogger())
	app.Use(adaptor.HTTPMiddleware(cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{
			fiber.MethodGet,
			fiber.MethodPost,
			fiber.MethodPut,
			fiber.MethodPatch,
			fiber.MethodDelete,
		},
		AllowedHeaders: []string{"*"},
	}).Handler))

	app.Get("/health", health(db))

	return app
}

// ErrorHandler renders every error as {"detail": message}. Errors that are
// not *fiber.Error become a logged 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := fiber.ErrInternalServerError.Message

	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		code = ferr.Code
		message = ferr.Message
	}

	if code >= fiber.StatusInternalServerError {
		zerolog.Ctx(c.UserContext()).Error().
			Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("request failed")
	}

	return c.Status(code).JSON(fiber.Map{"detail": message})
}

func health(db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			zerolog.Ctx(c.UserContext()).Warn().Err(err).Msg("health check failed")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unhealthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}
