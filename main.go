package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"journal/internal/config"
	"journal/internal/database"
	"journal/internal/handlers"
	"journal/internal/logging"
	"journal/internal/models"
	"journal/internal/repositories"
	"journal/internal/server"
	"journal/internal/services"
	"journal/internal/validation"
	"journal/pkg/rabbitmq"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogPretty); err != nil {
		fmt.Fprintf(os.Stderr, "logging error: %v\n", err)
		os.Exit(1)
	}
	log.Info().Stringer("config", cfg).Msg("configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server gracefully stopped")
}

// run serves until ctx is cancelled, then shuts down HTTP, the event client
// and the store, in that order.
func run(ctx context.Context, cfg *config.Config) error {
	app, cleanup, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.AppPort).Msg("starting server")
		if err := app.Listen(cfg.AppPort); err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server")
		return app.ShutdownWithTimeout(shutdownTimeout)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// newApp wires the store, the optional event client, repositories, services
// and handlers into a Fiber app. cleanup releases what newApp opened.
func newApp(ctx context.Context, cfg *config.Config) (*fiber.App, func(), error) {
	// --- Database ---
	store, err := database.Open(ctx, database.Config{
		Driver: cfg.DBDriver,
		DSN:    cfg.DatabaseDSN,
	})
	if err != nil {
		return nil, nil, err
	}
	if err := store.Migrate(&models.User{}, &models.Note{}); err != nil {
		store.Close()
		return nil, nil, err
	}

	// --- RabbitMQ (optional) ---
	var (
		mqClient  *rabbitmq.Client
		publisher services.EventPublisher
	)
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			store.Close()
			return nil, nil, err
		}
		publisher = mqClient
		// The consumer shares the queue with downstream subscribers, so it
		// only runs when asked for.
		if cfg.ConsumeEvents {
			if err := mqClient.ConsumeUserEvents(logUserEvent); err != nil {
				log.Warn().Err(err).Msg("failed to start user event consumer")
			}
		}
	} else {
		log.Info().Msg("RABBITMQ_URL not set, user events disabled")
	}

	cleanup := func() {
		if mqClient != nil {
			if err := mqClient.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close RabbitMQ client")
			}
		}
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}

	// --- Repositories and services ---
	userService := services.NewUserService(repositories.NewGORMUserRepository(store), publisher)
	noteService := services.NewNoteService(repositories.NewGORMNoteRepository(store))

	// --- HTTP ---
	validate := validation.New()
	app := server.New(server.Config{
		AllowedOrigins: cfg.AllowedOrigins,
		AccessLog:      cfg.AccessLog,
	}, store)
	handlers.NewUserHandler(userService, validate).RegisterRoutes(app)
	handlers.NewNoteHandler(noteService, validate).RegisterRoutes(app)

	return app, cleanup, nil
}

func logUserEvent(event rabbitmq.UserEvent) error {
	log.Info().
		Str("event", event.Event).
		Uint("user_id", event.UserID).
		Str("username", event.Username).
		Time("occurred_at", event.OccurredAt).
		Msg("user event received")
	return nil
}
