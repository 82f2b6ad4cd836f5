package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gigflow/config"
	"gigflow/internal/app"
	"gigflow/internal/database"
	"gigflow/internal/notify"
	"gigflow/internal/server"
	"gigflow/internal/storage"
	"gigflow/internal/storage/memory"
	"gigflow/internal/storage/postgres"
	"gigflow/internal/telemetry"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

func newServeCmd(load func() (*config.Config, error), _, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if cfg.JWT.Secret == "" {
				fmt.Fprintln(stderr, "gigflow serve: jwt.secret (or JWT_SECRET) must be set") //nolint:errcheck // best-effort stderr
				return errExit
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			application, cleanup, err := buildApplication(ctx, cfg)
			if err != nil {
				fmt.Fprintf(stderr, "gigflow serve: %v\n", err) //nolint:errcheck // best-effort stderr
				return errExit
			}
			defer cleanup()

			return serve(ctx, cfg, server.NewServer(application))
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, srv *server.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return <-errCh
}

// buildApplication connects telemetry and the configured storage and
// notification drivers. cleanup closes them in reverse order; queued
// notifications are drained before telemetry is flushed.
func buildApplication(ctx context.Context, cfg *config.Config) (*app.Application, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	checks := map[string]func(context.Context) error{}

	shutdownTelemetry, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		ServiceName:    cfg.Telemetry.ServiceName,
		ExportInterval: cfg.Telemetry.ExportInterval,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("telemetry: %w", err)
	}
	closers = append(closers, func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(flushCtx); err != nil {
			log.Printf("Telemetry: error flushing providers: %v", err)
		}
	})

	var repos storage.Repositories
	switch cfg.Storage.Driver {
	case "memory":
		log.Println("Storage: using in-memory store (data is lost on restart)")
		repos = memory.New().Repositories()
	default:
		if cfg.DB.AutoMigrate {
			if err := database.MigrateUp(cfg.DB.DSN()); err != nil {
				cleanup()
				return nil, nil, fmt.Errorf("auto migrate: %w", err)
			}
		}
		pool, err := database.NewConnectionPool(ctx, cfg.DB)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, pool.Close)
		checks["database"] = pool.Ping
		repos = postgres.NewRepositories(pool)
	}

	dispatcher, subscriber, err := buildNotifier(ctx, cfg, checks)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	closers = append(closers, func() {
		if err := dispatcher.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
			log.Printf("Notify: error closing dispatcher: %v", err)
		}
	})

	application := app.New(cfg, repos, dispatcher, subscriber)
	application.HealthChecks = checks
	return application, cleanup, nil
}

func buildNotifier(ctx context.Context, cfg *config.Config, checks map[string]func(context.Context) error) (notify.Dispatcher, notify.Subscriber, error) {
	switch cfg.Notify.Driver {
	case "redis":
		client, err := database.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		rd := notify.NewRedisDispatcher(client, cfg.Notify.ChannelPrefix)
		return notify.NewAsync(rd, cfg.Notify.QueueSize), rd, nil
	case "memory":
		hub := notify.NewHub()
		return notify.NewAsync(hub, cfg.Notify.QueueSize), hub, nil
	case "log":
		return notify.NewAsync(notify.LogDispatcher{}, cfg.Notify.QueueSize), nil, nil
	default:
		return notify.Discard{}, nil, nil
	}
}
