// Package server boots the application and runs the HTTP listener
// with graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/putrawardana/warungsaji/app/jobs"
	"github.com/putrawardana/warungsaji/app/models"
	"github.com/putrawardana/warungsaji/config"
	"github.com/putrawardana/warungsaji/internal/kernel"
	"github.com/putrawardana/warungsaji/pkg/cache"
	"github.com/putrawardana/warungsaji/pkg/database"
	"github.com/putrawardana/warungsaji/pkg/logger"
	"github.com/putrawardana/warungsaji/pkg/queue"
	"github.com/putrawardana/warungsaji/pkg/schedule"
	"github.com/putrawardana/warungsaji/pkg/storage"
)

const queueWorkers = 4

// Start boots every subsystem and serves HTTP until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if uri := config.MongoLogURI(); uri != "" {
		if sink, err := logger.EnableMongoSink(uri, config.MongoLogDatabase(), config.MongoLogCollection()); err != nil {
			logger.Warn("boot: mongo log sink disabled", "error", err)
		} else {
			defer sink.Close()
		}
	}

	if err := database.Connect(); err != nil {
		return err
	}
	if err := autoMigrate(); err != nil {
		return err
	}

	// Redis is optional: without it the cache no-ops and sessions fall
	// back to cookie-only IDs, which the in-memory cart store tolerates.
	if err := cache.Connect(); err != nil {
		logger.Warn("boot: redis unavailable, continuing without cache", "error", err)
	}

	storage.Connect()

	if config.QueueDriver() == "redis" && cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	queue.UseDB(database.DB)
	jobs.Register()

	k, err := kernel.New()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go k.Hub.Run()
	queue.StartWorkers(ctx, queueWorkers)

	schedule.Every(10).Minutes().Name("cart:purge").Run(func() {
		if n := k.Carts.PurgeExpired(); n > 0 {
			logger.Info("carts purged", "count", n)
		}
	})
	go schedule.Start(ctx)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           k.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown: http server", "error", err)
	}
	k.Tracker.Close()
	return nil
}

// autoMigrate keeps the schema in sync at boot. The migration CLI
// covers explicit upgrades; this covers fresh databases and dev.
func autoMigrate() error {
	return database.DB.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.CartAddEvent{},
		&models.PageView{},
		&models.MenuItemView{},
		&models.MenuItemOrderStat{},
		&models.TableUsage{},
	)
}
