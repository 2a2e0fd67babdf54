// Command server exposes the contacts collection at /api/users.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/contactapp/backend/internal/config"
	"github.com/contactapp/backend/internal/handler"
	"github.com/contactapp/backend/internal/logging"
	"github.com/contactapp/backend/internal/repository"
	"github.com/contactapp/backend/internal/service"
	"github.com/contactapp/backend/internal/storage"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	var (
		db          repository.DB
		contactRepo repository.ContactRepository
	)
	if cfg.DatabaseURL != "" {
		pool, err := repository.NewPool(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logging.Fatal("failed to connect to database", "error", err)
		}
		defer pool.Close()
		db = pool
		contactRepo = repository.NewPgContactRepository(pool)
	} else {
		// no database configured: keep contacts in memory
		mem := repository.NewMemContactRepository()
		db = mem
		contactRepo = mem
		slog.Warn("DATABASE_URL not set, using in-memory repository")
	}

	contactService := service.NewContactService(contactRepo)
	photoStore := storage.NewLocalStorage(cfg.UploadDir, "/uploads")

	rateLimiter := handler.NewRateLimiter(cfg.RateLimitPerMinute)
	stopCleanup := make(chan struct{})
	rateLimiter.StartCleanup(time.Minute, stopCleanup)
	defer close(stopCleanup)

	router := handler.NewRouter(handler.RouterConfig{
		Handler:     handler.New(db, cfg.FrontendURL),
		Contacts:    handler.NewContactHandler(contactService),
		Photos:      handler.NewPhotoHandler(photoStore),
		Metrics:     handler.NewMetrics(),
		RateLimiter: rateLimiter,
		UploadDir:   cfg.UploadDir,
	})

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
