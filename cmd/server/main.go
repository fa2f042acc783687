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

	"github.com/joho/godotenv"

	"github.com/cocoa-pos/api/internal/config"
	"github.com/cocoa-pos/api/internal/menu"
	"github.com/cocoa-pos/api/internal/router"
	"github.com/cocoa-pos/api/internal/service"
	"github.com/cocoa-pos/api/internal/ws"
	"github.com/cocoa-pos/api/pkg/logging"
)

func main() {
	godotenv.Load()
	logging.Setup()

	cfg := config.Load()

	catalog, err := loadCatalog(cfg)
	if err != nil {
		slog.Error("failed to load menu", "error", err)
		os.Exit(1)
	}

	hub := ws.NewHub()
	go hub.Run()

	pub := ws.NewPublisher(hub)
	floor := service.NewFloor(service.Config{
		Catalog:        catalog,
		Roster:         service.DefaultRoster(),
		ServePolicy:    cfg.ServePolicy,
		AttentionDelay: cfg.AttentionDelay,
		Notifier:       pub,
	})
	pub.Bind(floor)

	r := router.New(cfg, catalog, floor, hub, pub)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

func loadCatalog(cfg *config.Config) (*menu.Catalog, error) {
	if cfg.MenuPath != "" {
		return menu.LoadFile(cfg.MenuPath)
	}
	return menu.Default()
}
