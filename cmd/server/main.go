package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Wyydra/calling/internal/adapter/driven/gateway/ws"
	"github.com/Wyydra/calling/internal/adapter/driven/metrics/prometheus"
	repo "github.com/Wyydra/calling/internal/adapter/driven/persistence/memory"
	rooms "github.com/Wyydra/calling/internal/adapter/driven/rooms/memory"
	"github.com/Wyydra/calling/internal/adapter/driven/sampleserver"
	handler "github.com/Wyydra/calling/internal/adapter/driving/http"
	"github.com/Wyydra/calling/internal/core/port"
	"github.com/Wyydra/calling/internal/core/service"
	"github.com/Wyydra/calling/internal/platform/config"
	"github.com/Wyydra/calling/internal/platform/logging"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("info", "console")
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	l := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	l.Info().Str("app", cfg.AppTitle).Msg("ACS sample calling app starting")

	sessions := repo.NewSessionRepository()
	hub := ws.NewHub()
	metrics := prometheus.NewRecorder()

	issuer := sampleserver.NewClient(cfg.TokenServiceURL, cfg.RequestTimeout)

	var (
		provisioner port.RoomProvisioner
		membership  port.RoomMembership
	)
	if cfg.RoomsInMemory() {
		l.Warn().Msg("ROOM_SERVICE_URL not set, rooms are kept in memory")
		registry := rooms.NewRoomRegistry()
		provisioner, membership = registry, registry
	} else {
		roomClient := sampleserver.NewClient(cfg.RoomServiceURL, cfg.RequestTimeout)
		provisioner, membership = roomClient, roomClient
	}

	callService := service.NewCallService(provisioner, membership, metrics)
	sessionService := service.NewSessionService(sessions, issuer, callService, hub, metrics, cfg.RequestTimeout, cfg.AppTitle)
	h := handler.NewHandler(sessionService, hub, metrics.Handler(), cfg.StaticDir)

	go hub.Run()

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	go sessionService.RunJanitor(janitorCtx, cfg.SessionTTL, time.Minute)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h.NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		l.Info().Str("addr", cfg.Addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	l.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		l.Error().Err(err).Msg("Server forced to shutdown")
	}

	stopJanitor()
	sessionService.Close()
	hub.Stop()
	l.Info().Msg("Server exited")
}
