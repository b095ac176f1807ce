package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/you/go-mestre-flights/internal/config"
	"github.com/you/go-mestre-flights/internal/httpx"
	"github.com/you/go-mestre-flights/internal/observability"
	"github.com/you/go-mestre-flights/internal/providers"
	"github.com/you/go-mestre-flights/internal/service"
)

func main() {
	cfg := config.Load()

	logger := observability.NewLogger(cfg.AppEnv)
	zlog.Logger = logger

	observability.Serve(cfg.MetricsAddr)

	plan, err := service.PlanFromConfig(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid search plan")
	}

	amadeus := providers.NewAmadeus(cfg)
	hist := service.NewHistoryService(50)
	searchSvc := service.NewSearchService(amadeus, plan, cfg.PaceInterval, hist, logger)

	// WriteTimeout stays 0: a full grid scan holds /search open for the
	// duration of destinations x dates x pacing.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpx.NewRouter(cfg, logger, searchSvc, hist),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      0,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}
