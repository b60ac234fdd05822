package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/boldenardo/astrotarot-hub-sub001/internal/config"
	"github.com/boldenardo/astrotarot-hub-sub001/internal/database"
	"github.com/boldenardo/astrotarot-hub-sub001/internal/logger"
	"github.com/boldenardo/astrotarot-hub-sub001/internal/server"
	"github.com/boldenardo/astrotarot-hub-sub001/internal/services"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New("astrotarot-api", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	svc := server.NewServices(cfg, db)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.NewRouter(cfg, log, db, svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go cleanupTokens(ctx, log, svc.Tokens)

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func cleanupTokens(ctx context.Context, log zerolog.Logger, tokens *services.TokenService) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := tokens.CleanupExpired(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("refresh token cleanup failed")
				continue
			}
			log.Debug().Int64("removed", removed).Msg("expired refresh tokens removed")
		}
	}
}
