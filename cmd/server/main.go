package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	webAdapter "smart-erp/internal/adapters/web"
	"smart-erp/internal/app"
	"smart-erp/internal/config"
	"smart-erp/internal/logger"
	"smart-erp/internal/persist"
	"smart-erp/internal/store"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "", "Path to a TOML config file")
	flag.Parse()

	bootLog := logger.WithComponent("server")
	cfg, err := config.Load(*configPath)
	if err != nil {
		bootLog.Fatal().Err(err).Msg("config")
	}
	if err := logger.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		bootLog.Fatal().Err(err).Msg("logger")
	}
	log := logger.WithComponent("server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ps, err := persist.Open(ctx, cfg.Storage.Driver, cfg.Storage.DSN)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("storage")
	}
	defer ps.Close()

	st := store.New()
	st.Subscribe(func(c store.Change) { webAdapter.CountMutation(c.Collection, c.Action) })

	svc := app.NewService(st, ps)
	if err := svc.LoadState(ctx); err != nil {
		log.Fatal().Err(err).Msg("load state")
	}
	svc.EnableAutosave(context.Background())

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           webAdapter.NewHandler(svc, allowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Str("driver", cfg.Storage.Driver).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
