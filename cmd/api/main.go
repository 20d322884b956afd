package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"genboard/internal/adapter/repo"
	"genboard/internal/generation"
	"genboard/internal/http/handlers"
	httpapi "genboard/internal/http/httpapi"
	"genboard/internal/infra"
	"genboard/internal/infra/credentials"
	"genboard/internal/infra/geoip"
	"genboard/internal/middleware"
	"genboard/internal/providers/fal"
	"genboard/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, "api")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("api: db connection failed")
	}
	defer pool.Close()

	runner := infra.NewSQLRunner(pool, logger)
	credStore := credentials.NewStore(runner)
	contents := repo.NewContentRepository(runner)
	ledger := repo.NewLedgerRepository(runner)

	falClient, err := fal.NewClient(fal.Options{
		BaseURL:    cfg.FalBaseURL,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
		Logger:     &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("api: failed to configure provider client")
	}

	storagePath := cfg.StoragePath
	if !filepath.IsAbs(storagePath) {
		if abs, err := filepath.Abs(storagePath); err == nil {
			storagePath = abs
		}
	}
	fileStore, err := storage.NewFileStore(storagePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("api: failed to configure storage")
	}

	orchestrator := generation.New(generation.Options{
		Contents:       contents,
		Ledger:         ledger,
		Credentials:    credStore,
		Queue:          falClient,
		Journal:        storage.NewReconciliationJournal(fileStore),
		Logger:         logger,
		PollInterval:   cfg.PollInterval,
		PollAttempts:   cfg.PollAttempts,
		APIKeyOverride: cfg.FalAPIKey,
		BaseContext:    ctx,
	})

	var countryLookup middleware.CountryLookup
	geoResolver, err := geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("api: geoip disabled")
	} else if geoResolver != nil {
		defer geoResolver.Close()
		countryLookup = geoResolver.CountryCode
	}

	app := &handlers.App{
		SQL:          runner,
		Logger:       logger,
		Config:       cfg,
		Orchestrator: orchestrator,
		Contents:     contents,
		Ledger:       ledger,
		Credentials:  credStore,
		Validate:     validator.New(),
	}

	server := infra.NewHTTPServer(cfg, httpapi.NewRouter(app, countryLookup))

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}

	// In-flight pollers observe the cancelled base context and exit; any
	// GENERATING rows they leave behind are picked up by the recovery sweep.
	orchestrator.Wait()
	logger.Info().Msg("server stopped")
}
