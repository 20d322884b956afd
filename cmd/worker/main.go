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

	"github.com/joho/godotenv"

	"genboard/internal/adapter/repo"
	"genboard/internal/domain"
	"genboard/internal/generation"
	"genboard/internal/infra"
	"genboard/internal/infra/credentials"
	"genboard/internal/providers/fal"
	"genboard/internal/sqlinline"
	"genboard/internal/storage"
)

// The sweep wakes on this cadence when no orphaned work is found.
const sweepIdleInterval = 10 * time.Second

type sweeper struct {
	ctx          context.Context
	runner       *infra.SQLRunner
	contents     domain.ContentRepository
	orchestrator *generation.Orchestrator
	logger       infra.Logger
	staleAfter   time.Duration
}

var errNoOrphan = errors.New("no orphaned content")

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, "worker")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: db connection failed")
	}
	defer pool.Close()

	runner := infra.NewSQLRunner(pool, logger)
	contents := repo.NewContentRepository(runner)
	ledger := repo.NewLedgerRepository(runner)
	credStore := credentials.NewStore(runner)

	falClient, err := fal.NewClient(fal.Options{
		BaseURL:    cfg.FalBaseURL,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
		Logger:     &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: failed to configure provider client")
	}

	storagePath := cfg.StoragePath
	if !filepath.IsAbs(storagePath) {
		if abs, err := filepath.Abs(storagePath); err == nil {
			storagePath = abs
		}
	}
	fileStore, err := storage.NewFileStore(storagePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: failed to configure storage")
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

	s := &sweeper{
		ctx:          ctx,
		runner:       runner,
		contents:     contents,
		orchestrator: orchestrator,
		logger:       logger,
		staleAfter:   cfg.SweepStaleAfter,
	}

	if err := s.Run(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("worker: stopped with error")
	}
	logger.Info().Msg("worker: stopped")
}

// Run loops forever, resuming one orphaned polling session at a time. Polling
// is synchronous so a claimed row is owned until it reaches a terminal state
// or the process shuts down.
func (s *sweeper) Run() error {
	s.logger.Info().Msg("worker: recovery sweep started")
	for {
		select {
		case <-s.ctx.Done():
			return s.ctx.Err()
		default:
		}

		contentID, err := s.claim()
		if err != nil {
			if errors.Is(err, errNoOrphan) {
				s.sleep(sweepIdleInterval)
				continue
			}
			s.logger.Error().Err(err).Msg("worker: claim failed")
			s.sleep(sweepIdleInterval)
			continue
		}

		s.resume(contentID)
	}
}

func (s *sweeper) claim() (string, error) {
	row := s.runner.QueryRow(s.ctx, sqlinline.QClaimOrphanedContent, int(s.staleAfter.Seconds()))
	var id string
	if err := row.Scan(&id); err != nil {
		if infra.IsNoRows(err) {
			return "", errNoOrphan
		}
		return "", err
	}
	return id, nil
}

func (s *sweeper) resume(contentID string) {
	content, err := s.contents.GetByID(s.ctx, contentID)
	if err != nil {
		s.logger.Error().Err(err).Str("content_id", contentID).Msg("worker: load claimed content failed")
		return
	}
	if content.Status != domain.ContentStatusGenerating {
		return
	}
	s.logger.Info().
		Str("content_id", content.ID).
		Str("request_id", content.ProviderRequestID).
		Msg("worker: resuming orphaned polling session")
	if err := s.orchestrator.Resume(s.ctx, content); err != nil {
		s.logger.Error().Err(err).Str("content_id", content.ID).Msg("worker: resume failed")
	}
}

func (s *sweeper) sleep(d time.Duration) {
	select {
	case <-s.ctx.Done():
	case <-time.After(d):
	}
}
