package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"genboard/internal/infra"
	"genboard/internal/infra/credentials"
)

// Seeds or rotates the shared provider credential held by the owner principal.
func main() {
	provider := flag.String("provider", credentials.ProviderFal, "provider name")
	key := flag.String("key", "", "api key to store")
	flag.Parse()

	if *key == "" {
		fmt.Fprintln(os.Stderr, "usage: setcredential -key <api-key> [-provider fal]")
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg, err := infra.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := infra.NewLogger(cfg.AppEnv, "setcredential")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("db connection failed")
	}
	defer pool.Close()

	store := credentials.NewStore(infra.NewSQLRunner(pool, logger))
	if err := store.SetProviderKey(ctx, *provider, *key, nil); err != nil {
		logger.Fatal().Err(err).Msg("store credential failed")
	}
	logger.Info().Str("provider", *provider).Msg("credential stored")
}
