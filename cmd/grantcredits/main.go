package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"genboard/internal/infra"
	"genboard/internal/sqlinline"
)

// Tops up a user's credit balance. This is an operator tool; the service
// itself only ever debits through the settlement path.
func main() {
	userID := flag.String("user", "", "user id to credit")
	amount := flag.Int("amount", 0, "credits to add")
	flag.Parse()

	if *userID == "" || *amount <= 0 {
		fmt.Fprintln(os.Stderr, "usage: grantcredits -user <uuid> -amount <n>")
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg, err := infra.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := infra.NewLogger(cfg.AppEnv, "grantcredits")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("db connection failed")
	}
	defer pool.Close()

	runner := infra.NewSQLRunner(pool, logger)
	row := runner.QueryRow(ctx, sqlinline.QGrantCredits, *userID, *amount)
	var balance int
	if err := row.Scan(&balance); err != nil {
		if infra.IsNoRows(err) {
			logger.Fatal().Str("user_id", *userID).Msg("user not found")
		}
		logger.Fatal().Err(err).Msg("grant failed")
	}
	logger.Info().Str("user_id", *userID).Int("balance", balance).Msg("credits granted")
}
