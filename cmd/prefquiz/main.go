package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/prefquiz/prefquiz/internal/auth"
	"github.com/prefquiz/prefquiz/internal/cli"
	"github.com/prefquiz/prefquiz/internal/config"
	"github.com/prefquiz/prefquiz/internal/db"
	"github.com/prefquiz/prefquiz/internal/logging"
	"github.com/prefquiz/prefquiz/internal/quiz"
)

func main() {
	cfg, err := config.FromFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	log := logging.New(cfg.LogFile)
	defer log.Sync()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	dbh, err := db.Open(ctx, db.Driver(cfg.Driver), cfg.DSN)
	cancel()
	if err != nil {
		log.Error("db open failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "cannot open database: %v\n", err)
		os.Exit(1)
	}
	defer dbh.Close()

	if err := db.SeedQuestions(context.Background(), dbh); err != nil {
		log.Error("seed failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "cannot seed questions: %v\n", err)
		os.Exit(1)
	}

	store := quiz.NewSQLStore(dbh)
	app := cli.New(cli.Options{
		In:          os.Stdin,
		Out:         os.Stdout,
		Auth:        auth.NewService(auth.NewSQLStore(dbh)),
		Store:       store,
		Repo:        quiz.NewRepository(store),
		Log:         log,
		MaxAttempts: cfg.MaxLoginAttempts,
	})

	if err := app.Run(context.Background()); err != nil {
		if errors.Is(err, cli.ErrAttemptsExhausted) {
			os.Exit(1)
		}
		log.Error("fatal", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
