package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/poskit/pos-gateway/internal/cli"
	"github.com/poskit/pos-gateway/internal/observability"
	"github.com/poskit/pos-gateway/internal/recent"
	"github.com/poskit/pos-gateway/internal/relay"
)

func main() {
	gatewayURL := flag.String("gateway", envOr("POSCTL_GATEWAY", "http://localhost:3000"), "Gateway URL")
	dbPath := flag.String("db", envOr("POSCTL_DB", "posctl.db"), "Path to local database")
	debug := flag.Bool("debug", false, "Verbose logging")
	flag.Usage = func() { cli.PrintUsage(os.Stderr) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage(os.Stderr)
		os.Exit(1)
	}

	logger := observability.NewConsoleLogger(*debug)
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, *gatewayURL, *dbPath, args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, cli.ErrUsage) {
			cli.PrintUsage(os.Stderr)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *zap.Logger, gatewayURL, dbPath string, args []string) error {
	db, err := bbolt.Open(dbPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", zap.Error(err))
		}
	}()

	jar, err := cli.NewBoltJar(db, gatewayURL, logger)
	if err != nil {
		return err
	}
	relayClient, err := relay.NewClient(gatewayURL, relay.WithJar(jar), relay.WithLogger(logger))
	if err != nil {
		return err
	}
	recentRepo, err := recent.NewBoltRepository(db)
	if err != nil {
		return err
	}

	c := cli.New(cli.Deps{
		Relay:   relayClient,
		Session: jar,
		Recent:  recentRepo,
		Prompt:  cli.NewStdio(),
		Out:     os.Stdout,
		Logger:  logger,
	})
	return c.Run(ctx, args)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
