package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"antipode/internal/config"
	"antipode/internal/geom"
	"antipode/internal/logger"
	"antipode/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(stdout, cfg.LogLevel, cfg.LogFormat)

	idx, err := geom.LoadCountries(cfg.DataPath)
	if err != nil {
		return fmt.Errorf("loading countries: %w", err)
	}
	log.Info("loaded countries", "path", cfg.DataPath, "count", idx.Len())

	srv := server.New(cfg.HTTPAddr, log, idx)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}
