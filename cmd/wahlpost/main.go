package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"wahlpost/internal/api"
	"wahlpost/pkg/boundary"
	"wahlpost/pkg/config"
	"wahlpost/pkg/db"
	"wahlpost/pkg/geocode"
	"wahlpost/pkg/logging"
	"wahlpost/pkg/resolve"
	"wahlpost/pkg/store"
	"wahlpost/pkg/wahlkreis"
)

var (
	configPath = flag.String("config", "configs/wahlpost.yaml", "Path to config file")
	initConfig = flag.Bool("init-config", false, "Generate default config file and exit")
)

func main() {
	flag.Parse()

	if *initConfig {
		if err := config.GenerateDefault(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config file generated: %s\n", *configPath)
		return
	}

	if err := run(context.Background(), *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Application failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Optional local overrides; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cleanupLogs, err := logging.Init(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer cleanupLogs()

	slog.Info("Wahlpost resolver starting", "address", cfg.Server.Address)

	dbConn, err := db.Init(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("failed to init db: %w", err)
	}
	st := store.NewSQLiteStore(dbConn)
	defer st.Close()

	// One limiter per process: all geocoder users share the outbound budget.
	limiter := geocode.NewLimiter(time.Duration(cfg.Geocoder.MinInterval))
	geocoder := geocode.New(&cfg.Geocoder, st, limiter)

	repo := boundary.NewRepository()
	locator, err := wahlkreis.NewLocator(repo, &cfg.Boundaries)
	if err != nil {
		return fmt.Errorf("failed to load boundary datasets: %w", err)
	}

	resolver := resolve.New(geocoder, locator, st)

	server := api.NewServer(cfg.Server.Address, api.NewResolveHandler(resolver))

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
