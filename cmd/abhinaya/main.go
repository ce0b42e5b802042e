package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/ayusman/abhinaya/internal/app"
	"github.com/ayusman/abhinaya/internal/capture"
	"github.com/ayusman/abhinaya/internal/detector"
	"github.com/ayusman/abhinaya/internal/display"
	"github.com/ayusman/abhinaya/internal/overlay"
	"github.com/ayusman/abhinaya/internal/server"
	"github.com/ayusman/abhinaya/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "abhinaya: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	zl, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer zl.Sync()
	logger := zl.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The session ledger is optional; capture runs without it.
	st, err := openStore()
	if err != nil {
		logger.Warnw("session ledger unavailable", "error", err)
	} else {
		defer st.Close()
	}

	det, err := detector.NewMediaPipeDetector(detector.DefaultConfig())
	if err != nil {
		return fmt.Errorf("create detector: %w", err)
	}

	hub := server.NewHub(logger.Named("hub"))
	srv := server.New(server.Config{Store: st, Hub: hub, Logger: logger.Named("server")})
	go func() {
		if err := srv.ListenAndServe(ctx, server.DefaultAddr); err != nil {
			logger.Warnw("preview server stopped", "error", err)
		}
	}()

	camConfig := capture.DefaultConfig()
	config := app.DefaultConfig()
	config.CameraID = camConfig.DeviceID
	config.Store = st
	config.Publisher = hub
	config.Logger = logger.Named("app")

	a := app.New(config,
		capture.NewCamera(camConfig),
		det,
		overlay.New(overlay.DefaultStyles()),
		display.NewWindow(display.DefaultTitle),
	)

	summary, err := a.Run(ctx)
	if err != nil {
		return err
	}

	logger.Infow("done", "frames", summary.Counts.Frames, "reason", summary.ExitReason)
	return nil
}

// openStore opens the session ledger at ~/.abhinaya/sessions.db.
func openStore() (*store.Store, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("get home directory: %w", err)
	}

	dbDir := filepath.Join(homeDir, ".abhinaya")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	return store.New(filepath.Join(dbDir, "sessions.db"))
}
