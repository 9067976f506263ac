// Command drawdash serves the housing draw dashboard: it loads the estimate
// document once at startup, derives the display metrics, and exposes both
// over a JSON API until shut down.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Ammaar-Alam/draw-calculator/internal/config"
	"github.com/Ammaar-Alam/draw-calculator/internal/loader"
	"github.com/Ammaar-Alam/draw-calculator/internal/logger"
	"github.com/Ammaar-Alam/draw-calculator/internal/server"
	"github.com/Ammaar-Alam/draw-calculator/internal/session"
	"github.com/Ammaar-Alam/draw-calculator/internal/storage"
	"github.com/Ammaar-Alam/draw-calculator/internal/telegram"
)

var configPath = flag.String("config", "configs/config.yaml", "Path to configuration file")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("Configuration loaded from %s", *configPath)

	store, err := storage.New(cfg.Storage.DBPath)
	if err != nil {
		logger.Fatal("Failed to open history storage: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close storage: %v", err)
		}
	}()

	var telegramClient *telegram.Client
	if cfg.Telegram.Enabled {
		telegramClient, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			logger.Fatal("Failed to initialize Telegram client: %v", err)
		}
		logger.Info("Telegram notifications enabled")
	} else {
		logger.Debug("Telegram notifications disabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, cleaning up...")
		cancel()
	}()

	sess := session.New()
	snapLoader := loader.New(cfg.Snapshot.Source, cfg.Snapshot.Timeout)

	// The one-shot load for this session. Resolution is what moves the
	// dashboard out of its loading state; everything after (history record,
	// notification) is best-effort.
	go func() {
		snap, loadErr := snapLoader.Load(ctx)
		sess.Resolve(snap, loadErr)

		errMsg := ""
		if loadErr != nil {
			errMsg = loadErr.Message
			logger.Error("Snapshot load failed, serving defaults: %s", errMsg)
		} else {
			logger.Info("Snapshot loaded for %s (final position estimate %d, probability %d%%)",
				snap.UserName, snap.FinalPositionEstimate, snap.ProbabilitySingle)
		}

		if _, err := store.RecordResult(ctx, cfg.Snapshot.Source, snap, errMsg); err != nil {
			logger.Warn("Failed to record load result: %v", err)
		}

		if telegramClient != nil {
			st := sess.State()
			var sendErr error
			if loadErr != nil {
				sendErr = telegramClient.SendLoadError(errMsg)
			} else {
				sendErr = telegramClient.SendResult(st.Snapshot, st.Metrics)
			}
			if sendErr != nil {
				logger.Warn("Failed to send Telegram notification: %v", sendErr)
			}
		}
	}()

	srv := &http.Server{
		Addr:    cfg.Server.ListenAddr,
		Handler: server.New(sess, store, cfg.Storage.HistoryLimit).Handler(),
	}

	go func() {
		logger.Info("Dashboard listening on %s (snapshot source: %s)", cfg.Server.ListenAddr, cfg.Snapshot.Source)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shut down HTTP server: %v", err)
	}
	logger.Info("Service stopped")
}
