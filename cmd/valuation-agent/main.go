package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hammad983ae/sustaino-sub007/internal/client"
	"github.com/hammad983ae/sustaino-sub007/internal/config"
	"github.com/hammad983ae/sustaino-sub007/internal/events"
	"github.com/hammad983ae/sustaino-sub007/internal/store"
	"github.com/hammad983ae/sustaino-sub007/internal/workspace"
	"github.com/hammad983ae/sustaino-sub007/pkg/log"
)

// valuation-agent runs the workspace against a local store, keeping the
// current session and job autosave alive while syncing best-effort to the
// valuation service.
func main() {
	cfg, err := config.New()
	if err != nil {
		os.Exit(1)
	}

	logLvl, err := zap.ParseAtomicLevel(cfg.Service.LogLevel)
	if err != nil {
		logLvl = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	logger := log.InitLog(logLvl, cfg.Service.LogFormat)
	defer func() { _ = logger.Sync() }()
	undo := zap.ReplaceGlobals(logger)
	defer undo()

	zap.S().Info("Starting valuation agent")
	defer zap.S().Info("Valuation agent stopped")

	db, err := store.InitDB(cfg)
	if err != nil {
		zap.S().Fatalf("initializing data store: %v", err)
	}

	dataStore := store.NewStore(db)
	defer dataStore.Close()

	if err := dataStore.InitialMigration(); err != nil {
		zap.S().Fatalf("running initial migration: %v", err)
	}

	remote := client.NewRemote(cfg.Workspace.ServiceServer, cfg.Workspace.ServiceAuthToken)

	producer := events.NewEventProducer(&events.StdoutWriter{})
	defer func() { _ = producer.Close() }()

	jobs := workspace.NewJobManager(remote, dataStore.KV(), producer,
		workspace.WithJobNumberBase(cfg.Workspace.JobNumberBase),
		workspace.WithAutoSaveInterval(time.Duration(cfg.Workspace.AutoSaveSeconds)*time.Second),
	)
	manager := workspace.NewManager(dataStore.KV(), remote, jobs, producer,
		workspace.WithDebounceWindow(time.Duration(cfg.Workspace.DebounceMs)*time.Millisecond),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	data, degradation := manager.CurrentData(ctx)
	zap.S().Infow("workspace session loaded",
		"user_id", data.UserID,
		"demo", data.IsDemo,
		"degradation", string(degradation),
	)

	jobs.StartAutoSave(ctx)
	defer jobs.StopAutoSave()

	<-ctx.Done()
}
