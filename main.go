package main

import (
	"flag"
	"log/slog"

	"gramlite/ai/sim"
	"gramlite/internal/config"
	"gramlite/internal/conversation"
	"gramlite/internal/http-server/api"
	"gramlite/internal/lib/logger"
	"gramlite/internal/lib/sl"
	"gramlite/internal/storage"
	"gramlite/internal/ws"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	lg.Info("starting gramlite", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	store := conversation.New(lg)

	db, err := storage.Open(conf.Storage.Path, lg)
	if err != nil {
		lg.With(
			sl.Err(err),
		).Error("storage open, continuing without persistence")
	}
	if db != nil {
		defer db.Close()
		store.SetStorage(db)
		lg.With(
			slog.String("path", conf.Storage.Path),
		).Info("storage initialized")
	}

	simulator := sim.New(conf, lg)
	store.SetReplier(simulator)
	lg.With(
		slog.Int("min_delay_ms", conf.Reply.MinDelayMs),
		slog.Int("max_delay_ms", conf.Reply.MaxDelayMs),
	).Info("reply simulator initialized")

	hub := ws.NewHub(lg)
	hub.SetHandler(store)
	hub.SetSnapshotProvider(store)
	store.SetListener(hub)
	go hub.Run()

	store.Init(conf.Seed.Enabled)

	// *** blocking start with http server ***
	err = api.New(conf, lg, store, hub)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Error("service stopped")
}
