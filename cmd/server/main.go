package main

import (
	"context"
	"fmt"

	"github.com/horrygame/ficarchive/internal/config"
	handlerhttp "github.com/horrygame/ficarchive/internal/handler/http"
	"github.com/horrygame/ficarchive/internal/logger"
	"github.com/horrygame/ficarchive/internal/notify"
	"github.com/horrygame/ficarchive/internal/server"
	"github.com/horrygame/ficarchive/internal/service"
	"github.com/horrygame/ficarchive/internal/store"
	"github.com/horrygame/ficarchive/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("ficarchive-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	var notifier notify.Notifier = notify.NewNopNotifier()
	telegramNotifier, err := notify.NewTelegramNotifier(cfg.Telegram, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating telegram notifier")
	}
	if telegramNotifier != nil {
		notifier = telegramNotifier
		// answers /start messages with the chat id users need for binding
		go telegramNotifier.RunUpdates(ctx)
	}

	services := service.NewServices(storages, notifier, cfg, log)
	handler := handlerhttp.NewHandler(services, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	jobs := workers.NewWorkers(
		workers.NewSweepJob(storages.CodeRegistry, storages.ResetRegistry, cfg.Workers.SweepInterval, log),
		workers.NewShuffleJob(services.FicService, cfg.Workers.ShuffleInterval, log),
		workers.NewKeepAliveJob(cfg.Workers.KeepAliveURL, cfg.Workers.KeepAliveInterval, log),
	)
	jobs.StartAll(ctx)

	srv.RunServer()

	jobs.StopAll()
	cancel()

	if err := storages.Flush(context.Background()); err != nil {
		log.Error().Err(err).Msg("error flushing storages on shutdown")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
