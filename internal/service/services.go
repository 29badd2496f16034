package service

import (
	"github.com/horrygame/ficarchive/internal/config"
	"github.com/horrygame/ficarchive/internal/logger"
	"github.com/horrygame/ficarchive/internal/notify"
	"github.com/horrygame/ficarchive/internal/store"
)

// Services aggregates the application services consumed by the HTTP
// handlers and the background workers.
type Services struct {
	AuthService AuthService
	FicService  FicService

	// Version is the application version reported by the version endpoint.
	Version string
}

func NewServices(storages *store.Storages, notifier notify.Notifier, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService: NewAuthService(storages, notifier, cfg.App, logger),
		FicService:  NewFicService(storages, logger),
		Version:     cfg.App.Version,
	}
}
