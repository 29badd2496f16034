package store

import (
	"context"
	"fmt"

	"github.com/horrygame/ficarchive/internal/config"
	"github.com/horrygame/ficarchive/internal/logger"
)

// Storages aggregates every persistence component the services depend on.
// The durable repositories share one backend, selected by configuration:
// a non-empty DSN picks the embedded SQLite database, otherwise the JSON
// collection files are used. The registries are always in-memory.
type Storages struct {
	UserRepository UserRepository
	FicRepository  FicRepository

	CodeRegistry  *CodeRegistry
	ResetRegistry *ResetRegistry

	db *DB
}

// NewStorages builds the configured storage backend and the in-memory
// registries.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	storages := &Storages{
		CodeRegistry:  NewCodeRegistry(),
		ResetRegistry: NewResetRegistry(),
	}

	if cfg.DB.DSN != "" {
		db, err := NewConnectSQLite(ctx, cfg.DB, log)
		if err != nil {
			return nil, fmt.Errorf("error connecting to database: %w", err)
		}

		storages.db = db
		storages.UserRepository = NewSQLUserRepository(db, log)
		storages.FicRepository = NewSQLFicRepository(db, log)
		return storages, nil
	}

	userRepository, err := NewFileUserRepository(cfg.Files.UsersFile, log)
	if err != nil {
		return nil, fmt.Errorf("error creating file user repository: %w", err)
	}

	ficRepository, err := NewFileFicRepository(cfg.Files.FicsFile, log)
	if err != nil {
		return nil, fmt.Errorf("error creating file fic repository: %w", err)
	}

	storages.UserRepository = userRepository
	storages.FicRepository = ficRepository
	return storages, nil
}

// Flush performs a best-effort final persistence pass over every backend
// that buffers state in memory. Called on shutdown.
func (s *Storages) Flush(ctx context.Context) error {
	var errs []error

	if flusher, ok := s.UserRepository.(Flusher); ok {
		if err := flusher.Flush(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if flusher, ok := s.FicRepository.(Flusher); ok {
		if err := flusher.Flush(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("error flushing storages: %v", errs)
	}
	return nil
}

// Close releases the database connection when the SQL backend is active.
func (s *Storages) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
