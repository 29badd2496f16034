package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/horrygame/ficarchive/internal/logger"
	"github.com/horrygame/ficarchive/models"
)

// fileFicRepository is the JSON-file-backed implementation of
// [FicRepository]. Same whole-file rewrite semantics and locking
// contract as the user repository.
type fileFicRepository struct {
	path   string
	logger *logger.Logger

	mu   sync.Mutex
	fics []models.Fic
}

// NewFileFicRepository constructs a [FicRepository] backed by the JSON
// file at path. A missing file is treated as an empty collection.
func NewFileFicRepository(path string, logger *logger.Logger) (FicRepository, error) {
	logger.Debug().Str("path", path).Msg("creating file fic repository")

	repo := &fileFicRepository{path: path, logger: logger}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return repo, nil
		}
		return nil, fmt.Errorf("error reading fics file: %w", err)
	}

	if err := json.Unmarshal(data, &repo.fics); err != nil {
		return nil, fmt.Errorf("error decoding fics file: %w", err)
	}

	return repo, nil
}

func (r *fileFicRepository) CreateFic(ctx context.Context, fic models.Fic) (models.Fic, error) {
	log := logger.FromContext(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.fics = append(r.fics, fic)

	if err := r.persistLocked(); err != nil {
		log.Err(err).Str("fic_id", fic.ID).Msg("error persisting fics after create")
		return models.Fic{}, err
	}

	return fic, nil
}

func (r *fileFicRepository) FindFicByID(ctx context.Context, id string) (models.Fic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, fic := range r.fics {
		if fic.ID == id {
			return fic, nil
		}
	}

	return models.Fic{}, ErrFicNotFound
}

func (r *fileFicRepository) ListFicsByStatus(ctx context.Context, status string) ([]models.Fic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]models.Fic, 0)
	for _, fic := range r.fics {
		if fic.Status == status {
			result = append(result, fic)
		}
	}

	return result, nil
}

func (r *fileFicRepository) UpdateFic(ctx context.Context, fic models.Fic) (models.Fic, error) {
	log := logger.FromContext(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.fics {
		if existing.ID == fic.ID {
			fic.CreatedAt = existing.CreatedAt
			r.fics[i] = fic

			if err := r.persistLocked(); err != nil {
				log.Err(err).Str("fic_id", fic.ID).Msg("error persisting fics after update")
				return models.Fic{}, err
			}
			return fic, nil
		}
	}

	return models.Fic{}, ErrFicNotFound
}

func (r *fileFicRepository) DeleteFic(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.fics {
		if existing.ID == id {
			r.fics = append(r.fics[:i], r.fics[i+1:]...)

			if err := r.persistLocked(); err != nil {
				log.Err(err).Str("fic_id", id).Msg("error persisting fics after delete")
				return err
			}
			return nil
		}
	}

	return ErrFicNotFound
}

// Flush implements [Flusher] by rewriting the collection file from the
// current in-memory state.
func (r *fileFicRepository) Flush(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.persistLocked()
}

// persistLocked rewrites the whole collection file. Callers must hold r.mu.
func (r *fileFicRepository) persistLocked() error {
	data, err := json.MarshalIndent(r.fics, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistFailed, err)
	}

	if err := os.WriteFile(r.path, data, 0600); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistFailed, err)
	}

	return nil
}
