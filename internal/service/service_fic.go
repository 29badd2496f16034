package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/horrygame/ficarchive/internal/logger"
	"github.com/horrygame/ficarchive/internal/store"
	"github.com/horrygame/ficarchive/internal/utils"
	"github.com/horrygame/ficarchive/models"
)

type ficService struct {
	ficRepository store.FicRepository
	uuidGenerator *utils.UUIDGenerator
	logger        *logger.Logger
	now           func() time.Time

	// orderMu guards order, the cached shuffled id sequence served by
	// ApprovedFics. Refreshed by the background reshuffle job so the
	// front page stays stable between refreshes instead of reshuffling
	// on every request.
	orderMu sync.Mutex
	order   []string
}

func NewFicService(storages *store.Storages, logger *logger.Logger) FicService {
	return &ficService{
		ficRepository: storages.FicRepository,
		uuidGenerator: utils.NewUUIDGenerator(),
		logger:        logger,
		now:           time.Now,
	}
}

// SubmitFic stores a new fic in the moderation queue. The status is
// forced to pending regardless of what the caller sent.
func (s *ficService) SubmitFic(ctx context.Context, author string, submit models.SubmitFicRequest) (models.Fic, error) {
	if strings.TrimSpace(submit.Title) == "" {
		return models.Fic{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if len(submit.Chapters) == 0 {
		return models.Fic{}, fmt.Errorf("%w: at least one chapter is required", ErrValidation)
	}
	for i, chapter := range submit.Chapters {
		if strings.TrimSpace(chapter.Text) == "" {
			return models.Fic{}, fmt.Errorf("%w: chapter %d has no text", ErrValidation, i+1)
		}
	}

	now := s.now()
	fic := models.Fic{
		ID:          s.uuidGenerator.Generate(),
		Title:       submit.Title,
		Summary:     submit.Summary,
		Chapters:    submit.Chapters,
		SubmittedBy: author,
		Status:      models.FicStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.ficRepository.CreateFic(ctx, fic)
	if err != nil {
		return models.Fic{}, fmt.Errorf("error creating fic: %w", err)
	}

	s.logger.Info().Str("fic_id", created.ID).Str("author", author).Msg("fic submitted for moderation")
	return created, nil
}

// ApprovedFics returns the published catalogue in the cached shuffled
// order. Fics approved since the last reshuffle are appended at the end;
// ids of fics that have since been removed are skipped.
func (s *ficService) ApprovedFics(ctx context.Context) ([]models.Fic, error) {
	fics, err := s.ficRepository.ListFicsByStatus(ctx, models.FicStatusApproved)
	if err != nil {
		return nil, fmt.Errorf("error listing approved fics: %w", err)
	}

	s.orderMu.Lock()
	order := s.order
	s.orderMu.Unlock()

	if len(order) == 0 {
		if err := s.Reshuffle(ctx); err != nil {
			return nil, err
		}
		s.orderMu.Lock()
		order = s.order
		s.orderMu.Unlock()
	}

	byID := make(map[string]models.Fic, len(fics))
	for _, fic := range fics {
		byID[fic.ID] = fic
	}

	ordered := make([]models.Fic, 0, len(fics))
	for _, id := range order {
		if fic, ok := byID[id]; ok {
			ordered = append(ordered, fic)
			delete(byID, id)
		}
	}
	for _, fic := range fics {
		if _, ok := byID[fic.ID]; ok {
			ordered = append(ordered, fic)
		}
	}

	return ordered, nil
}

// SearchFics returns approved fics whose title contains the query,
// case-insensitively. An empty query matches everything.
func (s *ficService) SearchFics(ctx context.Context, query string) ([]models.Fic, error) {
	fics, err := s.ficRepository.ListFicsByStatus(ctx, models.FicStatusApproved)
	if err != nil {
		return nil, fmt.Errorf("error listing approved fics: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return fics, nil
	}

	matched := make([]models.Fic, 0, len(fics))
	for _, fic := range fics {
		if strings.Contains(strings.ToLower(fic.Title), needle) {
			matched = append(matched, fic)
		}
	}

	return matched, nil
}

// PendingFics returns the moderation queue.
func (s *ficService) PendingFics(ctx context.Context) ([]models.Fic, error) {
	fics, err := s.ficRepository.ListFicsByStatus(ctx, models.FicStatusPending)
	if err != nil {
		return nil, fmt.Errorf("error listing pending fics: %w", err)
	}
	return fics, nil
}

// ModerateStatus moves a fic to the given status. The "deleted" status is
// a removal command: the fic is erased rather than kept in a tombstone
// state.
func (s *ficService) ModerateStatus(ctx context.Context, ficID string, status string) error {
	if !models.IsValidFicStatus(status) {
		return fmt.Errorf("%w: %q", ErrInvalidFicStatus, status)
	}

	if status == models.FicStatusDeleted {
		if err := s.ficRepository.DeleteFic(ctx, ficID); err != nil {
			return fmt.Errorf("error deleting fic: %w", err)
		}
		s.logger.Info().Str("fic_id", ficID).Msg("fic deleted by moderator")
		return nil
	}

	fic, err := s.ficRepository.FindFicByID(ctx, ficID)
	if err != nil {
		if errors.Is(err, store.ErrFicNotFound) {
			return err
		}
		return fmt.Errorf("error finding fic: %w", err)
	}

	fic.Status = status
	fic.UpdatedAt = s.now()
	if _, err := s.ficRepository.UpdateFic(ctx, fic); err != nil {
		return fmt.Errorf("error updating fic status: %w", err)
	}

	s.logger.Info().Str("fic_id", ficID).Str("status", status).Msg("fic status updated")
	return nil
}

// SetMark assigns the moderator's mark.
func (s *ficService) SetMark(ctx context.Context, ficID string, mark string) error {
	return s.updateFic(ctx, ficID, func(fic *models.Fic) {
		fic.Mark = mark
	})
}

// SetAgeRating assigns the age rating label.
func (s *ficService) SetAgeRating(ctx context.Context, ficID string, ageRating string) error {
	return s.updateFic(ctx, ficID, func(fic *models.Fic) {
		fic.AgeRating = ageRating
	})
}

func (s *ficService) updateFic(ctx context.Context, ficID string, mutate func(*models.Fic)) error {
	fic, err := s.ficRepository.FindFicByID(ctx, ficID)
	if err != nil {
		if errors.Is(err, store.ErrFicNotFound) {
			return err
		}
		return fmt.Errorf("error finding fic: %w", err)
	}

	mutate(&fic)
	if _, err := s.ficRepository.UpdateFic(ctx, fic); err != nil {
		return fmt.Errorf("error updating fic: %w", err)
	}
	return nil
}

// Reshuffle recomputes the cached random order of the approved catalogue.
// Called periodically by the background job and lazily on first use.
func (s *ficService) Reshuffle(ctx context.Context) error {
	fics, err := s.ficRepository.ListFicsByStatus(ctx, models.FicStatusApproved)
	if err != nil {
		return fmt.Errorf("error listing approved fics: %w", err)
	}

	order := make([]string, len(fics))
	for i, fic := range fics {
		order[i] = fic.ID
	}
	rand.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	s.orderMu.Lock()
	s.order = order
	s.orderMu.Unlock()

	s.logger.Debug().Int("count", len(order)).Msg("recommendation order reshuffled")
	return nil
}
