package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/horrygame/ficarchive/internal/logger"
	"github.com/horrygame/ficarchive/models"
)

// sqlFicRepository is the SQLite-backed implementation of [FicRepository].
// Chapters are stored as a JSON-encoded text column.
type sqlFicRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSQLFicRepository constructs a [FicRepository] backed by the provided
// database connection and logger.
func NewSQLFicRepository(db *DB, logger *logger.Logger) FicRepository {
	logger.Debug().Msg("creating sql fic repository")
	return &sqlFicRepository{
		db:     db,
		logger: logger,
	}
}

func (r *sqlFicRepository) CreateFic(ctx context.Context, fic models.Fic) (models.Fic, error) {
	log := logger.FromContext(ctx)

	chapters, err := encodeChapters(fic.Chapters)
	if err != nil {
		return models.Fic{}, err
	}

	query, args, err := buildInsertFicQuery(fic, chapters)
	if err != nil {
		log.Err(err).Str("func", "*sqlFicRepository.CreateFic").Msg("error building query")
		return models.Fic{}, fmt.Errorf("error building insert fic query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*sqlFicRepository.CreateFic").Msg("error executing insert")
		return models.Fic{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return fic, nil
}

func (r *sqlFicRepository) FindFicByID(ctx context.Context, id string) (models.Fic, error) {
	query, args, err := buildSelectFicByIDQuery(id)
	if err != nil {
		return models.Fic{}, fmt.Errorf("error building select fic query: %w", err)
	}

	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, query, args...)
	fic, err := scanFic(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Fic{}, ErrFicNotFound
		}
		log.Err(err).Str("func", "*sqlFicRepository.FindFicByID").Msg("error: scanning error")
		return models.Fic{}, err
	}

	return fic, nil
}

func (r *sqlFicRepository) ListFicsByStatus(ctx context.Context, status string) ([]models.Fic, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectFicsByStatusQuery(status)
	if err != nil {
		return nil, fmt.Errorf("error building select fics query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*sqlFicRepository.ListFicsByStatus").Msg("error executing query")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	fics := make([]models.Fic, 0)
	for rows.Next() {
		fic, err := scanFic(rows.Scan)
		if err != nil {
			log.Err(err).Str("func", "*sqlFicRepository.ListFicsByStatus").Msg("error: scanning error")
			return nil, err
		}
		fics = append(fics, fic)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return fics, nil
}

func (r *sqlFicRepository) UpdateFic(ctx context.Context, fic models.Fic) (models.Fic, error) {
	log := logger.FromContext(ctx)

	chapters, err := encodeChapters(fic.Chapters)
	if err != nil {
		return models.Fic{}, err
	}

	query, args, err := buildUpdateFicQuery(fic, chapters)
	if err != nil {
		log.Err(err).Str("func", "*sqlFicRepository.UpdateFic").Msg("error building query")
		return models.Fic{}, fmt.Errorf("error building update fic query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*sqlFicRepository.UpdateFic").Msg("error executing update")
		return models.Fic{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return models.Fic{}, fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return models.Fic{}, ErrFicNotFound
	}

	return fic, nil
}

func (r *sqlFicRepository) DeleteFic(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteFicQuery(id)
	if err != nil {
		return fmt.Errorf("error building delete fic query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*sqlFicRepository.DeleteFic").Msg("error executing delete")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrFicNotFound
	}

	return nil
}

func encodeChapters(chapters []models.Chapter) (string, error) {
	data, err := json.Marshal(chapters)
	if err != nil {
		return "", fmt.Errorf("error encoding chapters: %w", err)
	}
	return string(data), nil
}

// scanFic reads one fic row in ficColumns order via the given scan
// function (works for both *sql.Row and *sql.Rows).
func scanFic(scan func(dest ...any) error) (models.Fic, error) {
	var fic models.Fic
	var chapters string

	err := scan(&fic.ID, &fic.Title, &fic.Summary, &chapters, &fic.SubmittedBy, &fic.Status, &fic.Mark, &fic.AgeRating, &fic.CreatedAt, &fic.UpdatedAt)
	if err != nil {
		return models.Fic{}, err
	}

	if err := json.Unmarshal([]byte(chapters), &fic.Chapters); err != nil {
		return models.Fic{}, fmt.Errorf("error decoding chapters: %w", err)
	}

	return fic, nil
}
