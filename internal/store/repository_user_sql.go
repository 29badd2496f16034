package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/horrygame/ficarchive/internal/logger"
	"github.com/horrygame/ficarchive/models"
)

// sqlUserRepository is the SQLite-backed implementation of [UserRepository].
// Uniqueness of usernames and Telegram chat ids is enforced by UNIQUE
// constraints; violations are mapped to the repository sentinels.
type sqlUserRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSQLUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewSQLUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating sql user repository")
	return &sqlUserRepository{
		db:     db,
		logger: logger,
	}
}

func (r *sqlUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertUserQuery(user, nullableChatID(user.TelegramChatID))
	if err != nil {
		log.Err(err).Str("func", "*sqlUserRepository.CreateUser").Msg("error building query")
		return models.User{}, fmt.Errorf("error building insert user query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*sqlUserRepository.CreateUser").Msg("error executing insert")

		if mapped := uniqueViolationError(err); mapped != nil {
			return models.User{}, mapped
		}
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

func (r *sqlUserRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	query, args, err := buildSelectUserByUsernameQuery(username)
	if err != nil {
		return models.User{}, fmt.Errorf("error building select user query: %w", err)
	}

	return r.scanUser(ctx, query, args)
}

func (r *sqlUserRepository) FindUserByChatID(ctx context.Context, chatID string) (models.User, error) {
	query, args, err := buildSelectUserByChatIDQuery(chatID)
	if err != nil {
		return models.User{}, fmt.Errorf("error building select user query: %w", err)
	}

	return r.scanUser(ctx, query, args)
}

func (r *sqlUserRepository) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateUserQuery(user, nullableChatID(user.TelegramChatID))
	if err != nil {
		log.Err(err).Str("func", "*sqlUserRepository.UpdateUser").Msg("error building query")
		return models.User{}, fmt.Errorf("error building update user query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*sqlUserRepository.UpdateUser").Msg("error executing update")

		if mapped := uniqueViolationError(err); mapped != nil {
			return models.User{}, mapped
		}
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return models.User{}, ErrNoUserWasFound
	}

	return user, nil
}

func (r *sqlUserRepository) scanUser(ctx context.Context, query string, args []any) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	var chatID sql.NullString

	row := r.db.QueryRowContext(ctx, query, args...)
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &chatID, &user.IsAdmin, &user.CreatedAt, &user.LastLoginAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*sqlUserRepository.scanUser").Msg("error: scanning error")
		return models.User{}, err
	}

	if chatID.Valid {
		user.TelegramChatID = chatID.String
	}

	return user, nil
}

// nullableChatID maps an unbound (empty) chat id to NULL so that the
// UNIQUE constraint only applies to actual bindings.
func nullableChatID(chatID string) any {
	if chatID == "" {
		return nil
	}
	return chatID
}
