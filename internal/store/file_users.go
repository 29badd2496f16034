package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/horrygame/ficarchive/internal/logger"
	"github.com/horrygame/ficarchive/models"
)

// storedUser is the on-disk shape of a user record. The API model hides
// the password hash and the chat id from serialization, the collection
// file must carry both.
type storedUser struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	PasswordHash   string    `json:"password_hash"`
	TelegramChatID string    `json:"telegram_chat_id,omitempty"`
	IsAdmin        bool      `json:"is_admin"`
	CreatedAt      time.Time `json:"created_at"`
	LastLoginAt    time.Time `json:"last_login_at"`
}

func toStoredUser(u models.User) storedUser {
	return storedUser{
		ID:             u.ID,
		Username:       u.Username,
		PasswordHash:   u.PasswordHash,
		TelegramChatID: u.TelegramChatID,
		IsAdmin:        u.IsAdmin,
		CreatedAt:      u.CreatedAt,
		LastLoginAt:    u.LastLoginAt,
	}
}

func (s storedUser) toModel() models.User {
	return models.User{
		ID:             s.ID,
		Username:       s.Username,
		PasswordHash:   s.PasswordHash,
		TelegramChatID: s.TelegramChatID,
		IsAdmin:        s.IsAdmin,
		CreatedAt:      s.CreatedAt,
		LastLoginAt:    s.LastLoginAt,
	}
}

// fileUserRepository is the JSON-file-backed implementation of
// [UserRepository]. The whole collection is loaded at startup and the
// file is rewritten in full on every mutation.
//
// A mutex guards the complete read-modify-write-persist cycle: the
// original runtime relied on a single-threaded event loop for that
// atomicity, here it is an explicit contract.
type fileUserRepository struct {
	path   string
	logger *logger.Logger

	mu    sync.Mutex
	users []models.User
}

// NewFileUserRepository constructs a [UserRepository] backed by the JSON
// file at path. A missing file is treated as an empty collection; any
// other read or decode failure is returned as an error.
func NewFileUserRepository(path string, logger *logger.Logger) (UserRepository, error) {
	logger.Debug().Str("path", path).Msg("creating file user repository")

	repo := &fileUserRepository{path: path, logger: logger}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return repo, nil
		}
		return nil, fmt.Errorf("error reading users file: %w", err)
	}

	var stored []storedUser
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("error decoding users file: %w", err)
	}
	repo.users = make([]models.User, 0, len(stored))
	for _, s := range stored {
		repo.users = append(repo.users, s.toModel())
	}

	return repo, nil
}

func (r *fileUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Username == user.Username {
			return models.User{}, ErrUsernameAlreadyExists
		}
		if user.TelegramChatID != "" && existing.TelegramChatID == user.TelegramChatID {
			return models.User{}, ErrChatIDAlreadyBound
		}
	}

	r.users = append(r.users, user)

	if err := r.persistLocked(); err != nil {
		log.Err(err).Str("username", user.Username).Msg("error persisting users after create")
		return models.User{}, err
	}

	return user, nil
}

func (r *fileUserRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}

	return models.User{}, ErrNoUserWasFound
}

func (r *fileUserRepository) FindUserByChatID(ctx context.Context, chatID string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.TelegramChatID != "" && user.TelegramChatID == chatID {
			return user, nil
		}
	}

	return models.User{}, ErrNoUserWasFound
}

func (r *fileUserRepository) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, existing := range r.users {
		if existing.ID == user.ID {
			idx = i
			continue
		}
		if user.TelegramChatID != "" && existing.TelegramChatID == user.TelegramChatID {
			return models.User{}, ErrChatIDAlreadyBound
		}
	}
	if idx == -1 {
		return models.User{}, ErrNoUserWasFound
	}

	// ID and username are immutable
	user.ID = r.users[idx].ID
	user.Username = r.users[idx].Username
	r.users[idx] = user

	if err := r.persistLocked(); err != nil {
		log.Err(err).Str("username", user.Username).Msg("error persisting users after update")
		return models.User{}, err
	}

	return user, nil
}

// Flush implements [Flusher] by rewriting the collection file from the
// current in-memory state.
func (r *fileUserRepository) Flush(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.persistLocked()
}

// persistLocked rewrites the whole collection file. Callers must hold r.mu.
func (r *fileUserRepository) persistLocked() error {
	stored := make([]storedUser, 0, len(r.users))
	for _, u := range r.users {
		stored = append(stored, toStoredUser(u))
	}

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistFailed, err)
	}

	if err := os.WriteFile(r.path, data, 0600); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistFailed, err)
	}

	return nil
}
