package store

import (
	"context"

	"github.com/horrygame/ficarchive/models"
)

// UserRepository is the credential store of the archive. Implementations
// must enforce username uniqueness and the at-most-one-owner invariant of
// Telegram chat ids.
type UserRepository interface {
	// CreateUser persists a new user and returns the stored record.
	// Returns ErrUsernameAlreadyExists or ErrChatIDAlreadyBound on
	// uniqueness violations; no partial write happens in that case.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByUsername returns the user with the given (case-sensitive)
	// username, or ErrNoUserWasFound.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)

	// FindUserByChatID returns the user holding the given Telegram chat
	// id, or ErrNoUserWasFound.
	FindUserByChatID(ctx context.Context, chatID string) (models.User, error)

	// UpdateUser replaces the stored record matching user.ID. Username
	// and ID are immutable; implementations ignore attempts to change
	// them. Returns ErrNoUserWasFound or ErrChatIDAlreadyBound.
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
}

// FicRepository stores submitted stories across their moderation lifecycle.
type FicRepository interface {
	CreateFic(ctx context.Context, fic models.Fic) (models.Fic, error)
	FindFicByID(ctx context.Context, id string) (models.Fic, error)
	ListFicsByStatus(ctx context.Context, status string) ([]models.Fic, error)
	UpdateFic(ctx context.Context, fic models.Fic) (models.Fic, error)
	DeleteFic(ctx context.Context, id string) error
}

// Flusher is implemented by backends that buffer state in memory and can
// rewrite their durable representation on demand. The server performs a
// best-effort Flush on shutdown.
type Flusher interface {
	Flush(ctx context.Context) error
}
