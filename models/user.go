package models

import "time"

// User represents a registered account of the fan-fiction archive.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the unique identifier of the user, assigned at creation
	// and immutable afterwards (UUIDv7).
	ID string `json:"id"`

	// Username is the unique login identifier, 3-20 characters,
	// case-sensitive, immutable after creation.
	Username string `json:"username"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never exposed via JSON and never stored in plaintext.
	PasswordHash string `json:"-"`

	// TelegramChatID is the optional Telegram chat bound to the account
	// for one-time-code delivery. Empty when no channel is bound.
	// At most one user may hold a given chat id at a time.
	TelegramChatID string `json:"-"`

	// IsAdmin marks moderator accounts. Derived once at creation from
	// the configured admin username and immutable afterwards.
	IsAdmin bool `json:"is_admin"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`

	// LastLoginAt is updated on every successful full authentication.
	LastLoginAt time.Time `json:"last_login_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// PublicView returns the sanitized representation of the user that is
// safe to return to API callers: no password hash, no raw chat id, only
// a flag telling whether a notification channel is bound.
func (u User) PublicView() UserView {
	return UserView{
		ID:            u.ID,
		Username:      u.Username,
		IsAdmin:       u.IsAdmin,
		TelegramBound: u.TelegramChatID != "",
		CreatedAt:     u.CreatedAt,
	}
}

// UserView is the caller-facing projection of a User.
type UserView struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	IsAdmin       bool      `json:"is_admin"`
	TelegramBound bool      `json:"telegram_bound"`
	CreatedAt     time.Time `json:"created_at"`
}
