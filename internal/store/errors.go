package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameAlreadyExists is returned when an attempt to register a new
	// user fails because a user with the same username already exists.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least one
	// user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrChatIDAlreadyBound is returned when a mutation would bind a Telegram
	// chat id that another user already holds. At most one user may hold a
	// given chat id at a time.
	ErrChatIDAlreadyBound = errors.New("telegram chat id already bound to another user")

	// ErrFicNotFound is returned when a query or update targets a fic that
	// does not exist in the store.
	ErrFicNotFound = errors.New("fic was not found")

	// ErrPersistFailed is returned (wrapped around the underlying I/O error)
	// when rewriting a collection file or executing a DML statement fails.
	// The in-memory state of the file backend may already reflect the
	// attempted change at that point; there is no two-phase guarantee.
	ErrPersistFailed = errors.New("failed to persist collection")
)
