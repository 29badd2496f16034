package service

import "errors"

var (
	// ErrValidation is returned for malformed caller input. The wrapped
	// message names the offending field.
	ErrValidation = errors.New("invalid data provided")

	// ErrInvalidCredentials deliberately does not distinguish "no such
	// user" from "wrong password": the ambiguity prevents username
	// enumeration and must be preserved.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrNoPendingVerification is returned when a one-time code is
	// supplied but no entry is outstanding for the user (never issued,
	// already consumed, or swept).
	ErrNoPendingVerification = errors.New("no pending verification for user")

	// ErrCodeExpired is returned when the pending one-time code is past
	// its window. The stale entry is removed as a side effect.
	ErrCodeExpired = errors.New("one-time code is expired")

	// ErrInvalidCode is returned when the supplied code does not exactly
	// match the pending one. The entry stays outstanding.
	ErrInvalidCode = errors.New("invalid one-time code")

	// ErrCodeDeliveryFailed is returned when the notification channel
	// fails to deliver a freshly issued secret. This is a hard error:
	// there is no silent fallback to passwordless login.
	ErrCodeDeliveryFailed = errors.New("one-time code delivery failed")

	// ErrNoChannelBound is returned by the password-reset request when
	// the account has no notification channel; this system has no email
	// fallback, recovery is manual in that case.
	ErrNoChannelBound = errors.New("no notification channel bound")

	// ErrResetTokenInvalid is returned when a reset token is unknown or
	// already used.
	ErrResetTokenInvalid = errors.New("reset token is invalid or already used")

	// ErrResetTokenExpired is returned when a reset token is past its
	// window; the stale entry is removed.
	ErrResetTokenExpired = errors.New("reset token is expired")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrInvalidFicStatus is returned when moderation is attempted with
	// a status outside the pending/approved/rejected/deleted vocabulary.
	ErrInvalidFicStatus = errors.New("invalid fic status")
)
