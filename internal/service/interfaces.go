// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"

	"github.com/horrygame/ficarchive/models"
)

// LoginResult is the outcome of a password check. When the account has a
// bound notification channel, the first call answers with
// RequireSecondFactor=true and a one-time code is already on its way; the
// caller must repeat the request with the code to obtain the user.
type LoginResult struct {
	RequireSecondFactor bool
	User                models.User
}

// AuthService covers registration, the two-step login state machine,
// token handling, channel binding and password recovery.
type AuthService interface {
	Register(ctx context.Context, register models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, login models.LoginRequest) (LoginResult, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	BindTelegram(ctx context.Context, username string, chatID string) (models.User, error)
	RequestPasswordReset(ctx context.Context, username string) error
	ResetPassword(ctx context.Context, resetToken string, newPassword string) error
}

// FicService covers submission, the public catalogue and moderation.
type FicService interface {
	SubmitFic(ctx context.Context, author string, submit models.SubmitFicRequest) (models.Fic, error)
	ApprovedFics(ctx context.Context) ([]models.Fic, error)
	SearchFics(ctx context.Context, query string) ([]models.Fic, error)
	PendingFics(ctx context.Context) ([]models.Fic, error)
	ModerateStatus(ctx context.Context, ficID string, status string) error
	SetMark(ctx context.Context, ficID string, mark string) error
	SetAgeRating(ctx context.Context, ficID string, ageRating string) error
	Reshuffle(ctx context.Context) error
}
