// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/horrygame/ficarchive/internal/config"
	"github.com/horrygame/ficarchive/internal/logger"
	"github.com/horrygame/ficarchive/internal/notify"
	"github.com/horrygame/ficarchive/internal/store"
	"github.com/horrygame/ficarchive/internal/utils"
	"github.com/horrygame/ficarchive/models"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 20
)

type authService struct {
	userRepository store.UserRepository
	codes          *store.CodeRegistry
	resets         *store.ResetRegistry
	notifier       notify.Notifier
	uuidGenerator  *utils.UUIDGenerator
	cfg            config.App
	logger         *logger.Logger

	// now is replaceable in tests to exercise expiry windows.
	now func() time.Time
}

// NewAuthService wires the authentication workflow on top of the user
// repository, the in-memory registries and the notification channel.
func NewAuthService(storages *store.Storages, notifier notify.Notifier, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: storages.UserRepository,
		codes:          storages.CodeRegistry,
		resets:         storages.ResetRegistry,
		notifier:       notifier,
		uuidGenerator:  utils.NewUUIDGenerator(),
		cfg:            cfg,
		logger:         logger,
		now:            time.Now,
	}
}

// Register validates the credentials, hashes the password and creates the
// account. The account registered under the configured admin username is
// the moderator; every other account is unprivileged.
func (s *authService) Register(ctx context.Context, register models.RegisterRequest) (models.User, error) {
	if err := s.validateUsername(register.Username); err != nil {
		return models.User{}, err
	}
	if err := s.validatePassword(register.Password); err != nil {
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(register.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("error hashing password: %w", err)
	}

	now := s.now()
	user := models.User{
		ID:           s.uuidGenerator.Generate(),
		Username:     register.Username,
		PasswordHash: string(hash),
		IsAdmin:      register.Username == s.cfg.AdminUsername,
		CreatedAt:    now,
		LastLoginAt:  now,
	}

	created, err := s.userRepository.CreateUser(ctx, user)
	if err != nil {
		return models.User{}, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info().Str("username", created.Username).Bool("is_admin", created.IsAdmin).Msg("user registered")
	return created, nil
}

// Login runs the two-step authentication state machine.
//
// Step one checks the password. A failed lookup and a failed password
// compare collapse into the same ErrInvalidCredentials. When the account
// has a bound channel, a fresh one-time code is issued, delivered, and
// the caller is told to repeat the request with the code; when it has
// none, the password alone completes the login.
//
// Step two (Code non-empty) consumes the pending code: a match deletes
// the entry and completes the login, an expired entry is deleted and
// reported, a mismatch keeps the entry for another attempt.
func (s *authService) Login(ctx context.Context, login models.LoginRequest) (LoginResult, error) {
	user, err := s.checkPassword(ctx, login.Username, login.Password)
	if err != nil {
		return LoginResult{}, err
	}

	// a channel bound during this very request arms the second factor
	// for future logins only, so the decision uses the state the account
	// had when the request arrived
	hadChannel := user.TelegramChatID != ""
	if !hadChannel && login.TelegramChatID != "" {
		user = s.bindOpportunistically(ctx, user, login.TelegramChatID)
	}

	if hadChannel {
		if login.Code == "" {
			if err := s.issueOneTimeCode(ctx, user); err != nil {
				return LoginResult{}, err
			}
			return LoginResult{RequireSecondFactor: true}, nil
		}

		if err := s.consumeOneTimeCode(user.Username, login.Code); err != nil {
			return LoginResult{}, err
		}
	}

	user.LastLoginAt = s.now()
	if _, err := s.userRepository.UpdateUser(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("username", user.Username).Msg("error updating last login time")
	}

	return LoginResult{User: user}, nil
}

// checkPassword resolves the account and compares the password hash.
// Both failure modes map to the same error on purpose.
func (s *authService) checkPassword(ctx context.Context, username, password string) (models.User, error) {
	user, err := s.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, fmt.Errorf("error finding user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	return user, nil
}

// bindOpportunistically attaches the chat id supplied alongside the login
// request. Binding failures never block the login; they are logged and
// the flow continues without a channel.
func (s *authService) bindOpportunistically(ctx context.Context, user models.User, chatID string) models.User {
	if !isDigits(chatID) {
		s.logger.Warn().Str("username", user.Username).Msg("ignoring malformed chat id supplied at login")
		return user
	}

	bound := user
	bound.TelegramChatID = chatID
	if _, err := s.userRepository.UpdateUser(ctx, bound); err != nil {
		s.logger.Warn().Err(err).Str("username", user.Username).Msg("opportunistic telegram binding failed")
		return user
	}

	s.logger.Info().Str("username", user.Username).Msg("telegram chat bound at login")
	return bound
}

// issueOneTimeCode generates a fresh code, replaces any pending entry for
// the user and delivers it over the bound channel. Delivery failure is a
// hard error and the entry is withdrawn: a code the user can never see
// must not complete a login, and skipping the second factor instead
// would silently downgrade the account's security.
func (s *authService) issueOneTimeCode(ctx context.Context, user models.User) error {
	code, err := utils.GenerateOneTimeCode()
	if err != nil {
		return fmt.Errorf("error generating one-time code: %w", err)
	}

	now := s.now()
	s.codes.Put(user.Username, store.PendingCode{
		Code:      code,
		ChatID:    user.TelegramChatID,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.cfg.CodeTTL),
	})

	text := fmt.Sprintf("Your login code: %s. It is valid for %d minutes.", code, int(s.cfg.CodeTTL.Minutes()))
	if err := s.notifier.Send(ctx, user.TelegramChatID, text); err != nil {
		s.codes.Delete(user.Username)
		s.logger.Error().Err(err).Str("username", user.Username).Msg("one-time code delivery failed")
		return ErrCodeDeliveryFailed
	}

	s.logger.Info().Str("username", user.Username).Msg("one-time code issued")
	return nil
}

// consumeOneTimeCode verifies the supplied code against the pending entry.
func (s *authService) consumeOneTimeCode(username, code string) error {
	entry, ok := s.codes.Get(username)
	if !ok {
		return ErrNoPendingVerification
	}

	if s.now().After(entry.ExpiresAt) {
		s.codes.Delete(username)
		return ErrCodeExpired
	}

	if entry.Code != code {
		return ErrInvalidCode
	}

	// single use
	s.codes.Delete(username)
	return nil
}

// CreateToken mints a signed JWT for the authenticated user.
func (s *authService) CreateToken(_ context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(s.cfg.TokenIssuer, user, s.cfg.TokenDuration, s.cfg.TokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}
	return token, nil
}

// ParseToken validates the signed token string and returns its claims.
// Every validation failure collapses into ErrTokenIsExpiredOrInvalid so
// callers reveal nothing about which check failed.
func (s *authService) ParseToken(_ context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, s.cfg.TokenSignKey, s.cfg.TokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}
	return token, nil
}

// BindTelegram attaches a chat id to the account. Re-binding the chat id
// the account already holds succeeds idempotently; a chat id held by a
// different account is rejected. A confirmation message is sent on a
// fresh bind, best effort.
func (s *authService) BindTelegram(ctx context.Context, username string, chatID string) (models.User, error) {
	if chatID == "" || !isDigits(chatID) {
		return models.User{}, fmt.Errorf("%w: telegram chat id must be numeric", ErrValidation)
	}

	user, err := s.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		return models.User{}, fmt.Errorf("error finding user: %w", err)
	}

	if user.TelegramChatID == chatID {
		return user, nil
	}

	if other, err := s.userRepository.FindUserByChatID(ctx, chatID); err == nil && other.ID != user.ID {
		return models.User{}, store.ErrChatIDAlreadyBound
	} else if err != nil && !errors.Is(err, store.ErrNoUserWasFound) {
		return models.User{}, fmt.Errorf("error checking chat id: %w", err)
	}

	user.TelegramChatID = chatID
	user, err = s.userRepository.UpdateUser(ctx, user)
	if err != nil {
		return models.User{}, fmt.Errorf("error binding telegram chat: %w", err)
	}

	if err := s.notifier.Send(ctx, chatID, fmt.Sprintf("This chat is now linked to the account %q.", username)); err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("bind confirmation delivery failed")
	}

	s.logger.Info().Str("username", username).Msg("telegram chat bound")
	return user, nil
}

// RequestPasswordReset issues a single-use reset token and delivers it
// over the bound channel. Accounts without a channel cannot self-serve a
// reset; there is no email fallback.
func (s *authService) RequestPasswordReset(ctx context.Context, username string) error {
	user, err := s.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("error finding user: %w", err)
	}

	if user.TelegramChatID == "" {
		return ErrNoChannelBound
	}

	token, err := utils.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("error generating reset token: %w", err)
	}

	now := s.now()
	s.resets.Put(token, store.ResetEntry{
		Username:  user.Username,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.cfg.ResetTokenTTL),
	})

	text := fmt.Sprintf("Your password reset code: %s. It is valid for %d minutes.", token, int(s.cfg.ResetTokenTTL.Minutes()))
	if err := s.notifier.Send(ctx, user.TelegramChatID, text); err != nil {
		s.resets.Delete(token)
		s.logger.Error().Err(err).Str("username", username).Msg("reset token delivery failed")
		return ErrCodeDeliveryFailed
	}

	s.logger.Info().Str("username", username).Msg("password reset token issued")
	return nil
}

// ResetPassword consumes a reset token and replaces the account password.
// The token survives a rejected password so the user can retry; it is
// removed once the new password is stored.
func (s *authService) ResetPassword(ctx context.Context, resetToken string, newPassword string) error {
	entry, ok := s.resets.Get(resetToken)
	if !ok {
		return ErrResetTokenInvalid
	}

	if s.now().After(entry.ExpiresAt) {
		s.resets.Delete(resetToken)
		return ErrResetTokenExpired
	}

	if err := s.validatePassword(newPassword); err != nil {
		return err
	}

	user, err := s.userRepository.FindUserByUsername(ctx, entry.Username)
	if err != nil {
		return fmt.Errorf("error finding user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	user.PasswordHash = string(hash)
	if _, err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}

	s.resets.Delete(resetToken)

	if user.TelegramChatID != "" {
		if err := s.notifier.Send(ctx, user.TelegramChatID, "Your password has been changed."); err != nil {
			s.logger.Warn().Err(err).Str("username", user.Username).Msg("password change confirmation delivery failed")
		}
	}

	s.logger.Info().Str("username", user.Username).Msg("password reset completed")
	return nil
}

func (s *authService) validateUsername(username string) error {
	length := utf8.RuneCountInString(username)
	if length < minUsernameLength || length > maxUsernameLength {
		return fmt.Errorf("%w: username must be %d-%d characters long", ErrValidation, minUsernameLength, maxUsernameLength)
	}
	return nil
}

func (s *authService) validatePassword(password string) error {
	if utf8.RuneCountInString(password) < s.cfg.MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters long", ErrValidation, s.cfg.MinPasswordLength)
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
