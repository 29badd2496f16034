// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horrygame/ficarchive/internal/config"
	"github.com/horrygame/ficarchive/internal/logger"
	"github.com/horrygame/ficarchive/internal/store"
	"github.com/horrygame/ficarchive/models"
)

// ─────────────────────────────────────────────
// Mock Notifier
// ─────────────────────────────────────────────

type sentMessage struct {
	chatID string
	text   string
}

// mockNotifier implements notify.Notifier for unit tests. The send
// behaviour can be overridden per test case; delivered messages are
// recorded either way.
type mockNotifier struct {
	sendFn func(ctx context.Context, chatID string, text string) error
	sent   []sentMessage
}

func (m *mockNotifier) Send(ctx context.Context, chatID string, text string) error {
	if m.sendFn != nil {
		if err := m.sendFn(ctx, chatID, text); err != nil {
			return err
		}
	}
	m.sent = append(m.sent, sentMessage{chatID: chatID, text: text})
	return nil
}

func (m *mockNotifier) lastMessage(t *testing.T) sentMessage {
	t.Helper()
	require.NotEmpty(t, m.sent, "expected at least one delivered message")
	return m.sent[len(m.sent)-1]
}

var (
	loginCodeRe  = regexp.MustCompile(`login code: (\d{6})`)
	resetTokenRe = regexp.MustCompile(`reset code: ([0-9a-f]+)\.`)
)

func (m *mockNotifier) lastLoginCode(t *testing.T) string {
	t.Helper()
	match := loginCodeRe.FindStringSubmatch(m.lastMessage(t).text)
	require.Len(t, match, 2, "delivered message must contain a 6-digit login code")
	return match[1]
}

func (m *mockNotifier) lastResetToken(t *testing.T) string {
	t.Helper()
	match := resetTokenRe.FindStringSubmatch(m.lastMessage(t).text)
	require.Len(t, match, 2, "delivered message must contain a reset token")
	return match[1]
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func testAppConfig() config.App {
	return config.App{
		TokenSignKey:      "test-sign-key",
		TokenIssuer:       "ficarchive-test",
		TokenDuration:     time.Hour,
		AdminUsername:     "horrygame",
		MinPasswordLength: 6,
		CodeTTL:           5 * time.Minute,
		ResetTokenTTL:     15 * time.Minute,
	}
}

func newTestAuthService(t *testing.T) (*authService, *mockNotifier, *store.Storages) {
	t.Helper()

	userRepo, err := store.NewFileUserRepository(filepath.Join(t.TempDir(), "users.json"), logger.Nop())
	require.NoError(t, err)

	storages := &store.Storages{
		UserRepository: userRepo,
		CodeRegistry:   store.NewCodeRegistry(),
		ResetRegistry:  store.NewResetRegistry(),
	}
	notifier := &mockNotifier{}

	svc := NewAuthService(storages, notifier, testAppConfig(), logger.Nop()).(*authService)
	return svc, notifier, storages
}

func register(t *testing.T, svc *authService, username, password string) models.User {
	t.Helper()
	user, err := svc.Register(context.Background(), models.RegisterRequest{Username: username, Password: password})
	require.NoError(t, err)
	return user
}

func bindChat(t *testing.T, svc *authService, username, chatID string) {
	t.Helper()
	_, err := svc.BindTelegram(context.Background(), username, chatID)
	require.NoError(t, err)
}

// ─────────────────────────────────────────────
// Register
// ─────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	user := register(t, svc, "alice", "secret123")

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.False(t, user.IsAdmin)
	assert.NotEqual(t, "secret123", user.PasswordHash, "password must be stored hashed")
}

func TestRegister_AdminUsernameGetsModeratorRole(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	admin := register(t, svc, "horrygame", "secret123")
	assert.True(t, admin.IsAdmin)
}

func TestRegister_Validation(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, models.RegisterRequest{Username: "ab", Password: "secret123"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register(ctx, models.RegisterRequest{Username: "this-username-is-way-too-long", Password: "secret123"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register(ctx, models.RegisterRequest{Username: "alice", Password: "short"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	register(t, svc, "alice", "secret123")

	_, err := svc.Register(context.Background(), models.RegisterRequest{Username: "alice", Password: "different456"})
	assert.ErrorIs(t, err, store.ErrUsernameAlreadyExists)
}

// ─────────────────────────────────────────────
// Login — password step
// ─────────────────────────────────────────────

func TestLogin_UnknownUserAndWrongPasswordAreIndistinguishable(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	register(t, svc, "alice", "secret123")

	_, errUnknown := svc.Login(ctx, models.LoginRequest{Username: "ghost", Password: "secret123"})
	_, errWrongPw := svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "wrong-password"})

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error(), "failure modes must not be distinguishable")
}

func TestLogin_NoChannelBound_PasswordAloneSucceeds(t *testing.T) {
	svc, notifier, _ := newTestAuthService(t)

	register(t, svc, "alice", "secret123")

	result, err := svc.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	assert.False(t, result.RequireSecondFactor)
	assert.Equal(t, "alice", result.User.Username)
	assert.Empty(t, notifier.sent, "no code may be sent without a bound channel")
}

func TestLogin_UpdatesLastLoginTime(t *testing.T) {
	svc, _, storages := newTestAuthService(t)

	register(t, svc, "alice", "secret123")

	loginTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return loginTime }

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	stored, err := storages.UserRepository.FindUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, loginTime, stored.LastLoginAt)
}

// ─────────────────────────────────────────────
// Login — second factor
// ─────────────────────────────────────────────

func TestLogin_SecondFactorHappyPath(t *testing.T) {
	svc, notifier, _ := newTestAuthService(t)
	ctx := context.Background()

	register(t, svc, "alice", "secret123")
	bindChat(t, svc, "alice", "100500")

	result, err := svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	require.True(t, result.RequireSecondFactor, "a bound channel must trigger the second factor")

	code := notifier.lastLoginCode(t)
	assert.Equal(t, "100500", notifier.lastMessage(t).chatID)

	result, err = svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "secret123", Code: code})
	require.NoError(t, err)
	assert.False(t, result.RequireSecondFactor)
	assert.Equal(t, "alice", result.User.Username)
}

func TestLogin_CodeIsSingleUse(t *testing.T) {
	svc, notifier, _ := newTestAuthService(t)
	ctx := context.Background()

	register(t, svc, "alice", "secret123")
	bindChat(t, svc, "alice", "100500")

	_, err := svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	code := notifier.lastLoginCode(t)

	_, err = svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "secret123", Code: code})
	require.NoError(t, err)

	_, err = svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "secret123", Code: code})
	assert.ErrorIs(t, err, ErrNoPendingVerification, "a consumed code must not work twice")
}

func TestLogin_WrongCodeKeepsEntryForRetry(t *testing.T) {
	svc, notifier, _ := newTestAuthService(t)
	ctx := context.Background()

	register(t, svc, "alice", "secret123")
	bindChat(t, svc, "alice", "100500")

	_, err := svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	code := notifier.lastLoginCode(t)

	_, err = svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "secret123", Code: "000000"})
	assert.ErrorIs(t, err, ErrInvalidCode)

	// the pending entry survives a mismatch, so the real code still works
	result, err := svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "secret123", Code: code})
	require.NoError(t, err)
	assert.False(t, result.RequireSecondFactor)
}

func TestLogin_ExpiredCodeIsRemoved(t *testing.T) {
	svc, notifier, _ := newTestAuthService(t)
	ctx := context.Background()

	register(t, svc, "alice", "secret123")
	bindChat(t, svc, "alice", "100500")

	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issuedAt }

	_, err := svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	code := notifier.lastLoginCode(t)

	svc.now = func() time.Time { return issuedAt.Add(6 * time.Minute) }

	_, err = svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "secret123", Code: code})
	assert.ErrorIs(t, err, ErrCodeExpired)

	// the stale entry was deleted, so a retry has nothing to match
	_, err = svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "secret123", Code: code})
	assert.ErrorIs(t, err, ErrNoPendingVerification)
}

func TestLogin_NewCodeReplacesPendingOne(t *testing.T) {
	svc, notifier, _ := newTestAuthService(t)
	ctx := context.Background()

	register(t, svc, "alice", "secret123")
	bindChat(t, svc, "alice", "100500")

	_, err := svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	firstCode := notifier.lastLoginCode(t)

	_, err = svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	secondCode := notifier.lastLoginCode(t)

	if firstCode != secondCode {
		_, err = svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "secret123", Code: firstCode})
		assert.ErrorIs(t, err, ErrInvalidCode, "a replaced code must no longer verify")
	}

	result, err := svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "secret123", Code: secondCode})
	require.NoError(t, err)
	assert.False(t, result.RequireSecondFactor)
}

func TestLogin_DeliveryFailureIsHardError(t *testing.T) {
	svc, notifier, storages := newTestAuthService(t)
	ctx := context.Background()

	register(t, svc, "alice", "secret123")
	bindChat(t, svc, "alice", "100500")

	notifier.sendFn = func(context.Context, string, string) error {
		return errors.New("telegram is down")
	}

	_, err := svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "secret123"})
	assert.ErrorIs(t, err, ErrCodeDeliveryFailed, "no silent fallback to passwordless login")
	assert.Equal(t, 0, storages.CodeRegistry.Len(), "an undeliverable code must not stay pending")
}

func TestLogin_OpportunisticBinding(t *testing.T) {
	svc, notifier, storages := newTestAuthService(t)
	ctx := context.Background()

	register(t, svc, "alice", "secret123")

	// supplying a chat id at login binds it for future logins; the login
	// that carried it still completes on the password alone
	result, err := svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "secret123", TelegramChatID: "100500"})
	require.NoError(t, err)
	assert.False(t, result.RequireSecondFactor)
	assert.Empty(t, notifier.sent, "no code is issued on the login that bound the channel")

	stored, err := storages.UserRepository.FindUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "100500", stored.TelegramChatID)

	// the next login runs against the freshly bound channel
	result, err = svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	require.True(t, result.RequireSecondFactor)

	code := notifier.lastLoginCode(t)
	_, err = svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "secret123", Code: code})
	require.NoError(t, err)
}

func TestLogin_MalformedChatIDAtLoginIsIgnored(t *testing.T) {
	svc, _, storages := newTestAuthService(t)
	ctx := context.Background()

	register(t, svc, "alice", "secret123")

	result, err := svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "secret123", TelegramChatID: "not-a-number"})
	require.NoError(t, err, "a bad chat id must not block the login")
	assert.False(t, result.RequireSecondFactor)

	stored, err := storages.UserRepository.FindUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, stored.TelegramChatID)
}

// ─────────────────────────────────────────────
// Tokens
// ─────────────────────────────────────────────

func TestCreateAndParseToken_RoundTrip(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	admin := register(t, svc, "horrygame", "secret123")

	token, err := svc.CreateToken(ctx, admin)
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)

	userID, err := parsed.UserID()
	require.NoError(t, err)
	assert.Equal(t, admin.ID, userID)
	assert.Equal(t, "horrygame", parsed.TokenClaims.Username)
	assert.True(t, parsed.TokenClaims.IsAdmin)
}

func TestParseToken_Tampered(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	user := register(t, svc, "alice", "secret123")
	token, err := svc.CreateToken(ctx, user)
	require.NoError(t, err)

	_, err = svc.ParseToken(ctx, token.SignedString+"x")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)

	_, err = svc.ParseToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

// ─────────────────────────────────────────────
// Channel binding
// ─────────────────────────────────────────────

func TestBindTelegram_Validation(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	register(t, svc, "alice", "secret123")

	_, err := svc.BindTelegram(ctx, "alice", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.BindTelegram(ctx, "alice", "12a34")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBindTelegram_SelfRebindIsIdempotent(t *testing.T) {
	svc, notifier, _ := newTestAuthService(t)
	ctx := context.Background()

	register(t, svc, "alice", "secret123")
	bindChat(t, svc, "alice", "100500")
	confirmations := len(notifier.sent)

	user, err := svc.BindTelegram(ctx, "alice", "100500")
	require.NoError(t, err)
	assert.Equal(t, "100500", user.TelegramChatID)
	assert.Len(t, notifier.sent, confirmations, "re-binding the same chat must not re-send confirmation")
}

func TestBindTelegram_ChatHeldByAnotherUser(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	register(t, svc, "alice", "secret123")
	register(t, svc, "bob", "secret123")
	bindChat(t, svc, "alice", "100500")

	_, err := svc.BindTelegram(ctx, "bob", "100500")
	assert.ErrorIs(t, err, store.ErrChatIDAlreadyBound)
}

func TestBindTelegram_ConfirmationFailureDoesNotFailBinding(t *testing.T) {
	svc, notifier, storages := newTestAuthService(t)
	ctx := context.Background()

	register(t, svc, "alice", "secret123")
	notifier.sendFn = func(context.Context, string, string) error {
		return errors.New("telegram is down")
	}

	_, err := svc.BindTelegram(ctx, "alice", "100500")
	require.NoError(t, err, "confirmation delivery is best effort")

	stored, err := storages.UserRepository.FindUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "100500", stored.TelegramChatID)
}

// ─────────────────────────────────────────────
// Password reset
// ─────────────────────────────────────────────

func TestRequestPasswordReset_NoChannelBound(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	register(t, svc, "alice", "secret123")

	err := svc.RequestPasswordReset(context.Background(), "alice")
	assert.ErrorIs(t, err, ErrNoChannelBound)
}

func TestResetPassword_HappyPath(t *testing.T) {
	svc, notifier, _ := newTestAuthService(t)
	ctx := context.Background()

	register(t, svc, "alice", "secret123")
	bindChat(t, svc, "alice", "100500")

	require.NoError(t, svc.RequestPasswordReset(ctx, "alice"))
	token := notifier.lastResetToken(t)

	require.NoError(t, svc.ResetPassword(ctx, token, "brand-new-password"))

	// old password is gone, new one works (the bound channel still
	// requires the second factor, so only the password step is checked)
	_, err := svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	result, err := svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "brand-new-password"})
	require.NoError(t, err)
	assert.True(t, result.RequireSecondFactor)
}

func TestResetPassword_TokenIsSingleUse(t *testing.T) {
	svc, notifier, _ := newTestAuthService(t)
	ctx := context.Background()

	register(t, svc, "alice", "secret123")
	bindChat(t, svc, "alice", "100500")

	require.NoError(t, svc.RequestPasswordReset(ctx, "alice"))
	token := notifier.lastResetToken(t)

	require.NoError(t, svc.ResetPassword(ctx, token, "brand-new-password"))

	err := svc.ResetPassword(ctx, token, "another-password")
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	svc, notifier, _ := newTestAuthService(t)
	ctx := context.Background()

	register(t, svc, "alice", "secret123")
	bindChat(t, svc, "alice", "100500")

	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issuedAt }
	require.NoError(t, svc.RequestPasswordReset(ctx, "alice"))
	token := notifier.lastResetToken(t)

	svc.now = func() time.Time { return issuedAt.Add(16 * time.Minute) }

	err := svc.ResetPassword(ctx, token, "brand-new-password")
	assert.ErrorIs(t, err, ErrResetTokenExpired)
}

func TestResetPassword_RejectedPasswordKeepsToken(t *testing.T) {
	svc, notifier, _ := newTestAuthService(t)
	ctx := context.Background()

	register(t, svc, "alice", "secret123")
	bindChat(t, svc, "alice", "100500")

	require.NoError(t, svc.RequestPasswordReset(ctx, "alice"))
	token := notifier.lastResetToken(t)

	err := svc.ResetPassword(ctx, token, "short")
	assert.ErrorIs(t, err, ErrValidation)

	// the token survives a rejected password so the user can retry
	require.NoError(t, svc.ResetPassword(ctx, token, "brand-new-password"))
}

func TestResetPassword_UnknownToken(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	err := svc.ResetPassword(context.Background(), "deadbeef", "brand-new-password")
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
}

// ─────────────────────────────────────────────
// Full account lifecycle
// ─────────────────────────────────────────────

// TestAccountLifecycle walks one account through the whole flow:
// register, plain login, channel binding, two-step login, token use,
// password reset, and a final two-step login with the new password.
func TestAccountLifecycle(t *testing.T) {
	svc, notifier, _ := newTestAuthService(t)
	ctx := context.Background()

	user := register(t, svc, "alice", "secret123")

	// no channel bound yet: password alone completes the login
	result, err := svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	assert.False(t, result.RequireSecondFactor)

	bindChat(t, svc, "alice", "100500")

	// the second factor is now required
	result, err = svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	require.True(t, result.RequireSecondFactor)

	code := notifier.lastLoginCode(t)
	result, err = svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "secret123", Code: code})
	require.NoError(t, err)
	assert.False(t, result.RequireSecondFactor)

	token, err := svc.CreateToken(ctx, result.User)
	require.NoError(t, err)

	parsed, err := svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	subject, err := parsed.UserID()
	require.NoError(t, err)
	assert.Equal(t, user.ID, subject)

	require.NoError(t, svc.RequestPasswordReset(ctx, "alice"))
	require.NoError(t, svc.ResetPassword(ctx, notifier.lastResetToken(t), "rewritten456"))

	_, err = svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	result, err = svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "rewritten456"})
	require.NoError(t, err)
	require.True(t, result.RequireSecondFactor, "the bound channel still gates the login after a reset")

	result, err = svc.Login(ctx, models.LoginRequest{
		Username: "alice",
		Password: "rewritten456",
		Code:     notifier.lastLoginCode(t),
	})
	require.NoError(t, err)
	assert.False(t, result.RequireSecondFactor)
}
