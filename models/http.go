package models

// RegisterRequest is the body of POST /api/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/login.
//
// Code is empty on the first step; when the account has a bound Telegram
// chat the server answers with Require2FA and the client repeats the
// request with the delivered one-time code filled in.
//
// TelegramChatID may be supplied on the first step by accounts that have
// no channel bound yet; it is then bound opportunistically after the
// password check succeeds.
type LoginRequest struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	Code           string `json:"code,omitempty"`
	TelegramChatID string `json:"telegram_chat_id,omitempty"`
}

// BindTelegramRequest is the body of POST /api/bind-telegram.
type BindTelegramRequest struct {
	TelegramChatID string `json:"telegram_chat_id"`
}

// PasswordResetRequest is the body of POST /api/request-password-reset.
type PasswordResetRequest struct {
	Username string `json:"username"`
}

// ResetPasswordRequest is the body of POST /api/reset-password.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// SubmitFicRequest is the body of POST /api/submit-fic.
// Author, status, and timestamps are assigned server-side.
type SubmitFicRequest struct {
	Title    string    `json:"title"`
	Summary  string    `json:"summary"`
	Chapters []Chapter `json:"chapters"`
}

// ModerateFicRequest is the body of the admin moderation endpoints
// (/api/update-fic, /api/set-mark, /api/update-age). Exactly one of
// Status, Mark, or AgeRating is meaningful per endpoint.
type ModerateFicRequest struct {
	FicID     string `json:"fic_id"`
	Status    string `json:"status,omitempty"`
	Mark      string `json:"mark,omitempty"`
	AgeRating string `json:"age_rating,omitempty"`
}
