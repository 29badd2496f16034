package models

// AuthResponse is returned by registration and by every login step.
//
// When Require2FA is true the login stopped after the password check:
// a one-time code was dispatched to the bound Telegram chat and no token
// was issued. Otherwise Token carries the signed bearer token and User
// the sanitized account view.
type AuthResponse struct {
	Require2FA bool      `json:"require_2fa,omitempty"`
	Token      string    `json:"token,omitempty"`
	User       *UserView `json:"user,omitempty"`
}

// SubmitFicResponse acknowledges a story submission.
type SubmitFicResponse struct {
	Success bool   `json:"success"`
	FicID   string `json:"fic_id"`
}

// SuccessResponse is the generic acknowledgement body of moderation and
// binding endpoints.
type SuccessResponse struct {
	Success bool `json:"success"`
}
