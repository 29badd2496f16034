package http

import (
	"errors"
	"net/http"

	"github.com/horrygame/ficarchive/internal/service"
	"github.com/horrygame/ficarchive/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrValidation:              http.StatusBadRequest,
	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrNoPendingVerification:   http.StatusUnauthorized,
	service.ErrCodeExpired:             http.StatusUnauthorized,
	service.ErrInvalidCode:             http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrCodeDeliveryFailed:      http.StatusBadGateway,
	service.ErrNoChannelBound:          http.StatusConflict,
	service.ErrResetTokenInvalid:       http.StatusUnauthorized,
	service.ErrResetTokenExpired:       http.StatusUnauthorized,
	service.ErrInvalidFicStatus:        http.StatusBadRequest,

	store.ErrUsernameAlreadyExists: http.StatusConflict,
	store.ErrChatIDAlreadyBound:    http.StatusConflict,
	store.ErrNoUserWasFound:        http.StatusNotFound,
	store.ErrFicNotFound:           http.StatusNotFound,
	store.ErrPersistFailed:         http.StatusInternalServerError,
}

// errorResponse maps a service error onto the response status and the
// body text safe to show the caller. Matched sentinels speak for
// themselves; validation errors keep their field detail (the whole
// chain is service-authored text); anything unmapped or mapping to 500
// answers with the bare status text so wrapped internals (file paths,
// driver messages) never reach the client.
func errorResponse(err error) (int, string) {
	for target, status := range errorStatusMap {
		if !errors.Is(err, target) {
			continue
		}
		if status == http.StatusInternalServerError {
			return status, http.StatusText(status)
		}
		if target == service.ErrValidation {
			return status, err.Error()
		}
		return status, target.Error()
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}
