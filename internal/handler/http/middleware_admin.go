package http

import (
	"net/http"

	"github.com/horrygame/ficarchive/internal/logger"
	"github.com/horrygame/ficarchive/internal/utils"
)

// adminOnly rejects authenticated callers that do not carry the moderator
// role. Must be mounted after the auth middleware, which places the admin
// flag in the context.
func (h *Handler) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		isAdmin, ok := utils.GetIsAdminFromContext(r.Context())
		if !ok || !isAdmin {
			log := logger.FromRequest(r)
			username, _ := utils.GetUsernameFromContext(r.Context())
			log.Warn().Str("username", username).Msg("moderation endpoint denied to non-admin")
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
