package http

import (
	"encoding/json"
	"net/http"

	"github.com/horrygame/ficarchive/internal/logger"
	"github.com/horrygame/ficarchive/internal/utils"
	"github.com/horrygame/ficarchive/models"
)

func (h *Handler) approvedFics(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	fics, err := h.services.FicService.ApprovedFics(r.Context())
	if err != nil {
		log.Err(err).Msg("error listing approved fics")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, fics, http.StatusOK)
}

func (h *Handler) searchFics(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	fics, err := h.services.FicService.SearchFics(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		log.Err(err).Msg("error searching fics")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, fics, http.StatusOK)
}

func (h *Handler) submitFic(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.SubmitFicRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	username, ok := utils.GetUsernameFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	fic, err := h.services.FicService.SubmitFic(ctx, username, request)
	if err != nil {
		log.Err(err).Str("username", username).Msg("fic submission rejected")
		status, message := errorResponse(err)
		http.Error(w, message, status)
		return
	}

	utils.WriteJSON(w, models.SubmitFicResponse{Success: true, FicID: fic.ID}, http.StatusOK)
}

func (h *Handler) pendingFics(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	fics, err := h.services.FicService.PendingFics(r.Context())
	if err != nil {
		log.Err(err).Msg("error listing pending fics")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, fics, http.StatusOK)
}

func (h *Handler) updateFic(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, func(request models.ModerateFicRequest) error {
		return h.services.FicService.ModerateStatus(r.Context(), request.FicID, request.Status)
	})
}

func (h *Handler) setMark(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, func(request models.ModerateFicRequest) error {
		return h.services.FicService.SetMark(r.Context(), request.FicID, request.Mark)
	})
}

func (h *Handler) updateAge(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, func(request models.ModerateFicRequest) error {
		return h.services.FicService.SetAgeRating(r.Context(), request.FicID, request.AgeRating)
	})
}

// moderate is the shared decode-apply-acknowledge skeleton of the three
// moderation endpoints.
func (h *Handler) moderate(w http.ResponseWriter, r *http.Request, apply func(models.ModerateFicRequest) error) {
	log := logger.FromRequest(r)

	var request models.ModerateFicRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := apply(request); err != nil {
		log.Err(err).Str("fic_id", request.FicID).Msg("moderation action failed")
		status, message := errorResponse(err)
		http.Error(w, message, status)
		return
	}

	utils.WriteJSON(w, models.SuccessResponse{Success: true}, http.StatusOK)
}
