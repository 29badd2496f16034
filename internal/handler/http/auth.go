package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/horrygame/ficarchive/internal/logger"
	"github.com/horrygame/ficarchive/internal/service"
	"github.com/horrygame/ficarchive/internal/store"
	"github.com/horrygame/ficarchive/internal/utils"
	"github.com/horrygame/ficarchive/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	registeredUser, err := h.services.AuthService.Register(ctx, request)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrUsernameAlreadyExists):
			log.Err(err).Msg("username already exists")
			http.Error(w, "username already exists", http.StatusConflict)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user registration")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	token, err := h.services.AuthService.CreateToken(ctx, registeredUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	view := registeredUser.PublicView()
	utils.WriteJSON(w, models.AuthResponse{Token: token.SignedString, User: &view}, http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	result, err := h.services.AuthService.Login(ctx, request)
	if err != nil {
		log.Err(err).Str("username", request.Username).Msg("login rejected")
		status, message := errorResponse(err)
		http.Error(w, message, status)
		return
	}

	if result.RequireSecondFactor {
		utils.WriteJSON(w, models.AuthResponse{Require2FA: true}, http.StatusOK)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, result.User)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	log.Debug().Str("username", result.User.Username).Msg("user successfully logged in")

	view := result.User.PublicView()
	utils.WriteJSON(w, models.AuthResponse{Token: token.SignedString, User: &view}, http.StatusOK)
}

// checkAuth confirms the bearer token is valid. The identity claims were
// already placed in the context by the auth middleware.
func (h *Handler) checkAuth(w http.ResponseWriter, r *http.Request) {
	username, _ := utils.GetUsernameFromContext(r.Context())
	isAdmin, _ := utils.GetIsAdminFromContext(r.Context())

	utils.WriteJSON(w, map[string]any{
		"authenticated": true,
		"username":      username,
		"is_admin":      isAdmin,
	}, http.StatusOK)
}

// checkAdmin confirms the caller holds the moderator role; the adminOnly
// middleware has already rejected everyone else.
func (h *Handler) checkAdmin(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.SuccessResponse{Success: true}, http.StatusOK)
}

func (h *Handler) bindTelegram(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.BindTelegramRequest
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

	if _, err := h.services.AuthService.BindTelegram(ctx, username, request.TelegramChatID); err != nil {
		log.Err(err).Str("username", username).Msg("telegram binding failed")
		status, message := errorResponse(err)
		http.Error(w, message, status)
		return
	}

	utils.WriteJSON(w, models.SuccessResponse{Success: true}, http.StatusOK)
}

func (h *Handler) requestPasswordReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.PasswordResetRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.RequestPasswordReset(ctx, request.Username); err != nil {
		log.Err(err).Str("username", request.Username).Msg("password reset request failed")
		status, message := errorResponse(err)
		http.Error(w, message, status)
		return
	}

	utils.WriteJSON(w, models.SuccessResponse{Success: true}, http.StatusOK)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.ResetPassword(ctx, request.Token, request.NewPassword); err != nil {
		log.Err(err).Msg("password reset failed")
		status, message := errorResponse(err)
		http.Error(w, message, status)
		return
	}

	utils.WriteJSON(w, models.SuccessResponse{Success: true}, http.StatusOK)
}
