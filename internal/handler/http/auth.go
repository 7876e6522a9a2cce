package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/mintid/mintid/internal/app"
	"github.com/mintid/mintid/internal/logger"
	"github.com/mintid/mintid/internal/service"
	"github.com/mintid/mintid/internal/utils"
	"github.com/mintid/mintid/models"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSON)
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	profile, err := h.services.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			h.metrics.ObserveLogin("failure")
			http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrWrongCredentials):
			log.Err(err).Msg("wrong email or password")
			h.metrics.ObserveLogin("failure")
			http.Error(w, app.MsgInvalidEmailPassword, http.StatusUnauthorized)
			return
		case errors.Is(err, service.ErrProfileInactive):
			log.Err(err).Msg("login attempt on deactivated profile")
			h.metrics.ObserveLogin("inactive")
			http.Error(w, app.MsgProfileDeactivated, http.StatusForbidden)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during login")
			h.metrics.ObserveLogin("failure")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	token, err := h.services.AuthService.CreateToken(ctx, profile.UserID)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.metrics.ObserveLogin("success")
	log.Debug().Str("user_id", profile.UserID).Msg("user successfully logged in")

	expiresAt, err := token.Claims.GetExpirationTime()
	if err != nil || expiresAt == nil {
		log.Err(err).Msg("issued token has no expiration claim")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.SessionResponse{
		UserID:    profile.UserID,
		ExpiresAt: expiresAt.Unix(),
	}, http.StatusOK)
}

// logout exists so clients have an explicit end-of-session call. Tokens are
// stateless, so there is nothing to revoke server-side; the client discards
// its cached session.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, _ := utils.GetUserIDFromContext(r.Context())
	log.Info().Str("user_id", userID).Msg("user signed out")

	w.WriteHeader(http.StatusNoContent)
}

// session reports whether the presented token is still valid and for whom.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	tokenString, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	token, err := h.services.AuthService.ParseToken(ctx, tokenString)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	expiresAt, err := token.Claims.GetExpirationTime()
	if err != nil || expiresAt == nil {
		log.Err(err).Msg("token has no expiration claim")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.SessionResponse{
		UserID:    userID,
		ExpiresAt: expiresAt.Unix(),
	}, http.StatusOK)
}
