package http

import (
	"errors"
	"net/http"

	"github.com/mintid/mintid/internal/logger"
	"github.com/mintid/mintid/internal/store"
	"github.com/mintid/mintid/internal/utils"
)

// lookupProfile resolves a profile by username. By default only active
// profiles are returned; pass include_inactive=true to look at deactivated
// ones as well. A deactivated profile answers 403 so callers can tell
// "blocked" apart from "does not exist".
func (h *Handler) lookupProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	username := r.URL.Query().Get("username")
	activeOnly := r.URL.Query().Get("include_inactive") != "true"

	profile, err := h.services.ProfileService.LookupByUsername(ctx, username, activeOnly)
	if err != nil {
		if !errors.Is(err, store.ErrProfileNotFound) {
			log.Err(err).Str("username", username).Msg("profile lookup failed")
		}
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}

// currentProfile returns the profile of the authenticated account.
func (h *Handler) currentProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	profile, err := h.services.ProfileService.LookupByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrProfileNotFound) {
			log.Err(err).Str("user_id", userID).Msg("current profile fetch failed")
		}
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}
