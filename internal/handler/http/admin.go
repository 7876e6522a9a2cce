package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mintid/mintid/internal/app"
	"github.com/mintid/mintid/internal/logger"
	"github.com/mintid/mintid/internal/utils"
	"github.com/mintid/mintid/models"
)

func (h *Handler) changeRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	username := chi.URLParam(r, "username")

	var req models.RoleChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSON)
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	profile, err := h.services.ProfileService.ChangeRole(ctx, username, req.Role)
	if err != nil {
		log.Err(err).Str("username", username).Msg("role change failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}

func (h *Handler) activateProfile(w http.ResponseWriter, r *http.Request) {
	h.setProfileActive(w, r, true)
}

func (h *Handler) deactivateProfile(w http.ResponseWriter, r *http.Request) {
	h.setProfileActive(w, r, false)
}

func (h *Handler) setProfileActive(w http.ResponseWriter, r *http.Request, active bool) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	username := chi.URLParam(r, "username")

	profile, err := h.services.ProfileService.SetActive(ctx, username, active)
	if err != nil {
		log.Err(err).Str("username", username).Bool("active", active).Msg("activation change failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}

func (h *Handler) seed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var plan models.SeedPlan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSON)
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	result, err := h.services.SeedService.Seed(ctx, plan)
	if err != nil {
		log.Err(err).Str("role", string(plan.Role)).Msg("seeding failed")
		writeError(w, err)
		return
	}

	log.Info().
		Strs("created", result.Created).
		Strs("skipped", result.Skipped).
		Msg("seed plan applied")

	utils.WriteJSON(w, result, http.StatusOK)
}
