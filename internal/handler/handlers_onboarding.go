package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/finpass/backend/internal/repository"
	"github.com/finpass/backend/internal/service"
	"github.com/gorilla/mux"
)

type onboardingRequest struct {
	Email       string `json:"email"`
	CurrentStep *int   `json:"current_step"`
}

// StartOnboarding begins or resumes the guided setup flow
func (h *Handler) StartOnboarding(w http.ResponseWriter, r *http.Request) {
	var req onboardingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ob, err := h.svc.StartOnboarding(service.NormalizeEmail(req.Email))
	if err != nil {
		h.onboardingError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"onboarding": ob,
	})
}

// CompleteOnboarding marks the flow as finished
func (h *Handler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	var req onboardingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.svc.CompleteOnboarding(service.NormalizeEmail(req.Email)); err != nil {
		h.onboardingError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "completed"})
}

// CancelOnboarding abandons the flow at the client's current step
func (h *Handler) CancelOnboarding(w http.ResponseWriter, r *http.Request) {
	email := service.NormalizeEmail(mux.Vars(r)["email"])

	var req onboardingRequest
	_ = json.NewDecoder(r.Body).Decode(&req) // body is optional here

	if _, err := h.svc.CancelOnboarding(email, req.CurrentStep); err != nil {
		h.onboardingError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

// OnboardingStatus reports where a user is in the flow
func (h *Handler) OnboardingStatus(w http.ResponseWriter, r *http.Request) {
	email := service.NormalizeEmail(mux.Vars(r)["email"])

	ob, err := h.svc.OnboardingStatus(email)
	if err != nil {
		h.onboardingError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":       ob.Status,
		"current_step": ob.CurrentStep,
	})
}

func (h *Handler) onboardingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrOnboardingCompleted):
		writeError(w, http.StatusBadRequest, "Onboarding already completed")
	default:
		writeError(w, http.StatusInternalServerError, "Onboarding update failed")
	}
}
