package handler

import (
	"errors"
	"net/http"

	"github.com/finpass/backend/internal/advisor"
	"github.com/finpass/backend/internal/repository"
	"github.com/finpass/backend/internal/service"
	"github.com/gorilla/mux"
)

// Analytics returns the financial-health view for a user
func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	email := service.NormalizeEmail(mux.Vars(r)["email"])

	health, err := h.svc.FinancialHealth(email)
	if err != nil {
		h.adviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"analytics": health})
}

// Predict returns the Monte Carlo goal estimate for a user
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	email := service.NormalizeEmail(mux.Vars(r)["email"])

	result, err := h.svc.PredictGoal(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		// The simulator reads goal fields strictly; an incomplete record is
		// a client problem, not a server one.
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Recommend returns the risk-based asset allocation plan for a user
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	email := service.NormalizeEmail(mux.Vars(r)["email"])

	plan, err := h.svc.RecommendPlan(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"recommended_plan": plan})
}

// GoalIntelligence returns the deterministic projection for a user. Invalid
// financial data is reported inside the result object rather than as an HTTP
// failure, so clients always branch on the presence of "error".
func (h *Handler) GoalIntelligence(w http.ResponseWriter, r *http.Request) {
	email := service.NormalizeEmail(mux.Vars(r)["email"])

	gi, err := h.svc.GoalIntelligence(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		if errors.Is(err, advisor.ErrInsufficientData) || errors.Is(err, advisor.ErrInvalidFinancialValues) {
			writeJSON(w, http.StatusOK, map[string]any{
				"goal_intelligence": map[string]string{"error": err.Error()},
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to compute goal intelligence")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"goal_intelligence": gi})
}

// Agent returns the gated decision-advisor response for a user
func (h *Handler) Agent(w http.ResponseWriter, r *http.Request) {
	email := service.NormalizeEmail(mux.Vars(r)["email"])

	advice, err := h.svc.Advise(email)
	if err != nil {
		h.adviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, advice)
}

func (h *Handler) adviceError(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeError(w, http.StatusInternalServerError, "Request failed")
}
