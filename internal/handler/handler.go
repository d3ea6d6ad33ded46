package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/finpass/backend/internal/models"
	"github.com/finpass/backend/internal/repository"
	"github.com/finpass/backend/internal/service"
	"github.com/gorilla/mux"
)

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Health reports service liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "FinPass Backend",
		"version": "v1",
	})
}

type signupRequest struct {
	Name        string         `json:"Name"`
	Email       string         `json:"email"`
	Password    string         `json:"password"`
	Age         any            `json:"Age"`
	Employment  string         `json:"employment-status"`
	Goal        map[string]any `json:"Goal"`
	Financials  map[string]any `json:"financials"`
	Investments map[string]any `json:"investments"`
	Progress    map[string]any `json:"progress"`
}

// Signup registers a new user with their initial financial record
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	name := strings.TrimSpace(req.Name)
	email := service.NormalizeEmail(req.Email)
	password := strings.TrimSpace(req.Password)
	if name == "" || email == "" || password == "" {
		writeError(w, http.StatusBadRequest, "Name, Email, and Password are required")
		return
	}

	age := ""
	if req.Age != nil {
		age = strings.TrimSpace(fmt.Sprint(req.Age))
	}
	employment := req.Employment
	if employment == "" {
		employment = "Salaried"
	}

	rec := models.UserRecord{
		Goal:        req.Goal,
		Financials:  req.Financials,
		Investments: req.Investments,
		Progress:    req.Progress,
	}

	user, err := h.svc.Signup(name, email, password, age, employment, rec)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "Email already registered")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"status": "success",
		"user":   user,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a user and returns a bearer token
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	email := service.NormalizeEmail(req.Email)
	password := strings.TrimSpace(req.Password)
	if email == "" || password == "" {
		writeError(w, http.StatusBadRequest, "Email and password required")
		return
	}

	token, user, err := h.svc.Login(email, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"token":  token,
		"user":   user,
	})
}

// GetUser returns the profile and raw financial record for a user
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	email := service.NormalizeEmail(mux.Vars(r)["email"])

	user, rec, err := h.svc.GetUser(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load user")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"user":   userDocument(user, rec),
	})
}

type updateUserRequest struct {
	Goal        map[string]any `json:"Goal"`
	Financials  map[string]any `json:"financials"`
	Investments map[string]any `json:"investments"`
	Progress    map[string]any `json:"progress"`
}

// UpdateUser replaces the financial groups of a user's record
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	email := service.NormalizeEmail(mux.Vars(r)["email"])

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	update := models.UserRecord{
		Goal:        req.Goal,
		Financials:  req.Financials,
		Investments: req.Investments,
		Progress:    req.Progress,
	}

	if err := h.svc.UpdateUserRecord(email, update); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update user")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// userDocument merges profile fields and the raw record into the document
// shape clients expect.
func userDocument(user *models.User, rec models.UserRecord) map[string]any {
	doc := map[string]any{
		"id":                user.ID,
		"Name":              user.Name,
		"email":             user.Email,
		"Age":               user.Age,
		"employment-status": user.Employment,
		"Goal":              rec.Goal,
		"financials":        rec.Financials,
		"investments":       rec.Investments,
	}
	if rec.Progress != nil {
		doc["progress"] = rec.Progress
	}
	if rec.Onboarding != nil {
		doc["onboarding"] = rec.Onboarding
	}
	return doc
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"status":  "error",
		"message": message,
	})
}
