package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/finpass/backend/internal/models"
)

func TestHealth(t *testing.T) {
	h := NewHandler(nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	h.Health(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "ok" || body["service"] != "FinPass Backend" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestSignupValidation(t *testing.T) {
	h := NewHandler(nil)
	cases := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"missing password", `{"Name":"A","email":"a@b.c"}`},
		{"missing name", `{"email":"a@b.c","password":"pw"}`},
		{"blank fields", `{"Name":"  ","email":"a@b.c","password":"pw"}`},
		{"malformed JSON", `{"Name":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/signup", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			h.Signup(rr, req)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rr.Code)
			}
		})
	}
}

func TestLoginValidation(t *testing.T) {
	h := NewHandler(nil)
	for _, body := range []string{`{}`, `{"email":"a@b.c"}`, `{"password":"pw"}`, `not json`} {
		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
		rr := httptest.NewRecorder()
		h.Login(rr, req)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("body %q: status = %d, want 400", body, rr.Code)
		}
	}
}

func TestUserDocument(t *testing.T) {
	user := &models.User{ID: 1, Name: "Asha", Email: "asha@example.com", Age: "30", Employment: "Salaried"}
	rec := models.UserRecord{
		Financials:  map[string]any{"monthly-income": 80000.0},
		Goal:        map[string]any{"target-amt": 1000000.0},
		Investments: map[string]any{"risk-opt": "Moderate"},
		Onboarding:  &models.Onboarding{Status: models.OnboardingCompleted},
	}

	doc := userDocument(user, rec)
	if doc["email"] != "asha@example.com" {
		t.Fatalf("email = %v", doc["email"])
	}
	if _, ok := doc["Goal"]; !ok {
		t.Fatal("document must carry the Goal group")
	}
	if _, ok := doc["onboarding"]; !ok {
		t.Fatal("document must carry onboarding state when present")
	}
	if _, ok := doc["progress"]; ok {
		t.Fatal("absent progress group must stay absent")
	}
}
