package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/finpass/backend/internal/advisor"
	"github.com/finpass/backend/internal/config"
	"github.com/finpass/backend/internal/models"
	"github.com/finpass/backend/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Service errors callers branch on
var (
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrOnboardingCompleted = errors.New("onboarding already completed")
)

// AlertSender delivers goal-at-risk notifications. Nil disables alerts.
type AlertSender interface {
	SendGoalAtRiskAlert(to, name string, gi models.GoalIntelligence, resp models.AgentResponse) error
}

// Service handles business logic
type Service struct {
	repo   *repository.Repository
	log    *logrus.Logger
	config *config.Config
	sim    *advisor.Simulator
	alerts AlertSender
}

// NewService initializes a new service
func NewService(repo *repository.Repository, log *logrus.Logger, cfg *config.Config, sim *advisor.Simulator, alerts AlertSender) *Service {
	return &Service{repo: repo, log: log, config: cfg, sim: sim, alerts: alerts}
}

// Signup creates a new user with a hashed password and their initial record
func (s *Service) Signup(name, email, password, age, employment string, rec models.UserRecord) (*models.User, error) {
	exists, err := s.repo.EmailExists(email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Age:          age,
		Employment:   employment,
	}

	if rec.Financials == nil {
		rec.Financials = map[string]any{}
	}
	if rec.Goal == nil {
		rec.Goal = map[string]any{}
	}
	if rec.Investments == nil {
		rec.Investments = map[string]any{}
	}

	if err := s.repo.CreateUser(user, rec); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(email, password string) (string, *models.User, error) {
	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   user.Email,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, user, nil
}

// GetUser returns a user's profile and raw financial record
func (s *Service) GetUser(email string) (*models.User, models.UserRecord, error) {
	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		return nil, models.UserRecord{}, err
	}
	rec, err := s.repo.GetUserRecord(email)
	if err != nil {
		return nil, models.UserRecord{}, err
	}
	return user, rec, nil
}

// UpdateUserRecord replaces the financial groups of a user's record while
// preserving onboarding state
func (s *Service) UpdateUserRecord(email string, update models.UserRecord) error {
	current, err := s.repo.GetUserRecord(email)
	if err != nil {
		return err
	}
	update.Onboarding = current.Onboarding
	if update.Financials == nil {
		update.Financials = map[string]any{}
	}
	if update.Goal == nil {
		update.Goal = map[string]any{}
	}
	if update.Investments == nil {
		update.Investments = map[string]any{}
	}
	return s.repo.UpdateUserRecord(email, update)
}

// StartOnboarding moves a user into the in-progress state. Already running
// or completed flows are returned unchanged.
func (s *Service) StartOnboarding(email string) (*models.Onboarding, error) {
	rec, err := s.repo.GetUserRecord(email)
	if err != nil {
		return nil, err
	}

	ob := ensureOnboarding(&rec)
	if ob.Status == models.OnboardingNotStarted || ob.Status == models.OnboardingCancelled {
		step := 0
		now := time.Now().UTC().Format(time.RFC3339)
		ob.Status = models.OnboardingInProgress
		ob.CurrentStep = &step
		ob.LastUpdated = &now
		if err := s.repo.UpdateUserRecord(email, rec); err != nil {
			return nil, err
		}
	}
	return ob, nil
}

// CompleteOnboarding marks the flow finished and clears the current step
func (s *Service) CompleteOnboarding(email string) (*models.Onboarding, error) {
	rec, err := s.repo.GetUserRecord(email)
	if err != nil {
		return nil, err
	}

	ob := ensureOnboarding(&rec)
	now := time.Now().UTC().Format(time.RFC3339)
	ob.Status = models.OnboardingCompleted
	ob.CurrentStep = nil
	ob.LastUpdated = &now
	if err := s.repo.UpdateUserRecord(email, rec); err != nil {
		return nil, err
	}
	return ob, nil
}

// CancelOnboarding abandons the flow at the given step. A completed flow
// cannot be cancelled.
func (s *Service) CancelOnboarding(email string, step *int) (*models.Onboarding, error) {
	rec, err := s.repo.GetUserRecord(email)
	if err != nil {
		return nil, err
	}

	ob := ensureOnboarding(&rec)
	if ob.Status == models.OnboardingCompleted {
		return nil, ErrOnboardingCompleted
	}

	now := time.Now().UTC().Format(time.RFC3339)
	ob.Status = models.OnboardingCancelled
	if step != nil {
		ob.CurrentStep = step
	}
	ob.LastUpdated = &now
	if err := s.repo.UpdateUserRecord(email, rec); err != nil {
		return nil, err
	}
	return ob, nil
}

// OnboardingStatus returns the current onboarding state
func (s *Service) OnboardingStatus(email string) (*models.Onboarding, error) {
	rec, err := s.repo.GetUserRecord(email)
	if err != nil {
		return nil, err
	}
	return ensureOnboarding(&rec), nil
}

// FinancialHealth computes the health view over a user's record
func (s *Service) FinancialHealth(email string) (models.HealthResult, error) {
	rec, err := s.repo.GetUserRecord(email)
	if err != nil {
		return models.HealthResult{}, err
	}
	return advisor.ComputeFinancialHealth(rec), nil
}

// PredictGoal runs the Monte Carlo estimate over a user's record
func (s *Service) PredictGoal(email string) (models.SimulationResult, error) {
	rec, err := s.repo.GetUserRecord(email)
	if err != nil {
		return models.SimulationResult{}, err
	}
	return s.sim.GoalProbability(rec)
}

// RecommendPlan builds the risk-based asset allocation plan
func (s *Service) RecommendPlan(email string) (map[string]float64, error) {
	rec, err := s.repo.GetUserRecord(email)
	if err != nil {
		return nil, err
	}
	return advisor.GeneratePlan(rec)
}

// GoalIntelligence runs the deterministic projection over a user's record,
// logging every value the normalizer had to default.
func (s *Service) GoalIntelligence(email string) (models.GoalIntelligence, error) {
	rec, err := s.repo.GetUserRecord(email)
	if err != nil {
		return models.GoalIntelligence{}, err
	}
	return s.computeGoalIntelligence(email, rec)
}

func (s *Service) computeGoalIntelligence(email string, rec models.UserRecord) (models.GoalIntelligence, error) {
	if snap, err := advisor.Normalize(rec); err == nil {
		for _, sub := range snap.Substitutions {
			s.log.Warnf("Defaulted field for %s: %s (%s)", email, sub.Field, sub.Reason)
		}
	}
	return advisor.ComputeGoalIntelligence(rec)
}

// AgentAdvice is the gated decision-advisor view: active only once
// onboarding is completed and the record carries the minimum financial data.
type AgentAdvice struct {
	Status           string                   `json:"status"`
	Reason           string                   `json:"reason,omitempty"`
	Message          string                   `json:"message,omitempty"`
	GoalIntelligence *models.GoalIntelligence `json:"goal_intelligence,omitempty"`
	Agent            *models.AgentResponse    `json:"agent,omitempty"`
}

// Advise produces the decision advisor response for a user
func (s *Service) Advise(email string) (AgentAdvice, error) {
	rec, err := s.repo.GetUserRecord(email)
	if err != nil {
		return AgentAdvice{}, err
	}

	if rec.Onboarding == nil || rec.Onboarding.Status != models.OnboardingCompleted {
		return AgentAdvice{
			Status:  "inactive",
			Reason:  "onboarding_incomplete",
			Message: "Complete onboarding to activate AI Decision Advisor.",
		}, nil
	}

	if !hasMinimumFinancialData(rec) {
		return AgentAdvice{
			Status:  "inactive",
			Reason:  "insufficient_data",
			Message: "Not enough financial data to generate AI advice.",
		}, nil
	}

	gi, err := s.computeGoalIntelligence(email, rec)
	if err != nil {
		s.log.Errorf("Agent unavailable for %s: %v", email, err)
		return AgentAdvice{
			Status:  "error",
			Message: "AI Decision Advisor temporarily unavailable.",
		}, nil
	}

	resp := advisor.RunAgent(gi)
	return AgentAdvice{
		Status:           "active",
		GoalIntelligence: &gi,
		Agent:            &resp,
	}, nil
}

// ReviewGoals re-evaluates every user's goal and alerts those whose agent
// action is ABORT. Invoked on a cron schedule.
func (s *Service) ReviewGoals() {
	emails, err := s.repo.ListUserEmails()
	if err != nil {
		s.log.Errorf("Goal review failed to list users: %v", err)
		return
	}

	reviewed, alerted := 0, 0
	for _, email := range emails {
		advice, err := s.Advise(email)
		if err != nil || advice.Status != "active" {
			continue
		}
		reviewed++

		if advice.Agent.Decision.Action != advisor.ActionAbort {
			continue
		}
		if s.alerts == nil {
			continue
		}

		user, err := s.repo.FindUserByEmail(email)
		if err != nil {
			s.log.Errorf("Goal review: failed to load user %s: %v", email, err)
			continue
		}
		if err := s.alerts.SendGoalAtRiskAlert(user.Email, user.Name, *advice.GoalIntelligence, *advice.Agent); err != nil {
			s.log.Errorf("Goal review: failed to alert %s: %v", email, err)
			continue
		}
		alerted++
	}

	s.log.Infof("Goal review done: %d users reviewed, %d alerted", reviewed, alerted)
}

func ensureOnboarding(rec *models.UserRecord) *models.Onboarding {
	if rec.Onboarding == nil {
		step := 0
		rec.Onboarding = &models.Onboarding{
			Status:      models.OnboardingNotStarted,
			CurrentStep: &step,
		}
	}
	return rec.Onboarding
}

// hasMinimumFinancialData mirrors the advisor's loose truthiness: the agent
// only activates when goal, income and investment basics are all stated.
func hasMinimumFinancialData(rec models.UserRecord) bool {
	for _, v := range []any{
		rec.Goal[models.FieldTargetAmount],
		rec.Goal[models.FieldTargetTime],
		rec.Financials[models.FieldMonthlyIncome],
		rec.Investments[models.FieldRiskOption],
		rec.Investments[models.FieldInvestAmount],
	} {
		if !advisor.Truthy(v) {
			return false
		}
	}
	return true
}

// NormalizeEmail lowercases and trims an email for lookups
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
