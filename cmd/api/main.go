package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/finpass/backend/internal/advisor"
	"github.com/finpass/backend/internal/config"
	"github.com/finpass/backend/internal/handler"
	"github.com/finpass/backend/internal/integrations/rates"
	"github.com/finpass/backend/internal/middleware"
	"github.com/finpass/backend/internal/repository"
	"github.com/finpass/backend/internal/service"
	"github.com/finpass/backend/internal/utils/email"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	var alerts service.AlertSender
	if cfg.SMTPHost != "" {
		alerts = email.NewSender(cfg, logger)
	}
	svc := service.NewService(repo, logger, cfg, advisor.NewSimulator(), alerts)
	h := handler.NewHandler(svc)
	ratesClient := rates.NewClient(cfg, logger)

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/", h.Health).Methods("GET")
	r.HandleFunc("/api/signup", h.Signup).Methods("POST")
	r.HandleFunc("/api/login", h.Login).Methods("POST")
	// Protected routes
	authRouter := r.PathPrefix("/api").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/user/{email}", h.GetUser).Methods("GET")
	authRouter.HandleFunc("/user/{email}", h.UpdateUser).Methods("PUT")
	authRouter.HandleFunc("/onboarding/start", h.StartOnboarding).Methods("POST")
	authRouter.HandleFunc("/onboarding/complete", h.CompleteOnboarding).Methods("POST")
	authRouter.HandleFunc("/onboarding/status/{email}", h.OnboardingStatus).Methods("GET")
	authRouter.HandleFunc("/user/{email}/onboarding/cancel", h.CancelOnboarding).Methods("POST")
	authRouter.HandleFunc("/analytics/{email}", h.Analytics).Methods("GET")
	authRouter.HandleFunc("/predict/{email}", h.Predict).Methods("GET")
	authRouter.HandleFunc("/recommend/{email}", h.Recommend).Methods("GET")
	authRouter.HandleFunc("/goal-intelligence/{email}", h.GoalIntelligence).Methods("GET")
	authRouter.HandleFunc("/agent/{email}", h.Agent).Methods("GET")
	// Benchmark rate endpoint
	r.HandleFunc("/api/benchmark-rate", func(w http.ResponseWriter, r *http.Request) {
		rate, err := ratesClient.GetKeyRate()
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to get benchmark rate: %v", err), http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]float64{"key_rate": rate})
	}).Methods("GET")

	// Scheduled goal review
	c := cron.New()
	if _, err := c.AddFunc(cfg.ReviewSchedule, svc.ReviewGoals); err != nil {
		logger.Fatalf("Invalid review schedule %q: %v", cfg.ReviewSchedule, err)
	}
	c.Start()
	defer c.Stop()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
