package email

import (
	"fmt"
	"net/smtp"

	"github.com/finpass/backend/internal/config"
	"github.com/finpass/backend/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending advisory emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendGoalAtRiskAlert notifies a user that the scheduled review found their
// savings goal unrealistic under current conditions.
func (s *Sender) SendGoalAtRiskAlert(to, name string, gi models.GoalIntelligence, resp models.AgentResponse) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Your savings goal needs attention"

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Our latest review of your savings goal found it at risk.\n\n"+
			"Goal probability: %.2f%%\n"+
			"Verdict: %s\n"+
			"Expected corpus: %d against a target of %.0f\n"+
			"Recommended action: %s\n\n"+
			"%s\n"+
			"\nBest regards,\nFinPass Advisor",
		name, gi.GoalProbability, gi.Verdict, gi.ExpectedCorpus, gi.TargetAmount,
		resp.Decision.Action, resp.Decision.Message,
	)
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	if err := e.Send(addr, s.smtpAuth()); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

// smtpAuth returns PLAIN auth when credentials are configured. Relays without
// authentication reject an AUTH attempt, so no credentials means nil auth.
func (s *Sender) smtpAuth() smtp.Auth {
	if s.cfg.SMTPUsername == "" {
		return nil
	}
	return smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
}
