package mailer

import (
	"go.uber.org/zap"

	"github.com/talkserve/backend/internal/config"
)

// Service sends outbound mail. Implementations exist for MailerSend, plain
// SMTP and a dev logger.
type Service interface {
	Send(toEmail, toName, subject, text, html string) (string, error)
}

// New selects the provider from configuration.
func New(cfg config.MailerConfig, logger *zap.Logger) Service {
	switch cfg.Provider {
	case "mailersend":
		return NewMailerSend(cfg)
	case "smtp":
		return NewSMTP(cfg)
	default:
		return NewDevMailer(logger)
	}
}
