package mailer

import "go.uber.org/zap"

// DevMailer logs mail instead of sending it.
type DevMailer struct {
	logger *zap.Logger
}

// NewDevMailer builds the dev provider.
func NewDevMailer(logger *zap.Logger) *DevMailer {
	return &DevMailer{logger: logger}
}

func (d *DevMailer) Send(toEmail, toName, subject, text, html string) (string, error) {
	d.logger.Info("dev mail",
		zap.String("to", toEmail),
		zap.String("name", toName),
		zap.String("subject", subject),
		zap.String("text", text))
	return "dev", nil
}
