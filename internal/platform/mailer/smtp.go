package mailer

import (
	"bytes"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/talkserve/backend/internal/config"
)

// SMTP sends through a plain SMTP relay.
type SMTP struct {
	host string
	port string
	from string
	user string
	pass string
}

// NewSMTP builds the provider from configuration.
func NewSMTP(cfg config.MailerConfig) *SMTP {
	return &SMTP{
		host: strings.TrimSpace(cfg.SMTPHost),
		port: strings.TrimSpace(cfg.SMTPPort),
		from: strings.TrimSpace(cfg.FromEmail),
		user: strings.TrimSpace(cfg.SMTPUser),
		pass: strings.TrimSpace(cfg.SMTPPass),
	}
}

func (s *SMTP) Send(toEmail, toName, subject, text, html string) (string, error) {
	toEmail = strings.TrimSpace(toEmail)
	if toEmail == "" {
		return "", fmt.Errorf("empty recipient email")
	}
	if s.host == "" {
		return "", fmt.Errorf("smtp host not configured")
	}

	var buf bytes.Buffer
	boundary := "mixed-boundary"
	fmt.Fprintf(&buf, "From: %s\r\n", s.from)
	fmt.Fprintf(&buf, "To: %s\r\n", toEmail)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", boundary)

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	fmt.Fprintf(&buf, "Content-Type: text/plain; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&buf, "%s\r\n\r\n", text)

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	fmt.Fprintf(&buf, "Content-Type: text/html; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&buf, "%s\r\n\r\n", html)

	fmt.Fprintf(&buf, "--%s--\r\n", boundary)

	addr := s.host + ":" + s.port

	var auth smtp.Auth
	if s.user != "" {
		auth = smtp.PlainAuth("", s.user, s.pass, s.host)
	}
	return "", smtp.SendMail(addr, auth, s.from, []string{toEmail}, buf.Bytes())
}
