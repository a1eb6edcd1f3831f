package email

import (
	"context"
	"fmt"
	"net/smtp"

	"blog-backend/internal/config"
	"blog-backend/pkg/logger"
)

// EmailService dispatches the two notification mails the platform sends.
// Both hooks fire after the primary write: a failure here is surfaced to the
// caller but never rolls the write back.
type EmailService interface {
	SendWelcomeEmail(ctx context.Context, to, name string) error
	SendNewPostNotification(ctx context.Context, to, name, postTitle string) error
}

type smtpEmailService struct {
	addr string
	auth smtp.Auth
	from string
}

// NewSMTPEmailService talks to an SMTP relay. With an API key configured it
// authenticates SendGrid-style (user "apikey"); without one it sends
// unauthenticated, which is what the local dev mailcatcher expects.
func NewSMTPEmailService(cfg config.EmailConfig) EmailService {
	var auth smtp.Auth
	if cfg.APIKey != "" {
		auth = smtp.PlainAuth("", "apikey", cfg.APIKey, cfg.SMTPHost)
	}
	return &smtpEmailService{
		addr: cfg.SMTPHost + ":" + cfg.SMTPPort,
		auth: auth,
		from: cfg.From,
	}
}

func (s *smtpEmailService) SendWelcomeEmail(ctx context.Context, to, name string) error {
	subject := "Welcome!"
	body := fmt.Sprintf(`Hi %s,

Thanks for signing up to our platform!`, name)

	return s.send(to, subject, body)
}

func (s *smtpEmailService) SendNewPostNotification(ctx context.Context, to, name, postTitle string) error {
	subject := fmt.Sprintf("New post: %s", postTitle)
	body := fmt.Sprintf(`Hi %s,

You just published a new post titled "%s"!`, name, postTitle)

	return s.send(to, subject, body)
}

func (s *smtpEmailService) send(to, subject, body string) error {
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.from, to, subject, body))

	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{to}, msg); err != nil {
		logger.Warn("Failed to send email", map[string]interface{}{
			"error":     err.Error(),
			"to":        to,
			"smtp_addr": s.addr,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
