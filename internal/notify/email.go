package notify

import (
	"cardpulse/conf"
	"context"
	"fmt"

	gomail "github.com/go-mail/mail"
)

// EmailNotifier 邮件通道，只对配置了notify_email的提醒生效
type EmailNotifier struct {
	cfg conf.EmailConfig
}

func NewEmailNotifier(cfg conf.EmailConfig) *EmailNotifier {
	return &EmailNotifier{cfg: cfg}
}

func (e *EmailNotifier) Notify(_ context.Context, n Notification) error {
	if n.Email == "" {
		return nil
	}
	if e.cfg.Host == "" {
		return fmt.Errorf("smtp not configured, dropping email notification %s", n.Id)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", e.cfg.Sender)
	m.SetHeader("To", n.Email)
	m.SetHeader("Subject", fmt.Sprintf("Price alert: %s", n.CardId))
	m.SetBody("text/plain", fmt.Sprintf("%s\n\nAlert #%d, fired at %s",
		n.Message, n.AlertId, n.FiredAt.Format("2006-01-02 15:04:05")))

	d := gomail.NewDialer(e.cfg.Host, e.cfg.Port, e.cfg.Username, e.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send alert email to %s: %w", n.Email, err)
	}
	return nil
}
