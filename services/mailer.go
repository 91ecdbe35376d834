package services

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer sends account verification mail. Nil-safe to leave unwired in
// environments without SMTP; registration then logs the token instead.
type Mailer struct {
	dialer      *gomail.Dialer
	senderEmail string
	frontendURL string
	logger      *zap.Logger
}

func NewMailer(host string, port int, username, password, senderEmail, frontendURL string, logger *zap.Logger) *Mailer {
	return &Mailer{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: senderEmail,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

// SendVerification mails the registration verification link.
func (m *Mailer) SendVerification(toEmail, token string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.senderEmail)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "Verify your account")

	verifyLink := fmt.Sprintf("%s/verify?token=%s", m.frontendURL, token)
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Almost there!</h2>
			<p>Click the link below to finish creating your account:</p>
			<p><a href="%s">%s</a></p>
			<p>The link expires in 24 hours. If you didn't sign up, ignore this email.</p>
		</div>
	`, verifyLink, verifyLink)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return err
	}

	if m.logger != nil {
		m.logger.Info("verification mail sent", zap.String("to", toEmail))
	}
	return nil
}
