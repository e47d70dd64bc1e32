package utils

import (
	"fmt"
	"net/smtp"

	"campfinder/config"
)

// SendMail sends a plain-text email over SMTP.
func SendMail(to, subject, body string) error {
	cfg := config.AppConfig
	if cfg.SMTPHost == "" || cfg.SMTPPort == "" || cfg.SMTPUser == "" || cfg.SMTPPass == "" {
		return fmt.Errorf("smtp not configured")
	}

	addr := cfg.SMTPHost + ":" + cfg.SMTPPort
	from := cfg.FromEmail
	if from == "" {
		from = cfg.SMTPUser
	}

	// Build message
	msg := "From: " + cfg.FromName + " <" + from + ">\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n" +
		body + "\r\n"

	auth := smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
	return smtp.SendMail(addr, auth, from, []string{to}, []byte(msg))
}
