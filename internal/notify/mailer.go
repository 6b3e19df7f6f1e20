package notify

import (
	"fmt"
	"net/smtp"
)

// SMTPClient sends plain-text mail over SMTP with PLAIN auth on port 587.
type SMTPClient struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func NewSMTPClient(host, user, pass, from string) *SMTPClient {
	return &SMTPClient{Host: host, Port: 587, User: user, Password: pass, From: from}
}

func (s *SMTPClient) Send(to, subject, body string) error {
	if s == nil || s.Host == "" || s.User == "" {
		return fmt.Errorf("smtp not configured")
	}
	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	auth := smtp.PlainAuth("", s.User, s.Password, s.Host)
	msg := []byte("To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" + body + "\r\n")
	return smtp.SendMail(addr, auth, s.From, []string{to}, msg)
}
