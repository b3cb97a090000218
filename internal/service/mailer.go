package service

import (
	"context"
	"fmt"
	"net/smtp"

	"careconnect-api/config"

	"github.com/sirupsen/logrus"
)

// Mailer sends templated messages to an email address
type Mailer interface {
	SendVerificationCode(ctx context.Context, toEmail, code string) error
	SendPasswordReset(ctx context.Context, toEmail, resetLink string) error
}

type smtpMailer struct {
	cfg  config.SMTPConfig
	log  *logrus.Logger
	auth smtp.Auth
}

func NewSMTPMailer(cfg config.SMTPConfig, log *logrus.Logger) Mailer {
	auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	return &smtpMailer{
		cfg:  cfg,
		log:  log,
		auth: auth,
	}
}

func (m *smtpMailer) SendVerificationCode(ctx context.Context, toEmail, code string) error {
	subject := "Your CareConnect verification code"
	body := fmt.Sprintf("Your verification code is %s. It expires in 5 minutes.", code)
	return m.send(toEmail, subject, body)
}

func (m *smtpMailer) SendPasswordReset(ctx context.Context, toEmail, resetLink string) error {
	subject := "Reset your CareConnect password"
	body := fmt.Sprintf("Follow this link to reset your password: %s", resetLink)
	return m.send(toEmail, subject, body)
}

func (m *smtpMailer) send(toEmail, subject, body string) error {
	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s\r\n",
		m.cfg.Sender, toEmail, subject, body,
	))

	if err := smtp.SendMail(addr, m.auth, m.cfg.Sender, []string{toEmail}, msg); err != nil {
		m.log.Warnf("Failed to send mail to %s: %+v", toEmail, err)
		return err
	}

	return nil
}
