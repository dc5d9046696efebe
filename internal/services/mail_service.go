package services

import (
	"bytes"
	"fmt"
	"net/smtp"
	"text/template"
)

type IMailService interface {
	SendPasswordReset(email, token string) error
}

// SMTPConfig holds SMTP + branding config.
type SMTPConfig struct {
	Host       string // e.g. "smtp.gmail.com"
	Port       int    // e.g. 587
	Username   string
	Password   string
	From       string // envelope from, e.g. "no-reply@fablink.io"
	FromName   string
	AppName    string
	AppBaseURL string // e.g. "https://fablink.io"
}

const resetMailTemplate = `Hello,

A password reset was requested for your {{.AppName}} account.

Open {{.AppBaseURL}}/reset-password and enter this code:

    {{.Token}}

The code expires in 15 minutes. If you did not request a reset, you can
ignore this message.

The {{.AppName}} team
`

type smtpMailService struct {
	cfg      SMTPConfig
	resetTpl *template.Template
}

func NewSMTPMailService(cfg SMTPConfig) (IMailService, error) {
	tpl, err := template.New("reset").Parse(resetMailTemplate)
	if err != nil {
		return nil, err
	}
	return &smtpMailService{cfg: cfg, resetTpl: tpl}, nil
}

func (s *smtpMailService) SendPasswordReset(email, token string) error {
	var body bytes.Buffer
	err := s.resetTpl.Execute(&body, map[string]string{
		"AppName":    s.cfg.AppName,
		"AppBaseURL": s.cfg.AppBaseURL,
		"Token":      token,
	})
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: Reset your %s password\r\n\r\n%s",
		s.cfg.FromName, s.cfg.From, email, s.cfg.AppName, body.String())

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	return smtp.SendMail(addr, auth, s.cfg.From, []string{email}, []byte(msg))
}

// nopMailService is used when SMTP is not configured; reset mails are
// dropped with a log line at the call site.
type nopMailService struct{}

func NewNopMailService() IMailService { return nopMailService{} }

func (nopMailService) SendPasswordReset(string, string) error { return nil }
