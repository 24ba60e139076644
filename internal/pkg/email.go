package pkg

import (
	"context"
	"crypto/tls"
	"fmt"
	"html"
	"time"

	"Community_Portal/internal/logger"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string // 发件人邮箱
	Password string // 授权码/密码
	From     string // 显示的发件人，可与 Username 相同
}

type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// NewMailer 未配置 SMTP_HOST 时退化为只写日志
func NewMailer(cfg SMTPConfig) Mailer {
	if cfg.Host == "" {
		return LogMailer{}
	}
	return &SMTPMailer{cfg: cfg}
}

type SMTPMailer struct {
	cfg SMTPConfig
}

func (s *SMTPMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	return SendEmail(s.cfg, to, subject, htmlBody)
}

type LogMailer struct{}

func (LogMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	logger.Infof("mail to=%s subject=%q body=%s", to, subject, htmlBody)
	return nil
}

func SendEmail(cfg SMTPConfig, to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{ServerName: cfg.Host}
	return d.DialAndSend(m)
}

func ResetPasswordHTML(username, link string, ttl time.Duration) string {
	return fmt.Sprintf(`<p>Hello %s,</p><p>We received a request to reset your password. Use the link below to choose a new one:</p><p><a href="%s">%s</a></p><p>The link expires in %d minutes. If you did not request this, you can ignore this email.</p>`,
		html.EscapeString(username), html.EscapeString(link), html.EscapeString(link), int(ttl.Minutes()))
}
