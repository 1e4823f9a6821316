package mail

import (
	"errors"
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	"github.com/elad-asi/attendance-manager/config"
)

// Mailer delivers login verification codes.
type Mailer interface {
	SendCode(to, code string) error
}

// SMTPMailer sends over plain-auth SMTP with STARTTLS (Gmail style).
type SMTPMailer struct {
	Host     string
	Port     string
	Sender   string
	Password string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Sender:   cfg.SMTPSender,
		Password: cfg.SMTPPassword,
	}
}

var ErrNotConfigured = errors.New("mail: SMTP sender or app password not configured")

func (m *SMTPMailer) SendCode(to, code string) error {
	if m.Sender == "" || m.Password == "" {
		return ErrNotConfigured
	}

	subject := mime.QEncoding.Encode("utf-8", "קוד אימות - מנהל נוכחות")
	body := fmt.Sprintf(`<html dir="rtl">
<body style="font-family: Arial, sans-serif; direction: rtl; text-align: right;">
<h2>קוד אימות</h2>
<p>שלום,</p>
<p>הקוד שלך לכניסה למערכת מנהל נוכחות:</p>
<div style="font-size: 32px; font-weight: bold; letter-spacing: 8px; background: #f0f0f0; padding: 20px; text-align: center; border-radius: 8px;">%s</div>
<p>הקוד תקף ל-5 דקות.</p>
<p style="color: #666; font-size: 12px;">אם לא ביקשת קוד זה, התעלם מהודעה זו.</p>
</body>
</html>`, code)

	var msg strings.Builder
	msg.WriteString("From: " + m.Sender + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	auth := smtp.PlainAuth("", m.Sender, m.Password, m.Host)
	return smtp.SendMail(m.Host+":"+m.Port, auth, m.Sender, []string{to}, []byte(msg.String()))
}
