// internal/app/system/mailer/mailer.go

// Package mailer sends application email over SMTP and builds the message
// bodies the app uses.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Email is one outbound message with both text and HTML bodies.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers email. The SMTP mailer implements it; tests substitute a
// recording fake.
type Sender interface {
	Send(email Email) error
}

// Config holds SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Pass     string
	From     string // e.g. noreply@studyhub.app
	FromName string // e.g. StudyHub
}

// Mailer sends email through a single SMTP endpoint.
type Mailer struct {
	cfg Config
	log *zap.Logger
}

// New constructs a Mailer.
func New(cfg Config, logger *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: logger}
}

// Send delivers one message. Auth is skipped when no SMTP user is
// configured (local Mailpit-style relays).
func (m *Mailer) Send(email Email) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	}

	msg := m.buildMessage(email)
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{email.To}, msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", email.To, err)
	}

	m.log.Debug("email sent",
		zap.String("to", email.To),
		zap.String("subject", email.Subject))
	return nil
}

// buildMessage renders a multipart/alternative MIME message so clients can
// pick between the text and HTML bodies. The boundary is random per message
// so body content can never collide with it.
func (m *Mailer) buildMessage(email Email) []byte {
	boundary := "alt-" + uuid.NewString()

	from := m.cfg.From
	if m.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.From)
	}

	domain := m.cfg.From
	if at := strings.LastIndex(domain, "@"); at >= 0 {
		domain = domain[at+1:]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", email.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", email.Subject)
	fmt.Fprintf(&b, "Message-ID: <%s@%s>\r\n", uuid.NewString(), domain)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(email.TextBody)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(email.HTMLBody)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return []byte(b.String())
}
