// internal/app/system/mailer/mailer.go

// Package mailer composes and sends FlatTrack's outbound email: the
// site-visit booking messages generated from the "SITE VISIT BOOKING"
// template after a schedule commit.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Email is a composed message ready to send.
type Email struct {
	To      []string
	Subject string
	Body    string
}

// Config holds SMTP settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// Mailer sends email over SMTP. With no username/password it dials the
// server without authentication (local relays, Mailpit).
type Mailer struct {
	cfg Config
}

// header-injection guard: strip CR/LF from addresses and subjects.
var crlfStripper = strings.NewReplacer("\r\n", "", "\r", "", "\n", "")

// New creates a Mailer from SMTP config.
func New(cfg Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// Enabled reports whether SMTP is configured at all.
func (m *Mailer) Enabled() bool {
	return m.cfg.Host != ""
}

// Send delivers the email. Callers treat a failure as terminal for that
// message; there are no retries here.
func (m *Mailer) Send(e Email) error {
	if !m.Enabled() {
		return fmt.Errorf("mailer: smtp host not configured")
	}
	if len(e.To) == 0 {
		return fmt.Errorf("mailer: no recipients")
	}

	to := make([]string, len(e.To))
	for i, addr := range e.To {
		to[i] = crlfStripper.Replace(addr)
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	msg := m.compose(to, e.Subject, e.Body)

	if m.cfg.Username == "" && m.cfg.Password == "" {
		return m.sendWithNoAuth(addr, to, msg)
	}
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	return smtp.SendMail(addr, auth, m.cfg.From, to, msg)
}

func (m *Mailer) sendWithNoAuth(addr string, to []string, msg []byte) error {
	c, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer func() {
		_ = c.Close()
	}()
	if err = c.Mail(crlfStripper.Replace(m.cfg.From)); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err = c.Rcpt(rcpt); err != nil {
			return err
		}
	}
	wc, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = wc.Write(msg); err != nil {
		return err
	}
	if err = wc.Close(); err != nil {
		return err
	}
	return c.Quit()
}

func (m *Mailer) compose(to []string, subject, body string) []byte {
	from := m.cfg.From
	if m.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.From)
	}
	var b strings.Builder
	b.WriteString("To: " + strings.Join(to, ",") + "\r\n")
	b.WriteString("From: " + crlfStripper.Replace(from) + "\r\n")
	b.WriteString("Subject: " + crlfStripper.Replace(subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return []byte(b.String())
}
