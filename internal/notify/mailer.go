package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/smtp"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/rs/zerolog"

	"github.com/hvaldez/dayplan/internal/model"
)

// Mailer delivers reminder notifications over SMTP as plain-text MIME
// messages.
type Mailer struct {
	cfg model.SMTPConfig
	log zerolog.Logger
}

// NewMailer creates a Mailer from SMTP settings.
func NewMailer(cfg model.SMTPConfig, log zerolog.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: log}
}

// NotifyDue sends the user an email about a due reminder.
func (m *Mailer) NotifyDue(ctx context.Context, user model.User, reminder model.Reminder, task model.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	due, err := reminder.DueAt()
	if err != nil {
		return fmt.Errorf("parsing reminder %s due date: %w", reminder.ID, err)
	}

	subject := fmt.Sprintf("Reminder: %s", task.Description)
	body := fmt.Sprintf(
		"Hi %s,\n\nYour task %q is due on %s.\n",
		user.Name, task.Description, due.Format("Mon, 02 Jan 2006 15:04"),
	)

	msg, err := buildMessage(m.cfg.From, user.Email, subject, body)
	if err != nil {
		return fmt.Errorf("building notification mail: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{user.Email}, msg); err != nil {
		return fmt.Errorf("sending notification mail to %s: %w", user.Email, err)
	}

	m.log.Debug().
		Str("to", user.Email).
		Str("reminder_id", reminder.ID).
		Msg("notification mail sent")
	return nil
}

// buildMessage assembles a single-part text/plain MIME message.
func buildMessage(from, to, subject, body string) ([]byte, error) {
	var b bytes.Buffer

	var h mail.Header
	h.SetDate(time.Now())
	h.SetAddressList("From", []*mail.Address{{Address: from}})
	h.SetAddressList("To", []*mail.Address{{Address: to}})
	h.SetSubject(subject)
	h.SetContentType("text/plain", map[string]string{"charset": "utf-8"})

	w, err := mail.CreateSingleInlineWriter(&b, h)
	if err != nil {
		return nil, fmt.Errorf("creating mail writer: %w", err)
	}
	if _, err := io.WriteString(w, body); err != nil {
		w.Close()
		return nil, fmt.Errorf("writing mail body: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("closing mail writer: %w", err)
	}

	return b.Bytes(), nil
}
