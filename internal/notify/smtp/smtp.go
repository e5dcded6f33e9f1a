// Package smtp provides the SMTP implementation of notify.Notifier.
//
// Delivery uses implicit TLS (SMTPS, typically port 465) with PLAIN
// auth — the classic "app password" setup offered by Gmail and most
// hosted providers. All delivery parameters come from the injected
// config; nothing is hardcoded here.
package smtp

import (
	"log/slog"

	"github.com/wneessen/go-mail"

	"github.com/coursedesk/registrations-api/internal/config"
	"github.com/coursedesk/registrations-api/internal/notify"
	"github.com/coursedesk/registrations-api/internal/types"
)

// Mailer sends one email per registration to the configured admin
// recipient. It satisfies notify.Notifier.
type Mailer struct {
	cfg config.Mail
	log *slog.Logger
}

// New returns a Mailer using the delivery parameters in cfg.Mail.
// No connection is made here; each Notify dials the server fresh, which
// keeps the service free of long-lived SMTP state between requests.
func New(cfg *config.Config, log *slog.Logger) *Mailer {
	return &Mailer{cfg: cfg.Mail, log: log}
}

// Notify composes and sends the notification for rec.
//
// Every failure path ends in a log line and a return — never a panic,
// never an error to the caller. A lost email must not lose a
// registration, so this method absorbs everything.
func (m *Mailer) Notify(rec types.Registration) {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.Sender); err != nil {
		m.log.Error("notification dropped: bad sender address",
			slog.String("sender", m.cfg.Sender),
			slog.String("error", err.Error()))
		return
	}
	if err := msg.To(m.cfg.Recipient); err != nil {
		m.log.Error("notification dropped: bad recipient address",
			slog.String("recipient", m.cfg.Recipient),
			slog.String("error", err.Error()))
		return
	}
	msg.Subject(notify.Subject(rec))
	msg.SetBodyString(mail.TypeTextPlain, notify.Body(rec))

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Sender),
		mail.WithPassword(m.cfg.Password),
		mail.WithTimeout(m.cfg.Timeout),
	)
	if err != nil {
		m.log.Error("notification dropped: smtp client setup failed",
			slog.String("host", m.cfg.Host),
			slog.String("error", err.Error()))
		return
	}

	if err := client.DialAndSend(msg); err != nil {
		m.log.Error("notification dropped: send failed",
			slog.String("host", m.cfg.Host),
			slog.String("recipient", m.cfg.Recipient),
			slog.String("error", err.Error()))
		return
	}

	m.log.Info("notification sent", slog.String("recipient", m.cfg.Recipient))
}
