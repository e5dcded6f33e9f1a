// Package notify defines the admin-notification contract and a log-only
// implementation for local runs and tests. The real SMTP mailer lives
// in the smtp subpackage.
//
// Notification is a best-effort side channel: whatever happens while
// sending must never affect the registration that triggered it. That is
// why Notify returns nothing — there is no error for the caller to act
// on, by contract. Implementations log their own failures.
package notify

import (
	"fmt"
	"log/slog"

	"github.com/coursedesk/registrations-api/internal/types"
)

// Notifier sends a fire-and-forget message describing a newly stored
// registration. Exactly one outbound message per call is attempted;
// there is no retry, no queue, and no delivery confirmation.
type Notifier interface {
	Notify(rec types.Registration)
}

// Subject and Body build the plain-text message for a registration.
// They are shared by every implementation (and asserted in tests) so
// the admin sees the same text whether mail is live or logged.

// Subject returns the mail subject line for rec.
func Subject(rec types.Registration) string {
	return fmt.Sprintf("NEW REGISTRATION: %s from %s", rec.Course, rec.Name)
}

// Body returns the mail body for rec.
func Body(rec types.Registration) string {
	return fmt.Sprintf(
		"New Student Registration Details:\n\n"+
			"Name: %s\n"+
			"Mobile: %s\n"+
			"Course: %s\n"+
			"Timestamp: %s\n",
		rec.Name, rec.Mobile, rec.Course, rec.Timestamp,
	)
}

// Discard is the Notifier used when mail is disabled in config: it
// writes the would-be notification to the log and drops it.
type Discard struct {
	Log *slog.Logger
}

// Notify implements Notifier.
func (d Discard) Notify(rec types.Registration) {
	d.Log.Info("notification suppressed (mail disabled)",
		slog.String("subject", Subject(rec)),
	)
}
