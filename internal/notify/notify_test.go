package notify

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coursedesk/registrations-api/internal/types"
)

var rec = types.Registration{
	Name:      "Asha",
	Mobile:    "9876543210",
	Course:    "Go Basics",
	Timestamp: "2026-08-31 12:30:45",
}

func TestSubject(t *testing.T) {
	require.Equal(t, "NEW REGISTRATION: Go Basics from Asha", Subject(rec))
}

func TestBody_ContainsEveryField(t *testing.T) {
	body := Body(rec)

	require.Contains(t, body, "Name: Asha\n")
	require.Contains(t, body, "Mobile: 9876543210\n")
	require.Contains(t, body, "Course: Go Basics\n")
	require.Contains(t, body, "Timestamp: 2026-08-31 12:30:45\n")
}

func TestDiscard_NotifyNeverFails(t *testing.T) {
	d := Discard{Log: slog.New(slog.NewTextHandler(io.Discard, nil))}

	// Notify has no return value; the only observable contract is that
	// it comes back without panicking.
	require.NotPanics(t, func() { d.Notify(rec) })
	require.NotPanics(t, func() { d.Notify(types.Registration{}) })
}
