// Package registration contains the HTTP handler for the intake endpoint.
//
// HANDLER PATTERN USED HERE — THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// Go's router expects handler functions with the signature:
//
//	func(http.ResponseWriter, *http.Request)
//
// That signature has no room for extra parameters like a store or a
// mailer. To inject dependencies we use a factory function that:
//  1. Accepts dependencies (storage, notifier)
//  2. Returns a function with the exact signature the router needs
//
// Because the inner function "closes over" the outer parameters, it can
// access them even after the factory call has returned:
//
//	router.HandleFunc("POST /register", registration.New(storage, notifier))
//	//                                  ^^^^^^^^^^^^^^^^^^^^^^^^^^^^^
//	//                         New(...) is called ONCE at startup.
//	//                         It returns a handler func which is called
//	//                         on EVERY incoming request.
package registration

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/coursedesk/registrations-api/internal/notify"
	"github.com/coursedesk/registrations-api/internal/storage"
	"github.com/coursedesk/registrations-api/internal/types"
	"github.com/coursedesk/registrations-api/internal/utils/response"
)

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /register
// Accepts a registration, persists it, then notifies the admin.
//
// Request body (JSON) — unknown keys are ignored:
//
//	{ "name": "Asha", "mobile": "9876543210", "course": "Go Basics" }
//
// Success response (200 OK):
//
//	{ "status": "ok", "message": "Registration successful" }
//
// Error responses:
//
//	400 Bad Request  — empty body, malformed JSON, or a missing field
//	500 Internal     — the record could not be appended to the store
//
// ORDERING GUARANTEE: the record is appended BEFORE the notification is
// attempted, so a stored registration never depends on mail working.
// The notification's outcome is discarded — a failed send is logged
// inside the notifier and the client still gets a 200.
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.Storage, notifier notify.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("accepting a registration")

		// ── Step 1: Decode JSON body into a Registration struct ───────
		var rec types.Registration

		err := json.NewDecoder(r.Body).Decode(&rec)
		if errors.Is(err, io.EOF) {
			// io.EOF means the body was completely empty.
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			// Any other decode error: malformed JSON, wrong types, etc.
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		// ── Step 2: Validate the decoded struct ───────────────────────
		// Checks the validate:"required" tags on name, mobile, course.
		// Nothing is persisted and no mail is sent on failure.
		if err := validator.New().Struct(rec); err != nil {
			validateErrs := err.(validator.ValidationErrors)
			response.WriteJSON(w, http.StatusBadRequest,
				response.ValidationError(validateErrs))
			return
		}

		// ── Step 3: Persist ───────────────────────────────────────────
		// AppendRegistration stamps the server timestamp and returns the
		// record as stored; that stamped copy is what the admin is told
		// about. On failure the submission is rejected outright — no
		// record exists, so no notification is attempted.
		stored, err := store.AppendRegistration(rec)
		if err != nil {
			slog.Error("error appending registration",
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(errors.New("could not save registration")))
			return
		}

		slog.Info("registration saved",
			slog.String("name", stored.Name),
			slog.String("course", stored.Course),
		)

		// ── Step 4: Notify (fire-and-forget) ──────────────────────────
		// Notify has no return value by contract; whatever goes wrong in
		// there is logged at the notifier boundary and cannot reach us.
		notifier.Notify(stored)

		// ── Step 5: Acknowledge ───────────────────────────────────────
		// No identifier is generated or exposed for a registration.
		response.WriteJSON(w, http.StatusOK,
			response.Ack("Registration successful"))
	}
}
