// Package storage defines the Storage interface — a contract that any
// persistence backend must satisfy to work with this application.
//
// WHY AN INTERFACE?
// ─────────────────
// Handlers (HTTP layer) should not know or care where registrations are
// kept. By depending only on this interface:
//
//   - Switching backends = implement the interface for the new store,
//     change one line in main.go. Zero handler changes.
//
//   - Writing tests = pass a fake that satisfies the interface.
//     No real file needed for unit tests.
package storage

import "github.com/coursedesk/registrations-api/internal/types"

// Storage is the persistence contract.
// Any concrete type that implements ALL of these methods automatically
// satisfies this interface — Go does this implicitly (no "implements"
// keyword required).
type Storage interface {
	// AppendRegistration stamps the current server time onto rec and
	// durably appends it as exactly one row. The dataset (and its
	// header row) is created on first use. Returns the record as
	// stored, including the generated timestamp.
	//
	// Appended rows are never updated or deleted; duplicate
	// submissions produce duplicate rows.
	AppendRegistration(rec types.Registration) (types.Registration, error)

	// GetRegistrations returns every stored record in insertion order.
	// Returns an empty slice (not nil) when the dataset does not exist
	// yet or holds no rows.
	GetRegistrations() ([]types.Registration, error)
}
