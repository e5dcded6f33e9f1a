// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// handlers, storage, notify, and report can all import types without
// depending on each other.
package types

// Registration represents one student registration entry.
//
// Struct tags serve two purposes:
//
//  1. json:"..."  — controls how the field appears when encoded to JSON
//     (lowercase names match REST API conventions).
//
//  2. validate:"..." — rules checked by the go-playground/validator
//     package. "required" means the field must be non-empty. No further
//     format checks are applied: name, mobile, and course are free text.
//
// Timestamp is assigned by the server at append time and is never
// accepted from the client — the storage layer overwrites it
// unconditionally on every append.
type Registration struct {
	Name      string `json:"name"   validate:"required"`
	Mobile    string `json:"mobile" validate:"required"`
	Course    string `json:"course" validate:"required"`
	Timestamp string `json:"timestamp,omitempty"`
}
