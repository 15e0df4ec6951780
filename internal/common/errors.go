// Package common defines sentinel errors shared across the repository and
// service layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Passphrase / identity errors.
	ErrEmptyPassphrase    = errors.New("passphrase cannot be empty")
	ErrInvalidPassphrase  = errors.New("invalid passphrase")
	ErrPassphraseMismatch = errors.New("invalid passphrase for existing user")

	// Setup / connectivity errors.
	ErrDatabaseNotSetUp = errors.New("database not set up")

	// Local store errors.
	ErrNoteNotFound  = errors.New("note not found")
	ErrNotInConflict = errors.New("note is not in conflict")

	// Sync engine errors.
	ErrSyncInFlight = errors.New("sync already in progress")
	ErrSyncDisabled = errors.New("sync is disabled")
	ErrNoUser       = errors.New("no registered user")
)
